package formats

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/sweepa/sweepa/internal/engine/model"
)

// GenerateCSV renders a final issue list as CSV, one row per issue. Unlike
// the teacher's hand-built tab-separated builder (tsv.go), this uses
// encoding/csv so names and messages containing commas or quotes are
// escaped correctly rather than relying on tabs never appearing in them.
func GenerateCSV(issues []model.Issue, projectRoot string) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	header := []string{"kind", "confidence", "name", "symbol_kind", "file", "line", "column", "parent", "message"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, issue := range issues {
		row := []string{
			string(issue.Kind),
			string(issue.Confidence),
			issue.Name,
			string(issue.SymbolKind),
			relativeURI(projectRoot, issue.File),
			strconv.Itoa(issue.Line),
			strconv.Itoa(issue.Column),
			issue.Parent,
			issue.Message,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
