package model

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// IssueHash computes the §3.6 stable identity hash over
// (kind, name, parent, file_relative_to_project), deliberately excluding
// line and column so a baseline survives unrelated edits elsewhere in the
// file. projectRoot is used only to make the file component relative and
// slash-normalized so the hash is stable across platforms and checkout
// locations.
func IssueHash(issue Issue, projectRoot string) string {
	rel := issue.File
	if projectRoot != "" {
		if r, err := filepath.Rel(projectRoot, issue.File); err == nil {
			rel = r
		}
	}
	rel = strings.ReplaceAll(rel, "\\", "/")

	key := strings.Join([]string{
		string(issue.Kind),
		issue.Name,
		issue.Parent,
		rel,
	}, "\x1f")

	sum := xxhash.Sum64String(key)
	return fmt.Sprintf("%016x", sum)
}

// SortIssues orders issues by (relative_file, line, column, kind, name) so
// output is stable regardless of the internal scheduling that produced it
// (§5, §8.1 property 4).
func SortIssues(issues []Issue, projectRoot string) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		ra := relPath(a.File, projectRoot)
		rb := relPath(b.File, projectRoot)
		if ra != rb {
			return ra < rb
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})
}

func relPath(file, projectRoot string) string {
	rel := file
	if projectRoot != "" {
		if r, err := filepath.Rel(projectRoot, file); err == nil {
			rel = r
		}
	}
	return strings.ReplaceAll(rel, "\\", "/")
}
