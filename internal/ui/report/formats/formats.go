// Package formats renders a final, filtered issue list (§6.2) into the
// external report shapes a CI pipeline or a human reviewer consumes: SARIF
// v2.1.0 for code-scanning integrations, Markdown for a readable summary,
// CSV for spreadsheet import, and GitHub Actions workflow-command
// annotations for inline PR feedback. Every generator is a pure function
// over []model.Issue; none of them touch the engine or the filesystem,
// the same separation the teacher draws between its graph/resolver
// packages and this formats package.
package formats

import (
	"sort"

	"github.com/sweepa/sweepa/internal/engine/model"
)

func groupByKind(issues []model.Issue) map[model.IssueKind][]model.Issue {
	out := make(map[model.IssueKind][]model.Issue)
	for _, issue := range issues {
		out[issue.Kind] = append(out[issue.Kind], issue)
	}
	return out
}

func sortedKinds(byKind map[model.IssueKind][]model.Issue) []model.IssueKind {
	kinds := make([]model.IssueKind, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func nonEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
