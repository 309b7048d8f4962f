package detect

import "github.com/sweepa/sweepa/internal/engine/model"

// UnusedFile implements §4.9's UnusedFile: a file present in the candidate
// set (post-exclusion, pre-reachability) that C4 never marked reachable and
// that isn't itself an entry file.
func UnusedFile(candidates []string, reachable map[string]bool, entry map[string]bool) []model.Issue {
	var issues []model.Issue
	for _, file := range candidates {
		if reachable[file] || entry[file] {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueUnusedFile, Confidence: model.ConfidenceHigh,
			File: file, Line: 1, Column: 1,
			Message: "file is never imported from any entry point",
		})
	}
	return sortIssuesStable(issues)
}
