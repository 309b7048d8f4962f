package main

import (
	"os"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/fixer"
	"github.com/sweepa/sweepa/internal/shared/util"
)

// applyFixes runs the §6.5 fixer contract against every unused-dependency
// and misplaced-dependency issue in issues, writing the rewritten manifest
// back to manifestPath. Every other issue kind requires editing source
// files, which is out of scope for the fixer (§6.5 only ever touches the
// manifest).
func applyFixes(manifestPath string, issues []model.Issue) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return err
	}

	var remove []string
	for _, issue := range issues {
		switch issue.Kind {
		case model.IssueUnusedDependency:
			remove = append(remove, issue.Name)
		case model.IssueMisplacedDependency:
			if issue.Context == nil || issue.Context.RecommendedSection == "" {
				continue
			}
			from := issue.Context.CurrentSection
			data, err = fixer.MoveDependency(data, issue.Name, from, issue.Context.RecommendedSection)
			if err != nil {
				return err
			}
		}
	}

	if len(remove) > 0 {
		data, err = fixer.RemoveDependencies(data, remove)
		if err != nil {
			return err
		}
	}

	return util.WriteFileWithDirs(manifestPath, data, 0644)
}
