package formats

import (
	"fmt"
	"strings"

	"github.com/sweepa/sweepa/internal/engine/model"
)

// GenerateGitHubActionsAnnotations renders a final issue list as GitHub
// Actions workflow-command annotations (`::warning file=...::message`),
// one line per issue, for inline PR feedback. There's no teacher or pack
// analog for this format — it's plain stdout lines rather than a schema,
// built in the same manual string-building idiom as the teacher's
// tsv.go generators.
func GenerateGitHubActionsAnnotations(issues []model.Issue, projectRoot string) (string, error) {
	var b strings.Builder
	for _, issue := range issues {
		level := actionsLevel(issue)
		file := relativeURI(projectRoot, issue.File)
		message := escapeAnnotationMessage(fmt.Sprintf("%s: %s", issue.Kind, issue.Message))
		if issue.Line > 0 {
			b.WriteString(fmt.Sprintf("::%s file=%s,line=%d,col=%d::%s\n", level, file, issue.Line, issue.Column, message))
		} else {
			b.WriteString(fmt.Sprintf("::%s file=%s::%s\n", level, file, message))
		}
	}
	return b.String(), nil
}

func actionsLevel(issue model.Issue) string {
	switch issue.Kind {
	case model.IssueUnresolvedImport, model.IssueUnlistedDependency:
		return "error"
	}
	if issue.Confidence == model.ConfidenceHigh {
		return "warning"
	}
	return "notice"
}

// escapeAnnotationMessage percent-escapes the characters the GitHub
// Actions workflow-command protocol reserves inside a message field.
func escapeAnnotationMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
