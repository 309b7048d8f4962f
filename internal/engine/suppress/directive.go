package suppress

import (
	"strings"

	"github.com/sweepa/sweepa/internal/engine/model"
)

const (
	directiveToken    = "@sweepa-ignore"
	directiveAllToken = "@sweepa-ignore:all"
	fileHeaderWindow  = 10
)

// Directive is one parsed `@sweepa-ignore` occurrence (§4.10). Empty
// Kinds/Names mean "matches any kind" / "matches any name" respectively —
// a bare `@sweepa-ignore` suppresses every issue reported against its
// target line.
type Directive struct {
	Kinds  []model.IssueKind
	Names  []string
	Reason string
}

func (d Directive) matches(issue model.Issue) bool {
	if len(d.Kinds) > 0 && !containsKind(d.Kinds, issue.Kind) {
		return false
	}
	if len(d.Names) > 0 && !containsName(d.Names, issue.Name) {
		return false
	}
	return true
}

func containsKind(kinds []model.IssueKind, k model.IssueKind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// FileSuppressions is one file's in-source suppression table: either the
// whole file is exempt (a header `@sweepa-ignore:all`), or a set of
// directives apply to specific 1-indexed line numbers.
type FileSuppressions struct {
	WholeFile bool
	ByLine    map[int][]Directive
}

// Suppresses reports whether issue is exempted by this file's in-source
// directives. A nil receiver (no scan performed, or no SourceReader
// capability) never suppresses anything.
func (s *FileSuppressions) Suppresses(issue model.Issue) bool {
	if s == nil {
		return false
	}
	if s.WholeFile {
		return true
	}
	for _, d := range s.ByLine[issue.Line] {
		if d.matches(issue) {
			return true
		}
	}
	return false
}

// ParseSource scans raw source text for §4.10's in-source directives. A
// file-top `@sweepa-ignore:all` within the first ten lines suppresses the
// entire file and short-circuits further scanning. Otherwise every
// remaining `@sweepa-ignore` occurrence becomes a line-targeted directive:
// an inline block-comment directive (non-blank code before the comment
// opener on the same line) targets that line; a standalone comment-only
// line targets the next line.
func ParseSource(source string) *FileSuppressions {
	lines := strings.Split(source, "\n")

	headerLimit := fileHeaderWindow
	if headerLimit > len(lines) {
		headerLimit = len(lines)
	}
	for i := 0; i < headerLimit; i++ {
		if strings.Contains(lines[i], directiveAllToken) {
			return &FileSuppressions{WholeFile: true}
		}
	}

	sup := &FileSuppressions{ByLine: make(map[int][]Directive)}
	for i, line := range lines {
		idx := strings.Index(line, directiveToken)
		if idx < 0 {
			continue
		}
		if strings.HasPrefix(line[idx:], directiveAllToken) {
			continue // only meaningful as a header-window file suppression, already handled above
		}

		d := parseDirective(line[idx+len(directiveToken):])
		target := i + 1 // this line, 1-indexed
		if !sameLineTarget(line[:idx]) {
			target = i + 2 // the next line
		}
		sup.ByLine[target] = append(sup.ByLine[target], d)
	}
	return sup
}

// sameLineTarget reports whether prefix (the text before the directive
// token on its line) contains real code before the comment opener,
// distinguishing an inline block-comment directive from a standalone
// comment line.
func sameLineTarget(prefix string) bool {
	start := lastCommentOpener(prefix)
	if start < 0 {
		return false
	}
	return strings.TrimSpace(prefix[:start]) != ""
}

func lastCommentOpener(s string) int {
	if i := strings.LastIndex(s, "/*"); i >= 0 {
		return i
	}
	return strings.LastIndex(s, "//")
}

// parseDirective parses the text following the `@sweepa-ignore` token:
// an optional `:kind`, an optional comma-separated name list, and an
// optional `- reason` suffix (delimited by " - " so a hyphenated kind name
// like "unused-export" is never mistaken for the reason separator).
func parseDirective(remainder string) Directive {
	remainder = strings.TrimSpace(remainder)
	remainder = strings.TrimSpace(strings.TrimSuffix(remainder, "*/"))

	var reason string
	if i := strings.Index(remainder, " - "); i >= 0 {
		reason = strings.TrimSpace(remainder[i+3:])
		remainder = strings.TrimSpace(remainder[:i])
	}

	var body string
	var hasKind bool
	switch {
	case strings.HasPrefix(remainder, ":"):
		body = remainder[1:]
		hasKind = true
	case strings.HasPrefix(remainder, ","):
		body = remainder[1:]
	default:
		body = "" // bare directive, or unrecognized trailing text: suppress by line alone
	}

	var kinds []model.IssueKind
	var names []string
	if body != "" {
		parts := strings.Split(body, ",")
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if i == 0 && hasKind {
				kinds = append(kinds, model.IssueKind(part))
				continue
			}
			names = append(names, part)
		}
	}

	return Directive{Kinds: kinds, Names: names, Reason: reason}
}
