package formats

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweepa/sweepa/internal/engine/model"
)

// MarkdownReportData is the content a Markdown report renders.
type MarkdownReportData struct {
	ProjectName string
	TotalFiles  int
	Issues      []model.Issue
}

// MarkdownReportOptions controls rendering, mirroring the teacher's
// MarkdownReportOptions shape (internal/ui/report/formats/markdown.go).
type MarkdownReportOptions struct {
	ProjectRoot         string
	Version             string
	GeneratedAt         time.Time
	TableOfContents     bool
	CollapsibleSections bool
}

// GenerateMarkdown renders a final issue list as a front-matter-prefixed
// Markdown document: an executive summary table followed by one section
// per issue kind present.
func GenerateMarkdown(data MarkdownReportData, opts MarkdownReportOptions) (string, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Reachability Report\n")
	b.WriteString("project: " + nonEmpty(data.ProjectName, "unknown") + "\n")
	b.WriteString("generated_at: " + opts.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + nonEmpty(opts.Version, "unknown") + "\n")
	b.WriteString("---\n\n")
	b.WriteString("# Reachability Report\n\n")

	byKind := groupByKind(data.Issues)
	kinds := sortedKinds(byKind)

	if opts.TableOfContents {
		b.WriteString("## Table of Contents\n")
		b.WriteString("- [Executive Summary](#executive-summary)\n")
		for _, kind := range kinds {
			b.WriteString(fmt.Sprintf("- [%s](#%s)\n", kind, kind))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Executive Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Total Files | %d |\n", data.TotalFiles))
	for _, kind := range kinds {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", kind, len(byKind[kind])))
	}
	b.WriteString(fmt.Sprintf("| **Total Issues** | **%d** |\n\n", len(data.Issues)))

	for _, kind := range kinds {
		writeKindSection(&b, kind, byKind[kind], opts.ProjectRoot, opts.CollapsibleSections)
	}

	return b.String(), nil
}

func writeKindSection(b *strings.Builder, kind model.IssueKind, issues []model.Issue, projectRoot string, collapsible bool) {
	b.WriteString(fmt.Sprintf("## %s\n\n", kind))
	if collapsible {
		b.WriteString(fmt.Sprintf("<details>\n<summary>%d finding(s)</summary>\n\n", len(issues)))
	}

	b.WriteString("| File | Line | Name | Confidence | Message |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, issue := range issues {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
			relativeURI(projectRoot, issue.File), issue.Line, issue.Name, issue.Confidence, issue.Message))
	}
	b.WriteString("\n")

	if collapsible {
		b.WriteString("</details>\n\n")
	}
}
