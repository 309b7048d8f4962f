package detect

import (
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// PackageOf maps a file to the workspace package root that contains it
// (§4.9's "package-boundary notion derived from manifest directories").
// A nil PackageOf treats the whole project as a single package, so every
// redundant export found can only ever be suggested make-private, never
// make-internal.
type PackageOf func(file string) string

// RedundantExportSuggestion names §4.9's two outcomes for a redundant
// export.
type RedundantExportSuggestion string

const (
	SuggestMakePrivate  RedundantExportSuggestion = "make-private"
	SuggestMakeInternal RedundantExportSuggestion = "make-internal"
)

// RedundantExport implements §4.9's RedundantExport: an exported symbol
// referenced only inside the same file, or only inside the same package.
// It is used (IsUsed) but every incoming edge stays within one boundary, so
// the export keyword itself is unnecessary.
func RedundantExport(g *symbolgraph.Graph, packageOf PackageOf) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if !sym.Exported || !sym.IsUsed {
			continue
		}
		suggestion, ok := redundancySuggestion(g, sym, packageOf)
		if !ok {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueRedundantExport, Confidence: model.ConfidenceMedium,
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "export \"" + sym.Name + "\" is only referenced " + string(suggestion),
			Parent:  parentName(g, sym),
		})
	}
	return sortIssuesStable(issues)
}

func redundancySuggestion(g *symbolgraph.Graph, sym *model.Symbol, packageOf PackageOf) (RedundantExportSuggestion, bool) {
	referencers := g.InEdges(sym.ID)
	if len(referencers) == 0 {
		return "", false // no references at all is UnusedExport's territory
	}

	sameFile := true
	samePackage := true
	ownPackage := resolvePackageOf(packageOf, sym.File)

	for _, e := range referencers {
		referencer := g.Node(e.From)
		if referencer == nil {
			return "", false
		}
		if referencer.File != sym.File {
			sameFile = false
		}
		if resolvePackageOf(packageOf, referencer.File) != ownPackage {
			samePackage = false
		}
	}

	switch {
	case sameFile:
		return SuggestMakePrivate, true
	case samePackage && packageOf != nil:
		return SuggestMakeInternal, true
	default:
		return "", false
	}
}

func resolvePackageOf(packageOf PackageOf, file string) string {
	if packageOf == nil {
		return ""
	}
	return packageOf(file)
}
