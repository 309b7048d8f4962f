package detect

import (
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// UnusedMethod implements §4.9's UnusedMethod: a class method with zero
// external call sites, excluding known life-cycle names, override
// declarations, and methods required by an implemented interface.
func UnusedMethod(g *symbolgraph.Graph) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if sym.Kind != model.KindMethod || sym.Parent == "" {
			continue
		}
		if p := g.Node(sym.Parent); p != nil && p.Kind != model.KindClass {
			continue // interface or type members are signatures, not class methods
		}
		if lifecycleMethodNames[shortName(sym.Name)] {
			continue
		}
		if hasOverrideMarker(sym) {
			continue
		}
		if isInterfaceRequired(g, sym) {
			continue
		}
		if len(g.InEdges(sym.ID)) > 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueUnusedMethod, Confidence: methodConfidence(g, sym),
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "method \"" + sym.Name + "\" has no call sites",
			Parent:  parentName(g, sym),
		})
	}
	return sortIssuesStable(issues)
}

// hasOverrideMarker reports whether sym carries a facade-reported "override"
// modifier. The facade models keyword modifiers alongside decorators (§6.1
// intentionally does not distinguish the two), so an "override" entry here
// stands for the language's override keyword, not a decorator invocation.
func hasOverrideMarker(sym *model.Symbol) bool {
	for _, d := range sym.Decorators {
		if d == "override" || d == "Override" {
			return true
		}
	}
	return false
}

// methodConfidence assigns §4.9's bands: low when a decorator is present,
// medium for a method on an exported (potentially public) class, high
// otherwise.
func methodConfidence(g *symbolgraph.Graph, sym *model.Symbol) model.Confidence {
	if len(sym.Decorators) > 0 {
		return model.ConfidenceLow
	}
	if class := g.Node(sym.Parent); class != nil && class.Exported {
		return model.ConfidenceMedium
	}
	return model.ConfidenceHigh
}

func parentName(g *symbolgraph.Graph, sym *model.Symbol) string {
	if sym.Parent == "" {
		return ""
	}
	if p := g.Node(sym.Parent); p != nil {
		return p.Name
	}
	return ""
}
