package detect

import (
	"strings"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// UnusedParameter implements §4.9's UnusedParameter: a parameter whose name
// is never read inside the body. A parameter is represented as a Symbol of
// kind parameter whose Parent is the enclosing function/method; "read" is
// any incoming edge, since the enclosing declaration's own body walk (C5)
// resolves parameter identifier reads back to the parameter's declaration
// the same way it resolves any other local reference. Rest parameters are
// skipped outright (a rest parameter is conventionally unread even when
// used, since its whole binding is passed through); destructured
// sub-bindings are each their own parameter-kind symbol under the same
// parent and are therefore each checked independently without special
// casing here.
func UnusedParameter(g *symbolgraph.Graph) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if sym.Kind != model.KindParameter || sym.Parent == "" {
			continue
		}
		if isRestParameter(sym.Name) {
			continue
		}
		if isInterfaceRequired(g, sym) {
			continue // position required to match an interface/typed target signature
		}
		if len(g.InEdges(sym.ID)) > 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueUnusedParam, Confidence: model.ConfidenceHigh,
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "parameter \"" + sym.Name + "\" is never read",
			Parent:  parentName(g, sym),
		})
	}
	return sortIssuesStable(issues)
}

func isRestParameter(name string) bool {
	return strings.HasPrefix(name, "...")
}
