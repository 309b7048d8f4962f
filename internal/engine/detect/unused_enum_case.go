package detect

import (
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// UnusedEnumCase implements §4.9's UnusedEnumCase: an enum member with zero
// external references. Enum members never carry a body, so they never gain
// outgoing edges of their own; any incoming edge on the member necessarily
// originates elsewhere, meaning sibling members in the same declaration are
// never counted (they have no way to reference one another as identifiers).
func UnusedEnumCase(g *symbolgraph.Graph) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if sym.Kind != model.KindEnumMember {
			continue
		}
		if len(g.InEdges(sym.ID)) > 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueUnusedEnumCase, Confidence: model.ConfidenceHigh,
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "enum member \"" + sym.Name + "\" is never referenced",
			Parent:  parentName(g, sym),
		})
	}
	return sortIssuesStable(issues)
}
