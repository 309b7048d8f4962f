package detect

import (
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// AssignOnlyProperty implements §4.9's AssignOnlyProperty: an instance
// property that is written (including its initializer, `=`,
// compound-assignment, or pre/post `++`/`--`) but never read. Reads and
// writes arrive as property_read/property_write edges into the property's
// symbol (§3.3), discovered by the graph builder walking every
// `this.<name>` access inside the enclosing class the same way any other
// identifier reference is walked.
func AssignOnlyProperty(g *symbolgraph.Graph) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if sym.Kind != model.KindProperty || sym.Parent == "" {
			continue
		}
		reads, writes := propertyAccessCounts(g, sym.ID)
		if writes == 0 || reads > 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueAssignOnlyProperty, Confidence: model.ConfidenceMedium,
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "property \"" + sym.Name + "\" is assigned but never read",
			Parent:  parentName(g, sym),
		})
	}
	return sortIssuesStable(issues)
}

func propertyAccessCounts(g *symbolgraph.Graph, id model.SymbolID) (reads, writes int) {
	for _, e := range g.InEdges(id) {
		switch e.Type {
		case model.EdgePropertyRead:
			reads++
		case model.EdgePropertyWrite:
			writes++
		}
	}
	return
}

// UnusedDeclaration covers the parts of §6.2's taxonomy no dedicated C9
// detector names explicitly: a top-level variable or an instance property
// with zero accesses of any kind after C6 (a property with only writes is
// AssignOnlyProperty's territory, handled separately above; a property or
// variable never touched at all still deserves its own generic report).
func UnusedDeclaration(g *symbolgraph.Graph) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if sym.IsUsed || sym.IsEntryPoint || sym.RetainedBy != "" {
			continue
		}
		var kind model.IssueKind
		switch sym.Kind {
		case model.KindVariable:
			kind = model.IssueUnusedVariable
		case model.KindProperty:
			if reads, writes := propertyAccessCounts(g, sym.ID); reads > 0 || writes > 0 {
				continue // has some access; AssignOnlyProperty or a used-property path applies instead
			}
			kind = model.IssueUnusedProperty
		default:
			continue
		}
		issues = append(issues, model.Issue{
			Kind: kind, Confidence: model.ConfidenceMedium,
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: string(sym.Kind) + " \"" + sym.Name + "\" is never used",
			Parent:  parentName(g, sym),
		})
	}
	return sortIssuesStable(issues)
}
