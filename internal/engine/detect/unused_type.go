package detect

import (
	"context"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// UnusedType implements §4.9's UnusedType: an exported interface or type
// alias whose find-references over the whole project returns no
// non-definition reference. Unlike UnusedExport this asks the facade
// directly rather than relying on the reference graph's body-identifier
// walk, since type positions (a parameter's type annotation, an `implements`
// clause) are not call-graph edges.
func UnusedType(ctx context.Context, fc facade.CompilerFacade, g *symbolgraph.Graph) ([]model.Issue, error) {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if !sym.Exported || (sym.Kind != model.KindInterface && sym.Kind != model.KindType) {
			continue
		}
		count, err := nonDefinitionReferenceCount(ctx, fc, sym.File, sym.Line, sym.Column)
		if err != nil {
			continue // facade failure on this symbol (§7): skip, don't fail the whole run
		}
		if count > 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueUnusedType, Confidence: model.ConfidenceHigh,
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "exported " + string(sym.Kind) + " \"" + sym.Name + "\" is never referenced",
		})
	}
	return sortIssuesStable(issues), nil
}
