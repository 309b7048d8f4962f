package detect

import (
	"context"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/resolver"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// UnusedImport implements §4.9's UnusedImport: an import specifier whose
// imported binding has no non-import, non-export-forwarding use in the
// file. Type-only and side-effect imports are excluded, matching the
// teacher's own unused-import detector's treatment of dot-style and
// side-effect imports as never flagged: some import forms are intentionally
// binding-free and cannot be judged by reference counting.
//
// "Used" is read directly off the symbol graph rather than re-walking
// bodies: C5 already resolves every cross-file identifier reference to an
// edge from the referencing declaration to the declaration it names, so an
// import is used exactly when some declaration in the importing file has an
// outgoing edge into the resolved module naming the imported binding.
func UnusedImport(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, g *symbolgraph.Graph, files []string) ([]model.Issue, error) {
	var issues []model.Issue
	for _, file := range files {
		imports, err := fc.Imports(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, imp := range imports {
			if imp.Kind == facade.ImportSideEffect || imp.TypeOnly {
				continue
			}
			binding := imp.LocalName
			if binding == "" {
				binding = imp.ImportedName
			}
			if binding == "" {
				continue
			}
			if importUsed(ctx, res, g, file, imp) {
				continue
			}
			issues = append(issues, model.Issue{
				Kind: model.IssueUnusedImport, Confidence: model.ConfidenceHigh,
				Name: binding, File: file, Line: imp.Line, Column: imp.Column,
				Message: "imported binding \"" + binding + "\" is never used in this file",
			})
		}
	}
	return sortIssuesStable(issues), nil
}

func importUsed(ctx context.Context, res *resolver.Resolver, g *symbolgraph.Graph, file string, imp facade.ImportSpecifier) bool {
	target, ok := res.Resolve(ctx, imp.ModuleSpecifier, file)
	if !ok {
		return true // cannot judge an unresolved module's bindings; do not flag it
	}
	for _, sym := range g.Nodes() {
		if sym.File != file {
			continue
		}
		for _, e := range g.OutEdges(sym.ID) {
			to := g.Node(e.To)
			if to == nil || to.File != target {
				continue
			}
			if imp.Kind == facade.ImportDefault || imp.Kind == facade.ImportNamespace {
				return true // any reference into the target module counts
			}
			if to.Name == imp.ImportedName {
				return true
			}
		}
	}
	return false
}
