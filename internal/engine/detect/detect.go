// Package detect implements the Detector Suite (C9): a set of pure
// functions from compiled inputs (the symbol graph, the facade, C4's
// reachability result, C7's export analysis) to §6.2 issues. Each detector
// is shaped like the teacher's DetectCycles/FindImportChain: a standalone
// pure function over a *symbolgraph.Graph, never a stateful object.
package detect

import (
	"context"
	"sort"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// lifecycleMethodNames are well-known framework life-cycle hooks that are
// never flagged unused-method regardless of call sites, since a framework
// runtime invokes them by convention rather than by direct reference.
var lifecycleMethodNames = map[string]bool{
	"constructor": true, "render": true,
	"componentDidMount": true, "componentWillUnmount": true,
	"componentDidUpdate": true, "shouldComponentUpdate": true,
	"getDerivedStateFromProps": true, "componentDidCatch": true,
	"ngOnInit": true, "ngOnDestroy": true, "ngOnChanges": true, "ngAfterViewInit": true,
	"connectedCallback": true, "disconnectedCallback": true, "adoptedCallback": true,
	"toString": true, "valueOf": true, "toJSON": true,
	"main": true,
}

// shortName strips a qualified "Parent.Child" name down to "Child".
func shortName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}

// implementedInterfaces returns the interface symbol IDs a class declares
// conformance to, via §3.3's interface_implementation edges.
func implementedInterfaces(g *symbolgraph.Graph, classID model.SymbolID) []model.SymbolID {
	var ids []model.SymbolID
	for _, e := range g.OutEdges(classID) {
		if e.Type == model.EdgeInterfaceImplements {
			ids = append(ids, e.To)
		}
	}
	return ids
}

// isInterfaceRequired reports whether a class member's short name matches a
// method declared on any interface the class implements.
func isInterfaceRequired(g *symbolgraph.Graph, method *model.Symbol) bool {
	if method.Parent == "" {
		return false
	}
	name := shortName(method.Name)
	for _, ifaceID := range implementedInterfaces(g, method.Parent) {
		for _, sym := range g.Nodes() {
			if sym.Parent == ifaceID && shortName(sym.Name) == name {
				return true
			}
		}
	}
	return false
}

// sortIssuesStable orders issues the way every detector in this package
// returns them: by file then line, so a Suite run is deterministic before
// the final model.SortIssues pass runs project-wide.
func sortIssuesStable(issues []model.Issue) []model.Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].Line < issues[j].Line
	})
	return issues
}

// nonDefinitionReferenceCount runs find-references over decl's declaration
// site and counts references that are not the declaration itself.
func nonDefinitionReferenceCount(ctx context.Context, fc facade.CompilerFacade, file string, line, column int) (int, error) {
	sites, err := fc.FindReferences(ctx, file, facade.Position{Line: line, Column: column})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range sites {
		if !s.IsDefinition {
			n++
		}
	}
	return n, nil
}
