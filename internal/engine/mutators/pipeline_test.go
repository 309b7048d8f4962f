package mutators

import (
	"testing"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
	"github.com/sweepa/sweepa/internal/frameworks"
)

func TestPipelineOrdersPhasesThenPriority(t *testing.T) {
	p := Default(map[string]bool{"index": true})
	var order []Phase
	for _, m := range p.mutators {
		order = append(order, m.Phase())
	}
	for i := 1; i < len(order); i++ {
		if order[i] < order[i-1] {
			t.Fatalf("mutators not in ascending phase order: %v", order)
		}
	}
}

func TestMarkerReachesTransitivelyAndMarksParent(t *testing.T) {
	g := symbolgraph.New()
	entry := &model.Symbol{ID: model.NewSymbolID("/proj/main.ts", "<module>"), File: "/proj/main.ts", Name: model.ModuleSymbolName, Kind: model.KindModule, IsEntryPoint: true}
	class := &model.Symbol{ID: model.NewSymbolID("/proj/lib.ts", "Widget"), File: "/proj/lib.ts", Name: "Widget", Kind: model.KindClass}
	method := &model.Symbol{ID: model.NewSymbolID("/proj/lib.ts", "Widget.render"), File: "/proj/lib.ts", Name: "Widget.render", Kind: model.KindMethod, Parent: class.ID}
	orphan := &model.Symbol{ID: model.NewSymbolID("/proj/lib.ts", "unusedHelper"), File: "/proj/lib.ts", Name: "unusedHelper", Kind: model.KindFunction}

	for _, s := range []*model.Symbol{entry, class, method, orphan} {
		g.AddNode(s)
	}
	g.AddEdge(model.Edge{From: entry.ID, To: method.ID, Type: model.EdgeCall})

	c := &Context{Graph: g, ProjectRoot: "/proj"}
	(&UsedDeclarationMarker{}).Run(c)

	if !method.IsUsed {
		t.Error("expected method reached from entry to be used")
	}
	if !class.IsUsed {
		t.Error("expected visiting a method to also mark its parent class used")
	}
	if orphan.IsUsed {
		t.Error("expected unreferenced symbol to remain unused")
	}
}

func TestMarkerVisitsRetainedSymbolsNotReachedByDFS(t *testing.T) {
	g := symbolgraph.New()
	retained := &model.Symbol{ID: model.NewSymbolID("/proj/lib.ts", "Service"), File: "/proj/lib.ts", Name: "Service", Kind: model.KindClass, RetainedBy: "decorator @Injectable"}
	g.AddNode(retained)

	c := &Context{Graph: g}
	(&UsedDeclarationMarker{}).Run(c)

	if !retained.IsUsed {
		t.Error("retained symbol must be marked used even with no reachable path from an entry point")
	}
}

func TestDecoratorRetainerHonoursFrameworkRegistry(t *testing.T) {
	g := symbolgraph.New()
	sym := &model.Symbol{ID: model.NewSymbolID("/proj/lib.ts", "UserService"), File: "/proj/lib.ts", Name: "UserService", Kind: model.KindClass, Decorators: []string{"Injectable"}}
	g.AddNode(sym)

	reg := frameworks.Detect(frameworks.Builtin(), "/proj", frameworks.ProjectManifest{
		Dependencies: map[string]string{"@nestjs/core": "^10.0.0"},
	})

	c := &Context{Graph: g, Frameworks: reg}
	(&DecoratorRetainer{}).Run(c)

	if sym.RetainedBy == "" {
		t.Fatal("expected @Injectable to be retained via the server-framework detector")
	}
	if !sym.IsUsed {
		t.Fatal("retention must also mark the symbol used")
	}
}

func TestEntryPointRetainerMarksRootFile(t *testing.T) {
	g := symbolgraph.New()
	sym := &model.Symbol{ID: model.NewSymbolID("/proj/index.ts", "bootstrap"), File: "/proj/index.ts", Name: "bootstrap", Kind: model.KindFunction}
	g.AddNode(sym)

	c := &Context{
		Graph:       g,
		ProjectRoot: "/proj",
		Frameworks:  frameworks.Detect(nil, "/proj", frameworks.ProjectManifest{}),
	}
	(&EntryPointRetainer{RootEntryBasenames: map[string]bool{"index": true}}).Run(c)

	if !sym.IsEntryPoint {
		t.Error("expected every symbol in a root entry file to be marked entry, regardless of export status")
	}
}
