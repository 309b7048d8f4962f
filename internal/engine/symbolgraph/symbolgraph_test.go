package symbolgraph

import (
	"context"
	"testing"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
)

func TestBuildAddsOutgoingEdgeFromBodyIdentifier(t *testing.T) {
	lib := &facade.FixtureFile{
		Path: "/proj/lib.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/lib.ts", Name: "helper", Kind: "function", Line: 1, Column: 1, Exported: true, HasBody: true},
		},
	}
	main := &facade.FixtureFile{
		Path: "/proj/main.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/main.ts", Name: "run", Kind: "function", Line: 1, Column: 1, HasBody: true},
		},
		Identifiers: map[string][]facade.FixtureIdentifier{
			"run": {
				{Name: "helper", Pos: facade.Position{Line: 2, Column: 3}, TargetFile: "/proj/lib.ts", TargetName: "helper"},
			},
		},
	}

	fc := facade.NewFixture(lib, main)
	g, err := Build(context.Background(), fc, []string{"/proj/lib.ts", "/proj/main.ts"})
	if err != nil {
		t.Fatal(err)
	}

	from := model.NewSymbolID("/proj/main.ts", "run")
	to := model.NewSymbolID("/proj/lib.ts", "helper")
	if !g.HasEdge(from, to) {
		t.Fatalf("expected edge %s -> %s", from, to)
	}
}

func TestBuildDropsUnresolvedIdentifierEdges(t *testing.T) {
	main := &facade.FixtureFile{
		Path: "/proj/main.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/main.ts", Name: "run", Kind: "function", Line: 1, Column: 1, HasBody: true},
		},
		Identifiers: map[string][]facade.FixtureIdentifier{
			"run": {{Name: "externalLib", Pos: facade.Position{Line: 2, Column: 1}}},
		},
	}
	fc := facade.NewFixture(main)
	g, err := Build(context.Background(), fc, []string{"/proj/main.ts"})
	if err != nil {
		t.Fatal(err)
	}

	from := model.NewSymbolID("/proj/main.ts", "run")
	for _, e := range g.OutEdges(from) {
		t.Fatalf("expected no outgoing edges for unresolved identifier, got %+v", e)
	}
}

func TestAddEdgeRejectsSelfAndDuplicates(t *testing.T) {
	g := New()
	a := model.NewSymbolID("/proj/a.ts", "a")
	b := model.NewSymbolID("/proj/a.ts", "b")

	g.AddEdge(model.Edge{From: a, To: a, Type: model.EdgeCall})
	if g.HasEdge(a, a) {
		t.Fatal("self-edge should be rejected")
	}

	g.AddEdge(model.Edge{From: a, To: b, Type: model.EdgeCall, Line: 1})
	g.AddEdge(model.Edge{From: a, To: b, Type: model.EdgeCall, Line: 2})
	edges := g.OutEdges(a)
	if len(edges) != 1 {
		t.Fatalf("expected duplicate ordered pair to collapse to one edge, got %d", len(edges))
	}
}

func TestContainingDeclarationIDPicksInnermostRangeOverFallbackToModule(t *testing.T) {
	decls := []facade.DeclarationNode{
		{File: "/proj/home.tsx", Name: "Component", Line: 1, EndLine: 10},
		{File: "/proj/home.tsx", Name: "Widget", Line: 12, EndLine: 30},
		{File: "/proj/home.tsx", Name: "Widget.render", Line: 15, EndLine: 20, ParentName: "Widget"},
	}

	cases := []struct {
		name string
		site facade.ReferenceSite
		want string
	}{
		{"inside top-level Component", facade.ReferenceSite{File: "/proj/home.tsx", Line: 5}, "Component"},
		{"inside nested method, not its enclosing class", facade.ReferenceSite{File: "/proj/home.tsx", Line: 17}, "Widget.render"},
		{"inside Widget but outside render", facade.ReferenceSite{File: "/proj/home.tsx", Line: 13}, "Widget"},
		{"outside every declaration", facade.ReferenceSite{File: "/proj/home.tsx", Line: 40}, model.ModuleSymbolName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := containingDeclarationID(decls, tc.site)
			want := model.NewSymbolID("/proj/home.tsx", tc.want)
			if got != want {
				t.Errorf("expected container %s, got %s", want, got)
			}
		})
	}
}

// TestBuildAttributesIncomingEdgeToInnermostDeclarationNotModule guards
// against a route file's module node ever gaining an edge to a target that
// is only ever referenced from inside an unrelated, never-called local
// declaration (the §8.2 S1 shape: a framework entry file whose <module>
// node being an entry must not make every declaration in the file look
// used).
func TestBuildAttributesIncomingEdgeToInnermostDeclarationNotModule(t *testing.T) {
	lib := &facade.FixtureFile{
		Path: "/proj/lib.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/lib.ts", Name: "shared", Kind: "function", Line: 1, Column: 1, Exported: true},
		},
	}
	home := &facade.FixtureFile{
		Path: "/proj/home.tsx",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/home.tsx", Name: "Component", Kind: "function", Line: 1, Column: 1, EndLine: 10, Exported: true},
			{File: "/proj/home.tsx", Name: "deadHelperFn", Kind: "function", Line: 20, Column: 1, EndLine: 25},
		},
		Identifiers: map[string][]facade.FixtureIdentifier{
			"Component":   {{Name: "shared", Pos: facade.Position{Line: 5, Column: 1}, TargetFile: "/proj/lib.ts", TargetName: "shared"}},
			"deadHelperFn": {{Name: "shared", Pos: facade.Position{Line: 22, Column: 1}, TargetFile: "/proj/lib.ts", TargetName: "shared"}},
		},
	}

	fc := facade.NewFixture(lib, home)
	g, err := Build(context.Background(), fc, []string{"/proj/lib.ts", "/proj/home.tsx"})
	if err != nil {
		t.Fatal(err)
	}

	shared := model.NewSymbolID("/proj/lib.ts", "shared")
	component := model.NewSymbolID("/proj/home.tsx", "Component")
	deadHelper := model.NewSymbolID("/proj/home.tsx", "deadHelperFn")
	moduleNode := model.NewSymbolID("/proj/home.tsx", model.ModuleSymbolName)

	if !g.HasEdge(component, shared) {
		t.Error("expected Component -> shared, the reference site falls inside Component's range")
	}
	if !g.HasEdge(deadHelper, shared) {
		t.Error("expected deadHelperFn -> shared, the reference site falls inside deadHelperFn's range")
	}
	if g.HasEdge(moduleNode, shared) {
		t.Error("neither reference site is outside a declaration's range; <module> must not gain an edge to shared")
	}
}

func TestAddEdgeCreatesMissingEndpointsOnDemand(t *testing.T) {
	g := New()
	a := model.NewSymbolID("/proj/a.ts", "a")
	b := model.NewSymbolID("/proj/a.ts", "b")

	g.AddEdge(model.Edge{From: a, To: b, Type: model.EdgeCall})

	if g.Node(a) == nil || g.Node(b) == nil {
		t.Fatal("both endpoints should exist as nodes after AddEdge (graph soundness)")
	}
}
