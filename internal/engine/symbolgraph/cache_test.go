package symbolgraph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sweepa/sweepa/internal/engine/facade"
)

func buildFixtureGraph(t *testing.T) (*facade.Fixture, []string) {
	t.Helper()
	lib := &facade.FixtureFile{
		Path: "/proj/lib.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/lib.ts", Name: "helper", Kind: "function", Line: 1, Column: 1, Exported: true},
		},
	}
	main := &facade.FixtureFile{
		Path: "/proj/main.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/main.ts", Name: "run", Kind: "function", Line: 1, Column: 1, HasBody: true},
		},
		Identifiers: map[string][]facade.FixtureIdentifier{
			"run": {{Name: "helper", Pos: facade.Position{Line: 2, Column: 3}, TargetFile: "/proj/lib.ts", TargetName: "helper"}},
		},
	}
	return facade.NewFixture(lib, main), []string{"/proj/lib.ts", "/proj/main.ts"}
}

func TestCacheStoreThenLoadReproducesTheGraph(t *testing.T) {
	fc, files := buildFixtureGraph(t)
	original, err := Build(context.Background(), fc, files)
	if err != nil {
		t.Fatal(err)
	}

	cachePath := filepath.Join(t.TempDir(), "symbols.sqlite")
	cache, err := OpenCache(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if err := cache.Store(original, files); err != nil {
		t.Fatal(err)
	}

	loaded, err := cache.Load(files)
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("expected a cache hit for a matching file manifest")
	}
	if len(loaded.Nodes()) != len(original.Nodes()) {
		t.Fatalf("expected %d nodes, got %d", len(original.Nodes()), len(loaded.Nodes()))
	}
	for _, sym := range original.Nodes() {
		if loaded.Node(sym.ID) == nil {
			t.Fatalf("expected loaded graph to contain %s", sym.ID)
		}
		for _, e := range original.OutEdges(sym.ID) {
			if !loaded.HasEdge(e.From, e.To) {
				t.Fatalf("expected loaded graph to contain edge %s -> %s", e.From, e.To)
			}
		}
	}
}

func TestCacheLoadMissesOnAChangedFileManifest(t *testing.T) {
	fc, files := buildFixtureGraph(t)
	g, err := Build(context.Background(), fc, files)
	if err != nil {
		t.Fatal(err)
	}

	cachePath := filepath.Join(t.TempDir(), "symbols.sqlite")
	cache, err := OpenCache(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if err := cache.Store(g, files); err != nil {
		t.Fatal(err)
	}

	loaded, err := cache.Load(append(files, "/proj/new.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Fatal("expected a cache miss when the candidate file set has changed")
	}
}

func TestBuildOrLoadFallsBackToBuildOnANilCache(t *testing.T) {
	fc, files := buildFixtureGraph(t)
	g, err := BuildOrLoad(context.Background(), fc, files, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes()) == 0 {
		t.Fatal("expected BuildOrLoad to build a real graph with a nil cache")
	}
}

func TestBuildOrLoadPopulatesAndThenReusesTheCache(t *testing.T) {
	fc, files := buildFixtureGraph(t)
	cachePath := filepath.Join(t.TempDir(), "symbols.sqlite")
	cache, err := OpenCache(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	first, err := BuildOrLoad(context.Background(), fc, files, cache)
	if err != nil {
		t.Fatal(err)
	}

	second, err := BuildOrLoad(context.Background(), fc, files, cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Nodes()) != len(first.Nodes()) {
		t.Fatalf("expected the second call to reuse the cached graph, got %d nodes want %d", len(second.Nodes()), len(first.Nodes()))
	}
}
