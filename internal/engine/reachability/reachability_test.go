package reachability

import (
	"context"
	"testing"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/resolver"
	"github.com/sweepa/sweepa/internal/frameworks"
)

func TestComputeReachesThroughImportChain(t *testing.T) {
	index := &facade.FixtureFile{
		Path:             "/proj/src/index.ts",
		ModuleSpecifiers: []string{"./index"},
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "helper", ModuleSpecifier: "./helpers"},
		},
	}
	helpers := &facade.FixtureFile{
		Path:             "/proj/src/helpers.ts",
		ModuleSpecifiers: []string{"./helpers"},
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "deep", ModuleSpecifier: "./deep"},
		},
	}
	deep := &facade.FixtureFile{
		Path:             "/proj/src/deep.ts",
		ModuleSpecifiers: []string{"./deep"},
	}
	orphan := &facade.FixtureFile{Path: "/proj/src/orphan.ts"}

	fc := facade.NewFixture(index, helpers, deep, orphan)
	res := resolver.New(fc)
	reg := frameworks.Detect(frameworks.Builtin(), "/proj", frameworks.ProjectManifest{})

	result, err := Compute(context.Background(), fc, res, reg, "/proj", Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !result.Entry["/proj/src/index.ts"] {
		t.Fatal("expected src/index.ts to be seeded as an entry by its basename")
	}
	for _, f := range []string{"/proj/src/index.ts", "/proj/src/helpers.ts", "/proj/src/deep.ts"} {
		if !result.Reachable[f] {
			t.Errorf("expected %s to be reachable", f)
		}
	}
	if result.Reachable["/proj/src/orphan.ts"] {
		t.Error("orphan.ts is not imported by anything and is not an entry; should not be reachable")
	}
}

func TestCandidateSetExcludesNodeModulesAndDeclarationFiles(t *testing.T) {
	normal := &facade.FixtureFile{Path: "/proj/src/app.ts"}
	vendored := &facade.FixtureFile{Path: "/proj/node_modules/pkg/index.ts"}
	typesOnly := &facade.FixtureFile{Path: "/proj/src/types.d.ts"}

	fc := facade.NewFixture(normal, vendored, typesOnly)
	res := resolver.New(fc)
	reg := frameworks.Detect(frameworks.Builtin(), "/proj", frameworks.ProjectManifest{})

	result, err := Compute(context.Background(), fc, res, reg, "/proj", Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !result.FileIndex["/proj/src/app.ts"] {
		t.Error("expected src/app.ts in the candidate set")
	}
	if result.FileIndex["/proj/node_modules/pkg/index.ts"] {
		t.Error("node_modules files must be excluded from the candidate set")
	}
	if result.FileIndex["/proj/src/types.d.ts"] {
		t.Error("declaration-only files must be excluded from the candidate set")
	}
}

func TestIgnoreGeneratedExcludesGeneratedFiles(t *testing.T) {
	gen := &facade.FixtureFile{Path: "/proj/src/schema.generated.ts"}
	fc := facade.NewFixture(gen)
	res := resolver.New(fc)
	reg := frameworks.Detect(frameworks.Builtin(), "/proj", frameworks.ProjectManifest{})

	result, err := Compute(context.Background(), fc, res, reg, "/proj", Options{IgnoreGenerated: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.FileIndex["/proj/src/schema.generated.ts"] {
		t.Error("generated file should be excluded when IgnoreGenerated is set")
	}
}

func TestExcludeGlobsDropMatchingFilesFromTheCandidateSet(t *testing.T) {
	kept := &facade.FixtureFile{Path: "/proj/src/app.ts"}
	dropped := &facade.FixtureFile{Path: "/proj/src/fixtures/sample.ts"}
	fc := facade.NewFixture(kept, dropped)
	res := resolver.New(fc)
	reg := frameworks.Detect(frameworks.Builtin(), "/proj", frameworks.ProjectManifest{})

	result, err := Compute(context.Background(), fc, res, reg, "/proj", Options{ExcludeGlobs: []string{"src/fixtures/**"}})
	if err != nil {
		t.Fatal(err)
	}
	if !result.FileIndex["/proj/src/app.ts"] {
		t.Error("expected app.ts to remain a candidate")
	}
	if result.FileIndex["/proj/src/fixtures/sample.ts"] {
		t.Error("expected a file matching paths.exclude to be dropped from the candidate set")
	}
}

func TestExtraEntryGlobsSeedNonConventionalEntryFiles(t *testing.T) {
	bin := &facade.FixtureFile{Path: "/proj/bin/cli.ts"}
	other := &facade.FixtureFile{Path: "/proj/src/unrelated.ts"}
	fc := facade.NewFixture(bin, other)
	res := resolver.New(fc)
	reg := frameworks.Detect(frameworks.Builtin(), "/proj", frameworks.ProjectManifest{})

	result, err := Compute(context.Background(), fc, res, reg, "/proj", Options{ExtraEntryGlobs: []string{"bin/*"}})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Entry["/proj/bin/cli.ts"] {
		t.Error("expected bin/cli.ts to be seeded as an entry via paths.entries")
	}
	if result.Entry["/proj/src/unrelated.ts"] {
		t.Error("unrelated.ts matches no entry pattern and no convention; should not be seeded")
	}
}
