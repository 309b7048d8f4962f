package exports

import (
	"context"
	"testing"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/resolver"
)

func TestAnalyzeReportsUnusedExportedValue(t *testing.T) {
	lib := &facade.FixtureFile{
		Path:             "/proj/lib.ts",
		ModuleSpecifiers: []string{"./lib"},
		Declarations: []facade.DeclarationNode{
			{File: "/proj/lib.ts", Name: "helper", Kind: "function", Line: 1, Column: 1, Exported: true},
			{File: "/proj/lib.ts", Name: "never", Kind: "function", Line: 5, Column: 1, Exported: true},
		},
		Exports: []facade.ExportSpecifier{
			{Kind: facade.ExportNamed, LocalName: "helper", ExportedName: "helper"},
			{Kind: facade.ExportNamed, LocalName: "never", ExportedName: "never"},
		},
	}
	main := &facade.FixtureFile{
		Path: "/proj/main.ts",
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "helper", ModuleSpecifier: "./lib"},
		},
	}

	fc := facade.NewFixture(lib, main)
	res := resolver.New(fc)
	reachable := map[string]bool{"/proj/lib.ts": true, "/proj/main.ts": true}

	result, err := Analyze(context.Background(), fc, res, reachable, ModeAll, nil)
	if err != nil {
		t.Fatal(err)
	}
	issues := result.Report()

	var sawNever, sawHelper bool
	for _, i := range issues {
		if i.Name == "never" {
			sawNever = true
		}
		if i.Name == "helper" {
			sawHelper = true
		}
	}
	if !sawNever {
		t.Error("expected \"never\" to be reported unused-exported")
	}
	if sawHelper {
		t.Error("\"helper\" is imported by main.ts and must not be reported")
	}
}

func TestAnalyzePropagatesThroughReexportChain(t *testing.T) {
	// A defines `thing`; B re-exports it as `thing`; C imports `thing` from B.
	a := &facade.FixtureFile{
		Path:             "/proj/a.ts",
		ModuleSpecifiers: []string{"./a"},
		Declarations:     []facade.DeclarationNode{{File: "/proj/a.ts", Name: "thing", Kind: "function", Exported: true}},
		Exports:          []facade.ExportSpecifier{{Kind: facade.ExportNamed, LocalName: "thing", ExportedName: "thing"}},
	}
	b := &facade.FixtureFile{
		Path:             "/proj/b.ts",
		ModuleSpecifiers: []string{"./b"},
		Exports: []facade.ExportSpecifier{
			{Kind: facade.ExportNamed, LocalName: "thing", ExportedName: "thing", ReexportFrom: "./a"},
		},
	}
	c := &facade.FixtureFile{
		Path: "/proj/c.ts",
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "thing", ModuleSpecifier: "./b"},
		},
	}

	fc := facade.NewFixture(a, b, c)
	res := resolver.New(fc)
	reachable := map[string]bool{"/proj/a.ts": true, "/proj/b.ts": true, "/proj/c.ts": true}

	result, err := Analyze(context.Background(), fc, res, reachable, ModeAll, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !result.Usage["/proj/a.ts"].UsedValues["thing"] {
		t.Fatal("expected usage of b's re-exported \"thing\" to propagate back to a.ts's origin")
	}

	for _, issue := range result.Report() {
		if issue.File == "/proj/a.ts" && issue.Name == "thing" {
			t.Fatal("a.ts's \"thing\" should not be reported unused after propagation")
		}
	}
}

func TestNamespaceImportMarksUsesAll(t *testing.T) {
	lib := &facade.FixtureFile{
		Path:             "/proj/lib.ts",
		ModuleSpecifiers: []string{"./lib"},
		Declarations:     []facade.DeclarationNode{{File: "/proj/lib.ts", Name: "a", Kind: "function", Exported: true}},
		Exports:          []facade.ExportSpecifier{{Kind: facade.ExportNamed, LocalName: "a", ExportedName: "a"}},
	}
	main := &facade.FixtureFile{
		Path: "/proj/main.ts",
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamespace, LocalName: "Lib", ModuleSpecifier: "./lib"},
		},
	}

	fc := facade.NewFixture(lib, main)
	res := resolver.New(fc)
	reachable := map[string]bool{"/proj/lib.ts": true, "/proj/main.ts": true}

	result, err := Analyze(context.Background(), fc, res, reachable, ModeAll, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Usage["/proj/lib.ts"].UsesAll {
		t.Fatal("namespace import must set uses_all on the target (§8.1 invariant 6)")
	}
	for _, issue := range result.Report() {
		if issue.File == "/proj/lib.ts" {
			t.Fatalf("uses_all file should report nothing unused, got %+v", issue)
		}
	}
}

func TestSkipReportingSuppressesFrameworkEntryFiles(t *testing.T) {
	page := &facade.FixtureFile{
		Path:         "/proj/app/page.tsx",
		Declarations: []facade.DeclarationNode{{File: "/proj/app/page.tsx", Name: "default", Kind: "function", Exported: true}},
		Exports:      []facade.ExportSpecifier{{Kind: facade.ExportDefault, LocalName: "default", ExportedName: "default"}},
	}
	fc := facade.NewFixture(page)
	res := resolver.New(fc)
	reachable := map[string]bool{"/proj/app/page.tsx": true}

	result, err := Analyze(context.Background(), fc, res, reachable, ModeAll, map[string]bool{"/proj/app/page.tsx": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Report()) != 0 {
		t.Fatal("skip_reporting file must never emit unused-exported issues")
	}
}

var _ = model.IssueUnusedExported
