package engine

import (
	"context"
	"testing"
	"time"

	"github.com/sweepa/sweepa/internal/baseline"
	"github.com/sweepa/sweepa/internal/core/config"
	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
)

func testProject() *facade.Fixture {
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
		Declarations: []facade.DeclarationNode{
			{File: "/proj/main.ts", Name: "run", Kind: "function", Line: 1, Column: 1, Exported: true, HasBody: true},
		},
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "helper", LocalName: "helper", ModuleSpecifier: "./lib"},
		},
		Identifiers: map[string][]facade.FixtureIdentifier{
			"run": {{Name: "helper", Pos: facade.Position{Line: 2, Column: 3}, TargetFile: "/proj/lib.ts", TargetName: "helper"}},
		},
	}
	orphan := &facade.FixtureFile{
		Path: "/proj/orphan.ts",
		Declarations: []facade.DeclarationNode{
			{File: "/proj/orphan.ts", Name: "unusedThing", Kind: "function", Line: 1, Column: 1, Exported: true},
		},
	}
	return facade.NewFixture(lib, main, orphan)
}

func TestRunFlagsUnusedFileAndUnusedExportButNotTheUsedHelper(t *testing.T) {
	fc := testProject()
	report, err := Run(context.Background(), fc, Options{
		ProjectRoot:  "/proj",
		ManifestPath: "/proj/package.json",
		ManifestData: []byte(`{"dependencies":{}}`),
	})
	if err != nil {
		t.Fatal(err)
	}

	var sawUnusedFile, sawUnusedExportNever, sawHelperFlagged bool
	for _, issue := range report.Issues {
		if issue.Kind == model.IssueUnusedFile && issue.File == "/proj/orphan.ts" {
			sawUnusedFile = true
		}
		if issue.Kind == model.IssueUnusedExport && issue.Name == "never" {
			sawUnusedExportNever = true
		}
		if issue.Name == "helper" {
			sawHelperFlagged = true
		}
	}
	if !sawUnusedFile {
		t.Errorf("expected orphan.ts to be flagged unused-file, got %+v", report.Issues)
	}
	if !sawUnusedExportNever {
		t.Errorf("expected \"never\" to be flagged unused-export, got %+v", report.Issues)
	}
	if sawHelperFlagged {
		t.Errorf("\"helper\" is used transitively from the main.ts entry point and must not be flagged, got %+v", report.Issues)
	}
	if report.ReachableFiles != 2 {
		t.Errorf("expected exactly main.ts and lib.ts to be reachable, got %d", report.ReachableFiles)
	}
}

func TestRunHonoursConfiguredIgnoreIssues(t *testing.T) {
	fc := testProject()
	cfg := &config.Config{
		IgnoreIssues: map[string][]string{"orphan.ts": {string(model.IssueUnusedFile)}},
	}
	report, err := Run(context.Background(), fc, Options{
		ProjectRoot:  "/proj",
		ManifestPath: "/proj/package.json",
		ManifestData: []byte(`{"dependencies":{}}`),
		Config:       cfg,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, issue := range report.Issues {
		if issue.Kind == model.IssueUnusedFile {
			t.Errorf("expected ignore_issues to suppress orphan.ts's unused-file issue, got %+v", issue)
		}
	}
}

func TestRunDiffsAgainstABaseline(t *testing.T) {
	fc := testProject()
	first, err := Run(context.Background(), fc, Options{
		ProjectRoot:  "/proj",
		ManifestPath: "/proj/package.json",
		ManifestData: []byte(`{"dependencies":{}}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	bl := baseline.New(first.Issues, "/proj", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	second, err := Run(context.Background(), fc, Options{
		ProjectRoot:  "/proj",
		ManifestPath: "/proj/package.json",
		ManifestData: []byte(`{"dependencies":{}}`),
		Baseline:     bl,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Issues) != 0 {
		t.Errorf("expected every issue already in the baseline to be diffed away, got %+v", second.Issues)
	}
}
