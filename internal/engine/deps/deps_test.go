package deps

import (
	"context"
	"testing"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/resolver"
)

func parseTestManifest(t *testing.T, json string) *Manifest {
	t.Helper()
	m, err := ParseManifest("/proj/package.json", []byte(json))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestIsDevelopmentFile(t *testing.T) {
	cases := map[string]bool{
		"src/server.ts":          false,
		"src/server.test.ts":     true,
		"src/server.spec.tsx":    true,
		"scripts/build.ts":       true,
		"vite.config.ts":         true,
		"__tests__/helpers.ts":   true,
		"tests/fixtures/one.ts":  true,
		"bin/cli.ts":             true,
		"src/index.ts":           false,
	}
	for path, want := range cases {
		if got := isDevelopmentFile(path); got != want {
			t.Errorf("isDevelopmentFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestTokenizeScriptSkipsRunnersAndEnvAssignments(t *testing.T) {
	cases := map[string]string{
		"tsc --noEmit":                     "tsc",
		"NODE_ENV=production node build.js": "build.js",
		"npm run build && jest":            "jest",
		"eslint . --fix":                   "eslint",
	}
	for cmd, want := range cases {
		if got := tokenizeScript(cmd); got != want {
			t.Errorf("tokenizeScript(%q) = %q, want %q", cmd, got, want)
		}
	}
}

func TestResolveToolPackageUsesAlias(t *testing.T) {
	m := parseTestManifest(t, `{"devDependencies": {"typescript": "^5.0.0"}}`)
	pkg, ok := resolveToolPackage(m, "tsc")
	if !ok || pkg != "typescript" {
		t.Fatalf("expected tsc to resolve to typescript via alias, got %q, %v", pkg, ok)
	}
}

func TestStylesheetImportsSkipsRelative(t *testing.T) {
	css := `@import "./local.css"; @import "normalize.css"; @import 'bulma';`
	got := stylesheetImports(css)
	want := []string{"normalize.css", "bulma"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAnalyzeRecordsProductionAndDevelopmentUsage(t *testing.T) {
	manifest := parseTestManifest(t, `{
		"dependencies": {"lodash": "^4.0.0"},
		"devDependencies": {"left-pad": "^1.0.0"}
	}`)

	prodFile := &facade.FixtureFile{
		Path: "/proj/src/index.ts",
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "debounce", ModuleSpecifier: "lodash"},
			{Kind: facade.ImportNamed, ImportedName: "x", ModuleSpecifier: "./local"},
		},
	}
	devFile := &facade.FixtureFile{
		Path: "/proj/src/index.test.ts",
		Imports: []facade.ImportSpecifier{
			{Kind: facade.ImportNamed, ImportedName: "pad", ModuleSpecifier: "left-pad"},
		},
	}
	local := &facade.FixtureFile{Path: "/proj/src/local.ts", ModuleSpecifiers: []string{"./local"}}

	fc := facade.NewFixture(prodFile, devFile, local)
	res := resolver.New(fc)

	result, err := Analyze(context.Background(), fc, res, manifest, "/proj", []string{prodFile.Path, devFile.Path})
	if err != nil {
		t.Fatal(err)
	}

	lodash := result.Usage["lodash"]
	if lodash == nil || !lodash.UsedInProduction {
		t.Fatal("expected lodash recorded as used in production")
	}
	leftPad := result.Usage["left-pad"]
	if leftPad == nil || !leftPad.UsedInDevelopment {
		t.Fatal("expected left-pad recorded as used in development")
	}

	issues := result.Report(manifest)
	for _, issue := range issues {
		if issue.Name == "lodash" || issue.Name == "left-pad" {
			t.Fatalf("correctly-placed, used dependency must not be reported, got %+v", issue)
		}
	}
}

func TestReportFlagsUnusedAndMisplacedAndUnlisted(t *testing.T) {
	manifest := parseTestManifest(t, `{
		"dependencies": {"express": "^4.0.0"},
		"devDependencies": {"chalk": "^5.0.0"}
	}`)

	result := &Result{Usage: map[string]*PackageUsage{
		// chalk is listed only in development but actually used in production.
		"chalk": {Name: "chalk", UsedInProduction: true, ByFiles: map[string]bool{"/proj/src/cli.ts": true}},
		// glob is used but never listed anywhere.
		"glob": {Name: "glob", UsedInProduction: true, ByFiles: map[string]bool{"/proj/src/scan.ts": true}},
	}}

	issues := result.Report(manifest)

	var sawUnusedExpress, sawMisplacedChalk, sawUnlistedGlob bool
	for _, issue := range issues {
		switch {
		case issue.Name == "express" && issue.Kind == model.IssueUnusedDependency:
			sawUnusedExpress = true
		case issue.Name == "chalk" && issue.Kind == model.IssueMisplacedDependency:
			sawMisplacedChalk = true
			if issue.Context == nil || issue.Context.RecommendedSection != SectionProduction {
				t.Error("expected chalk's recommended_section to be production")
			}
		case issue.Name == "glob" && issue.Kind == model.IssueUnlistedDependency:
			sawUnlistedGlob = true
		}
	}
	if !sawUnusedExpress {
		t.Error("expected express (listed, never used) to be unused-dependency")
	}
	if !sawMisplacedChalk {
		t.Error("expected chalk (listed dev, used prod) to be misplaced-dependency")
	}
	if !sawUnlistedGlob {
		t.Error("expected glob (used, never listed) to be unlisted-dependency")
	}
}
