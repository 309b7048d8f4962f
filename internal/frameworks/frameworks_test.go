package frameworks

import "testing"

func TestDetectTestFrameworkMatchesEntryFiles(t *testing.T) {
	manifest := ProjectManifest{DevDependencies: map[string]string{"vitest": "^1.0.0"}}
	reg := Detect(Builtin(), "/proj", manifest)

	detected := reg.DetectedFrameworks()
	if len(detected) != 1 || detected[0] != "test-runner" {
		t.Fatalf("DetectedFrameworks() = %v, want [test-runner]", detected)
	}

	isEntry, used := reg.IsEntryFile("src/util.test.ts")
	if !isEntry {
		t.Fatal("expected src/util.test.ts to match the test-runner entry pattern")
	}
	if !used.All {
		t.Fatal("expected test-runner entry files to use ALL export names")
	}

	if isEntry, _ := reg.IsEntryFile("src/util.ts"); isEntry {
		t.Fatal("src/util.ts should not match a test entry pattern")
	}
}

func TestDetectFileRoutingNamedExports(t *testing.T) {
	manifest := ProjectManifest{Dependencies: map[string]string{"next": "^14.0.0"}}
	reg := Detect(Builtin(), "/proj", manifest)

	isEntry, used := reg.IsEntryFile("app/dashboard/page.tsx")
	if !isEntry {
		t.Fatal("expected app/dashboard/page.tsx to match a routing entry pattern")
	}
	if used.All {
		t.Fatal("file-based-router should restrict to conventional export names, not ALL")
	}
	if !used.Names["default"] {
		t.Fatal("expected default export to be a recognised routing export name")
	}
	if used.Names["notARealExport"] {
		t.Fatal("unexpected export name marked used")
	}
}

func TestNoFrameworksDetectedYieldsEmptyRegistry(t *testing.T) {
	reg := Detect(Builtin(), "/proj", ProjectManifest{})
	if len(reg.DetectedFrameworks()) != 0 {
		t.Fatalf("expected no detections, got %v", reg.DetectedFrameworks())
	}
	if isEntry, _ := reg.IsEntryFile("app/dashboard/page.tsx"); isEntry {
		t.Fatal("no framework detected, nothing should match as an entry file")
	}
}

func TestSchemaLibraryIgnorePatternAndDecorators(t *testing.T) {
	manifest := ProjectManifest{Dependencies: map[string]string{"prisma": "^5.0.0"}}
	reg := Detect(Builtin(), "/proj", manifest)

	if !reg.IsIgnored("models/user.generated.ts") {
		t.Fatal("expected generated schema file to be ignored")
	}
	if !reg.RetainsDecorator("Entity") {
		t.Fatal("expected Entity decorator to be retained")
	}
	if reg.RetainsDecorator("Unrelated") {
		t.Fatal("unrelated decorator should not be retained")
	}
}
