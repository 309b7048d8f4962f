package fixer

import (
	"encoding/json"
	"testing"

	"github.com/sweepa/sweepa/internal/engine/deps"
)

func decodeSection(t *testing.T, data []byte, key string) map[string]string {
	t.Helper()
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	raw, ok := doc[key]
	if !ok {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRemoveDependenciesDeletesFromEverySectionAndDropsEmptyOnes(t *testing.T) {
	manifest := []byte(`{
		"name": "app",
		"dependencies": {"lodash": "^4.0.0"},
		"devDependencies": {"vitest": "^1.0.0", "eslint": "^9.0.0"}
	}`)

	out, err := RemoveDependencies(manifest, []string{"lodash", "vitest"})
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["dependencies"]; ok {
		t.Fatalf("expected an emptied dependencies section to be deleted")
	}
	if _, ok := doc["name"]; !ok {
		t.Fatalf("expected unrelated fields to survive untouched")
	}
	dev := decodeSection(t, out, "devDependencies")
	if len(dev) != 1 || dev["eslint"] != "^9.0.0" {
		t.Fatalf("expected only eslint to remain in devDependencies, got %+v", dev)
	}
}

func TestMoveDependencyRelocatesBetweenSections(t *testing.T) {
	manifest := []byte(`{"dependencies": {"left-pad": "^1.0.0"}, "devDependencies": {}}`)

	out, err := MoveDependency(manifest, "left-pad", deps.SectionProduction, deps.SectionDevelopment)
	if err != nil {
		t.Fatal(err)
	}

	if decodeSection(t, out, "dependencies") != nil {
		t.Fatalf("expected dependencies section to be deleted once empty")
	}
	dev := decodeSection(t, out, "devDependencies")
	if dev["left-pad"] != "^1.0.0" {
		t.Fatalf("expected left-pad moved into devDependencies, got %+v", dev)
	}
}

func TestMoveDependencyLeavesManifestUntouchedWhenAbsent(t *testing.T) {
	manifest := []byte(`{"dependencies": {"lodash": "^4.0.0"}}`)
	out, err := MoveDependency(manifest, "missing", deps.SectionProduction, deps.SectionDevelopment)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(manifest) {
		t.Fatalf("expected manifest to be returned unmodified, got %s", out)
	}
}
