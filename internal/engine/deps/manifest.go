// Package deps implements the Dependency Analyzer (C8): classification of
// every manifest-listed package as used-in-production, used-in-development,
// unlisted, unused, or misplaced, plus unresolved-import detection. The
// package/builtin/local three-way split a using specifier is first run
// through mirrors the ResolvedImportType shape (UserModule / NodeModule /
// BuiltInModule / MonorepoModule) in other_examples' parseImports.go;
// manifest decoding is plain encoding/json, matching how every
// dependency-analysis example in the pack treats a package manifest as
// ordinary JSON rather than reaching for a schema library.
package deps

import (
	"encoding/json"

	"github.com/sweepa/sweepa/internal/frameworks"
)

// Manifest is the decoded form of the nearest package manifest (§4.8).
type Manifest struct {
	Path string

	Dependencies     map[string]string
	DevDependencies  map[string]string
	PeerDependencies map[string]string
	Scripts          map[string]string
}

// manifestJSON mirrors the on-disk shape; decoded then copied into Manifest
// so the rest of the package never depends on encoding/json's field tags.
type manifestJSON struct {
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	Scripts          map[string]string `json:"scripts"`
}

// ParseManifest decodes a manifest file's raw bytes. path is stored as
// Manifest.Path, the file that manifest-level issues are reported against.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	var raw manifestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := &Manifest{
		Path:             path,
		Dependencies:     raw.Dependencies,
		DevDependencies:  raw.DevDependencies,
		PeerDependencies: raw.PeerDependencies,
		Scripts:          raw.Scripts,
	}
	if m.Dependencies == nil {
		m.Dependencies = map[string]string{}
	}
	if m.DevDependencies == nil {
		m.DevDependencies = map[string]string{}
	}
	if m.PeerDependencies == nil {
		m.PeerDependencies = map[string]string{}
	}
	if m.Scripts == nil {
		m.Scripts = map[string]string{}
	}
	return m, nil
}

// Section names an issue's current_section / recommended_section context.
const (
	SectionProduction  = "production"
	SectionDevelopment = "development"
)

// listedIn reports which section(s), if any, name pkg.
func (m *Manifest) listedIn(pkg string) (production, development bool) {
	_, production = m.Dependencies[pkg]
	_, development = m.DevDependencies[pkg]
	return
}

// ToFrameworkManifest narrows Manifest to the view the framework registry
// needs for detection (§4.3).
func (m *Manifest) ToFrameworkManifest() frameworks.ProjectManifest {
	return frameworks.ProjectManifest{
		Dependencies:    m.Dependencies,
		DevDependencies: m.DevDependencies,
	}
}
