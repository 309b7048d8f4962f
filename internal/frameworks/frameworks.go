// Package frameworks implements the Framework Registry (C3): a set of
// pluggable detectors, each contributing entry-file patterns, an
// export-usage policy, and ignore patterns that the reachability engine
// folds into its entry-point and export-analysis phases. Pattern matching
// follows the teacher's LayerRuleEngine — glob-compiled where a pattern
// contains wildcard characters, a plain path-prefix match otherwise.
package frameworks

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/sweepa/sweepa/internal/shared/util"
)

// UsedExportNames is either a concrete set of export names a matching entry
// file's module is presumed to use, or the sentinel AllExportNames meaning
// "treat every export of this file as used."
type UsedExportNames struct {
	All   bool
	Names map[string]bool
}

// AllExportNames is the §4.3 ALL sentinel.
var AllExportNames = UsedExportNames{All: true}

// EntryConfig is one detector's contribution to the registry (§4.3 item 2).
type EntryConfig struct {
	EntryFilePatterns []string
	UsedExportNames   UsedExportNames
	IgnorePatterns    []string
}

// Detector is a pluggable framework recognizer (§4.3). ProjectManifest is a
// minimal view of the dependency manifest sufficient for detection; callers
// build it from the C8 dependency analyzer's parsed manifest.
type Detector interface {
	Name() string
	Detect(projectRoot string, manifest ProjectManifest) (detected bool, version string)
	EntryConfig() EntryConfig
	// RetainDecorators names decorators that, when present on a symbol,
	// exempt it from unused-* reporting regardless of reachability. Nil
	// or empty for detectors with no decorator convention.
	RetainDecorators() map[string]bool
}

// ProjectManifest is the subset of manifest data a detector needs to decide
// whether it applies.
type ProjectManifest struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
}

// HasDependency reports whether name appears in either dependency section.
func (m ProjectManifest) HasDependency(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

type compiledPattern struct {
	raw        string
	isWildcard bool
	glob       glob.Glob
}

func compilePattern(raw string) compiledPattern {
	pattern := util.NormalizePatternPath(raw)
	cp := compiledPattern{
		raw:        pattern,
		isWildcard: strings.ContainsAny(pattern, "*?[]{}"),
	}
	if cp.isWildcard {
		if g, err := glob.Compile(pattern, '/'); err == nil {
			cp.glob = g
		}
	}
	return cp
}

func (p compiledPattern) match(relPath string) bool {
	relPath = util.NormalizePatternPath(relPath)
	if p.isWildcard {
		return p.glob != nil && p.glob.Match(relPath)
	}
	return util.HasPathPrefix(relPath, p.raw)
}

// Registry aggregates every detected framework's config into the union the
// rest of the engine consumes (§4.3: "union of patterns, union of ignore
// patterns, and a mapping pattern -> export_names | ALL").
type Registry struct {
	entryPatterns    []compiledPattern
	ignorePatterns   []compiledPattern
	usedByPattern    map[string]UsedExportNames
	retainDecorators map[string]bool
	detectedNames    []string
}

// Detect runs every registered detector against the manifest and builds the
// aggregated Registry from whichever detectors matched.
func Detect(detectors []Detector, projectRoot string, manifest ProjectManifest) *Registry {
	r := &Registry{
		usedByPattern:    make(map[string]UsedExportNames),
		retainDecorators: make(map[string]bool),
	}

	for _, d := range detectors {
		detected, _ := d.Detect(projectRoot, manifest)
		if !detected {
			continue
		}
		r.detectedNames = append(r.detectedNames, d.Name())

		cfg := d.EntryConfig()
		for _, pat := range cfg.EntryFilePatterns {
			cp := compilePattern(pat)
			r.entryPatterns = append(r.entryPatterns, cp)
			r.usedByPattern[cp.raw] = cfg.UsedExportNames
		}
		for _, pat := range cfg.IgnorePatterns {
			r.ignorePatterns = append(r.ignorePatterns, compilePattern(pat))
		}
		for name := range d.RetainDecorators() {
			r.retainDecorators[name] = true
		}
	}

	return r
}

// DetectedFrameworks returns the names of every detector that matched, in
// detection order.
func (r *Registry) DetectedFrameworks() []string {
	return r.detectedNames
}

// IsEntryFile reports whether relPath matches any detected framework's
// entry-file pattern, and if so what usage policy applies to that file's
// exports.
func (r *Registry) IsEntryFile(relPath string) (bool, UsedExportNames) {
	for _, p := range r.entryPatterns {
		if p.match(relPath) {
			return true, r.usedByPattern[p.raw]
		}
	}
	return false, UsedExportNames{}
}

// IsIgnored reports whether relPath matches any detected framework's ignore
// pattern.
func (r *Registry) IsIgnored(relPath string) bool {
	for _, p := range r.ignorePatterns {
		if p.match(relPath) {
			return true
		}
	}
	return false
}

// RetainsDecorator reports whether name is a decorator that exempts its
// target from unused-* reporting.
func (r *Registry) RetainsDecorator(name string) bool {
	return r.retainDecorators[name]
}
