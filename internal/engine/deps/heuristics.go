package deps

import (
	"regexp"
	"strings"
)

// typeIndirectionHeuristics is the §4.8 "peer and type indirection" table: if
// the key package is used, the value package is implied used-in-development
// (a types package has no runtime import of its own, so it would otherwise
// always read as unused-dependency). Each entry is explicit, never guessed.
var typeIndirectionHeuristics = map[string]string{
	"react":        "@types/react",
	"react-dom":    "@types/react-dom",
	"express":      "@types/express",
	"node":         "@types/node",
	"lodash":       "@types/lodash",
	"jest":         "@types/jest",
	"jsonwebtoken": "@types/jsonwebtoken",
	"uuid":         "@types/uuid",
}

// applyTypeIndirection records development usage for every types package
// implied by an already-used runtime package, per typeIndirectionHeuristics.
func applyTypeIndirection(m *Manifest, usage map[string]*PackageUsage, byFile string) {
	for runtimePkg, typesPkg := range typeIndirectionHeuristics {
		if _, ok := usage[runtimePkg]; !ok {
			continue
		}
		if prod, dev := m.listedIn(typesPkg); !prod && !dev {
			continue
		}
		u := ensurePackageUsage(usage, typesPkg)
		u.UsedInDevelopment = true
		u.ByFiles[byFile] = true
	}
}

// stylesheetImportRe matches `@import "pkg";` / `@import 'pkg';` lines in a
// stylesheet, capturing the imported specifier.
var stylesheetImportRe = regexp.MustCompile(`@import\s+["']([^"']+)["']`)

// stylesheetImports returns every non-relative specifier named by an
// `@import` rule in a stylesheet's contents (§4.8's "Style-sheet imports").
func stylesheetImports(contents string) []string {
	var specifiers []string
	for _, match := range stylesheetImportRe.FindAllStringSubmatch(contents, -1) {
		spec := match[1]
		if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
			continue
		}
		specifiers = append(specifiers, spec)
	}
	return specifiers
}

// isStylesheetSpecifier reports whether a relative import specifier names a
// stylesheet, by extension.
func isStylesheetSpecifier(specifier string) bool {
	for _, ext := range []string{".css", ".scss", ".sass", ".less"} {
		if strings.HasSuffix(specifier, ext) {
			return true
		}
	}
	return false
}
