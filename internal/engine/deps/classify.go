package deps

import (
	"path/filepath"
	"strings"
)

// isDevelopmentFile classifies a using file as production or development
// (§4.8). Matching is on the project-relative path.
func isDevelopmentFile(relPath string) bool {
	slash := filepath.ToSlash(relPath)
	base := filepath.Base(slash)

	if strings.Contains(base, ".config.") {
		return true
	}
	for _, marker := range []string{"/scripts/", "/bin/", "/__tests__/", "/tests/"} {
		if strings.Contains("/"+slash, marker) {
			return true
		}
	}
	return hasTestOrSpecSuffix(base)
}

// hasTestOrSpecSuffix reports whether base's stem (the name before its
// final extension) ends in ".test" or ".spec", e.g. "foo.test.ts" or
// "foo.spec.tsx".
func hasTestOrSpecSuffix(base string) bool {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec")
}

// withinDependencyRoot reports whether resolvedPath was resolved into the
// installed-dependency tree (e.g. a node_modules directory under
// projectRoot) rather than into the project's own source tree. A resolution
// outside the dependency root names a local/monorepo file, which C8 leaves
// to C4/C7 and never counts as package usage.
func withinDependencyRoot(resolvedPath, dependencyRootName string) bool {
	parts := strings.Split(filepath.ToSlash(resolvedPath), "/")
	for _, p := range parts {
		if p == dependencyRootName {
			return true
		}
	}
	return false
}
