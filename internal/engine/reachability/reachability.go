// Package reachability implements File Reachability (C4): filtering the
// project's source files down to a candidate set, seeding an entry set from
// framework patterns and conventional root names, then a DFS over imports
// to the reachable set. The traversal shape mirrors the teacher's cycle
// detector (internal/engine/graph/detect.go), generalized from module edges
// to import-specifier edges, and generalizes other_examples'
// FindOrphanFiles, which performs the same entry-seeded reachability DFS at
// file granularity for dead-file detection.
package reachability

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/resolver"
	"github.com/sweepa/sweepa/internal/frameworks"
)

var generatedSuffixes = []string{".gen.ts", ".gen.js", ".generated.ts", ".generated.js"}

var declarationFileRe = regexp.MustCompile(`\.d\.[a-zA-Z]+$`)

var excludedDirSegments = map[string]bool{
	"node_modules": true, "dist": true, "build": true, ".git": true,
}

// rootEntryBasenames matches a file's basename (without extension) against
// the conventional entry-point names common across runtimes and bundlers.
var rootEntryBasenames = map[string]bool{
	"index": true, "main": true, "app": true, "server": true, "worker": true,
}

// configEntryBasenames are well-known config files that are always entries
// regardless of whether anything imports them.
var configEntryBasenames = map[string]bool{
	"vite.config.ts": true, "vite.config.js": true,
	"next.config.js": true, "next.config.ts": true, "next.config.mjs": true,
	"webpack.config.js": true, "rollup.config.js": true,
	"tailwind.config.js": true, "tailwind.config.ts": true,
	"eslint.config.js": true, "eslint.config.mjs": true,
	"playwright.config.ts": true, "vitest.config.ts": true, "jest.config.js": true,
	"tsconfig.json": true,
}

// Options configures one reachability run (§4.4 inputs).
type Options struct {
	IgnoreGenerated bool

	// ExcludeGlobs holds paths.exclude patterns (project-relative, glob
	// syntax) to drop from the candidate set before entry-seeding, on top
	// of the always-excluded node_modules/dist/build/.git segments.
	ExcludeGlobs []string
	// ExtraEntryGlobs holds paths.entries patterns naming additional
	// entry points beyond the framework/convention-seeded set, for a
	// project whose real entry points don't match any convention (a
	// CLI's bin script, a worker started only from a process manager).
	ExtraEntryGlobs []string
}

// Result is the §4.4 return value: the candidate file index, the seeded
// entry set, and the reachable set a DFS from entries produced.
type Result struct {
	FileIndex map[string]bool
	Entry     map[string]bool
	Reachable map[string]bool
}

// Compute runs the C4 algorithm against every file the facade reports.
func Compute(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, reg *frameworks.Registry, projectRoot string, opts Options) (*Result, error) {
	all, err := fc.ListSourceFiles(ctx)
	if err != nil {
		return nil, err
	}

	candidate := buildCandidateSet(all, projectRoot, opts)
	entry := buildEntrySet(candidate, projectRoot, reg, opts)
	reachable := dfsReachable(ctx, fc, res, candidate, entry)

	return &Result{FileIndex: candidate, Entry: entry, Reachable: reachable}, nil
}

func buildCandidateSet(all []string, projectRoot string, opts Options) map[string]bool {
	excludes := compileGlobs(opts.ExcludeGlobs)
	candidate := make(map[string]bool, len(all))
	for _, file := range all {
		if isExcludedPath(file) {
			continue
		}
		if declarationFileRe.MatchString(file) {
			continue
		}
		if opts.IgnoreGenerated && looksGenerated(file) {
			continue
		}
		if matchesAny(excludes, relativeTo(projectRoot, file)) {
			continue
		}
		candidate[file] = true
	}
	return candidate
}

func compileGlobs(patterns []string) []glob.Glob {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func isExcludedPath(file string) bool {
	for _, seg := range strings.Split(filepathToSlash(file), "/") {
		if excludedDirSegments[seg] {
			return true
		}
	}
	return false
}

func looksGenerated(file string) bool {
	slash := filepathToSlash(file)
	if strings.Contains(slash, "/generated/") {
		return true
	}
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(slash, suffix) {
			return true
		}
	}
	return false
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func buildEntrySet(candidate map[string]bool, projectRoot string, reg *frameworks.Registry, opts Options) map[string]bool {
	extra := compileGlobs(opts.ExtraEntryGlobs)
	entry := make(map[string]bool)
	for file := range candidate {
		rel := relativeTo(projectRoot, file)
		if reg != nil {
			if isEntry, _ := reg.IsEntryFile(rel); isEntry {
				entry[file] = true
				continue
			}
		}
		if matchesAny(extra, rel) {
			entry[file] = true
			continue
		}
		base := path.Base(rel)
		if configEntryBasenames[base] {
			entry[file] = true
			continue
		}
		stem := strings.TrimSuffix(base, path.Ext(base))
		if rootEntryBasenames[stem] {
			entry[file] = true
		}
	}
	return entry
}

func relativeTo(root, file string) string {
	slash := filepathToSlash(file)
	rootSlash := filepathToSlash(root)
	if rootSlash != "" && strings.HasPrefix(slash, rootSlash) {
		slash = strings.TrimPrefix(slash, rootSlash)
		slash = strings.TrimPrefix(slash, "/")
	}
	return slash
}

func dfsReachable(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, candidate, entry map[string]bool) map[string]bool {
	reachable := make(map[string]bool, len(entry))
	stack := make([]string, 0, len(entry))
	for file := range entry {
		reachable[file] = true
		stack = append(stack, file)
	}

	for len(stack) > 0 {
		file := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		specifiers := moduleSpecifiersOf(ctx, fc, file)
		for _, spec := range specifiers {
			target, ok := res.Resolve(ctx, spec, file)
			if !ok || target == "" {
				continue
			}
			if !candidate[target] {
				continue
			}
			if reachable[target] {
				continue
			}
			reachable[target] = true
			stack = append(stack, target)
		}
	}

	return reachable
}

func moduleSpecifiersOf(ctx context.Context, fc facade.CompilerFacade, file string) []string {
	var specs []string
	imports, err := fc.Imports(ctx, file)
	if err == nil {
		for _, imp := range imports {
			specs = append(specs, imp.ModuleSpecifier)
		}
	}
	exports, err := fc.Exports(ctx, file)
	if err == nil {
		for _, exp := range exports {
			if exp.ReexportFrom != "" {
				specs = append(specs, exp.ReexportFrom)
			}
		}
	}
	return specs
}
