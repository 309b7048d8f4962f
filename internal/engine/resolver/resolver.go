// Package resolver implements the Module Resolver (C1) and Specifier
// Classifier (C2): translating a raw import specifier into an absolute file
// path (or absence, for builtins and genuinely unresolved specifiers), with
// results memoized the way the teacher's graph package memoizes lookups.
package resolver

import (
	"context"
	"path/filepath"

	"github.com/sweepa/sweepa/internal/engine/facade"
)

type cacheKey struct {
	specifier string
	dir       string
}

// Resolver is a pure function over the compiler facade, memoized per
// (specifier, containing_directory) as §4.1 allows.
type Resolver struct {
	fc    facade.CompilerFacade
	cache *lruCache[cacheKey, string]
}

// New builds a Resolver backed by fc, with an LRU cache sized for a
// mid-sized project's import graph.
func New(fc facade.CompilerFacade) *Resolver {
	return &Resolver{fc: fc, cache: newLRUCache[cacheKey, string](4096)}
}

// Resolve implements the §4.1 contract: resolve(specifier, containing_file)
// -> absolute_path?. Runtime builtins always resolve absent without
// consulting the facade.
func (r *Resolver) Resolve(ctx context.Context, specifier, containingFile string) (string, bool) {
	if Classify(specifier) == ClassRuntimeBuiltin {
		return "", false
	}

	dir := filepath.Dir(containingFile)
	key := cacheKey{specifier: specifier, dir: dir}
	if cached, ok := r.cache.Get(key); ok {
		return cached, cached != ""
	}

	resolved, err := r.fc.ResolveModule(ctx, specifier, containingFile)
	if err != nil || resolved == "" {
		r.cache.Put(key, "")
		return "", false
	}

	r.cache.Put(key, resolved)
	return resolved, true
}
