// Package exports implements Module-Boundary Export Analysis (C7): a
// whole-module view collecting each reachable file's exports and each
// reachable file's import usage, then propagating "used" through re-export
// chains to a fixpoint. The collect/mark/propagate shape is grounded on
// other_examples' FindUnusedExports (markUsed/markAllUsed and its
// re-export-origin propagation), generalized here to also track types and a
// bounded star-reexport fixpoint rather than a single pass.
package exports

import (
	"context"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/resolver"
)

// Mode selects which reachable files C7 considers (§4.7).
type Mode string

const (
	ModeBarrels Mode = "barrels"
	ModeAll     Mode = "all"
)

// Result holds the per-file provenance and usage tables C7 builds and their
// fixpoint outcome.
type Result struct {
	Provenance map[string]*model.ExportProvenance
	Usage      map[string]*model.FileUsage
}

// Analyze runs the full §4.7 algorithm: collect exports, collect usage,
// propagate to a fixpoint, then hands the caller everything needed to
// report unused-exported / unused-exported-type.
func Analyze(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, reachable map[string]bool, mode Mode, skipReporting map[string]bool) (*Result, error) {
	provenance := make(map[string]*model.ExportProvenance)
	usage := make(map[string]*model.FileUsage)

	for file := range reachable {
		if mode == ModeBarrels && !isBarrelLike(ctx, fc, file) {
			continue
		}
		prov, err := collectExports(ctx, fc, res, file)
		if err != nil {
			return nil, err
		}
		prov.SkipReporting = skipReporting[file]
		provenance[file] = prov
	}

	usageOf := func(target string) *model.FileUsage {
		if usage[target] == nil {
			usage[target] = model.NewFileUsage(target)
		}
		return usage[target]
	}

	for file := range reachable {
		if err := accumulateUsage(ctx, fc, res, file, usageOf); err != nil {
			return nil, err
		}
	}

	propagate(provenance, usage)

	return &Result{Provenance: provenance, Usage: usage}, nil
}

// isBarrelLike matches §4.7's barrels mode: a file named index.* or one
// containing at least one re-export clause.
func isBarrelLike(ctx context.Context, fc facade.CompilerFacade, file string) bool {
	if isIndexFile(file) {
		return true
	}
	exportsList, err := fc.Exports(ctx, file)
	if err != nil {
		return false
	}
	for _, e := range exportsList {
		if e.ReexportFrom != "" {
			return true
		}
	}
	return false
}

func isIndexFile(file string) bool {
	base := lastPathSegment(file)
	return len(base) >= 6 && base[:6] == "index."
}

func lastPathSegment(file string) string {
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' || file[i] == '\\' {
			return file[i+1:]
		}
	}
	return file
}

func collectExports(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, file string) (*model.ExportProvenance, error) {
	prov := model.NewExportProvenance(file)

	specs, err := fc.Exports(ctx, file)
	if err != nil {
		return nil, err
	}
	decls, err := fc.Declarations(ctx, file)
	if err != nil {
		return nil, err
	}
	declKind := make(map[string]model.Kind, len(decls))
	for _, d := range decls {
		declKind[d.Name] = model.Kind(d.Kind)
	}

	for _, spec := range specs {
		switch spec.Kind {
		case facade.ExportStar:
			if spec.ReexportFrom != "" {
				if target, ok := res.Resolve(ctx, spec.ReexportFrom, file); ok {
					prov.StarReexportTargets[target] = true
				}
			}
			continue
		case facade.ExportStarAs:
			// export * as name from './mod': defines a named export whose
			// value is the whole namespace; treat it as a value export with
			// no single origin (namespace re-exports are not name-propagated).
			name := spec.ExportedName
			if name == "" {
				continue
			}
			prov.ValueExports[name] = true
			continue
		}

		name := spec.ExportedName
		if name == "" {
			name = spec.LocalName
		}
		if name == "" {
			continue
		}

		isType := spec.IsType || isTypeKind(declKind[spec.LocalName])
		if isType {
			prov.TypeExports[name] = true
		} else {
			prov.ValueExports[name] = true
		}

		if spec.ReexportFrom == "" {
			continue
		}
		target, ok := res.Resolve(ctx, spec.ReexportFrom, file)
		if !ok {
			continue
		}
		origin := model.OriginRef{File: target, Name: spec.LocalName}
		if origin.Name == "" {
			origin.Name = name
		}
		if isType {
			prov.TypeOrigins[name] = append(prov.TypeOrigins[name], origin)
		} else {
			prov.ValueOrigins[name] = append(prov.ValueOrigins[name], origin)
		}
	}

	return prov, nil
}

func isTypeKind(k model.Kind) bool {
	return k == model.KindInterface || k == model.KindType
}

// accumulateUsage folds file's import declarations into the usage record of
// each import target, via usageOf (§4.7 step 2). Named imports add to
// used_values/used_types; type-only syntax routes to the type set. Default
// and namespace imports set uses_all on the target, since without
// inspecting the importer it is unsafe to track which specific names it
// reaches through the namespace.
func accumulateUsage(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, file string, usageOf func(string) *model.FileUsage) error {
	imports, err := fc.Imports(ctx, file)
	if err != nil {
		return err
	}

	for _, imp := range imports {
		target, ok := res.Resolve(ctx, imp.ModuleSpecifier, file)
		if !ok {
			continue
		}
		tu := usageOf(target)
		switch imp.Kind {
		case facade.ImportDefault, facade.ImportNamespace:
			tu.UsesAll = true
		case facade.ImportNamed:
			if imp.TypeOnly {
				tu.UsedTypes[imp.ImportedName] = true
			} else {
				tu.UsedValues[imp.ImportedName] = true
			}
		}
	}
	return nil
}
