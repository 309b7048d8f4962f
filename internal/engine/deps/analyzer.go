package deps

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/resolver"
)

// DependencyRootName is the installed-dependency directory name a resolved
// path must pass through to count as package usage rather than a local or
// monorepo-internal file (§4.8).
const DependencyRootName = "node_modules"

// Result holds C8's output: the per-package usage table and any
// unresolved-import issues collected along the way.
type Result struct {
	Usage      map[string]*PackageUsage
	Unresolved []model.Issue
}

// Analyze runs the §4.8 algorithm over files (the reachable set plus any
// development-entry files such as test files, scripts, and tool config
// files the caller wants scanned even if C4 did not mark them reachable).
func Analyze(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, manifest *Manifest, projectRoot string, files []string) (*Result, error) {
	usage := make(map[string]*PackageUsage)
	var unresolved []model.Issue

	for _, file := range files {
		rel := relativeTo(projectRoot, file)
		isDev := isDevelopmentFile(rel)

		imports, err := fc.Imports(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, imp := range imports {
			issue := recordImportUsage(ctx, res, usage, file, imp.ModuleSpecifier, isDev)
			if issue != nil {
				unresolved = append(unresolved, *issue)
			}
			if isStylesheetSpecifier(imp.ModuleSpecifier) {
				if err := scanStylesheet(ctx, fc, res, usage, file, imp.ModuleSpecifier, isDev); err != nil {
					return nil, err
				}
			}
		}
	}

	recordScriptUsage(manifest, usage)
	applyTypeIndirection(manifest, usage, manifest.Path)

	return &Result{Usage: usage, Unresolved: unresolved}, nil
}

// recordImportUsage classifies a single import specifier and folds it into
// usage, returning a non-nil unresolved-import issue when the specifier is
// relative/absolute and could not be resolved.
func recordImportUsage(ctx context.Context, res *resolver.Resolver, usage map[string]*PackageUsage, file, specifier string, isDev bool) *model.Issue {
	switch resolver.Classify(specifier) {
	case resolver.ClassRuntimeBuiltin:
		return nil
	case resolver.ClassPath:
		if _, ok := res.Resolve(ctx, specifier, file); !ok {
			return &model.Issue{
				Kind: model.IssueUnresolvedImport, Confidence: model.ConfidenceHigh,
				Name: specifier, File: file,
				Message: "import specifier \"" + specifier + "\" could not be resolved",
			}
		}
		return nil
	default:
		recordPackageUsage(ctx, res, usage, file, specifier, isDev)
		return nil
	}
}

func recordPackageUsage(ctx context.Context, res *resolver.Resolver, usage map[string]*PackageUsage, file, specifier string, isDev bool) {
	pkg := resolver.PackageName(specifier)
	if pkg == "" {
		return
	}

	if resolved, ok := res.Resolve(ctx, specifier, file); ok && !withinDependencyRoot(resolved, DependencyRootName) {
		return // resolves inside the project's own tree: a local/monorepo package, not a dependency
	}

	u := ensurePackageUsage(usage, pkg)
	u.ByFiles[file] = true
	if isDev {
		u.UsedInDevelopment = true
	} else {
		u.UsedInProduction = true
	}
}

func scanStylesheet(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, usage map[string]*PackageUsage, file, specifier string, isDev bool) error {
	reader, ok := fc.(StylesheetReader)
	if !ok {
		return nil
	}
	target, ok := res.Resolve(ctx, specifier, file)
	if !ok {
		return nil
	}
	contents, err := reader.ReadStylesheet(ctx, target)
	if err != nil {
		return err
	}
	for _, spec := range stylesheetImports(contents) {
		recordPackageUsage(ctx, res, usage, target, spec, isDev)
	}
	return nil
}

func recordScriptUsage(manifest *Manifest, usage map[string]*PackageUsage) {
	for name, command := range manifest.Scripts {
		tool := tokenizeScript(command)
		pkg, ok := resolveToolPackage(manifest, tool)
		if !ok {
			continue
		}
		u := ensurePackageUsage(usage, pkg)
		u.UsedInDevelopment = true
		u.ByFiles["package script: "+name] = true
	}
}

func relativeTo(root, file string) string {
	if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return file
}
