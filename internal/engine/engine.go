// Package engine orchestrates C1-C10 into one end-to-end run (§5's data
// flow): the compiler facade supplies a program; C1-C3 provide lookups; C4
// computes the file set; C5 constructs the graph; C6 transforms it; C7 and
// C8 run phase-parallel over the resulting graph/file set; C9 aggregates;
// C10 filters. The phase-parallel split follows §5's "Every shared
// structure is either built read-only before parallel consumers start"
// rule: C7 (export analysis) and C8 (dependency analysis) both only read
// the graph mutators.Default already finished writing, so they run
// concurrently via golang.org/x/sync/errgroup; C9 then runs after C7
// because it consumes C7's already-computed unused-export issues.
package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sweepa/sweepa/internal/baseline"
	"github.com/sweepa/sweepa/internal/core/config"
	coreerrors "github.com/sweepa/sweepa/internal/core/errors"
	"github.com/sweepa/sweepa/internal/engine/deps"
	"github.com/sweepa/sweepa/internal/engine/detect"
	"github.com/sweepa/sweepa/internal/engine/exports"
	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/mutators"
	"github.com/sweepa/sweepa/internal/engine/reachability"
	"github.com/sweepa/sweepa/internal/engine/resolver"
	"github.com/sweepa/sweepa/internal/engine/suppress"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
	"github.com/sweepa/sweepa/internal/frameworks"
	"github.com/sweepa/sweepa/internal/shared/observability"
)

// rootEntryBasenames seeds the entry-points mutator phase (§4.6) the same
// way reachability.Compute seeds its own entry set, by conventional name.
var rootEntryBasenames = map[string]bool{
	"index": true, "main": true, "app": true, "server": true, "worker": true,
}

// Options bundles everything one run of the engine needs: the project to
// analyze, its decoded configuration, and the ambient collaborators
// (metrics, logging, a prior baseline) a run may be given.
type Options struct {
	ProjectRoot  string
	ManifestPath string
	ManifestData []byte

	IgnoreGenerated bool

	Config   *config.Config
	Baseline *baseline.Baseline
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Report is one run's final output: the suppressed, baseline-diffed,
// stably sorted issue list plus the frameworks detected along the way.
type Report struct {
	Issues             []model.Issue
	DetectedFrameworks []string
	ReachableFiles     int
	CandidateFiles     int
}

// Run executes one full analysis pass against fc and returns the final
// issue list. The engine is otherwise stateless per invocation (§3.8): Run
// never retains anything across calls beyond what the caller passes back in
// as opts.Baseline.
func Run(ctx context.Context, fc facade.CompilerFacade, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exportMode := exports.ModeBarrels
	if opts.Config != nil && opts.Config.UnusedExported == "all" {
		exportMode = exports.ModeAll
	}
	skipUnusedExported := opts.Config != nil && opts.Config.UnusedExported == "off"

	manifest, err := deps.ParseManifest(opts.ManifestPath, opts.ManifestData)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeManifestUnreadable, "parse project manifest")
	}

	res := resolver.New(fc)
	reg := frameworks.Detect(frameworks.Builtin(), opts.ProjectRoot, manifest.ToFrameworkManifest())

	reachResult, err := reachability.Compute(ctx, fc, res, reg, opts.ProjectRoot, reachability.Options{
		IgnoreGenerated: opts.IgnoreGenerated,
		ExcludeGlobs:    pathsExclude(opts.Config),
		ExtraEntryGlobs: pathsEntries(opts.Config),
	})
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "compute file reachability")
	}
	opts.Metrics.SetReachableFiles(opts.ProjectRoot, len(reachResult.Reachable))
	logger.Debug("reachability computed", "phase", "reachability", "candidates", len(reachResult.FileIndex), "reachable", len(reachResult.Reachable))

	reachableFiles := sortedKeys(reachResult.Reachable)

	cache, err := openSymbolCache(opts.Config)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "open symbol cache")
	}
	defer cache.Close()

	g, err := symbolgraph.BuildOrLoad(ctx, fc, reachableFiles, cache)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "build symbol graph")
	}
	opts.Metrics.SetSymbolGraphSize(len(g.Nodes()), countEdges(g))
	logger.Debug("symbol graph built", "phase", "graph", "nodes", len(g.Nodes()))

	mutators.Default(rootEntryBasenames).Run(ctx, &mutators.Context{
		Graph:       g,
		Facade:      fc,
		ProjectRoot: opts.ProjectRoot,
		Frameworks:  reg,
		Config:      mutatorConfig(opts.Config),
		Logger:      logger,
	})
	logger.Debug("mutator pipeline complete", "phase", "mutators")

	skipReporting := buildSkipReporting(reg, reachResult.Reachable, opts.ProjectRoot)

	var exportsResult *exports.Result
	var depsResult *deps.Result

	parallel, gctx := errgroup.WithContext(ctx)
	parallel.Go(func() error {
		r, err := exports.Analyze(gctx, fc, res, reachResult.Reachable, exportMode, skipReporting)
		if err != nil {
			return coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "analyze module-boundary exports")
		}
		exportsResult = r
		return nil
	})
	parallel.Go(func() error {
		r, err := deps.Analyze(gctx, fc, res, manifest, opts.ProjectRoot, reachableFiles)
		if err != nil {
			return coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "analyze dependency usage")
		}
		depsResult = r
		return nil
	})
	if err := parallel.Wait(); err != nil {
		opts.Metrics.IncFacadeFailure()
		return nil, err
	}
	logger.Debug("export and dependency analysis complete", "phase", "exports-deps")

	var exportIssues []model.Issue
	if !skipUnusedExported {
		exportIssues = exportsResult.Report()
	}

	detectIssues, err := detect.Run(ctx, fc, res, g, detect.Inputs{
		Candidates:   sortedKeys(reachResult.FileIndex),
		Reachable:    reachResult.Reachable,
		Entry:        reachResult.Entry,
		ExportIssues: exportIssues,
		PackageOf:    packageOfFor(opts.Config, opts.ProjectRoot),
	})
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "run detector suite")
	}
	logger.Debug("detector suite complete", "phase", "detect", "issues", len(detectIssues))

	issues := make([]model.Issue, 0, len(detectIssues)+len(depsResult.Report(manifest)))
	issues = append(issues, detectIssues...)
	issues = append(issues, depsResult.Report(manifest)...)

	for _, issue := range issues {
		opts.Metrics.IncIssue(string(issue.Kind))
	}

	model.SortIssues(issues, opts.ProjectRoot)

	inSource, err := suppress.CollectInSource(ctx, fc, reachableFiles)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeFacadeFailure, "collect in-source suppressions")
	}
	issues = suppress.Filter(issues, inSource, opts.Config.ToSuppressConfig(), opts.ProjectRoot)

	issues = baseline.Diff(issues, opts.Baseline, opts.ProjectRoot)

	return &Report{
		Issues:             issues,
		DetectedFrameworks: reg.DetectedFrameworks(),
		ReachableFiles:     len(reachResult.Reachable),
		CandidateFiles:     len(reachResult.FileIndex),
	}, nil
}

func pathsExclude(cfg *config.Config) []string {
	if cfg == nil {
		return nil
	}
	return cfg.Paths.Exclude
}

func pathsEntries(cfg *config.Config) []string {
	if cfg == nil {
		return nil
	}
	return cfg.Paths.Entries
}

// openSymbolCache opens the configured on-disk symbol graph cache, or
// returns a nil *symbolgraph.Cache (itself safe to call Close/Load/Store
// on) when none is configured.
func openSymbolCache(cfg *config.Config) (*symbolgraph.Cache, error) {
	if cfg == nil || cfg.Paths.SymbolCache == "" {
		return nil, nil
	}
	return symbolgraph.OpenCache(cfg.Paths.SymbolCache)
}

func mutatorConfig(cfg *config.Config) mutators.Config {
	if cfg == nil {
		return mutators.Config{}
	}
	return mutators.Config{}
}

// buildSkipReporting marks every reachable file the framework registry
// recognizes as a framework entry file (§4.7's skip-reporting carve-out),
// so route/page-style files never get flagged for their required default
// export.
func buildSkipReporting(reg *frameworks.Registry, reachable map[string]bool, projectRoot string) map[string]bool {
	skip := make(map[string]bool)
	for file := range reachable {
		rel := relTo(projectRoot, file)
		if ok, _ := reg.IsEntryFile(rel); ok {
			skip[file] = true
		}
	}
	return skip
}

// packageOfFor builds a detect.PackageOf from the configuration's
// workspace table: a file belongs to the deepest (most specific)
// configured workspace path that prefixes it, or the project root itself
// when no workspace claims it. With no workspace configured it returns nil:
// the whole project is one package.
func packageOfFor(cfg *config.Config, projectRoot string) detect.PackageOf {
	var paths []string
	if cfg != nil {
		for path := range cfg.Workspaces {
			paths = append(paths, path)
		}
		sort.Slice(paths, func(i, j int) bool { return len(paths[i]) > len(paths[j]) })
	}
	if len(paths) == 0 {
		return nil
	}
	return func(file string) string {
		rel := relTo(projectRoot, file)
		for _, path := range paths {
			if rel == path || strings.HasPrefix(rel, path+"/") {
				return path
			}
		}
		return projectRoot
	}
}

func relTo(root, file string) string {
	rel := file
	if root != "" {
		if r, err := filepath.Rel(root, file); err == nil {
			rel = r
		}
	}
	return strings.ReplaceAll(rel, "\\", "/")
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func countEdges(g *symbolgraph.Graph) int {
	total := 0
	for _, sym := range g.Nodes() {
		total += len(g.OutEdges(sym.ID))
	}
	return total
}
