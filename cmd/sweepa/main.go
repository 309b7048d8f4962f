package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sweepa/sweepa/internal/baseline"
	"github.com/sweepa/sweepa/internal/core/config"
	"github.com/sweepa/sweepa/internal/engine"
	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/shared/util"
	"github.com/sweepa/sweepa/internal/ui/report/formats"
)

var (
	configPath = flag.String("config", "", "Path to sweepa.toml (default: discovered by walking up from the current directory)")
	// facadeName names a facade registered via facade.Register from a
	// concrete language front end's package init, linked in behind a
	// blank import in a downstream build of this binary. This binary
	// ships with none registered (§6.1's out-of-scope compiler front
	// end), so the default value always yields facade.New's
	// "no compiler facade registered" error until one is linked in.
	facadeName    = flag.String("facade", "", "Registered compiler facade to analyze the project with")
	outputPath    = flag.String("output", "", "Write the report to this path instead of stdout")
	format        = flag.String("format", "", "Report format: json|sarif|markdown|csv|actions (default: output.format, or json)")
	baselinePath  = flag.String("baseline", "", "Path to a baseline file to diff against (default: baseline.path when baseline.enabled)")
	writeBaseline = flag.Bool("write-baseline", false, "Write the current issue list to --baseline as the new baseline and exit")
	fix           = flag.Bool("fix", false, "Apply the §6.5 fixer to unused/misplaced dependency issues before reporting")
	watch         = flag.Bool("watch", false, "Re-run the engine whenever a project file changes")
	jsonLogs      = flag.Bool("json-logs", false, "Emit structured logs as JSON instead of text")
	verbose       = flag.Bool("verbose", false, "Enable debug logging")
	versionFlag   = flag.Bool("version", false, "Print version and exit")
)

const version = "0.1.0"

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("sweepa v%s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	var handler slog.Handler
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cwd, err := os.Getwd()
	if err != nil {
		logger.Error("failed to resolve current directory", "error", err)
		os.Exit(1)
	}

	cfg, projectRoot, err := loadConfig(cwd)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	fc, err := facade.New(*facadeName, projectRoot)
	if err != nil {
		logger.Error("failed to acquire compiler facade", "error", err)
		os.Exit(1)
	}

	run := func(ctx context.Context) error {
		return runOnce(ctx, fc, cfg, projectRoot, logger)
	}

	if !*watch {
		if err := run(context.Background()); err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background()); err != nil {
		logger.Error("run failed", "error", err)
	}
	if err := watchAndRerun(projectRoot, run, logger); err != nil {
		logger.Error("watch failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig honors an explicit --config path, falling back to discovery
// (cmd/sweepa/discover.go) the same way the teacher's main.go falls back
// from ./circular.toml to ./circular.example.toml when the default path
// doesn't exist.
func loadConfig(cwd string) (*config.Config, string, error) {
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, "", err
		}
		root := cfg.Paths.ProjectRoot
		if root == "" {
			root = filepath.Dir(*configPath)
		}
		return cfg, root, nil
	}
	return discoverConfig(cwd)
}

func runOnce(ctx context.Context, fc facade.CompilerFacade, cfg *config.Config, projectRoot string, logger *slog.Logger) error {
	manifestPath := cfg.Paths.Manifest
	if manifestPath == "" {
		manifestPath = filepath.Join(projectRoot, "package.json")
	}
	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", manifestPath, err)
	}

	// --write-baseline records the full issue list, so the old baseline is
	// not diffed out of it first.
	var bl *baseline.Baseline
	if !*writeBaseline {
		bl, err = loadBaseline(cfg, projectRoot)
		if err != nil {
			return err
		}
	}

	report, err := engine.Run(ctx, fc, engine.Options{
		ProjectRoot:     projectRoot,
		ManifestPath:    manifestPath,
		ManifestData:    manifestData,
		IgnoreGenerated: cfg.UnusedExportedIgnoreGenerated,
		Config:          cfg,
		Baseline:        bl,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	if *writeBaseline {
		return writeBaselineFile(cfg, report.Issues, projectRoot)
	}

	if *fix {
		if err := applyFixes(manifestPath, report.Issues); err != nil {
			return fmt.Errorf("apply fixes: %w", err)
		}
		logger.Info("fixes applied", "manifest", manifestPath)
	}

	return emitReport(report, cfg, projectRoot)
}

func loadBaseline(cfg *config.Config, projectRoot string) (*baseline.Baseline, error) {
	path := *baselinePath
	if path == "" && cfg.Baseline.Enabled {
		path = cfg.Baseline.Path
	}
	if path == "" {
		return nil, nil
	}
	path = resolveWritePath(path, projectRoot)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read baseline %s: %w", path, err)
	}
	return baseline.Load(data)
}

func writeBaselineFile(cfg *config.Config, issues []model.Issue, projectRoot string) error {
	path := *baselinePath
	if path == "" {
		path = cfg.Baseline.Path
	}
	if path == "" {
		return fmt.Errorf("--write-baseline requires --baseline or baseline.path in config")
	}
	bl := baseline.New(issues, projectRoot, time.Now().UTC())
	data, err := bl.Marshal()
	if err != nil {
		return err
	}
	return util.WriteFileWithDirs(resolveWritePath(path, projectRoot), data, 0644)
}

// resolveWritePath anchors a relative write path that names a subdirectory
// to projectRoot, leaving a bare filename to resolve against the process's
// current directory as before.
func resolveWritePath(path, projectRoot string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if util.ContainsPathSeparator(path) {
		return filepath.Join(projectRoot, path)
	}
	return path
}

func emitReport(report *engine.Report, cfg *config.Config, projectRoot string) error {
	outFormat := *format
	if outFormat == "" {
		outFormat = cfg.Output.Format
	}
	if outFormat == "" {
		outFormat = "json"
	}

	var rendered string
	var err error
	switch outFormat {
	case "json":
		data, marshalErr := json.MarshalIndent(report.Issues, "", "  ")
		if marshalErr != nil {
			return marshalErr
		}
		rendered = string(data)
	case "sarif":
		var sarifBytes []byte
		sarifBytes, err = formats.GenerateSARIF(report.Issues, projectRoot, version)
		rendered = string(sarifBytes)
	case "markdown":
		rendered, err = formats.GenerateMarkdown(formats.MarkdownReportData{
			ProjectName: filepath.Base(projectRoot),
			TotalFiles:  report.CandidateFiles,
			Issues:      report.Issues,
		}, formats.MarkdownReportOptions{
			ProjectRoot:         projectRoot,
			Version:             version,
			GeneratedAt:         time.Now().UTC(),
			TableOfContents:     cfg.Output.TableOfContents,
			CollapsibleSections: cfg.Output.CollapsibleSections,
		})
	case "csv":
		rendered, err = formats.GenerateCSV(report.Issues, projectRoot)
	case "actions":
		rendered, err = formats.GenerateGitHubActionsAnnotations(report.Issues, projectRoot)
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
	if err != nil {
		return err
	}

	outFile := *outputPath
	if outFile == "" {
		outFile = cfg.Output.File
	}
	if outFile == "" {
		fmt.Println(rendered)
		return nil
	}
	return util.WriteStringWithDirs(resolveWritePath(outFile, projectRoot), rendered, 0644)
}

// watchAndRerun re-invokes run whenever a file changes under root, the
// same fsnotify-driven loop the teacher's internal/core/watcher.Watcher
// implements, narrowed down to what the CLI shell needs: no debounce
// bookkeeping struct, just one timer reset on every change, so a run
// starts 200ms after the last change of a burst.
func watchAndRerun(root string, run func(ctx context.Context) error, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" || d.Name() == "dist" || d.Name() == "build" {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	}); err != nil {
		return err
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(200 * time.Millisecond)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-debounce.C:
			logger.Info("change detected, re-running")
			if err := run(context.Background()); err != nil {
				logger.Error("run failed", "error", err)
			}
		}
	}
}
