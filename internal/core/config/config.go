// Package config decodes and validates sweepa's project configuration:
// the §6.3 ignore/suppress surface plus the ambient paths, output, and
// baseline settings the CLI shell needs to run the engine end to end.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/suppress"
)

// Config is the decoded form of a sweepa.toml file (or workspace fragment).
// Workspaces carries nested overrides keyed by project-relative directory
// path, merged by suppress.ResolveForFile in order of increasing
// specificity.
type Config struct {
	Version int `toml:"version"`

	Paths    Paths    `toml:"paths"`
	Output   Output   `toml:"output"`
	Baseline Baseline `toml:"baseline"`

	IgnoreIssues                  map[string][]string `toml:"ignore_issues"`
	IgnoreDependencies             []string            `toml:"ignore_dependencies"`
	IgnoreUnresolved               []string            `toml:"ignore_unresolved"`
	UnusedExported                 string              `toml:"unused_exported"`
	UnusedExportedIgnoreGenerated  bool                `toml:"unused_exported_ignore_generated"`

	Workspaces map[string]*Config `toml:"workspaces"`
}

// Paths locates the project on disk and the entry/exclude globs C1-C4
// seed the reachability walk from.
type Paths struct {
	ProjectRoot string   `toml:"project_root"`
	Entries     []string `toml:"entries"`
	Exclude     []string `toml:"exclude"`
	Manifest    string   `toml:"manifest"`

	// SymbolCache, if set, is a sqlite file the symbol graph builder
	// reads from and writes to (internal/engine/symbolgraph.Cache):
	// a run whose candidate file set exactly matches the cached manifest
	// loads the graph straight back instead of re-running every facade
	// call C5 needs. Empty means always rebuild.
	SymbolCache string `toml:"symbol_cache"`
}

// Output controls which report format(s) a run emits and where.
type Output struct {
	Format              string `toml:"format"` // json|sarif|markdown|csv|actions
	File                string `toml:"file"`
	TableOfContents     bool   `toml:"table_of_contents"`
	CollapsibleSections bool   `toml:"collapsible_sections"`
}

// Baseline controls the §6.4 baseline protocol: whether a run diffs
// against a recorded snapshot and where that snapshot lives.
type Baseline struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load decodes and validates a sweepa.toml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Paths.ProjectRoot) == "" {
		cfg.Paths.ProjectRoot = "."
	}
	if strings.TrimSpace(cfg.Paths.Manifest) == "" {
		cfg.Paths.Manifest = "package.json"
	}
	if strings.TrimSpace(cfg.UnusedExported) == "" {
		cfg.UnusedExported = "barrels"
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "json"
	}
	if cfg.Baseline.Enabled && strings.TrimSpace(cfg.Baseline.Path) == "" {
		cfg.Baseline.Path = ".sweepa-baseline.json"
	}

	for _, ws := range cfg.Workspaces {
		if ws != nil {
			applyDefaults(ws)
		}
	}
}

// validate runs every validation pass over cfg and, recursively, every
// workspace override it declares.
func validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := validateUnusedExported(cfg); err != nil {
		return err
	}
	if err := validateOutput(cfg); err != nil {
		return err
	}
	if err := validateIgnoreIssues(cfg); err != nil {
		return err
	}

	for path, ws := range cfg.Workspaces {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("workspaces key must not be empty")
		}
		if ws == nil {
			continue
		}
		if err := validate(ws); err != nil {
			return fmt.Errorf("workspaces[%s]: %w", path, err)
		}
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", cfg.Version)
	}
	if cfg.Version > 1 {
		return fmt.Errorf("unsupported config version %d; supported versions are 1", cfg.Version)
	}
	return nil
}

func validateUnusedExported(cfg *Config) error {
	switch cfg.UnusedExported {
	case "off", "barrels", "all":
		return nil
	default:
		return fmt.Errorf("unused_exported must be one of: off, barrels, all, got %q", cfg.UnusedExported)
	}
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case "json", "sarif", "markdown", "csv", "actions":
		return nil
	default:
		return fmt.Errorf("output.format must be one of: json, sarif, markdown, csv, actions, got %q", cfg.Output.Format)
	}
}

// validateIgnoreIssues rejects any ignore_issues entry naming an issue
// kind outside the closed §6.2 taxonomy, so a typo fails loudly at
// config-load time rather than silently matching nothing.
func validateIgnoreIssues(cfg *Config) error {
	for pattern, kinds := range cfg.IgnoreIssues {
		for _, kind := range kinds {
			if !model.IsKnownIssueKind(model.IssueKind(kind)) {
				return fmt.Errorf("ignore_issues[%q] names unknown issue kind %q", pattern, kind)
			}
		}
	}
	return nil
}

// ToSuppressConfig converts the decoded TOML surface into the typed
// suppress.Config the ignore/suppress layer (C10) consumes, recursively
// converting every workspace override.
func (cfg *Config) ToSuppressConfig() *suppress.Config {
	if cfg == nil {
		return nil
	}
	out := &suppress.Config{
		IgnoreIssues:       make(map[string][]model.IssueKind, len(cfg.IgnoreIssues)),
		IgnoreDependencies: append([]string(nil), cfg.IgnoreDependencies...),
		IgnoreUnresolved:   append([]string(nil), cfg.IgnoreUnresolved...),
	}
	for pattern, kinds := range cfg.IgnoreIssues {
		converted := make([]model.IssueKind, len(kinds))
		for i, k := range kinds {
			converted[i] = model.IssueKind(k)
		}
		out.IgnoreIssues[pattern] = converted
	}
	if len(cfg.Workspaces) > 0 {
		out.Workspaces = make(map[string]*suppress.Config, len(cfg.Workspaces))
		for path, ws := range cfg.Workspaces {
			out.Workspaces[path] = ws.ToSuppressConfig()
		}
	}
	return out
}
