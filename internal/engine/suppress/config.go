package suppress

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/shared/util"
)

// Config is the §6.3 configuration surface this layer consumes.
// Workspace-scoped overrides are merged in order of increasing specificity
// (§4.10) by ResolveForFile; the keys of Workspaces are project-relative
// directory paths.
type Config struct {
	IgnoreIssues       map[string][]model.IssueKind
	IgnoreDependencies []string
	IgnoreUnresolved   []string

	Workspaces map[string]*Config
}

// compiled is the glob-compiled form of a Config, built lazily per
// resolved file so ResolveForFile never needs a long-lived cache.
type compiled struct {
	issuePatterns       []compiledPattern
	issueKindsByPattern map[string]map[model.IssueKind]bool
	unresolvedPatterns  []compiledPattern
	ignoredDependencies map[string]bool
}

func compile(cfg *Config) *compiled {
	c := &compiled{
		issueKindsByPattern: make(map[string]map[model.IssueKind]bool),
		ignoredDependencies: make(map[string]bool),
	}
	if cfg == nil {
		return c
	}

	patterns := util.SortedStringKeys(cfg.IgnoreIssues)
	for _, raw := range patterns {
		cp := compilePattern(raw)
		c.issuePatterns = append(c.issuePatterns, cp)
		kindSet := make(map[model.IssueKind]bool, len(cfg.IgnoreIssues[raw]))
		for _, k := range cfg.IgnoreIssues[raw] {
			kindSet[k] = true
		}
		c.issueKindsByPattern[cp.raw] = kindSet
	}

	for _, raw := range cfg.IgnoreUnresolved {
		c.unresolvedPatterns = append(c.unresolvedPatterns, compilePattern(raw))
	}

	for _, dep := range cfg.IgnoreDependencies {
		c.ignoredDependencies[dep] = true
	}

	return c
}

func (c *compiled) suppresses(issue model.Issue, rel string) bool {
	switch issue.Kind {
	case model.IssueUnusedDependency, model.IssueMisplacedDependency, model.IssueUnlistedDependency:
		if c.ignoredDependencies[issue.Name] {
			return true
		}
	case model.IssueUnresolvedImport:
		for _, p := range c.unresolvedPatterns {
			if p.match(issue.Name) {
				return true
			}
		}
	}

	for _, p := range c.issuePatterns {
		kinds := c.issueKindsByPattern[p.raw]
		if len(kinds) == 0 || !kinds[issue.Kind] {
			continue
		}
		if p.match(rel) {
			return true
		}
	}
	return false
}

// ResolveForFile merges base with every workspace override whose path is a
// prefix of relFile, applied in order of increasing specificity (shortest
// path first, so the most specific workspace wins ties), then compiles the
// merged result for matching. A nil base yields an always-empty compiled
// config.
func ResolveForFile(base *Config, relFile string) *compiled {
	if base == nil {
		return compile(nil)
	}

	merged := &Config{
		IgnoreIssues:       copyIssueMap(base.IgnoreIssues),
		IgnoreDependencies: append([]string(nil), base.IgnoreDependencies...),
		IgnoreUnresolved:   append([]string(nil), base.IgnoreUnresolved...),
	}

	var applicable []string
	for path := range base.Workspaces {
		if util.HasPathPrefix(relFile, path) {
			applicable = append(applicable, path)
		}
	}
	sort.Slice(applicable, func(i, j int) bool { return len(applicable[i]) < len(applicable[j]) })

	for _, path := range applicable {
		override := base.Workspaces[path]
		if override == nil {
			continue
		}
		for pattern, kinds := range override.IgnoreIssues {
			merged.IgnoreIssues[pattern] = kinds
		}
		merged.IgnoreDependencies = append(merged.IgnoreDependencies, override.IgnoreDependencies...)
		merged.IgnoreUnresolved = append(merged.IgnoreUnresolved, override.IgnoreUnresolved...)
	}

	return compile(merged)
}

func copyIssueMap(m map[string][]model.IssueKind) map[string][]model.IssueKind {
	out := make(map[string][]model.IssueKind, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// compiledPattern mirrors internal/frameworks's wildcard-or-prefix pattern
// shape: glob-compiled when the pattern carries wildcard characters, a
// plain path-prefix match otherwise.
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

func (p compiledPattern) match(value string) bool {
	value = util.NormalizePatternPath(value)
	if p.isWildcard {
		return p.glob != nil && p.glob.Match(value)
	}
	return util.HasPathPrefix(value, p.raw)
}

func relPath(file, projectRoot string) string {
	rel := file
	if projectRoot != "" {
		if r, err := filepath.Rel(projectRoot, file); err == nil {
			rel = r
		}
	}
	return strings.ReplaceAll(rel, "\\", "/")
}
