package mutators

import (
	"path"
	"strings"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/frameworks"
	"github.com/sweepa/sweepa/internal/shared/util"
)

// EntryPointRetainer is the Phase 1 mutator (§4.6): marks exported symbols
// matching a framework entry pattern, module nodes of route-style files, and
// every symbol in an app entry file, as entry points.
type EntryPointRetainer struct {
	// RootEntryBasenames are conventional root-file stems (index, main,
	// app, server, worker) whose every top-level symbol is an entry
	// point regardless of export status, because such files execute
	// top-level code on load.
	RootEntryBasenames map[string]bool
}

func (m *EntryPointRetainer) Name() string  { return "EntryPointRetainer" }
func (m *EntryPointRetainer) Phase() Phase  { return PhaseEntryPoints }
func (m *EntryPointRetainer) Priority() int { return 0 }

func (m *EntryPointRetainer) Run(c *Context) {
	for _, sym := range c.Graph.Nodes() {
		rel := util.NormalizePatternPath(relativeToRoot(c.ProjectRoot, sym.File))

		if c.Frameworks != nil {
			if isEntry, used := c.Frameworks.IsEntryFile(rel); isEntry {
				if sym.Name == model.ModuleSymbolName {
					c.MarkEntryPoint(sym, "framework route module")
					continue
				}
				if sym.Exported && exportNameUsed(used, sym.Name) {
					c.MarkEntryPoint(sym, "framework entry pattern match")
					continue
				}
			}
		}

		if m.isAppEntryFile(rel) {
			c.MarkEntryPoint(sym, "app entry file executes top-level code")
		}
	}
}

func exportNameUsed(used frameworks.UsedExportNames, name string) bool {
	if used.All {
		return true
	}
	return used.Names[name]
}

func (m *EntryPointRetainer) isAppEntryFile(rel string) bool {
	base := path.Base(rel)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return m.RootEntryBasenames[stem]
}

func relativeToRoot(root, file string) string {
	slashFile := strings.ReplaceAll(file, "\\", "/")
	slashRoot := strings.ReplaceAll(root, "\\", "/")
	if slashRoot != "" && strings.HasPrefix(slashFile, slashRoot) {
		slashFile = strings.TrimPrefix(slashFile, slashRoot)
		slashFile = strings.TrimPrefix(slashFile, "/")
	}
	return slashFile
}
