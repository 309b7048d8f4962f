package detect

import (
	"strings"

	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// UnusedExport implements §4.9's call-graph-mode UnusedExport: an exported
// node C6 never marked used. This is distinct from C7's unused-exported,
// which reasons about module-boundary import usage rather than the
// reference graph; a symbol can satisfy one and not the other (e.g. an
// export re-exported through a barrel C7 considers used, but that no
// in-project caller ever actually calls).
func UnusedExport(g *symbolgraph.Graph) []model.Issue {
	var issues []model.Issue
	for _, sym := range g.Nodes() {
		if !sym.Exported || sym.IsUsed || sym.Kind == model.KindModule {
			continue
		}
		issues = append(issues, model.Issue{
			Kind: model.IssueUnusedExport, Confidence: exportConfidence(sym),
			Name: sym.Name, SymbolKind: sym.Kind,
			File: sym.File, Line: sym.Line, Column: sym.Column,
			Message: "exported " + string(sym.Kind) + " \"" + sym.Name + "\" has no call sites in the reference graph",
		})
	}
	return sortIssuesStable(issues)
}

// exportConfidence assigns §4.9's confidence bands. Decorated symbols and
// index/barrel files carry uncertainty a plain unreferenced function does
// not: a decorator may register the symbol with a framework the graph
// cannot see through, and a barrel's whole purpose is re-export.
func exportConfidence(sym *model.Symbol) model.Confidence {
	if len(sym.Decorators) > 0 {
		return model.ConfidenceLow
	}
	if isIndexFile(sym.File) {
		return model.ConfidenceMedium
	}
	if sym.Kind == model.KindMethod {
		return model.ConfidenceMedium
	}
	return model.ConfidenceHigh
}

func isIndexFile(file string) bool {
	base := file
	if i := strings.LastIndexAny(file, "/\\"); i >= 0 {
		base = file[i+1:]
	}
	return strings.HasPrefix(base, "index.")
}
