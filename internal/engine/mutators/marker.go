package mutators

import "github.com/sweepa/sweepa/internal/engine/model"

// UsedDeclarationMarker is the Phase 4 mutator (§4.6): the final DFS. From
// every entry point, traverses outgoing edges transitively; visiting a
// symbol also visits its parent (marking a method implies marking its
// class). After the DFS, every retained symbol not already reached is
// visited too. At completion every symbol's IsUsed reflects exactly
// whether it was visited (§8.1 invariant 2).
type UsedDeclarationMarker struct{}

func (m *UsedDeclarationMarker) Name() string  { return "UsedDeclarationMarker" }
func (m *UsedDeclarationMarker) Phase() Phase  { return PhaseMarking }
func (m *UsedDeclarationMarker) Priority() int { return 0 }

func (m *UsedDeclarationMarker) Run(c *Context) {
	visited := make(map[model.SymbolID]bool)

	var visit func(id model.SymbolID)
	visit = func(id model.SymbolID) {
		if visited[id] {
			return
		}
		visited[id] = true
		if sym := c.Graph.Node(id); sym != nil {
			sym.IsUsed = true
			if sym.Parent != "" {
				visit(sym.Parent)
			}
		}
		for _, edge := range c.Graph.OutEdges(id) {
			visit(edge.To)
		}
	}

	for _, sym := range c.Graph.Nodes() {
		if sym.IsEntryPoint {
			visit(sym.ID)
		}
	}
	for _, sym := range c.Graph.Nodes() {
		if sym.RetainedBy != "" && !visited[sym.ID] {
			visit(sym.ID)
		}
	}
}
