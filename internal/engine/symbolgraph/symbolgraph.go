// Package symbolgraph implements the Symbol Graph Builder (C5): nodes from
// every declaration the compiler facade reports, edges from identifier
// resolution within declaration bodies (outgoing) and from find-references
// (incoming). Storage follows the teacher's Graph: map-of-maps guarded by
// one RWMutex, generalized from module-to-module edges to symbol-to-symbol
// edges.
package symbolgraph

import (
	"context"
	"sync"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
)

// Graph is the symbol-level reference graph (§3.1-3.3). Built once, then
// read-only (§5 resource policy).
type Graph struct {
	mu sync.RWMutex

	nodes map[model.SymbolID]*model.Symbol
	// edges[from][to] -> edge, enforcing the §3.3 set semantics.
	edges map[model.SymbolID]map[model.SymbolID]*model.Edge
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[model.SymbolID]*model.Symbol),
		edges: make(map[model.SymbolID]map[model.SymbolID]*model.Edge),
	}
}

// AddNode inserts sym if its ID is not already present; returns the stored
// (possibly pre-existing) node.
func (g *Graph) AddNode(sym *model.Symbol) *model.Symbol {
	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.nodes[sym.ID]; ok {
		return existing
	}
	g.nodes[sym.ID] = sym
	return sym
}

// Node returns the node for id, or nil if absent.
func (g *Graph) Node(id model.SymbolID) *model.Symbol {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

// Nodes returns every node in the graph. Order is unspecified; callers that
// need determinism sort by ID.
func (g *Graph) Nodes() []*model.Symbol {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*model.Symbol, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// AddEdge inserts an edge from -> to, creating either endpoint on demand
// with inferred attributes if missing (§7 "graph inconsistency" recovery).
// A second call for the same ordered pair is a no-op (§4.5 "duplicate edges
// are dropped"); self-edges are rejected outright (§4.5 "self-references
// are not added").
func (g *Graph) AddEdge(edge model.Edge) {
	if edge.From == edge.To {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[edge.From]; !ok {
		g.nodes[edge.From] = inferredNode(edge.From)
	}
	if _, ok := g.nodes[edge.To]; !ok {
		g.nodes[edge.To] = inferredNode(edge.To)
	}

	if g.edges[edge.From] == nil {
		g.edges[edge.From] = make(map[model.SymbolID]*model.Edge)
	}
	if _, exists := g.edges[edge.From][edge.To]; exists {
		return
	}
	e := edge
	g.edges[edge.From][edge.To] = &e
}

// HasEdge reports whether an edge from -> to exists.
func (g *Graph) HasEdge(from, to model.SymbolID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.edges[from]
	if !ok {
		return false
	}
	_, ok = m[to]
	return ok
}

// OutEdges returns every edge leaving id.
func (g *Graph) OutEdges(id model.SymbolID) []*model.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m := g.edges[id]
	out := make([]*model.Edge, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	return out
}

// InEdges returns every edge arriving at id. Unlike OutEdges this is O(V)
// over the node set; the mutator pipeline calls it rarely enough (retention
// checks) that a reverse index is not worth the bookkeeping.
func (g *Graph) InEdges(id model.SymbolID) []*model.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*model.Edge
	for _, m := range g.edges {
		if e, ok := m[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func inferredNode(id model.SymbolID) *model.Symbol {
	return &model.Symbol{ID: id, Kind: model.KindVariable}
}

// ModuleNodeID returns the synthetic <module> node ID for file, creating it
// in the graph lazily if absent.
func (g *Graph) ModuleNodeID(file string) model.SymbolID {
	id := model.NewSymbolID(file, model.ModuleSymbolName)
	g.mu.Lock()
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = &model.Symbol{ID: id, File: file, Name: model.ModuleSymbolName, Kind: model.KindModule}
	}
	g.mu.Unlock()
	return id
}

// Build implements the C5 contract: declare nodes for every declaration the
// facade reports across files, then outgoing edges from body identifier
// walks and incoming edges from find-references.
func Build(ctx context.Context, fc facade.CompilerFacade, files []string) (*Graph, error) {
	g := New()

	declsByFile := make(map[string][]facade.DeclarationNode, len(files))
	for _, file := range files {
		decls, err := fc.Declarations(ctx, file)
		if err != nil {
			return nil, err
		}
		declsByFile[file] = decls
		g.ModuleNodeID(file)
		for _, d := range decls {
			g.AddNode(declToSymbol(d))
		}
	}

	for _, file := range files {
		for _, d := range declsByFile[file] {
			if !d.HasBody {
				continue
			}
			addOutgoingEdges(ctx, g, fc, d)
		}
	}

	for _, file := range files {
		for _, d := range declsByFile[file] {
			addIncomingEdges(ctx, g, fc, d, declsByFile)
		}
	}

	return g, nil
}

// BuildOrLoad returns cache's stored graph when its file manifest matches
// files exactly, skipping every facade call Build would otherwise make;
// on a cache miss (or a nil cache) it calls Build and, if cache is
// non-nil, stores the fresh result for the next run.
func BuildOrLoad(ctx context.Context, fc facade.CompilerFacade, files []string, cache *Cache) (*Graph, error) {
	if cache != nil {
		if g, err := cache.Load(files); err == nil && g != nil {
			return g, nil
		}
	}

	g, err := Build(ctx, fc, files)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Store(g, files); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func declToSymbol(d facade.DeclarationNode) *model.Symbol {
	id := model.NewSymbolID(d.File, d.Name)
	var parent model.SymbolID
	if d.ParentName != "" {
		parent = model.NewSymbolID(d.File, d.ParentName)
	}
	return &model.Symbol{
		ID:         id,
		File:       d.File,
		Name:       d.Name,
		Kind:       model.Kind(d.Kind),
		Line:       d.Line,
		Column:     d.Column,
		Exported:   d.Exported,
		Decorators: d.Decorators,
		Parent:     parent,
	}
}

func addOutgoingEdges(ctx context.Context, g *Graph, fc facade.CompilerFacade, d facade.DeclarationNode) {
	from := model.NewSymbolID(d.File, d.Name)

	_ = fc.WalkIdentifiers(ctx, d, func(node facade.Node, pos facade.Position) {
		sym, err := fc.SymbolOf(ctx, node)
		if err != nil || sym == nil {
			return // unresolvable identifier: no guessed edges (§4.5)
		}
		targets, err := fc.DeclarationsOf(ctx, sym)
		if err != nil || len(targets) == 0 {
			return
		}
		for _, t := range targets {
			to := model.NewSymbolID(t.File, t.Name)
			g.AddEdge(model.Edge{
				From: from, To: to, Type: inferEdgeType(d, t),
				File: d.File, Line: pos.Line, Column: pos.Column,
			})
		}
	})
}

func addIncomingEdges(ctx context.Context, g *Graph, fc facade.CompilerFacade, d facade.DeclarationNode, declsByFile map[string][]facade.DeclarationNode) {
	if d.ParentName != "" {
		return // only top-level declarations are targets of find-references here
	}

	to := model.NewSymbolID(d.File, d.Name)
	sites, err := fc.FindReferences(ctx, d.File, facade.Position{Line: d.Line, Column: d.Column})
	if err != nil {
		return // facade failure (§7): skip this node, no crash
	}

	for _, site := range sites {
		if site.IsDefinition {
			continue
		}
		container := containingDeclarationID(declsByFile[site.File], site)
		g.AddEdge(model.Edge{
			From: container, To: to, Type: model.EdgeCall,
			File: site.File, Line: site.Line, Column: site.Column,
		})
	}
}

// containingDeclarationID resolves site to the innermost named
// function/method/class whose [Line, EndLine] range contains it (§4.5),
// preferring the declaration with the latest start line among those that
// contain it, since a nested declaration always starts after its enclosing
// one. Falls back to the file's <module> node for a site outside every
// declaration's range.
func containingDeclarationID(decls []facade.DeclarationNode, site facade.ReferenceSite) model.SymbolID {
	var innermost *facade.DeclarationNode
	for i := range decls {
		d := &decls[i]
		end := d.EndLine
		if end < d.Line {
			end = d.Line
		}
		if site.Line < d.Line || site.Line > end {
			continue
		}
		if innermost == nil || d.Line > innermost.Line {
			innermost = d
		}
	}
	if innermost == nil {
		return model.NewSymbolID(site.File, model.ModuleSymbolName)
	}
	return model.NewSymbolID(innermost.File, innermost.Name)
}

func inferEdgeType(from, to facade.DeclarationNode) model.EdgeType {
	switch model.Kind(to.Kind) {
	case model.KindInterface, model.KindType:
		return model.EdgeTypeReference
	case model.KindClass:
		return model.EdgeInstantiation
	default:
		return model.EdgeCall
	}
}
