// Package mutators implements the Mutator Pipeline (C6): four named phases
// — entry-points, references, retention, marking — run in phase order then
// ascending priority. No direct teacher analog exists; the pass shape is
// modeled on the teacher's single-pass LayerRuleEngine.Validate (one
// function walking the whole graph and returning findings), generalized
// into an ordered sequence of such passes sharing one mutable Context.
package mutators

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
	"github.com/sweepa/sweepa/internal/frameworks"
)

// Phase names the four pipeline stages (§4.6).
type Phase int

const (
	PhaseEntryPoints Phase = iota
	PhaseReferences
	PhaseRetention
	PhaseMarking
)

// Context is what every mutator receives (§4.6 "Extensibility"): the graph,
// the compiler facade, the project root, detected frameworks, configuration,
// and the four convenience calls.
type Context struct {
	Graph       *symbolgraph.Graph
	Facade      facade.CompilerFacade
	ProjectRoot string
	Frameworks  *frameworks.Registry
	Config      Config
	Logger      *slog.Logger

	ctx context.Context
}

// Config is the subset of the configuration surface (§6.3) the pipeline
// consults directly.
type Config struct {
	RetainDecorators   map[string]bool
	RetainAllDecorated bool
}

// MarkEntryPoint marks sym as an entry point with reason (§4.6 convenience
// call).
func (c *Context) MarkEntryPoint(sym *model.Symbol, reason string) {
	sym.IsEntryPoint = true
	sym.EntryPointReason = reason
}

// MarkRetained marks sym as retained and used, for reason (§4.6 Phase 3:
// "Retained symbols are also marked used.").
func (c *Context) MarkRetained(sym *model.Symbol, reason string) {
	sym.RetainedBy = reason
	sym.IsUsed = true
}

// AddEdge adds an edge to the graph (§4.6 convenience call), used by
// mutators that discover edges the builder could not see, such as
// JSXReferenceBuilder.
func (c *Context) AddEdge(edge model.Edge) {
	c.Graph.AddEdge(edge)
}

// Log emits a verbose-level pipeline message (§4.6 convenience call).
func (c *Context) Log(msg string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug(msg, args...)
}

// Mutator is one pluggable pass. Adding a mutator never requires changes
// elsewhere: it is appended to the phase's list and the pipeline runs it in
// priority order.
type Mutator interface {
	Name() string
	Phase() Phase
	Priority() int
	Run(c *Context)
}

// Pipeline runs an ordered set of mutators: phase order, then ascending
// priority within a phase (§4.6).
type Pipeline struct {
	mutators []Mutator
}

// NewPipeline builds a Pipeline from an arbitrary mutator set, sorting them
// into the required execution order.
func NewPipeline(mutators ...Mutator) *Pipeline {
	sorted := make([]Mutator, len(mutators))
	copy(sorted, mutators)
	sortMutators(sorted)
	return &Pipeline{mutators: sorted}
}

func sortMutators(m []Mutator) {
	sort.SliceStable(m, func(i, j int) bool {
		if m[i].Phase() != m[j].Phase() {
			return m[i].Phase() < m[j].Phase()
		}
		return m[i].Priority() < m[j].Priority()
	})
}

// Run executes every mutator in order against the graph described by ctx.
func (p *Pipeline) Run(ctx context.Context, c *Context) {
	c.ctx = ctx
	for _, m := range p.mutators {
		m.Run(c)
	}
}

// Default returns the pipeline required for correctness (§4.6): one mutator
// per required phase pass, in the documented order.
func Default(entryBasenames map[string]bool) *Pipeline {
	return NewPipeline(
		&EntryPointRetainer{RootEntryBasenames: entryBasenames},
		&JSXReferenceBuilder{},
		&DecoratorRetainer{},
		&UsedDeclarationMarker{},
	)
}
