package mutators

// DecoratorRetainer is the Phase 3 mutator (§4.6): marks classes, methods,
// and properties whose decorators intersect a known framework-managed-code
// table (dependency injection, route handlers, ORM entities, validation,
// reactive-state wrappers, UI-component annotations) as retained, and
// therefore used.
type DecoratorRetainer struct {
	// ExtraRetainDecorators is a user-supplied set (§6.3-adjacent
	// configuration) added unconditionally, on top of whatever the
	// detected frameworks already contribute via the registry's
	// RetainsDecorator.
	ExtraRetainDecorators map[string]bool

	// RetainAllDecorated retains every decorated symbol regardless of
	// which decorator it carries.
	RetainAllDecorated bool
}

func (m *DecoratorRetainer) Name() string  { return "DecoratorRetainer" }
func (m *DecoratorRetainer) Phase() Phase  { return PhaseRetention }
func (m *DecoratorRetainer) Priority() int { return 0 }

func (m *DecoratorRetainer) Run(c *Context) {
	for _, sym := range c.Graph.Nodes() {
		if len(sym.Decorators) == 0 {
			continue
		}
		if m.RetainAllDecorated || c.Config.RetainAllDecorated {
			c.MarkRetained(sym, "decorated (retain-all-decorated enabled)")
			continue
		}
		for _, dec := range sym.Decorators {
			if m.isRetainedDecorator(c, dec) {
				c.MarkRetained(sym, "decorator @"+dec)
				break
			}
		}
	}
}

func (m *DecoratorRetainer) isRetainedDecorator(c *Context, dec string) bool {
	if c.Frameworks != nil && c.Frameworks.RetainsDecorator(dec) {
		return true
	}
	if m.ExtraRetainDecorators[dec] {
		return true
	}
	return c.Config.RetainDecorators[dec]
}
