package mutators

import (
	"unicode"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
)

// JSXReferenceBuilder is the Phase 2 mutator (§4.6): for every upper-case
// tag in embedded markup, adds a jsx_element edge from the containing
// declaration to the component symbol. Without this mutator a component
// used only in markup would never be reached by the final DFS.
type JSXReferenceBuilder struct{}

func (m *JSXReferenceBuilder) Name() string  { return "JSXReferenceBuilder" }
func (m *JSXReferenceBuilder) Phase() Phase  { return PhaseReferences }
func (m *JSXReferenceBuilder) Priority() int { return 0 }

func (m *JSXReferenceBuilder) Run(c *Context) {
	for _, sym := range c.Graph.Nodes() {
		if sym.Name == "" {
			continue
		}
		for _, elem := range jsxElementsOf(c, sym) {
			if elem.TagName == "" || !unicode.IsUpper(rune(elem.TagName[0])) {
				continue // host element (lower-case tag), skip
			}
			target := elem.ResolvedSymbol
			if target == "" {
				continue
			}
			c.AddEdge(model.Edge{
				From: sym.ID, To: target, Type: model.EdgeJSXElement,
				File: sym.File, Line: elem.Line, Column: elem.Column,
			})
		}
	}
}

// jsxElement is one tag occurrence inside a declaration's body.
type jsxElement struct {
	TagName        string
	ResolvedSymbol model.SymbolID
	Line, Column   int
}

// jsxElementsOf walks a declaration's body identifiers looking for ones the
// facade marks as a JSX element tag. A facade that has no embedded-markup
// dialect simply never produces such identifiers, making this mutator a
// no-op for it.
func jsxElementsOf(c *Context, sym *model.Symbol) []jsxElement {
	decls, err := c.Facade.DeclarationsOf(c.ctx, sym.ID)
	if err != nil || len(decls) == 0 {
		return nil
	}

	var elems []jsxElement
	for _, d := range decls {
		if !d.HasBody {
			continue
		}
		_ = c.Facade.WalkIdentifiers(c.ctx, d, func(node facade.Node, pos facade.Position) {
			tag, ok := jsxTagName(node)
			if !ok {
				return
			}
			resolvedSym, err := c.Facade.SymbolOf(c.ctx, node)
			if err != nil || resolvedSym == nil {
				elems = append(elems, jsxElement{TagName: tag, Line: pos.Line, Column: pos.Column})
				return
			}
			targets, err := c.Facade.DeclarationsOf(c.ctx, resolvedSym)
			if err != nil || len(targets) == 0 {
				elems = append(elems, jsxElement{TagName: tag, Line: pos.Line, Column: pos.Column})
				return
			}
			elems = append(elems, jsxElement{
				TagName:        tag,
				ResolvedSymbol: model.NewSymbolID(targets[0].File, targets[0].Name),
				Line:           pos.Line, Column: pos.Column,
			})
		})
	}
	return elems
}

// jsxTagKind is an optional facade.Node extension: implementations whose
// language has embedded markup can satisfy it so JSXReferenceBuilder can
// recognise tag identifiers. Facades for dialects without such syntax never
// produce nodes implementing it.
type jsxTagKind interface {
	JSXTagName() string
}

func jsxTagName(node facade.Node) (string, bool) {
	tagged, ok := node.(jsxTagKind)
	if !ok {
		return "", false
	}
	name := tagged.JSXTagName()
	return name, name != ""
}
