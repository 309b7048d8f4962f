// Package facade defines the boundary between the reachability engine and a
// concrete compiler front end. Every other engine package depends on the
// CompilerFacade interface, never on a parser, grammar, or language
// toolchain directly — the same separation the teacher draws between its
// engine and internal/core/ports's abstract CodeParser/SecretScanner.
package facade

import "context"

// Node is an opaque handle into a concrete compiler's AST. The engine never
// inspects a Node itself; it only ever passes one back into the facade that
// produced it.
type Node interface{}

// Position is a 1-indexed location the facade resolves references at.
type Position struct {
	Line   int
	Column int
}

// Symbol is an opaque handle a facade hands back from SymbolOf and accepts
// in DeclarationsOf. Two Nodes that denote the same logical symbol must
// produce equal Symbol values.
type Symbol interface{}

// ReferenceSite is one reference or declaration occurrence found by
// FindReferences.
type ReferenceSite struct {
	File   string
	Line   int
	Column int

	// IsDefinition is true when this site is the declaration itself
	// rather than a usage of it.
	IsDefinition bool
}

// ImportKind classifies one import clause form.
type ImportKind string

const (
	ImportNamed     ImportKind = "named"
	ImportDefault   ImportKind = "default"
	ImportNamespace ImportKind = "namespace"
	ImportSideEffect ImportKind = "side_effect"
)

// ImportSpecifier is one imported binding from an import declaration.
type ImportSpecifier struct {
	Kind ImportKind

	// ImportedName is the exported name this binding refers to in the
	// source module; empty for default/namespace/side-effect imports.
	ImportedName string

	// LocalName is the name bound in the importing file.
	LocalName string

	TypeOnly bool

	ModuleSpecifier string

	Line   int
	Column int
}

// ExportKind classifies one export clause form.
type ExportKind string

const (
	ExportNamed      ExportKind = "named"
	ExportDefault    ExportKind = "default"
	ExportStar       ExportKind = "star"
	ExportStarAs     ExportKind = "star_as"
	ExportAssignment ExportKind = "assignment"
)

// ExportSpecifier is one exported binding from an export declaration, or a
// re-export clause.
type ExportSpecifier struct {
	Kind ExportKind

	// LocalName is the name of the declaration being exported; empty for
	// export-star forms.
	LocalName string

	// ExportedName is the name visible to importers; empty for
	// export-star forms without an `as` alias.
	ExportedName string

	IsType bool

	// ReexportFrom is non-empty when this export clause re-exports from
	// another module specifier rather than a local declaration.
	ReexportFrom string

	Line   int
	Column int
}

// DeclarationNode is one declaration site for a Symbol, as returned by
// DeclarationsOf. It carries enough attributes for the graph builder to
// construct a model.Symbol without further facade calls.
type DeclarationNode struct {
	Node Node

	File string
	Name string // qualified_name: bare name or "Parent.Child"

	Kind string // maps to model.Kind values

	Line   int
	Column int

	// EndLine is the last line of the declaration's source range, body
	// included. Zero (or equal to Line) means the declaration has no
	// extent beyond its header. The graph builder uses [Line, EndLine] to
	// attribute a reference site to its innermost enclosing declaration.
	EndLine int

	Exported   bool
	Decorators []string

	// ParentName is the enclosing declaration's qualified name, or "" for
	// a top-level declaration.
	ParentName string

	// HasBody is true for declarations whose body the builder should walk
	// for outgoing edges (functions, methods, arrow initializers,
	// interfaces, type aliases).
	HasBody bool
}

// CompilerFacade is the single interface the core engine consumes (§6.1).
// Implementations supply a concrete language front end; the engine never
// assumes anything about how source was parsed.
type CompilerFacade interface {
	// ListSourceFiles returns every source file in the project, as
	// absolute paths.
	ListSourceFiles(ctx context.Context) ([]string, error)

	// ParseFile parses file and returns its root AST node. Subsequent
	// tree-inspection calls take nodes reachable from this root.
	ParseFile(ctx context.Context, file string) (Node, error)

	// FindReferences returns every reference site for the declaration at
	// position in file, including the definition site itself.
	FindReferences(ctx context.Context, file string, pos Position) ([]ReferenceSite, error)

	// SymbolOf returns the logical symbol an identifier node denotes, or
	// nil if node does not denote a resolvable symbol.
	SymbolOf(ctx context.Context, node Node) (Symbol, error)

	// DeclarationsOf returns every declaration site for a symbol.
	// Declaration merging (§9) is never performed by the engine: a
	// symbol with multiple declaration sites yields multiple
	// DeclarationNodes here, connected only by edges FindReferences
	// produces.
	DeclarationsOf(ctx context.Context, sym Symbol) ([]DeclarationNode, error)

	// ResolveModule resolves a module specifier relative to the
	// containing file to an absolute file path. Returns ("", nil) if the
	// specifier does not resolve to a project file (builtin, bare package
	// name, or genuinely missing).
	ResolveModule(ctx context.Context, specifier, containingFile string) (string, error)

	// Declarations returns every top-level and nested declaration in
	// file, in source order.
	Declarations(ctx context.Context, file string) ([]DeclarationNode, error)

	// Imports returns every import specifier in file.
	Imports(ctx context.Context, file string) ([]ImportSpecifier, error)

	// Exports returns every export specifier in file, including
	// re-export clauses.
	Exports(ctx context.Context, file string) ([]ExportSpecifier, error)

	// WalkIdentifiers visits every identifier reference within the body
	// of decl, invoking visit with the identifier node and its position.
	// Used by the symbol graph builder to discover outgoing edges.
	WalkIdentifiers(ctx context.Context, decl DeclarationNode, visit func(Node, Position)) error
}
