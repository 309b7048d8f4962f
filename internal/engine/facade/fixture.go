package facade

import (
	"context"
	"fmt"
)

// fixtureNode wraps an identifier reference so WalkIdentifiers can hand back
// something SymbolOf can resolve without a real parser.
type fixtureNode struct {
	file string
	name string
	pos  Position
}

// FixtureFile is one hand-built source file: its declarations, imports,
// exports, and the identifiers referenced from each declaration's body.
// Tests build a Fixture out of these instead of parsing real source, the
// same way the teacher's tests build parser.File values by hand.
type FixtureFile struct {
	Path string

	// ModuleSpecifiers lists every specifier string that another file's
	// import should resolve to this file (e.g. "./helpers", "@app/util").
	ModuleSpecifiers []string

	Declarations []DeclarationNode
	Imports      []ImportSpecifier
	Exports      []ExportSpecifier

	// Identifiers maps a declaration's qualified name to the identifiers
	// referenced in its body, in the order WalkIdentifiers should visit
	// them.
	Identifiers map[string][]FixtureIdentifier
}

// FixtureIdentifier is one identifier reference inside a declaration body.
// TargetFile/TargetName name the declaration it resolves to; leave both
// empty to model a reference the facade cannot resolve (e.g. an external
// package), which the graph builder must silently drop.
type FixtureIdentifier struct {
	Name       string
	Pos        Position
	TargetFile string
	TargetName string
}

// Fixture is an in-memory CompilerFacade built from FixtureFiles. It
// resolves references purely from the tables it was constructed with: no
// parsing, no filesystem access.
type Fixture struct {
	files              map[string]*FixtureFile
	order              []string
	resolveBySpecifier map[string]string
}

// NewFixture builds a Fixture from a set of files, keyed by absolute path.
func NewFixture(files ...*FixtureFile) *Fixture {
	f := &Fixture{
		files:              make(map[string]*FixtureFile),
		resolveBySpecifier: make(map[string]string),
	}
	for _, file := range files {
		f.files[file.Path] = file
		f.order = append(f.order, file.Path)
		for _, spec := range file.ModuleSpecifiers {
			f.resolveBySpecifier[spec] = file.Path
		}
	}
	return f
}

func (f *Fixture) ListSourceFiles(ctx context.Context) ([]string, error) {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out, nil
}

func (f *Fixture) ParseFile(ctx context.Context, file string) (Node, error) {
	ff, ok := f.files[file]
	if !ok {
		return nil, fmt.Errorf("fixture: no such file %q", file)
	}
	return ff, nil
}

// FindReferences scans every file's identifier table for references whose
// resolved target is (file, declaration-at-position), plus the declaration
// site itself.
func (f *Fixture) FindReferences(ctx context.Context, file string, pos Position) ([]ReferenceSite, error) {
	ff, ok := f.files[file]
	if !ok {
		return nil, fmt.Errorf("fixture: no such file %q", file)
	}

	var targetName string
	for _, d := range ff.Declarations {
		if d.Line == pos.Line && d.Column == pos.Column {
			targetName = d.Name
			break
		}
	}
	if targetName == "" {
		return nil, fmt.Errorf("fixture: no declaration at %s:%d:%d", file, pos.Line, pos.Column)
	}

	sites := []ReferenceSite{{File: file, Line: pos.Line, Column: pos.Column, IsDefinition: true}}

	for _, other := range f.files {
		for _, ids := range other.Identifiers {
			for _, id := range ids {
				if id.TargetFile == file && id.TargetName == targetName {
					sites = append(sites, ReferenceSite{
						File: other.Path, Line: id.Pos.Line, Column: id.Pos.Column,
					})
				}
			}
		}
	}
	return sites, nil
}

func (f *Fixture) SymbolOf(ctx context.Context, node Node) (Symbol, error) {
	fn, ok := node.(fixtureNode)
	if !ok {
		return nil, nil
	}
	if fn.name == "" {
		return nil, nil
	}
	return fn.file + "#" + fn.name, nil
}

func (f *Fixture) DeclarationsOf(ctx context.Context, sym Symbol) ([]DeclarationNode, error) {
	key, ok := sym.(string)
	if !ok {
		return nil, fmt.Errorf("fixture: unrecognised symbol %v", sym)
	}
	var out []DeclarationNode
	for _, ff := range f.files {
		for _, d := range ff.Declarations {
			if ff.Path+"#"+d.Name == key {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *Fixture) ResolveModule(ctx context.Context, specifier, containingFile string) (string, error) {
	if _, ok := f.files[containingFile]; !ok {
		return "", fmt.Errorf("fixture: no such file %q", containingFile)
	}
	if resolved, ok := f.resolveBySpecifier[specifier]; ok {
		return resolved, nil
	}
	return "", nil
}

func (f *Fixture) Declarations(ctx context.Context, file string) ([]DeclarationNode, error) {
	ff, ok := f.files[file]
	if !ok {
		return nil, fmt.Errorf("fixture: no such file %q", file)
	}
	return ff.Declarations, nil
}

func (f *Fixture) Imports(ctx context.Context, file string) ([]ImportSpecifier, error) {
	ff, ok := f.files[file]
	if !ok {
		return nil, fmt.Errorf("fixture: no such file %q", file)
	}
	return ff.Imports, nil
}

func (f *Fixture) Exports(ctx context.Context, file string) ([]ExportSpecifier, error) {
	ff, ok := f.files[file]
	if !ok {
		return nil, fmt.Errorf("fixture: no such file %q", file)
	}
	return ff.Exports, nil
}

func (f *Fixture) WalkIdentifiers(ctx context.Context, decl DeclarationNode, visit func(Node, Position)) error {
	ff, ok := f.files[decl.File]
	if !ok {
		return fmt.Errorf("fixture: no such file %q", decl.File)
	}
	for _, id := range ff.Identifiers[decl.Name] {
		var target fixtureNode
		if id.TargetFile != "" && id.TargetName != "" {
			target = fixtureNode{file: id.TargetFile, name: id.TargetName, pos: id.Pos}
		}
		visit(target, id.Pos)
	}
	return nil
}
