// Package model defines the symbol-level data model the reachability engine
// operates over: symbol identity and attributes, reference edges, export
// provenance, per-file usage, and the issue taxonomy. Every other engine
// package reads and writes these types; none of them know how a concrete
// compiler produced the data (see internal/engine/facade).
package model

// Kind enumerates the declaration kinds the engine tracks. Mirrors the
// teacher's parser.DefinitionKind, extended with the finer-grained kinds
// the symbol-level graph needs (method/property/enum_member/parameter).
type Kind string

const (
	KindFunction   Kind = "function"
	KindClass      Kind = "class"
	KindMethod     Kind = "method"
	KindProperty   Kind = "property"
	KindVariable   Kind = "variable"
	KindType       Kind = "type"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindEnumMember Kind = "enum_member"
	KindNamespace  Kind = "namespace"
	KindModule     Kind = "module"
	KindParameter  Kind = "parameter"
)

// ModuleSymbolName is the qualified_name used for the synthetic per-file
// top-level scope node (§3.1).
const ModuleSymbolName = "<module>"

// Location is a 1-indexed source position.
type Location struct {
	File   string
	Line   int
	Column int
}

// SymbolID identifies a Symbol by (absolute_file_path, qualified_name).
// It is a plain string key: duplicates merge by construction whenever two
// callers build the same ID for the same declaration.
type SymbolID string

// NewSymbolID builds the identity key for a declaration. qualifiedName is
// either ModuleSymbolName, a bare name, or "Parent.Child".
func NewSymbolID(absFile, qualifiedName string) SymbolID {
	return SymbolID(absFile + "#" + qualifiedName)
}

// Symbol is a single declaration-site node in the reference graph (§3.1-3.2).
// Declaration merging is never performed by the engine (§9): a compiler that
// reports multiple declaration sites for one logical symbol yields one
// Symbol per site, connected only by edges the facade's find-references
// call produces.
type Symbol struct {
	ID   SymbolID
	File string
	Name string // qualified_name: ModuleSymbolName, a bare name, or Parent.Child
	Kind Kind

	Line   int
	Column int

	Exported bool

	IsEntryPoint      bool
	EntryPointReason  string

	RetainedBy string // reason the retention pass exempted this symbol; "" if not retained

	IsUsed bool

	Parent SymbolID // "" if top-level; a method's class, an enum member's enum

	Decorators []string
}

// EdgeType enumerates the §3.3 edge kinds.
type EdgeType string

const (
	EdgeCall                EdgeType = "call"
	EdgePropertyRead        EdgeType = "property_read"
	EdgePropertyWrite       EdgeType = "property_write"
	EdgeTypeReference       EdgeType = "type_reference"
	EdgeImport              EdgeType = "import"
	EdgeReExport            EdgeType = "re_export"
	EdgeInstantiation       EdgeType = "instantiation"
	EdgeDecorator           EdgeType = "decorator"
	EdgeJSXElement          EdgeType = "jsx_element"
	EdgeInterfaceImplements EdgeType = "interface_implementation"
)

// Edge is a single reference between two symbols. Edges are set-semantics
// (§3.3): a graph never stores more than one edge for a given ordered pair,
// regardless of how many times the reference occurs in source.
type Edge struct {
	From SymbolID
	To   SymbolID
	Type EdgeType

	File   string
	Line   int
	Column int
}

// OriginRef names where a re-exported name ultimately comes from.
type OriginRef struct {
	File string
	Name string
}

// ExportProvenance is the §3.4 per-reachable-file export bookkeeping used by
// the module-boundary export analysis (C7).
type ExportProvenance struct {
	File string

	ValueExports map[string]bool
	TypeExports  map[string]bool

	ValueOrigins map[string][]OriginRef
	TypeOrigins  map[string][]OriginRef

	StarReexportTargets map[string]bool

	SkipReporting bool
}

// NewExportProvenance returns an initialized, empty ExportProvenance for file.
func NewExportProvenance(file string) *ExportProvenance {
	return &ExportProvenance{
		File:                file,
		ValueExports:        make(map[string]bool),
		TypeExports:         make(map[string]bool),
		ValueOrigins:        make(map[string][]OriginRef),
		TypeOrigins:         make(map[string][]OriginRef),
		StarReexportTargets: make(map[string]bool),
	}
}

// FileUsage is the §3.5 per-file usage bookkeeping.
type FileUsage struct {
	File string

	UsedValues map[string]bool
	UsedTypes  map[string]bool

	UsesAll bool
}

// NewFileUsage returns an initialized, empty FileUsage for file.
func NewFileUsage(file string) *FileUsage {
	return &FileUsage{
		File:       file,
		UsedValues: make(map[string]bool),
		UsedTypes:  make(map[string]bool),
	}
}

// MarkAllUsed sets UsesAll and, for callers that already know the file's
// full export set, folds every export into UsedValues/UsedTypes so a
// subsequent "is this name used" check never needs to special-case UsesAll.
func (u *FileUsage) MarkAllUsed(valueExports, typeExports map[string]bool) {
	u.UsesAll = true
	for name := range valueExports {
		u.UsedValues[name] = true
	}
	for name := range typeExports {
		u.UsedTypes[name] = true
	}
}

// Confidence is the §3.6 issue confidence level.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IssueKind is the closed §6.2 issue taxonomy.
type IssueKind string

const (
	IssueUnusedFile          IssueKind = "unused-file"
	IssueUnusedDependency    IssueKind = "unused-dependency"
	IssueMisplacedDependency IssueKind = "misplaced-dependency"
	IssueUnlistedDependency  IssueKind = "unlisted-dependency"
	IssueUnresolvedImport    IssueKind = "unresolved-import"
	IssueUnusedExported      IssueKind = "unused-exported"
	IssueUnusedExportedType  IssueKind = "unused-exported-type"
	IssueUnusedExport        IssueKind = "unused-export"
	IssueUnusedMethod        IssueKind = "unused-method"
	IssueUnusedParam         IssueKind = "unused-param"
	IssueUnusedProperty      IssueKind = "unused-property"
	IssueUnusedImport        IssueKind = "unused-import"
	IssueUnusedEnumCase      IssueKind = "unused-enum-case"
	IssueAssignOnlyProperty  IssueKind = "assign-only-property"
	IssueUnusedVariable      IssueKind = "unused-variable"
	IssueUnusedType          IssueKind = "unused-type"
	IssueRedundantExport     IssueKind = "redundant-export"
)

// allIssueKinds is the closed §6.2 taxonomy, used to validate
// configuration input that names an issue kind by string.
var allIssueKinds = map[IssueKind]bool{
	IssueUnusedFile:          true,
	IssueUnusedDependency:    true,
	IssueMisplacedDependency: true,
	IssueUnlistedDependency:  true,
	IssueUnresolvedImport:    true,
	IssueUnusedExported:      true,
	IssueUnusedExportedType:  true,
	IssueUnusedExport:        true,
	IssueUnusedMethod:        true,
	IssueUnusedParam:         true,
	IssueUnusedProperty:      true,
	IssueUnusedImport:        true,
	IssueUnusedEnumCase:      true,
	IssueAssignOnlyProperty:  true,
	IssueUnusedVariable:      true,
	IssueUnusedType:          true,
	IssueRedundantExport:     true,
}

// IsKnownIssueKind reports whether kind is one of the closed §6.2 kinds.
func IsKnownIssueKind(kind IssueKind) bool {
	return allIssueKinds[kind]
}

// IssueContext carries kind-specific structured detail (§4.8's
// current/recommended section for misplaced-dependency, for instance).
type IssueContext struct {
	CurrentSection     string
	RecommendedSection string
}

// Issue is the §3.6 engine output unit.
type Issue struct {
	Kind       IssueKind
	Confidence Confidence

	Name       string
	SymbolKind Kind

	File   string
	Line   int
	Column int

	Message string

	Parent  string // qualified parent name, e.g. the class of an unused-method
	Context *IssueContext
}
