package types

import "sort"

// DefKind classifies how a named type declaration defines its type.
type DefKind int

const (
	AliasDef DefKind = iota
	SumDef
	RefinedDef
)

// Variant is one constructor of a sum type: a name and its ordered
// positional payload types.
type Variant struct {
	Name    string
	Payload []Type
}

// Info records how a declared name resolves: its type parameters and the
// shape of its definition. Stored by name in a Registry so that recursive
// references (a sum type naming itself in a payload) resolve through the
// interned name rather than needing a cyclic struct.
type Info struct {
	Name       string
	Params     []string // ordered type parameter names
	Kind       DefKind
	Alias      Type      // AliasDef
	Variants   []Variant // SumDef
	Base       Type      // RefinedDef: the base type `value` is carried as
	Invariants []Expr    // RefinedDef (and also attached to sum/alias decls)
}

// Expr is the minimal surface the types package needs from
// internal/ast.Expression: just enough to store invariant expressions
// without internal/types importing internal/ast (which would cycle, since
// ast annotates nodes with types.Type). The semantic package stores and
// reads the concrete *ast.Expression behind this interface.
type Expr interface {
	String() string
}

// Registry interns named type declarations by (case-sensitive) name.
type Registry struct {
	infos map[string]*Info
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{infos: make(map[string]*Info)}
}

// Define registers info under its own name. A second Define for the same
// name overwrites the first; the semantic declaration pass is responsible
// for rejecting duplicate declarations before this is called.
func (r *Registry) Define(info *Info) {
	r.infos[info.Name] = info
}

// Lookup finds a previously defined type by name.
func (r *Registry) Lookup(name string) (*Info, bool) {
	info, ok := r.infos[name]
	return info, ok
}

// Names returns every registered type name, sorted, for deterministic
// iteration. Callers that need source order should use the Program's
// declaration list directly rather than this registry.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.infos))
	for n := range r.infos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
