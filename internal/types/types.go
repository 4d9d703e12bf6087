// Package types implements VibeLang's closed type lattice: the resolved
// form that internal/ast.TypeExpr nodes are checked against and reduced to.
// Every Type knows its own kind tag and renders a canonical name; equality
// is structural.
package types

import "strings"

// Type is the interface implemented by every resolved type. TypeKind
// returns a stable tag used for switch dispatch in the checker, verifier,
// and emitter; String renders the canonical, user-facing spelling.
type Type interface {
	TypeKind() string
	String() string
	Equals(other Type) bool
}

// Primitive is one of the six built-in scalar/unit types.
type Primitive struct {
	Kind string // "Int", "Float", "Bool", "String", "Byte", "Unit"
}

func (p *Primitive) TypeKind() string { return strings.ToUpper(p.Kind) }
func (p *Primitive) String() string   { return p.Kind }
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Kind == p.Kind
}

// The six primitive singletons. Comparisons against these should use
// Equals, not pointer identity, since resolved types may be rebuilt.
var (
	Int    = &Primitive{Kind: "Int"}
	Float  = &Primitive{Kind: "Float"}
	Bool   = &Primitive{Kind: "Bool"}
	String = &Primitive{Kind: "String"}
	Byte   = &Primitive{Kind: "Byte"}
	Unit   = &Primitive{Kind: "Unit"}
)

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && (p.Kind == "Int" || p.Kind == "Float")
}

// Array is `[T]`.
type Array struct {
	Element Type
}

func (a *Array) TypeKind() string { return "ARRAY" }
func (a *Array) String() string   { return "[" + a.Element.String() + "]" }
func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	return ok && a.Element.Equals(o.Element)
}

// Result is `Result[Ok, Err]`, the tagged Success/Error sum every function
// returning a fallible value is built on.
type Result struct {
	Ok  Type
	Err Type
}

func (r *Result) TypeKind() string { return "RESULT" }
func (r *Result) String() string   { return "Result[" + r.Ok.String() + ", " + r.Err.String() + "]" }
func (r *Result) Equals(other Type) bool {
	o, ok := other.(*Result)
	return ok && r.Ok.Equals(o.Ok) && r.Err.Equals(o.Err)
}

// Function is `(Params...) -> Return`.
type Function struct {
	Params []Type
	Return Type
}

func (f *Function) TypeKind() string { return "FUNCTION" }
func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + f.Return.String()
}
func (f *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(f.Params) != len(o.Params) || !f.Return.Equals(o.Return) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

// Named references a user-declared type (alias, sum, or refined) by its
// interned name, with resolved type arguments. Resolution to the
// declaration's underlying definition is a separate step performed by the
// type checker (see internal/semantic), keeping this struct acyclic even
// for recursive sum types.
type Named struct {
	Name string
	Args []Type
}

func (n *Named) TypeKind() string { return "NAMED" }
func (n *Named) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "[" + strings.Join(parts, ", ") + "]"
}
func (n *Named) Equals(other Type) bool {
	o, ok := other.(*Named)
	if !ok || n.Name != o.Name || len(n.Args) != len(o.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// TypeParam is an as-yet-uninstantiated type parameter in scope inside a
// generic declaration's body.
type TypeParam struct {
	Name string
}

func (t *TypeParam) TypeKind() string         { return "TYPE_PARAM" }
func (t *TypeParam) String() string           { return t.Name }
func (t *TypeParam) Equals(other Type) bool {
	o, ok := other.(*TypeParam)
	return ok && o.Name == t.Name
}

// Unresolved marks a type that could not be resolved; it compares equal to
// nothing (including itself) so that a single unresolved type never causes
// a cascade of "assignable" false positives. The checker emits one
// diagnostic at the point of failure and continues with Unresolved standing
// in.
type Unresolved struct{}

func (u *Unresolved) TypeKind() string      { return "UNRESOLVED" }
func (u *Unresolved) String() string        { return "<unresolved>" }
func (u *Unresolved) Equals(Type) bool      { return false }
