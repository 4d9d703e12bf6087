package semantic

import (
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/types"
)

// ScopeKind identifies the kind of a value Scope: global, function, or
// block.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

// Scope is one level of the value environment. Scopes chain to a parent,
// allowing nested let-bindings to shadow outer ones while still resolving
// through to function parameters and globals.
type Scope struct {
	Kind    ScopeKind
	Symbols map[string]types.Type
	Parent  *Scope
}

// NewScope creates a Scope of the given kind, chained to parent.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Symbols: make(map[string]types.Type), Parent: parent}
}

// Define binds name to typ in this scope only.
func (s *Scope) Define(name string, typ types.Type) { s.Symbols[name] = typ }

// Lookup resolves name in this scope and its ancestors.
func (s *Scope) Lookup(name string) (types.Type, bool) {
	if t, ok := s.Symbols[name]; ok {
		return t, true
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil, false
}

// Context is the shared state threaded through every semantic Pass: the
// type-name environment, the diagnostics buffer, and bookkeeping the
// verifier and emitter later read.
type Context struct {
	// Types is the type-name environment of declared type names.
	// Primitives are resolved by name in ResolveTypeExpr and type
	// parameters are not entered here.
	Types *types.Registry

	// Functions holds every declared function's resolved signature, keyed
	// by name, populated by DeclarationPass and consulted by
	// ValidationPass for call type-checking.
	Functions map[string]*types.Function

	// scopeStack is the value-environment scope chain; index 0 is always
	// the global scope.
	scopeStack []*Scope

	Diagnostics *errors.Diagnostics

	// CurrentFunction is set while checking a function body, so nested
	// expressions can resolve `result` and validate `old(...)` placement.
	CurrentFunction *FunctionInfo
}

// FunctionInfo snapshots the function currently being checked.
type FunctionInfo struct {
	Name       string
	ReturnType types.Type
	InPostcondition bool
}

// NewContext creates a Context with an empty global scope and a fresh
// type registry pre-populated with nothing (primitives are looked up by
// name directly in ResolveTypeExpr, not registered in the Registry, which
// only interns user declarations per internal/types.Registry's doc
// comment).
func NewContext() *Context {
	global := NewScope(ScopeGlobal, nil)
	return &Context{
		Types:       types.NewRegistry(),
		Functions:   make(map[string]*types.Function),
		scopeStack:  []*Scope{global},
		Diagnostics: &errors.Diagnostics{},
	}
}

// PushScope enters a new nested value scope.
func (c *Context) PushScope(kind ScopeKind) {
	c.scopeStack = append(c.scopeStack, NewScope(kind, c.CurrentScope()))
}

// PopScope exits the innermost value scope.
func (c *Context) PopScope() {
	if len(c.scopeStack) <= 1 {
		return
	}
	c.scopeStack = c.scopeStack[:len(c.scopeStack)-1]
}

// CurrentScope returns the innermost value scope.
func (c *Context) CurrentScope() *Scope {
	return c.scopeStack[len(c.scopeStack)-1]
}

// Lookup resolves name through the current value-scope chain.
func (c *Context) Lookup(name string) (types.Type, bool) {
	return c.CurrentScope().Lookup(name)
}

// Define binds name in the current value scope.
func (c *Context) Define(name string, typ types.Type) {
	c.CurrentScope().Define(name, typ)
}
