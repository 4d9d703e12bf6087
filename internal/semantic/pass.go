// Package semantic implements VibeLang's type checker as a small sequence
// of passes over the AST: each pass is a total function of (program,
// context) that annotates the tree and appends to a shared diagnostics
// buffer, never returning early except for a fatal internal error.
package semantic

import (
	"github.com/vibelang/vbl/internal/ast"
)

// Pass is one stage of semantic analysis.
type Pass interface {
	Name() string
	Run(program *ast.Program, ctx *Context) error
}

// PassManager runs a fixed sequence of passes, stopping early only if a
// pass already produced error-severity diagnostics.
type PassManager struct {
	passes []Pass
}

// NewPassManager creates a manager running passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll runs every pass in order over program, short-circuiting after
// the first pass that leaves error diagnostics in ctx.
func (pm *PassManager) RunAll(program *ast.Program, ctx *Context) error {
	for _, pass := range pm.passes {
		if err := pass.Run(program, ctx); err != nil {
			return err
		}
		if ctx.Diagnostics.HasErrors() {
			break
		}
	}
	return nil
}
