// Package emitter lowers the typed, verified, optimized AST to target
// source text plus a fixed runtime prelude. Grounded on pkg/printer's AST-
// traversal style (one method per node kind, a strings.Builder output sink)
// for the traversal shape, and on the pack's text/template-based generator
// for the fixed-prelude-prepended-once structure (see prelude.go).
package emitter

import (
	"fmt"
	"strings"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/verifier"
)

// Emitter lowers one *ast.Program to target source text.
type Emitter struct {
	Level       verifier.Level
	Diagnostics *errors.Diagnostics

	variantPayload map[string][]ast.TypeExpr
	temp           int
}

// New creates an Emitter at the given verification level.
func New(level verifier.Level, diags *errors.Diagnostics) *Emitter {
	return &Emitter{Level: level, Diagnostics: diags}
}

func (e *Emitter) nextTemp() int {
	e.temp++
	return e.temp
}

// internalError records an Internal diagnostic for a node the emitter
// cannot lower.
func (e *Emitter) internalError(pos lexer.Position, format string, args ...any) {
	e.Diagnostics.Add(errors.Diagnostic{
		Severity: errors.SeverityError,
		Kind:     errors.KindInternal,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Emit lowers program to target source text: the fixed prelude, then every
// declaration in source order.
func (e *Emitter) Emit(program *ast.Program) string {
	e.indexVariants(program)

	var sb strings.Builder
	sb.WriteString(prelude())

	for _, d := range program.Declarations {
		sb.WriteString("\n")
		switch d := d.(type) {
		case *ast.TypeDecl:
			e.emitTypeDecl(&sb, d)
		case *ast.FunctionDecl:
			e.emitFunctionDecl(&sb, d)
		default:
			e.internalError(d.Pos(), "emitter cannot lower declaration %T", d)
		}
	}
	return sb.String()
}

// indexVariants records each sum-type variant's positional payload types by
// variant name, ahead of emitting any function body, so given-expression
// pattern lowering can type-assert payload elements correctly regardless of
// which declaration comes first in source order.
func (e *Emitter) indexVariants(program *ast.Program) {
	e.variantPayload = make(map[string][]ast.TypeExpr)
	for _, d := range program.Declarations {
		td, ok := d.(*ast.TypeDecl)
		if !ok || td.DefKind != ast.SumTypeDef {
			continue
		}
		for _, v := range td.Variants {
			e.variantPayload[v.Name] = v.Payload
		}
	}
}
