// Package optimizer rewrites a typed AST to a semantically equivalent,
// structurally new AST with constants folded and dead branches removed,
// running ahead of the separate emitter pass.
package optimizer

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
)

// Result is the outcome of one Optimize call: the rewritten program and
// how many rewrites were applied, for diagnostics.
type Result struct {
	Program  *ast.Program
	Rewrites int
}

// Optimize rewrites program to fixpoint and returns a new tree; the input
// is never mutated.
func Optimize(program *ast.Program) Result {
	o := &optimizer{}
	decls := make([]ast.Declaration, len(program.Declarations))
	for i, d := range program.Declarations {
		decls[i] = o.optimizeDecl(d)
	}
	out := &ast.Program{Imports: program.Imports, Declarations: decls}
	return Result{Program: out, Rewrites: o.rewrites}
}

type optimizer struct {
	rewrites int
}

func (o *optimizer) optimizeDecl(d ast.Declaration) ast.Declaration {
	fn, ok := d.(*ast.FunctionDecl)
	if !ok {
		return d
	}
	next := *fn
	next.Preconditions = o.optimizeContracts(fn.Preconditions)
	next.Postconditions = o.optimizeContracts(fn.Postconditions)
	next.Body = o.optimizeBlock(fn.Body)
	return &next
}

func (o *optimizer) optimizeContracts(cs []*ast.Contract) []*ast.Contract {
	out := make([]*ast.Contract, len(cs))
	for i, c := range cs {
		next := *c
		next.Expr = o.optimizeExpr(c.Expr)
		out[i] = &next
	}
	return out
}

func (o *optimizer) optimizeBlock(b *ast.Block) *ast.Block {
	if b == nil {
		return nil
	}
	stmts := make([]ast.Statement, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		stmts = append(stmts, o.optimizeStatement(stmt))
	}
	return &ast.Block{Statements: stmts, Position: b.Position}
}

func (o *optimizer) optimizeStatement(s ast.Statement) ast.Statement {
	switch s := s.(type) {
	case *ast.LetStatement:
		next := *s
		next.Value = o.optimizeExpr(s.Value)
		return &next
	case *ast.AssignStatement:
		next := *s
		next.Value = o.optimizeExpr(s.Value)
		return &next
	case *ast.ExpressionStatement:
		next := *s
		next.Expr = o.optimizeExpr(s.Expr)
		return &next
	default:
		return s
	}
}

// optimizeExpr rewrites e bottom-up to fixpoint: children are optimized
// first, then rewrite rules are applied to the resulting node repeatedly
// until none match.
func (o *optimizer) optimizeExpr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	current := o.optimizeOnce(e)
	for {
		next := o.optimizeOnce(current)
		if sameNode(next, current) {
			return next
		}
		current = next
	}
}

func sameNode(a, b ast.Expression) bool {
	return a.String() == b.String()
}

func (o *optimizer) optimizeOnce(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case *ast.ParenExpression:
		return o.optimizeExpr(e.Inner)
	case *ast.UnaryExpression:
		operand := o.optimizeExpr(e.Operand)
		if e.Operator == "!" {
			if inner, ok := operand.(*ast.UnaryExpression); ok && inner.Operator == "!" {
				o.rewrites++
				return inner.Operand // !!x -> x
			}
		}
		if lit, ok := foldUnary(e.Operator, operand); ok {
			o.rewrites++
			return lit
		}
		next := *e
		next.Operand = operand
		return &next
	case *ast.BinaryExpression:
		left := o.optimizeExpr(e.Left)
		right := o.optimizeExpr(e.Right)
		if lit, ok := foldBinary(e.Operator, left, right); ok {
			o.rewrites++
			return lit
		}
		if simplified, ok := simplifyIdentity(e.Operator, left, right); ok {
			o.rewrites++
			return simplified
		}
		next := *e
		next.Left = left
		next.Right = right
		return &next
	case *ast.CallExpression:
		next := *e
		next.Callee = o.optimizeExpr(e.Callee)
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = o.optimizeExpr(a)
		}
		next.Args = args
		return &next
	case *ast.MemberAccessExpression:
		next := *e
		next.Object = o.optimizeExpr(e.Object)
		return &next
	case *ast.ArrayLiteral:
		next := *e
		elems := make([]ast.Expression, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = o.optimizeExpr(el)
		}
		next.Elements = elems
		return &next
	case *ast.RecordLiteral:
		next := *e
		fields := make([]ast.RecordField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = ast.RecordField{Name: f.Name, Value: o.optimizeExpr(f.Value)}
		}
		next.Fields = fields
		return &next
	case *ast.WhenExpression:
		return o.optimizeWhen(e)
	case *ast.GivenExpression:
		next := *e
		next.Scrutinee = o.optimizeExpr(e.Scrutinee)
		cases := make([]ast.MatchCase, len(e.Cases))
		for i, c := range e.Cases {
			cases[i] = ast.MatchCase{Pattern: c.Pattern, Result: o.optimizeExpr(c.Result)}
		}
		next.Cases = cases
		return &next
	case *ast.OldExpression:
		next := *e
		next.Inner = o.optimizeExpr(e.Inner)
		return &next
	default:
		return e
	}
}

// optimizeWhen drops the dead branch once the condition folds to a
// constant. Calls are never folded away by this rule alone: if the surviving
// branch still contains a call, it is preserved exactly, so no side effect
// is lost.
func (o *optimizer) optimizeWhen(e *ast.WhenExpression) ast.Expression {
	cond := o.optimizeExpr(e.Condition)
	then := o.optimizeBlock(e.Then)
	var elseBlock *ast.Block
	if e.Else != nil {
		elseBlock = o.optimizeBlock(e.Else)
	}
	if lit, ok := cond.(*ast.BoolLiteral); ok {
		o.rewrites++
		if lit.Value {
			return blockToExpr(then, e.Position)
		}
		if elseBlock != nil {
			return blockToExpr(elseBlock, e.Position)
		}
		return &ast.BoolLiteral{Value: false, Position: e.Position} // spec has no standalone Unit literal syntax
	}
	next := *e
	next.Condition = cond
	next.Then = then
	next.Else = elseBlock
	return &next
}

// blockToExpr reduces a single-expression-statement block to its bare
// expression, so dead-branch elimination doesn't leave a needless
// wrapper; blocks with more than one statement keep their shape by being
// wrapped back in a When with an always-true condition, since Expression
// has no "block expression" variant of its own in this AST.
func blockToExpr(b *ast.Block, pos lexer.Position) ast.Expression {
	if v := b.Value(); v != nil && len(b.Statements) == 1 {
		return v
	}
	return &ast.WhenExpression{
		Condition: &ast.BoolLiteral{Value: true, Position: pos},
		Then:      b,
		Position:  pos,
	}
}
