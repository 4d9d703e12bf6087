package semantic

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
)

// ContractPass checks the shape and vocabulary of every function
// precondition and postcondition after ValidationPass has typed them (type
// invariants are not visited): `old(...)` may only wrap
// a parameter reference (snapshotting arbitrary expressions is not
// supported in this revision), and `result` may only appear in a
// postcondition. The symbolic discharge step lives one layer further
// down the pipeline, in internal/verifier.
type ContractPass struct{}

func NewContractPass() *ContractPass { return &ContractPass{} }

func (p *ContractPass) Name() string { return "contract" }

func (p *ContractPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Declarations {
		fn, ok := decl.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		params := make(map[string]bool, len(fn.Params))
		for _, param := range fn.Params {
			params[param.Name] = true
		}
		for _, pre := range fn.Preconditions {
			p.checkContract(ctx, pre.Expr, params, false)
		}
		for _, post := range fn.Postconditions {
			p.checkContract(ctx, post.Expr, params, true)
		}
	}
	return nil
}

func (p *ContractPass) checkContract(ctx *Context, e ast.Expression, params map[string]bool, inPostcondition bool) {
	switch e := e.(type) {
	case *ast.OldExpression:
		if !inPostcondition {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "'old(...)' may only appear in a postcondition")
			return
		}
		id, ok := e.Inner.(*ast.Identifier)
		if !ok || !params[id.Name] {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "'old(...)' may only wrap a parameter reference")
		}
	case *ast.Identifier:
		if e.Name == "result" && !inPostcondition {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "'result' may only appear in a postcondition")
		}
	case *ast.BinaryExpression:
		p.checkContract(ctx, e.Left, params, inPostcondition)
		p.checkContract(ctx, e.Right, params, inPostcondition)
	case *ast.UnaryExpression:
		p.checkContract(ctx, e.Operand, params, inPostcondition)
	case *ast.ParenExpression:
		p.checkContract(ctx, e.Inner, params, inPostcondition)
	case *ast.CallExpression:
		p.checkContract(ctx, e.Callee, params, inPostcondition)
		for _, a := range e.Args {
			p.checkContract(ctx, a, params, inPostcondition)
		}
	case *ast.MemberAccessExpression:
		p.checkContract(ctx, e.Object, params, inPostcondition)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			p.checkContract(ctx, el, params, inPostcondition)
		}
	case *ast.WhenExpression:
		p.checkContract(ctx, e.Condition, params, inPostcondition)
		if v := e.Then.Value(); v != nil {
			p.checkContract(ctx, v, params, inPostcondition)
		}
		if e.Else != nil {
			if v := e.Else.Value(); v != nil {
				p.checkContract(ctx, v, params, inPostcondition)
			}
		}
	}
}
