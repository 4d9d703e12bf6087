package semantic

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/types"
)

// ValidationPass type-checks every function body, contract, and type
// invariant, attaching a resolved internal/types.Type to every expression
// node it visits. It is the last of the pipeline's structural checks
// before contract-specific analysis.
type ValidationPass struct{}

func NewValidationPass() *ValidationPass { return &ValidationPass{} }

func (p *ValidationPass) Name() string { return "validation" }

func (p *ValidationPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.TypeDecl:
			p.checkTypeDecl(ctx, d)
		case *ast.FunctionDecl:
			p.checkFunctionDecl(ctx, d)
		}
	}
	return nil
}

func (p *ValidationPass) checkTypeDecl(ctx *Context, d *ast.TypeDecl) {
	if d.DefKind != ast.RefinedTypeDef || len(d.Invariants) == 0 {
		return
	}
	ctx.PushScope(ScopeBlock)
	defer ctx.PopScope()
	base := ResolveTypeExpr(ctx, d.Base)
	ctx.Define("value", base)
	ctx.Define("self", base)
	for _, inv := range d.Invariants {
		t := p.typeExpr(ctx, inv.Expr)
		if !isBoolOrUnresolved(t) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, inv.Position, "invariant must be Bool, got %s", t)
		}
	}
}

func (p *ValidationPass) checkFunctionDecl(ctx *Context, d *ast.FunctionDecl) {
	ctx.PushScope(ScopeFunction)
	defer ctx.PopScope()

	for _, param := range d.Params {
		ctx.Define(param.Name, ResolveTypeExpr(ctx, param.Type))
	}

	prevFn := ctx.CurrentFunction
	ctx.CurrentFunction = &FunctionInfo{Name: d.Name, ReturnType: d.ResolvedReturnType}
	defer func() { ctx.CurrentFunction = prevFn }()

	for _, pre := range d.Preconditions {
		t := p.typeExpr(ctx, pre.Expr)
		if !isBoolOrUnresolved(t) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, pre.Position, "precondition must be Bool, got %s", t)
		}
	}

	bodyType := p.typeBlock(ctx, d.Body)
	if d.ResolvedReturnType != nil && bodyType != nil && !assignable(bodyType, d.ResolvedReturnType) {
		pos := d.Position
		if d.Body.Value() != nil {
			pos = d.Body.Value().Pos()
		}
		ctx.Diagnostics.Errorf(errors.KindSemantic, pos,
			"function body has type %s but declared return type is %s", bodyType, d.ResolvedReturnType)
	}

	ctx.CurrentFunction.InPostcondition = true
	ctx.Define("result", d.ResolvedReturnType)
	for _, post := range d.Postconditions {
		t := p.typeExpr(ctx, post.Expr)
		if !isBoolOrUnresolved(t) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, post.Position, "postcondition must be Bool, got %s", t)
		}
	}
	ctx.CurrentFunction.InPostcondition = false
}

// typeBlock types every statement in a block and returns the type of its
// trailing expression statement, or Unit if the block has no value.
func (p *ValidationPass) typeBlock(ctx *Context, b *ast.Block) types.Type {
	ctx.PushScope(ScopeBlock)
	defer ctx.PopScope()

	var last types.Type = types.Unit
	for i, stmt := range b.Statements {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			valType := p.typeExpr(ctx, s.Value)
			if s.Annotation != nil {
				annType := ResolveTypeExpr(ctx, s.Annotation)
				if !assignable(valType, annType) {
					ctx.Diagnostics.Errorf(errors.KindSemantic, s.Position,
						"let %q: declared type %s does not match value type %s", s.Name, annType, valType)
				}
				s.ResolvedType = annType
			} else {
				s.ResolvedType = valType
			}
			ctx.Define(s.Name, s.ResolvedType)
		case *ast.AssignStatement:
			targetType, ok := ctx.Lookup(s.Target)
			if !ok {
				ctx.Diagnostics.Errorf(errors.KindSemantic, s.Position, "unknown identifier %q", s.Target)
				p.typeExpr(ctx, s.Value)
				continue
			}
			valType := p.typeExpr(ctx, s.Value)
			if !assignable(valType, targetType) {
				ctx.Diagnostics.Errorf(errors.KindSemantic, s.Position,
					"cannot assign %s to %q of type %s", valType, s.Target, targetType)
			}
		case *ast.ExpressionStatement:
			t := p.typeExpr(ctx, s.Expr)
			if i == len(b.Statements)-1 {
				last = t
			}
		}
	}
	return last
}

// typeExpr types one expression node, recording the result via
// SetResolvedType, and returns it.
func (p *ValidationPass) typeExpr(ctx *Context, e ast.Expression) types.Type {
	if e == nil {
		return &types.Unresolved{}
	}
	t := p.typeExprUncached(ctx, e)
	e.SetResolvedType(t)
	return t
}

func (p *ValidationPass) typeExprUncached(ctx *Context, e ast.Expression) types.Type {
	switch e := e.(type) {
	case *ast.IntegerLiteral:
		return types.Int
	case *ast.FloatLiteral:
		return types.Float
	case *ast.StringLiteral:
		return types.String
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.Identifier:
		if t, ok := ctx.Lookup(e.Name); ok {
			return t
		}
		ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "unknown identifier %q", e.Name)
		return &types.Unresolved{}
	case *ast.OldExpression:
		if ctx.CurrentFunction == nil || !ctx.CurrentFunction.InPostcondition {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "'old(...)' is only valid inside a postcondition")
		}
		return p.typeExpr(ctx, e.Inner)
	case *ast.ParenExpression:
		return p.typeExpr(ctx, e.Inner)
	case *ast.UnaryExpression:
		return p.typeUnary(ctx, e)
	case *ast.BinaryExpression:
		return p.typeBinary(ctx, e)
	case *ast.CallExpression:
		return p.typeCall(ctx, e)
	case *ast.MemberAccessExpression:
		p.typeExpr(ctx, e.Object)
		return &types.Unresolved{} // structural member types are not modeled; there is no record-type declaration
	case *ast.ArrayLiteral:
		if len(e.Elements) == 0 {
			return &types.Array{Element: &types.Unresolved{}}
		}
		elemType := p.typeExpr(ctx, e.Elements[0])
		for _, el := range e.Elements[1:] {
			t := p.typeExpr(ctx, el)
			if !t.Equals(elemType) {
				ctx.Diagnostics.Errorf(errors.KindSemantic, el.Pos(), "array element type %s does not match %s", t, elemType)
			}
		}
		return &types.Array{Element: elemType}
	case *ast.RecordLiteral:
		for _, f := range e.Fields {
			p.typeExpr(ctx, f.Value)
		}
		return &types.Unresolved{}
	case *ast.WhenExpression:
		return p.typeWhen(ctx, e)
	case *ast.GivenExpression:
		return p.typeGiven(ctx, e)
	default:
		return &types.Unresolved{}
	}
}

func (p *ValidationPass) typeUnary(ctx *Context, e *ast.UnaryExpression) types.Type {
	operandType := p.typeExpr(ctx, e.Operand)
	switch e.Operator {
	case "-":
		if !types.IsNumeric(operandType) && !isUnresolved(operandType) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "unary '-' requires a numeric operand, got %s", operandType)
		}
		return operandType
	case "!":
		if !operandType.Equals(types.Bool) && !isUnresolved(operandType) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "unary '!' requires Bool, got %s", operandType)
		}
		return types.Bool
	default:
		return &types.Unresolved{}
	}
}

func (p *ValidationPass) typeBinary(ctx *Context, e *ast.BinaryExpression) types.Type {
	left := p.typeExpr(ctx, e.Left)
	right := p.typeExpr(ctx, e.Right)

	switch e.Operator {
	case "+", "-", "*", "/", "%":
		if e.Operator == "+" && left.Equals(types.String) && right.Equals(types.String) {
			return types.String
		}
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			if !isUnresolved(left) && !isUnresolved(right) {
				ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position,
					"operator %q requires two numeric operands (or String for '+'), got %s and %s", e.Operator, left, right)
			}
			return &types.Unresolved{}
		}
		if !left.Equals(right) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "operator %q requires operands of the same type, got %s and %s", e.Operator, left, right)
		}
		return left
	case "<", ">", "<=", ">=":
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			if !isUnresolved(left) && !isUnresolved(right) {
				ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "comparison %q requires numeric operands, got %s and %s", e.Operator, left, right)
			}
		}
		return types.Bool
	case "==", "!=":
		if !left.Equals(right) && !isUnresolved(left) && !isUnresolved(right) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "equality %q requires operands of the same type, got %s and %s", e.Operator, left, right)
		}
		return types.Bool
	case "&&", "||":
		if (!left.Equals(types.Bool) && !isUnresolved(left)) || (!right.Equals(types.Bool) && !isUnresolved(right)) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "logical %q requires Bool operands, got %s and %s", e.Operator, left, right)
		}
		return types.Bool
	default:
		return &types.Unresolved{}
	}
}

func (p *ValidationPass) typeCall(ctx *Context, e *ast.CallExpression) types.Type {
	calleeType := p.typeExpr(ctx, e.Callee)
	fn, ok := calleeType.(*types.Function)
	if !ok {
		if !isUnresolved(calleeType) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "cannot call a value of type %s", calleeType)
		}
		for _, a := range e.Args {
			p.typeExpr(ctx, a)
		}
		return &types.Unresolved{}
	}
	if len(e.Args) != len(fn.Params) {
		ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "expected %d argument(s), got %d", len(fn.Params), len(e.Args))
	}
	for i, a := range e.Args {
		argType := p.typeExpr(ctx, a)
		if i < len(fn.Params) && !assignable(argType, fn.Params[i]) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, a.Pos(), "argument %d: expected %s, got %s", i+1, fn.Params[i], argType)
		}
	}
	return fn.Return
}

func (p *ValidationPass) typeWhen(ctx *Context, e *ast.WhenExpression) types.Type {
	condType := p.typeExpr(ctx, e.Condition)
	if !condType.Equals(types.Bool) && !isUnresolved(condType) {
		ctx.Diagnostics.Errorf(errors.KindSemantic, e.Condition.Pos(), "when condition must be Bool, got %s", condType)
	}
	thenType := p.typeBlock(ctx, e.Then)
	if e.Else == nil {
		return types.Unit
	}
	elseType := p.typeBlock(ctx, e.Else)
	if !thenType.Equals(elseType) && !isUnresolved(thenType) && !isUnresolved(elseType) {
		ctx.Diagnostics.Errorf(errors.KindSemantic, e.Position, "when branches have different types: %s vs %s", thenType, elseType)
	}
	return thenType
}

func (p *ValidationPass) typeGiven(ctx *Context, e *ast.GivenExpression) types.Type {
	scrutType := p.typeExpr(ctx, e.Scrutinee)
	var resultType types.Type
	for i, c := range e.Cases {
		ctx.PushScope(ScopeBlock)
		p.bindPattern(ctx, c.Pattern, scrutType)
		caseType := p.typeExpr(ctx, c.Result)
		ctx.PopScope()
		if i == 0 {
			resultType = caseType
		} else if !resultType.Equals(caseType) && !isUnresolved(resultType) && !isUnresolved(caseType) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, c.Result.Pos(), "given case type %s does not match earlier case type %s", caseType, resultType)
		}
	}
	if resultType == nil {
		return &types.Unresolved{}
	}
	return resultType
}

// bindPattern binds identifiers a pattern introduces, and checks
// constructor patterns against the scrutinee's declared variants.
func (p *ValidationPass) bindPattern(ctx *Context, pat ast.Pattern, scrutType types.Type) {
	switch pat := pat.(type) {
	case *ast.IdentifierPattern:
		ctx.Define(pat.Name, scrutType)
	case *ast.WildcardPattern, *ast.LiteralPattern:
		// no bindings
	case *ast.ConstructorPattern:
		named, ok := UnderlyingNamed(ctx, scrutType)
		if !ok {
			if !isUnresolved(scrutType) {
				ctx.Diagnostics.Errorf(errors.KindSemantic, pat.Position, "pattern %q does not match non-sum type %s", pat.Name, scrutType)
			}
			for _, sp := range pat.SubPatterns {
				p.bindPattern(ctx, sp, &types.Unresolved{})
			}
			return
		}
		variant, ok := findVariant(named, pat.Name)
		if !ok {
			ctx.Diagnostics.Errorf(errors.KindSemantic, pat.Position, "unknown variant %q", pat.Name)
			for _, sp := range pat.SubPatterns {
				p.bindPattern(ctx, sp, &types.Unresolved{})
			}
			return
		}
		if len(pat.SubPatterns) != len(variant.Payload) {
			ctx.Diagnostics.Errorf(errors.KindSemantic, pat.Position,
				"variant %q expects %d argument(s), got %d", pat.Name, len(variant.Payload), len(pat.SubPatterns))
		}
		for i, sp := range pat.SubPatterns {
			var payloadType types.Type = &types.Unresolved{}
			if i < len(variant.Payload) {
				payloadType = variant.Payload[i]
			}
			p.bindPattern(ctx, sp, payloadType)
		}
	}
}

// UnderlyingNamed resolves t to its sum-type Info, if it is (or reduces
// to) one.
func UnderlyingNamed(ctx *Context, t types.Type) (*types.Info, bool) {
	named, ok := t.(*types.Named)
	if !ok {
		return nil, false
	}
	info, ok := ctx.Types.Lookup(named.Name)
	if !ok || info.Kind != types.SumDef {
		return nil, false
	}
	return info, true
}

func findVariant(info *types.Info, name string) (types.Variant, bool) {
	for _, v := range info.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return types.Variant{}, false
}

func isBoolOrUnresolved(t types.Type) bool {
	return t.Equals(types.Bool) || isUnresolved(t)
}

func isUnresolved(t types.Type) bool {
	_, ok := t.(*types.Unresolved)
	return ok
}

// assignable reports whether a value of type from may be used where to is
// expected. VibeLang has no implicit numeric widening, so this is structural
// equality, relaxed only for types.Unresolved so a single earlier error does
// not cascade.
func assignable(from, to types.Type) bool {
	if isUnresolved(from) || isUnresolved(to) {
		return true
	}
	return from.Equals(to)
}
