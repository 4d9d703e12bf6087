package optimizer

import (
	"strconv"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
)

// foldUnary constant-folds a unary operator over an already-literal
// operand.
func foldUnary(op string, operand ast.Expression) (ast.Expression, bool) {
	switch op {
	case "-":
		switch v := operand.(type) {
		case *ast.IntegerLiteral:
			return &ast.IntegerLiteral{Value: -v.Value, Position: v.Position}, true
		case *ast.FloatLiteral:
			return &ast.FloatLiteral{Value: -v.Value, Raw: "-" + v.Raw, Position: v.Position}, true
		}
	case "!":
		if v, ok := operand.(*ast.BoolLiteral); ok {
			return &ast.BoolLiteral{Value: !v.Value, Position: v.Position}, true
		}
	}
	return nil, false
}

// foldBinary constant-folds a binary operator over two already-literal
// operands, covering Int, Float, Bool, and String concatenation.
func foldBinary(op string, left, right ast.Expression) (ast.Expression, bool) {
	pos := left.Pos()

	if li, lok := left.(*ast.IntegerLiteral); lok {
		if ri, rok := right.(*ast.IntegerLiteral); rok {
			return foldInt(op, li.Value, ri.Value, pos)
		}
	}
	if lf, lok := asFloat(left); lok {
		if rf, rok := asFloat(right); rok {
			return foldFloat(op, lf, rf, pos)
		}
	}
	if ls, lok := left.(*ast.StringLiteral); lok {
		if rs, rok := right.(*ast.StringLiteral); rok && op == "+" {
			return &ast.StringLiteral{Value: ls.Value + rs.Value, Position: pos}, true
		}
	}
	if lb, lok := left.(*ast.BoolLiteral); lok {
		if rb, rok := right.(*ast.BoolLiteral); rok {
			switch op {
			case "&&":
				return &ast.BoolLiteral{Value: lb.Value && rb.Value, Position: pos}, true
			case "||":
				return &ast.BoolLiteral{Value: lb.Value || rb.Value, Position: pos}, true
			case "==":
				return &ast.BoolLiteral{Value: lb.Value == rb.Value, Position: pos}, true
			case "!=":
				return &ast.BoolLiteral{Value: lb.Value != rb.Value, Position: pos}, true
			}
		}
	}
	return nil, false
}

func asFloat(e ast.Expression) (float64, bool) {
	switch v := e.(type) {
	case *ast.FloatLiteral:
		return v.Value, true
	case *ast.IntegerLiteral:
		return float64(v.Value), true
	}
	return 0, false
}

func foldInt(op string, l, r int64, pos lexer.Position) (ast.Expression, bool) {
	switch op {
	case "+":
		return &ast.IntegerLiteral{Value: l + r, Position: pos}, true
	case "-":
		return &ast.IntegerLiteral{Value: l - r, Position: pos}, true
	case "*":
		return &ast.IntegerLiteral{Value: l * r, Position: pos}, true
	case "/":
		if r == 0 {
			return nil, false // division by zero is a runtime concern, not folded away
		}
		return &ast.IntegerLiteral{Value: l / r, Position: pos}, true
	case "%":
		if r == 0 {
			return nil, false
		}
		return &ast.IntegerLiteral{Value: l % r, Position: pos}, true
	case "==":
		return &ast.BoolLiteral{Value: l == r, Position: pos}, true
	case "!=":
		return &ast.BoolLiteral{Value: l != r, Position: pos}, true
	case "<":
		return &ast.BoolLiteral{Value: l < r, Position: pos}, true
	case "<=":
		return &ast.BoolLiteral{Value: l <= r, Position: pos}, true
	case ">":
		return &ast.BoolLiteral{Value: l > r, Position: pos}, true
	case ">=":
		return &ast.BoolLiteral{Value: l >= r, Position: pos}, true
	}
	return nil, false
}

func foldFloat(op string, l, r float64, pos lexer.Position) (ast.Expression, bool) {
	switch op {
	case "+":
		return &ast.FloatLiteral{Value: l + r, Raw: formatFloat(l + r), Position: pos}, true
	case "-":
		return &ast.FloatLiteral{Value: l - r, Raw: formatFloat(l - r), Position: pos}, true
	case "*":
		return &ast.FloatLiteral{Value: l * r, Raw: formatFloat(l * r), Position: pos}, true
	case "/":
		if r == 0 {
			return nil, false
		}
		return &ast.FloatLiteral{Value: l / r, Raw: formatFloat(l / r), Position: pos}, true
	case "==":
		return &ast.BoolLiteral{Value: l == r, Position: pos}, true
	case "!=":
		return &ast.BoolLiteral{Value: l != r, Position: pos}, true
	case "<":
		return &ast.BoolLiteral{Value: l < r, Position: pos}, true
	case "<=":
		return &ast.BoolLiteral{Value: l <= r, Position: pos}, true
	case ">":
		return &ast.BoolLiteral{Value: l > r, Position: pos}, true
	case ">=":
		return &ast.BoolLiteral{Value: l >= r, Position: pos}, true
	}
	return nil, false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// simplifyIdentity applies the identity/absorbing-element rewrites that
// don't require both operands to be literals.
//
// x+0/x-0/x*1/1*x keep the non-literal operand verbatim, so any side
// effect it carries survives unchanged. x*0/0*x instead discard the
// non-literal operand entirely, which is only sound when that operand
// is pure, per an explicit purity table — anything not on the table is
// treated as impure.
func simplifyIdentity(op string, left, right ast.Expression) (ast.Expression, bool) {
	switch op {
	case "+":
		if isIntLiteral(right, 0) {
			return left, true
		}
		if isIntLiteral(left, 0) {
			return right, true
		}
	case "-":
		if isIntLiteral(right, 0) {
			return left, true
		}
	case "*":
		if isIntLiteral(right, 1) {
			return left, true
		}
		if isIntLiteral(left, 1) {
			return right, true
		}
		if isIntLiteral(right, 0) && isPure(left) {
			return &ast.IntegerLiteral{Value: 0, Position: left.Pos()}, true
		}
		if isIntLiteral(left, 0) && isPure(right) {
			return &ast.IntegerLiteral{Value: 0, Position: left.Pos()}, true
		}
	}
	return nil, false
}

func isIntLiteral(e ast.Expression, v int64) bool {
	lit, ok := e.(*ast.IntegerLiteral)
	return ok && lit.Value == v
}

// pureBuiltins lists the callee names recognized as side-effect-free.
// VibeLang defines no built-in function library, so this table is empty
// and every call is treated as impure; it exists as the explicit
// extension point for when one is added.
var pureBuiltins = map[string]bool{}

// isPure conservatively reports whether evaluating e can have no
// observable side effect, so it is safe to drop a copy of e entirely
// (rather than fold it into the result) during optimization.
func isPure(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral, *ast.BoolLiteral, *ast.Identifier:
		return true
	case *ast.ParenExpression:
		return isPure(e.Inner)
	case *ast.UnaryExpression:
		return isPure(e.Operand)
	case *ast.BinaryExpression:
		return isPure(e.Left) && isPure(e.Right)
	case *ast.MemberAccessExpression:
		return isPure(e.Object)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			if !isPure(el) {
				return false
			}
		}
		return true
	case *ast.RecordLiteral:
		for _, f := range e.Fields {
			if !isPure(f.Value) {
				return false
			}
		}
		return true
	case *ast.CallExpression:
		id, ok := e.Callee.(*ast.Identifier)
		if !ok || !pureBuiltins[id.Name] {
			return false
		}
		for _, a := range e.Args {
			if !isPure(a) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
