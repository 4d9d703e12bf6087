package verifier

import "github.com/vibelang/vbl/internal/ast"

// linterm is a linear expression over Int-valued identifiers: sum of
// coeff*name plus a constant. Built by linearize so goals and facts can be
// compared by simple rearrangement.
type linterm struct {
	coeffs map[string]int64
	const_ int64
}

func newLinterm() *linterm {
	return &linterm{coeffs: make(map[string]int64)}
}

func (t *linterm) add(other *linterm, scale int64) {
	for name, c := range other.coeffs {
		t.coeffs[name] += c * scale
	}
	t.const_ += other.const_ * scale
}

// isNonnegCombination reports whether every variable term in t has a
// coefficient whose sign is backed by a known-nonnegative fact, and the
// constant term is itself nonnegative — i.e. t is a sum of nonnegative
// pieces, so t >= 0 holds.
func (t *linterm) isNonnegCombination(nonneg map[string]bool) bool {
	if t.const_ < 0 {
		return false
	}
	for name, c := range t.coeffs {
		if c == 0 {
			continue
		}
		if c < 0 || !nonneg[name] {
			return false
		}
	}
	return true
}

// isZero reports whether t is the zero linear form (every coefficient and
// the constant are zero), used to discharge goals of the form `a == a+0`
// after rearrangement.
func (t *linterm) isZero() bool {
	if t.const_ != 0 {
		return false
	}
	for _, c := range t.coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// linearize reduces e to a linterm if it is built entirely from Int
// literals, identifiers, +, -, and * by a constant factor; it unwraps
// old(...) transparently, since this lightweight model tracks no
// parameter mutation and `old` is restricted to bare parameter
// references.
func linearize(e ast.Expression, equalTo map[string]int64) (*linterm, bool) {
	switch e := e.(type) {
	case *ast.IntegerLiteral:
		t := newLinterm()
		t.const_ = e.Value
		return t, true
	case *ast.Identifier:
		if v, ok := equalTo[e.Name]; ok {
			t := newLinterm()
			t.const_ = v
			return t, true
		}
		t := newLinterm()
		t.coeffs[e.Name] = 1
		return t, true
	case *ast.OldExpression:
		return linearize(e.Inner, equalTo)
	case *ast.ParenExpression:
		return linearize(e.Inner, equalTo)
	case *ast.UnaryExpression:
		if e.Operator != "-" {
			return nil, false
		}
		inner, ok := linearize(e.Operand, equalTo)
		if !ok {
			return nil, false
		}
		t := newLinterm()
		t.add(inner, -1)
		return t, true
	case *ast.BinaryExpression:
		left, ok := linearize(e.Left, equalTo)
		if !ok {
			return nil, false
		}
		switch e.Operator {
		case "+":
			right, ok := linearize(e.Right, equalTo)
			if !ok {
				return nil, false
			}
			t := newLinterm()
			t.add(left, 1)
			t.add(right, 1)
			return t, true
		case "-":
			right, ok := linearize(e.Right, equalTo)
			if !ok {
				return nil, false
			}
			t := newLinterm()
			t.add(left, 1)
			t.add(right, -1)
			return t, true
		case "*":
			if lit, ok := e.Right.(*ast.IntegerLiteral); ok {
				t := newLinterm()
				t.add(left, lit.Value)
				return t, true
			}
			if lit, ok := e.Left.(*ast.IntegerLiteral); ok {
				right, ok := linearize(e.Right, equalTo)
				if !ok {
					return nil, false
				}
				t := newLinterm()
				t.add(right, lit.Value)
				return t, true
			}
			return nil, false
		default:
			return nil, false
		}
	default:
		return nil, false
	}
}

// substituteResult returns a copy of e with every bare reference to the
// identifier `result` replaced by value, so a postcondition can be
// discharged in terms of the function body's own return expression instead
// of a free symbol that nothing in the fact set ever binds. Node kinds
// outside the linear fragment discharge understands are returned as-is.
func substituteResult(e ast.Expression, value ast.Expression) ast.Expression {
	switch e := e.(type) {
	case *ast.Identifier:
		if e.Name == "result" {
			return value
		}
		return e
	case *ast.ParenExpression:
		return &ast.ParenExpression{Inner: substituteResult(e.Inner, value), Position: e.Position}
	case *ast.UnaryExpression:
		return &ast.UnaryExpression{Operator: e.Operator, Operand: substituteResult(e.Operand, value), Position: e.Position}
	case *ast.BinaryExpression:
		return &ast.BinaryExpression{
			Left:     substituteResult(e.Left, value),
			Operator: e.Operator,
			Right:    substituteResult(e.Right, value),
			Position: e.Position,
		}
	default:
		return e
	}
}

// factSet accumulates what is known while checking one function: constant
// bindings from let-statements whose value is a literal, and identifiers
// known nonnegative from preconditions. `when` guards add no facts.
type factSet struct {
	raw     []ast.Expression // original boolean fact expressions, passed to the Oracle as-is
	equalTo map[string]int64
	nonneg  map[string]bool
}

func newFactSet() *factSet {
	return &factSet{equalTo: make(map[string]int64), nonneg: make(map[string]bool)}
}

// clone returns a copy that can be extended without affecting the
// caller's facts. The verifier does not call it at present.
func (fs *factSet) clone() *factSet {
	next := newFactSet()
	next.raw = append(next.raw, fs.raw...)
	for k, v := range fs.equalTo {
		next.equalTo[k] = v
	}
	for k, v := range fs.nonneg {
		next.nonneg[k] = v
	}
	return next
}

// learn absorbs one boolean fact expression, extracting any constant
// bindings or sign information it states.
func (fs *factSet) learn(e ast.Expression) {
	fs.raw = append(fs.raw, e)
	switch e := e.(type) {
	case *ast.BinaryExpression:
		switch e.Operator {
		case "&&":
			fs.learn(e.Left)
			fs.learn(e.Right)
			return
		case ">=", ">":
			// `a >= 0` / `a > 0` directly states a is nonnegative.
			fs.learnSign(e.Left, e.Right)
		case "<=", "<":
			// `0 <= a` / `0 < a` states the same thing with operands swapped.
			fs.learnSign(e.Right, e.Left)
		case "==":
			if id, ok := e.Left.(*ast.Identifier); ok {
				if lit, ok := e.Right.(*ast.IntegerLiteral); ok {
					fs.equalTo[id.Name] = lit.Value
				}
			}
			if id, ok := e.Right.(*ast.Identifier); ok {
				if lit, ok := e.Left.(*ast.IntegerLiteral); ok {
					fs.equalTo[id.Name] = lit.Value
				}
			}
		}
	case *ast.ParenExpression:
		fs.learn(e.Inner)
	}
}

// learnSign records lhs as nonnegative when rhs is the literal 0.
func (fs *factSet) learnSign(lhs, rhs ast.Expression) {
	id, ok := lhs.(*ast.Identifier)
	if !ok {
		return
	}
	lit, ok := rhs.(*ast.IntegerLiteral)
	if !ok || lit.Value != 0 {
		return
	}
	fs.nonneg[id.Name] = true
}
