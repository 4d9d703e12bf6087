// Package verifier implements VibeLang's symbolic contract discharge:
// for each precondition, postcondition, and type invariant it decides
// proven, refuted, or unknown, and records the verdict on the AST for
// the emitter to act on.
package verifier

import (
	"context"
	"time"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
)

// Verifier discharges contracts at a configured Level, optionally
// escalating undecided goals to an Oracle.
type Verifier struct {
	Oracle      Oracle
	Level       Level
	TimeoutMS   int // oracle budget; 0 means no timeout
	Diagnostics *errors.Diagnostics
}

// New creates a Verifier at the given level with the in-process default
// oracle. Callers that have a real SMT backend replace v.Oracle directly.
func New(level Level, timeoutMS int, diags *errors.Diagnostics) *Verifier {
	return &Verifier{Oracle: DefaultOracle{}, Level: level, TimeoutMS: timeoutMS, Diagnostics: diags}
}

// VerifyProgram discharges every contract in program, mutating each
// ast.Contract's Status (and Witness, if refuted) in place.
func (v *Verifier) VerifyProgram(program *ast.Program) {
	if v.Level == LevelNone {
		return
	}
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			v.verifyFunction(d)
		case *ast.TypeDecl:
			v.verifyTypeInvariants(d)
		}
	}
}

func (v *Verifier) verifyFunction(d *ast.FunctionDecl) {
	// Parameters contribute no facts beyond being free symbolic values
	// until a precondition or let-binding says otherwise.
	facts := newFactSet()
	for _, pre := range d.Preconditions {
		v.dischargePrecondition(pre, facts)
		facts.learn(pre.Expr)
	}
	v.learnFromBlock(d.Body, facts)

	// `result` denotes the function's return value, i.e. its body's value
	// expression; substitute it in before discharging so a postcondition
	// like `ensure result >= x` over a body `x + y` actually exposes the
	// arithmetic the linear machinery needs to fire.
	bodyValue := d.Body.Value()
	for _, post := range d.Postconditions {
		goal := post.Expr
		if bodyValue != nil {
			goal = substituteResult(goal, bodyValue)
		}
		v.dischargeContract(post, goal, facts)
	}
}

func (v *Verifier) verifyTypeInvariants(d *ast.TypeDecl) {
	if d.DefKind != ast.RefinedTypeDef {
		return
	}
	facts := newFactSet()
	for _, inv := range d.Invariants {
		v.dischargeContract(inv, inv.Expr, facts)
		facts.learn(inv.Expr)
	}
}

// learnFromBlock absorbs let-binding equalities from a function body so
// later postconditions can use them.
func (v *Verifier) learnFromBlock(b *ast.Block, facts *factSet) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		if let, ok := stmt.(*ast.LetStatement); ok {
			if lit, ok := let.Value.(*ast.IntegerLiteral); ok {
				facts.equalTo[let.Name] = lit.Value
			}
		}
	}
}

// dischargeContract runs the discharge algorithm on goal and writes the
// resulting status (and any refutation diagnostic) onto c. goal is usually
// c.Expr itself, but callers that have rewritten the contract into an
// equivalent, more tractable form (see verifyFunction's result
// substitution) pass that instead, keeping c.Expr as the original source
// text for diagnostics.
func (v *Verifier) dischargeContract(c *ast.Contract, goal ast.Expression, facts *factSet) {
	status, witness := v.discharge(goal, facts)
	c.Status = status
	c.Witness = witness

	if status == ast.StatusRefuted {
		v.Diagnostics.Add(errors.Diagnostic{
			Severity: errors.SeverityError,
			Kind:     errors.KindVerification,
			Pos:      c.Position,
			Message:  "contract refuted: " + c.Expr.String(),
			Contract: witness,
		})
	} else if status == ast.StatusUnproven && v.Level == LevelFull {
		v.Diagnostics.Add(errors.Diagnostic{
			Severity: errors.SeverityError,
			Kind:     errors.KindVerification,
			Pos:      c.Position,
			Message:  "contract could not be proven under verification level 'full': " + c.Expr.String(),
		})
	}
}

// dischargePrecondition treats a precondition as an assumption for the
// function's own body rather than a goal the body must prove from
// nothing: it is the call site's obligation to establish, so discharging
// it against an empty fact set and reporting the result unproven would be
// meaningless noise. A precondition that discharges to a genuine
// contradiction (e.g. `expect 1 > 2`) is still reported, since no call
// site could ever satisfy it.
func (v *Verifier) dischargePrecondition(c *ast.Contract, facts *factSet) {
	status, witness := v.discharge(c.Expr, facts)
	if status == ast.StatusRefuted {
		c.Status = status
		c.Witness = witness
		v.Diagnostics.Add(errors.Diagnostic{
			Severity: errors.SeverityError,
			Kind:     errors.KindVerification,
			Pos:      c.Position,
			Message:  "contract refuted: " + c.Expr.String(),
			Contract: witness,
		})
		return
	}
	c.Status = ast.StatusProven
}

// discharge decides proven/refuted/unknown for goal under facts, trying
// (in order) constant folding, the monotone-arithmetic/linear-rearrangement
// patterns, invariant-constructor branch reasoning, and finally the
// configured Oracle.
func (v *Verifier) discharge(goal ast.Expression, facts *factSet) (ast.VerificationStatus, string) {
	if b, ok := foldBool(goal, facts.equalTo); ok {
		if b {
			return ast.StatusProven, ""
		}
		return ast.StatusRefuted, "folds to false"
	}

	if v.linearDischarge(goal, facts) {
		return ast.StatusProven, ""
	}

	if v.branchDischarge(goal, facts) {
		return ast.StatusProven, ""
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if v.TimeoutMS > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(v.TimeoutMS)*time.Millisecond)
		defer cancel()
	}
	switch v.Oracle.Decide(ctx, facts.raw, goal) {
	case VerdictUnsat:
		return ast.StatusProven, ""
	case VerdictSat:
		return ast.StatusRefuted, "oracle found a counterexample"
	default:
		return ast.StatusUnproven, ""
	}
}

// linearDischarge tries to prove a comparison goal by rearranging it into
// a linear form and checking it is a nonnegative combination of
// known-nonnegative symbols.
func (v *Verifier) linearDischarge(goal ast.Expression, facts *factSet) bool {
	bin, ok := goal.(*ast.BinaryExpression)
	if !ok {
		return false
	}
	var negateRHS bool
	switch bin.Operator {
	case ">=", ">", "==":
		negateRHS = true
	default:
		return false
	}
	left, ok := linearize(bin.Left, facts.equalTo)
	if !ok {
		return false
	}
	right, ok := linearize(bin.Right, facts.equalTo)
	if !ok {
		return false
	}
	diff := newLinterm()
	diff.add(left, 1)
	if negateRHS {
		diff.add(right, -1)
	}
	if bin.Operator == "==" {
		return diff.isZero()
	}
	if bin.Operator == ">" {
		diff.const_-- // over Int, a > b holds iff a - b - 1 >= 0
	}
	return diff.isNonnegCombination(facts.nonneg)
}

// branchDischarge proves a goal true when it is textually identical to a
// fact already learned (a precondition, or an earlier invariant of the same
// type). The conditions of `when` branches are not collected as facts, so
// a goal implied only by a branch guard is not proven here.
func (v *Verifier) branchDischarge(goal ast.Expression, facts *factSet) bool {
	for _, f := range facts.raw {
		if exprEqual(f, goal) {
			return true
		}
	}
	return false
}

func exprEqual(a, b ast.Expression) bool {
	return a.String() == b.String()
}

// foldBool evaluates a Bool-typed expression to a concrete value if it is
// built entirely from literals, identifiers bound to constants, and
// comparison/logical/arithmetic operators.
func foldBool(e ast.Expression, equalTo map[string]int64) (bool, bool) {
	switch e := e.(type) {
	case *ast.BoolLiteral:
		return e.Value, true
	case *ast.ParenExpression:
		return foldBool(e.Inner, equalTo)
	case *ast.UnaryExpression:
		if e.Operator != "!" {
			return false, false
		}
		b, ok := foldBool(e.Operand, equalTo)
		return !b, ok
	case *ast.BinaryExpression:
		switch e.Operator {
		case "&&":
			l, ok := foldBool(e.Left, equalTo)
			if !ok {
				return false, false
			}
			r, ok := foldBool(e.Right, equalTo)
			if !ok {
				return false, false
			}
			return l && r, true
		case "||":
			l, ok := foldBool(e.Left, equalTo)
			if !ok {
				return false, false
			}
			r, ok := foldBool(e.Right, equalTo)
			if !ok {
				return false, false
			}
			return l || r, true
		case "==", "!=", "<", "<=", ">", ">=":
			lt, ok := linearize(e.Left, equalTo)
			if !ok {
				return false, false
			}
			rt, ok := linearize(e.Right, equalTo)
			if !ok {
				return false, false
			}
			if !lt.isConstant() || !rt.isConstant() {
				return false, false
			}
			l, r := lt.const_, rt.const_
			switch e.Operator {
			case "==":
				return l == r, true
			case "!=":
				return l != r, true
			case "<":
				return l < r, true
			case "<=":
				return l <= r, true
			case ">":
				return l > r, true
			case ">=":
				return l >= r, true
			}
		}
	}
	return false, false
}

func (t *linterm) isConstant() bool {
	for _, c := range t.coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}
