package verifier

import (
	"context"

	"github.com/vibelang/vbl/internal/ast"
)

// Verdict is an Oracle's answer about whether facts ∧ ¬goal is
// satisfiable, given a conjunction of facts plus a goal — sat, unsat, or
// unknown.
type Verdict int

const (
	// VerdictUnknown means the oracle could not decide; the contract is
	// left unproven and a residual check is planned.
	VerdictUnknown Verdict = iota
	// VerdictUnsat means facts ∧ ¬goal is unsatisfiable, i.e. goal is
	// proven.
	VerdictUnsat
	// VerdictSat means a counterexample exists; goal is refuted.
	VerdictSat
)

// Oracle decides satisfiability of a fact conjunction against a goal.
// Implementations may route nontrivial goals to an external solver; the
// in-process default below answers Unknown for everything, so verification
// completes deterministically and without network I/O by default. Kept as
// an interface so a real SMT backend can be substituted without touching
// the verifier that calls it.
type Oracle interface {
	Decide(ctx context.Context, facts []ast.Expression, goal ast.Expression) Verdict
}

// DefaultOracle never consults an external solver; it is the Oracle used
// when no other is configured.
type DefaultOracle struct{}

// Decide always returns VerdictUnknown; the symbolic discharge patterns in
// Verifier.discharge run first and only fall through to the Oracle for
// goals those patterns cannot settle.
func (DefaultOracle) Decide(ctx context.Context, facts []ast.Expression, goal ast.Expression) Verdict {
	select {
	case <-ctx.Done():
	default:
	}
	return VerdictUnknown
}
