package ast

import "github.com/vibelang/vbl/internal/lexer"

// VerificationStatus records what internal/verifier decided about a
// Contract.
type VerificationStatus int

const (
	// StatusUnverified means the verifier has not yet run.
	StatusUnverified VerificationStatus = iota
	// StatusProven means the contract was discharged soundly; no runtime
	// check is emitted.
	StatusProven
	// StatusUnproven means the verifier could not decide; a residual
	// runtime check is planned.
	StatusUnproven
	// StatusRefuted means the verifier found a witness violating the
	// contract; this is always an error, independent of verification level.
	StatusRefuted
)

func (s VerificationStatus) String() string {
	switch s {
	case StatusProven:
		return "proven"
	case StatusUnproven:
		return "unproven"
	case StatusRefuted:
		return "refuted"
	default:
		return "unverified"
	}
}

// Contract is one precondition, postcondition, or invariant expression,
// carrying both its source text (for diagnostics and emitted assertion
// messages) and the verifier's annotation.
type Contract struct {
	Expr     Expression
	Status   VerificationStatus
	Witness  string // non-empty when Status == StatusRefuted
	Position lexer.Position
}

func (c *Contract) Pos() lexer.Position { return c.Position }
func (c *Contract) String() string      { return c.Expr.String() }
