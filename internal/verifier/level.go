package verifier

import (
	"fmt"

	"github.com/vibelang/vbl/internal/ast"
)

// Level is the verification strictness. Its names match the values of
// internal/config's `verification.level`; nothing in this module reads
// that config into a Level.
type Level int

const (
	// LevelNone skips discharge entirely: no proofs, no residual checks.
	LevelNone Level = iota
	// LevelRuntime discharges every contract but keeps every one of them
	// residual, proven or not.
	LevelRuntime
	// LevelHybrid (the default) discharges every contract, drops proven
	// ones, and leaves the rest residual.
	LevelHybrid
	// LevelFull discharges every contract and turns any non-proven one
	// into a compile-time error.
	LevelFull
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelRuntime:
		return "runtime"
	case LevelHybrid:
		return "hybrid"
	case LevelFull:
		return "full"
	default:
		return "unknown"
	}
}

// ResidualRequired reports whether the emitter should lower a contract at
// this status to a runtime assertion under the given level.
func ResidualRequired(level Level, status ast.VerificationStatus) bool {
	switch level {
	case LevelNone:
		return false
	case LevelRuntime:
		return true
	default: // hybrid, full
		return status != ast.StatusProven
	}
}

// ParseLevel parses one of the four level names from internal/config's
// YAML or the CLI's `--level` flag.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "none":
		return LevelNone, nil
	case "runtime":
		return LevelRuntime, nil
	case "hybrid", "":
		return LevelHybrid, nil
	case "full":
		return LevelFull, nil
	default:
		return LevelHybrid, fmt.Errorf("unknown verification level %q", s)
	}
}
