// Package errors formats VibeLang's compiler diagnostics with source
// context. Each pass appends to a single ordered list rather than
// returning early, and every diagnostic renders as "line:col: message"
// with an optional caret into the offending source line.
package errors

import (
	"fmt"
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityError diagnostics cause a non-zero CLI exit code.
	SeverityError Severity = iota
	// SeverityWarning diagnostics are informational only.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Kind is a coarse category drawn from taxonomy (Lexical, Syntactic,
// Semantic/type, Verification, Internal). It is informational; the CLI may
// use it to group output but every Diagnostic is otherwise self-contained.
type Kind string

const (
	KindLexical      Kind = "lexical"
	KindSyntactic    Kind = "syntactic"
	KindSemantic     Kind = "semantic"
	KindVerification Kind = "verification"
	KindInternal     Kind = "internal"
)

// Diagnostic is a single compiler message: its kind, severity, source
// position, human-readable message, and — for verification diagnostics —
// which contract failed or was unproven.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Pos      lexer.Position
	Contract string // non-empty only for Kind == KindVerification
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped like any other Go error.
func (d Diagnostic) Error() string { return d.Format(false) }

// Format renders "line:col: message" plus an optional contract suffix.
// It renders no source line and no caret.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d: %s", d.Pos.Line, d.Pos.Column, d.Message)
	if d.Contract != "" {
		fmt.Fprintf(&sb, " (contract: %s)", d.Contract)
	}
	return sb.String()
}

// FormatWithSource renders the diagnostic with a gutter-prefixed source
// line followed by a caret under the offending column.
func (d Diagnostic) FormatWithSource(source string, color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d: %s\n", d.Pos.Line, d.Pos.Column, d.Message)

	line := sourceLine(source, d.Pos.Line)
	if line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}
	if d.Contract != "" {
		fmt.Fprintf(&sb, "\ncontract: %s", d.Contract)
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Diagnostics is the shared ordered buffer every pass appends to.
type Diagnostics []Diagnostic

// Add appends one diagnostic, preserving arrival order. Passes are
// expected to visit the AST in source order so the buffer ends up sorted
// by position for free.
func (ds *Diagnostics) Add(d Diagnostic) {
	*ds = append(*ds, d)
}

// Errorf appends a SeverityError diagnostic built from a format string.
func (ds *Diagnostics) Errorf(kind Kind, pos lexer.Position, format string, args ...any) {
	ds.Add(Diagnostic{Severity: SeverityError, Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of SeverityError diagnostics.
func (ds Diagnostics) ErrorCount() int {
	n := 0
	for _, d := range ds {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Format renders every diagnostic, one per line, in the order collected.
func (ds Diagnostics) Format(color bool) string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Format(color)
	}
	return strings.Join(lines, "\n")
}

// FormatAll renders every diagnostic with source context, separated by a
// blank line.
func FormatAll(ds Diagnostics, source string, color bool) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.FormatWithSource(source, color)
	}
	return strings.Join(parts, "\n\n")
}
