package emitter

import (
	"strconv"
	"strings"

	"github.com/vibelang/vbl/internal/ast"
)

// emitPattern lowers one given-expression case to a guarded block testing
// scrutVar against pat: a ConstructorPattern tests the scrutinee's tag and
// recursively destructures its payload, a LiteralPattern tests equality, an
// IdentifierPattern always matches and binds, and a WildcardPattern always
// matches without binding. onMatch receives the indent level at which the
// case body should be written once every guard in pat (including nested sub-
// patterns) has passed.
func (e *Emitter) emitPattern(sb *strings.Builder, indent, scrutVar string, pat ast.Pattern, onMatch func(indent string)) {
	switch pat := pat.(type) {
	case *ast.WildcardPattern:
		onMatch(indent)
	case *ast.IdentifierPattern:
		sb.WriteString(indent + pat.Name + " := " + scrutVar + "\n")
		onMatch(indent)
	case *ast.LiteralPattern:
		sb.WriteString(indent + "if " + scrutVar + " == " + e.emitExpr(pat.Value, nil) + " {\n")
		onMatch(indent + "\t")
		sb.WriteString(indent + "}\n")
	case *ast.ConstructorPattern:
		sb.WriteString(indent + "if " + scrutVar + ".tag == " + strconv.Quote(pat.Name) + " {\n")
		inner := indent + "\t"
		payload := e.variantPayload[pat.Name]
		e.emitSubPatterns(sb, inner, scrutVar, pat.SubPatterns, payload, 0, onMatch)
		sb.WriteString(indent + "}\n")
	default:
		e.internalError(pat.Pos(), "emitter cannot lower pattern %T", pat)
		onMatch(indent)
	}
}

// emitSubPatterns binds a ConstructorPattern's positional payload, one
// element at a time, nesting further guards as needed for sub-patterns that
// are themselves constructor or literal patterns.
func (e *Emitter) emitSubPatterns(sb *strings.Builder, indent, scrutVar string, subs []ast.Pattern, payload []ast.TypeExpr, i int, onMatch func(string)) {
	if i >= len(subs) {
		onMatch(indent)
		return
	}
	elemGoType := "any"
	if i < len(payload) {
		elemGoType = goType(payload[i])
	}
	elemVar := scrutVar + "_" + strconv.Itoa(e.nextTemp()) // payload element slot i of this match
	sb.WriteString(indent + elemVar + " := " + scrutVar + ".payload[" + strconv.Itoa(i) + "].(" + elemGoType + ")\n")
	e.emitPattern(sb, indent, elemVar, subs[i], func(next string) {
		e.emitSubPatterns(sb, next, scrutVar, subs, payload, i+1, onMatch)
	})
}
