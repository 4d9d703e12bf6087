package emitter

import (
	"strings"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/types"
)

// goType lowers a source type expression to its target spelling. Operators
// and primitives lower to the target's native forms.
func goType(t ast.TypeExpr) string {
	switch t := t.(type) {
	case *ast.PrimitiveType:
		switch t.Name {
		case "Int":
			return "int64"
		case "Float":
			return "float64"
		case "Bool":
			return "bool"
		case "String":
			return "string"
		case "Byte":
			return "byte"
		case "Unit":
			return "Unit"
		default:
			return t.Name
		}
	case *ast.ArrayType:
		return "[]" + goType(t.Element)
	case *ast.ResultType:
		return "Result[" + goType(t.Ok) + ", " + goType(t.Err) + "]"
	case *ast.FunctionType:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = goType(p)
		}
		return "func(" + strings.Join(parts, ", ") + ") " + goType(t.Return)
	case *ast.NamedType:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = goType(a)
		}
		return t.Name + "[" + strings.Join(parts, ", ") + "]"
	default:
		return "any"
	}
}

// goTypeFromResolved lowers a checker-resolved types.Type to its target
// spelling, used where only the resolved annotation is available (array
// literal element types, a `when`/`given` expression's own result type).
func goTypeFromResolved(t types.Type) string {
	switch t := t.(type) {
	case nil:
		return "any"
	case *types.Primitive:
		switch t.Kind {
		case "Int":
			return "int64"
		case "Float":
			return "float64"
		case "Bool":
			return "bool"
		case "String":
			return "string"
		case "Byte":
			return "byte"
		default:
			return "Unit"
		}
	case *types.Array:
		return "[]" + goTypeFromResolved(t.Element)
	case *types.Result:
		return "Result[" + goTypeFromResolved(t.Ok) + ", " + goTypeFromResolved(t.Err) + "]"
	case *types.Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = goTypeFromResolved(p)
		}
		return "func(" + strings.Join(parts, ", ") + ") " + goTypeFromResolved(t.Return)
	case *types.Named:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = goTypeFromResolved(a)
		}
		return t.Name + "[" + strings.Join(parts, ", ") + "]"
	case *types.TypeParam:
		return t.Name
	default: // *types.Unresolved or unrecognized
		return "any"
	}
}
