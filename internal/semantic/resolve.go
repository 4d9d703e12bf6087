package semantic

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/types"
)

// ResolveTypeExpr resolves a syntactic internal/ast.TypeExpr to its
// internal/types.Type. Unresolvable names produce a types.Unresolved rather
// than a nil, so callers can keep typing the rest of the tree.
func ResolveTypeExpr(ctx *Context, t ast.TypeExpr) types.Type {
	switch t := t.(type) {
	case *ast.PrimitiveType:
		return resolvePrimitive(t.Name)
	case *ast.ArrayType:
		return &types.Array{Element: ResolveTypeExpr(ctx, t.Element)}
	case *ast.ResultType:
		return &types.Result{Ok: ResolveTypeExpr(ctx, t.Ok), Err: ResolveTypeExpr(ctx, t.Err)}
	case *ast.FunctionType:
		params := make([]types.Type, len(t.Params))
		for i, pt := range t.Params {
			params[i] = ResolveTypeExpr(ctx, pt)
		}
		return &types.Function{Params: params, Return: ResolveTypeExpr(ctx, t.Return)}
	case *ast.NamedType:
		if prim := resolvePrimitive(t.Name); prim != nil {
			return prim
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = ResolveTypeExpr(ctx, a)
		}
		if _, ok := ctx.Types.Lookup(t.Name); !ok {
			ctx.Diagnostics.Errorf(errors.KindSemantic, t.Position, "unknown type %q", t.Name)
			return &types.Unresolved{}
		}
		return &types.Named{Name: t.Name, Args: args}
	default:
		return &types.Unresolved{}
	}
}

func resolvePrimitive(name string) types.Type {
	switch name {
	case "Int":
		return types.Int
	case "Float":
		return types.Float
	case "Bool":
		return types.Bool
	case "String":
		return types.String
	case "Byte":
		return types.Byte
	case "Unit":
		return types.Unit
	default:
		return nil
	}
}

// UnderlyingType reduces a Named type through one level of alias, per
// ; refined types reduce to their Base, and sum types are returned as-is
// since they have no further structural reduction.
func UnderlyingType(ctx *Context, t types.Type) types.Type {
	named, ok := t.(*types.Named)
	if !ok {
		return t
	}
	info, ok := ctx.Types.Lookup(named.Name)
	if !ok {
		return t
	}
	switch info.Kind {
	case types.AliasDef:
		return info.Alias
	case types.RefinedDef:
		return info.Base
	default:
		return t
	}
}
