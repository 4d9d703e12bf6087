package semantic

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/types"
)

// DeclarationPass registers every type and function declaration's name
// and shape before any body is type-checked, so mutually- and
// self-referential declarations resolve against an interning table keyed
// by declared name. It runs first, ahead of type resolution and
// validation.
type DeclarationPass struct{}

func NewDeclarationPass() *DeclarationPass { return &DeclarationPass{} }

func (p *DeclarationPass) Name() string { return "declaration" }

func (p *DeclarationPass) Run(program *ast.Program, ctx *Context) error {
	// First sweep: intern every type name with a placeholder Info so that
	// recursive references (a sum variant whose payload names its own
	// declaration) resolve to something during the second sweep below.
	for _, decl := range program.Declarations {
		td, ok := decl.(*ast.TypeDecl)
		if !ok {
			continue
		}
		if _, exists := ctx.Types.Lookup(td.Name); exists {
			ctx.Diagnostics.Errorf(errors.KindSemantic, td.Position, "type %q is already declared", td.Name)
			continue
		}
		ctx.Types.Define(&types.Info{Name: td.Name, Params: td.Params})
	}

	// Second sweep: resolve each declaration's definition now that every
	// name is interned.
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.TypeDecl:
			p.resolveTypeDecl(ctx, d)
		case *ast.FunctionDecl:
			p.registerFunctionSignature(ctx, d)
		}
	}
	return nil
}

func (p *DeclarationPass) resolveTypeDecl(ctx *Context, d *ast.TypeDecl) {
	info, _ := ctx.Types.Lookup(d.Name)
	info.Kind = types.DefKind(d.DefKind)

	switch d.DefKind {
	case ast.AliasTypeDef:
		info.Alias = ResolveTypeExpr(ctx, d.Alias)
	case ast.SumTypeDef:
		seen := make(map[string]bool)
		for _, v := range d.Variants {
			if seen[v.Name] {
				ctx.Diagnostics.Errorf(errors.KindSemantic, v.Position, "duplicate constructor %q in type %q", v.Name, d.Name)
				continue
			}
			seen[v.Name] = true
			payload := make([]types.Type, len(v.Payload))
			for i, pt := range v.Payload {
				payload[i] = ResolveTypeExpr(ctx, pt)
			}
			info.Variants = append(info.Variants, types.Variant{Name: v.Name, Payload: payload})
		}
	case ast.RefinedTypeDef:
		info.Base = ResolveTypeExpr(ctx, d.Base)
	}
	for _, inv := range d.Invariants {
		info.Invariants = append(info.Invariants, inv.Expr)
	}
	ctx.Types.Define(info)
}

func (p *DeclarationPass) registerFunctionSignature(ctx *Context, d *ast.FunctionDecl) {
	if _, exists := ctx.Functions[d.Name]; exists {
		ctx.Diagnostics.Errorf(errors.KindSemantic, d.Position, "function %q is already declared", d.Name)
		return
	}
	paramTypes := make([]types.Type, len(d.Params))
	seen := make(map[string]bool)
	for i, param := range d.Params {
		if seen[param.Name] {
			ctx.Diagnostics.Errorf(errors.KindSemantic, param.Position, "duplicate parameter name %q in function %q", param.Name, d.Name)
		}
		seen[param.Name] = true
		paramTypes[i] = ResolveTypeExpr(ctx, param.Type)
	}
	retType := ResolveTypeExpr(ctx, d.ReturnType)
	d.ResolvedReturnType = retType
	fn := &types.Function{Params: paramTypes, Return: retType}
	ctx.Functions[d.Name] = fn
	ctx.Define(d.Name, fn)
}
