package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibelang/vbl/internal/types"
)

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, types.Int.Equals(types.Int))
	assert.False(t, types.Int.Equals(types.Float))
	assert.False(t, types.Int.Equals(&types.Array{Element: types.Int}))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, types.IsNumeric(types.Int))
	assert.True(t, types.IsNumeric(types.Float))
	assert.False(t, types.IsNumeric(types.Bool))
	assert.False(t, types.IsNumeric(types.String))
}

func TestArrayEquality(t *testing.T) {
	a := &types.Array{Element: types.Int}
	b := &types.Array{Element: types.Int}
	c := &types.Array{Element: types.Float}
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, "[Int]", a.String())
}

func TestResultEqualityAndString(t *testing.T) {
	r1 := &types.Result{Ok: types.Int, Err: types.String}
	r2 := &types.Result{Ok: types.Int, Err: types.String}
	r3 := &types.Result{Ok: types.Int, Err: types.Bool}
	assert.True(t, r1.Equals(r2))
	assert.False(t, r1.Equals(r3))
	assert.Equal(t, "Result[Int, String]", r1.String())
}

func TestFunctionEquality(t *testing.T) {
	f1 := &types.Function{Params: []types.Type{types.Int, types.Bool}, Return: types.Int}
	f2 := &types.Function{Params: []types.Type{types.Int, types.Bool}, Return: types.Int}
	f3 := &types.Function{Params: []types.Type{types.Int}, Return: types.Int}
	assert.True(t, f1.Equals(f2))
	assert.False(t, f1.Equals(f3))
	assert.Equal(t, "(Int, Bool) -> Int", f1.String())
}

func TestNamedTypeWithArgs(t *testing.T) {
	n1 := &types.Named{Name: "Box", Args: []types.Type{types.Int}}
	n2 := &types.Named{Name: "Box", Args: []types.Type{types.Int}}
	n3 := &types.Named{Name: "Box", Args: []types.Type{types.Float}}
	assert.True(t, n1.Equals(n2))
	assert.False(t, n1.Equals(n3))
	assert.Equal(t, "Box[Int]", n1.String())
}

func TestUnresolvedNeverEquals(t *testing.T) {
	u := &types.Unresolved{}
	assert.False(t, u.Equals(u))
	assert.False(t, u.Equals(types.Int))
}

func TestRegistryDefineAndLookup(t *testing.T) {
	reg := types.NewRegistry()
	_, ok := reg.Lookup("Shape")
	assert.False(t, ok)

	reg.Define(&types.Info{Name: "Shape", Kind: types.SumDef, Variants: []types.Variant{
		{Name: "Circle", Payload: []types.Type{types.Float}},
	}})

	info, ok := reg.Lookup("Shape")
	assert.True(t, ok)
	assert.Equal(t, types.SumDef, info.Kind)
	assert.Equal(t, "Circle", info.Variants[0].Name)
	assert.Contains(t, reg.Names(), "Shape")
}

func TestRegistryDefineOverwrites(t *testing.T) {
	reg := types.NewRegistry()
	reg.Define(&types.Info{Name: "Age", Kind: types.AliasDef, Alias: types.Int})
	reg.Define(&types.Info{Name: "Age", Kind: types.AliasDef, Alias: types.Float})

	info, _ := reg.Lookup("Age")
	assert.True(t, info.Alias.Equals(types.Float))
}
