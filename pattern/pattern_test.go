// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pattern_test

import (
	"testing"

	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/pattern"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evaluator resolves every embedded expression node to its literal
// Data.Value, standing in for the real evaluator the pattern package does
// not depend on (pin-expressions, record-field defaults, index targets).
type evaluator struct{}

func (evaluator) Eval(node ast.Node, _ *env.Environment) (value.Value, *diag.Diagnostic) {
	return node.Data.Value, nil
}

func name(n string) ast.Node { return ast.Node{Type: pattern.KindPatName, Data: ast.Data{Name: n}} }
func lit(v value.Value) ast.Node {
	return ast.Node{Type: pattern.KindPatLiteral, Data: ast.Data{Value: v}}
}
func placeholder() ast.Node { return ast.Node{Type: pattern.KindPatPlaceholder} }
func spread(sub ...ast.Node) ast.Node {
	return ast.Node{Type: pattern.KindPatSpread, Children: sub}
}
func tuple(children ...ast.Node) ast.Node {
	return ast.Node{Type: pattern.KindPatTuple, Children: children}
}

func TestMatchNameBindsReadonly(t *testing.T) {
	m := pattern.Compile(name("x"))
	r, d := m(evaluator{}, env.New(), value.Number(7))
	require.Nil(t, d)
	require.True(t, r.Matched)
	require.Len(t, r.Readonly, 1)
	assert.Equal(t, "x", r.Readonly[0].Name.Name())
	assert.Equal(t, value.Number(7), r.Readonly[0].Val)
}

func TestMatchLiteral(t *testing.T) {
	m := pattern.Compile(lit(value.Number(1)))
	r, _ := m(evaluator{}, env.New(), value.Number(1))
	assert.True(t, r.Matched)

	r, _ = m(evaluator{}, env.New(), value.Number(2))
	assert.False(t, r.Matched)
}

func TestMatchTupleWithSpread(t *testing.T) {
	// (a, ...rest, z) against [1,2,3,4]
	m := pattern.Compile(tuple(name("a"), spread(name("rest")), name("z")))
	list := value.NewList(value.Number(1), value.Number(2), value.Number(3), value.Number(4))
	r, d := m(evaluator{}, env.New(), list)
	require.Nil(t, d)
	require.True(t, r.Matched)

	binding := func(n string) value.Value {
		for _, b := range r.Readonly {
			if b.Name.Name() == n {
				return b.Val
			}
		}
		t.Fatalf("no binding for %s", n)
		return nil
	}
	assert.Equal(t, value.Number(1), binding("a"))
	assert.Equal(t, value.Number(4), binding("z"))
	rest := binding("rest").(*value.List)
	assert.Equal(t, 2, rest.Len())
}

func TestMatchTupleWrongKindIsHardError(t *testing.T) {
	m := pattern.Compile(tuple(name("a")))
	r, d := m(evaluator{}, env.New(), value.Number(1))
	assert.False(t, r.Matched)
	require.NotNil(t, d)
}

func TestMatchRecordSpread(t *testing.T) {
	field := func(k string, sub ast.Node) ast.Node {
		return ast.Node{Type: pattern.KindPatField, Data: ast.Data{Name: k}, Children: []ast.Node{sub}}
	}
	rec := ast.Node{Type: pattern.KindPatRecord, Children: []ast.Node{
		field("a", name("a")),
		spread(name("rest")),
	}}
	m := pattern.Compile(rec)

	r := value.NewRecord()
	r.Set(value.Intern("a"), value.Number(1))
	r.Set(value.Intern("b"), value.Number(2))
	r.Set(value.Intern("c"), value.Number(3))

	res, d := m(evaluator{}, env.New(), r)
	require.Nil(t, d)
	require.True(t, res.Matched)

	var restVal value.Value
	for _, b := range res.Readonly {
		if b.Name.Name() == "rest" {
			restVal = b.Val
		}
	}
	restRec := restVal.(*value.Record)
	assert.Equal(t, 2, restRec.Len())
}

func TestMatchRecordLikeRelaxesMissingField(t *testing.T) {
	field := func(k string, sub ast.Node) ast.Node {
		return ast.Node{Type: pattern.KindPatField, Data: ast.Data{Name: k}, Children: []ast.Node{sub}}
	}
	inner := ast.Node{Type: pattern.KindPatRecord, Children: []ast.Node{
		field("missing", name("m")),
	}}
	likeNode := ast.Node{Type: pattern.KindPatLike, Children: []ast.Node{inner}}
	m := pattern.Compile(likeNode)

	r := value.NewRecord()
	res, d := m(evaluator{}, env.New(), r)
	require.Nil(t, d)
	assert.True(t, res.Matched)
}

func TestMatchRecordStrictFailsOnMissingField(t *testing.T) {
	field := func(k string, sub ast.Node) ast.Node {
		return ast.Node{Type: pattern.KindPatField, Data: ast.Data{Name: k}, Children: []ast.Node{sub}}
	}
	rec := ast.Node{Type: pattern.KindPatRecord, Children: []ast.Node{
		field("missing", name("m")),
	}}
	m := pattern.Compile(rec)
	res, d := m(evaluator{}, env.New(), value.NewRecord())
	require.Nil(t, d)
	assert.False(t, res.Matched)
}

func TestMatchNotSwapsEnvs(t *testing.T) {
	notNode := ast.Node{Type: pattern.KindPatNot, Children: []ast.Node{name("x")}}
	m := pattern.Compile(notNode)
	r, _ := m(evaluator{}, env.New(), value.Number(1))
	assert.False(t, r.Matched)
	assert.Len(t, r.NotEnvs, 1)
}

func TestMatchBindCombinesEnvs(t *testing.T) {
	bindNode := ast.Node{Type: pattern.KindPatBind, Children: []ast.Node{name("whole"), placeholder()}}
	m := pattern.Compile(bindNode)
	r, d := m(evaluator{}, env.New(), value.Number(5))
	require.Nil(t, d)
	require.True(t, r.Matched)
	require.Len(t, r.Readonly, 1)
}

func TestApplyAssignMutatesListInPlace(t *testing.T) {
	l := value.NewList(value.Number(1), value.Number(2))
	idxNode := ast.Node{Type: pattern.KindPatIndex, Children: []ast.Node{
		{Type: ast.KindLiteral, Data: ast.Data{Value: l}},
		{Type: ast.KindLiteral, Data: ast.Data{Value: value.Number(0)}},
	}}
	m := pattern.Compile(idxNode)
	r, d := m(evaluator{}, env.New(), value.Number(99))
	require.Nil(t, d)
	require.True(t, r.Matched)

	d2 := r.ApplyAssign(env.New())
	require.Nil(t, d2)
	v, _ := l.Get(0)
	assert.Equal(t, value.Number(99), v)
}
