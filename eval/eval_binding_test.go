// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval_test

import (
	"testing"

	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/modiface/modtest"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declare(pat, val ast.Node) ast.Node {
	return ast.Node{Type: ast.KindDeclare, Children: []ast.Node{pat, val}}
}

func assign(pat, val ast.Node) ast.Node {
	return ast.Node{Type: ast.KindAssign, Children: []ast.Node{pat, val}}
}

func compoundAssign(pat, val ast.Node) ast.Node {
	return ast.Node{Type: ast.KindCompoundAssign, Data: ast.Data{Name: "+="}, Children: []ast.Node{pat, val}}
}

func export(pat, val ast.Node) ast.Node {
	return ast.Node{Type: ast.KindExport, Children: []ast.Node{pat, val}}
}

func mutPat(sub ast.Node) ast.Node {
	return ast.Node{Type: ast.KindPatMutable, Children: []ast.Node{sub}}
}

func TestDeclareThenReadBack(t *testing.T) {
	node := block(
		declare(patName("x"), lit(value.Number(10))),
		name("x"),
	)
	assert.Equal(t, value.Number(10), runExpr(t, node))
}

func TestAssignToMutableBinding(t *testing.T) {
	node := block(
		declare(mutPat(patName("x")), lit(value.Number(1))),
		assign(patName("x"), lit(value.Number(2))),
		name("x"),
	)
	assert.Equal(t, value.Number(2), runExpr(t, node))
}

func TestCompoundAssignAddsInPlace(t *testing.T) {
	node := block(
		declare(mutPat(patName("x")), lit(value.Number(3))),
		compoundAssign(patName("x"), lit(value.Number(4))),
		name("x"),
	)
	assert.Equal(t, value.Number(7), runExpr(t, node))
}

func TestExportPopulatesModuleRecord(t *testing.T) {
	node := block(
		export(patName("answer"), lit(value.Number(42))),
	)
	p := newProgramT(t, node)
	v, diags := p.RunModule(modtest.Loader{})
	require.Empty(t, diags)
	rec, ok := v.(*value.Record)
	require.True(t, ok)
	got, found := rec.Get(value.String("answer"))
	require.True(t, found)
	assert.Equal(t, value.Number(42), got)
}
