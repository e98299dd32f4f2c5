// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval_test

import (
	"testing"

	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchCase(pat, body ast.Node) ast.Node {
	return ast.Node{Type: ast.KindMatchCase, Children: []ast.Node{pat, body}}
}

func TestMatchFirstArmWins(t *testing.T) {
	node := ast.Node{Type: ast.KindMatch, Children: []ast.Node{
		lit(value.Number(2)),
		matchCase(litPat(value.Number(1)), lit(value.String("one"))),
		matchCase(litPat(value.Number(2)), lit(value.String("two"))),
		matchCase(patName("_any"), lit(value.String("other"))),
	}}
	v := runExpr(t, node)
	assert.Equal(t, value.String("two"), v)
}

func TestMatchNoArmIsHardError(t *testing.T) {
	node := ast.Node{Type: ast.KindMatch, Children: []ast.Node{
		lit(value.Number(9)),
		matchCase(litPat(value.Number(1)), lit(value.String("one"))),
	}}
	p := newProgramT(t, node)
	_, diags := p.RunScript()
	require.NotEmpty(t, diags)
}

func TestIfElseWithPlainBoolean(t *testing.T) {
	node := ast.Node{Type: ast.KindIfElse, Children: []ast.Node{
		lit(value.False),
		lit(value.Number(1)),
		lit(value.Number(2)),
	}}
	assert.Equal(t, value.Number(2), runExpr(t, node))
}

func TestIfWithIsConditionBindsIntoThenBranch(t *testing.T) {
	isNode := ast.Node{Type: ast.KindIs, Children: []ast.Node{lit(value.Number(5)), patName("bound")}}
	node := ast.Node{Type: ast.KindIfElse, Children: []ast.Node{
		isNode,
		name("bound"),
		lit(value.Number(-1)),
	}}
	assert.Equal(t, value.Number(5), runExpr(t, node))
}

func TestStandaloneIsReportsMatch(t *testing.T) {
	node := ast.Node{Type: ast.KindIs, Children: []ast.Node{lit(value.Number(1)), litPat(value.Number(1))}}
	assert.Equal(t, value.True, runExpr(t, node))

	node2 := ast.Node{Type: ast.KindIs, Children: []ast.Node{lit(value.Number(1)), litPat(value.Number(2))}}
	assert.Equal(t, value.False, runExpr(t, node2))
}
