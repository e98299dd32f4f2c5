// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval_test

import (
	"testing"

	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
)

func apply(callee, arg ast.Node) ast.Node {
	return ast.Node{Type: ast.KindApplication, Children: []ast.Node{callee, arg}}
}

func parens(children ...ast.Node) ast.Node {
	return ast.Node{Type: ast.KindParens, Children: children}
}

func TestLoopBreakReturnsValue(t *testing.T) {
	// loop { break(99) }
	node := ast.Node{Type: ast.KindLoop, Children: []ast.Node{
		block(apply(name("break"), lit(value.Number(99)))),
	}}
	assert.Equal(t, value.Number(99), runExpr(t, node))
}

func TestWhileLoopCountsDown(t *testing.T) {
	// mut n := 3
	// while n > 0 { n = n - 1 }
	// n
	node := block(
		declare(mutPat(patName("n")), lit(value.Number(3))),
		ast.Node{Type: ast.KindWhile, Children: []ast.Node{
			binop(">", name("n"), lit(value.Number(0))),
			assign(patName("n"), binop("-", name("n"), lit(value.Number(1)))),
		}},
		name("n"),
	)
	assert.Equal(t, value.Number(0), runExpr(t, node))
}

func TestForLoopCollectsBodyValues(t *testing.T) {
	// for x in [1, 2, 3] { x * 2 }
	listLit := ast.Node{Type: ast.KindTuple, Children: []ast.Node{
		lit(value.Number(1)), lit(value.Number(2)), lit(value.Number(3)),
	}}
	node := ast.Node{Type: ast.KindFor, Children: []ast.Node{
		patName("x"),
		listLit,
		binop("*", name("x"), lit(value.Number(2))),
	}}
	v := runExpr(t, node)
	lst, ok := v.(*value.List)
	if !ok {
		t.Fatalf("expected a list result, got %T", v)
	}
	got := make([]value.Value, lst.Len())
	for i := range got {
		got[i], _ = lst.Get(i)
	}
	assert.Equal(t, []value.Value{value.Number(2), value.Number(4), value.Number(6)}, got)
}

func TestLoopBreakStopsForLoopEarly(t *testing.T) {
	// for x in [1, 2, 3] { if x == 2 then break(x) else x }
	listLit := ast.Node{Type: ast.KindTuple, Children: []ast.Node{
		lit(value.Number(1)), lit(value.Number(2)), lit(value.Number(3)),
	}}
	body := ast.Node{Type: ast.KindIfElse, Children: []ast.Node{
		binop("==", name("x"), lit(value.Number(2))),
		apply(name("break"), name("x")),
		name("x"),
	}}
	node := ast.Node{Type: ast.KindFor, Children: []ast.Node{patName("x"), listLit, body}}
	assert.Equal(t, value.Number(2), runExpr(t, node))
}
