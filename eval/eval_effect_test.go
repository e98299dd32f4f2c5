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

func injectNode(handler, body ast.Node) ast.Node {
	return ast.Node{Type: ast.KindInject, Children: []ast.Node{handler, body}}
}

func maskNode(tags []ast.Node, body ast.Node) ast.Node {
	return ast.Node{Type: ast.KindMask, Children: append(append([]ast.Node{}, tags...), body)}
}

func withoutNode(tags []ast.Node, body ast.Node) ast.Node {
	return ast.Node{Type: ast.KindWithout, Children: append(append([]ast.Node{}, tags...), body)}
}

func handlerRecord(entries ...ast.Node) ast.Node { return ast.Node{Type: ast.KindTuple, Children: entries} }

func handlerEntry(tag string, fn ast.Node) ast.Node {
	return ast.Node{Type: ast.KindLabel, Children: []ast.Node{lit(value.Intern(tag)), fn}}
}

// twoArgHandler builds `fn k -> fn payload -> body`, the curried shape
// buildHandlerTable expects for every non-`return` entry.
func twoArgHandler(body ast.Node) ast.Node {
	return function(true, patName("k"), function(false, patName("payload"), body))
}

// TestInjectInterceptsAwaitBeforeScheduler shows that a custom `inject`
// handler for a builtin effect tag (`await`) runs instead of the
// scheduler's own handler for that tag, and that resuming the reified
// continuation with an arbitrary value (here the task handle itself,
// bypassing the usual ok/err wrapping) is what the rest of the program
// actually observes. The awaited task is a bare literal rather than one
// produced by `async`, so the only effect `inject`'s body ever raises is
// the one its own table handles.
func TestInjectInterceptsAwaitBeforeScheduler(t *testing.T) {
	task := value.NewTask(nil)
	node := injectNode(
		handlerRecord(handlerEntry("await", twoArgHandler(apply(name("k"), name("payload"))))),
		unop("await", lit(task)),
	)
	v := runExpr(t, node)
	got, isTask := v.(*value.Task)
	assert.True(t, isTask, "expected the handler's raw resume value (a task), got %T: %v", v, v)
	if isTask {
		assert.Same(t, task, got)
	}
}

// TestReturnKeyPostprocessesPlainResult confirms `inject`'s `return` entry
// runs over the body's eventual plain (non-effect) result.
func TestReturnKeyPostprocessesPlainResult(t *testing.T) {
	node := injectNode(
		handlerRecord(handlerEntry("return", function(true, patName("v"), binop("*", name("v"), lit(value.Number(2)))))),
		lit(value.Number(5)),
	)
	assert.Equal(t, value.Number(10), runExpr(t, node))
}

// TestMaskHidesEffectFromHandlerInside places an `inject` for `await`
// strictly *inside* a `mask ["await"]` block: the inner handler never
// fires because the raise is rewritten to `mask-effect` while the mask is
// active, so the program falls through to the ordinary scheduler-driven
// await and produces the normal `ok` result. The awaited task is settled
// up front so the scheduler's own await handler resolves it without
// needing a pending receiver.
func TestMaskHidesEffectFromHandlerInside(t *testing.T) {
	task := value.NewTask(nil)
	task.Complete(value.Number(7))
	wrongHandler := handlerRecord(handlerEntry("await", twoArgHandler(lit(value.String("WRONG")))))
	node := maskNode(
		[]ast.Node{lit(value.Intern("await"))},
		injectNode(wrongHandler, unop("await", lit(task))),
	)
	v := runExpr(t, node)
	rec, ok := v.(*value.Record)
	require.True(t, ok)
	tag, payload, isResult := value.ResultTag(rec)
	require.True(t, isResult)
	assert.True(t, tag.Equal(value.SymOk))
	assert.Equal(t, value.Number(7), payload)
}

// TestMaskUnwrapsForHandlerOutside places the same `inject` for `await`
// *outside* the mask: the effect, rewritten to `mask-effect` while
// propagating out through the masked body, is unwrapped back to its real
// `await` tag exactly as the mask block exits, so the outer handler does
// see and intercept it.
func TestMaskUnwrapsForHandlerOutside(t *testing.T) {
	task := value.NewTask(nil)
	handler := handlerRecord(handlerEntry("await", twoArgHandler(apply(name("k"), name("payload")))))
	node := injectNode(
		handler,
		maskNode([]ast.Node{lit(value.Intern("await"))}, unop("await", lit(task))),
	)
	v := runExpr(t, node)
	got, isTask := v.(*value.Task)
	assert.True(t, isTask, "expected the outer handler's raw resume value (a task), got %T: %v", v, v)
	if isTask {
		assert.Same(t, task, got)
	}
}

// TestWithoutFailsWhenListedEffectEscapes confirms `without` raises a hard
// diagnostic when a listed effect tag is left unhandled by its body.
func TestWithoutFailsWhenListedEffectEscapes(t *testing.T) {
	node := withoutNode([]ast.Node{lit(value.Intern("await"))}, unop("await", lit(value.NewTask(nil))))
	p := newProgramT(t, node)
	_, diags := p.RunScript()
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Primary.Message, "without")
}
