// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/value"
)

// compileAsync implements `async e` (spec §4.3, §4.5): raises the
// `create-task` effect with a thunk wrapping e; the scheduler owns turning
// that into a tracked child task (value.NewTask already threads the
// parent/child tree, so no separate registry is needed on the eval side).
func compileAsync(node ast.Node, c *compiler) Expr {
	body := Compile(node.Children[0], c)
	site := value.CallSite{File: c.file, NodeID: node.ID}
	return func(ctx *Context) value.Value {
		fn := &value.Function{Site: site, Call: func(value.Value) value.Value { return body(ctx) }}
		return effect.PerformMasked(value.SymCreateTask, fn, ctx.Env, ctx.Masks)
	}
}

// compileParallel implements `parallel e1, e2, ...` (spec §4.3, §5): each
// child raises its own create-task effect, in argument order, and the
// resulting task handles are collected into a list in that same order —
// the tasks themselves then run interleaved under the scheduler.
func compileParallel(node ast.Node, c *compiler) Expr {
	branches := make([]Expr, len(node.Children))
	for i, child := range node.Children {
		body := Compile(child, c)
		site := value.CallSite{File: c.file, NodeID: child.ID}
		branches[i] = func(ctx *Context) value.Value {
			fn := &value.Function{Site: site, Call: func(value.Value) value.Value { return body(ctx) }}
			return effect.PerformMasked(value.SymCreateTask, fn, ctx.Env, ctx.Masks)
		}
	}
	return func(ctx *Context) value.Value {
		return sequence(ctx, branches, func(vs []value.Value) value.Value {
			return value.NewList(vs...)
		})
	}
}

// compileSend implements `send` (spec §4.5): never suspends — if the
// channel already has a receiver queued, the value is handed directly;
// otherwise it is enqueued. Sending to a closed channel is a hard error
// raised on the spot, since the closed state is already known
// synchronously (unlike receive's closed-while-waiting case, which can
// only be discovered asynchronously and so travels back through the
// continuation as a result-shaped error value).
func compileSend(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	chanExpr := Compile(node.Children[0], c)
	valExpr := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		return sequence(ctx, []Expr{chanExpr, valExpr}, func(vs []value.Value) value.Value {
			ch, ok := vs[0].(*value.Channel)
			if !ok {
				raise(diag.New(diag.ErrInvalidChannelOp, c.file, pos, "`send` requires a channel"))
			}
			if !ch.Send(vs[1]) {
				raise(diag.New(diag.ErrChannelClosed, c.file, pos, "send on closed channel %q", ch.Name))
			}
			return vs[1]
		})
	}
}

// compileSendMaybe implements `send?`: the non-blocking form, reporting
// its outcome as a bare status symbol (spec §4.5).
func compileSendMaybe(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	chanExpr := Compile(node.Children[0], c)
	valExpr := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		return sequence(ctx, []Expr{chanExpr, valExpr}, func(vs []value.Value) value.Value {
			ch, ok := vs[0].(*value.Channel)
			if !ok {
				raise(diag.New(diag.ErrInvalidChannelOp, c.file, pos, "`send?` requires a channel"))
			}
			return ch.TrySend(vs[1])
		})
	}
}

// compileReceive implements `receive` (spec §4.5): suspends via the
// `receive-op` effect when no value is pending; the scheduler's handler
// resolves the continuation with the raw value on success, or a
// result-shaped error record if the channel closes while waiting.
func compileReceive(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	chanExpr := Compile(node.Children[0], c)
	return func(ctx *Context) value.Value {
		cv := chanExpr(ctx)
		return effect.FlatMap(cv, func(v value.Value) value.Value {
			if _, ok := v.(*value.Channel); !ok {
				raise(diag.New(diag.ErrInvalidChannelOp, c.file, pos, "`receive` requires a channel"))
			}
			return effect.PerformMasked(value.SymReceiveOp, v, ctx.Env, ctx.Masks)
		})
	}
}

// compileReceiveMaybe implements `receive?`: never suspends, reporting
// `ok value` / `none` / `closed` via value.NewStatus (spec §4.5).
func compileReceiveMaybe(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	chanExpr := Compile(node.Children[0], c)
	return func(ctx *Context) value.Value {
		cv := chanExpr(ctx)
		return effect.FlatMap(cv, func(v value.Value) value.Value {
			ch, ok := v.(*value.Channel)
			if !ok {
				raise(diag.New(diag.ErrInvalidChannelOp, c.file, pos, "`receive?` requires a channel"))
			}
			rv, tag := ch.TryReceive()
			if tag.Equal(value.SymOk) {
				return value.NewStatus(tag, rv)
			}
			return value.NewStatus(tag, nil)
		})
	}
}

// compileCodeLabel implements `code-label name: expr` (spec §4.3): mints a
// fresh symbol per evaluation and binds name to a record exposing
// `break`/`continue` callables that raise an effect tagged with that
// symbol; a handler installed around expr unwraps the payload and either
// ends expr with the break value or resumes with the continue value.
// Unlike compile_loop.go's native loops, which raise the ambient
// SymBreak/SymContinue with a bare payload, the tag here is fresh per label
// and the payload is a [marker, value] list (so a labelled break can name
// an outer loop past any unlabelled loops nested inside it).
func compileCodeLabel(node ast.Node, c *compiler) Expr {
	labelName := node.Data.Name
	nameSym := value.Intern(labelName)
	breakKey := value.Intern("break")
	continueKey := value.Intern("continue")
	body := Compile(node.Children[0], c)

	return func(ctx *Context) value.Value {
		fresh := value.FreshSymbol(labelName)
		labelEnv := ctx.Env.Fork()

		rec := value.NewRecord()
		rec.Set(breakKey, &value.Function{Call: func(v value.Value) value.Value {
			return effect.PerformMasked(fresh, value.NewList(value.SymBreak, v), ctx.Env, ctx.Masks)
		}})
		rec.Set(continueKey, &value.Function{Call: func(v value.Value) value.Value {
			return effect.PerformMasked(fresh, value.NewList(value.SymContinue, v), ctx.Env, ctx.Masks)
		}})
		_ = labelEnv.AddReadonly(nameSym, rec)
		labelCtx := ctx.fork(labelEnv)

		tbl := effect.NewTable().On(fresh, func(k *effect.Continuation, payload value.Value) value.Value {
			lst, ok := payload.(*value.List)
			if !ok || lst.Len() != 2 {
				return k.Resume(value.Nil)
			}
			marker, _ := lst.Get(0)
			v, _ := lst.Get(1)
			if ms, ok := marker.(value.Symbol); ok && ms.Equal(value.SymBreak) {
				return v
			}
			return k.Resume(v)
		})
		return effect.Handle(labelEnv, tbl, func() value.Value { return body(labelCtx) })
	}
}
