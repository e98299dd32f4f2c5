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

var returnKey = value.Intern("return")

// compileInject implements `inject record do body` (spec §4.4): each
// non-`return` field of record is a two-argument curried handler function
// `fn (k, payload) -> ...`; `return`, if present, post-processes body's
// eventual plain result. The continuation passed to a handler is wrapped
// as a callable *value.Function so it can be used as an ordinary value —
// including being passed straight to `.map`, as in the `amb` handler
// (spec §8's worked example).
func compileInject(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	handlerExpr := Compile(node.Children[0], c)
	body := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		hv := handlerExpr(ctx)
		return effect.FlatMap(hv, func(hrv value.Value) value.Value {
			rec, ok := hrv.(*value.Record)
			if !ok {
				raise(diag.New(diag.ErrRuntime, c.file, pos, "`inject` requires a record of effect handlers"))
			}
			tbl := buildHandlerTable(c, pos, rec)
			return effect.Handle(ctx.Env, tbl, func() value.Value { return body(ctx) })
		})
	}
}

func buildHandlerTable(c *compiler, pos diag.Pos, rec *value.Record) *effect.Table {
	tbl := effect.NewTable()
	rec.Range(func(key, v value.Value) bool {
		sym, ok := toSymbolKey(key)
		if !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "handler record keys must be symbols or strings"))
		}
		fn, ok := v.(*value.Function)
		if !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "handler for %q must be a function", sym.Name()))
		}
		if sym.Equal(returnKey) {
			tbl.Return = func(rv value.Value) value.Value { return fn.Call(rv) }
			return true
		}
		// Earmark the record's plain function as an effect interceptor
		// (spec's handler value kind): the record literal that built rec
		// has no way to know one of its fields is destined for `inject`,
		// so buildHandlerTable is where that earmarking actually happens.
		h := &value.Handler{Tag: sym, Fn: fn}
		tbl.On(h.Tag, func(k *effect.Continuation, payload value.Value) value.Value {
			contFn := &value.Function{Call: func(v value.Value) value.Value { return k.Resume(v) }}
			step := h.Fn.Call(contFn)
			inner, ok := step.(*value.Function)
			if !ok {
				raise(diag.New(diag.ErrRuntime, c.file, pos, "handler for %q must take (k, payload)", h.Tag.Name()))
			}
			return inner.Call(payload)
		})
		return true
	})
	return tbl
}

// compileMaskOrWithout implements `mask`/`without` (spec §4.4): both
// evaluate their tag list, then run body. `mask` pushes the tags onto the
// mask stack so any raise from inside body carries a wrapped tag the next
// handler can't see directly, and peels that wrapping back off on exit
// for any listed tag in the result. `without` asserts none of the listed
// tags appear (unwrapped) in body's result, failing loudly if one does.
func compileMaskOrWithout(node ast.Node, c *compiler, isMask bool) Expr {
	pos := c.posOf(node.ID)
	n := len(node.Children)
	tagExprs := compileChildren(node.Children[:n-1], c)
	body := Compile(node.Children[n-1], c)
	return func(ctx *Context) value.Value {
		return sequence(ctx, tagExprs, func(vs []value.Value) value.Value {
			tags := make([]value.Symbol, len(vs))
			for i, v := range vs {
				sym, ok := toSymbolKey(v)
				if !ok {
					raise(diag.New(diag.ErrRuntime, c.file, pos, "mask/without tag must be a symbol or string"))
				}
				tags[i] = sym
			}
			if isMask {
				ctx.Masks.Push(tags)
				result := body(ctx)
				ctx.Masks.Pop()
				return effect.Unmask(result, tags)
			}
			result := body(ctx)
			if tag, escapes := effect.Escapes(result, tags); escapes {
				raise(diag.New(diag.ErrRuntime, c.file, pos, "effect %q escaped a `without` guard", tag.Name()))
			}
			return result
		})
	}
}
