// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/pattern"
	"code.hybscloud.com/ember/value"
)

// compileFunction implements `function` (spec §4.3): at call time it forks
// the definition-site environment, matches the argument against the
// parameter pattern, and evaluates the body under a `return` handler. An
// N-ary function is curried into nested one-arg functions except for the
// outermost, which binds `self`. Currying itself needs no special code
// here: the body of an outer curried layer is itself a nested KindFunction
// node, so evaluating it (at call time, once the outer parameter is
// bound) just builds another closure over the now-extended environment —
// exactly what closing over an enclosing scope already does.
func compileFunction(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	matcher := pattern.Compile(node.Children[0])
	bodyExpr := Compile(node.Children[1], c)
	isTop := node.Data.IsTopFunction
	site := value.CallSite{File: c.file, NodeID: node.ID, IsTop: isTop}

	return func(ctx *Context) value.Value {
		defEnv := ctx.Env
		if isTop {
			defEnv = defEnv.Fork()
		}
		fn := &value.Function{Site: site}
		fn.Call = func(arg value.Value) value.Value {
			callEnv := defEnv.Fork()
			callCtx := ctx.fork(callEnv)
			res, d := matchPattern(c, matcher, callEnv, arg)
			if d != nil {
				raise(d)
			}
			if !res.Matched {
				raise(diag.New(diag.ErrInvalidApplication, c.file, pos, "argument does not match the parameter pattern"))
			}
			if ad := res.Apply(callEnv); ad != nil {
				raise(ad)
			}
			return runFunctionBody(callCtx, bodyExpr)
		}
		if isTop {
			// A fresh fork never already has `self` bound, so the error
			// return from AddReadonly is unreachable here.
			_ = defEnv.AddReadonly(value.SymSelf, fn)
		}
		return fn
	}
}

// runFunctionBody installs the two handlers `try` depends on (spec §4.3):
// `return` abandons the rest of the body and yields its payload as the
// call's result; `fn-try` resumes with its payload, continuing evaluation
// past the point `try` was written.
func runFunctionBody(ctx *Context, body Expr) value.Value {
	tbl := effect.NewTable().
		On(value.SymReturn, func(k *effect.Continuation, payload value.Value) value.Value { return payload }).
		On(value.SymFnTry, func(k *effect.Continuation, payload value.Value) value.Value { return k.Resume(payload) })
	return effect.Handle(ctx.Env, tbl, func() value.Value { return body(ctx) })
}

// compileApplication implements `application` (spec §4.3): evaluate the
// callee, then the argument, then invoke.
func compileApplication(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	calleeExpr := Compile(node.Children[0], c)
	argExpr := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		return sequence(ctx, []Expr{calleeExpr, argExpr}, func(vs []value.Value) value.Value {
			fn, ok := vs[0].(*value.Function)
			if !ok {
				raise(diag.New(diag.ErrInvalidApplication, c.file, pos, "callee is not a function (got %s)", vs[0].Kind()))
			}
			return fn.Call(vs[1])
		})
	}
}

// compileTry implements `try e` (spec §4.3, §7): converts a result-typed
// value into an effect so that the nearest enclosing function's `return`/
// `fn-try` handlers (installed by runFunctionBody) decide what happens
// next. Any value that is not shaped like a result value is treated as
// `fn-try v`, per spec wording ("any other value becomes fn-try v").
func compileTry(node ast.Node, c *compiler) Expr {
	inner := Compile(node.Children[0], c)
	return func(ctx *Context) value.Value {
		v := inner(ctx)
		return effect.FlatMap(v, func(rv value.Value) value.Value {
			if rec, ok := rv.(*value.Record); ok {
				if tag, payload, isResult := value.ResultTag(rec); isResult {
					if tag.Equal(value.SymOk) {
						return effect.PerformMasked(value.SymFnTry, payload, ctx.Env, ctx.Masks)
					}
					return effect.PerformMasked(value.SymReturn, rv, ctx.Env, ctx.Masks)
				}
			}
			return effect.PerformMasked(value.SymFnTry, rv, ctx.Env, ctx.Masks)
		})
	}
}
