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

// compileBlock implements `block` (spec §4.3): a fresh lexical scope with
// break/continue handlers installed around the statement sequence. `break
// v` ends the block with value v; `continue` re-enters the block body,
// starting a new iteration in a fresh child scope — `loop`'s desugaring
// (`block { body; continue() }`) is exactly a block whose last statement
// always raises continue, making the block repeat forever until something
// breaks it.
func compileBlock(node ast.Node, c *compiler) Expr {
	stmts := compileChildren(node.Children, c)
	return func(ctx *Context) value.Value {
		return runBlock(ctx, stmts)
	}
}

// runBlock drives one block iteration and, via effect.FlatMap, queues its
// own continuation as a proper Step rather than relying on a Go-level
// loop to see the iteration's outcome — the iteration's result may only
// become known long after this call returns, once a suspended task
// resumes, so "what happens next" has to be data the continuation
// machinery can replay, not a `for` loop holding the decision on the Go
// stack (same shape as compileFor's runFor below).
func runBlock(ctx *Context, stmts []Expr) value.Value {
	iterCtx := forkIterContext(ctx)
	result := runGuarded(iterCtx, func() value.Value { return runStmts(iterCtx, stmts) })
	return effect.FlatMap(result, func(v value.Value) value.Value {
		if sig, ok := asControl(v); ok {
			if sig.kind == controlBreak {
				return sig.payload
			}
			return runBlock(ctx, stmts)
		}
		return v
	})
}

func runStmts(ctx *Context, stmts []Expr) value.Value {
	if len(stmts) == 0 {
		return value.Nil
	}
	return runStmtsFrom(ctx, stmts, 0)
}

func runStmtsFrom(ctx *Context, stmts []Expr, i int) value.Value {
	v := stmts[i](ctx)
	if i == len(stmts)-1 {
		return v
	}
	return effect.FlatMap(v, func(value.Value) value.Value { return runStmtsFrom(ctx, stmts, i+1) })
}

// compileLoop implements `loop` directly (spec §4.3's `block { body;
// continue() }` desugaring), without literally constructing the
// desugared AST: each iteration runs body in a fresh child scope guarded
// by break/continue handlers; normal completion (no explicit break) always
// starts the next iteration, matching the unconditional trailing
// `continue()` the desugaring describes.
func compileLoop(node ast.Node, c *compiler) Expr {
	body := Compile(node.Children[0], c)
	return func(ctx *Context) value.Value {
		return runLoop(ctx, body)
	}
}

// runLoop is compileLoop's recursive driver, shaped like runBlock/runFor:
// the decision of whether to run another iteration is queued through
// effect.FlatMap rather than held on the Go call stack, so it survives a
// suspension inside body.
func runLoop(ctx *Context, body Expr) value.Value {
	iterCtx := forkIterContext(ctx)
	result := runGuarded(iterCtx, func() value.Value { return body(iterCtx) })
	return effect.FlatMap(result, func(v value.Value) value.Value {
		if sig, ok := asControl(v); ok {
			if sig.kind == controlBreak {
				return sig.payload
			}
			return runLoop(ctx, body)
		}
		// Normal completion: next iteration.
		return runLoop(ctx, body)
	})
}

// compileWhile implements `while c b` (spec §4.3: `loop { if c then b else
// break() }`).
func compileWhile(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	cond := Compile(node.Children[0], c)
	body := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		return runWhile(ctx, c, pos, cond, body)
	}
}

// runWhile is compileWhile's recursive driver (see runBlock's comment):
// both "condition is false" and "body ran, start the next iteration" are
// queued as continuation steps via effect.FlatMap, so a suspension
// anywhere in cond or body — and a break/continue raised after it resumes
// — still reaches the right decision point instead of a Go `for` loop
// whose stack frame is long gone by the time the resume happens.
func runWhile(ctx *Context, c *compiler, pos diag.Pos, cond, body Expr) value.Value {
	iterCtx := forkIterContext(ctx)
	cv := cond(iterCtx)
	return effect.FlatMap(cv, func(v value.Value) value.Value {
		if !mustBool(c, pos, v) {
			return value.Nil
		}
		result := runGuarded(iterCtx, func() value.Value { return body(iterCtx) })
		return effect.FlatMap(result, func(rv value.Value) value.Value {
			if sig, ok := asControl(rv); ok {
				if sig.kind == controlBreak {
					return sig.payload
				}
				return runWhile(ctx, c, pos, cond, body)
			}
			return runWhile(ctx, c, pos, cond, body)
		})
	})
}

// compileFor implements `for p in e b` (spec §4.3's desugaring to a while
// loop over iter/acc). iterExpr is evaluated once; each element is
// destructured against the pattern, the body runs under local
// break/continue handlers, and its result is appended to the
// accumulator — `if b is v do acc = (...acc, v)` always matches against a
// bare name pattern, so in effect every iteration's body value is
// collected.
func compileFor(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	matcher := pattern.Compile(node.Children[0])
	iterExpr := Compile(node.Children[1], c)
	body := Compile(node.Children[2], c)
	return func(ctx *Context) value.Value {
		iv := iterExpr(ctx)
		return effect.FlatMap(iv, func(rv value.Value) value.Value {
			lst, ok := rv.(*value.List)
			if !ok {
				raise(diag.New(diag.ErrRuntime, c.file, pos, "`for` requires a list to iterate"))
			}
			return runFor(ctx, c, pos, matcher, body, lst, value.NewList())
		})
	}
}

func runFor(ctx *Context, c *compiler, pos diag.Pos, matcher pattern.Matcher, body Expr, cur *value.List, acc *value.List) value.Value {
	if cur.Len() == 0 {
		return acc
	}
	head, _ := cur.Get(0)
	rest := cur.Tail()
	iterCtx := forkIterContext(ctx)
	elemEnv := iterCtx.Env.Fork()
	elemCtx := iterCtx.fork(elemEnv)
	res, d := matchPattern(c, matcher, elemEnv, head)
	if d != nil {
		raise(d)
	}
	if !res.Matched {
		raise(diag.New(diag.ErrInvalidPattern, c.file, pos, "for-loop element does not match its pattern"))
	}
	if ad := res.Apply(elemEnv); ad != nil {
		raise(ad)
	}
	bv := runGuarded(elemCtx, func() value.Value { return body(elemCtx) })
	return effect.FlatMap(bv, func(v value.Value) value.Value {
		if sig, ok := asControl(v); ok {
			if sig.kind == controlBreak {
				return sig.payload
			}
			return runFor(ctx, c, pos, matcher, body, rest, acc)
		}
		return runFor(ctx, c, pos, matcher, body, rest, acc.Append(v))
	})
}
