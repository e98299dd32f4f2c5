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

type matchCase struct {
	matcher pattern.Matcher
	body    Expr
}

// compileMatch implements `match` (spec §4.3): the first case whose
// pattern matches the subject runs with its bindings in scope; a pattern
// that cannot possibly match the subject's shape is a hard structural
// error (spec §4.2's failure policy), not a silent "try next arm".
func compileMatch(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	subjectExpr := Compile(node.Children[0], c)
	cases := make([]matchCase, len(node.Children)-1)
	for i, cn := range node.Children[1:] {
		cases[i] = matchCase{matcher: pattern.Compile(cn.Children[0]), body: Compile(cn.Children[1], c)}
	}
	return func(ctx *Context) value.Value {
		sv := subjectExpr(ctx)
		return effect.FlatMap(sv, func(v value.Value) value.Value {
			return runMatchCases(ctx, c, pos, cases, 0, v)
		})
	}
}

func runMatchCases(ctx *Context, c *compiler, pos diag.Pos, cases []matchCase, i int, v value.Value) value.Value {
	if i == len(cases) {
		raise(diag.New(diag.ErrRuntime, c.file, pos, "no match arm matched the subject"))
	}
	cs := cases[i]
	caseEnv := ctx.Env.Fork()
	res, d := matchPattern(c, cs.matcher, caseEnv, v)
	if d != nil {
		raise(d)
	}
	if !res.Matched {
		return runMatchCases(ctx, c, pos, cases, i+1, v)
	}
	if ad := res.Apply(caseEnv); ad != nil {
		raise(ad)
	}
	return cs.body(ctx.fork(caseEnv))
}

// compileIf implements `if`/`if-else` (spec §4.3): an `is` condition binds
// its matched names into the true branch and its notEnvs into the false
// branch; a plain boolean condition requires the condition value to be a
// Bool.
func compileIf(node ast.Node, c *compiler, hasElse bool) Expr {
	pos := c.posOf(node.ID)
	condNode := node.Children[0]
	thenExpr := Compile(node.Children[1], c)
	var elseExpr Expr
	if hasElse {
		elseExpr = Compile(node.Children[2], c)
	}

	if condNode.Type == ast.KindIs {
		subjectExpr := Compile(condNode.Children[0], c)
		matcher := pattern.Compile(condNode.Children[1])
		return func(ctx *Context) value.Value {
			sv := subjectExpr(ctx)
			return effect.FlatMap(sv, func(v value.Value) value.Value {
				branchEnv := ctx.Env.Fork()
				res, d := matchPattern(c, matcher, branchEnv, v)
				if d != nil {
					raise(d)
				}
				if res.Matched {
					if ad := res.Apply(branchEnv); ad != nil {
						raise(ad)
					}
					return thenExpr(ctx.fork(branchEnv))
				}
				notEnv := ctx.Env.Fork()
				for _, b := range res.NotEnvs {
					_ = notEnv.AddReadonly(b.Name, b.Val)
				}
				if hasElse {
					return elseExpr(ctx.fork(notEnv))
				}
				return value.Nil
			})
		}
	}

	condExpr := Compile(condNode, c)
	return func(ctx *Context) value.Value {
		cv := condExpr(ctx)
		return effect.FlatMap(cv, func(v value.Value) value.Value {
			if mustBool(c, pos, v) {
				return thenExpr(ctx)
			}
			if hasElse {
				return elseExpr(ctx)
			}
			return value.Nil
		})
	}
}

// compileIsStandalone implements `is` used outside an `if` condition: it
// reports whether the subject matches, without binding anything (binding
// is specific to the if-condition role, spec §4.3).
func compileIsStandalone(node ast.Node, c *compiler) Expr {
	subjectExpr := Compile(node.Children[0], c)
	matcher := pattern.Compile(node.Children[1])
	return func(ctx *Context) value.Value {
		sv := subjectExpr(ctx)
		return effect.FlatMap(sv, func(v value.Value) value.Value {
			scratch := ctx.Env.Fork()
			res, d := matchPattern(c, matcher, scratch, v)
			if d != nil {
				raise(d)
			}
			return value.FromBool(res.Matched)
		})
	}
}
