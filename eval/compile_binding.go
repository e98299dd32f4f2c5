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

type bindRole uint8

const (
	bindDeclare bindRole = iota
	bindAssign
	bindCompound
	bindExport
)

// compileBinding implements declaration (`:=`), assignment (`=`), compound
// assignment (`+=`), and `export` (spec §4.2): all four drive the same
// compiled pattern matcher, differing only in which Result method installs
// the bindings and, for compound assign, in reading back the current value
// of each target before combining it with the right-hand side.
func compileBinding(node ast.Node, c *compiler, role bindRole) Expr {
	pos := c.posOf(node.ID)
	matcher := pattern.Compile(node.Children[0])
	valueExpr := Compile(node.Children[1], c)

	return func(ctx *Context) value.Value {
		vv := valueExpr(ctx)
		return effect.FlatMap(vv, func(v value.Value) value.Value {
			res, d := matchPattern(c, matcher, ctx.Env, v)
			if d != nil {
				raise(d)
			}
			if !res.Matched {
				raise(diag.New(diag.ErrInvalidPattern, c.file, pos, "binding pattern does not match its value"))
			}

			switch role {
			case bindDeclare:
				if ad := res.Apply(ctx.Env); ad != nil {
					raise(ad)
				}
				return v

			case bindAssign:
				if ad := res.ApplyAssign(ctx.Env); ad != nil {
					raise(ad)
				}
				return v

			case bindCompound:
				combined := combineCompound(ctx, c, pos, res)
				if ad := combined.ApplyAssign(ctx.Env); ad != nil {
					raise(ad)
				}
				return v

			case bindExport:
				if ad := res.Apply(ctx.Env); ad != nil {
					raise(ad)
				}
				if ctx.exports != nil {
					for _, b := range res.Readonly {
						ctx.exports.Set(value.String(b.Name.Name()), b.Val)
					}
					for _, b := range res.Mutable {
						ctx.exports.Set(value.String(b.Name.Name()), b.Val)
					}
					for _, b := range res.Exports {
						ctx.exports.Set(value.String(b.Name.Name()), b.Val)
					}
				}
				return v

			default:
				raise(diag.New(diag.ErrRuntime, c.file, pos, "unreachable binding role"))
				return nil
			}
		})
	}
}

// combineCompound rebuilds res' readonly bindings in place, replacing each
// Val (currently the right-hand operand per spec §4.2) with the sum of the
// target's current value and that operand, so the returned Result can be
// fed straight into ApplyAssign.
func combineCompound(ctx *Context, c *compiler, pos diag.Pos, res *pattern.Result) *pattern.Result {
	combined := make([]pattern.Binding, len(res.Readonly))
	for i, b := range res.Readonly {
		cur := currentValueOf(ctx, c, pos, b)
		combined[i] = b
		combined[i].Val = addValues(c, pos, cur, b.Val)
	}
	return &pattern.Result{Matched: true, Readonly: combined}
}

func currentValueOf(ctx *Context, c *compiler, pos diag.Pos, b pattern.Binding) value.Value {
	if b.Target == nil {
		v, ok := ctx.Env.Get(b.Name)
		if !ok {
			raise(diag.New(diag.ErrUndeclaredAssignTarget, c.file, pos, "undeclared name %q", b.Name.Name()))
		}
		return v
	}
	switch t := b.Target.(type) {
	case *value.List:
		n, ok := b.Index.(value.Number)
		if !ok {
			raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "compound assignment requires a numeric list index"))
		}
		v, found := t.Get(int(n))
		if !found {
			raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "compound assignment index out of range"))
		}
		return v
	case *value.Record:
		v, found := t.Get(b.Index)
		if !found {
			raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "compound assignment target has no such field"))
		}
		return v
	default:
		raise(diag.New(diag.ErrInvalidIndexTarget, c.file, pos, "compound assignment target is not indexable"))
		return nil
	}
}
