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

// Expr is a compiled closure: given an execute-time Context it produces a
// value, possibly a still-propagating *effect.Object (spec §2's
// compile/execute split). Every ast.Node compiles to exactly one Expr,
// built once per AST site and reused by every closure built above it.
type Expr func(ctx *Context) value.Value

// Compile dispatches over the closed ast.Kind set (spec §4.3), building an
// Expr for node. c carries the compile-time file identity and position
// provider a diagnostic raised from the returned Expr decorates itself
// with.
func Compile(node ast.Node, c *compiler) Expr {
	switch node.Type {

	case ast.KindLiteral:
		return compileLiteral(node)

	case ast.KindName:
		return compileName(node, c)

	case ast.KindBinaryStrict:
		return compileBinaryStrict(node, c)

	case ast.KindUnaryStrict:
		return compileUnaryStrict(node, c)

	case ast.KindAnd:
		return compileAnd(node, c)

	case ast.KindOr:
		return compileOr(node, c)

	case ast.KindParens:
		return compileParens(node, c)

	case ast.KindSquareBrackets:
		return compileSquareBrackets(node, c)

	case ast.KindTuple:
		return compileTuple(node, c)

	case ast.KindSpread:
		// A standalone spread outside a tuple context behaves as a
		// single-element tuple containing just this spread (spec §4.3: "a
		// lone spread propagates its payload").
		return compileTuple(ast.Node{Type: ast.KindTuple, ID: node.ID, Children: []ast.Node{node}}, c)

	case ast.KindLabel:
		return compileTuple(ast.Node{Type: ast.KindTuple, ID: node.ID, Children: []ast.Node{node}}, c)

	case ast.KindIndex:
		return compileIndex(node, c)

	case ast.KindBlock:
		return compileBlock(node, c)

	case ast.KindLoop:
		return compileLoop(node, c)

	case ast.KindWhile:
		return compileWhile(node, c)

	case ast.KindFor:
		return compileFor(node, c)

	case ast.KindFunction:
		return compileFunction(node, c)

	case ast.KindApplication:
		return compileApplication(node, c)

	case ast.KindMatch:
		return compileMatch(node, c)

	case ast.KindIf:
		return compileIf(node, c, false)

	case ast.KindIfElse:
		return compileIf(node, c, true)

	case ast.KindIs:
		return compileIsStandalone(node, c)

	case ast.KindTry:
		return compileTry(node, c)

	case ast.KindAsync:
		return compileAsync(node, c)

	case ast.KindParallel:
		return compileParallel(node, c)

	case ast.KindSend:
		return compileSend(node, c)

	case ast.KindReceive:
		return compileReceive(node, c)

	case ast.KindSendMaybe:
		return compileSendMaybe(node, c)

	case ast.KindReceiveMaybe:
		return compileReceiveMaybe(node, c)

	case ast.KindCodeLabel:
		return compileCodeLabel(node, c)

	case ast.KindInject:
		return compileInject(node, c)

	case ast.KindMask:
		return compileMaskOrWithout(node, c, true)

	case ast.KindWithout:
		return compileMaskOrWithout(node, c, false)

	case ast.KindDeclare:
		return compileBinding(node, c, bindDeclare)

	case ast.KindAssign:
		return compileBinding(node, c, bindAssign)

	case ast.KindCompoundAssign:
		return compileBinding(node, c, bindCompound)

	case ast.KindExport:
		return compileBinding(node, c, bindExport)

	default:
		pos := c.posOf(node.ID)
		return func(*Context) value.Value {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "unreachable node kind %d", node.Type))
			return nil
		}
	}
}

func compileChildren(nodes []ast.Node, c *compiler) []Expr {
	out := make([]Expr, len(nodes))
	for i, n := range nodes {
		out[i] = Compile(n, c)
	}
	return out
}

func compileLiteral(node ast.Node) Expr {
	v := node.Data.Value
	return func(*Context) value.Value { return v }
}

func compileName(node ast.Node, c *compiler) Expr {
	sym := value.Intern(node.Data.Name)
	pos := c.posOf(node.ID)
	return func(ctx *Context) value.Value {
		v, ok := ctx.Env.Get(sym)
		if !ok {
			raise(diag.New(diag.ErrUndeclaredName, c.file, pos, "undeclared name %q", node.Data.Name).
				WithClosestNameHint(node.Data.Name, ctx.Env.Names()))
		}
		return v
	}
}

func compileBinaryStrict(node ast.Node, c *compiler) Expr {
	op, found := strictBinops[node.Data.Name]
	pos := c.posOf(node.ID)
	if !found {
		return func(*Context) value.Value {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "unknown binary operator %q", node.Data.Name))
			return nil
		}
	}
	lhs := Compile(node.Children[0], c)
	rhs := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		return sequence(ctx, []Expr{lhs, rhs}, func(vs []value.Value) value.Value {
			return op(c, pos, vs[0], vs[1])
		})
	}
}

func compileUnaryStrict(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	operand := Compile(node.Children[0], c)
	if node.Data.Name == "await" {
		return func(ctx *Context) value.Value {
			v := operand(ctx)
			return effect.FlatMap(v, func(rv value.Value) value.Value {
				return awaitTask(ctx, c, pos, rv)
			})
		}
	}
	op, found := strictUnops[node.Data.Name]
	if !found {
		return func(*Context) value.Value {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "unknown unary operator %q", node.Data.Name))
			return nil
		}
	}
	return func(ctx *Context) value.Value {
		v := operand(ctx)
		return effect.FlatMap(v, func(rv value.Value) value.Value { return op(c, pos, rv) })
	}
}

func compileAnd(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	lhs := Compile(node.Children[0], c)
	rhs := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		lv := lhs(ctx)
		return effect.FlatMap(lv, func(l value.Value) value.Value {
			if !mustBool(c, pos, l) {
				return value.False
			}
			return rhs(ctx)
		})
	}
}

func compileOr(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	lhs := Compile(node.Children[0], c)
	rhs := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		lv := lhs(ctx)
		return effect.FlatMap(lv, func(l value.Value) value.Value {
			if mustBool(c, pos, l) {
				return value.True
			}
			return rhs(ctx)
		})
	}
}

func compileParens(node ast.Node, c *compiler) Expr {
	if len(node.Children) == 0 {
		empty := value.NewList()
		return func(*Context) value.Value { return empty }
	}
	return Compile(node.Children[0], c)
}

// compileSquareBrackets implements `[key]`, a dynamic name lookup: key is
// evaluated, converted to a Symbol, and looked up in the environment (spec
// §4.3).
func compileSquareBrackets(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	keyExpr := Compile(node.Children[0], c)
	return func(ctx *Context) value.Value {
		kv := keyExpr(ctx)
		return effect.FlatMap(kv, func(k value.Value) value.Value {
			sym, ok := toSymbolKey(k)
			if !ok {
				raise(diag.New(diag.ErrRuntime, c.file, pos, "dynamic lookup key must be a string or symbol"))
			}
			v, found := ctx.Env.Get(sym)
			if !found {
				raise(diag.New(diag.ErrUndeclaredName, c.file, pos, "undeclared name %q", sym.Name()).
					WithClosestNameHint(sym.Name(), ctx.Env.Names()))
			}
			return v
		})
	}
}

func toSymbolKey(v value.Value) (value.Symbol, bool) {
	switch k := v.(type) {
	case value.Symbol:
		return k, true
	case value.String:
		return value.Intern(string(k)), true
	default:
		return value.Symbol{}, false
	}
}
