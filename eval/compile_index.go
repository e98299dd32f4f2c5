// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/value"
)

// compileIndex implements `index` (spec §4.3): reads from a list by
// integer, a record by any key, or falls back to the prototype-method
// table for any container kind (including string and list) on lookup
// miss.
func compileIndex(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	containerExpr := Compile(node.Children[0], c)
	keyExpr := Compile(node.Children[1], c)
	return func(ctx *Context) value.Value {
		return sequence(ctx, []Expr{containerExpr, keyExpr}, func(vs []value.Value) value.Value {
			return indexValue(ctx, c, pos, vs[0], vs[1])
		})
	}
}

func indexValue(ctx *Context, c *compiler, pos diag.Pos, container, key value.Value) value.Value {
	switch cv := container.(type) {
	case *value.List:
		if n, ok := key.(value.Number); ok {
			v, found := cv.Get(int(n))
			if found {
				return v
			}
		}
		if m, ok := protoLookup(ctx, value.KindList, key); ok {
			return m
		}
		raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "list index out of range or not numeric"))
	case *value.Record:
		if v, found := cv.Get(key); found {
			return v
		}
		if m, ok := protoLookup(ctx, value.KindRecord, key); ok {
			return m
		}
		raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "record has no field for the given key"))
	case value.String:
		if n, ok := key.(value.Number); ok {
			runes := []rune(string(cv))
			i := int(n)
			if i >= 0 && i < len(runes) {
				return value.String(string(runes[i]))
			}
		}
		if m, ok := protoLookup(ctx, value.KindString, key); ok {
			return m
		}
		raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "string index out of range or not numeric"))
	case *value.Prototyped:
		if v, found := cv.Lookup(key); found {
			return v
		}
		raise(diag.New(diag.ErrInvalidIndex, c.file, pos, "no prototype method for the given key"))
	default:
		if m, ok := protoLookup(ctx, container.Kind(), key); ok {
			return m
		}
		raise(diag.New(diag.ErrInvalidIndexTarget, c.file, pos, "cannot index a value of kind %s", container.Kind()))
	}
	return nil
}

func protoLookup(ctx *Context, kind value.Kind, key value.Value) (value.Value, bool) {
	if ctx.prototypes == nil {
		return nil, false
	}
	for _, proto := range ctx.prototypes.For(kind) {
		if v, ok := proto.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}
