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

// tupleElem is one compiled element of a tuple literal: either a plain
// value-producing Expr, a spread (splice), or a label (record field).
type tupleElem struct {
	kind tupleElemKind
	expr Expr // plain/spread payload
	key  Expr // label key, only when kind == tupleLabel
	val  Expr // label value, only when kind == tupleLabel
}

type tupleElemKind uint8

const (
	tupleValue tupleElemKind = iota
	tupleSpread
	tupleLabel
)

// compileTuple builds the `tuple` operator (spec §4.3): left-to-right list
// construction, with `spread`/`label` children building records or
// splicing instead. A tuple consisting solely of labels builds a record;
// any label child anywhere makes the whole tuple build a record (labels
// and plain positional elements are never mixed, since a label has no
// position in a list).
func compileTuple(node ast.Node, c *compiler) Expr {
	pos := c.posOf(node.ID)
	elems := make([]tupleElem, len(node.Children))
	isRecord := false
	for i, child := range node.Children {
		switch child.Type {
		case ast.KindLabel:
			isRecord = true
			elems[i] = tupleElem{kind: tupleLabel, key: Compile(child.Children[0], c), val: Compile(child.Children[1], c)}
		case ast.KindSpread:
			elems[i] = tupleElem{kind: tupleSpread, expr: Compile(child.Children[0], c)}
		default:
			elems[i] = tupleElem{kind: tupleValue, expr: Compile(child, c)}
		}
	}

	// A lone spread propagates its payload unchanged (spec §4.3).
	if len(elems) == 1 && elems[0].kind == tupleSpread {
		inner := elems[0].expr
		return func(ctx *Context) value.Value { return inner(ctx) }
	}

	if isRecord {
		return compileRecordTuple(c, pos, elems)
	}
	return compileListTuple(c, pos, elems)
}

func compileListTuple(c *compiler, pos diag.Pos, elems []tupleElem) Expr {
	return func(ctx *Context) value.Value {
		return buildList(ctx, c, pos, elems, 0, value.NewList())
	}
}

func buildList(ctx *Context, c *compiler, pos diag.Pos, elems []tupleElem, i int, acc *value.List) value.Value {
	if i == len(elems) {
		return acc
	}
	e := elems[i]
	if e.kind == tupleLabel {
		raise(diag.New(diag.ErrRuntime, c.file, pos, "cannot mix a labelled field into a list-building tuple"))
	}
	v := e.expr(ctx)
	return effect.FlatMap(v, func(rv value.Value) value.Value {
		if e.kind == tupleSpread {
			lst, ok := rv.(*value.List)
			if !ok {
				raise(diag.New(diag.ErrInvalidSpread, c.file, pos, "spread of a non-list into a list tuple"))
			}
			return buildList(ctx, c, pos, elems, i+1, acc.Append(lst.Items...))
		}
		return buildList(ctx, c, pos, elems, i+1, acc.Append(rv))
	})
}

func compileRecordTuple(c *compiler, pos diag.Pos, elems []tupleElem) Expr {
	return func(ctx *Context) value.Value {
		return buildRecord(ctx, c, pos, elems, 0, value.NewRecord())
	}
}

func buildRecord(ctx *Context, c *compiler, pos diag.Pos, elems []tupleElem, i int, acc *value.Record) value.Value {
	if i == len(elems) {
		return acc
	}
	e := elems[i]
	switch e.kind {
	case tupleLabel:
		kv := e.key(ctx)
		return effect.FlatMap(kv, func(k value.Value) value.Value {
			vv := e.val(ctx)
			return effect.FlatMap(vv, func(v value.Value) value.Value {
				acc.Set(k, v)
				return buildRecord(ctx, c, pos, elems, i+1, acc)
			})
		})
	case tupleSpread:
		sv := e.expr(ctx)
		return effect.FlatMap(sv, func(rv value.Value) value.Value {
			rec, ok := rv.(*value.Record)
			if !ok {
				raise(diag.New(diag.ErrInvalidSpread, c.file, pos, "spread of a non-record into a record tuple"))
			}
			rec.Range(func(k, v value.Value) bool { acc.Set(k, v); return true })
			return buildRecord(ctx, c, pos, elems, i+1, acc)
		})
	default:
		raise(diag.New(diag.ErrRuntime, c.file, pos, "cannot mix a positional element into a record-building tuple"))
		return nil
	}
}
