// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pattern implements the single entry point for declaration,
// destructuring, match-cases, and compound assignment (spec §4.2). A
// pattern is compiled once per AST site into a Matcher closure, mirroring
// the evaluator's own compile/execute split (spec §2).
package pattern

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/value"
)

// Evaluator evaluates an embedded expression against an environment — used
// for `pin(expr)`, record-field default values, and l-value index targets,
// all of which require running arbitrary evaluator logic the pattern
// matcher does not own itself (avoids a pattern<->eval import cycle).
type Evaluator interface {
	Eval(node ast.Node, e *env.Environment) (value.Value, *diag.Diagnostic)
}

// Binding is one name or l-value slot a pattern produces. Target/Index are
// set only in assignment-target role, for compound l-values like `a[i]`.
type Binding struct {
	Name   value.Symbol
	Target value.Value // non-nil: compound l-value; Name is ignored
	Index  value.Value
	Val    value.Value
}

// Result is the PatternTestResult of spec §3: three binding sets plus a
// matched flag and the symmetric notEnvs that would have bound had the
// match failed.
type Result struct {
	Matched  bool
	Readonly []Binding
	Mutable  []Binding
	Exports  []Binding
	NotEnvs  []Binding
}

func fail() *Result { return &Result{Matched: false} }

func ok(r *Result) *Result {
	r.Matched = true
	return r
}

// Apply installs Readonly/Mutable/Exports bindings into e via Add/AddReadonly
// (declaration role: `:=`, match-case binding, `export`). Compound l-value
// bindings are not expected in this role.
func (r *Result) Apply(e *env.Environment) *diag.Diagnostic {
	for _, b := range r.Readonly {
		if err := e.AddReadonly(b.Name, b.Val); err != nil {
			return diag.New(diag.ErrInvalidPattern, "", diag.Pos{}, "%s", err.Error())
		}
	}
	for _, b := range append(append([]Binding{}, r.Mutable...), r.Exports...) {
		if err := e.Add(b.Name, b.Val); err != nil {
			return diag.New(diag.ErrInvalidPattern, "", diag.Pos{}, "%s", err.Error())
		}
	}
	return nil
}

// ApplyAssign installs bindings in assignment role (`=`, `+=`): name
// bindings go through e.Set (mutable-only, spec §4.1), compound l-value
// bindings mutate the target container in place (spec §4.2).
func (r *Result) ApplyAssign(e *env.Environment) *diag.Diagnostic {
	for _, b := range r.Readonly {
		if b.Target != nil {
			if d := assignIndexed(b.Target, b.Index, b.Val); d != nil {
				return d
			}
			continue
		}
		if err := e.Set(b.Name, b.Val); err != nil {
			return diag.New(diag.ErrImmutableAssignment, "", diag.Pos{}, "%s", err.Error())
		}
	}
	return nil
}

func assignIndexed(target, index, v value.Value) *diag.Diagnostic {
	switch t := target.(type) {
	case *value.List:
		i, ok := index.(value.Number)
		if !ok || !t.Set(int(i), v) {
			return diag.New(diag.ErrInvalidIndex, "", diag.Pos{}, "invalid index target")
		}
		return nil
	case *value.Record:
		t.Set(index, v)
		return nil
	default:
		return diag.New(diag.ErrInvalidIndexTarget, "", diag.Pos{}, "invalid index target")
	}
}

// Matcher is a compiled pattern: built once per AST site, invoked once per
// match attempt.
type Matcher func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic)

// Compile builds a Matcher from a pattern AST node (spec §4.2). The like
// flag is threaded from an enclosing KindPatLike wrapper and reset to
// strict by a nested KindPatStrict.
func Compile(node ast.Node) Matcher {
	return compileNode(node, false)
}

func compileNode(node ast.Node, like bool) Matcher {
	switch node.Type {
	case KindPatPlaceholder:
		return func(Evaluator, *env.Environment, value.Value) (*Result, *diag.Diagnostic) {
			return ok(&Result{}), nil
		}

	case KindPatLiteral:
		want := node.Data.Value
		return func(_ Evaluator, _ *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			if value.Identical(want, v) || value.DeepEqual(want, v) {
				return ok(&Result{}), nil
			}
			return fail(), nil
		}

	case KindPatName:
		sym := value.Intern(node.Data.Name)
		return func(_ Evaluator, _ *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			return ok(&Result{Readonly: []Binding{{Name: sym, Val: v}}}), nil
		}

	case KindPatPin:
		expr := node.Children[0]
		return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			want, d := ev.Eval(expr, e)
			if d != nil {
				return fail(), d
			}
			if value.Identical(want, v) || value.DeepEqual(want, v) {
				return ok(&Result{}), nil
			}
			return fail(), nil
		}

	case KindPatNot:
		inner := compileNode(node.Children[0], like)
		return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			r, d := inner(ev, e, v)
			if d != nil {
				return fail(), d
			}
			if r.Matched {
				return &Result{Matched: false, NotEnvs: r.Readonly}, nil
			}
			return ok(&Result{NotEnvs: r.NotEnvs}), nil
		}

	case KindPatBind:
		p := compileNode(node.Children[0], like)
		q := compileNode(node.Children[1], like)
		return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			rp, d := p(ev, e, v)
			if d != nil || !rp.Matched {
				return fail(), d
			}
			rq, d := q(ev, e, v)
			if d != nil || !rq.Matched {
				return fail(), d
			}
			return ok(&Result{
				Readonly: append(rp.Readonly, rq.Readonly...),
				Mutable:  append(rp.Mutable, rq.Mutable...),
				Exports:  append(rp.Exports, rq.Exports...),
			}), nil
		}

	case KindPatExport:
		inner := compileNode(node.Children[0], like)
		return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			r, d := inner(ev, e, v)
			if d != nil || !r.Matched {
				return r, d
			}
			r.Exports = append(r.Exports, r.Readonly...)
			r.Exports = append(r.Exports, r.Mutable...)
			r.Readonly = nil
			r.Mutable = nil
			return r, nil
		}

	case KindPatMutable:
		inner := compileNode(node.Children[0], like)
		return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			r, d := inner(ev, e, v)
			if d != nil || !r.Matched {
				return r, d
			}
			r.Mutable = append(r.Mutable, r.Readonly...)
			r.Readonly = nil
			return r, nil
		}

	case KindPatStrict:
		return compileNode(node.Children[0], false)

	case KindPatLike:
		return compileNode(node.Children[0], true)

	case KindPatIndex:
		targetExpr, indexExpr := node.Children[0], node.Children[1]
		return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
			target, d := ev.Eval(targetExpr, e)
			if d != nil {
				return fail(), d
			}
			idx, d := ev.Eval(indexExpr, e)
			if d != nil {
				return fail(), d
			}
			return ok(&Result{Readonly: []Binding{{Target: target, Index: idx, Val: v}}}), nil
		}

	case KindPatTuple:
		return compileTuple(node, like)

	case KindPatRecord:
		return compileRecord(node, like)

	default:
		// Unreachable per spec §4.2 ("unknown pattern constructs are
		// unreachable"); surfaced as a hard error rather than a panic so a
		// misconstructed external AST fails safely.
		return func(Evaluator, *env.Environment, value.Value) (*Result, *diag.Diagnostic) {
			return fail(), diag.New(diag.ErrInvalidPattern, "", diag.Pos{}, "unreachable pattern construct")
		}
	}
}

func compileTuple(node ast.Node, like bool) Matcher {
	children := node.Children
	spreadAt := -1
	for i, c := range children {
		if c.Type == KindPatSpread {
			spreadAt = i
			break
		}
	}
	var left, right []Matcher
	var spreadSub Matcher
	if spreadAt < 0 {
		for _, c := range children {
			left = append(left, compileNode(c, like))
		}
	} else {
		for _, c := range children[:spreadAt] {
			left = append(left, compileNode(c, like))
		}
		if len(children[spreadAt].Children) > 0 {
			spreadSub = compileNode(children[spreadAt].Children[0], like)
		}
		for _, c := range children[spreadAt+1:] {
			right = append(right, compileNode(c, like))
		}
	}

	return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
		list, isList := v.(*value.List)
		if !isList {
			return fail(), diag.New(diag.ErrInvalidTuplePattern, "", diag.Pos{}, "tuple pattern against non-tuple value")
		}
		n := list.Len()
		if spreadAt < 0 {
			if n != len(left) {
				return fail(), nil
			}
		} else if n < len(left)+len(right) {
			return fail(), nil
		}

		result := &Result{}
		for i, m := range left {
			item, _ := list.Get(i)
			r, d := m(ev, e, item)
			if d != nil {
				return fail(), d
			}
			if !r.Matched {
				return fail(), nil
			}
			mergeInto(result, r)
		}
		if spreadAt >= 0 {
			mid := value.NewList(list.Items[len(left) : n-len(right)]...)
			if spreadSub != nil {
				r, d := spreadSub(ev, e, mid)
				if d != nil {
					return fail(), d
				}
				if !r.Matched {
					return fail(), nil
				}
				mergeInto(result, r)
			}
			for i, m := range right {
				item, _ := list.Get(n - len(right) + i)
				r, d := m(ev, e, item)
				if d != nil {
					return fail(), d
				}
				if !r.Matched {
					return fail(), nil
				}
				mergeInto(result, r)
			}
		}
		return ok(result), nil
	}
}

type recordField struct {
	key     value.Symbol
	sub     Matcher
	hasDflt bool
	dflt    ast.Node
}

func compileRecord(node ast.Node, like bool) Matcher {
	var fields []recordField
	spreadSub := (Matcher)(nil)
	for _, c := range node.Children {
		switch c.Type {
		case KindPatSpread:
			if len(c.Children) > 0 {
				spreadSub = compileNode(c.Children[0], like)
			}
		case KindPatField:
			f := recordField{key: value.Intern(c.Data.Name), sub: compileNode(c.Children[0], like)}
			if len(c.Children) > 1 {
				f.hasDflt = true
				f.dflt = c.Children[1]
			}
			fields = append(fields, f)
		}
	}

	return func(ev Evaluator, e *env.Environment, v value.Value) (*Result, *diag.Diagnostic) {
		rec, isRec := v.(*value.Record)
		if !isRec {
			if like && value.Identical(v, value.Nil) {
				rec = value.NewRecord()
			} else {
				return fail(), diag.New(diag.ErrInvalidRecordPattern, "", diag.Pos{}, "record pattern against non-record value")
			}
		}
		result := &Result{}
		consumed := make(map[value.Symbol]bool, len(fields))
		for _, f := range fields {
			consumed[f.key] = true
			fv, present := rec.Get(f.key)
			if !present {
				if f.hasDflt {
					dv, d := ev.Eval(f.dflt, e)
					if d != nil {
						return fail(), d
					}
					fv = dv
				} else if like {
					fv = value.Nil
				} else {
					return fail(), nil
				}
			}
			if !present && value.Identical(fv, value.Nil) && like {
				// like relaxes a missing/null field to an unconditional match.
				r, d := f.sub(ev, e, fv)
				if d != nil {
					return fail(), d
				}
				if r.Matched {
					mergeInto(result, r)
				}
				continue
			}
			r, d := f.sub(ev, e, fv)
			if d != nil {
				return fail(), d
			}
			if !r.Matched {
				return fail(), nil
			}
			mergeInto(result, r)
		}
		if spreadSub != nil {
			rest := value.NewRecord()
			rec.Range(func(k, val value.Value) bool {
				if sym, isSym := k.(value.Symbol); !isSym || !consumed[sym] {
					rest.Set(k, val)
				}
				return true
			})
			r, d := spreadSub(ev, e, rest)
			if d != nil {
				return fail(), d
			}
			if !r.Matched {
				return fail(), nil
			}
			mergeInto(result, r)
		}
		return ok(result), nil
	}
}

func mergeInto(dst, src *Result) {
	dst.Readonly = append(dst.Readonly, src.Readonly...)
	dst.Mutable = append(dst.Mutable, src.Mutable...)
	dst.Exports = append(dst.Exports, src.Exports...)
	dst.NotEnvs = append(dst.NotEnvs, src.NotEnvs...)
}

// Pattern node kinds re-exported for callers that only need the pattern
// subset of ast.Kind without importing ast directly in hot paths.
const (
	KindPatPlaceholder = ast.KindPatPlaceholder
	KindPatLiteral     = ast.KindPatLiteral
	KindPatName        = ast.KindPatName
	KindPatPin         = ast.KindPatPin
	KindPatNot         = ast.KindPatNot
	KindPatTuple       = ast.KindPatTuple
	KindPatSpread      = ast.KindPatSpread
	KindPatRecord      = ast.KindPatRecord
	KindPatField       = ast.KindPatField
	KindPatIndex       = ast.KindPatIndex
	KindPatBind        = ast.KindPatBind
	KindPatExport      = ast.KindPatExport
	KindPatMutable     = ast.KindPatMutable
	KindPatStrict      = ast.KindPatStrict
	KindPatLike        = ast.KindPatLike
)
