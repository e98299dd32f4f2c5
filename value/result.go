// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// tagKey and valueKey are the two fields of a result-typed value (spec §4.3's
// "ok v" / "error v", left unspecified in shape by the spec): a record with
// a `tag` field holding SymOk or SymError and a `value` field holding the
// payload. try, channel rejection, and the convert-on-throw surface all
// build and inspect records in this shape.
var (
	tagKey   = Intern("tag")
	valueKey = Intern("value")
)

// NewOk builds the `ok v` result value.
func NewOk(v Value) *Record {
	r := NewRecord()
	r.Set(tagKey, SymOk)
	r.Set(valueKey, v)
	return r
}

// NewErr builds the `error v` result value.
func NewErr(v Value) *Record {
	r := NewRecord()
	r.Set(tagKey, SymError)
	r.Set(valueKey, v)
	return r
}

// ResultTag reports the tag and payload of r if r is shaped like a result
// value, else (_, _, false).
func ResultTag(r *Record) (Symbol, Value, bool) {
	tag, ok := r.Get(tagKey)
	if !ok {
		return Symbol{}, nil, false
	}
	sym, ok := tag.(Symbol)
	if !ok || !(sym.Equal(SymOk) || sym.Equal(SymError)) {
		return Symbol{}, nil, false
	}
	val, _ := r.Get(valueKey)
	return sym, val, true
}

// NewStatus builds the three-way `ok v` / `none` / `closed` shape
// `receive?` and `send?` report their outcome through: same tag/value
// fields as a result record, but tag ranges over SymOk, SymNone, and
// SymClosed instead of just ok/error. v may be nil (none, closed).
func NewStatus(tag Symbol, v Value) *Record {
	r := NewRecord()
	r.Set(tagKey, tag)
	if v != nil {
		r.Set(valueKey, v)
	}
	return r
}
