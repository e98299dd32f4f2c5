// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// Record is an insertion-ordered mapping from Value to Value (spec §3).
// Keys are usually symbols or strings; the scalar fast path below covers
// those with an O(1) lookup, falling back to a linear identity-equality
// scan for compound keys, which the language permits but rarely uses.
type Record struct {
	entries []entry
	fast    map[any]int // scalar key -> index into entries; nil until first scalar insert
}

type entry struct {
	key Value
	val Value
}

func (*Record) Kind() Kind { return KindRecord }

// NewRecord returns an empty, insertion-ordered record.
func NewRecord() *Record {
	return &Record{}
}

// scalarKey returns a Go-comparable representation of v's key for the fast
// path, or (nil, false) if v is a compound value that must be compared by
// identity instead.
func scalarKey(v Value) (any, bool) {
	switch k := v.(type) {
	case Bool:
		return k, true
	case Number:
		return k, true
	case String:
		return k, true
	case Symbol:
		return k.tok, true
	case Null:
		return nil, true
	default:
		return nil, false
	}
}

// indexOf returns the entry index for key, or -1.
func (r *Record) indexOf(key Value) int {
	if sk, ok := scalarKey(key); ok {
		if r.fast == nil {
			return -1
		}
		if i, ok := r.fast[sk]; ok {
			return i
		}
		return -1
	}
	for i, e := range r.entries {
		if Identical(e.key, key) {
			return i
		}
	}
	return -1
}

// Get returns the value bound to key and whether it was present.
func (r *Record) Get(key Value) (Value, bool) {
	i := r.indexOf(key)
	if i < 0 {
		return nil, false
	}
	return r.entries[i].val, true
}

// Set inserts or overwrites the binding for key, preserving the original
// insertion position on overwrite.
func (r *Record) Set(key, val Value) {
	if i := r.indexOf(key); i >= 0 {
		r.entries[i].val = val
		return
	}
	r.entries = append(r.entries, entry{key: key, val: val})
	if sk, ok := scalarKey(key); ok {
		if r.fast == nil {
			r.fast = make(map[any]int)
		}
		r.fast[sk] = len(r.entries) - 1
	}
}

// Delete removes the binding for key, if present, preserving the relative
// order of the remaining entries.
func (r *Record) Delete(key Value) {
	i := r.indexOf(key)
	if i < 0 {
		return
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	r.fast = nil
	for j, e := range r.entries {
		if sk, ok := scalarKey(e.key); ok {
			if r.fast == nil {
				r.fast = make(map[any]int)
			}
			r.fast[sk] = j
		}
	}
}

// Len returns the number of entries.
func (r *Record) Len() int { return len(r.entries) }

// Keys returns the keys in insertion order.
func (r *Record) Keys() []Value {
	out := make([]Value, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.key
	}
	return out
}

// Range calls f for every entry in insertion order, stopping early if f
// returns false.
func (r *Record) Range(f func(key, val Value) bool) {
	for _, e := range r.entries {
		if !f(e.key, e.val) {
			return
		}
	}
}

// Clone returns a shallow copy: a new Record with the same key/value
// entries, independent of the original for subsequent Set/Delete calls.
func (r *Record) Clone() *Record {
	out := NewRecord()
	r.Range(func(k, v Value) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Merge returns a new record with r's entries followed by other's,
// matching record-spread semantics (`{...a, ...b}`): keys in other
// overwrite the values of equal keys in r, and those keys keep their
// position from r.
func Merge(r, other *Record) *Record {
	out := r.Clone()
	other.Range(func(k, v Value) bool {
		out.Set(k, v)
		return true
	})
	return out
}
