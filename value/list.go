// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// List is an ordered, mutable sequence of values (spec §3). Lists are
// shared by handle: copying a *List copies the pointer, not the backing
// slice, so in-place mutation through `index` assignment is visible to
// every holder — matching §5's "mutation is immediate and visible".
type List struct {
	Items []Value
}

func (*List) Kind() Kind { return KindList }

// NewList builds a list from the given items, copying the slice header but
// not the elements (elements are Values, immutable or shared-by-handle
// themselves).
func NewList(items ...Value) *List {
	cp := make([]Value, len(items))
	copy(cp, items)
	return &List{Items: cp}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Items) }

// Get returns the element at i, or (nil, false) if out of range.
func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.Items) {
		return nil, false
	}
	return l.Items[i], true
}

// Set mutates the element at i in place. Returns false if out of range.
func (l *List) Set(i int, v Value) bool {
	if i < 0 || i >= len(l.Items) {
		return false
	}
	l.Items[i] = v
	return true
}

// Append returns a new list with v appended; it does not mutate l, matching
// the language's `(...xs, v)` tuple-construction semantics rather than a
// destructive append.
func (l *List) Append(vs ...Value) *List {
	out := make([]Value, 0, len(l.Items)+len(vs))
	out = append(out, l.Items...)
	out = append(out, vs...)
	return &List{Items: out}
}

// Tail returns a new list containing all but the first element, or an
// empty list if l is empty — used by `for`'s desugaring (spec §4.3).
func (l *List) Tail() *List {
	if len(l.Items) == 0 {
		return &List{}
	}
	out := make([]Value, len(l.Items)-1)
	copy(out, l.Items[1:])
	return &List{Items: out}
}
