// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// Identical implements `==` (spec §3): reference identity for compound
// values, structural equality for scalars. NaN == NaN is false, matching
// Go's native float64 comparison (spec §9 open question 2).
func Identical(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case Symbol:
		return av.Equal(b.(Symbol))
	default:
		// Compound values (list, record, channel, task, function, handler,
		// prototyped, effect) compare by reference identity.
		return a == b
	}
}

// DeepEqual implements `===` (spec §3): structural equality over scalars
// and elementwise over containers, cycle-safe (spec §9: "Records and lists
// may contain themselves; ... deep equality must detect cycles or be
// bounded"). Two values that are part of a cycle and compare equal up to
// the point of re-entry are treated as equal (the conventional
// co-inductive reading of structural equality over cyclic data).
//
// NaN === NaN is true: deep equality treats a value as equal to itself
// regardless of bit-level float peculiarities (spec §9 open question 2),
// matching the "same shape" reading deep-equality tooling in the pack
// (go-cmp-style comparers) generally adopts for this exact case.
func DeepEqual(a, b Value) bool {
	return deepEqual(a, b, make(map[pairKey]bool))
}

type pairKey struct{ a, b any }

func deepEqual(a, b Value, seen map[pairKey]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		bv := b.(Number)
		if av != av && bv != bv { // both NaN
			return true
		}
		return av == bv
	case String:
		return av == b.(String)
	case Symbol:
		return av.Equal(b.(Symbol))
	case *List:
		bv := b.(*List)
		if av == bv {
			return true
		}
		key := pairKey{a: av, b: bv}
		if seen[key] {
			return true
		}
		seen[key] = true
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !deepEqual(av.Items[i], bv.Items[i], seen) {
				return false
			}
		}
		return true
	case *Record:
		bv := b.(*Record)
		if av == bv {
			return true
		}
		key := pairKey{a: av, b: bv}
		if seen[key] {
			return true
		}
		seen[key] = true
		if av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Range(func(k, v Value) bool {
			ov, ok := bv.Get(k)
			if !ok || !deepEqual(v, ov, seen) {
				equal = false
				return false
			}
			return true
		})
		return equal
	default:
		// Channel, task, function, handler, prototyped, effect: identity.
		return a == b
	}
}
