// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value_test

import (
	"testing"

	"code.hybscloud.com/ember/value"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueComparer lets cmp.Diff walk a value.Value tree without reaching into
// Record's unexported entries/fast fields: every node is compared through
// DeepEqual, the same structural-equality rule the language itself uses.
var valueComparer = cmp.Comparer(func(a, b value.Value) bool {
	return value.DeepEqual(a, b)
})

func TestIdenticalScalars(t *testing.T) {
	assert.True(t, value.Identical(value.Number(1), value.Number(1)))
	assert.False(t, value.Identical(value.Number(1), value.Number(2)))
	assert.True(t, value.Identical(value.String("a"), value.String("a")))
	assert.True(t, value.Identical(value.Nil, value.Nil))
	assert.False(t, value.Identical(value.Number(1), value.String("1")))
}

func TestIdenticalNaN(t *testing.T) {
	nan := value.Number(nan())
	assert.False(t, value.Identical(nan, nan), "NaN == NaN must be false")
}

func TestDeepEqualNaN(t *testing.T) {
	nan := value.Number(nan())
	assert.True(t, value.DeepEqual(nan, nan), "NaN === NaN must be true")
}

func TestIdenticalCompoundIsReference(t *testing.T) {
	a := value.NewList(value.Number(1))
	b := value.NewList(value.Number(1))
	assert.False(t, value.Identical(a, b), "distinct lists are never == even if equal shape")
	assert.True(t, value.Identical(a, a))
	assert.True(t, value.DeepEqual(a, b), "distinct lists with equal shape are ===")
}

func TestDeepEqualRecordOrderIndependent(t *testing.T) {
	a := value.NewRecord()
	a.Set(value.Intern("x"), value.Number(1))
	a.Set(value.Intern("y"), value.Number(2))

	b := value.NewRecord()
	b.Set(value.Intern("y"), value.Number(2))
	b.Set(value.Intern("x"), value.Number(1))

	assert.True(t, value.DeepEqual(a, b))
}

func TestDeepEqualCyclicList(t *testing.T) {
	a := value.NewList(value.Number(1))
	a.Items = append(a.Items, a) // a contains itself
	b := value.NewList(value.Number(1))
	b.Items = append(b.Items, b)

	require.NotPanics(t, func() {
		assert.True(t, value.DeepEqual(a, b))
	})
}

func TestSymbolInterning(t *testing.T) {
	a := value.Intern("foo")
	b := value.Intern("foo")
	assert.True(t, a.Equal(b))

	c := value.FreshSymbol("foo")
	assert.False(t, a.Equal(c), "fresh symbols never alias interned ones")
}

func TestCmpDiffReportsUnequalRecordTrees(t *testing.T) {
	a := value.NewRecord()
	a.Set(value.Intern("x"), value.NewList(value.Number(1), value.Number(2)))

	b := value.NewRecord()
	b.Set(value.Intern("x"), value.NewList(value.Number(1), value.Number(3)))

	diff := cmp.Diff(value.Value(a), value.Value(b), valueComparer)
	assert.NotEmpty(t, diff, "differing nested lists must produce a non-empty diff")
}

func TestCmpDiffIsEmptyForDeepEqualTrees(t *testing.T) {
	build := func() value.Value {
		r := value.NewRecord()
		r.Set(value.Intern("a"), value.Number(1))
		r.Set(value.Intern("b"), value.NewList(value.String("x"), value.Nil))
		return r
	}

	diff := cmp.Diff(build(), build(), valueComparer)
	assert.Empty(t, diff, "two independently built but DeepEqual trees must diff empty: %s", diff)
}

func nan() float64 {
	var zero float64
	return zero / zero
}
