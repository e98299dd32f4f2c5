// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value_test

import (
	"testing"

	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInsertionOrder(t *testing.T) {
	r := value.NewRecord()
	r.Set(value.Intern("b"), value.Number(2))
	r.Set(value.Intern("a"), value.Number(1))
	r.Set(value.Intern("b"), value.Number(20)) // overwrite keeps position

	keys := r.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "b", keys[0].(value.Symbol).Name())
	assert.Equal(t, "a", keys[1].(value.Symbol).Name())

	v, ok := r.Get(value.Intern("b"))
	require.True(t, ok)
	assert.Equal(t, value.Number(20), v)
}

func TestRecordMergeSpread(t *testing.T) {
	a := value.NewRecord()
	a.Set(value.Intern("a"), value.Number(1))
	a.Set(value.Intern("b"), value.Number(2))
	b := value.NewRecord()
	b.Set(value.Intern("c"), value.Number(3))

	merged := value.Merge(a, b)
	assert.Equal(t, 3, merged.Len())
	got, _ := merged.Get(value.Intern("a"))
	assert.Equal(t, value.Number(1), got)
	got, _ = merged.Get(value.Intern("c"))
	assert.Equal(t, value.Number(3), got)
}

func TestListAppendIsPersistent(t *testing.T) {
	l := value.NewList(value.Number(1), value.Number(2))
	l2 := l.Append(value.Number(3))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l2.Len())
}

func TestListTail(t *testing.T) {
	l := value.NewList(value.Number(1), value.Number(2), value.Number(3))
	tail := l.Tail()
	assert.Equal(t, 2, tail.Len())
	v, _ := tail.Get(0)
	assert.Equal(t, value.Number(2), v)

	empty := (&value.List{}).Tail()
	assert.Equal(t, 0, empty.Len())
}
