// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched_test

import (
	"testing"

	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/sched"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReceiveBeforeSendParksUntilSend exercises the FIFO channel + scheduler
// interaction from spec §8 property 6: a receiver that arrives first parks,
// and only completes once a later send on the same channel delivers.
func TestReceiveBeforeSendParksUntilSend(t *testing.T) {
	s := sched.New()
	ch := value.NewChannel("t")

	receiver := value.NewTask(nil)
	s.Track(receiver)
	s.RunTask(receiver, func() value.Value {
		return effect.Perform(value.SymReceiveOp, ch, nil)
	})
	assert.False(t, receiver.Done(), "receiver should be parked, not done")

	sender := value.NewTask(nil)
	s.Track(sender)
	s.RunTask(sender, func() value.Value {
		ch.Send(value.Number(42))
		return value.Nil
	})
	s.Run()

	require.True(t, receiver.Done())
	v, err := receiver.Result()
	require.NoError(t, err)
	assert.Equal(t, value.Number(42), v)
}

func TestAwaitParksUntilChildCompletes(t *testing.T) {
	s := sched.New()
	child := value.NewTask(nil)
	s.Track(child)

	parent := value.NewTask(nil)
	s.Track(parent)
	s.RunTask(parent, func() value.Value {
		awaited := effect.Perform(value.SymAwaitOp, child, nil)
		return effect.FlatMap(awaited, func(v value.Value) value.Value { return v })
	})
	assert.False(t, parent.Done())

	child.Complete(value.String("done"))
	s.Run()

	require.True(t, parent.Done())
	v, err := parent.Result()
	require.NoError(t, err)
	rec := v.(*value.Record)
	tag, payload, ok := value.ResultTag(rec)
	require.True(t, ok)
	assert.True(t, tag.Equal(value.SymOk))
	assert.Equal(t, value.String("done"), payload)
}

func TestEventLoopYieldRoundRobins(t *testing.T) {
	s := sched.New()
	var order []string

	a := value.NewTask(nil)
	s.Track(a)
	s.RunTask(a, func() value.Value {
		order = append(order, "a1")
		yielded := effect.Perform(value.SymEventLoopYield, value.Nil, nil)
		return effect.FlatMap(yielded, func(value.Value) value.Value {
			order = append(order, "a2")
			return value.Nil
		})
	})

	b := value.NewTask(nil)
	s.Track(b)
	s.RunTask(b, func() value.Value {
		order = append(order, "b1")
		return value.Nil
	})

	s.Run()
	require.True(t, a.Done())
	require.True(t, b.Done())
	assert.Equal(t, []string{"a1", "b1", "a2"}, order)
}

func TestCreateTaskRunsChildInterleaved(t *testing.T) {
	s := sched.New()
	root := value.NewTask(nil)
	s.Track(root)

	var childRan bool
	fn := &value.Function{Call: func(value.Value) value.Value {
		childRan = true
		return value.Number(1)
	}}

	s.RunTask(root, func() value.Value {
		created := effect.Perform(value.SymCreateTask, fn, nil)
		return effect.FlatMap(created, func(v value.Value) value.Value { return v })
	})
	require.True(t, root.Done())
	assert.False(t, childRan, "child body should not run until scheduled")

	s.Run()
	assert.True(t, childRan)
}
