// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"fmt"

	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/value"
)

func unhandledEffectError(eff *effect.Object) error {
	return fmt.Errorf("sched: effect %q escaped its task unhandled", eff.Tag.Name())
}

// Table builds the concurrency handler table installed once around a
// task's entire script (spec §4.5/§5): blocking receive, await, task
// creation, and the voluntary event-loop yield. Channel send and the `?`
// non-blocking variants never suspend and are evaluated directly by the
// eval package without going through the scheduler at all.
func (s *Scheduler) Table(task *value.Task) *effect.Table {
	tbl := effect.NewTable()

	tbl.On(value.SymReceiveOp, func(k *effect.Continuation, payload value.Value) value.Value {
		ch, ok := payload.(*value.Channel)
		if !ok {
			return k.Resume(value.Nil)
		}
		return suspendOrResume(task, s, k, func(settle func(value.Value)) {
			ch.Receive(value.Receiver{
				Resolve: settle,
				Reject:  func(err error) { settle(value.NewErr(value.String(err.Error()))) },
			})
		})
	})

	tbl.On(value.SymAwaitOp, func(k *effect.Continuation, payload value.Value) value.Value {
		other, ok := payload.(*value.Task)
		if !ok {
			return k.Resume(value.Nil)
		}
		return suspendOrResume(task, s, k, func(settle func(value.Value)) {
			other.Await(func(v value.Value, err error) {
				if err != nil {
					settle(value.NewErr(value.String(err.Error())))
					return
				}
				settle(value.NewOk(v))
			})
		})
	})

	tbl.On(value.SymCreateTask, func(k *effect.Continuation, payload value.Value) value.Value {
		fn, ok := payload.(*value.Function)
		if !ok {
			return k.Resume(value.Nil)
		}
		child := value.NewTask(task)
		s.Track(child)
		s.Enqueue(func() { s.RunTask(child, func() value.Value { return fn.Call(value.Nil) }) })
		return k.Resume(child)
	})

	tbl.On(value.SymEventLoopYield, func(k *effect.Continuation, _ value.Value) value.Value {
		s.Enqueue(func() {
			result := k.Resume(value.Nil)
			s.Settle(task, result)
		})
		return Pending
	})

	return tbl
}

// RunTask drives one task's entire script to its first suspension or
// completion, installing this scheduler's concurrency handler table around
// it. The handler's boundary is nil: a task's script is short-lived enough
// that snapshotting its whole environment chain on every suspension, rather
// than stopping the copy at some shared ancestor, is cheap and always
// correct (env.Environment's CopyUpTo/Replace both treat a nil boundary as
// "copy everything up to the root").
func (s *Scheduler) RunTask(task *value.Task, body func() value.Value) {
	tbl := s.Table(task)
	result := effect.Handle(nil, tbl, body)
	if eff, ok := result.(*effect.Object); ok {
		// An effect this table doesn't own escaped the whole task: nothing
		// further up the dynamic extent can handle it, so the task fails.
		task.Fail(unhandledEffectError(eff))
		return
	}
	s.Settle(task, result)
}
