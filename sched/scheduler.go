// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/value"
)

// pendingMarker is the internal sentinel a task's outermost handler returns
// when it suspended rather than produced a final value. It is never
// constructed or observed outside this package; its Kind is borrowed from
// value.KindNull purely to satisfy the value.Value interface; this is a
// deliberate shortcut since spec §3 fixes the Kind
// enumeration and scheduling plumbing is not itself one of the listed
// value kinds.
type pendingMarker struct{}

func (pendingMarker) Kind() value.Kind { return value.KindNull }

// Pending is returned by a task's top-level run when it suspended instead
// of completing.
var Pending value.Value = pendingMarker{}

// IsPending reports whether v is the scheduler's suspension sentinel.
func IsPending(v value.Value) bool {
	_, ok := v.(pendingMarker)
	return ok
}

// Scheduler is the single ready queue driving every task in a program run.
// Tasks never run concurrently; Run pops one ready thunk at a time and
// calls it to completion (which may itself enqueue further thunks).
type Scheduler struct {
	ready []func()
	tasks []*value.Task
}

// New returns an empty scheduler.
func New() *Scheduler { return &Scheduler{} }

// Enqueue schedules thunk to run on a future tick.
func (s *Scheduler) Enqueue(thunk func()) { s.ready = append(s.ready, thunk) }

// Track registers t so AllDone can observe overall completion.
func (s *Scheduler) Track(t *value.Task) { s.tasks = append(s.tasks, t) }

// Run drains the ready queue, running each thunk to completion in FIFO
// order, until nothing is left runnable.
func (s *Scheduler) Run() {
	for len(s.ready) > 0 {
		next := s.ready[0]
		s.ready = s.ready[1:]
		next()
	}
}

// RunLimited behaves like Run but stops after at most max ticks (max <= 0
// means unlimited), reporting whether the ready queue was still non-empty
// when it stopped — the runaway-program guard behind eval's WithMaxSteps.
func (s *Scheduler) RunLimited(max int) (exhausted bool) {
	if max <= 0 {
		s.Run()
		return false
	}
	for i := 0; i < max && len(s.ready) > 0; i++ {
		next := s.ready[0]
		s.ready = s.ready[1:]
		next()
	}
	return len(s.ready) > 0
}

// AllDone reports whether every tracked task has completed or been
// cancelled and the ready queue is empty — i.e. the program has nothing
// left to do. False with an empty ready queue indicates deadlock: some
// task is parked on a channel or task that will never settle.
func (s *Scheduler) AllDone() bool {
	for _, t := range s.tasks {
		if !t.Done() && !t.Cancelled() {
			return false
		}
	}
	return true
}

// Deadlocked reports whether the ready queue is empty while some tracked
// task is still neither done nor cancelled.
func (s *Scheduler) Deadlocked() bool { return len(s.ready) == 0 && !s.AllDone() }

// Settle records the final value of a task's top-level run, unless result
// is itself the pending sentinel (the task suspended again before
// finishing; its own resumption closure was wired by whatever suspendOr
// Resume call produced this result).
func (s *Scheduler) Settle(task *value.Task, result value.Value) {
	if IsPending(result) {
		return
	}
	task.Complete(result)
}

// suspendOrResume is the shared shape behind the await and receive
// effects: register arranges for settle to be invoked with the eventual
// value, either synchronously (a value or task result was already
// available) or later from a different task's action. If register settles
// synchronously, suspendOrResume resumes k immediately and returns that
// result; otherwise it returns Pending and leaves resumption to whichever
// later call invokes settle.
func suspendOrResume(task *value.Task, s *Scheduler, k *effect.Continuation, register func(settle func(value.Value))) value.Value {
	insideRegister := true
	var (
		haveSynchronous bool
		synchronousVal  value.Value
	)
	register(func(v value.Value) {
		if insideRegister {
			haveSynchronous = true
			synchronousVal = v
			return
		}
		result := k.Resume(v)
		s.Settle(task, result)
	})
	insideRegister = false
	if haveSynchronous {
		return k.Resume(synchronousVal)
	}
	return Pending
}
