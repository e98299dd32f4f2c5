// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import "github.com/google/uuid"

// Task is a handle to an asynchronous unit of work (spec §3). Tasks form a
// parent-child tree so cancelling a parent cancels its children (spec §4.5,
// §5). Task never runs on its own goroutine: it is a pure bookkeeping
// record driven by package sched's cooperative scheduler.
type Task struct {
	ID       uuid.UUID
	Parent   *Task
	Children []*Task

	done      bool
	cancelled bool
	result    Value
	failure   error

	cancelHooks []func()
	awaiters    []func(Value, error)
}

func (*Task) Kind() Kind { return KindTask }

// NewTask creates a task with the given parent (nil for a root task) and
// registers it as one of the parent's children.
func NewTask(parent *Task) *Task {
	t := &Task{ID: uuid.New(), Parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, t)
	}
	return t
}

// Done reports whether the task has completed (successfully or not).
func (t *Task) Done() bool { return t.done }

// Cancelled reports whether Cancel has been called on this task.
func (t *Task) Cancelled() bool { return t.cancelled }

// OnCancel registers a hook to run exactly once when the task is cancelled
// (at once if it already is). Cancel runs the hooks before it cancels the
// task's children.
func (t *Task) OnCancel(f func()) {
	if t.cancelled {
		f()
		return
	}
	t.cancelHooks = append(t.cancelHooks, f)
}

// Cancel fires the task's cancel event exactly once, then recursively
// cancels every child (spec §4.5: "cancelling a task fires its cancel
// event once; the async handler forwards cancellation to each registered
// child").
func (t *Task) Cancel() {
	if t.cancelled {
		return
	}
	t.cancelled = true
	hooks := t.cancelHooks
	t.cancelHooks = nil
	for _, h := range hooks {
		h()
	}
	for _, c := range t.Children {
		c.Cancel()
	}
}

// Complete resolves the task with a value, waking every awaiter.
func (t *Task) Complete(v Value) {
	if t.done {
		return
	}
	t.done = true
	t.result = v
	t.notify()
}

// Fail resolves the task with a failure, waking every awaiter.
func (t *Task) Fail(err error) {
	if t.done {
		return
	}
	t.done = true
	t.failure = err
	t.notify()
}

func (t *Task) notify() {
	awaiters := t.awaiters
	t.awaiters = nil
	for _, a := range awaiters {
		a(t.result, t.failure)
	}
}

// Await registers f to run with the task's result once it completes, or
// invokes it immediately if the task is already done.
func (t *Task) Await(f func(Value, error)) {
	if t.done {
		f(t.result, t.failure)
		return
	}
	t.awaiters = append(t.awaiters, f)
}

// Result returns the task's materialized value and failure, valid once
// Done reports true.
func (t *Task) Result() (Value, error) {
	return t.result, t.failure
}
