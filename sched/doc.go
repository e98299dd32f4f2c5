// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sched implements the single-threaded cooperative scheduler of
// spec §5: one ready queue, no goroutines, no locks. A task suspends at
// three kinds of point — await of an unfinished task, a receive with no
// pending value, and an event-loop-yield effect — and this package is what
// resumes each of them later, in FIFO ready-queue order. A send never
// suspends. The evaluator raises no event-loop-yield of its own: loop
// back-edges and function entry do not yield.
//
// Grounded on the teacher library hayabusa-cloud-kont's step.go, which
// drives a Cont to completion or a single pending Suspension and hands the
// caller an explicit resumption handle rather than blocking a goroutine.
// ember reuses that idea at the task-scheduling layer, but the resumption
// handle it drives is package effect's own Continuation — the same
// multi-shot-capable mechanism user-level `inject` handlers use — rather
// than a second, parallel stepping type. A task's top-level suspension
// happens to be resumed at most once per registration, but nothing in
// Continuation assumes that; scheduling is simply one more consumer of the
// same primitive.
package sched
