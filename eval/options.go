// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eval implements L5, the recursive-descent evaluator (spec
// §4.3): the compile/execute split, the strict and lazy operator
// families, function call state, and the task/channel/handler wiring
// that drives packages value, env, pattern, effect, and sched together.
package eval

import (
	"log/slog"

	"code.hybscloud.com/ember/modiface"
)

// Options configures a program run (NewProgram, RunScript, RunModule). The teacher library has no
// configuration surface of its own (a pure CPS library takes none); this
// follows the functional-options idiom the rest of the pack uses for its
// CLI-adjacent config structs.
type Options struct {
	logger     *slog.Logger
	prelude    modiface.Prelude
	prototypes modiface.Prototypes
	loader     modiface.ModuleLoader
	maxSteps   int
}

// Option mutates an Options value during construction.
type Option func(*Options)

// WithLogger installs a structured logger on the run's Context. The
// evaluator writes no records to it. The default is slog.Default().
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.logger = l } }

// WithPrelude installs the top-level bindings visible before a module's
// own source runs.
func WithPrelude(p modiface.Prelude) Option { return func(o *Options) { o.prelude = p } }

// WithPrototypes installs the prototype-method table consulted on index
// miss (spec §4.3).
func WithPrototypes(p modiface.Prototypes) Option { return func(o *Options) { o.prototypes = p } }

// WithLoader sets the module loader stored on the run's Context; a loader
// passed to RunModule takes precedence. No expression in the evaluator
// reads it.
func WithLoader(l modiface.ModuleLoader) Option { return func(o *Options) { o.loader = l } }

// WithMaxSteps caps the number of scheduler ready-queue ticks a single
// RunScript or RunModule call will drive before giving up and reporting a
// diagnostic, guarding against a runaway program during tests. Zero (the
// default) means unlimited.
func WithMaxSteps(n int) Option { return func(o *Options) { o.maxSteps = n } }

func newOptions(opts []Option) *Options {
	o := &Options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
