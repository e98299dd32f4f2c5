// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/modiface"
	"code.hybscloud.com/ember/sched"
	"code.hybscloud.com/ember/value"
)

// Program is a compiled AST, ready to drive without recompiling its tree —
// the execute half of the compile/execute split (spec §2) lifted to the
// whole-program level. Building one is cheap to reuse across repeated
// runs with different Options.
type Program struct {
	expr Expr
	file string
}

// NewProgram compiles tree once into a Program. provider decorates any
// diagnostic the compiled Expr raises with source positions; it may be
// nil (hand-built trees commonly have none).
func NewProgram(tree ast.Node, provider ast.PositionProvider, file string, opts ...Option) *Program {
	o := newOptions(opts)
	c := &compiler{file: file, pos: provider, opts: o}
	return &Program{expr: Compile(tree, c), file: file}
}

// newRootContext builds the Context a fresh program run starts from: a
// root task tracked by a fresh scheduler, the prelude's bindings installed
// readonly at the top of a new environment chain, and an exports record a
// `export` binding populates as the program runs.
func newRootContext(o *Options, loader modiface.ModuleLoader) (*Context, *sched.Scheduler, *value.Task) {
	s := sched.New()
	root := value.NewTask(nil)
	s.Track(root)

	rootEnv := env.New()
	if o.prelude != nil {
		for sym, v := range o.prelude.Bindings() {
			_ = rootEnv.AddReadonly(sym, v)
		}
	}

	// An explicit loader argument (RunModule's own parameter) wins over
	// WithLoader, which exists mainly so RunScript callers can still reach
	// a loader-dependent prelude function without threading one through
	// RunScript's signature (which has none — scripts don't export).
	if loader == nil {
		loader = o.loader
	}

	ctx := &Context{
		Env:        rootEnv,
		Masks:      effect.NewMaskStack(),
		sched:      s,
		task:       root,
		logger:     o.logger,
		prototypes: o.prototypes,
		loader:     loader,
		prelude:    o.prelude,
		exports:    value.NewRecord(),
	}
	return ctx, s, root
}

// drive runs body to completion under a fresh scheduler rooted at task,
// recovering any raised diagnostic (eval's abrupt-failure path, see
// panic.go) as a single fatal error for the whole run, matching the
// language's own state machine (spec §4.3: a diagnostic aborts evaluation,
// it does not resume). A deadlock (every task parked, nothing left
// runnable) and a cancelled root task are reported as runtime diagnostics
// too, since both mean the run never produced a value.
func drive(file string, ctx *Context, s *sched.Scheduler, root *value.Task, maxSteps int, body func() value.Value) (result value.Value, diags []*diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diags = []*diag.Diagnostic{recoverDiagnostic(r)}
			result = value.Nil
		}
	}()

	s.RunTask(root, body)
	if exhausted := s.RunLimited(maxSteps); exhausted {
		return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrRuntime, file, diag.Pos{}, "program exceeded its maximum step budget (%d)", maxSteps)}
	}

	if root.Cancelled() {
		return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrRuntime, file, diag.Pos{}, "program was cancelled before completion")}
	}
	if !root.Done() {
		return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrRuntime, file, diag.Pos{}, "program deadlocked: no runnable task remains")}
	}
	rv, ferr := root.Result()
	if ferr != nil {
		if d, ok := ferr.(*diag.Diagnostic); ok {
			return value.Nil, []*diag.Diagnostic{d}
		}
		return value.Nil, []*diag.Diagnostic{diag.New(diag.ErrRuntime, file, diag.Pos{}, "%s", ferr.Error())}
	}
	return rv, nil
}

// RunScript drives p as a script (spec §6: "a script returns its last
// expression's value"): no loader, no export collection.
func (p *Program) RunScript(opts ...Option) (value.Value, []*diag.Diagnostic) {
	o := newOptions(opts)
	ctx, s, root := newRootContext(o, nil)
	return drive(p.file, ctx, s, root, o.maxSteps, func() value.Value { return p.expr(ctx) })
}

// RunModule drives p as a module: `export` bindings populate ctx.exports,
// which is what this returns in place of the body's own value.
// Non-exported declarations are not included, and no default-export entry
// is added.
func (p *Program) RunModule(loader modiface.ModuleLoader, opts ...Option) (value.Value, []*diag.Diagnostic) {
	o := newOptions(opts)
	ctx, s, root := newRootContext(o, loader)
	result, diags := drive(p.file, ctx, s, root, o.maxSteps, func() value.Value { return p.expr(ctx) })
	if diags != nil {
		return result, diags
	}
	return ctx.exports, nil
}
