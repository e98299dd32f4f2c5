// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"log/slog"

	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/modiface"
	"code.hybscloud.com/ember/sched"
	"code.hybscloud.com/ember/value"
)

// Context is the execute-time state threaded through a compiled closure
// (spec §2: "execute-time carries the environment"). It is extended, not
// replaced, as evaluation descends — a fresh Context is derived per scope
// fork rather than mutating a shared one, so sibling branches never see
// each other's environment.
type Context struct {
	Env   *env.Environment
	Masks *effect.MaskStack

	sched      *sched.Scheduler
	task       *value.Task
	logger     *slog.Logger
	prototypes modiface.Prototypes
	loader     modiface.ModuleLoader
	prelude    modiface.Prelude
	exports    *value.Record
}

// fork returns a Context sharing every field except Env, which is e's
// fresh child scope — used at block/function/loop-iteration entry.
func (c *Context) fork(e *env.Environment) *Context {
	cp := *c
	cp.Env = e
	return &cp
}

// compiler holds compile-time state: file identity and the position
// provider used to decorate diagnostics (spec §2: "compile-time captures
// file identity, source positions, and precomputed error factories").
type compiler struct {
	file string
	pos  ast.PositionProvider
	opts *Options
}

// posOf looks up id's source span, defaulting to the zero span if the
// position provider has none (hand-built trees in tests commonly don't).
func (c *compiler) posOf(id int64) diag.Pos {
	if c.pos == nil {
		return diag.Pos{}
	}
	s, ok := c.pos.Position(id)
	if !ok {
		return diag.Pos{}
	}
	return diag.Pos{Start: s.Start, End: s.End}
}
