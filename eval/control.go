// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/value"
)

var (
	breakKey    = value.Intern("break")
	continueKey = value.Intern("continue")
)

// forkIterContext forks ctx into a fresh child scope with `break`/`continue`
// bound to callables that raise the loop-control effects runGuarded's
// handler table catches (spec §4.3: "block... installs break/continue
// handlers"). Every block/loop/while/for-loop iteration enters through this
// one helper, so the two control names are always in scope exactly where
// the spec says they are and nowhere else.
func forkIterContext(ctx *Context) *Context {
	e := ctx.Env.Fork()
	iter := ctx.fork(e)
	_ = e.AddReadonly(breakKey, &value.Function{Call: func(v value.Value) value.Value {
		return effect.PerformMasked(value.SymBreak, v, iter.Env, iter.Masks)
	}})
	_ = e.AddReadonly(continueKey, &value.Function{Call: func(v value.Value) value.Value {
		return effect.PerformMasked(value.SymContinue, v, iter.Env, iter.Masks)
	}})
	return iter
}

// controlKind distinguishes the two signals a block/loop body's installed
// break/continue handlers produce.
type controlKind uint8

const (
	controlBreak controlKind = iota
	controlContinue
)

// controlSignal is the internal value a break/continue handler returns
// in place of calling back into the continuation: it never escapes this
// package. Kind is borrowed from value.KindNull for the same reason
// sched.pendingMarker borrows it — this is bookkeeping, not one of the
// closed runtime value kinds spec §3 enumerates.
type controlSignal struct {
	kind    controlKind
	payload value.Value
}

func (controlSignal) Kind() value.Kind { return value.KindNull }

func asControl(v value.Value) (controlSignal, bool) {
	c, ok := v.(controlSignal)
	return c, ok
}

// breakContinueTable installs handlers that turn a raised break/continue
// effect into a controlSignal rather than resuming — the block/loop
// driver inspects the signal itself instead of letting dispatch's default
// "no Return, return result" path hand back a bare effect.
func breakContinueTable() *effect.Table {
	return effect.NewTable().
		On(value.SymBreak, func(k *effect.Continuation, payload value.Value) value.Value {
			return controlSignal{kind: controlBreak, payload: payload}
		}).
		On(value.SymContinue, func(k *effect.Continuation, payload value.Value) value.Value {
			return controlSignal{kind: controlContinue, payload: payload}
		})
}

// runGuarded runs body under a fresh break/continue handler table scoped
// to ctx.Env, returning either a controlSignal or body's plain/effect
// result unchanged.
func runGuarded(ctx *Context, body func() value.Value) value.Value {
	return effect.Handle(ctx.Env, breakContinueTable(), body)
}
