// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/value"
)

// HandlerFunc is the body installed for one effect tag by `inject`. It
// receives the reified continuation and the effect's payload, and decides
// whether, how many times, and with what value to resume — or to abandon
// the continuation and return a value of its own (spec §4.4: "the handler
// may call k zero, one, or many times").
type HandlerFunc func(k *Continuation, payload value.Value) value.Value

// Table is a symbol-keyed dispatch table, one entry per handled effect
// tag, replacing the teacher's F-bounded type-switch dispatch (Handler[H,R]
// with a Dispatch method per concrete op type): ember's tags are runtime
// value.Symbol values rather than a closed set of Go types, so dispatch
// has to be a map lookup rather than a type switch.
type Table struct {
	Entries map[value.Symbol]HandlerFunc

	// Return, if set, post-processes the body's eventual plain (non-effect)
	// result — `inject { ... , return: fn (v) -> ... }` (spec §4.4).
	Return func(value.Value) value.Value
}

// NewTable returns an empty dispatch table.
func NewTable() *Table {
	return &Table{Entries: make(map[value.Symbol]HandlerFunc)}
}

// On registers fn for tag and returns the table, for chained construction.
func (t *Table) On(tag value.Symbol, fn HandlerFunc) *Table {
	t.Entries[tag] = fn
	return t
}

// Continuation is the reified "rest of the computation" captured at the
// point an effect was raised, from the raise site up to the handler that
// intercepted it (spec §4.4's capture of tag, payload, environment, and
// steps). Resume may be called zero, one, or many times; per spec §8
// property 5, separate calls must observe independent worlds, which is
// what the snapshot/backup dance in Resume provides.
type Continuation struct {
	steps      []Step
	live       *env.Environment
	boundary   *env.Environment
	snapshot   *env.Environment
	redispatch func(value.Value) value.Value

	// trapped is the chain of handler tables this continuation's effect
	// had already escaped, unhandled, before the table that built this
	// Continuation finally caught it. Resume consults it for every new
	// effect a replayed step raises, so an inner handler (e.g. a loop's
	// break/continue table) still gets first refusal even though the
	// computation suspended on something it didn't own in between.
	trapped []trapFrame
}

// Resume replays the captured continuation with v substituted for the
// effect's result, under an environment restored to its state at the raise
// point, then re-enters the same handler table for any effect the replay
// itself raises (deep handler semantics: spec §4.4 "handlers are deep — the
// same handler frame remains installed across a resumed continuation").
func (k *Continuation) Resume(v value.Value) value.Value {
	backup := k.live.CopyUpTo(k.boundary)
	k.live.Replace(k.snapshot, k.boundary)

	result := v
	for i, step := range k.steps {
		out := step(result)
		if sub, isEff := out.(*Object); isEff {
			// A step in the replay itself raised. Give every handler table
			// this continuation's own effect had already escaped a chance
			// to claim it before treating it as a fresh escape of its own —
			// this is what lets a loop's break/continue handler still
			// catch a break/continue raised after the body suspended on
			// something it didn't own (e.g. await, receive).
			resolved := resolveTrapped(k.trapped, sub)
			if stillEff, isEff := resolved.(*Object); isEff {
				stillEff.Steps = append(append([]Step{}, stillEff.Steps...), k.steps[i+1:]...)
				result = stillEff
				break
			}
			result = resolved
			continue
		}
		result = out
	}

	final := k.redispatch(result)
	k.live.Replace(backup, k.boundary)
	return final
}

// Handle runs body and dispatches any effect it raises through tbl,
// installed with boundary as the environment node the handler's own scope
// was forked from (spec §4.4's "parent of the handler's installation
// point"). Equivalent to the `inject` operator.
func Handle(boundary *env.Environment, tbl *Table, body func() value.Value) value.Value {
	return dispatch(boundary, tbl, body())
}

func dispatch(boundary *env.Environment, tbl *Table, result value.Value) value.Value {
	for {
		eff, isEff := result.(*Object)
		if !isEff {
			if tbl.Return != nil {
				return tbl.Return(result)
			}
			return result
		}
		fn, found := tbl.Entries[eff.Tag]
		if !found {
			// Not ours: keep propagating outward unchanged, but remember
			// that this table stood between the raise site and whichever
			// outer table eventually claims it.
			eff.trapped = append(eff.trapped, trapFrame{boundary, tbl})
			return eff
		}
		snap := eff.Live.CopyUpTo(boundary)
		k := &Continuation{steps: eff.Steps, live: eff.Live, boundary: boundary, snapshot: snap, trapped: eff.trapped}
		k.redispatch = func(v value.Value) value.Value { return dispatch(boundary, tbl, v) }
		result = fn(k, eff.Payload)
	}
}

// resolveTrapped tries v (freshly raised, possibly mid-replay) against each
// handler table v's continuation had already escaped, innermost first. The
// first table that owns v's tag gets to handle it, exactly as if it were
// still the nearest lexically enclosing handler — which it is, it just
// happened not to own whatever the computation suspended on in between.
func resolveTrapped(trapped []trapFrame, v value.Value) value.Value {
	for _, tf := range trapped {
		eff, isEff := v.(*Object)
		if !isEff {
			return v
		}
		if _, found := tf.tbl.Entries[eff.Tag]; !found {
			continue
		}
		v = dispatch(tf.boundary, tf.tbl, eff)
	}
	return v
}
