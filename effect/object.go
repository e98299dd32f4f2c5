// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/value"
)

// Step is one link of a reified continuation: "given the value the effect
// eventually resolves to, produce the next value of the computation that
// raised it" (spec §3/§4.4). Composition is by plain slice append, not by
// consing an immutable frame list — an effect Object is single-owner while
// it propagates outward, so mutating its Steps in place is safe and avoids
// an allocation per composition the teacher's immutable Frame chain pays.
type Step = func(value.Value) value.Value

// Object is the reified form of a raised, not-yet-handled effect (spec §3:
// "an effect (tag, payload, captured environment, ordered list of
// continuation steps)"). It implements value.Value as value.KindEffect, so
// an in-flight effect can be passed around, stored, and matched against
// exactly like any other value until a handler intercepts it.
type Object struct {
	Tag     value.Symbol
	Payload value.Value

	// Live is the actual environment chain node active at the raise site,
	// not a copy. A handler that decides to resume mutates this node's
	// contents (via env.Environment.Replace) rather than threading a new
	// environment back through the call stack, because the steps captured
	// in Steps are Go closures that already closed over this exact node.
	Live *env.Environment

	Steps []Step

	// trapped records every handler table this effect has already escaped
	// on its way outward, innermost first, since the one that finally
	// catches it. A deep handler stays installed across a resumed
	// continuation (spec §4.4); without this a table that didn't own the
	// tag that suspended the computation would never get a second look at
	// an effect raised later, during the replay, even though lexically it
	// is still the nearest enclosing handler for that later effect.
	trapped []trapFrame
}

// trapFrame is one handler table an effect escaped through unhandled.
type trapFrame struct {
	boundary *env.Environment
	tbl      *Table
}

// Kind implements value.Value.
func (*Object) Kind() value.Kind { return value.KindEffect }

// Perform constructs a freshly raised effect. live is the environment chain
// node in scope at the raise site; it is captured by reference so a later
// Resume can restore its contents for a multi-shot replay.
func Perform(tag value.Symbol, payload value.Value, live *env.Environment) *Object {
	return &Object{Tag: tag, Payload: payload, Live: live}
}

// FlatMap is the evaluator's single composition primitive (spec §4.4): if v
// is a plain value, k runs immediately; if v is a still-unhandled effect, k
// is appended to its continuation and the (same) effect is re-raised,
// unchanged otherwise. Every operator that sequences two sub-evaluations
// goes through this function.
func FlatMap(v value.Value, k func(value.Value) value.Value) value.Value {
	if eff, ok := v.(*Object); ok {
		eff.Steps = append(eff.Steps, k)
		return eff
	}
	return k(v)
}

// Map is FlatMap under another name. In a general-purpose effect library
// (the teacher's) Map and Bind differ because Map's function cannot itself
// raise a new effect cleanly without a monadic join; here k always returns
// a plain value.Value, so the two operations are the same call. Kept as a
// separate name because call sites read better as Map when k is pure.
func Map(v value.Value, f func(value.Value) value.Value) value.Value { return FlatMap(v, f) }

// Then sequences v before a second computation that ignores v's result.
func Then(v value.Value, next func() value.Value) value.Value {
	return FlatMap(v, func(value.Value) value.Value { return next() })
}
