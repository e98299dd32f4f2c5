// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/value"
)

// MaskStack is the dynamic stack of tag sets currently masked by an
// enclosing `mask [...] do ...` block (spec §4.4/§12). It is owned by the
// evaluator, which pushes a frame on entering a mask block and pops it on
// exit; PerformMasked consults it (via RewriteTag) at every raise site so a
// masked effect never shows its real tag to a handler installed strictly
// inside the mask block.
type MaskStack struct {
	frames [][]value.Symbol
}

// NewMaskStack returns an empty stack.
func NewMaskStack() *MaskStack { return &MaskStack{} }

// Push installs a new masked-tag frame.
func (s *MaskStack) Push(tags []value.Symbol) { s.frames = append(s.frames, tags) }

// Pop removes the innermost masked-tag frame.
func (s *MaskStack) Pop() { s.frames = s.frames[:len(s.frames)-1] }

// RewriteTag reports whether tag is currently masked by any active frame.
func (s *MaskStack) RewriteTag(tag value.Symbol) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		for _, t := range s.frames[i] {
			if t.Equal(tag) {
				return true
			}
		}
	}
	return false
}

// Unmask peels one layer of mask-effect wrapping from v if v is a
// mask-effect whose inner tag is one of tags, restoring the original tag
// and payload so handlers outside the mask block see the real effect
// again. Non-mask-effect values, and mask-effects whose inner tag isn't in
// tags, pass through unchanged.
func Unmask(v value.Value, tags []value.Symbol) value.Value {
	eff, ok := v.(*Object)
	if !ok || !eff.Tag.Equal(value.SymMaskEffect) {
		return v
	}
	wrapped, ok := eff.Payload.(*value.List)
	if !ok || wrapped.Len() != 2 {
		return v
	}
	innerTagVal, _ := wrapped.Get(0)
	innerTag, ok := innerTagVal.(value.Symbol)
	if !ok {
		return v
	}
	for _, t := range tags {
		if t.Equal(innerTag) {
			innerPayload, _ := wrapped.Get(1)
			return &Object{Tag: innerTag, Payload: innerPayload, Live: eff.Live, Steps: eff.Steps}
		}
	}
	return v
}

// Wrap rewrites a freshly raised effect as a mask-effect carrying its
// original tag/payload, for an evaluator that found tag masked at the
// raise site.
func Wrap(eff *Object) *Object {
	inner := value.NewList(eff.Tag, eff.Payload)
	return &Object{Tag: value.SymMaskEffect, Payload: inner, Live: eff.Live, Steps: eff.Steps}
}

// PerformMasked is Perform plus the mask rewrite: the tag the raised effect
// actually carries is SymMaskEffect, with the real tag/payload folded into
// its payload, whenever ms currently masks tag.
func PerformMasked(tag value.Symbol, payload value.Value, live *env.Environment, ms *MaskStack) *Object {
	eff := Perform(tag, payload, live)
	if ms != nil && ms.RewriteTag(tag) {
		return Wrap(eff)
	}
	return eff
}

// Escapes reports whether v is an effect whose tag is one of tags — used by
// the `without` operator to fail loudly when a listed effect is left
// unhandled by the body it wraps (spec §4.4/§12).
func Escapes(v value.Value, tags []value.Symbol) (value.Symbol, bool) {
	eff, ok := v.(*Object)
	if !ok {
		return value.Symbol{}, false
	}
	for _, t := range tags {
		if t.Equal(eff.Tag) {
			return eff.Tag, true
		}
	}
	return value.Symbol{}, false
}
