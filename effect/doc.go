// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package effect implements the effect/continuation machinery of spec
// §4.4: reified effect objects, deep handler dispatch with multi-shot
// resumption, and mask/without effect-tag rewriting.
//
// This package is grounded on the teacher library hayabusa-cloud-kont's
// cont.go/monad.go/effect.go/frame.go/trampoline.go/bridge.go, specialized
// from the teacher's generic Cont[R, A]/F-bounded Op[O,A]/Handler[H,R] down
// to a single concrete type: ember has exactly one value type
// (value.Value), so R=A=Value everywhere a general-purpose library would
// need a type parameter. That collapse also merges what the teacher keeps
// as three distinct operations (Bind, Map, Then) into one: once k always
// both consumes and produces value.Value, Bind(m, k) and Map(m, k) are the
// same call.
//
// Kept from the teacher: the Handler/Dispatch vocabulary (a HandlerFunc
// returns the single value the handled computation produces) and the
// trampoline-style dispatch loop.
//
// Deliberately NOT ported: the teacher's frame/marker object pools
// (pool.go, marker_pool.go) and Affine one-shot wrapper (affine.go). Those
// assume a continuation is resumed at most once and recycle its backing
// memory immediately after that single resume. Spec §4.4/§8 property 5
// requires multi-shot resumption with observably independent worlds per
// call, which an aggressively pooled/recycled continuation cannot provide
// — a second Resume would read a zeroed, reused buffer. Continuation here
// keeps every captured step and environment snapshot alive for as long as
// the enclosing handler frame is, and env.Environment's CopyUpTo/Replace
// pair (not object pooling) is what makes repeated resumption cheap.
package effect
