// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import "code.hybscloud.com/ember/effect"
import "code.hybscloud.com/ember/value"

// sequence evaluates exprs left to right under ctx, composing every step
// through effect.FlatMap so an effect raised by any of them carries the
// rest of the sequence as its continuation, then calls k with the fully
// resolved values. This is the one place the strict operator families and
// every lazy operator that evaluates more than one child funnel through,
// keeping the CPS threading in one spot instead of re-implemented per
// operator.
func sequence(ctx *Context, exprs []Expr, k func(vals []value.Value) value.Value) value.Value {
	return sequenceFrom(ctx, exprs, 0, make([]value.Value, len(exprs)), k)
}

func sequenceFrom(ctx *Context, exprs []Expr, i int, acc []value.Value, k func([]value.Value) value.Value) value.Value {
	if i == len(exprs) {
		return k(acc)
	}
	v := exprs[i](ctx)
	return effect.FlatMap(v, func(rv value.Value) value.Value {
		acc[i] = rv
		return sequenceFrom(ctx, exprs, i+1, acc, k)
	})
}
