// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"math"

	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/value"
)

// strictBinop is a pure function of two already-evaluated operands (spec
// §4.3's strict operator family). Type errors are reported by raising
// through c/pos rather than returning (value, error): every call site is
// already inside a compiled Expr's dynamic extent, where raise is the
// established idiom (see panic.go).
type strictBinop func(c *compiler, pos diag.Pos, a, b value.Value) value.Value

func numOp(name string, f func(a, b float64) float64) strictBinop {
	return func(c *compiler, pos diag.Pos, a, b value.Value) value.Value {
		an, aok := a.(value.Number)
		bn, bok := b.(value.Number)
		if !aok || !bok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "operator %q requires two numbers", name))
		}
		return value.Number(f(float64(an), float64(bn)))
	}
}

func cmpOp(name string, f func(a, b float64) bool) strictBinop {
	return func(c *compiler, pos diag.Pos, a, b value.Value) value.Value {
		an, aok := a.(value.Number)
		bn, bok := b.(value.Number)
		if !aok || !bok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "operator %q requires two numbers", name))
		}
		return value.FromBool(f(float64(an), float64(bn)))
	}
}

// addValues implements overloaded `+`: number+number arithmetic,
// string+string concatenation, channel+channel a race between the two
// channels' next receive (spec §4.3). Compound assignment calls it too,
// so `+=` reuses the exact same overload rule.
func addValues(c *compiler, pos diag.Pos, a, b value.Value) value.Value {
	switch av := a.(type) {
	case value.Number:
		bv, ok := b.(value.Number)
		if !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "cannot add number and %s", b.Kind()))
		}
		return av + bv
	case value.String:
		bv, ok := b.(value.String)
		if !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "cannot add string and %s", b.Kind()))
		}
		return av + bv
	case *value.Channel:
		bv, ok := b.(*value.Channel)
		if !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "cannot add channel and %s", b.Kind()))
		}
		return raceChannels(av, bv)
	default:
		raise(diag.New(diag.ErrRuntime, c.file, pos, "cannot add %s and %s", a.Kind(), b.Kind()))
		return nil
	}
}

// raceChannels returns a fresh channel carrying whichever of a or b
// delivers a value first (spec §4.3's "channel+channel" addition
// overload). Both channels are raced via receive; the loser's value, if
// it ever arrives, is simply dropped — there is no way to "return" a value
// once the race is decided, matching the source's fire-and-forget race.
func raceChannels(a, b *value.Channel) *value.Channel {
	out := value.NewChannel("race")
	settled := false
	settle := func(v value.Value) {
		if settled {
			return
		}
		settled = true
		out.Send(v)
	}
	a.Receive(value.Receiver{Resolve: settle, Reject: func(error) {}})
	b.Receive(value.Receiver{Resolve: settle, Reject: func(error) {}})
	return out
}

var strictBinops = map[string]strictBinop{
	"+": addValues,
	"-": numOp("-", func(a, b float64) float64 { return a - b }),
	"*": numOp("*", func(a, b float64) float64 { return a * b }),
	"/": numOp("/", func(a, b float64) float64 { return a / b }),
	"%": numOp("%", func(a, b float64) float64 { return math.Mod(a, b) }),
	"^": numOp("^", func(a, b float64) float64 { return math.Pow(a, b) }),

	"<":  cmpOp("<", func(a, b float64) bool { return a < b }),
	"<=": cmpOp("<=", func(a, b float64) bool { return a <= b }),
	">":  cmpOp(">", func(a, b float64) bool { return a > b }),
	">=": cmpOp(">=", func(a, b float64) bool { return a >= b }),

	"==":  func(_ *compiler, _ diag.Pos, a, b value.Value) value.Value { return value.FromBool(value.Identical(a, b)) },
	"!=":  func(_ *compiler, _ diag.Pos, a, b value.Value) value.Value { return value.FromBool(!value.Identical(a, b)) },
	"===": func(_ *compiler, _ diag.Pos, a, b value.Value) value.Value { return value.FromBool(value.DeepEqual(a, b)) },
	"!==": func(_ *compiler, _ diag.Pos, a, b value.Value) value.Value { return value.FromBool(!value.DeepEqual(a, b)) },

	"in": func(c *compiler, pos diag.Pos, a, b value.Value) value.Value {
		switch bv := b.(type) {
		case *value.List:
			for _, item := range bv.Items {
				if value.Identical(item, a) || value.DeepEqual(item, a) {
					return value.True
				}
			}
			return value.False
		case *value.Record:
			_, ok := bv.Get(a)
			return value.FromBool(ok)
		default:
			raise(diag.New(diag.ErrRuntime, c.file, pos, "`in` requires a list or record right operand"))
			return nil
		}
	},
}

// strictUnop is a pure function of one already-evaluated operand.
type strictUnop func(c *compiler, pos diag.Pos, v value.Value) value.Value

var strictUnops = map[string]strictUnop{
	"-": func(c *compiler, pos diag.Pos, v value.Value) value.Value {
		n, ok := v.(value.Number)
		if !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "unary `-` requires a number"))
		}
		return -n
	},
	"+": func(c *compiler, pos diag.Pos, v value.Value) value.Value {
		if _, ok := v.(value.Number); !ok {
			raise(diag.New(diag.ErrRuntime, c.file, pos, "unary `+` requires a number"))
		}
		return v
	},
	"not": func(c *compiler, pos diag.Pos, v value.Value) value.Value {
		return value.FromBool(!mustBool(c, pos, v))
	},
}

// awaitTask raises the await effect used by unary `await` (spec §4.5). It
// needs the live environment for the effect's snapshot, so it is called
// directly by compileUnaryStrict rather than living in strictUnops (whose
// entries are pure value->value functions with no environment access).
func awaitTask(ctx *Context, c *compiler, pos diag.Pos, v value.Value) value.Value {
	t, ok := v.(*value.Task)
	if !ok {
		raise(diag.New(diag.ErrRuntime, c.file, pos, "`await` requires a task"))
	}
	return effect.PerformMasked(value.SymAwaitOp, t, ctx.Env, ctx.Masks)
}

// mustBool requires v to be a Bool, raising ErrRuntime otherwise — used at
// every point the language requires a condition (if/while/and/or/not).
func mustBool(c *compiler, pos diag.Pos, v value.Value) bool {
	b, ok := v.(value.Bool)
	if !ok {
		raise(diag.New(diag.ErrRuntime, c.file, pos, "condition must be a boolean, got %s", v.Kind()))
	}
	return bool(b)
}
