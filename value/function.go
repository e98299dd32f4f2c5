// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// CallSite carries the call-site metadata the evaluator attaches to a
// function value at the `function` expression's compile step (spec §2:
// "Compile-time captures file identity, source positions, and precomputed
// error factories").
type CallSite struct {
	File    string
	NodeID  int64
	IsTop   bool // data.isTopFunction: outermost of a curried chain, binds `self`
}

// Function is a callable value (spec §3). Call is supplied by package eval
// at compile time; value itself never evaluates anything, keeping this
// package free of a dependency on env/pattern/effect.
type Function struct {
	Name string
	Site CallSite
	Call func(arg Value) Value
}

func (*Function) Kind() Kind { return KindFunction }

// Handler wraps a Function earmarked as an effect interceptor (spec §3),
// i.e. the value produced by evaluating one arm of an `inject` record.
type Handler struct {
	Tag Symbol
	Fn  *Function
}

func (*Handler) Kind() Kind { return KindHandler }

// Prototyped pairs a value with an ordered list of records used as
// method-lookup prototypes (spec §3), consulted by `index` on lookup miss.
type Prototyped struct {
	Base   Value
	Protos []*Record
}

func (*Prototyped) Kind() Kind { return KindPrototyped }

// Lookup searches p's prototype chain (in order) for key, returning the
// first match.
func (p *Prototyped) Lookup(key Value) (Value, bool) {
	for _, proto := range p.Protos {
		if v, ok := proto.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}
