// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package value implements the closed set of runtime values for the ember
// evaluator: null, boolean, number, string, symbol, list, record, channel,
// task, function, handler, and prototyped values. The effect value kind is
// declared here (Kind) but its concrete representation lives in package
// effect, which depends on value and env — keeping this package a leaf with
// no dependency on the continuation machinery.
package value

// Kind tags the closed sum of runtime value types.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSymbol
	KindList
	KindRecord
	KindChannel
	KindTask
	KindFunction
	KindHandler
	KindPrototyped
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindChannel:
		return "channel"
	case KindTask:
		return "task"
	case KindFunction:
		return "function"
	case KindHandler:
		return "handler"
	case KindPrototyped:
		return "prototyped"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value. Kind lets callers switch on
// the closed tag set without a type switch over every concrete Go type.
type Value interface {
	Kind() Kind
}

// Null is the sole null value. Use the Nil singleton rather than
// constructing Null{} directly so that == comparisons are trivially valid.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// Nil is the canonical null value.
var Nil Value = Null{}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// True and False are the canonical boolean values.
var (
	True  Value = Bool(true)
	False Value = Bool(false)
)

// FromBool converts a Go bool to the canonical Value.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Number is an IEEE-754 double, the sole numeric type in the language.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// String is an immutable text value.
type String string

func (String) Kind() Kind { return KindString }
