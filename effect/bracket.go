// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "code.hybscloud.com/ember/value"

// Bracket is acquire/use/release (spec §5's channel/task cleanup
// discipline, generalized): release always runs, whether use returns
// normally, raises an effect, or panics with a runtime diagnostic. Grounded
// on the teacher's resource.go Bracket, adapted from its generic Either[E,A]
// result to ember's single value.Value domain — there is no separate error
// channel here, since a failed use is itself represented as a plain
// value.Value (an `error` tag) or an in-flight effect, not a distinct type
// parameter.
func Bracket(acquire func() value.Value, release func(value.Value), use func(value.Value) value.Value) value.Value {
	resource := acquire()
	defer release(resource)
	return use(resource)
}

// OnError runs cleanup only when body's result is a record tagged `error`
// (the convention the try/catch surface uses), leaving any other result,
// including an in-flight effect, untouched.
func OnError(body value.Value, isError func(value.Value) bool, cleanup func(value.Value)) value.Value {
	return FlatMap(body, func(v value.Value) value.Value {
		if isError(v) {
			cleanup(v)
		}
		return v
	})
}
