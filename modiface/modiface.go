// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package modiface declares the external collaborators the core consumes
// but does not implement (spec §1 Non-goals: module resolution and file
// I/O, the surface standard library). eval depends on these interfaces
// only; modiface/modtest supplies hand-built test doubles.
package modiface

import "code.hybscloud.com/ember/value"

// ModuleRequest is the `{name, from}` pair a module-resolving import
// expression asks the loader to resolve (spec §6).
type ModuleRequest struct {
	Name string
	From string
}

// ModuleLoader resolves an import request to the module's evaluated
// export record. The core never reads a file itself.
type ModuleLoader interface {
	Load(req ModuleRequest) (*value.Record, error)
}

// The record Load returns carries its shape under one of these three
// well-known keys (spec §6's "getModule returns one of {script: Value},
// {module: Record, default?: Value}, or {buffer: bytes}", folded into a
// single concrete Go return type): ShapeScript pairs with an
// already-computed Value, ShapeModule with the module's export Record
// (plus an optional DefaultKey entry), ShapeBuffer with unparsed source
// text as a value.String for the core to hand to an ast.Parser itself.
var (
	ShapeScript = value.Intern("script")
	ShapeModule = value.Intern("module")
	ShapeBuffer = value.Intern("buffer")
	DefaultKey  = value.SymDefault
)

// Prelude supplies the bindings visible in every module's top-level scope
// before its own source runs (e.g. global functions like `channel`,
// `print`), another external collaborator per §1/§6.
type Prelude interface {
	Bindings() map[value.Symbol]value.Value
}

// Prototypes supplies the ordered prototype-method records consulted on
// an index miss for a given value.Kind (spec §4.3's "prototype-method
// table"), e.g. the list/string/record/result prototypes the surface
// stdlib defines. The core only needs to look one up; building the table
// itself is out of scope.
type Prototypes interface {
	For(k value.Kind) []*value.Record
}
