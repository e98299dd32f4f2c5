// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package env implements the lexically scoped environment model of spec
// §4.1: readonly/mutable bindings per node, forkable child scopes, and the
// copyUpTo/replace pair that gives multi-shot continuations (package
// effect) observationally independent worlds without making every
// environment persistent.
package env

import (
	"fmt"

	"code.hybscloud.com/ember/value"
)

// Environment is one node in a parent-linked scope chain. A key appears in
// at most one of ro/mut per node (spec §3 invariant).
type Environment struct {
	parent *Environment

	ro     map[value.Symbol]value.Value
	roKeys []value.Symbol

	mut     map[value.Symbol]value.Value
	mutKeys []value.Symbol
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{}
}

// Fork creates a child scope of e. Used at block entry and at function call
// time to fork the definition-site environment (spec §4.3).
func (e *Environment) Fork() *Environment {
	return &Environment{parent: e}
}

// Parent returns e's enclosing scope, or nil at the root.
func (e *Environment) Parent() *Environment { return e.parent }

// Get returns the nearest binding for k, or (nil, false) (spec §4.1).
func (e *Environment) Get(k value.Symbol) (value.Value, bool) {
	for n := e; n != nil; n = n.parent {
		if v, ok := n.ro[k]; ok {
			return v, true
		}
		if v, ok := n.mut[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// HasReadonly reports whether the nearest enclosing binding for k is
// readonly. Panics is avoided: an absent key reports false.
func (e *Environment) HasReadonly(k value.Symbol) bool {
	for n := e; n != nil; n = n.parent {
		if _, ok := n.ro[k]; ok {
			return true
		}
		if _, ok := n.mut[k]; ok {
			return false
		}
	}
	return false
}

// Set mutates the nearest mutable binding for k. Fails if the nearest
// binding is readonly or absent (spec §4.1).
func (e *Environment) Set(k value.Symbol, v value.Value) error {
	for n := e; n != nil; n = n.parent {
		if _, ok := n.ro[k]; ok {
			return fmt.Errorf("env: cannot assign to immutable variable %q", k.Name())
		}
		if _, ok := n.mut[k]; ok {
			n.mut[k] = v
			return nil
		}
	}
	return fmt.Errorf("env: undeclared assignment target %q", k.Name())
}

// Add introduces a new mutable binding at e's own node. Fails if k already
// exists at this node (spec §4.1).
func (e *Environment) Add(k value.Symbol, v value.Value) error {
	if e.hasLocal(k) {
		return fmt.Errorf("env: %q already declared in this scope", k.Name())
	}
	if e.mut == nil {
		e.mut = make(map[value.Symbol]value.Value)
	}
	e.mut[k] = v
	e.mutKeys = append(e.mutKeys, k)
	return nil
}

// AddReadonly introduces a new readonly binding at e's own node.
func (e *Environment) AddReadonly(k value.Symbol, v value.Value) error {
	if e.hasLocal(k) {
		return fmt.Errorf("env: %q already declared in this scope", k.Name())
	}
	if e.ro == nil {
		e.ro = make(map[value.Symbol]value.Value)
	}
	e.ro[k] = v
	e.roKeys = append(e.roKeys, k)
	return nil
}

func (e *Environment) hasLocal(k value.Symbol) bool {
	if _, ok := e.ro[k]; ok {
		return true
	}
	_, ok := e.mut[k]
	return ok
}

// Names returns every name visible from e, nearest scope first, for
// closest-name-hint diagnostics (spec §7).
func (e *Environment) Names() []string {
	var out []string
	for n := e; n != nil; n = n.parent {
		for _, k := range n.roKeys {
			out = append(out, k.Name())
		}
		for _, k := range n.mutKeys {
			out = append(out, k.Name())
		}
	}
	return out
}

func cloneValueMap(src map[value.Symbol]value.Value) map[value.Symbol]value.Value {
	if src == nil {
		return nil
	}
	dst := make(map[value.Symbol]value.Value, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneSymbolSlice(src []value.Symbol) []value.Symbol {
	if src == nil {
		return nil
	}
	dst := make([]value.Symbol, len(src))
	copy(dst, src)
	return dst
}

// CopyUpTo returns a fresh chain of nodes, sharing keys/values by value,
// terminating at boundary by identity (spec §4.1). Used to snapshot the
// environment an effect closes over at raise time.
func (e *Environment) CopyUpTo(boundary *Environment) *Environment {
	if e == boundary || e == nil {
		return e
	}
	return &Environment{
		parent:  e.parent.CopyUpTo(boundary),
		ro:      cloneValueMap(e.ro),
		roKeys:  cloneSymbolSlice(e.roKeys),
		mut:     cloneValueMap(e.mut),
		mutKeys: cloneSymbolSlice(e.mutKeys),
	}
}

// Replace overwrites, in place, the contents of e's chain down to
// (excluding) boundary from the corresponding nodes of other (spec §4.1).
// Node identity is preserved — only map contents are replaced — so that
// closures holding a reference to one of e's nodes observe the restored
// bindings. other is normally a snapshot produced earlier by CopyUpTo with
// the same boundary.
func (e *Environment) Replace(other, boundary *Environment) {
	if e == boundary || e == nil || other == nil {
		return
	}
	e.ro = cloneValueMap(other.ro)
	e.roKeys = cloneSymbolSlice(other.roKeys)
	e.mut = cloneValueMap(other.mut)
	e.mutKeys = cloneSymbolSlice(other.mutKeys)
	if e.parent != boundary {
		e.parent.Replace(other.parent, boundary)
	}
}
