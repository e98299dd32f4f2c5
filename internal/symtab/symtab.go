// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package symtab interns strings into stable, comparable tokens so that
// callers can compare identifiers by pointer identity instead of string
// content. It is a leaf package with no dependency on the value model so
// that both value.Symbol and ast node identifiers can share one interning
// discipline without introducing an import cycle.
package symtab

import "sync"

// Token is a stable handle for an interned name. Two tokens produced by the
// same Table for equal names are the same pointer.
type Token struct {
	name string
}

// Name returns the original interned string.
func (t *Token) Name() string { return t.name }

// Table is a mutex-guarded interning table. The zero value is not usable;
// construct with New.
type Table struct {
	mu sync.Mutex
	m  map[string]*Token
}

// New returns an empty interning table.
func New() *Table {
	return &Table{m: make(map[string]*Token)}
}

// Intern returns the canonical token for name, creating it on first use.
func (t *Table) Intern(name string) *Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tok, ok := t.m[name]; ok {
		return tok
	}
	tok := &Token{name: name}
	t.m[name] = tok
	return tok
}

// Fresh mints a new token that is never returned by Intern for any string,
// used to create hygienic, non-aliasing names (e.g. per-site code-labels).
func (t *Table) Fresh(hint string) *Token {
	return &Token{name: hint}
}
