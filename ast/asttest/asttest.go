// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asttest hand-builds ast.Node trees for tests, standing in for
// the external lexer/parser collaborator the core does not implement
// (spec §1 Non-goals). It also provides a trivial PositionProvider so
// evaluator tests can exercise diagnostic decoration without a real
// source map.
package asttest

import "code.hybscloud.com/ember/ast"

// Builder hands out sequential node ids so hand-built trees don't need to
// track ids manually.
type Builder struct {
	next int64
}

// NewBuilder returns a fresh id-allocating builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) id() int64 {
	b.next++
	return b.next
}

// Node builds a node of kind with the given data and children.
func (b *Builder) Node(kind ast.Kind, data ast.Data, children ...ast.Node) ast.Node {
	return ast.Node{Type: kind, ID: b.id(), Data: data, Children: children}
}

// Positions is a PositionProvider backed by a plain map, filled in by tests
// that care about diagnostic spans; nodes with no entry report !ok.
type Positions map[int64]ast.Span

func (p Positions) Position(id int64) (ast.Span, bool) {
	s, ok := p[id]
	return s, ok
}
