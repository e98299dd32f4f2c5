// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ast declares the closed set of syntax-tree node kinds the
// evaluator dispatches on (spec §4.3) and the external-interface shapes
// §6 names: Node, PositionProvider, and the data payload fields the core
// actually inspects (data.value, data.name, data.isTopFunction,
// data.cause). Producing a Node tree from source text is a Non-goal
// (lexing/parsing is an external collaborator); this package only fixes
// the vocabulary the collaborator must emit.
package ast

import "code.hybscloud.com/ember/value"

// Kind is the closed set of node types the evaluator recognises (spec §4.3).
// Lexing/parsing, module resolution, and the surface stdlib are Non-goals;
// Kind nonetheless belongs to the core because the evaluator's dispatch
// table is defined entirely in terms of it.
type Kind uint16

const (
	// Literals and references.
	KindLiteral Kind = iota // Data.Value holds null/bool/number/string/symbol
	KindName                // variable reference; Data.Name is the identifier

	// Strict operators (spec §4.3): all operands evaluated before applying
	// a pure function of values.
	KindBinaryStrict // Data.Name is the operator spelling; Children = [lhs, rhs]
	KindUnaryStrict  // Data.Name is the operator spelling; Children = [operand]

	// Lazy operators (spec §4.3).
	KindAnd
	KindOr
	KindParens
	KindSquareBrackets // dynamic name lookup: Children = [keyExpr]
	KindTuple          // Children are tuple elements, possibly Spread/Label
	KindSpread         // Children = [expr]
	KindLabel          // Children = [keyExpr, valExpr]
	KindIndex          // Children = [containerExpr, keyExpr]
	KindBlock          // Children are statements; last is the block's value
	KindLoop           // Children = [body]
	KindWhile          // Children = [cond, body]
	KindFor            // Children = [patternNode, iterExpr, body]
	KindFunction       // Children = [paramPattern, body]; Data.IsTopFunction
	KindApplication    // Children = [callee, arg]
	KindMatch          // Children = [subject, case1, case2, ...]
	KindMatchCase      // Children = [patternNode, body]
	KindIf             // Children = [cond, thenBody]
	KindIfElse         // Children = [cond, thenBody, elseBody]
	KindIs             // Children = [subjectExpr, patternNode]
	KindTry            // Children = [expr]
	KindAsync          // Children = [expr]
	KindParallel       // Children are expressions run as sibling tasks
	KindSend           // Children = [chanExpr, valExpr]
	KindReceive        // Children = [chanExpr]
	KindSendMaybe      // Children = [chanExpr, valExpr]
	KindReceiveMaybe   // Children = [chanExpr]
	KindCodeLabel      // Children = [body]; Data.Name is the label's source name
	KindInject         // Children = [handlerRecordExpr, body]
	KindMask           // Children = [tagExpr1, tagExpr2, ..., body] (last child is body)
	KindWithout        // same shape as KindMask

	// Binding forms, all implemented via the pattern matcher (spec §4.2).
	KindDeclare        // `:=`; Children = [patternNode, valueExpr]
	KindAssign         // `=`;  Children = [patternNode, valueExpr]
	KindCompoundAssign // `+=`; Data.Name="+="; Children = [patternNode, valueExpr]
	KindExport         // Children = [patternNode, valueExpr]

	// Pattern node kinds (a subset of the expression grammar, spec §4.2).
	KindPatPlaceholder // `_`
	KindPatLiteral     // Data.Value is the literal to match-by-value
	KindPatName        // Data.Name is the identifier to bind
	KindPatPin         // `pin(expr)`; Children = [expr]
	KindPatNot         // Children = [pattern]
	KindPatTuple       // Children are sub-patterns, at most one KindPatSpread
	KindPatSpread      // Children = [subPattern] (may be empty pattern)
	KindPatRecord      // Children are KindPatField / KindPatSpread
	KindPatField       // Data.Name is the field key; Children = [subPattern, default?]
	KindPatIndex       // l-value `a[i]`; Children = [targetExpr, indexExpr]
	KindPatBind        // `p @ q`; Children = [p, q]
	KindPatExport      // Children = [subPattern]
	KindPatMutable     // `mut p`; Children = [subPattern]
	KindPatStrict      // Children = [subPattern]
	KindPatLike        // Children = [subPattern]
)

// Data is the payload a Node carries. The core only ever inspects the four
// fields named in spec §6.
type Data struct {
	Value         value.Value // data.value
	Name          string      // data.name
	IsTopFunction bool        // data.isTopFunction
	Cause         error       // data.cause
}

// Node is one syntax-tree node (spec §6): `{type, id, data, children}`.
type Node struct {
	Type     Kind
	ID       int64
	Data     Data
	Children []Node
}

// Span is a byte-offset source range.
type Span struct {
	Start, End int
}

// PositionProvider maps a node id to its source span (spec §6), used only
// to decorate diagnostics — the core never parses positions itself.
type PositionProvider interface {
	Position(id int64) (Span, bool)
}

// Parser turns source text into a Node tree plus the PositionProvider that
// decorates it, the external collaborator `ember.CompileScriptString`
// stubs over (lexing/parsing is a Non-goal of the core itself — see the
// package doc comment). fileName is passed through so implementations can
// attribute parse errors to it.
type Parser interface {
	Parse(src string, fileName string) (Node, PositionProvider, error)
}
