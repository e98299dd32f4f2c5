// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package diag implements the error-handling design of spec §7: a closed
// ErrorKind taxonomy and a Diagnostic carrying a primary label, secondary
// labels, and notes, grounded on cuelang.org/go/cue/errors's
// Position/InputPositions/Path shape (see DESIGN.md) but specialized to a
// closed tag set instead of an open error interface.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed taxonomy of spec §7.
type ErrorKind uint8

const (
	// Lexical/Parse — surfaced by the external parser collaborator and
	// passed through diag so the core's diagnostic shape is uniform.
	ErrUnexpectedEOF ErrorKind = iota
	ErrUnterminatedString
	ErrInvalidNumberLiteral
	ErrUnbalancedBracket

	// Structural
	ErrInvalidPattern
	ErrInvalidTuplePattern
	ErrInvalidRecordPattern
	ErrInvalidPlaceholder
	ErrInvalidSpread
	ErrInvalidIndex
	ErrInvalidIndexTarget
	ErrInvalidChannelOp
	ErrChannelClosed

	// Semantic
	ErrUndeclaredName
	ErrUndeclaredAssignTarget
	ErrImmutableAssignment
	ErrInvalidIncrement
	ErrDuplicateDefaultExport
	ErrImportResolve
	ErrInvalidApplication

	// Runtime
	ErrRuntime
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedEOF:
		return "unexpected end of source"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrInvalidNumberLiteral:
		return "invalid number literal"
	case ErrUnbalancedBracket:
		return "unbalanced bracket"
	case ErrInvalidPattern:
		return "invalid pattern"
	case ErrInvalidTuplePattern:
		return "invalid tuple pattern"
	case ErrInvalidRecordPattern:
		return "invalid record pattern"
	case ErrInvalidPlaceholder:
		return "invalid placeholder expression"
	case ErrInvalidSpread:
		return "invalid use of spread"
	case ErrInvalidIndex:
		return "invalid index"
	case ErrInvalidIndexTarget:
		return "invalid index target"
	case ErrInvalidChannelOp:
		return "invalid channel operation"
	case ErrChannelClosed:
		return "channel closed"
	case ErrUndeclaredName:
		return "undeclared name"
	case ErrUndeclaredAssignTarget:
		return "undeclared assignment target"
	case ErrImmutableAssignment:
		return "assignment to immutable variable"
	case ErrInvalidIncrement:
		return "invalid increment"
	case ErrDuplicateDefaultExport:
		return "duplicate default export"
	case ErrImportResolve:
		return "import resolve/load failure"
	case ErrInvalidApplication:
		return "invalid application"
	case ErrRuntime:
		return "evaluation error"
	default:
		return "unknown error"
	}
}

// Pos is a byte-offset source range, supplied by the external position
// provider collaborator (spec §6).
type Pos struct {
	Start, End int
}

// Label attaches a message to a source range.
type Label struct {
	Pos     Pos
	File    string
	Message string
}

// Diagnostic is the core's sole error representation (spec §7): a primary
// label, zero or more secondary labels, and human-guidance notes.
type Diagnostic struct {
	Kind      ErrorKind
	Primary   Label
	Secondary []Label
	Notes     []string
	cause     error
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Kind, d.Primary.Message)
	if d.Primary.File != "" {
		fmt.Fprintf(&b, " (%s:%d-%d)", d.Primary.File, d.Primary.Pos.Start, d.Primary.Pos.End)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "\n  note: %s", n)
	}
	return b.String()
}

// Unwrap exposes an underlying cause for errors.Is/As compatibility,
// matching cue/errors's thin wrapping of stdlib errors.
func (d *Diagnostic) Unwrap() error { return d.cause }

// New builds a Diagnostic with the given kind, position, and message.
func New(kind ErrorKind, file string, pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind: kind,
		Primary: Label{
			Pos:     pos,
			File:    file,
			Message: fmt.Sprintf(format, args...),
		},
	}
}

// Wrap attaches cause as the diagnostic's unwrap target, for propagating a
// failure from an external collaborator (e.g. the module loader) while
// keeping the core's uniform Diagnostic shape.
func (d *Diagnostic) Wrap(cause error) *Diagnostic {
	d.cause = cause
	return d
}

// WithSecondary appends a secondary label.
func (d *Diagnostic) WithSecondary(file string, pos Pos, message string) *Diagnostic {
	d.Secondary = append(d.Secondary, Label{Pos: pos, File: file, Message: message})
	return d
}

// WithNote appends a human-guidance note.
func (d *Diagnostic) WithNote(format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	return d
}

// Is reports whether target is a Diagnostic of the same Kind, so that
// errors.Is(err, someDiagnostic) matches any Diagnostic of that kind.
func (d *Diagnostic) Is(target error) bool {
	var other *Diagnostic
	if errors.As(target, &other) {
		return other.Kind == d.Kind
	}
	return false
}
