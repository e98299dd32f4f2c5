// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import "code.hybscloud.com/ember/internal/symtab"

// table is the process-wide interning table for symbols. Symbols are
// identifiers and effect tags; the language never needs to un-intern one,
// so a single package-level table (mirroring the teacher library's
// preference for simple, long-lived shared state over per-call allocation)
// is sufficient.
var table = symtab.New()

// Symbol is an interned atom, used as a record key, effect tag, or bound
// name. Two symbols are == iff they were interned from the same name.
type Symbol struct {
	tok *symtab.Token
}

func (Symbol) Kind() Kind { return KindSymbol }

// Intern returns the canonical Symbol for name.
func Intern(name string) Symbol {
	return Symbol{tok: table.Intern(name)}
}

// FreshSymbol mints a symbol that does not alias any interned name, even one
// spelled identically — used for hygienic code-labels (spec §4.3).
func FreshSymbol(hint string) Symbol {
	return Symbol{tok: table.Fresh(hint)}
}

// Name returns the original string the symbol was interned from.
func (s Symbol) Name() string {
	if s.tok == nil {
		return ""
	}
	return s.tok.Name()
}

// Equal reports whether two symbols are the same interned atom.
func (s Symbol) Equal(o Symbol) bool { return s.tok == o.tok }

// IsZero reports whether s is the unset zero Symbol.
func (s Symbol) IsZero() bool { return s.tok == nil }

// Well-known symbols used by the evaluator's built-in effect vocabulary
// (spec §4.3, §4.4, §4.5).
var (
	SymBreak          = Intern("break")
	SymContinue       = Intern("continue")
	SymReturn         = Intern("return")
	SymSelf           = Intern("self")
	SymCreateTask     = Intern("create-task")
	SymFnTry          = Intern("fn-try")
	SymMaskEffect     = Intern("mask-effect")
	SymOk             = Intern("ok")
	SymNone           = Intern("none")
	SymClosed         = Intern("closed")
	SymError          = Intern("error")
	SymDefault        = Intern("default") // well-known key for a module's default export
	SymReceiveOp      = Intern("receive")
	SymSendOp         = Intern("send")
	SymAwaitOp        = Intern("await")
	SymEventLoopYield = Intern("event-loop-yield")
)
