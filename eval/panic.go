// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import "code.hybscloud.com/ember/diag"

// abort carries a diagnostic up the Go call stack as a panic value (spec
// §7: "an error aborts the current expression by unwinding... an abrupt
// failure path that the surrounding driver catches"). Compiled Expr
// closures never return an error themselves — only drive (behind
// RunScript/RunModule) and exprEvaluator.Eval ever recover one.
type abort struct{ d *diag.Diagnostic }

func raise(d *diag.Diagnostic) { panic(abort{d}) }

// recoverDiagnostic turns a panicking abort back into a *diag.Diagnostic,
// re-panicking anything else (a genuine Go bug should not be swallowed).
func recoverDiagnostic(r any) *diag.Diagnostic {
	if a, ok := r.(abort); ok {
		return a.d
	}
	panic(r)
}
