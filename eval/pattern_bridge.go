// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/diag"
	"code.hybscloud.com/ember/effect"
	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/pattern"
	"code.hybscloud.com/ember/value"
)

// exprEvaluator implements pattern.Evaluator by compiling and running the
// embedded node on the spot through eval's own Compile/execute split. Pin
// expressions and record-field defaults are evaluated rarely enough (once
// per pattern match attempt, not once per step) that recompiling the node
// here rather than threading a precompiled Expr through pattern.Compile is
// an acceptable simplification.
type exprEvaluator struct {
	c *compiler
}

// Eval compiles node fresh and runs it under a scratch Context forked from
// e. Effects raised inside a pin expression or default value are not
// expected (these positions are ordinarily pure); should one occur, the
// resulting *effect.Object is returned as an opaque value.Value, which
// lets the pattern matcher's identity comparison fail naturally rather
// than panicking.
func (ev exprEvaluator) Eval(node ast.Node, e *env.Environment) (v value.Value, d *diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			d = recoverDiagnostic(r)
		}
	}()
	expr := Compile(node, ev.c)
	scratch := &Context{Env: e, Masks: effect.NewMaskStack()}
	v = expr(scratch)
	return v, nil
}

// matchPattern runs a compiled Matcher against v, supplying exprEvaluator
// as the collaborator for any embedded pin-expressions or defaults.
func matchPattern(c *compiler, m pattern.Matcher, e *env.Environment, v value.Value) (*pattern.Result, *diag.Diagnostic) {
	return m(exprEvaluator{c: c}, e, v)
}
