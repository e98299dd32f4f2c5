// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval_test

import (
	"testing"

	"code.hybscloud.com/ember/ast"
	"code.hybscloud.com/ember/eval"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMaxStepsStopsARunawayTaskChain builds a function that re-spawns
// itself as a child task forever (`self _ -> async(self(nil))`): every
// scheduler tick enqueues exactly one more tick, so the ready queue never
// empties on its own. Without WithMaxSteps this would drive forever;
// with it, RunScript must give up and report a diagnostic instead of
// hanging.
func TestMaxStepsStopsARunawayTaskChain(t *testing.T) {
	respawn := function(true, patName("_"), asyncNode(apply(name("self"), lit(value.Nil))))
	node := apply(respawn, lit(value.Nil))

	p := eval.NewProgram(node, nil, "test.em")
	_, diags := p.RunScript(eval.WithMaxSteps(50))
	require.NotEmpty(t, diags, "expected a step-budget diagnostic")
	assert.Contains(t, diags[0].Primary.Message, "step budget")
}

// TestMaxStepsDoesNotInterfereWithNormalPrograms confirms a generous
// budget still lets an ordinary, terminating program run to completion.
func TestMaxStepsDoesNotInterfereWithNormalPrograms(t *testing.T) {
	node := binop("+", lit(value.Number(1)), lit(value.Number(2)))
	p := eval.NewProgram(node, nil, "test.em")
	v, diags := p.RunScript(eval.WithMaxSteps(1000))
	require.Empty(t, diags)
	assert.Equal(t, value.Number(3), v)
}
