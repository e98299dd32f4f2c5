// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package diag_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ember/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticError(t *testing.T) {
	d := diag.New(diag.ErrUndeclaredName, "main.em", diag.Pos{Start: 3, End: 6}, "undeclared name %q", "foo")
	assert.Contains(t, d.Error(), "undeclared name")
	assert.Contains(t, d.Error(), "main.em:3-6")
}

func TestDiagnosticWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	d := diag.New(diag.ErrImportResolve, "", diag.Pos{}, "import failed").Wrap(cause)
	require.ErrorIs(t, d, cause)
}

func TestClosestNameHint(t *testing.T) {
	d := diag.New(diag.ErrUndeclaredName, "", diag.Pos{}, "undeclared name %q", "coutner")
	d.WithClosestNameHint("coutner", []string{"counter", "total", "counterweight"})
	require.Len(t, d.Notes, 1)
	assert.Contains(t, d.Notes[0], "counter")
}

func TestClosestNameNoCandidates(t *testing.T) {
	assert.Equal(t, "", diag.ClosestName("x", nil))
}
