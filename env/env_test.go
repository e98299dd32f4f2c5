// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package env_test

import (
	"testing"

	"code.hybscloud.com/ember/env"
	"code.hybscloud.com/ember/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGetSet(t *testing.T) {
	e := env.New()
	require.NoError(t, e.Add(value.Intern("x"), value.Number(1)))
	v, ok := e.Get(value.Intern("x"))
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	require.NoError(t, e.Set(value.Intern("x"), value.Number(2)))
	v, _ = e.Get(value.Intern("x"))
	assert.Equal(t, value.Number(2), v)
}

func TestReadonlyRejectsSet(t *testing.T) {
	e := env.New()
	require.NoError(t, e.AddReadonly(value.Intern("x"), value.Number(1)))
	err := e.Set(value.Intern("x"), value.Number(2))
	assert.Error(t, err)
	assert.True(t, e.HasReadonly(value.Intern("x")))
}

func TestDuplicateAddAtSameNodeFails(t *testing.T) {
	e := env.New()
	require.NoError(t, e.Add(value.Intern("x"), value.Number(1)))
	assert.Error(t, e.Add(value.Intern("x"), value.Number(2)))
	assert.Error(t, e.AddReadonly(value.Intern("x"), value.Number(2)))
}

func TestScopeHygiene(t *testing.T) {
	root := env.New()
	require.NoError(t, root.Add(value.Intern("outer"), value.Number(1)))

	blockA := root.Fork()
	require.NoError(t, blockA.Add(value.Intern("inner"), value.Number(2)))

	blockB := root.Fork()
	_, ok := blockB.Get(value.Intern("inner"))
	assert.False(t, ok, "declaration inside one block must be invisible to a sibling block")

	_, ok = root.Get(value.Intern("inner"))
	assert.False(t, ok, "declaration inside a block must be invisible to the surrounding scope")
}

func TestSetUndeclaredFails(t *testing.T) {
	e := env.New()
	err := e.Set(value.Intern("missing"), value.Number(1))
	assert.Error(t, err)
}

func TestCopyUpToAndReplaceRoundTrip(t *testing.T) {
	boundary := env.New()
	require.NoError(t, boundary.Add(value.Intern("shared"), value.Number(0)))

	live := boundary.Fork()
	require.NoError(t, live.Add(value.Intern("x"), value.Number(1)))

	snapshot := live.CopyUpTo(boundary)

	// Mutate the live chain after taking the snapshot.
	require.NoError(t, live.Set(value.Intern("x"), value.Number(99)))

	v, _ := live.Get(value.Intern("x"))
	assert.Equal(t, value.Number(99), v)

	// Restore from the snapshot.
	live.Replace(snapshot, boundary)
	v, _ = live.Get(value.Intern("x"))
	assert.Equal(t, value.Number(1), v, "replace must restore the snapshotted value")
}

func TestCopyUpToSharesBoundaryByIdentity(t *testing.T) {
	boundary := env.New()
	require.NoError(t, boundary.Add(value.Intern("k"), value.Number(1)))
	live := boundary.Fork()

	snap := live.CopyUpTo(boundary)
	// Walk to the root of snap; it must be the same pointer as boundary.
	n := snap
	for n.Parent() != nil {
		n = n.Parent()
	}
	assert.Same(t, boundary, n)
}

func TestMultiShotIndependentWorlds(t *testing.T) {
	// Simulates what effect.Object/Continuation does internally: snapshot
	// once, then resume twice from the same snapshot, mutating each
	// resumed world independently (spec §8 property 5).
	boundary := env.New()
	live := boundary.Fork()
	require.NoError(t, live.Add(value.Intern("x"), value.Number(0)))
	snapshot := live.CopyUpTo(boundary)

	// World 1: restore, then mutate to 10.
	live.Replace(snapshot, boundary)
	require.NoError(t, live.Set(value.Intern("x"), value.Number(10)))
	world1, _ := live.Get(value.Intern("x"))

	// World 2: restore again from the SAME snapshot, then mutate to 20.
	live.Replace(snapshot, boundary)
	require.NoError(t, live.Set(value.Intern("x"), value.Number(20)))
	world2, _ := live.Get(value.Intern("x"))

	assert.Equal(t, value.Number(10), world1)
	assert.Equal(t, value.Number(20), world2)
	assert.NotEqual(t, world1, world2, "mutations in the k-th resumption must not leak into the (k+1)-th")
}
