// SPDX-License-Identifier: Unlicense OR MIT

package quat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func toMgl(q Q) mgl32.Quat {
	return mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, eps), "want %v, got %v", want, got)
}

func TestIdentity(t *testing.T) {
	v := mgl32.Vec3{1, 2, 3}
	assertVec(t, v, Vec(v, Identity()))
	assert.Equal(t, mgl32.Ident4(), Matrix(Identity()))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Q{}, Normalize(Q{}))
	n := Normalize(Q{0, 3, 0, 4})
	assert.InDelta(t, 0.6, n[1], eps)
	assert.InDelta(t, 0.8, n[3], eps)
}

func TestRotateZeroAxis(t *testing.T) {
	_, ok := Rotate(1, mgl32.Vec3{})
	assert.False(t, ok)
}

func TestMulMatchesReference(t *testing.T) {
	a, ok := Rotate(0.7, mgl32.Vec3{1, 2, 3})
	require.True(t, ok)
	b, ok := Rotate(-1.3, mgl32.Vec3{0, 1, 0})
	require.True(t, ok)
	got := Mul(a, b)
	want := toMgl(a).Mul(toMgl(b))
	assert.InDelta(t, want.W, got[3], eps)
	assertVec(t, want.V, mgl32.Vec3{got[0], got[1], got[2]})
}

func TestRotateMatchesReference(t *testing.T) {
	axis := mgl32.Vec3{0, 0, 2}
	q, ok := Rotate(math.Pi/3, axis)
	require.True(t, ok)
	ref := mgl32.QuatRotate(math.Pi/3, axis.Normalize())
	assert.True(t, toMgl(q).ApproxEqualThreshold(ref, eps))
}

func TestVecRotatesByInverse(t *testing.T) {
	q, _ := Rotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	v := mgl32.Vec3{0, 0, 20}
	// q⁻¹·v·q is the reference rotation by the conjugate.
	want := toMgl(q).Conjugate().Rotate(v)
	assertVec(t, want, Vec(v, q))
	assertVec(t, mgl32.Vec3{-20, 0, 0}, Vec(v, q))
}

func TestMatrixAgreesWithVec(t *testing.T) {
	q, _ := Rotate(1.1, mgl32.Vec3{1, -1, 0.5})
	v := mgl32.Vec3{3, -2, 5}
	assertVec(t, Vec(v, q), Matrix(q).Mul4x1(v.Vec4(1)).Vec3())
	ref := toMgl(q).Conjugate().Mat4()
	assert.True(t, ref.ApproxEqualThreshold(Matrix(q), eps))
}

func TestInverseUndoesRotation(t *testing.T) {
	q, _ := Rotate(0.4, mgl32.Vec3{1, 1, 1})
	v := mgl32.Vec3{1, 0, 0}
	assertVec(t, v, Vec(Vec(v, q), Inverse(q)))
	id := Mul(q, Inverse(q))
	assert.InDelta(t, 1, id[3], eps)
}

func TestFromDrag(t *testing.T) {
	q, ok := FromDrag(0, 0, 800, 600)
	require.True(t, ok)
	assert.Equal(t, Identity(), q)

	// Half the diagonal is half a turn.
	q, ok = FromDrag(400, 300, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 0, q[3], eps)
	assert.InDelta(t, 1, toMgl(q).Len(), eps)
}
