// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day3

import (
	"context"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl/gltest"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

func setup(t *testing.T) (*Sketch, *gltest.Fake) {
	t.Helper()
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	s := New()
	require.NoError(t, s.Setup(context.Background(), sketch.Env{Device: d, Size: image.Pt(640, 480)}))
	t.Cleanup(d.Release)
	return s, f
}

func TestRegistered(t *testing.T) {
	_, ok := sketch.Lookup("day3")
	assert.True(t, ok)
}

func TestModel(t *testing.T) {
	m := Model(0)
	assert.Equal(t, mgl32.Vec3{0, 0, -3}, m.Col(3).Vec3())
	// A full turn returns to the start.
	assert.True(t, Model(360).ApproxEqualThreshold(m, 1e-5))
	assert.False(t, Model(90).ApproxEqualThreshold(m, 1e-3))
}

func TestRender(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{Index: 44}))
	require.Len(t, f.Draws, 1)
	dr := f.Draws[0]
	assert.Equal(t, 100*100*6, dr.Count)
	assert.True(t, dr.DepthTest)

	m := Model(45)
	got, ok := f.UniformValue(dr.Program, "mMatrix")
	require.True(t, ok)
	assert.InDeltaSlice(t, m[:], got, 1e-6)
	norm, ok := f.UniformValue(dr.Program, "normMatrix")
	require.True(t, ok)
	inv := m.Inv()
	assert.InDeltaSlice(t, inv[:], norm, 1e-5)
	amb, ok := f.UniformValue(dr.Program, "ambLightColor")
	require.True(t, ok)
	assert.Equal(t, []float32{0.1, 0.1, 0.1, 1}, amb)
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	s.Release()
	assert.Equal(t, 0, f.Live())
}
