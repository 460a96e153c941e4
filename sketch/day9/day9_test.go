// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day9

import (
	"context"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl"
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
	require.NoError(t, s.Setup(context.Background(), sketch.Env{Device: d, Size: image.Pt(512, 512)}))
	t.Cleanup(d.Release)
	return s, f
}

func TestRegistered(t *testing.T) {
	_, ok := sketch.Lookup("day9")
	assert.True(t, ok)
}

func TestMVP(t *testing.T) {
	// The quad corners fill the viewport.
	for _, c := range []mgl32.Vec2{{-1, 1}, {1, -1}} {
		p := MVP().Mul4x1(mgl32.Vec4{c[0], c[1], 0, 1})
		assert.InDelta(t, c[0], p.X()/p.W(), 1e-5)
		assert.InDelta(t, c[1], p.Y()/p.W(), 1e-5)
	}
}

func TestRender(t *testing.T) {
	s, f := setup(t)
	assert.Equal(t, 1, f.Count("GenerateMipmap"))
	require.NoError(t, s.Render(pipeline.Frame{}))
	require.Len(t, f.Draws, 1)
	dr := f.Draws[0]
	assert.Equal(t, 6, dr.Count)
	assert.True(t, dr.Blend)
	assert.True(t, f.Enabled(gl.CULL_FACE))
	img, ok := f.UniformValue(dr.Program, "img")
	require.True(t, ok)
	assert.Equal(t, []float32{0}, img)
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	s.Release()
	assert.Equal(t, 0, f.Live())
}
