// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day14

import (
	"context"
	"image"
	"testing"
	"time"

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
	require.NoError(t, s.Setup(context.Background(), sketch.Env{Device: d, Size: image.Pt(1280, 720)}))
	t.Cleanup(d.Release)
	return s, f
}

func TestRegistered(t *testing.T) {
	info, ok := sketch.Lookup("day14")
	require.True(t, ok)
	assert.IsType(t, &Sketch{}, info.New())
}

func TestRender(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{Index: 0}))
	require.Len(t, f.Draws, 1)
	dr := f.Draws[0]
	assert.Equal(t, gl.Enum(gl.TRIANGLE_STRIP), dr.Mode)
	assert.Equal(t, NumSegments, dr.Count)
	assert.False(t, dr.Indexed)
	assert.True(t, dr.DepthTest)
	assert.True(t, f.Enabled(gl.CULL_FACE))

	pos, ok := f.UniformValue(dr.Program, "cPos")
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0, 200}, pos)
	m, ok := f.UniformValue(dr.Program, "mMat")
	require.True(t, ok)
	ident := mgl32.Ident4()
	assert.Equal(t, ident[:], m, "no rotation at time zero")
}

func TestSpin(t *testing.T) {
	s, f := setup(t)
	_, err := s.Params().Set("spin", 0)
	require.NoError(t, err)
	require.NoError(t, s.Render(pipeline.Frame{Elapsed: 3 * time.Second}))
	m, ok := f.UniformValue(f.Draws[0].Program, "mMat")
	require.True(t, ok)
	ident := mgl32.Ident4()
	assert.Equal(t, ident[:], m)
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	s.Release()
	assert.Equal(t, 0, f.Live())
}
