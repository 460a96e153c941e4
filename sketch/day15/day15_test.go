// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day15

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/internal/gl/gltest"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

// bloomDraws is the filter, two blur passes per level and the composite.
const bloomDraws = 1 + 2*len(pipeline.BloomLevels) + 1

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
	info, ok := sketch.Lookup("day15")
	require.True(t, ok)
	assert.Implements(t, (*sketch.Tunable)(nil), info.New())
}

func TestPrepare(t *testing.T) {
	_, f := setup(t)
	require.Len(t, f.Draws, 1)
	assert.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT0 + 1}, f.DrawBufferList(f.Draws[0].Framebuffer))
}

func TestFrames(t *testing.T) {
	s, f := setup(t)
	first := f.Draws[0].Framebuffer
	f.Draws = nil
	require.NoError(t, s.Render(pipeline.Frame{Index: 0}))
	require.NoError(t, s.Render(pipeline.Frame{Index: 1}))
	per := 2 + bloomDraws
	require.Len(t, f.Draws, 2*per)

	update, view := f.Draws[0], f.Draws[1]
	assert.NotEqual(t, first, update.Framebuffer)
	assert.Equal(t, first, f.Draws[per].Framebuffer, "state alternates")
	assert.Equal(t, gl.Enum(gl.TRIANGLE_STRIP), view.Mode)
	assert.Equal(t, 2*NumSegments, view.Count)
	assert.Equal(t, NumLines, view.Instances)
	assert.True(t, view.DepthTest)
	assert.NotEqual(t, gl.Framebuffer{}, view.Framebuffer, "lines render offscreen")
	assert.Equal(t, gl.Framebuffer{}, f.Draws[per-1].Framebuffer, "bloom composites to the screen")

	tm, ok := f.UniformValue(f.Draws[per].Program, "time")
	require.True(t, ok)
	assert.Equal(t, []float32{1}, tm)
	c, ok := f.UniformValue(view.Program, "cPos")
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0, 300}, c)
}

func TestParams(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Params().Apply(map[string]float64{"multiplier": 2, "uThreshold": 0.25, "uIntensity": 0.5}))
	f.Draws = nil
	require.NoError(t, s.Render(pipeline.Frame{}))
	m, ok := f.UniformValue(f.Draws[0].Program, "multiplier")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, m)
	filter := f.Draws[2].Program
	th, ok := f.UniformValue(filter, "uThreshold")
	require.True(t, ok)
	assert.Equal(t, []float32{0.25}, th)
	in, ok := f.UniformValue(filter, "uIntensity")
	require.True(t, ok)
	assert.Equal(t, []float32{0.5}, in)
}

func TestResize(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	live := f.Live()
	s.Event(sketch.ResizeEvent{Size: image.Pt(320, 200)})
	require.NoError(t, s.Render(pipeline.Frame{Index: 1}))
	assert.Equal(t, image.Pt(320, 200), s.target.Size())
	assert.Equal(t, live, f.Live(), "old targets are released")
}

func TestMinimize(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	target, live := s.target, f.Live()
	f.Draws = nil
	s.Event(sketch.ResizeEvent{Size: image.Pt(0, 0)})
	require.NoError(t, s.Render(pipeline.Frame{Index: 1}))
	assert.Empty(t, f.Draws, "no frame is drawn without an area")
	assert.Same(t, target, s.target)
	assert.Equal(t, live, f.Live())

	s.Event(sketch.ResizeEvent{Size: image.Pt(640, 480)})
	require.NoError(t, s.Render(pipeline.Frame{Index: 2}))
	assert.Same(t, target, s.target, "restoring the size keeps the targets")
	assert.NotEmpty(t, f.Draws)
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	s.Release()
	assert.Equal(t, 0, f.Live())
	New().Release()
}
