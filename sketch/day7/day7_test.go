// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day7

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
	"github.com/glsketch/glsketch/quat"
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
	info, ok := sketch.Lookup("day7")
	require.True(t, ok)
	assert.Implements(t, (*sketch.Handler)(nil), info.New())
}

func TestLightViewProjection(t *testing.T) {
	c := LightViewProjection().Mul4x1(lightTarget.Vec4(1))
	require.Greater(t, c.W(), float32(0))
	assert.InDelta(t, 0, c.X()/c.W(), 1e-5)
	assert.InDelta(t, 0, c.Y()/c.W(), 1e-5)
	// The torus sits between the light and the floor.
	torus := LightViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ground := LightViewProjection().Mul4x1(mgl32.Vec4{0, -10, 0, 1})
	assert.Less(t, torus.Z()/torus.W(), ground.Z()/ground.W())
}

func TestCamera(t *testing.T) {
	s := New()
	cam := s.Camera()
	assert.InDelta(t, distance, cam.Eye.Len(), 1e-3)
	assert.InDelta(t, 0, cam.Up.Dot(cam.Eye), 1e-3)
	assert.Greater(t, cam.Eye.Y(), float32(0), "looks down")

	win := mgl32.Vec2{640, 480}
	s.Event(sketch.PointerEvent{Kind: sketch.Move, Position: mgl32.Vec2{320, 100}, Window: win, Buttons: sketch.ButtonPrimary})
	assert.NotEqual(t, quat.Identity(), s.rot)
	moved := s.Camera()
	assert.InDelta(t, distance, moved.Eye.Len(), 1e-3)
	assert.False(t, moved.Eye.ApproxEqualThreshold(cam.Eye, 1e-3))
}

func TestRender(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	require.Len(t, f.Draws, 4)
	shadowFBO := f.Draws[0].Framebuffer
	assert.NotEqual(t, gl.Framebuffer{}, shadowFBO)
	assert.Equal(t, shadowFBO, f.Draws[1].Framebuffer)
	for _, dr := range f.Draws[2:] {
		assert.Equal(t, gl.Framebuffer{}, dr.Framebuffer)
		assert.True(t, dr.DepthTest)
	}
	assert.Equal(t, 64*64*6, f.Draws[2].Count)
	assert.Equal(t, 6, f.Draws[3].Count)

	want := bias.Mul4(LightViewProjection())
	tm, ok := f.UniformValue(f.Draws[2].Program, "tMatrix")
	require.True(t, ok)
	assert.InDeltaSlice(t, want[:], tm, 1e-6)
	unit, ok := f.UniformValue(f.Draws[2].Program, "shadowMap")
	require.True(t, ok)
	assert.Equal(t, []float32{0}, unit)

	// The next frame redraws the shadow map while the previous one is
	// still bound for sampling.
	f.Draws = nil
	require.NoError(t, s.Render(pipeline.Frame{Index: 1}))
	assert.Len(t, f.Draws, 4)
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	s.Release()
	assert.Equal(t, 0, f.Live())
}
