// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day5

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
	info, ok := sketch.Lookup("day5")
	require.True(t, ok)
	assert.Equal(t, 60, info.FPS)
	assert.IsType(t, &Sketch{}, info.New())
}

func TestFrame(t *testing.T) {
	s, f := setup(t)
	f.Draws = nil
	require.NoError(t, s.Render(pipeline.Frame{}))
	// Six faces of sky and tori, then sky, sphere and tori on screen.
	require.Len(t, f.Draws, 6*7+8)
	envFBO := f.Draws[0].Framebuffer
	assert.NotEqual(t, gl.Framebuffer{}, envFBO)
	for i, dr := range f.Draws {
		assert.True(t, dr.Indexed)
		assert.True(t, dr.DepthTest)
		if i < 6*7 {
			assert.Equal(t, envFBO, dr.Framebuffer)
		} else {
			assert.Equal(t, gl.Framebuffer{}, dr.Framebuffer)
		}
	}
	sphere := f.Draws[6*7+1]
	assert.Equal(t, 50*50*6, sphere.Count)
	bg, ok := f.UniformValue(sphere.Program, "background")
	require.True(t, ok)
	assert.Equal(t, []float32{0}, bg)
	assert.Equal(t, 6, f.Count("FramebufferTexture2D"), "one attachment per face after creation")
}

func TestDragRotatesCamera(t *testing.T) {
	s, _ := setup(t)
	win := mgl32.Vec2{640, 480}
	s.Event(sketch.PointerEvent{Kind: sketch.Move, Position: mgl32.Vec2{500, 240}, Window: win})
	assert.Equal(t, quat.Identity(), s.rot, "hover must not rotate")
	s.Event(sketch.PointerEvent{Kind: sketch.Move, Position: mgl32.Vec2{500, 240}, Window: win, Buttons: sketch.ButtonPrimary})
	assert.NotEqual(t, quat.Identity(), s.rot)
	eye := s.cam.Orbit(s.rot, distance).Eye
	assert.InDelta(t, distance, eye.Len(), 1e-3)
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{Index: 1}))
	s.Release()
	assert.Equal(t, 0, f.Live())
	New().Release()
}
