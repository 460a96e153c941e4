// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day10

import (
	"context"
	"image"
	"testing"
	"time"
	"unicode/utf8"

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
	info, ok := sketch.Lookup("day10")
	require.True(t, ok)
	assert.IsType(t, &Sketch{}, info.New())
}

func TestTextFillsSplitGrid(t *testing.T) {
	n := utf8.RuneCountInString(Text)
	assert.LessOrEqual(t, n, Split*Split)
	assert.Greater(t, n, (Split-1)*(Split-1))
}

func TestPreparePasses(t *testing.T) {
	s, f := setup(t)
	// Two extrusions of one split and 2*Iterations spreads each, the
	// copy of the inner result and the composite.
	want := 2*(1+2*Iterations) + 2
	require.Len(t, f.Draws, want)
	fb0 := f.Draws[0].Framebuffer
	for _, dr := range f.Draws {
		assert.NotEqual(t, gl.Framebuffer{}, dr.Framebuffer)
		assert.Equal(t, 6, dr.Count)
	}
	// Spreads alternate between the two working targets.
	assert.NotEqual(t, fb0, f.Draws[1].Framebuffer)
	assert.Equal(t, fb0, f.Draws[2].Framebuffer)
	assert.Equal(t, fb0, f.Draws[2*Iterations].Framebuffer)

	assert.Len(t, f.DrawBufferList(fb0), targets)
	flag, ok := f.UniformValue(f.Draws[0].Program, "flag")
	require.True(t, ok)
	assert.Equal(t, []float32{0}, flag, "outer pass runs last")
	assert.NotNil(t, s.result)
}

func TestRender(t *testing.T) {
	s, f := setup(t)
	f.Draws = nil
	require.NoError(t, s.Render(pipeline.Frame{Index: 3, Elapsed: 1500 * time.Millisecond}))
	require.Len(t, f.Draws, 1)
	assert.Equal(t, gl.Framebuffer{}, f.Draws[0].Framebuffer)
	split, ok := f.UniformValue(f.Draws[0].Program, "split")
	require.True(t, ok)
	assert.Equal(t, []float32{Split}, split)
	tm, ok := f.UniformValue(f.Draws[0].Program, "time")
	require.True(t, ok)
	assert.Equal(t, []float32{3}, tm, "time counts frames")
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	s.Release()
	assert.Equal(t, 0, f.Live())
	New().Release()
}
