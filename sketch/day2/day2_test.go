// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day2

import (
	"context"
	"image"
	"math"
	"testing"

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
	require.NoError(t, s.Setup(context.Background(), sketch.Env{Device: d, Size: image.Pt(400, 400)}))
	t.Cleanup(d.Release)
	return s, f
}

func TestRegistered(t *testing.T) {
	info, ok := sketch.Lookup("day2")
	require.True(t, ok)
	assert.Equal(t, 60, info.FPS)
}

func TestAngle(t *testing.T) {
	assert.Zero(t, Angle(0))
	assert.InDelta(t, math.Pi/2, Angle(90), 1e-6)
	assert.Equal(t, Angle(10), Angle(370))
}

func TestRender(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{Index: 30}))
	require.Len(t, f.Draws, 2)
	for _, dr := range f.Draws {
		assert.True(t, dr.Indexed)
		assert.True(t, dr.DepthTest)
		assert.Equal(t, 6, dr.Count)
	}
	assert.True(t, f.Enabled(gl.CULL_FACE))
}

func TestRelease(t *testing.T) {
	s, f := setup(t)
	require.NoError(t, s.Render(pipeline.Frame{}))
	s.Release()
	assert.Equal(t, 0, f.Live())
}
