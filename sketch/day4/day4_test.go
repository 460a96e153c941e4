// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package day4

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/asset"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl/gltest"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

func setup(t *testing.T, env sketch.Env) (*Sketch, *gltest.Fake) {
	t.Helper()
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	env.Device = d
	env.Size = image.Pt(640, 480)
	s := New()
	require.NoError(t, s.Setup(context.Background(), env))
	t.Cleanup(d.Release)
	return s, f
}

func TestRegistered(t *testing.T) {
	info, ok := sketch.Lookup("day4")
	require.True(t, ok)
	assert.Equal(t, 60, info.FPS)
}

func TestCamera(t *testing.T) {
	s := New()
	start := s.Camera(0)
	assert.InDelta(t, distance, start.Eye.Len(), 1e-4)
	for _, i := range []int{90, 360, 500} {
		cam := s.Camera(i)
		assert.InDelta(t, distance, cam.Eye.Len(), 1e-4, "frame %d", i)
		assert.InDelta(t, 0, cam.Eye.X(), 1e-4, "rolls about X")
		assert.InDelta(t, 0, cam.Up.Dot(cam.Eye), 1e-3, "up stays perpendicular")
	}
	assert.InDelta(t, -distance, s.Camera(360).Eye.Z(), 1e-3, "half turn")
	assert.True(t, s.Camera(720).Eye.ApproxEqualThreshold(start.Eye, 1e-4))
}

func TestRender(t *testing.T) {
	s, f := setup(t, sketch.Env{})
	require.NoError(t, s.Render(pipeline.Frame{}))
	require.Len(t, f.Draws, 2)
	sky, torus := f.Draws[0], f.Draws[1]
	assert.Equal(t, 36, sky.Count)
	assert.Equal(t, 80*100*6, torus.Count)
	assert.True(t, torus.DepthTest)
	refl, ok := f.UniformValue(torus.Program, "reflection")
	require.True(t, ok)
	assert.Equal(t, []float32{0}, refl)
	assert.Equal(t, 6, f.Count("TexSubImage2D"))
}

func TestSkyFromAssets(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	fsys := fstest.MapFS{}
	for _, name := range asset.CubeFaceNames {
		fsys[name+".jpg"] = &fstest.MapFile{Data: buf.Bytes()}
	}
	faces, err := skyFaces(context.Background(), sketch.Env{Assets: fsys})
	require.NoError(t, err)
	for _, pix := range faces {
		require.Len(t, pix, SkySize*SkySize*4)
		assert.InDelta(t, 200, int(pix[0]), 1)
		assert.Equal(t, byte(255), pix[3])
	}

	// An incomplete set falls back to the generated sky.
	delete(fsys, "posy.jpg")
	faces, err = skyFaces(context.Background(), sketch.Env{Assets: fsys})
	require.NoError(t, err)
	assert.Equal(t, asset.SkyFace(2, SkySize), faces[2])
	s, _ := setup(t, sketch.Env{Assets: fsys})
	s.Release()
}

func TestRelease(t *testing.T) {
	s, f := setup(t, sketch.Env{})
	require.NoError(t, s.Render(pipeline.Frame{Index: 3}))
	s.Release()
	assert.Equal(t, 0, f.Live())
}
