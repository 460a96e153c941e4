// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package pipeline_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/internal/gl/gltest"
	"github.com/glsketch/glsketch/pipeline"
)

func newDevice(t *testing.T) (*gpu.Device, *gltest.Fake) {
	t.Helper()
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	return d, f
}

func TestQuadCopy(t *testing.T) {
	d, f := newDevice(t)
	q, err := pipeline.NewQuad(d)
	require.NoError(t, err)
	c, err := pipeline.NewCopier(q)
	require.NoError(t, err)
	src, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2}, make([]byte, 16))
	require.NoError(t, err)

	d.BindScreen(image.Pt(4, 4))
	require.NoError(t, c.Draw(src))
	require.Len(t, f.Draws, 1)
	assert.Equal(t, 6, f.Draws[0].Count)
	assert.True(t, f.Draws[0].Indexed)
}

func TestCopyIntoSourceIsRejected(t *testing.T) {
	d, _ := newDevice(t)
	q, err := pipeline.NewQuad(d)
	require.NoError(t, err)
	c, err := pipeline.NewCopier(q)
	require.NoError(t, err)
	fbo, err := d.NewFramebuffer(gpu.FramebufferDesc{Width: 4, Height: 4})
	require.NoError(t, err)
	fbo.Bind()
	assert.ErrorIs(t, c.Draw(fbo.Texture(0)), gpu.ErrFeedbackLoop)
}

func TestBloomChain(t *testing.T) {
	d, f := newDevice(t)
	q, err := pipeline.NewQuad(d)
	require.NoError(t, err)
	screen := image.Pt(640, 480)
	b, err := pipeline.NewBloom(q, screen)
	require.NoError(t, err)
	assert.Equal(t, gpu.TextureFormatRGBA32F, b.Filtered().Format())

	src, err := d.NewFramebuffer(gpu.FramebufferDesc{Width: screen.X, Height: screen.Y, Format: pipeline.PostFormat(d), Filter: gpu.FilterLinear})
	require.NoError(t, err)
	f.Reset()
	require.NoError(t, b.Render(src.Texture(0), screen))

	// filter, two passes per blur level and the composite.
	require.Len(t, f.Draws, 1+2*len(pipeline.BloomLevels)+1)
	last := f.Draws[len(f.Draws)-1]
	assert.Equal(t, gl.Framebuffer{}, last.Framebuffer, "composite goes to the screen")
	for _, dr := range f.Draws[:len(f.Draws)-1] {
		assert.NotEqual(t, gl.Framebuffer{}, dr.Framebuffer)
	}
	assert.Zero(t, f.Count("LinkProgram"), "no program is rebuilt per frame")
}

func TestPostFormatFallback(t *testing.T) {
	f := gltest.New()
	f.Extensions = []string{"EXT_color_buffer_float"}
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	assert.Equal(t, gpu.TextureFormatRGBA8, pipeline.PostFormat(d))
	q, err := pipeline.NewQuad(d)
	require.NoError(t, err)
	_, err = pipeline.NewBloom(q, image.Pt(64, 64))
	assert.NoError(t, err)
}

func TestPostRelease(t *testing.T) {
	d, f := newDevice(t)
	q, err := pipeline.NewQuad(d)
	require.NoError(t, err)
	c, err := pipeline.NewCopier(q)
	require.NoError(t, err)
	b, err := pipeline.NewBloom(q, image.Pt(64, 64))
	require.NoError(t, err)
	b.Release()
	c.Release()
	q.Release()
	assert.Zero(t, f.Live())
	var none *pipeline.Bloom
	none.Release()
}
