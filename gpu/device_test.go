// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu_test

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/internal/gl/gltest"
)

const (
	updateVert = `
layout(location = 0) in vec2 aPosition;
layout(location = 1) in vec2 aVelocity;
uniform float uTime;
out vec2 vPosition;
out vec2 vVelocity;
void main() {
	vPosition = aPosition + aVelocity * uTime;
	vVelocity = aVelocity;
}
`
	discardFrag = `
out vec4 fragColor;
void main() {
	discard;
}
`
	quadVert = `
layout(location = 0) in vec2 aPosition;
out vec2 vUv;
void main() {
	vUv = aPosition * 0.5 + 0.5;
	gl_Position = vec4(aPosition, 0.0, 1.0);
}
`
	copyFrag = `
uniform sampler2D uTex;
in vec2 vUv;
out vec4 fragColor;
void main() {
	fragColor = texture(uTex, vUv);
}
`
)

func newDevice(t *testing.T) (*gpu.Device, *gltest.Fake) {
	t.Helper()
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	return d, f
}

func TestNewDeviceRequiresES3(t *testing.T) {
	f := gltest.New()
	f.Version = "OpenGL ES 2.0 gltest"
	_, err := gpu.NewDevice(f)
	assert.Error(t, err)

	f.Version = "3.3.0 core"
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	assert.Contains(t, d.ShaderHeader(), "#version 330 core")
}

func TestProgramBuild(t *testing.T) {
	d, _ := newDevice(t)
	p, err := d.NewProgram(gpu.ProgramDesc{Name: "copy", Vertex: quadVert, Fragment: copyFrag, Uniforms: []string{"uTex"}})
	require.NoError(t, err)
	assert.Equal(t, "copy", p.Name())
	loc, err := p.AttribLocation("aPosition")
	require.NoError(t, err)
	assert.Equal(t, 0, loc)
}

func TestProgramBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		vert  string
		frag  string
		err   error
		stage string
	}{
		{"empty vertex", "", copyFrag, gpu.ErrCompile, "vertex"},
		{"broken fragment", quadVert, "void main() { fragColor = vec4(1.0);", gpu.ErrCompile, "fragment"},
		{"mismatched varying", updateVert, copyFrag, gpu.ErrLink, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, _ := newDevice(t)
			var p *gpu.Program
			var err error
			require.NotPanics(t, func() {
				p, err = d.NewProgram(gpu.ProgramDesc{Name: test.name, Vertex: test.vert, Fragment: test.frag})
			})
			assert.Nil(t, p)
			require.ErrorIs(t, err, test.err)
			var be *gpu.BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, test.name, be.Program)
			assert.Equal(t, test.stage, be.Stage)
			assert.NotEmpty(t, be.Log)
		})
	}
}

func TestProgramMissingUniform(t *testing.T) {
	d, f := newDevice(t)
	_, err := d.NewProgram(gpu.ProgramDesc{Name: "copy", Vertex: quadVert, Fragment: copyFrag, Uniforms: []string{"uTex", "uTime", "uMouse"}})
	require.ErrorIs(t, err, gpu.ErrMissingUniform)
	assert.Contains(t, err.Error(), "uTime")
	assert.Contains(t, err.Error(), "uMouse")
	assert.Equal(t, 1, f.Count("DeleteProgram"), "failed program must be released")
}

func TestProgramCacheSharesLinkedPrograms(t *testing.T) {
	d, f := newDevice(t)
	desc := gpu.ProgramDesc{Name: "copy", Vertex: quadVert, Fragment: copyFrag}
	p1, err := d.NewProgram(desc)
	require.NoError(t, err)
	p2, err := d.NewProgram(desc)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Count("LinkProgram"))
	p1.Release()
	assert.Equal(t, 0, f.Count("DeleteProgram"))
	p2.Release()
	assert.Equal(t, 1, f.Count("DeleteProgram"))
}

func TestUniformSetters(t *testing.T) {
	d, f := newDevice(t)
	p, err := d.NewProgram(gpu.ProgramDesc{Name: "update", Vertex: updateVert, Fragment: discardFrag,
		Varyings: []string{"vPosition", "vVelocity"}})
	require.NoError(t, err)
	u, err := p.Uniform("uTime")
	require.NoError(t, err)
	u.Float(0.25)
	obj := gl.Program{V: 0}
	for _, c := range f.Calls {
		if c.Name == "UseProgram" {
			obj = c.Args[0].(gl.Program)
		}
	}
	v, ok := f.UniformValue(obj, "uTime")
	require.True(t, ok)
	assert.Equal(t, []float32{0.25}, v)
	assert.Panics(t, func() { gpu.Uniform{}.Float(1) })
}

func TestIndexBufferRange(t *testing.T) {
	d, _ := newDevice(t)
	_, err := d.NewIndexBuffer([]uint16{0, 1, 2, 2, 3, 0}, 4)
	require.NoError(t, err)
	_, err = d.NewIndexBuffer([]uint16{0, 1, 4}, 4)
	assert.ErrorIs(t, err, gpu.ErrIndexRange)
	assert.ErrorIs(t, gpu.ValidateIndices([]uint16{0}, gpu.MaxIndexedVertices+1), gpu.ErrIndexRange)
	assert.NoError(t, gpu.ValidateIndices([]uint16{65535}, gpu.MaxIndexedVertices))
}

func TestVertexBufferUpload(t *testing.T) {
	d, f := newDevice(t)
	b, err := d.NewVertexBuffer([]float32{1, 2, 3, 4}, gpu.BufferDynamic)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Len())
	require.NoError(t, b.Upload([]float32{5, 6}))
	assert.Error(t, b.Upload(make([]float32, 5)))
	assert.Equal(t, 1, f.Count("BufferSubData"))
	b.Release()
	assert.ErrorIs(t, b.Upload([]float32{1}), gpu.ErrReleased)
}

func TestMultipleRenderTargets(t *testing.T) {
	d, f := newDevice(t)
	fbo, err := d.NewFramebuffer(gpu.FramebufferDesc{Width: 64, Height: 32, Attachments: 4, Format: gpu.TextureFormatRGBA32F, Depth: true})
	require.NoError(t, err)
	assert.Len(t, fbo.Textures(), 4)
	assert.Equal(t, image.Pt(64, 32), fbo.Size())
	want := []gl.Enum{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT0 + 1, gl.COLOR_ATTACHMENT0 + 2, gl.COLOR_ATTACHMENT0 + 3}
	for _, c := range f.Calls {
		if c.Name == "DrawBuffers" {
			assert.Equal(t, want, c.Args[0])
		}
	}
	assert.Equal(t, 1, f.Count("RenderbufferStorage"))

	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Width: 8, Height: 8, Attachments: 9})
	assert.Error(t, err)
}

func TestFloatTargetsNeedExtension(t *testing.T) {
	f := gltest.New()
	f.Extensions = nil
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Width: 8, Height: 8, Attachments: 2, Format: gpu.TextureFormatRGBA32F})
	assert.ErrorIs(t, err, gpu.ErrMissingExtension)
	_, err = d.NewFloatTexture(gpu.TextureDesc{Width: 2, Height: 1, Filter: gpu.FilterLinear}, make([]float32, 8))
	assert.ErrorIs(t, err, gpu.ErrMissingExtension)
	assert.ErrorIs(t, d.Require("EXT_color_buffer_float"), gpu.ErrMissingExtension)
	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Width: 8, Height: 8, Format: gpu.TextureFormatRGBA8})
	assert.NoError(t, err)
}

func TestTextureUploadSize(t *testing.T) {
	d, f := newDevice(t)
	_, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2, Format: gpu.TextureFormatRG8}, make([]byte, 7))
	assert.Error(t, err)
	tex, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2, Format: gpu.TextureFormatRG8, Filter: gpu.FilterLinearMipmap}, make([]byte, 8))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Count("GenerateMipmap"))
	require.NoError(t, tex.Upload(make([]byte, 8)))
	assert.Equal(t, 2, f.Count("GenerateMipmap"))
}

func TestMipmapNearestFilter(t *testing.T) {
	d, f := newDevice(t)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tex, err := d.NewImageTexture(img, gpu.FilterLinearMipmapNearest, gpu.WrapClamp)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Count("GenerateMipmap"))
	params := map[gl.Enum]int{}
	for _, c := range f.Calls {
		if c.Name == "TexParameteri" {
			params[c.Args[1].(gl.Enum)] = c.Args[2].(int)
		}
	}
	assert.Equal(t, gl.LINEAR_MIPMAP_NEAREST, params[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, gl.LINEAR, params[gl.TEXTURE_MAG_FILTER])
	require.NoError(t, tex.Upload(make([]byte, 4*4*4)))
	assert.Equal(t, 2, f.Count("GenerateMipmap"))
}

func TestImageTextureSize(t *testing.T) {
	d, f := newDevice(t)
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	_, err := d.NewImageTexture(img, gpu.FilterLinear, gpu.WrapClamp)
	require.NoError(t, err)
	for _, c := range f.Calls {
		if c.Name == "TexImage2D" {
			assert.Equal(t, 1, c.Args[3])
			assert.Equal(t, 2, c.Args[4])
		}
	}
}

func TestCubeFramebuffer(t *testing.T) {
	d, f := newDevice(t)
	fbo, err := d.NewCubeFramebuffer(16, true)
	require.NoError(t, err)
	for face := 0; face < 6; face++ {
		require.NoError(t, fbo.BindFace(face))
	}
	assert.Error(t, fbo.BindFace(6))
	assert.Equal(t, 6, f.Count("FramebufferTexture2D"))

	flat, err := d.NewFramebuffer(gpu.FramebufferDesc{Width: 4, Height: 4})
	require.NoError(t, err)
	assert.Error(t, flat.BindFace(0))
}

func TestReadPixels(t *testing.T) {
	d, _ := newDevice(t)
	fbo, err := d.NewFramebuffer(gpu.FramebufferDesc{Width: 4, Height: 4})
	require.NoError(t, err)
	fbo.Bind()
	d.Clear(0, 1, 0, 1)
	img, err := fbo.ReadPixels(0, image.Rect(0, 0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 0, 255}, img.Pix[:4])

	floats, err := d.NewFramebuffer(gpu.FramebufferDesc{Width: 4, Height: 4, Format: gpu.TextureFormatRGBA32F})
	require.NoError(t, err)
	_, err = floats.ReadPixels(0, image.Rect(0, 0, 1, 1))
	assert.Error(t, err)
	data, err := floats.ReadFloats(0, image.Rect(0, 0, 2, 1))
	require.NoError(t, err)
	assert.Len(t, data, 8)
}

func TestReleaseFreesEverything(t *testing.T) {
	d, f := newDevice(t)
	_, err := d.NewProgram(gpu.ProgramDesc{Name: "copy", Vertex: quadVert, Fragment: copyFrag})
	require.NoError(t, err)
	b, err := d.NewVertexBuffer([]float32{-1, -1, 1, -1, -1, 1}, gpu.BufferStatic)
	require.NoError(t, err)
	_, err = d.NewVertexArray(nil, gpu.Attrib{Buffer: b, Location: 0, Size: 2})
	require.NoError(t, err)
	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Width: 4, Height: 4, Attachments: 2, Depth: true})
	require.NoError(t, err)
	require.NotZero(t, f.Live())
	d.Release()
	assert.Zero(t, f.Live())
}

func TestCubeTextureUploadFace(t *testing.T) {
	d, f := newDevice(t)
	cube, err := d.NewCubeTexture(2, gpu.TextureFormatRGBA8, gpu.FilterLinear)
	require.NoError(t, err)
	for face := 0; face < 6; face++ {
		require.NoError(t, cube.UploadFace(face, make([]byte, 16)))
	}
	assert.Equal(t, 6, f.Count("TexSubImage2D"))
	assert.Error(t, cube.UploadFace(6, make([]byte, 16)))
	assert.Error(t, cube.UploadFace(0, make([]byte, 15)))
	assert.Error(t, cube.Upload(make([]byte, 16)))

	flat, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2}, make([]byte, 16))
	require.NoError(t, err)
	assert.Error(t, flat.UploadFace(0, make([]byte, 16)))
}
