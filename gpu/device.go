// SPDX-License-Identifier: Unlicense OR MIT

// Package gpu builds and drives the GPU resources of a sketch: programs,
// vertex buffers and arrays, textures, multiple render target
// framebuffers and transform feedback captures.
//
// A Device wraps one GL context and must only be used from the goroutine
// that owns the context.
package gpu

import (
	"fmt"
	"image"
	"strings"

	"github.com/glsketch/glsketch/internal/gl"
)

// Device is the render context passed through every pipeline stage.
type Device struct {
	funcs gl.Functions
	glver [2]int
	gles  bool
	caps  Caps
	state glState

	programs *programCache
	// owned holds every live resource in creation order.
	owned []resource
	// bound is the offscreen framebuffer currently bound for drawing,
	// nil for the screen.
	bound    *Framebuffer
	feedback feedbackState
}

// Caps describes the device limits relevant to sketches.
type Caps struct {
	MaxTextureSize      int
	MaxColorAttachments int
	MaxDrawBuffers      int
	MaxTextureUnits     int
	// FloatRenderTargets reports whether RGBA32F textures can be
	// rendered to.
	FloatRenderTargets bool
	// FloatLinear reports whether RGBA32F textures can be sampled with
	// linear filtering.
	FloatLinear bool
}

type resource interface {
	Release()
}

// NewDevice wraps a current OpenGL ES 3.0, WebGL 2 or OpenGL 3.3 core
// context.
func NewDevice(f gl.Functions) (*Device, error) {
	glVer := f.GetString(gl.VERSION)
	ver, gles, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return nil, err
	}
	if gles && ver[0] < 3 || !gles && (ver[0] < 3 || ver[0] == 3 && ver[1] < 3) {
		return nil, fmt.Errorf("gpu: OpenGL ES 3.0 or OpenGL 3.3 required, got %q", glVer)
	}
	d := &Device{
		funcs:    f,
		glver:    ver,
		gles:     gles,
		state:    newGLState(),
		programs: newProgramCache(),
	}
	d.caps.MaxTextureSize = f.GetInteger(gl.MAX_TEXTURE_SIZE)
	d.caps.MaxColorAttachments = f.GetInteger(gl.MAX_COLOR_ATTACHMENTS)
	d.caps.MaxDrawBuffers = f.GetInteger(gl.MAX_DRAW_BUFFERS)
	d.caps.MaxTextureUnits = min(f.GetInteger(gl.MAX_TEXTURE_IMAGE_UNITS), maxTextureUnits)
	d.caps.FloatRenderTargets = f.EnableExtension("EXT_color_buffer_float")
	d.caps.FloatLinear = f.EnableExtension("OES_texture_float_linear")
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.PixelStorei(gl.PACK_ALIGNMENT, 1)
	Logger().Info("gpu: device created",
		"version", glVer,
		"renderer", f.GetString(gl.RENDERER),
		"max_color_attachments", d.caps.MaxColorAttachments,
		"float_targets", d.caps.FloatRenderTargets)
	return d, nil
}

func (d *Device) Caps() Caps {
	return d.caps
}

// Functions exposes the underlying GL functions.
func (d *Device) Functions() gl.Functions {
	return d.funcs
}

// Require enables the named extensions, failing with
// ErrMissingExtension for the first one the context lacks.
func (d *Device) Require(exts ...string) error {
	for _, e := range exts {
		if !d.funcs.EnableExtension(e) {
			return missingExtension(e)
		}
	}
	return nil
}

// ShaderHeader returns the version and precision preamble prepended to
// shader sources that lack a #version directive.
func (d *Device) ShaderHeader() string {
	if d.gles {
		return "#version 300 es\nprecision highp float;\nprecision highp int;\nprecision highp sampler2D;\n"
	}
	return "#version 330 core\n"
}

func (d *Device) withHeader(src string) string {
	if strings.HasPrefix(strings.TrimSpace(src), "#version") {
		return src
	}
	return d.ShaderHeader() + src
}

func (d *Device) track(r resource) {
	d.owned = append(d.owned, r)
}

func (d *Device) untrack(r resource) {
	for i, o := range d.owned {
		if o == r {
			d.owned = append(d.owned[:i], d.owned[i+1:]...)
			return
		}
	}
}

// Release frees every resource created by the device that has not been
// released yet, newest first.
func (d *Device) Release() {
	for len(d.owned) > 0 {
		d.owned[len(d.owned)-1].Release()
	}
	d.programs.release(d)
}

// BindScreen binds the default framebuffer and sets the viewport to
// size.
func (d *Device) BindScreen(size image.Point) {
	d.state.bindFramebuffer(d.funcs, gl.FRAMEBUFFER, gl.Framebuffer{})
	d.bound = nil
	d.Viewport(0, 0, size.X, size.Y)
}

func (d *Device) Viewport(x, y, width, height int) {
	d.state.setViewport(d.funcs, x, y, width, height)
}

// Clear clears the color buffer of the bound framebuffer.
func (d *Device) Clear(r, g, b, a float32) {
	d.state.setClearColor(d.funcs, r, g, b, a)
	d.funcs.Clear(gl.COLOR_BUFFER_BIT)
}

// ClearDepth clears the depth buffer of the bound framebuffer. Depth
// writes are enabled first since a disabled mask also masks clears.
func (d *Device) ClearDepth(v float32) {
	d.state.setClearDepth(d.funcs, v)
	d.state.setDepthMask(d.funcs, true)
	d.funcs.Clear(gl.DEPTH_BUFFER_BIT)
}

func (d *Device) SetBlend(enable bool) {
	d.state.set(d.funcs, gl.BLEND, enable)
}

func (d *Device) BlendFunc(src, dst BlendFactor) {
	d.BlendFuncSeparate(src, dst, src, dst)
}

func (d *Device) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA BlendFactor) {
	d.state.setBlendFuncSeparate(d.funcs,
		toGLBlendFactor(srcRGB), toGLBlendFactor(dstRGB),
		toGLBlendFactor(srcA), toGLBlendFactor(dstA))
}

func (d *Device) SetDepthTest(enable bool) {
	d.state.set(d.funcs, gl.DEPTH_TEST, enable)
}

func (d *Device) DepthFunc(f DepthFunc) {
	var glfunc gl.Enum
	switch f {
	case DepthFuncLess:
		glfunc = gl.LESS
	case DepthFuncLessEqual:
		glfunc = gl.LEQUAL
	case DepthFuncGreater:
		glfunc = gl.GREATER
	case DepthFuncGreaterEqual:
		glfunc = gl.GEQUAL
	default:
		panic("unsupported depth func")
	}
	d.state.setDepthFunc(d.funcs, glfunc)
}

func (d *Device) DepthMask(mask bool) {
	d.state.setDepthMask(d.funcs, mask)
}

// SetCullFace toggles back face culling.
func (d *Device) SetCullFace(enable bool) {
	if enable && !d.state.cullFace {
		d.funcs.CullFace(gl.BACK)
	}
	d.state.set(d.funcs, gl.CULL_FACE, enable)
}

// Finish blocks until all issued commands complete.
func (d *Device) Finish() {
	d.funcs.Finish()
}
