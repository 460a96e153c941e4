// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"github.com/glsketch/glsketch/internal/gl"
)

const (
	maxTextureUnits    = 16
	maxFeedbackBuffers = 4
)

type textureBinding struct {
	target gl.Enum
	tex    gl.Texture
}

// glState shadows the GL bindings and toggles so redundant calls are
// skipped.
type glState struct {
	drawFBO   gl.Framebuffer
	readFBO   gl.Framebuffer
	renderBuf gl.Renderbuffer
	prog      gl.Program
	texUnits  struct {
		active gl.Enum
		binds  [maxTextureUnits]textureBinding
	}
	arrayBuf     gl.Buffer
	elemBuf      gl.Buffer
	feedbackBuf  gl.Buffer
	feedbackBufs [maxFeedbackBuffers]gl.Buffer
	vertArray    gl.VertexArray
	depthMask    bool
	depthFunc    gl.Enum
	blend        struct {
		enable         bool
		srcRGB, dstRGB gl.Enum
		srcA, dstA     gl.Enum
	}
	depthTest  bool
	cullFace   bool
	discard    bool
	clearColor [4]float32
	clearDepth float32
	viewport   [4]int
}

// newGLState returns the state of a fresh context.
func newGLState() glState {
	s := glState{
		depthMask:  true,
		depthFunc:  gl.LESS,
		clearDepth: 1,
	}
	s.texUnits.active = gl.TEXTURE0
	s.blend.srcRGB, s.blend.srcA = gl.ONE, gl.ONE
	s.blend.dstRGB, s.blend.dstA = gl.ZERO, gl.ZERO
	return s
}

func (s *glState) activeTexture(f gl.Functions, unit gl.Enum) {
	if unit != s.texUnits.active {
		f.ActiveTexture(unit)
		s.texUnits.active = unit
	}
}

func (s *glState) bindRenderbuffer(f gl.Functions, r gl.Renderbuffer) {
	if !r.Equal(s.renderBuf) {
		f.BindRenderbuffer(gl.RENDERBUFFER, r)
		s.renderBuf = r
	}
}

func (s *glState) bindTexture(f gl.Functions, unit int, target gl.Enum, t gl.Texture) {
	s.activeTexture(f, gl.TEXTURE0+gl.Enum(unit))
	b := &s.texUnits.binds[unit]
	if b.target != target || !t.Equal(b.tex) {
		if b.target != 0 && b.target != target {
			f.BindTexture(b.target, gl.Texture{})
		}
		f.BindTexture(target, t)
		b.target = target
		b.tex = t
	}
}

func (s *glState) boundTexture(unit int) gl.Texture {
	return s.texUnits.binds[unit].tex
}

func (s *glState) bindVertexArray(f gl.Functions, a gl.VertexArray) {
	if !a.Equal(s.vertArray) {
		f.BindVertexArray(a)
		s.vertArray = a
		// The element binding is per vertex array.
		s.elemBuf = gl.Buffer{}
	}
}

func (s *glState) deleteRenderbuffer(f gl.Functions, r gl.Renderbuffer) {
	f.DeleteRenderbuffer(r)
	if r.Equal(s.renderBuf) {
		s.renderBuf = gl.Renderbuffer{}
	}
}

func (s *glState) deleteFramebuffer(f gl.Functions, fbo gl.Framebuffer) {
	f.DeleteFramebuffer(fbo)
	if fbo.Equal(s.drawFBO) {
		s.drawFBO = gl.Framebuffer{}
	}
	if fbo.Equal(s.readFBO) {
		s.readFBO = gl.Framebuffer{}
	}
}

func (s *glState) deleteBuffer(f gl.Functions, b gl.Buffer) {
	f.DeleteBuffer(b)
	if b.Equal(s.arrayBuf) {
		s.arrayBuf = gl.Buffer{}
	}
	if b.Equal(s.elemBuf) {
		s.elemBuf = gl.Buffer{}
	}
	if b.Equal(s.feedbackBuf) {
		s.feedbackBuf = gl.Buffer{}
	}
	for i, b2 := range s.feedbackBufs {
		if b.Equal(b2) {
			s.feedbackBufs[i] = gl.Buffer{}
		}
	}
}

func (s *glState) deleteProgram(f gl.Functions, p gl.Program) {
	f.DeleteProgram(p)
	if p.Equal(s.prog) {
		s.prog = gl.Program{}
	}
}

func (s *glState) deleteVertexArray(f gl.Functions, a gl.VertexArray) {
	f.DeleteVertexArray(a)
	if a.Equal(s.vertArray) {
		s.vertArray = gl.VertexArray{}
	}
}

func (s *glState) deleteTexture(f gl.Functions, t gl.Texture) {
	f.DeleteTexture(t)
	binds := &s.texUnits.binds
	for i, b := range binds {
		if t.Equal(b.tex) {
			binds[i] = textureBinding{}
		}
	}
}

func (s *glState) useProgram(f gl.Functions, p gl.Program) {
	if !p.Equal(s.prog) {
		f.UseProgram(p)
		s.prog = p
	}
}

func (s *glState) bindFramebuffer(f gl.Functions, target gl.Enum, fbo gl.Framebuffer) {
	switch target {
	case gl.FRAMEBUFFER:
		if fbo.Equal(s.drawFBO) && fbo.Equal(s.readFBO) {
			return
		}
		s.drawFBO = fbo
		s.readFBO = fbo
	case gl.READ_FRAMEBUFFER:
		if fbo.Equal(s.readFBO) {
			return
		}
		s.readFBO = fbo
	case gl.DRAW_FRAMEBUFFER:
		if fbo.Equal(s.drawFBO) {
			return
		}
		s.drawFBO = fbo
	default:
		panic("unknown target")
	}
	f.BindFramebuffer(target, fbo)
}

func (s *glState) bindBufferBase(f gl.Functions, target gl.Enum, idx int, buf gl.Buffer) {
	switch target {
	case gl.TRANSFORM_FEEDBACK_BUFFER:
		if buf.Equal(s.feedbackBuf) && buf.Equal(s.feedbackBufs[idx]) {
			return
		}
		s.feedbackBuf = buf
		s.feedbackBufs[idx] = buf
	default:
		panic("unknown buffer target")
	}
	f.BindBufferBase(target, idx, buf)
}

func (s *glState) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	switch target {
	case gl.ARRAY_BUFFER:
		if buf.Equal(s.arrayBuf) {
			return
		}
		s.arrayBuf = buf
	case gl.ELEMENT_ARRAY_BUFFER:
		if buf.Equal(s.elemBuf) {
			return
		}
		s.elemBuf = buf
	case gl.TRANSFORM_FEEDBACK_BUFFER:
		if buf.Equal(s.feedbackBuf) {
			return
		}
		s.feedbackBuf = buf
	default:
		panic("unknown buffer target")
	}
	f.BindBuffer(target, buf)
}

func (s *glState) setClearDepth(f gl.Functions, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setClearColor(f gl.Functions, r, g, b, a float32) {
	col := [4]float32{r, g, b, a}
	if col != s.clearColor {
		f.ClearColor(r, g, b, a)
		s.clearColor = col
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if view != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = view
	}
}

func (s *glState) setDepthFunc(f gl.Functions, df gl.Enum) {
	if df != s.depthFunc {
		f.DepthFunc(df)
		s.depthFunc = df
	}
}

func (s *glState) setBlendFuncSeparate(f gl.Functions, srcRGB, dstRGB, srcA, dstA gl.Enum) {
	if srcRGB != s.blend.srcRGB || dstRGB != s.blend.dstRGB || srcA != s.blend.srcA || dstA != s.blend.dstA {
		s.blend.srcRGB = srcRGB
		s.blend.dstRGB = dstRGB
		s.blend.srcA = srcA
		s.blend.dstA = dstA
		f.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
	}
}

func (s *glState) setDepthMask(f gl.Functions, enable bool) {
	if enable != s.depthMask {
		f.DepthMask(enable)
		s.depthMask = enable
	}
}

func (s *glState) set(f gl.Functions, target gl.Enum, enable bool) {
	switch target {
	case gl.BLEND:
		if enable == s.blend.enable {
			return
		}
		s.blend.enable = enable
	case gl.DEPTH_TEST:
		if enable == s.depthTest {
			return
		}
		s.depthTest = enable
	case gl.CULL_FACE:
		if enable == s.cullFace {
			return
		}
		s.cullFace = enable
	case gl.RASTERIZER_DISCARD:
		if enable == s.discard {
			return
		}
		s.discard = enable
	default:
		panic("unknown enable")
	}
	if enable {
		f.Enable(target)
	} else {
		f.Disable(target)
	}
}
