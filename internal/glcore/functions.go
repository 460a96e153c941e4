// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Package glcore implements gl.Functions on a desktop OpenGL 3.3 core
// profile context through go-gl.
package glcore

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	api "github.com/glsketch/glsketch/internal/gl"
)

const programPointSize = 0x8642

// Functions issues calls on the context current to the calling thread.
type Functions struct {
	exts []string
}

var _ api.Functions = (*Functions)(nil)

// New loads the GL entry points. A context must be current.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	f := new(Functions)
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		f.exts = append(f.exts, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))))
	}
	// gl_PointSize is always honored in ES and WebGL.
	gl.Enable(programPointSize)
	return f, nil
}

// EnableExtension reports the WebGL extensions the 3.3 core profile
// provides natively as available.
func (f *Functions) EnableExtension(name string) bool {
	switch name {
	case "EXT_color_buffer_float", "OES_texture_float", "OES_texture_float_linear":
		return true
	}
	for _, e := range f.exts {
		if e == name || e == "GL_"+name {
			return true
		}
	}
	return false
}

func (f *Functions) ActiveTexture(texture api.Enum) {
	gl.ActiveTexture(uint32(texture))
}
func (f *Functions) AttachShader(p api.Program, s api.Shader) {
	gl.AttachShader(uint32(p.V), uint32(s.V))
}
func (f *Functions) BeginTransformFeedback(mode api.Enum) {
	gl.BeginTransformFeedback(uint32(mode))
}
func (f *Functions) BindBuffer(target api.Enum, b api.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}
func (f *Functions) BindBufferBase(target api.Enum, index int, b api.Buffer) {
	gl.BindBufferBase(uint32(target), uint32(index), uint32(b.V))
}
func (f *Functions) BindFramebuffer(target api.Enum, fb api.Framebuffer) {
	gl.BindFramebuffer(uint32(target), uint32(fb.V))
}
func (f *Functions) BindRenderbuffer(target api.Enum, rb api.Renderbuffer) {
	gl.BindRenderbuffer(uint32(target), uint32(rb.V))
}
func (f *Functions) BindTexture(target api.Enum, t api.Texture) {
	gl.BindTexture(uint32(target), uint32(t.V))
}
func (f *Functions) BindVertexArray(a api.VertexArray) {
	gl.BindVertexArray(uint32(a.V))
}
func (f *Functions) BlendEquation(mode api.Enum) {
	gl.BlendEquation(uint32(mode))
}
func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA api.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}
func (f *Functions) BufferData(target api.Enum, size int, usage api.Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), size, p, uint32(usage))
}
func (f *Functions) BufferSubData(target api.Enum, offset int, src []byte) {
	if len(src) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(src), gl.Ptr(src))
}
func (f *Functions) CheckFramebufferStatus(target api.Enum) api.Enum {
	return api.Enum(gl.CheckFramebufferStatus(uint32(target)))
}
func (f *Functions) Clear(mask api.Enum) {
	gl.Clear(uint32(mask))
}
func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}
func (f *Functions) ClearDepthf(d float32) {
	gl.ClearDepth(float64(d))
}
func (f *Functions) CompileShader(s api.Shader) {
	gl.CompileShader(uint32(s.V))
}
func (f *Functions) CreateBuffer() api.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return api.Buffer{V: uint(b)}
}
func (f *Functions) CreateFramebuffer() api.Framebuffer {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return api.Framebuffer{V: uint(fb)}
}
func (f *Functions) CreateProgram() api.Program {
	return api.Program{V: uint(gl.CreateProgram())}
}
func (f *Functions) CreateRenderbuffer() api.Renderbuffer {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return api.Renderbuffer{V: uint(rb)}
}
func (f *Functions) CreateShader(ty api.Enum) api.Shader {
	return api.Shader{V: uint(gl.CreateShader(uint32(ty)))}
}
func (f *Functions) CreateTexture() api.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return api.Texture{V: uint(t)}
}
func (f *Functions) CreateVertexArray() api.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return api.VertexArray{V: uint(a)}
}
func (f *Functions) CullFace(mode api.Enum) {
	gl.CullFace(uint32(mode))
}
func (f *Functions) DeleteBuffer(v api.Buffer) {
	b := uint32(v.V)
	gl.DeleteBuffers(1, &b)
}
func (f *Functions) DeleteFramebuffer(v api.Framebuffer) {
	fb := uint32(v.V)
	gl.DeleteFramebuffers(1, &fb)
}
func (f *Functions) DeleteProgram(p api.Program) {
	gl.DeleteProgram(uint32(p.V))
}
func (f *Functions) DeleteRenderbuffer(v api.Renderbuffer) {
	rb := uint32(v.V)
	gl.DeleteRenderbuffers(1, &rb)
}
func (f *Functions) DeleteShader(s api.Shader) {
	gl.DeleteShader(uint32(s.V))
}
func (f *Functions) DeleteTexture(v api.Texture) {
	t := uint32(v.V)
	gl.DeleteTextures(1, &t)
}
func (f *Functions) DeleteVertexArray(a api.VertexArray) {
	va := uint32(a.V)
	gl.DeleteVertexArrays(1, &va)
}
func (f *Functions) DepthFunc(fn api.Enum) {
	gl.DepthFunc(uint32(fn))
}
func (f *Functions) DepthMask(mask bool) {
	gl.DepthMask(mask)
}
func (f *Functions) Disable(cap api.Enum) {
	gl.Disable(uint32(cap))
}
func (f *Functions) DisableVertexAttribArray(a api.Attrib) {
	gl.DisableVertexAttribArray(uint32(a))
}
func (f *Functions) DrawArrays(mode api.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}
func (f *Functions) DrawArraysInstanced(mode api.Enum, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}
func (f *Functions) DrawBuffers(bufs []api.Enum) {
	if len(bufs) == 0 {
		return
	}
	b := make([]uint32, len(bufs))
	for i, v := range bufs {
		b[i] = uint32(v)
	}
	gl.DrawBuffers(int32(len(b)), &b[0])
}
func (f *Functions) DrawElements(mode api.Enum, count int, ty api.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}
func (f *Functions) DrawElementsInstanced(mode api.Enum, count int, ty api.Enum, offset, instances int) {
	gl.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset), int32(instances))
}
func (f *Functions) Enable(cap api.Enum) {
	gl.Enable(uint32(cap))
}
func (f *Functions) EnableVertexAttribArray(a api.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}
func (f *Functions) EndTransformFeedback() {
	gl.EndTransformFeedback()
}
func (f *Functions) Finish() {
	gl.Finish()
}
func (f *Functions) Flush() {
	gl.Flush()
}
func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget api.Enum, renderbuffer api.Renderbuffer) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbuffertarget), uint32(renderbuffer.V))
}
func (f *Functions) FramebufferTexture2D(target, attachment, texTarget api.Enum, t api.Texture, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}
func (f *Functions) GenerateMipmap(target api.Enum) {
	gl.GenerateMipmap(uint32(target))
}
func (f *Functions) GetAttribLocation(p api.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p.V), gl.Str(name+"\x00")))
}
func (f *Functions) GetError() api.Enum {
	return api.Enum(gl.GetError())
}
func (f *Functions) GetInteger(pname api.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}
func (f *Functions) GetProgrami(p api.Program, pname api.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}
func (f *Functions) GetProgramInfoLog(p api.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p.V), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p.V), logLength, nil, gl.Str(log))
	return log[:logLength]
}
func (f *Functions) GetShaderi(s api.Shader, pname api.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}
func (f *Functions) GetShaderInfoLog(s api.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s.V), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s.V), logLength, nil, gl.Str(log))
	return log[:logLength]
}
func (f *Functions) GetString(pname api.Enum) string {
	if pname == api.EXTENSIONS {
		return strings.Join(f.exts, " ")
	}
	return gl.GoStr(gl.GetString(uint32(pname)))
}
func (f *Functions) GetUniformLocation(p api.Program, name string) api.Uniform {
	return api.Uniform{V: int(gl.GetUniformLocation(uint32(p.V), gl.Str(name+"\x00")))}
}
func (f *Functions) LinkProgram(p api.Program) {
	gl.LinkProgram(uint32(p.V))
}
func (f *Functions) PixelStorei(pname api.Enum, param int) {
	gl.PixelStorei(uint32(pname), int32(param))
}
func (f *Functions) ReadBuffer(src api.Enum) {
	gl.ReadBuffer(uint32(src))
}
func (f *Functions) ReadPixels(x, y, width, height int, format, ty api.Enum, data []byte) {
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), gl.Ptr(data))
}
func (f *Functions) RenderbufferStorage(target, internalformat api.Enum, width, height int) {
	gl.RenderbufferStorage(uint32(target), uint32(internalformat), int32(width), int32(height))
}
func (f *Functions) ShaderSource(s api.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s.V), 1, csources, nil)
	free()
}
func (f *Functions) TexImage2D(target api.Enum, level int, internalFormat api.Enum, width, height int, format, ty api.Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), p)
}
func (f *Functions) TexParameteri(target, pname api.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}
func (f *Functions) TexSubImage2D(target api.Enum, level int, x, y, width, height int, format, ty api.Enum, data []byte) {
	gl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), gl.Ptr(data))
}
func (f *Functions) TransformFeedbackVaryings(p api.Program, varyings []string, bufferMode api.Enum) {
	names := make([]string, len(varyings))
	for i, v := range varyings {
		names[i] = v + "\x00"
	}
	cvaryings, free := gl.Strs(names...)
	gl.TransformFeedbackVaryings(uint32(p.V), int32(len(names)), cvaryings, uint32(bufferMode))
	free()
}
func (f *Functions) Uniform1f(dst api.Uniform, v float32) {
	gl.Uniform1f(int32(dst.V), v)
}
func (f *Functions) Uniform1i(dst api.Uniform, v int) {
	gl.Uniform1i(int32(dst.V), int32(v))
}
func (f *Functions) Uniform2f(dst api.Uniform, v0, v1 float32) {
	gl.Uniform2f(int32(dst.V), v0, v1)
}
func (f *Functions) Uniform3f(dst api.Uniform, v0, v1, v2 float32) {
	gl.Uniform3f(int32(dst.V), v0, v1, v2)
}
func (f *Functions) Uniform4f(dst api.Uniform, v0, v1, v2, v3 float32) {
	gl.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}
func (f *Functions) UniformMatrix4fv(dst api.Uniform, data []float32) {
	gl.UniformMatrix4fv(int32(dst.V), 1, false, &data[0])
}
func (f *Functions) UseProgram(p api.Program) {
	gl.UseProgram(uint32(p.V))
}
func (f *Functions) VertexAttribDivisor(index api.Attrib, divisor int) {
	gl.VertexAttribDivisor(uint32(index), uint32(divisor))
}
func (f *Functions) VertexAttribPointer(dst api.Attrib, size int, ty api.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}
func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}
