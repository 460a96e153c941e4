// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the subset of OpenGL ES 3.0 / WebGL 2 shared by every
// backend. Data arguments are raw bytes in native order; use BytesView
// to pass typed slices.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BeginTransformFeedback(primitiveMode Enum)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindRenderbuffer(target Enum, fb Renderbuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendEquation(mode Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateRenderbuffer() Renderbuffer
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	CullFace(mode Enum)
	DeleteBuffer(v Buffer)
	DeleteFramebuffer(v Framebuffer)
	DeleteProgram(p Program)
	DeleteRenderbuffer(v Renderbuffer)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DeleteVertexArray(a VertexArray)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	Disable(cap Enum)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawBuffers(bufs []Enum)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	EndTransformFeedback()
	// EnableExtension activates an optional extension and reports
	// whether it is available.
	EnableExtension(name string) bool
	Finish()
	Flush()
	FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	GenerateMipmap(target Enum)
	GetAttribLocation(p Program, name string) int
	GetError() Enum
	GetInteger(pname Enum) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	ReadBuffer(src Enum)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	RenderbufferStorage(target, internalformat Enum, width, height int)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level int, xoff, yoff, width, height int, format, ty Enum, data []byte)
	TransformFeedbackVaryings(p Program, varyings []string, bufferMode Enum)
	Uniform1f(dst Uniform, v float32)
	Uniform1i(dst Uniform, v int)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst Uniform, data []float32)
	UseProgram(p Program)
	VertexAttribDivisor(index Attrib, divisor int)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
