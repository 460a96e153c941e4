// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"strings"
	"syscall/js"
)

// WebGL implements Functions on a WebGL2RenderingContext.
type WebGL struct {
	Ctx js.Value

	// Cached references to typed array constructors.
	uint8Array   js.Value
	uint16Array  js.Value
	float32Array js.Value

	// Cached JS arrays.
	arrayBuf js.Value
	floatBuf js.Value

	exts map[string]js.Value
}

type Context js.Value

var _ Functions = (*WebGL)(nil)

func NewWebGL(ctx Context) (*WebGL, error) {
	v := js.Value(ctx)
	webgl2Class := js.Global().Get("WebGL2RenderingContext")
	if webgl2Class.IsUndefined() || !v.InstanceOf(webgl2Class) {
		return nil, errors.New("gl: WebGL2 context required")
	}
	return &WebGL{
		Ctx:          v,
		uint8Array:   js.Global().Get("Uint8Array"),
		uint16Array:  js.Global().Get("Uint16Array"),
		float32Array: js.Global().Get("Float32Array"),
		exts:         make(map[string]js.Value),
	}, nil
}

func (f *WebGL) EnableExtension(name string) bool {
	ext, ok := f.exts[name]
	if !ok {
		ext = f.Ctx.Call("getExtension", name)
		f.exts[name] = ext
	}
	return valid(ext)
}

func (f *WebGL) ActiveTexture(t Enum) {
	f.Ctx.Call("activeTexture", int(t))
}
func (f *WebGL) AttachShader(p Program, s Shader) {
	f.Ctx.Call("attachShader", js.Value(p), js.Value(s))
}
func (f *WebGL) BeginTransformFeedback(mode Enum) {
	f.Ctx.Call("beginTransformFeedback", int(mode))
}
func (f *WebGL) BindBuffer(target Enum, b Buffer) {
	f.Ctx.Call("bindBuffer", int(target), js.Value(b))
}
func (f *WebGL) BindBufferBase(target Enum, index int, b Buffer) {
	f.Ctx.Call("bindBufferBase", int(target), index, js.Value(b))
}
func (f *WebGL) BindFramebuffer(target Enum, fb Framebuffer) {
	f.Ctx.Call("bindFramebuffer", int(target), js.Value(fb))
}
func (f *WebGL) BindRenderbuffer(target Enum, rb Renderbuffer) {
	f.Ctx.Call("bindRenderbuffer", int(target), js.Value(rb))
}
func (f *WebGL) BindTexture(target Enum, t Texture) {
	f.Ctx.Call("bindTexture", int(target), js.Value(t))
}
func (f *WebGL) BindVertexArray(a VertexArray) {
	f.Ctx.Call("bindVertexArray", js.Value(a))
}
func (f *WebGL) BlendEquation(mode Enum) {
	f.Ctx.Call("blendEquation", int(mode))
}
func (f *WebGL) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	f.Ctx.Call("blendFuncSeparate", int(srcRGB), int(dstRGB), int(srcA), int(dstA))
}
func (f *WebGL) BufferData(target Enum, size int, usage Enum, data []byte) {
	if data == nil {
		f.Ctx.Call("bufferData", int(target), size, int(usage))
	} else {
		f.Ctx.Call("bufferData", int(target), f.byteArrayOf(data), int(usage))
	}
}
func (f *WebGL) BufferSubData(target Enum, offset int, src []byte) {
	f.Ctx.Call("bufferSubData", int(target), offset, f.byteArrayOf(src))
}
func (f *WebGL) CheckFramebufferStatus(target Enum) Enum {
	return Enum(f.Ctx.Call("checkFramebufferStatus", int(target)).Int())
}
func (f *WebGL) Clear(mask Enum) {
	f.Ctx.Call("clear", int(mask))
}
func (f *WebGL) ClearColor(red, green, blue, alpha float32) {
	f.Ctx.Call("clearColor", red, green, blue, alpha)
}
func (f *WebGL) ClearDepthf(d float32) {
	f.Ctx.Call("clearDepth", d)
}
func (f *WebGL) CompileShader(s Shader) {
	f.Ctx.Call("compileShader", js.Value(s))
}
func (f *WebGL) CreateBuffer() Buffer {
	return Buffer(f.Ctx.Call("createBuffer"))
}
func (f *WebGL) CreateFramebuffer() Framebuffer {
	return Framebuffer(f.Ctx.Call("createFramebuffer"))
}
func (f *WebGL) CreateProgram() Program {
	return Program(f.Ctx.Call("createProgram"))
}
func (f *WebGL) CreateRenderbuffer() Renderbuffer {
	return Renderbuffer(f.Ctx.Call("createRenderbuffer"))
}
func (f *WebGL) CreateShader(ty Enum) Shader {
	return Shader(f.Ctx.Call("createShader", int(ty)))
}
func (f *WebGL) CreateTexture() Texture {
	return Texture(f.Ctx.Call("createTexture"))
}
func (f *WebGL) CreateVertexArray() VertexArray {
	return VertexArray(f.Ctx.Call("createVertexArray"))
}
func (f *WebGL) CullFace(mode Enum) {
	f.Ctx.Call("cullFace", int(mode))
}
func (f *WebGL) DeleteBuffer(v Buffer) {
	f.Ctx.Call("deleteBuffer", js.Value(v))
}
func (f *WebGL) DeleteFramebuffer(v Framebuffer) {
	f.Ctx.Call("deleteFramebuffer", js.Value(v))
}
func (f *WebGL) DeleteProgram(p Program) {
	f.Ctx.Call("deleteProgram", js.Value(p))
}
func (f *WebGL) DeleteShader(s Shader) {
	f.Ctx.Call("deleteShader", js.Value(s))
}
func (f *WebGL) DeleteRenderbuffer(v Renderbuffer) {
	f.Ctx.Call("deleteRenderbuffer", js.Value(v))
}
func (f *WebGL) DeleteTexture(v Texture) {
	f.Ctx.Call("deleteTexture", js.Value(v))
}
func (f *WebGL) DeleteVertexArray(a VertexArray) {
	f.Ctx.Call("deleteVertexArray", js.Value(a))
}
func (f *WebGL) DepthFunc(fn Enum) {
	f.Ctx.Call("depthFunc", int(fn))
}
func (f *WebGL) DepthMask(mask bool) {
	f.Ctx.Call("depthMask", mask)
}
func (f *WebGL) DisableVertexAttribArray(a Attrib) {
	f.Ctx.Call("disableVertexAttribArray", int(a))
}
func (f *WebGL) Disable(cap Enum) {
	f.Ctx.Call("disable", int(cap))
}
func (f *WebGL) DrawArrays(mode Enum, first, count int) {
	f.Ctx.Call("drawArrays", int(mode), first, count)
}
func (f *WebGL) DrawArraysInstanced(mode Enum, first, count, instances int) {
	f.Ctx.Call("drawArraysInstanced", int(mode), first, count, instances)
}
func (f *WebGL) DrawBuffers(bufs []Enum) {
	arr := make([]interface{}, len(bufs))
	for i, b := range bufs {
		arr[i] = int(b)
	}
	f.Ctx.Call("drawBuffers", js.ValueOf(arr))
}
func (f *WebGL) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.Ctx.Call("drawElements", int(mode), count, int(ty), offset)
}
func (f *WebGL) DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int) {
	f.Ctx.Call("drawElementsInstanced", int(mode), count, int(ty), offset, instances)
}
func (f *WebGL) Enable(cap Enum) {
	f.Ctx.Call("enable", int(cap))
}
func (f *WebGL) EnableVertexAttribArray(a Attrib) {
	f.Ctx.Call("enableVertexAttribArray", int(a))
}
func (f *WebGL) EndTransformFeedback() {
	f.Ctx.Call("endTransformFeedback")
}
func (f *WebGL) Finish() {
	f.Ctx.Call("finish")
}
func (f *WebGL) Flush() {
	f.Ctx.Call("flush")
}
func (f *WebGL) FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer) {
	f.Ctx.Call("framebufferRenderbuffer", int(target), int(attachment), int(renderbuffertarget), js.Value(renderbuffer))
}
func (f *WebGL) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.Ctx.Call("framebufferTexture2D", int(target), int(attachment), int(texTarget), js.Value(t), level)
}
func (f *WebGL) GenerateMipmap(target Enum) {
	f.Ctx.Call("generateMipmap", int(target))
}
func (f *WebGL) GetAttribLocation(p Program, name string) int {
	return f.Ctx.Call("getAttribLocation", js.Value(p), name).Int()
}
func (f *WebGL) GetError() Enum {
	// Avoid slow getError calls. See gio#179.
	return 0
}
func (f *WebGL) GetInteger(pname Enum) int {
	return paramVal(f.Ctx.Call("getParameter", int(pname)))
}
func (f *WebGL) GetProgrami(p Program, pname Enum) int {
	return paramVal(f.Ctx.Call("getProgramParameter", js.Value(p), int(pname)))
}
func (f *WebGL) GetProgramInfoLog(p Program) string {
	return f.Ctx.Call("getProgramInfoLog", js.Value(p)).String()
}
func (f *WebGL) GetShaderi(s Shader, pname Enum) int {
	return paramVal(f.Ctx.Call("getShaderParameter", js.Value(s), int(pname)))
}
func (f *WebGL) GetShaderInfoLog(s Shader) string {
	return f.Ctx.Call("getShaderInfoLog", js.Value(s)).String()
}
func (f *WebGL) GetString(pname Enum) string {
	switch pname {
	case EXTENSIONS:
		extsjs := f.Ctx.Call("getSupportedExtensions")
		var exts []string
		for i := 0; i < extsjs.Length(); i++ {
			exts = append(exts, "GL_"+extsjs.Index(i).String())
		}
		return strings.Join(exts, " ")
	default:
		return f.Ctx.Call("getParameter", int(pname)).String()
	}
}
func (f *WebGL) GetUniformLocation(p Program, name string) Uniform {
	return Uniform(f.Ctx.Call("getUniformLocation", js.Value(p), name))
}
func (f *WebGL) LinkProgram(p Program) {
	f.Ctx.Call("linkProgram", js.Value(p))
}
func (f *WebGL) PixelStorei(pname Enum, param int) {
	f.Ctx.Call("pixelStorei", int(pname), param)
}
func (f *WebGL) ReadBuffer(src Enum) {
	f.Ctx.Call("readBuffer", int(src))
}
func (f *WebGL) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	ba := f.typedArrayOf(ty, data)
	f.Ctx.Call("readPixels", x, y, width, height, int(format), int(ty), ba)
	js.CopyBytesToGo(data, f.uint8Array.New(ba.Get("buffer"), 0, len(data)))
}
func (f *WebGL) RenderbufferStorage(target, internalformat Enum, width, height int) {
	f.Ctx.Call("renderbufferStorage", int(target), int(internalformat), width, height)
}
func (f *WebGL) ShaderSource(s Shader, src string) {
	f.Ctx.Call("shaderSource", js.Value(s), src)
}
func (f *WebGL) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	var pixels interface{}
	if data != nil {
		pixels = f.typedArrayOf(ty, data)
	}
	f.Ctx.Call("texImage2D", int(target), level, int(internalFormat), width, height, 0, int(format), int(ty), pixels)
}
func (f *WebGL) TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte) {
	f.Ctx.Call("texSubImage2D", int(target), level, x, y, width, height, int(format), int(ty), f.typedArrayOf(ty, data))
}
func (f *WebGL) TexParameteri(target, pname Enum, param int) {
	f.Ctx.Call("texParameteri", int(target), int(pname), param)
}
func (f *WebGL) TransformFeedbackVaryings(p Program, varyings []string, bufferMode Enum) {
	arr := make([]interface{}, len(varyings))
	for i, v := range varyings {
		arr[i] = v
	}
	f.Ctx.Call("transformFeedbackVaryings", js.Value(p), js.ValueOf(arr), int(bufferMode))
}
func (f *WebGL) Uniform1f(dst Uniform, v float32) {
	f.Ctx.Call("uniform1f", js.Value(dst), v)
}
func (f *WebGL) Uniform1i(dst Uniform, v int) {
	f.Ctx.Call("uniform1i", js.Value(dst), v)
}
func (f *WebGL) Uniform2f(dst Uniform, v0, v1 float32) {
	f.Ctx.Call("uniform2f", js.Value(dst), v0, v1)
}
func (f *WebGL) Uniform3f(dst Uniform, v0, v1, v2 float32) {
	f.Ctx.Call("uniform3f", js.Value(dst), v0, v1, v2)
}
func (f *WebGL) Uniform4f(dst Uniform, v0, v1, v2, v3 float32) {
	f.Ctx.Call("uniform4f", js.Value(dst), v0, v1, v2, v3)
}
func (f *WebGL) UniformMatrix4fv(dst Uniform, data []float32) {
	if f.floatBuf.IsUndefined() {
		f.floatBuf = f.float32Array.New(16)
	}
	for i, v := range data[:16] {
		f.floatBuf.SetIndex(i, v)
	}
	f.Ctx.Call("uniformMatrix4fv", js.Value(dst), false, f.floatBuf)
}
func (f *WebGL) UseProgram(p Program) {
	f.Ctx.Call("useProgram", js.Value(p))
}
func (f *WebGL) VertexAttribDivisor(index Attrib, divisor int) {
	f.Ctx.Call("vertexAttribDivisor", int(index), divisor)
}
func (f *WebGL) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.Ctx.Call("vertexAttribPointer", int(dst), size, int(ty), normalized, stride, offset)
}
func (f *WebGL) Viewport(x, y, width, height int) {
	f.Ctx.Call("viewport", x, y, width, height)
}

// typedArrayOf copies data into the shared scratch buffer and returns a
// view whose element type matches ty, as required by texImage2D and
// readPixels.
func (f *WebGL) typedArrayOf(ty Enum, data []byte) js.Value {
	ba := f.byteArrayOf(data)
	if ba.IsNull() {
		return ba
	}
	switch ty {
	case FLOAT:
		return f.float32Array.New(f.arrayBuf, 0, len(data)/4)
	case UNSIGNED_SHORT:
		return f.uint16Array.New(f.arrayBuf, 0, len(data)/2)
	default:
		return ba
	}
}

func (f *WebGL) byteArrayOf(data []byte) js.Value {
	if len(data) == 0 {
		return js.Null()
	}
	f.resizeByteBuffer(len(data))
	ba := f.uint8Array.New(f.arrayBuf, int(0), int(len(data)))
	js.CopyBytesToJS(ba, data)
	return ba
}

func (f *WebGL) resizeByteBuffer(n int) {
	if n == 0 {
		return
	}
	if !f.arrayBuf.IsUndefined() && f.arrayBuf.Get("byteLength").Int() >= n {
		return
	}
	f.arrayBuf = js.Global().Get("ArrayBuffer").New(n)
}

func paramVal(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if b := v.Bool(); b {
			return 1
		} else {
			return 0
		}
	case js.TypeNumber:
		return v.Int()
	default:
		panic("unknown parameter type")
	}
}
