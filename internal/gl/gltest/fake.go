// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Package gltest provides an in-memory gl.Functions that records calls
// and emulates enough object bookkeeping to exercise program building,
// framebuffer completeness and transform feedback without a GPU.
package gltest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/glsketch/glsketch/internal/gl"
	"golang.org/x/exp/maps"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []interface{}
}

// Draw describes a recorded draw call together with the state it ran
// under.
type Draw struct {
	Mode        gl.Enum
	First       int
	Count       int
	Instances   int
	Indexed     bool
	Program     gl.Program
	Framebuffer gl.Framebuffer
	VertexArray gl.VertexArray
	Feedback    bool
	Discard     bool
	Blend       bool
	DepthTest   bool
}

type shader struct {
	typ      gl.Enum
	src      string
	compiled bool
	log      string
	decl     declarations
}

type declarations struct {
	uniforms []string
	inputs   map[string]int
	outputs  []string
}

type program struct {
	shaders  []uint
	varyings []string
	mode     gl.Enum
	linked   bool
	log      string
	uniforms map[string]int
	attribs  map[string]int
	values   map[int][]float32
}

type texture struct {
	target gl.Enum
	format gl.Enum
	width  int
	height int
	// faces counts the allocated cube faces.
	faces  map[gl.Enum]bool
	params map[gl.Enum]int
	mipmap bool
}

type attachment struct {
	tex    uint
	target gl.Enum
	rb     uint
}

type framebuffer struct {
	attachments map[gl.Enum]attachment
	drawBuffers []gl.Enum
	clear       [4]float32
}

type renderbuffer struct {
	format        gl.Enum
	width, height int
}

// Fake implements gl.Functions in memory. The zero value is not
// usable; call New.
type Fake struct {
	Version             string
	Extensions          []string
	MaxColorAttachments int
	MaxTextureSize      int

	Calls []Call
	Draws []Draw

	next          uint
	shaders       map[uint]*shader
	programs      map[uint]*program
	buffers       map[uint][]byte
	textures      map[uint]*texture
	framebuffers  map[uint]*framebuffer
	renderbuffers map[uint]*renderbuffer
	vertexArrays  map[uint]bool
	enabledExts   map[string]bool

	prog        uint
	drawFBO     uint
	readFBO     uint
	renderBuf   uint
	vao         uint
	bound       map[gl.Enum]uint
	feedback    map[int]uint
	activeUnit  int
	units       map[int]map[gl.Enum]uint
	caps        map[gl.Enum]bool
	divisors    map[gl.Attrib]int
	feedbackOn  bool
	clearColor  [4]float32
	screenClear [4]float32
}

var _ gl.Functions = (*Fake)(nil)

// New returns a fake WebGL 2 style context exposing the float render
// target extensions.
func New() *Fake {
	return &Fake{
		Version:             "OpenGL ES 3.0 gltest",
		Extensions:          []string{"EXT_color_buffer_float", "OES_texture_float_linear"},
		MaxColorAttachments: 8,
		MaxTextureSize:      4096,
		shaders:             make(map[uint]*shader),
		programs:            make(map[uint]*program),
		buffers:             make(map[uint][]byte),
		textures:            make(map[uint]*texture),
		framebuffers:        make(map[uint]*framebuffer),
		renderbuffers:       make(map[uint]*renderbuffer),
		vertexArrays:        make(map[uint]bool),
		enabledExts:         make(map[string]bool),
		bound:               make(map[gl.Enum]uint),
		feedback:            make(map[int]uint),
		units:               make(map[int]map[gl.Enum]uint),
		caps:                make(map[gl.Enum]bool),
		divisors:            make(map[gl.Attrib]int),
	}
}

func (f *Fake) record(name string, args ...interface{}) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Fake) alloc() uint {
	f.next++
	return f.next
}

// Count returns how many times the named function was called.
func (f *Fake) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset clears the recorded calls and draws.
func (f *Fake) Reset() {
	f.Calls = nil
	f.Draws = nil
}

// BufferContents returns the bytes last uploaded to b.
func (f *Fake) BufferContents(b gl.Buffer) []byte {
	return f.buffers[b.V]
}

// UniformValue returns the last value set for the named uniform of p.
func (f *Fake) UniformValue(p gl.Program, name string) ([]float32, bool) {
	pr, ok := f.programs[p.V]
	if !ok {
		return nil, false
	}
	loc, ok := pr.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := pr.values[loc]
	return v, ok
}

// Live reports the number of objects that have been created and not
// deleted.
func (f *Fake) Live() int {
	return len(f.shaders) + len(f.programs) + len(f.buffers) + len(f.textures) +
		len(f.framebuffers) + len(f.renderbuffers) + len(f.vertexArrays)
}

// Enabled reports whether cap is enabled.
func (f *Fake) Enabled(cap gl.Enum) bool {
	return f.caps[cap]
}

// BoundTexture returns the texture bound to target on unit.
func (f *Fake) BoundTexture(unit int, target gl.Enum) gl.Texture {
	return gl.Texture{V: f.units[unit][target]}
}

// TextureFormat returns the internal format and size of t.
func (f *Fake) TextureFormat(t gl.Texture) (format gl.Enum, width, height int) {
	tex, ok := f.textures[t.V]
	if !ok {
		return 0, 0, 0
	}
	return tex.format, tex.width, tex.height
}

// DrawBufferList returns the draw buffer list registered on fb.
func (f *Fake) DrawBufferList(fb gl.Framebuffer) []gl.Enum {
	if fbo, ok := f.framebuffers[fb.V]; ok {
		return fbo.drawBuffers
	}
	return nil
}

var (
	mainRe    = regexp.MustCompile(`void\s+main\s*\(\s*(void)?\s*\)`)
	precision = `(?:(?:lowp|mediump|highp)\s+)?`
	uniformRe = regexp.MustCompile(`(?m)^\s*uniform\s+` + precision + `\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
	inRe      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(?:flat\s+|smooth\s+)?in\s+` + precision + `\w+\s+(\w+)\s*;`)
	outRe     = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*\d+\s*\)\s*)?(?:flat\s+|smooth\s+)?out\s+` + precision + `\w+\s+(\w+)\s*;`)
)

func parse(src string) declarations {
	d := declarations{inputs: make(map[string]int)}
	for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
		d.uniforms = append(d.uniforms, m[1])
	}
	for _, m := range inRe.FindAllStringSubmatch(src, -1) {
		loc := -1
		if m[1] != "" {
			fmt.Sscanf(m[1], "%d", &loc)
		}
		d.inputs[m[2]] = loc
	}
	for _, m := range outRe.FindAllStringSubmatch(src, -1) {
		d.outputs = append(d.outputs, m[1])
	}
	return d
}

func balanced(src string) bool {
	var depth [2]int
	for _, r := range src {
		switch r {
		case '{':
			depth[0]++
		case '}':
			depth[0]--
		case '(':
			depth[1]++
		case ')':
			depth[1]--
		}
		if depth[0] < 0 || depth[1] < 0 {
			return false
		}
	}
	return depth == [2]int{}
}

func (f *Fake) ActiveTexture(t gl.Enum) {
	f.record("ActiveTexture", t)
	f.activeUnit = int(t - gl.TEXTURE0)
}

func (f *Fake) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader", p, s)
	if pr, ok := f.programs[p.V]; ok {
		pr.shaders = append(pr.shaders, s.V)
	}
}

func (f *Fake) BeginTransformFeedback(mode gl.Enum) {
	f.record("BeginTransformFeedback", mode)
	f.feedbackOn = true
}

func (f *Fake) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer", target, b)
	f.bound[target] = b.V
}

func (f *Fake) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.record("BindBufferBase", target, index, b)
	f.bound[target] = b.V
	if target == gl.TRANSFORM_FEEDBACK_BUFFER {
		if b.V == 0 {
			delete(f.feedback, index)
		} else {
			f.feedback[index] = b.V
		}
	}
}

func (f *Fake) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer", target, fb)
	switch target {
	case gl.FRAMEBUFFER:
		f.drawFBO, f.readFBO = fb.V, fb.V
	case gl.DRAW_FRAMEBUFFER:
		f.drawFBO = fb.V
	case gl.READ_FRAMEBUFFER:
		f.readFBO = fb.V
	}
}

func (f *Fake) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.record("BindRenderbuffer", target, rb)
	f.renderBuf = rb.V
}

func (f *Fake) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture", target, t)
	u := f.units[f.activeUnit]
	if u == nil {
		u = make(map[gl.Enum]uint)
		f.units[f.activeUnit] = u
	}
	u[target] = t.V
	if tex, ok := f.textures[t.V]; ok && tex.target == 0 {
		tex.target = target
	}
}

func (f *Fake) BindVertexArray(a gl.VertexArray) {
	f.record("BindVertexArray", a)
	f.vao = a.V
}

func (f *Fake) BlendEquation(mode gl.Enum) {
	f.record("BlendEquation", mode)
}

func (f *Fake) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcA, dstA)
}

func (f *Fake) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.record("BufferData", target, size, usage)
	buf := make([]byte, size)
	copy(buf, data)
	if id := f.bound[target]; id != 0 {
		f.buffers[id] = buf
	}
}

func (f *Fake) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData", target, offset, len(src))
	if id := f.bound[target]; id != 0 {
		copy(f.buffers[id][offset:], src)
	}
}

func (f *Fake) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	id := f.drawFBO
	if target == gl.READ_FRAMEBUFFER {
		id = f.readFBO
	}
	if id == 0 {
		return gl.FRAMEBUFFER_COMPLETE
	}
	fbo := f.framebuffers[id]
	if len(fbo.attachments) == 0 {
		return gl.FRAMEBUFFER_MISSING_ATTACHMENT
	}
	for point, a := range fbo.attachments {
		if a.rb != 0 {
			if _, ok := f.renderbuffers[a.rb]; !ok {
				return gl.FRAMEBUFFER_INCOMPLETE
			}
			continue
		}
		tex, ok := f.textures[a.tex]
		if !ok || tex.width == 0 || tex.height == 0 {
			return gl.FRAMEBUFFER_INCOMPLETE
		}
		if a.target != gl.TEXTURE_2D && !tex.faces[a.target] {
			return gl.FRAMEBUFFER_INCOMPLETE
		}
		if point >= gl.COLOR_ATTACHMENT0 && isFloat(tex.format) && !f.enabledExts["EXT_color_buffer_float"] {
			return gl.FRAMEBUFFER_UNSUPPORTED
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func isFloat(format gl.Enum) bool {
	return format == gl.RGBA32F || format == gl.RGBA16F
}

func (f *Fake) Clear(mask gl.Enum) {
	f.record("Clear", mask)
	if mask&gl.COLOR_BUFFER_BIT == 0 {
		return
	}
	if fbo, ok := f.framebuffers[f.drawFBO]; ok {
		fbo.clear = f.clearColor
	} else {
		f.screenClear = f.clearColor
	}
}

func (f *Fake) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor", red, green, blue, alpha)
	f.clearColor = [4]float32{red, green, blue, alpha}
}

func (f *Fake) ClearDepthf(d float32) {
	f.record("ClearDepthf", d)
}

func (f *Fake) CompileShader(s gl.Shader) {
	f.record("CompileShader", s)
	sh, ok := f.shaders[s.V]
	if !ok {
		return
	}
	switch {
	case !mainRe.MatchString(sh.src):
		sh.log = "ERROR: 0:1: 'main' : function not defined"
	case !balanced(sh.src):
		sh.log = "ERROR: 0:1: '' : syntax error, unbalanced brackets"
	default:
		sh.compiled = true
		sh.decl = parse(sh.src)
	}
}

func (f *Fake) CreateBuffer() gl.Buffer {
	id := f.alloc()
	f.record("CreateBuffer", id)
	f.buffers[id] = nil
	return gl.Buffer{V: id}
}

func (f *Fake) CreateFramebuffer() gl.Framebuffer {
	id := f.alloc()
	f.record("CreateFramebuffer", id)
	f.framebuffers[id] = &framebuffer{attachments: make(map[gl.Enum]attachment)}
	return gl.Framebuffer{V: id}
}

func (f *Fake) CreateProgram() gl.Program {
	id := f.alloc()
	f.record("CreateProgram", id)
	f.programs[id] = &program{values: make(map[int][]float32)}
	return gl.Program{V: id}
}

func (f *Fake) CreateRenderbuffer() gl.Renderbuffer {
	id := f.alloc()
	f.record("CreateRenderbuffer", id)
	f.renderbuffers[id] = &renderbuffer{}
	return gl.Renderbuffer{V: id}
}

func (f *Fake) CreateShader(ty gl.Enum) gl.Shader {
	id := f.alloc()
	f.record("CreateShader", ty)
	f.shaders[id] = &shader{typ: ty}
	return gl.Shader{V: id}
}

func (f *Fake) CreateTexture() gl.Texture {
	id := f.alloc()
	f.record("CreateTexture", id)
	f.textures[id] = &texture{faces: make(map[gl.Enum]bool), params: make(map[gl.Enum]int)}
	return gl.Texture{V: id}
}

func (f *Fake) CreateVertexArray() gl.VertexArray {
	id := f.alloc()
	f.record("CreateVertexArray", id)
	f.vertexArrays[id] = true
	return gl.VertexArray{V: id}
}

func (f *Fake) CullFace(mode gl.Enum) {
	f.record("CullFace", mode)
}

func (f *Fake) DeleteBuffer(v gl.Buffer) {
	f.record("DeleteBuffer", v)
	delete(f.buffers, v.V)
}

func (f *Fake) DeleteFramebuffer(v gl.Framebuffer) {
	f.record("DeleteFramebuffer", v)
	delete(f.framebuffers, v.V)
}

func (f *Fake) DeleteProgram(p gl.Program) {
	f.record("DeleteProgram", p)
	delete(f.programs, p.V)
}

func (f *Fake) DeleteRenderbuffer(v gl.Renderbuffer) {
	f.record("DeleteRenderbuffer", v)
	delete(f.renderbuffers, v.V)
}

func (f *Fake) DeleteShader(s gl.Shader) {
	f.record("DeleteShader", s)
	delete(f.shaders, s.V)
}

func (f *Fake) DeleteTexture(v gl.Texture) {
	f.record("DeleteTexture", v)
	delete(f.textures, v.V)
}

func (f *Fake) DeleteVertexArray(a gl.VertexArray) {
	f.record("DeleteVertexArray", a)
	delete(f.vertexArrays, a.V)
}

func (f *Fake) DepthFunc(fn gl.Enum) {
	f.record("DepthFunc", fn)
}

func (f *Fake) DepthMask(mask bool) {
	f.record("DepthMask", mask)
}

func (f *Fake) Disable(cap gl.Enum) {
	f.record("Disable", cap)
	f.caps[cap] = false
}

func (f *Fake) DisableVertexAttribArray(a gl.Attrib) {
	f.record("DisableVertexAttribArray", a)
}

func (f *Fake) draw(d Draw) {
	d.Program = gl.Program{V: f.prog}
	d.Framebuffer = gl.Framebuffer{V: f.drawFBO}
	d.VertexArray = gl.VertexArray{V: f.vao}
	d.Feedback = f.feedbackOn
	d.Discard = f.caps[gl.RASTERIZER_DISCARD]
	d.Blend = f.caps[gl.BLEND]
	d.DepthTest = f.caps[gl.DEPTH_TEST]
	f.Draws = append(f.Draws, d)
}

func (f *Fake) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
	f.draw(Draw{Mode: mode, First: first, Count: count, Instances: 1})
}

func (f *Fake) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.record("DrawArraysInstanced", mode, first, count, instances)
	f.draw(Draw{Mode: mode, First: first, Count: count, Instances: instances})
}

func (f *Fake) DrawBuffers(bufs []gl.Enum) {
	f.record("DrawBuffers", bufs)
	if fbo, ok := f.framebuffers[f.drawFBO]; ok {
		fbo.drawBuffers = append([]gl.Enum(nil), bufs...)
	}
}

func (f *Fake) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements", mode, count, ty, offset)
	f.draw(Draw{Mode: mode, First: offset, Count: count, Instances: 1, Indexed: true})
}

func (f *Fake) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.record("DrawElementsInstanced", mode, count, ty, offset, instances)
	f.draw(Draw{Mode: mode, First: offset, Count: count, Instances: instances, Indexed: true})
}

func (f *Fake) Enable(cap gl.Enum) {
	f.record("Enable", cap)
	f.caps[cap] = true
}

func (f *Fake) EnableExtension(name string) bool {
	f.record("EnableExtension", name)
	for _, e := range f.Extensions {
		if e == name {
			f.enabledExts[name] = true
			return true
		}
	}
	return false
}

func (f *Fake) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray", a)
}

func (f *Fake) EndTransformFeedback() {
	f.record("EndTransformFeedback")
	f.feedbackOn = false
}

func (f *Fake) Finish() {
	f.record("Finish")
}

func (f *Fake) Flush() {
	f.record("Flush")
}

func (f *Fake) FramebufferRenderbuffer(target, attachmentPoint, renderbuffertarget gl.Enum, rb gl.Renderbuffer) {
	f.record("FramebufferRenderbuffer", target, attachmentPoint, rb)
	if fbo, ok := f.framebuffers[f.drawFBO]; ok {
		fbo.attachments[attachmentPoint] = attachment{rb: rb.V}
	}
}

func (f *Fake) FramebufferTexture2D(target, attachmentPoint, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachmentPoint, texTarget, t, level)
	if fbo, ok := f.framebuffers[f.drawFBO]; ok {
		fbo.attachments[attachmentPoint] = attachment{tex: t.V, target: texTarget}
	}
}

func (f *Fake) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap", target)
	if tex, ok := f.textures[f.units[f.activeUnit][target]]; ok {
		tex.mipmap = true
	}
}

func (f *Fake) GetAttribLocation(p gl.Program, name string) int {
	f.record("GetAttribLocation", p, name)
	if pr, ok := f.programs[p.V]; ok && pr.linked {
		if loc, ok := pr.attribs[name]; ok {
			return loc
		}
	}
	return -1
}

func (f *Fake) GetError() gl.Enum {
	return gl.NO_ERROR
}

func (f *Fake) GetInteger(pname gl.Enum) int {
	switch pname {
	case gl.MAX_COLOR_ATTACHMENTS, gl.MAX_DRAW_BUFFERS:
		return f.MaxColorAttachments
	case gl.MAX_TEXTURE_SIZE:
		return f.MaxTextureSize
	case gl.MAX_TEXTURE_IMAGE_UNITS:
		return 16
	case gl.NUM_EXTENSIONS:
		return len(f.Extensions)
	}
	return 0
}

func (f *Fake) GetProgrami(p gl.Program, pname gl.Enum) int {
	pr, ok := f.programs[p.V]
	if pname == gl.LINK_STATUS && ok && pr.linked {
		return gl.TRUE
	}
	return gl.FALSE
}

func (f *Fake) GetProgramInfoLog(p gl.Program) string {
	if pr, ok := f.programs[p.V]; ok {
		return pr.log
	}
	return ""
}

func (f *Fake) GetShaderi(s gl.Shader, pname gl.Enum) int {
	sh, ok := f.shaders[s.V]
	if pname == gl.COMPILE_STATUS && ok && sh.compiled {
		return gl.TRUE
	}
	return gl.FALSE
}

func (f *Fake) GetShaderInfoLog(s gl.Shader) string {
	if sh, ok := f.shaders[s.V]; ok {
		return sh.log
	}
	return ""
}

func (f *Fake) GetString(pname gl.Enum) string {
	switch pname {
	case gl.VERSION:
		return f.Version
	case gl.RENDERER:
		return "gltest"
	case gl.EXTENSIONS:
		exts := make([]string, len(f.Extensions))
		for i, e := range f.Extensions {
			exts[i] = "GL_" + e
		}
		return strings.Join(exts, " ")
	}
	return ""
}

func (f *Fake) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation", p, name)
	if pr, ok := f.programs[p.V]; ok && pr.linked {
		if loc, ok := pr.uniforms[name]; ok {
			return gl.Uniform{V: loc}
		}
	}
	return gl.NoUniform
}

func (f *Fake) LinkProgram(p gl.Program) {
	f.record("LinkProgram", p)
	pr, ok := f.programs[p.V]
	if !ok {
		return
	}
	pr.linked = false
	var vs, fs *shader
	for _, id := range pr.shaders {
		sh, ok := f.shaders[id]
		if !ok || !sh.compiled {
			pr.log = "ERROR: attached shader not compiled"
			return
		}
		switch sh.typ {
		case gl.VERTEX_SHADER:
			vs = sh
		case gl.FRAGMENT_SHADER:
			fs = sh
		}
	}
	if vs == nil || fs == nil {
		pr.log = "ERROR: missing vertex or fragment shader"
		return
	}
	outs := make(map[string]bool)
	for _, o := range vs.decl.outputs {
		outs[o] = true
	}
	for name := range fs.decl.inputs {
		if !outs[name] {
			pr.log = fmt.Sprintf("ERROR: fragment input %s not written by vertex shader", name)
			return
		}
	}
	for _, v := range pr.varyings {
		if v != "gl_Position" && !outs[v] {
			pr.log = fmt.Sprintf("ERROR: transform feedback varying %s not found", v)
			return
		}
	}
	names := make(map[string]bool)
	for _, u := range vs.decl.uniforms {
		names[u] = true
	}
	for _, u := range fs.decl.uniforms {
		names[u] = true
	}
	sorted := maps.Keys(names)
	sort.Strings(sorted)
	pr.uniforms = make(map[string]int)
	for i, n := range sorted {
		pr.uniforms[n] = i
	}
	pr.attribs = make(map[string]int)
	used := make(map[int]bool)
	for name, loc := range vs.decl.inputs {
		if loc >= 0 {
			pr.attribs[name] = loc
			used[loc] = true
		}
	}
	inputs := maps.Keys(vs.decl.inputs)
	sort.Strings(inputs)
	next := 0
	for _, name := range inputs {
		if _, ok := pr.attribs[name]; ok {
			continue
		}
		for used[next] {
			next++
		}
		pr.attribs[name] = next
		used[next] = true
	}
	pr.linked = true
	pr.log = ""
}

func (f *Fake) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei", pname, param)
}

func (f *Fake) ReadBuffer(src gl.Enum) {
	f.record("ReadBuffer", src)
}

// ReadPixels fills data with the last clear color of the read
// framebuffer.
func (f *Fake) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("ReadPixels", x, y, width, height, format, ty)
	c := f.screenClear
	if fbo, ok := f.framebuffers[f.readFBO]; ok {
		c = fbo.clear
	}
	var px [4]byte
	for i, v := range c {
		px[i] = byte(v*255 + 0.5)
	}
	for i := 0; i+4 <= len(data) && i < width*height*4; i += 4 {
		copy(data[i:], px[:])
	}
}

func (f *Fake) RenderbufferStorage(target, internalformat gl.Enum, width, height int) {
	f.record("RenderbufferStorage", target, internalformat, width, height)
	if rb, ok := f.renderbuffers[f.renderBuf]; ok {
		rb.format, rb.width, rb.height = internalformat, width, height
	}
}

func (f *Fake) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource", s)
	if sh, ok := f.shaders[s.V]; ok {
		sh.src = src
	}
}

func (f *Fake) boundTexture(target gl.Enum) *texture {
	bind := target
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target < gl.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		bind = gl.TEXTURE_CUBE_MAP
	}
	return f.textures[f.units[f.activeUnit][bind]]
}

func (f *Fake) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty)
	tex := f.boundTexture(target)
	if tex == nil || level != 0 {
		return
	}
	tex.format, tex.width, tex.height = internalFormat, width, height
	if target != gl.TEXTURE_2D {
		tex.faces[target] = true
	}
}

func (f *Fake) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
	if tex := f.boundTexture(target); tex != nil {
		tex.params[pname] = param
	}
}

func (f *Fake) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, format, ty)
}

func (f *Fake) TransformFeedbackVaryings(p gl.Program, varyings []string, bufferMode gl.Enum) {
	f.record("TransformFeedbackVaryings", p, varyings, bufferMode)
	if pr, ok := f.programs[p.V]; ok {
		pr.varyings = append([]string(nil), varyings...)
		pr.mode = bufferMode
	}
}

func (f *Fake) setUniform(dst gl.Uniform, v ...float32) {
	if pr, ok := f.programs[f.prog]; ok && dst.V >= 0 {
		pr.values[dst.V] = v
	}
}

func (f *Fake) Uniform1f(dst gl.Uniform, v float32) {
	f.record("Uniform1f", dst, v)
	f.setUniform(dst, v)
}

func (f *Fake) Uniform1i(dst gl.Uniform, v int) {
	f.record("Uniform1i", dst, v)
	f.setUniform(dst, float32(v))
}

func (f *Fake) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.record("Uniform2f", dst, v0, v1)
	f.setUniform(dst, v0, v1)
}

func (f *Fake) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.record("Uniform3f", dst, v0, v1, v2)
	f.setUniform(dst, v0, v1, v2)
}

func (f *Fake) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.record("Uniform4f", dst, v0, v1, v2, v3)
	f.setUniform(dst, v0, v1, v2, v3)
}

func (f *Fake) UniformMatrix4fv(dst gl.Uniform, data []float32) {
	f.record("UniformMatrix4fv", dst)
	f.setUniform(dst, append([]float32(nil), data...)...)
}

func (f *Fake) UseProgram(p gl.Program) {
	f.record("UseProgram", p)
	f.prog = p.V
}

func (f *Fake) VertexAttribDivisor(index gl.Attrib, divisor int) {
	f.record("VertexAttribDivisor", index, divisor)
	f.divisors[index] = divisor
}

func (f *Fake) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (f *Fake) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
}
