// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/glsketch/glsketch/internal/gl"
)

// FramebufferDesc describes a render target with one or more color
// attachments of identical format.
type FramebufferDesc struct {
	Width, Height int
	// Attachments is the number of color attachments, at least 1.
	Attachments int
	Format      TextureFormat
	Filter      TextureFilter
	Wrap        TextureWrap
	Depth       bool
}

// Framebuffer is an offscreen render target. Multiple attachments are
// written through layout(location = i) fragment outputs.
type Framebuffer struct {
	dev      *Device
	obj      gl.Framebuffer
	textures []*Texture
	depthBuf gl.Renderbuffer
	hasDepth bool
	size     image.Point
	// cube is set for framebuffers rendering into the faces of a cube
	// map.
	cube     bool
	face     int
	released bool
}

// NewFramebuffer allocates the attachment textures and a framebuffer
// drawing to all of them.
func (d *Device) NewFramebuffer(desc FramebufferDesc) (*Framebuffer, error) {
	if desc.Attachments == 0 {
		desc.Attachments = 1
	}
	if max := d.caps.MaxColorAttachments; desc.Attachments < 1 || max > 0 && desc.Attachments > max {
		return nil, fmt.Errorf("gpu: %d color attachments requested, maximum %d", desc.Attachments, max)
	}
	if desc.Format == TextureFormatRGBA32F && !d.caps.FloatRenderTargets {
		return nil, missingExtension("EXT_color_buffer_float")
	}
	fbo := &Framebuffer{
		dev:  d,
		obj:  d.funcs.CreateFramebuffer(),
		size: image.Pt(desc.Width, desc.Height),
	}
	d.track(fbo)
	texDesc := TextureDesc{Width: desc.Width, Height: desc.Height, Format: desc.Format, Filter: desc.Filter, Wrap: desc.Wrap}
	if texDesc.Filter.mipmapped() {
		texDesc.Filter = FilterLinear
	}
	for i := 0; i < desc.Attachments; i++ {
		tex, err := d.NewTexture(texDesc, nil)
		if err != nil {
			fbo.Release()
			return nil, err
		}
		fbo.textures = append(fbo.textures, tex)
	}
	d.bindFramebuffer(fbo)
	bufs := make([]gl.Enum, len(fbo.textures))
	for i, tex := range fbo.textures {
		bufs[i] = gl.COLOR_ATTACHMENT0 + gl.Enum(i)
		d.funcs.FramebufferTexture2D(gl.FRAMEBUFFER, bufs[i], gl.TEXTURE_2D, tex.obj, 0)
	}
	d.funcs.DrawBuffers(bufs)
	if desc.Depth {
		fbo.attachDepth()
	}
	if err := fbo.check(); err != nil {
		fbo.Release()
		return nil, err
	}
	Logger().Debug("gpu: framebuffer created", "size", fbo.size, "attachments", desc.Attachments, "format", desc.Format)
	return fbo, nil
}

// NewCubeFramebuffer creates a framebuffer rendering into the faces of
// a new RGBA8 cube map, selected with BindFace.
func (d *Device) NewCubeFramebuffer(size int, depth bool) (*Framebuffer, error) {
	fbo := &Framebuffer{
		dev:  d,
		obj:  d.funcs.CreateFramebuffer(),
		size: image.Pt(size, size),
		cube: true,
	}
	d.track(fbo)
	tex, err := d.NewCubeTexture(size, TextureFormatRGBA8, FilterLinear)
	if err != nil {
		fbo.Release()
		return nil, err
	}
	fbo.textures = []*Texture{tex}
	d.bindFramebuffer(fbo)
	d.funcs.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_CUBE_MAP_POSITIVE_X, tex.obj, 0)
	if depth {
		fbo.attachDepth()
	}
	if err := fbo.check(); err != nil {
		fbo.Release()
		return nil, err
	}
	return fbo, nil
}

func (f *Framebuffer) attachDepth() {
	d := f.dev
	f.depthBuf = d.funcs.CreateRenderbuffer()
	f.hasDepth = true
	d.state.bindRenderbuffer(d.funcs, f.depthBuf)
	d.funcs.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, f.size.X, f.size.Y)
	d.funcs.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depthBuf)
}

func (f *Framebuffer) check() error {
	if st := f.dev.funcs.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: status 0x%x", ErrIncompleteFramebuffer, uint(st))
	}
	return nil
}

func (d *Device) bindFramebuffer(f *Framebuffer) {
	d.state.bindFramebuffer(d.funcs, gl.FRAMEBUFFER, f.obj)
	d.bound = f
}

// Bind makes f the render target and sets the viewport to its size.
func (f *Framebuffer) Bind() {
	if f.released {
		panic("gpu: framebuffer used after release")
	}
	f.dev.bindFramebuffer(f)
	f.dev.Viewport(0, 0, f.size.X, f.size.Y)
}

// BindFace binds a cube framebuffer with face (0-5, in +X, -X, +Y, -Y,
// +Z, -Z order) as its color attachment.
func (f *Framebuffer) BindFace(face int) error {
	if !f.cube {
		return errors.New("gpu: BindFace on a 2D framebuffer")
	}
	if face < 0 || face > 5 {
		return fmt.Errorf("gpu: cube face %d out of range", face)
	}
	f.Bind()
	if face != f.face {
		f.dev.funcs.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_CUBE_MAP_POSITIVE_X+gl.Enum(face), f.textures[0].obj, 0)
		f.face = face
	}
	return nil
}

// Texture returns the texture of color attachment i.
func (f *Framebuffer) Texture(i int) *Texture {
	return f.textures[i]
}

func (f *Framebuffer) Textures() []*Texture {
	return f.textures
}

func (f *Framebuffer) Size() image.Point {
	return f.size
}

// attached reports whether t is one of the color attachments.
func (f *Framebuffer) attached(t gl.Texture) bool {
	for _, tex := range f.textures {
		if tex.obj.Equal(t) {
			return true
		}
	}
	return false
}

// Release deletes the framebuffer with its attachments.
func (f *Framebuffer) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	d := f.dev
	d.untrack(f)
	if d.bound == f {
		d.bound = nil
	}
	d.state.deleteFramebuffer(d.funcs, f.obj)
	if f.hasDepth {
		d.state.deleteRenderbuffer(d.funcs, f.depthBuf)
	}
	for _, t := range f.textures {
		t.Release()
	}
}
