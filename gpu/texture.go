// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"image"

	"github.com/glsketch/glsketch/internal/gl"
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Filter        TextureFilter
	Wrap          TextureWrap
}

type Texture struct {
	dev      *Device
	obj      gl.Texture
	target   gl.Enum
	desc     TextureDesc
	triple   textureTriple
	released bool
}

// NewTexture creates a 2D texture. pixels may be nil to leave the
// contents undefined, typically for render targets.
func (d *Device) NewTexture(desc TextureDesc, pixels []byte) (*Texture, error) {
	t, err := d.newTexture(gl.TEXTURE_2D, desc)
	if err != nil {
		return nil, err
	}
	if pixels != nil {
		if err := t.checkSize(len(pixels)); err != nil {
			t.Release()
			return nil, err
		}
	}
	d.funcs.TexImage2D(gl.TEXTURE_2D, 0, t.triple.internalFormat, desc.Width, desc.Height, t.triple.format, t.triple.typ, pixels)
	if pixels != nil && desc.Filter.mipmapped() {
		d.funcs.GenerateMipmap(gl.TEXTURE_2D)
	}
	return t, nil
}

// NewFloatTexture creates an RGBA32F texture from four floats per texel.
func (d *Device) NewFloatTexture(desc TextureDesc, data []float32) (*Texture, error) {
	desc.Format = TextureFormatRGBA32F
	return d.NewTexture(desc, gl.BytesView(data))
}

// NewImageTexture uploads an RGBA image. Row 0 of img becomes the top of
// the texture, matching UNPACK_FLIP_Y_WEBGL uploads of DOM images.
func (d *Device) NewImageTexture(img *image.RGBA, filter TextureFilter, wrap TextureWrap) (*Texture, error) {
	b := img.Bounds()
	desc := TextureDesc{Width: b.Dx(), Height: b.Dy(), Format: TextureFormatRGBA8, Filter: filter, Wrap: wrap}
	return d.NewTexture(desc, flipRows(img))
}

// NewCubeTexture creates an empty cube map with square faces of size.
func (d *Device) NewCubeTexture(size int, format TextureFormat, filter TextureFilter) (*Texture, error) {
	desc := TextureDesc{Width: size, Height: size, Format: format, Filter: filter, Wrap: WrapClamp}
	t, err := d.newTexture(gl.TEXTURE_CUBE_MAP, desc)
	if err != nil {
		return nil, err
	}
	for face := 0; face < 6; face++ {
		d.funcs.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+gl.Enum(face), 0, t.triple.internalFormat, size, size, t.triple.format, t.triple.typ, nil)
	}
	return t, nil
}

func (d *Device) newTexture(target gl.Enum, desc TextureDesc) (*Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("gpu: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if max := d.caps.MaxTextureSize; max > 0 && (desc.Width > max || desc.Height > max) {
		return nil, fmt.Errorf("gpu: texture size %dx%d exceeds maximum %d", desc.Width, desc.Height, max)
	}
	if desc.Format == TextureFormatRGBA32F && desc.Filter != FilterNearest && !d.caps.FloatLinear {
		return nil, missingExtension("OES_texture_float_linear")
	}
	t := &Texture{
		dev:    d,
		obj:    d.funcs.CreateTexture(),
		target: target,
		desc:   desc,
		triple: tripleFor(desc.Format),
	}
	d.state.bindTexture(d.funcs, 0, target, t.obj)
	minFilter, magFilter := gl.NEAREST, gl.NEAREST
	switch desc.Filter {
	case FilterLinear:
		minFilter, magFilter = gl.LINEAR, gl.LINEAR
	case FilterLinearMipmap:
		minFilter, magFilter = gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case FilterLinearMipmapNearest:
		minFilter, magFilter = gl.LINEAR_MIPMAP_NEAREST, gl.LINEAR
	}
	wrap := gl.CLAMP_TO_EDGE
	if desc.Wrap == WrapRepeat {
		wrap = gl.REPEAT
	}
	d.funcs.TexParameteri(target, gl.TEXTURE_MIN_FILTER, minFilter)
	d.funcs.TexParameteri(target, gl.TEXTURE_MAG_FILTER, magFilter)
	d.funcs.TexParameteri(target, gl.TEXTURE_WRAP_S, wrap)
	d.funcs.TexParameteri(target, gl.TEXTURE_WRAP_T, wrap)
	if target == gl.TEXTURE_CUBE_MAP {
		d.funcs.TexParameteri(target, gl.TEXTURE_WRAP_R, wrap)
	}
	d.track(t)
	return t, nil
}

func (t *Texture) checkSize(n int) error {
	if want := t.desc.Width * t.desc.Height * t.triple.bpp; n != want {
		return fmt.Errorf("gpu: %s texture %dx%d needs %d bytes, got %d", t.desc.Format, t.desc.Width, t.desc.Height, want, n)
	}
	return nil
}

// Upload replaces the contents of a 2D texture.
func (t *Texture) Upload(pixels []byte) error {
	if t.released {
		return ErrReleased
	}
	if t.target != gl.TEXTURE_2D {
		return fmt.Errorf("gpu: upload to a cube map")
	}
	if err := t.checkSize(len(pixels)); err != nil {
		return err
	}
	t.dev.state.bindTexture(t.dev.funcs, 0, t.target, t.obj)
	t.dev.funcs.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, t.desc.Width, t.desc.Height, t.triple.format, t.triple.typ, pixels)
	if t.desc.Filter.mipmapped() {
		t.dev.funcs.GenerateMipmap(gl.TEXTURE_2D)
	}
	return nil
}

// UploadFace replaces the contents of one face (0-5, in +X, -X, +Y,
// -Y, +Z, -Z order) of a cube map.
func (t *Texture) UploadFace(face int, pixels []byte) error {
	if t.released {
		return ErrReleased
	}
	if t.target != gl.TEXTURE_CUBE_MAP {
		return fmt.Errorf("gpu: face upload to a 2D texture")
	}
	if face < 0 || face > 5 {
		return fmt.Errorf("gpu: cube face %d out of range", face)
	}
	if err := t.checkSize(len(pixels)); err != nil {
		return err
	}
	t.dev.state.bindTexture(t.dev.funcs, 0, t.target, t.obj)
	t.dev.funcs.TexSubImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+gl.Enum(face), 0, 0, 0, t.desc.Width, t.desc.Height, t.triple.format, t.triple.typ, pixels)
	if t.desc.Filter.mipmapped() && face == 5 {
		t.dev.funcs.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	}
	return nil
}

// Bind binds the texture to a texture unit for sampling.
func (t *Texture) Bind(unit int) {
	if unit < 0 || unit >= maxTextureUnits {
		panic(fmt.Errorf("gpu: texture unit %d out of range", unit))
	}
	t.dev.state.bindTexture(t.dev.funcs, unit, t.target, t.obj)
}

func (t *Texture) Size() image.Point {
	return image.Pt(t.desc.Width, t.desc.Height)
}

func (t *Texture) Format() TextureFormat {
	return t.desc.Format
}

func (t *Texture) Release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	t.dev.untrack(t)
	t.dev.state.deleteTexture(t.dev.funcs, t.obj)
}

// flipRows returns the pixels of img bottom row first, the order
// TexImage2D expects.
func flipRows(img *image.RGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):][:w*4]
		copy(out[(h-1-y)*w*4:], row)
	}
	return out
}
