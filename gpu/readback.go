// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"image"

	"github.com/glsketch/glsketch/internal/gl"
)

// ReadPixels reads a rectangle of an RGBA8 color attachment. The
// result has its origin at the top left.
func (f *Framebuffer) ReadPixels(attachment int, r image.Rectangle) (*image.RGBA, error) {
	if attachment < 0 || attachment >= len(f.textures) {
		return nil, fmt.Errorf("gpu: no color attachment %d", attachment)
	}
	if format := f.textures[attachment].desc.Format; format != TextureFormatRGBA8 {
		return nil, fmt.Errorf("gpu: ReadPixels of %s attachment, use ReadFloats", format)
	}
	d := f.dev
	d.state.bindFramebuffer(d.funcs, gl.READ_FRAMEBUFFER, f.obj)
	d.funcs.ReadBuffer(gl.COLOR_ATTACHMENT0 + gl.Enum(attachment))
	return d.readRGBA(r)
}

// ReadFloats reads a rectangle of an RGBA32F color attachment, bottom
// row first.
func (f *Framebuffer) ReadFloats(attachment int, r image.Rectangle) ([]float32, error) {
	if attachment < 0 || attachment >= len(f.textures) {
		return nil, fmt.Errorf("gpu: no color attachment %d", attachment)
	}
	if format := f.textures[attachment].desc.Format; format != TextureFormatRGBA32F {
		return nil, fmt.Errorf("gpu: ReadFloats of %s attachment", format)
	}
	d := f.dev
	d.state.bindFramebuffer(d.funcs, gl.READ_FRAMEBUFFER, f.obj)
	d.funcs.ReadBuffer(gl.COLOR_ATTACHMENT0 + gl.Enum(attachment))
	data := make([]float32, r.Dx()*r.Dy()*4)
	d.funcs.ReadPixels(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), gl.RGBA, gl.FLOAT, gl.BytesView(data))
	return data, nil
}

// ReadScreen reads a rectangle of the default framebuffer.
func (d *Device) ReadScreen(r image.Rectangle) (*image.RGBA, error) {
	d.state.bindFramebuffer(d.funcs, gl.READ_FRAMEBUFFER, gl.Framebuffer{})
	return d.readRGBA(r)
}

func (d *Device) readRGBA(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("gpu: empty readback rectangle %v", r)
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	d.funcs.ReadPixels(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	if err := glErr(d.funcs); err != nil {
		return nil, err
	}
	flipImageY(img.Stride, r.Dy(), img.Pix)
	return img, nil
}

func flipImageY(stride, height int, pixels []byte) {
	// Flip image in y-direction. OpenGL's origin is in the lower
	// left corner.
	row := make([]uint8, stride)
	for y := 0; y < height/2; y++ {
		y1 := height - y - 1
		dest := y1 * stride
		src := y * stride
		copy(row, pixels[dest:])
		copy(pixels[dest:], pixels[src:src+len(row)])
		copy(pixels[src:], row)
	}
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", uint(st))
	}
	return nil
}
