// SPDX-License-Identifier: Unlicense OR MIT

// Package asset loads and prepares the images sketches upload as
// textures.
package asset

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	xdraw "golang.org/x/image/draw"
)

// LoadImage decodes a PNG or JPEG image from fsys. Loading is abandoned
// if ctx is done before the decode finishes.
func LoadImage(ctx context.Context, fsys fs.FS, name string) (image.Image, error) {
	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		f, err := fsys.Open(name)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			err = fmt.Errorf("asset: decode %s: %w", name, err)
		}
		done <- result{img, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.img, r.err
	}
}

// Resize scales src to w×h with bilinear filtering.
func Resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// ToRGBA returns img as an *image.RGBA with its origin at (0, 0),
// converting only when necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
