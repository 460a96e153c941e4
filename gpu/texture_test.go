// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"image"
	"testing"
)

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	for y := 0; y < 3; y++ {
		img.Pix[img.PixOffset(0, y)] = byte(y + 1)
	}
	out := flipRows(img)
	for y, want := range []byte{3, 2, 1} {
		if got := out[y*4]; got != want {
			t.Errorf("row %d: got %d, want %d", y, got, want)
		}
	}
}

func TestFlipRowsSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[img.PixOffset(2, 2)] = 7
	sub := img.SubImage(image.Rect(2, 2, 3, 4)).(*image.RGBA)
	out := flipRows(sub)
	if len(out) != 8 {
		t.Fatalf("got %d bytes, want 8", len(out))
	}
	if out[4] != 7 {
		t.Errorf("top row of sub image not last: %v", out)
	}
}

func TestFlipImageY(t *testing.T) {
	pix := []byte{1, 1, 2, 2, 3, 3}
	flipImageY(2, 3, pix)
	want := []byte{3, 3, 2, 2, 1, 1}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("got %v, want %v", pix, want)
		}
	}
}
