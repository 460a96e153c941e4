// SPDX-License-Identifier: Unlicense OR MIT

package asset

import (
	"fmt"
	"image"
	"math"

	"eliasnaur.com/font/roboto/robotoregular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextAtlas draws the runes of text in white on a transparent size×size
// image, one per cell of a square grid with ceil(sqrt(n)) columns. A nil
// face selects Roboto. Runes the face has no glyph for draw as the
// face's replacement glyph.
func TextAtlas(text string, size int, face *opentype.Font) (*image.RGBA, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, fmt.Errorf("asset: empty atlas text")
	}
	if face == nil {
		f, err := opentype.Parse(robotoregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("asset: parse roboto: %w", err)
		}
		face = f
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(runes)))))
	cell := float64(size) / float64(cols)
	ff, err := opentype.NewFace(face, &opentype.FaceOptions{
		Size:    cell * 1.1,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("asset: atlas face: %w", err)
	}
	defer ff.Close()

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: ff,
	}
	for i, r := range runes {
		s := string(r)
		adv := d.MeasureString(s)
		x := float64(i%cols)*cell + cell/2
		y := float64(i/cols)*cell + cell*0.9
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(x*64) - adv/2,
			Y: fixed.Int26_6(y * 64),
		}
		d.DrawString(s)
	}
	return dst, nil
}
