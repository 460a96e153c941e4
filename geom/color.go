// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HSVA converts a hue in degrees and saturation, value and alpha in
// [0, 1] to RGBA. It reports false for components above 1.
func HSVA(h, s, v, a float32) (mgl32.Vec4, bool) {
	if s > 1 || v > 1 || a > 1 {
		return mgl32.Vec4{}, false
	}
	if s == 0 {
		return mgl32.Vec4{v, v, v, a}, true
	}
	th := float32(math.Mod(float64(h), 360))
	if th < 0 {
		th += 360
	}
	i := int(th / 60)
	f := th/60 - float32(i)
	m := v * (1 - s)
	n := v * (1 - s*f)
	k := v * (1 - s*(1-f))
	r := [6]float32{v, n, m, m, k, v}
	g := [6]float32{k, v, v, n, m, m}
	b := [6]float32{m, m, k, v, v, n}
	return mgl32.Vec4{r[i], g[i], b[i], a}, true
}

// hue returns the fully saturated color of hue h.
func hue(h float32) mgl32.Vec4 {
	c, _ := HSVA(h, 1, 1, 1)
	return c
}
