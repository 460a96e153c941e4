// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ribbon is a line expanded to a triangle strip in the vertex shader.
// Each vertex carries its neighbours so the shader can offset it along
// the screen space normal, to the side given by Sign.
type Ribbon struct {
	Positions []float32
	Prev      []float32
	Next      []float32
	// Sign alternates between 1 and -1.
	Sign []float32
}

// NewRibbon builds the strip attributes for points. The first and last
// points are their own missing neighbours.
func NewRibbon(points []mgl32.Vec3) *Ribbon {
	n := len(points)
	r := &Ribbon{
		Positions: make([]float32, 0, n*3),
		Prev:      make([]float32, 0, n*3),
		Next:      make([]float32, 0, n*3),
		Sign:      make([]float32, n),
	}
	for i, p := range points {
		prev := points[max(i-1, 0)]
		next := points[min(i+1, n-1)]
		r.Positions = append(r.Positions, p[:]...)
		r.Prev = append(r.Prev, prev[:]...)
		r.Next = append(r.Next, next[:]...)
		r.Sign[i] = float32(i%2)*-2 + 1
	}
	return r
}

// Len returns the number of strip vertices.
func (r *Ribbon) Len() int {
	return len(r.Sign)
}

// Lissajous samples n points of a three dimensional Lissajous-like
// curve of the given amplitude.
func Lissajous(n int, amplitude float32) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, n)
	a := float64(amplitude)
	for i := range pts {
		t := float64(i)
		pts[i] = mgl32.Vec3{
			float32(a * math.Sin(0.032*t+0.35) * math.Sin(-0.029*t+4.86)),
			float32(a * math.Sin(0.041*t-1.96)),
			float32(a * math.Sin(0.078*t-5.21)),
		}
	}
	return pts
}
