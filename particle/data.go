// SPDX-License-Identifier: Unlicense OR MIT

package particle

import (
	"image"
	"math"
	"math/rand/v2"
)

// Stride is the number of floats per particle in an interleaved pool:
// position (2), age, life and velocity (2).
const Stride = 6

// Pool returns the initial contents of an interleaved pool of num
// particles. Every particle starts dead, its age one past a life drawn
// uniformly from [minLife, maxLife), so the first update respawns it.
func Pool(num int, minLife, maxLife float32, rng *rand.Rand) []float32 {
	data := make([]float32, num*Stride)
	for i := 0; i < num; i++ {
		life := minLife + rng.Float32()*(maxLife-minLife)
		p := data[i*Stride:]
		p[2] = life + 1
		p[3] = life
	}
	return data
}

// Noise returns w*h texels of two random bytes each, for an RG8 texture.
func Noise(w, h int, rng *rand.Rand) []byte {
	data := make([]byte, w*h*2)
	for i := range data {
		data[i] = byte(rng.IntN(256))
	}
	return data
}

// Separate holds one buffer per captured varying.
type Separate struct {
	// Position and Velocity hold 3 floats per particle, Color 4.
	Position []float32
	Velocity []float32
	Color    []float32
}

// Len returns the number of particles.
func (s *Separate) Len() int {
	return len(s.Position) / 3
}

// FromImage places one particle per pixel of img on a grid spanning
// clip space with row 0 at the top. Velocities point away from the
// center; the center particle stays put.
func FromImage(img image.Image) *Separate {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	s := &Separate{
		Position: make([]float32, 0, w*h*3),
		Velocity: make([]float32, 0, w*h*3),
		Color:    make([]float32, 0, w*h*4),
	}
	for i := 0; i < h; i++ {
		y := float32(i)/float32(h)*2 - 1
		for j := 0; j < w; j++ {
			x := float32(j)/float32(w)*2 - 1
			s.Position = append(s.Position, x, -y, 0)
			m := float32(math.Hypot(float64(x), float64(y)))
			if m == 0 {
				s.Velocity = append(s.Velocity, 0, 0, 0)
			} else {
				s.Velocity = append(s.Velocity, x/m, -y/m, 0)
			}
			r, g, bl, a := img.At(b.Min.X+j, b.Min.Y+i).RGBA()
			s.Color = append(s.Color, float32(r)/0xffff, float32(g)/0xffff, float32(bl)/0xffff, float32(a)/0xffff)
		}
	}
	return s
}
