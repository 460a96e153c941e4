// SPDX-License-Identifier: Unlicense OR MIT

package particle

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterBounded(t *testing.T) {
	e := &Emitter{Num: 10000, Rate: 0.5}
	rng := rand.New(rand.NewPCG(1, 2))
	prev := 0
	for i := 0; i < 2000; i++ {
		dt := time.Duration(rng.IntN(40)) * time.Millisecond
		n := e.Advance(dt)
		require.GreaterOrEqual(t, n, prev)
		require.LessOrEqual(t, n, e.Num)
		prev = n
	}
	assert.Equal(t, 10000, e.Born())
}

func TestEmitterAdvance(t *testing.T) {
	e := &Emitter{Num: 100, Rate: 0.5}
	assert.Equal(t, 8, e.Advance(16*time.Millisecond))
	assert.Equal(t, 8, e.Advance(0))
	assert.Equal(t, 8, e.Advance(-time.Second))
	assert.Equal(t, 8, e.Advance(time.Millisecond))
	assert.Equal(t, 9, e.Advance(3*time.Millisecond))
	assert.Equal(t, 100, e.Advance(time.Hour))
	e.Reset()
	assert.Zero(t, e.Born())
}

func TestPool(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	data := Pool(1000, 1.01, 1.05, rng)
	require.Len(t, data, 1000*Stride)
	for i := 0; i < 1000; i++ {
		p := data[i*Stride : (i+1)*Stride]
		assert.Zero(t, p[0])
		assert.Zero(t, p[1])
		assert.GreaterOrEqual(t, p[3], float32(1.01))
		assert.Less(t, p[3], float32(1.05))
		assert.InDelta(t, p[3]+1, p[2], 1e-6)
		assert.Zero(t, p[4])
		assert.Zero(t, p[5])
	}
}

func TestNoise(t *testing.T) {
	data := Noise(8, 4, rand.New(rand.NewPCG(5, 6)))
	assert.Len(t, data, 8*4*2)
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	s := FromImage(img)
	require.Equal(t, 4, s.Len())
	assert.Len(t, s.Velocity, 12)
	assert.Len(t, s.Color, 16)
	// Pixel (0,0) sits at the top left of clip space.
	assert.Equal(t, []float32{-1, 1, 0}, s.Position[:3])
	assert.Equal(t, []float32{1, 0, 0, 1}, s.Color[:4])
	// Pixel (1,1) is the center and does not move.
	assert.Equal(t, []float32{0, 0, 0}, s.Position[9:12])
	assert.Equal(t, []float32{0, 0, 0}, s.Velocity[9:12])
	assert.InDelta(t, -0.7071, s.Velocity[0], 1e-4)
	assert.InDelta(t, 0.7071, s.Velocity[1], 1e-4)
}
