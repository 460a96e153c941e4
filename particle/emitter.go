// SPDX-License-Identifier: Unlicense OR MIT

// Package particle holds the CPU side of the transform feedback particle
// systems: birth accounting, initial buffer contents and noise data.
package particle

import (
	"math"
	"time"
)

// Emitter counts the particles that have been born so far. Particles
// beyond Born are kept dead by the update shader.
type Emitter struct {
	// Num is the size of the particle pool.
	Num int
	// Rate is the number of births per millisecond.
	Rate float64

	born int
}

// Advance adds the births of a frame that took dt and returns the new
// count, which never decreases and never exceeds Num.
func (e *Emitter) Advance(dt time.Duration) int {
	if dt <= 0 {
		return e.born
	}
	ms := float64(dt) / float64(time.Millisecond)
	n := math.Floor(float64(e.born) + e.Rate*ms)
	if n > float64(e.Num) {
		n = float64(e.Num)
	}
	if int(n) > e.born {
		e.born = int(n)
	}
	return e.born
}

// Born returns the current count.
func (e *Emitter) Born() int {
	return e.born
}

// Reset forgets all births.
func (e *Emitter) Reset() {
	e.born = 0
}
