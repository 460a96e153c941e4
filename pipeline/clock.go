// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import "time"

// MaxDelta is the longest frame interval treated as continuous time.
// Longer gaps, typically a backgrounded tab, advance the simulation by
// zero.
const MaxDelta = 500 * time.Millisecond

// Frame describes one iteration of the render loop.
type Frame struct {
	// Index counts frames from zero.
	Index int
	// Elapsed is the simulated time since the first frame.
	Elapsed time.Duration
	// Delta is the simulated time since the previous frame, zero for
	// the first frame.
	Delta time.Duration
}

// Seconds returns Elapsed in seconds, the unit shaders expect.
func (f Frame) Seconds() float32 {
	return float32(f.Elapsed.Seconds())
}

// DeltaSeconds returns Delta in seconds.
func (f Frame) DeltaSeconds() float32 {
	return float32(f.Delta.Seconds())
}

// Clock turns wall time into frames.
type Clock struct {
	now      func() time.Time
	last     time.Time
	elapsed  time.Duration
	index    int
	started  bool
	maxDelta time.Duration
}

// NewClock returns a clock reading now, or time.Now if nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, maxDelta: MaxDelta}
}

// Tick advances the clock by one frame.
func (c *Clock) Tick() Frame {
	t := c.now()
	var dt time.Duration
	if c.started {
		dt = t.Sub(c.last)
		if dt > c.maxDelta || dt < 0 {
			dt = 0
		}
		c.index++
	}
	c.started = true
	c.last = t
	c.elapsed += dt
	return Frame{Index: c.index, Elapsed: c.elapsed, Delta: dt}
}
