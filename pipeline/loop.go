// SPDX-License-Identifier: Unlicense OR MIT

// Package pipeline drives multi-pass rendering: the frame loop and its
// schedulers, ping-pong resource pairs, the screen quad and the
// post-processing chain.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glsketch/glsketch/gpu"
)

// ErrClosed is returned by schedulers whose host window or page has
// gone away.
var ErrClosed = errors.New("pipeline: host closed")

// Renderer draws one frame.
type Renderer interface {
	Render(f Frame) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(f Frame) error

func (r RenderFunc) Render(f Frame) error {
	return r(f)
}

// Scheduler paces the loop. Next blocks until the next frame is due.
type Scheduler interface {
	Next(ctx context.Context) error
}

// Ticker schedules frames at a fixed rate.
type Ticker struct {
	t *time.Ticker
}

// NewTicker returns a scheduler firing fps times per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *Ticker) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

func (t *Ticker) Stop() {
	t.t.Stop()
}

// Loop runs a Renderer under a Scheduler until the context is
// cancelled, the host closes or a frame fails.
type Loop struct {
	Scheduler Scheduler
	Renderer  Renderer
	// Clock defaults to a wall clock.
	Clock *Clock
	// Frames stops the loop after that many frames when positive.
	Frames int
}

// Run is shorthand for running a Loop without a frame limit.
func Run(ctx context.Context, s Scheduler, r Renderer) error {
	l := &Loop{Scheduler: s, Renderer: r}
	return l.Run(ctx)
}

// Run executes the loop. Cancellation and ErrClosed end it with a nil
// error. A frame error stops the loop and is returned, the loop never
// keeps scheduling after a failed frame.
func (l *Loop) Run(ctx context.Context) error {
	clock := l.Clock
	if clock == nil {
		clock = NewClock(nil)
	}
	log := gpu.Logger()
	for n := 0; l.Frames <= 0 || n < l.Frames; n++ {
		if err := l.Scheduler.Next(ctx); err != nil {
			if errors.Is(err, ErrClosed) || ctx.Err() != nil {
				log.Info("pipeline: loop stopped", "frames", n)
				return nil
			}
			return fmt.Errorf("pipeline: schedule: %w", err)
		}
		f := clock.Tick()
		if err := l.Renderer.Render(f); err != nil {
			log.Error("pipeline: frame failed", "frame", f.Index, "err", err)
			return fmt.Errorf("pipeline: frame %d: %w", f.Index, err)
		}
	}
	return nil
}
