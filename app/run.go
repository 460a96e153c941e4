// SPDX-License-Identifier: Unlicense OR MIT

// Package app connects sketches to host windows: it creates the GPU
// device, delivers input and runs the frame loop.
package app

import (
	"context"
	"fmt"
	"image"
	"io/fs"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

// Window is a host surface with a current GL context. Its Next method
// presents the previous frame and waits for the next one.
type Window interface {
	pipeline.Scheduler
	Functions() gl.Functions
	// Size returns the framebuffer size in pixels.
	Size() image.Point
	// Events drains the input received since the last call.
	Events() []sketch.Event
	Close()
}

// Options adjusts how Run drives a sketch.
type Options struct {
	// FPS paces frames with a ticker when positive, in addition to the
	// window's own pacing.
	FPS int
	// Frames stops after that many frames when positive.
	Frames int
	// Params overrides parameters of tunable sketches.
	Params map[string]float64
	Assets fs.FS
	Image  string
}

// Run sets up s on w and renders it until ctx is done, the window
// closes or a frame fails.
func Run(ctx context.Context, w Window, s sketch.Sketch, opts Options) error {
	dev, err := gpu.NewDevice(w.Functions())
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer dev.Release()
	log := gpu.Logger()

	var tune *tuner
	if t, ok := s.(sketch.Tunable); ok {
		if err := t.Params().Apply(opts.Params); err != nil {
			return fmt.Errorf("app: %w", err)
		}
		tune = &tuner{set: t.Params()}
	} else if len(opts.Params) > 0 {
		log.Warn("app: sketch has no parameters, ignoring overrides")
	}

	env := sketch.Env{
		Device: dev,
		Size:   w.Size(),
		Assets: opts.Assets,
		Image:  opts.Image,
	}
	if err := s.Setup(ctx, env); err != nil {
		return fmt.Errorf("app: setup: %w", err)
	}
	defer s.Release()

	var sched pipeline.Scheduler = w
	if opts.FPS > 0 {
		t := pipeline.NewTicker(opts.FPS)
		defer t.Stop()
		sched = paced{t, w}
	}
	handler, _ := s.(sketch.Handler)
	r := pipeline.RenderFunc(func(f pipeline.Frame) error {
		for _, e := range w.Events() {
			if tune != nil {
				tune.event(e)
			}
			if handler != nil {
				handler.Event(e)
			}
		}
		return s.Render(f)
	})
	l := &pipeline.Loop{Scheduler: sched, Renderer: r, Frames: opts.Frames}
	return l.Run(ctx)
}

// paced waits for every scheduler in turn.
type paced []pipeline.Scheduler

func (p paced) Next(ctx context.Context) error {
	for _, s := range p {
		if err := s.Next(ctx); err != nil {
			return err
		}
	}
	return nil
}
