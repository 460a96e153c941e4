// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package app

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/internal/gl/gltest"
	"github.com/glsketch/glsketch/params"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

type fakeWindow struct {
	fake *gltest.Fake
	// frames lists the events delivered before each frame; the window
	// closes when they run out.
	frames [][]sketch.Event
	n      int
}

func (w *fakeWindow) Functions() gl.Functions { return w.fake }
func (w *fakeWindow) Size() image.Point       { return image.Pt(64, 48) }
func (w *fakeWindow) Close()                  {}

func (w *fakeWindow) Next(ctx context.Context) error {
	if w.n >= len(w.frames) {
		return pipeline.ErrClosed
	}
	w.n++
	return nil
}

func (w *fakeWindow) Events() []sketch.Event {
	return w.frames[w.n-1]
}

type testSketch struct {
	set      *params.Set
	env      sketch.Env
	frames   []pipeline.Frame
	events   []sketch.Event
	setupErr error
	failAt   int
	released bool
	buf      *gpu.Buffer
}

func newTestSketch() *testSketch {
	return &testSketch{
		set:    params.New(params.Param{Name: "a", Value: 1, Max: 10, Step: 1}, params.Param{Name: "b", Max: 1, Step: 0.5}),
		failAt: -1,
	}
}

func (s *testSketch) Setup(ctx context.Context, env sketch.Env) error {
	if s.setupErr != nil {
		return s.setupErr
	}
	s.env = env
	buf, err := env.Device.NewVertexBuffer([]float32{0, 0}, gpu.BufferStatic)
	s.buf = buf
	return err
}

func (s *testSketch) Render(f pipeline.Frame) error {
	if f.Index == s.failAt {
		return errors.New("boom")
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *testSketch) Release() {
	s.released = true
	s.buf.Release()
}

func (s *testSketch) Event(e sketch.Event) { s.events = append(s.events, e) }
func (s *testSketch) Params() *params.Set  { return s.set }

func TestRunUntilClosed(t *testing.T) {
	w := &fakeWindow{fake: gltest.New(), frames: make([][]sketch.Event, 3)}
	w.frames[1] = []sketch.Event{sketch.ResizeEvent{Size: image.Pt(10, 10)}}
	s := newTestSketch()
	require.NoError(t, Run(context.Background(), w, s, Options{Image: "x.png"}))
	assert.Len(t, s.frames, 3)
	assert.Equal(t, image.Pt(64, 48), s.env.Size)
	assert.Equal(t, "x.png", s.env.Image)
	assert.Equal(t, []sketch.Event{sketch.ResizeEvent{Size: image.Pt(10, 10)}}, s.events)
	assert.True(t, s.released)
	assert.Zero(t, w.fake.Live())
}

func TestRunFrameError(t *testing.T) {
	w := &fakeWindow{fake: gltest.New(), frames: make([][]sketch.Event, 5)}
	s := newTestSketch()
	s.failAt = 2
	err := Run(context.Background(), w, s, Options{})
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, s.frames, 2)
	assert.True(t, s.released)
}

func TestRunSetupError(t *testing.T) {
	w := &fakeWindow{fake: gltest.New(), frames: make([][]sketch.Event, 1)}
	s := newTestSketch()
	s.setupErr = gpu.ErrMissingUniform
	err := Run(context.Background(), w, s, Options{})
	assert.ErrorIs(t, err, gpu.ErrMissingUniform)
	assert.False(t, s.released)
	assert.Empty(t, s.frames)
}

func TestRunParams(t *testing.T) {
	w := &fakeWindow{fake: gltest.New(), frames: make([][]sketch.Event, 1)}
	s := newTestSketch()
	require.NoError(t, Run(context.Background(), w, s, Options{Params: map[string]float64{"a": 4.4}}))
	assert.Equal(t, float32(4), s.set.Get("a"))

	err := Run(context.Background(), w, newTestSketch(), Options{Params: map[string]float64{"zz": 1}})
	assert.ErrorIs(t, err, params.ErrUnknown)
}

func TestRunFrameLimit(t *testing.T) {
	w := &fakeWindow{fake: gltest.New(), frames: make([][]sketch.Event, 10)}
	s := newTestSketch()
	require.NoError(t, Run(context.Background(), w, s, Options{Frames: 4, FPS: 1000}))
	assert.Len(t, s.frames, 4)
}

func TestTuner(t *testing.T) {
	set := params.New(params.Param{Name: "a", Value: 1, Max: 10, Step: 1}, params.Param{Name: "b", Max: 1, Step: 0.5})
	tn := &tuner{set: set}
	press := func(name string) { tn.event(sketch.KeyEvent{Name: name, Press: true}) }
	press(sketch.NameUpArrow)
	assert.Equal(t, float32(2), set.Get("a"))
	tn.event(sketch.KeyEvent{Name: sketch.NameUpArrow})
	assert.Equal(t, float32(2), set.Get("a"))
	press(sketch.NameRightArrow)
	press(sketch.NameUpArrow)
	press(sketch.NameUpArrow)
	press(sketch.NameUpArrow)
	assert.Equal(t, float32(1), set.Get("b"))
	press(sketch.NameLeftArrow)
	press(sketch.NameDownArrow)
	assert.Equal(t, float32(1), set.Get("a"))
	press("Q")
	tn.event(sketch.ResizeEvent{})
}
