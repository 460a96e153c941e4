// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countScheduler struct {
	n     int
	limit int
	err   error
}

func (s *countScheduler) Next(ctx context.Context) error {
	if s.limit > 0 && s.n >= s.limit {
		return s.err
	}
	s.n++
	return ctx.Err()
}

func TestLoopStopsOnClose(t *testing.T) {
	s := &countScheduler{limit: 5, err: ErrClosed}
	var frames []int
	err := Run(context.Background(), s, RenderFunc(func(f Frame) error {
		frames = append(frames, f.Index)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, frames)
}

func TestLoopStopsOnFrameError(t *testing.T) {
	boom := errors.New("boom")
	s := &countScheduler{}
	calls := 0
	err := Run(context.Background(), s, RenderFunc(func(f Frame) error {
		calls++
		if f.Index == 2 {
			return boom
		}
		return nil
	}))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "no frame is scheduled after a failure")
	assert.Equal(t, 3, s.n)
}

func TestLoopCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &countScheduler{}
	err := Run(ctx, s, RenderFunc(func(f Frame) error {
		if f.Index == 3 {
			cancel()
		}
		return nil
	}))
	assert.NoError(t, err)
}

func TestLoopSchedulerError(t *testing.T) {
	broken := errors.New("lost context")
	s := &countScheduler{limit: 1, err: broken}
	err := Run(context.Background(), s, RenderFunc(func(Frame) error { return nil }))
	assert.ErrorIs(t, err, broken)
}

func TestLoopFrameLimit(t *testing.T) {
	l := &Loop{Scheduler: &countScheduler{}, Renderer: RenderFunc(func(Frame) error { return nil }), Frames: 7}
	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, 7, l.Scheduler.(*countScheduler).n)
}

func TestTicker(t *testing.T) {
	tk := NewTicker(1000)
	defer tk.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		require.NoError(t, tk.Next(ctx))
	}
	cancel()
	assert.ErrorIs(t, tk.Next(ctx), context.Canceled)
}
