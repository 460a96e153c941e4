// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/glsketch/glsketch/internal/gl"
)

type feedbackState struct {
	active  bool
	outputs []*Buffer
}

// BeginFeedback starts capturing the varyings of p into outputs with
// rasterization disabled. Interleaved programs take one output buffer,
// separate programs one per varying. mode must be points, lines or
// triangles.
func (d *Device) BeginFeedback(p *Program, mode DrawMode, outputs ...*Buffer) error {
	if d.feedback.active {
		return errors.New("gpu: transform feedback already active")
	}
	switch mode {
	case DrawModePoints, DrawModeLines, DrawModeTriangles:
	default:
		return fmt.Errorf("gpu: draw mode %d cannot be captured", mode)
	}
	want := 0
	switch p.mode {
	case FeedbackInterleaved:
		want = 1
	case FeedbackSeparate:
		want = len(p.varyings)
	default:
		return fmt.Errorf("gpu: program %q captures no varyings", p.name)
	}
	if len(outputs) != want || want > maxFeedbackBuffers {
		return fmt.Errorf("gpu: program %q captures into %d buffers, got %d", p.name, want, len(outputs))
	}
	for i, out := range outputs {
		if out == nil || out.released || out.target != gl.ARRAY_BUFFER {
			return fmt.Errorf("gpu: invalid transform feedback output %d", i)
		}
		for _, other := range outputs[:i] {
			if other == out {
				return fmt.Errorf("gpu: transform feedback output %d bound twice", i)
			}
		}
	}
	// Vertex arrays are unbound so no buffer is simultaneously an input
	// binding of the current array and a capture target.
	d.state.bindVertexArray(d.funcs, gl.VertexArray{})
	for i, out := range outputs {
		d.state.bindBufferBase(d.funcs, gl.TRANSFORM_FEEDBACK_BUFFER, i, out.obj)
	}
	d.state.set(d.funcs, gl.RASTERIZER_DISCARD, true)
	p.use()
	d.funcs.BeginTransformFeedback(toGLDrawMode(mode))
	d.feedback = feedbackState{active: true, outputs: outputs}
	return nil
}

// EndFeedback ends the capture and unbinds the output buffers so they
// can be read as vertex inputs.
func (d *Device) EndFeedback() {
	if !d.feedback.active {
		return
	}
	d.funcs.EndTransformFeedback()
	d.state.set(d.funcs, gl.RASTERIZER_DISCARD, false)
	for i := range d.feedback.outputs {
		d.state.bindBufferBase(d.funcs, gl.TRANSFORM_FEEDBACK_BUFFER, i, gl.Buffer{})
	}
	d.state.bindBuffer(d.funcs, gl.TRANSFORM_FEEDBACK_BUFFER, gl.Buffer{})
	d.feedback = feedbackState{}
}

// Capture runs one transform feedback pass: count vertices of v are
// processed by p and its varyings written to outputs.
func (d *Device) Capture(p *Program, v *VertexArray, mode DrawMode, count int, outputs ...*Buffer) error {
	if err := d.BeginFeedback(p, mode, outputs...); err != nil {
		return err
	}
	defer d.EndFeedback()
	return d.DrawArrays(p, v, mode, 0, count)
}
