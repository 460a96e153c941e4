// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/glsketch/glsketch/internal/gl"
)

// Attrib binds a vertex input location to float components of a buffer.
type Attrib struct {
	Buffer   *Buffer
	Location int
	// Size is the number of components, 1 to 4.
	Size int
	// Stride and Offset are in bytes. A zero Stride means tightly
	// packed.
	Stride int
	Offset int
	// Divisor advances the attribute per instance instead of per vertex
	// when non-zero.
	Divisor int
}

type VertexArray struct {
	dev      *Device
	obj      gl.VertexArray
	attribs  []Attrib
	index    *Buffer
	released bool
}

// NewVertexArray records the attribute layout and optional index
// buffer in a vertex array object.
func (d *Device) NewVertexArray(index *Buffer, attribs ...Attrib) (*VertexArray, error) {
	for _, a := range attribs {
		switch {
		case a.Buffer == nil || a.Buffer.released:
			return nil, fmt.Errorf("gpu: attribute %d has no buffer", a.Location)
		case a.Buffer.target != gl.ARRAY_BUFFER:
			return nil, fmt.Errorf("gpu: attribute %d bound to an index buffer", a.Location)
		case a.Location < 0:
			return nil, fmt.Errorf("gpu: invalid attribute location %d", a.Location)
		case a.Size < 1 || a.Size > 4:
			return nil, fmt.Errorf("gpu: attribute %d has %d components", a.Location, a.Size)
		}
	}
	if index != nil && index.target != gl.ELEMENT_ARRAY_BUFFER {
		return nil, fmt.Errorf("gpu: index buffer expected")
	}
	v := &VertexArray{
		dev:     d,
		obj:     d.funcs.CreateVertexArray(),
		attribs: append([]Attrib(nil), attribs...),
		index:   index,
	}
	d.state.bindVertexArray(d.funcs, v.obj)
	for _, a := range attribs {
		d.state.bindBuffer(d.funcs, gl.ARRAY_BUFFER, a.Buffer.obj)
		d.funcs.EnableVertexAttribArray(gl.Attrib(a.Location))
		d.funcs.VertexAttribPointer(gl.Attrib(a.Location), a.Size, gl.FLOAT, false, a.Stride, a.Offset)
		if a.Divisor > 0 {
			d.funcs.VertexAttribDivisor(gl.Attrib(a.Location), a.Divisor)
		}
	}
	if index != nil {
		d.state.bindBuffer(d.funcs, gl.ELEMENT_ARRAY_BUFFER, index.obj)
	}
	d.state.bindVertexArray(d.funcs, gl.VertexArray{})
	d.track(v)
	return v, nil
}

// uses reports whether b feeds any attribute of v.
func (v *VertexArray) uses(b *Buffer) bool {
	for _, a := range v.attribs {
		if a.Buffer == b {
			return true
		}
	}
	return false
}

func (v *VertexArray) Release() {
	if v == nil || v.released {
		return
	}
	v.released = true
	v.dev.untrack(v)
	v.dev.state.deleteVertexArray(v.dev.funcs, v.obj)
}

// ReleaseAll releases v together with its attribute and index buffers.
func (v *VertexArray) ReleaseAll() {
	if v == nil {
		return
	}
	v.Release()
	for _, a := range v.attribs {
		a.Buffer.Release()
	}
	v.index.Release()
}
