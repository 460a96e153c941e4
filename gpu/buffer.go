// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/glsketch/glsketch/internal/gl"
)

// MaxIndexedVertices is the number of vertices addressable by 16-bit
// indices.
const MaxIndexedVertices = 1 << 16

// Buffer is a vertex buffer of float32 components or an index buffer of
// uint16 indices.
type Buffer struct {
	dev      *Device
	obj      gl.Buffer
	target   gl.Enum
	usage    BufferUsage
	size     int
	count    int
	released bool
}

// NewVertexBuffer uploads data to a new vertex buffer.
func (d *Device) NewVertexBuffer(data []float32, usage BufferUsage) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("gpu: empty vertex buffer")
	}
	b := d.newBuffer(gl.ARRAY_BUFFER, usage, len(data)*4, gl.BytesView(data))
	b.count = len(data)
	return b, nil
}

// NewEmptyVertexBuffer allocates room for n floats, for example as a
// transform feedback target.
func (d *Device) NewEmptyVertexBuffer(n int, usage BufferUsage) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("gpu: invalid vertex buffer length %d", n)
	}
	b := d.newBuffer(gl.ARRAY_BUFFER, usage, n*4, nil)
	b.count = n
	return b, nil
}

// NewIndexBuffer uploads 16-bit indices for a mesh of vertexCount
// vertices. Meshes beyond MaxIndexedVertices vertices and indices
// outside the mesh are rejected with ErrIndexRange.
func (d *Device) NewIndexBuffer(indices []uint16, vertexCount int) (*Buffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("gpu: empty index buffer")
	}
	if err := ValidateIndices(indices, vertexCount); err != nil {
		return nil, err
	}
	// Element bindings are vertex array state.
	d.state.bindVertexArray(d.funcs, gl.VertexArray{})
	b := d.newBuffer(gl.ELEMENT_ARRAY_BUFFER, BufferStatic, len(indices)*2, gl.BytesView(indices))
	b.count = len(indices)
	return b, nil
}

// ValidateIndices checks that a 16-bit index list addresses only the
// vertexCount vertices of its mesh.
func ValidateIndices(indices []uint16, vertexCount int) error {
	if vertexCount > MaxIndexedVertices {
		return fmt.Errorf("%w: %d vertices exceed the 16-bit limit of %d", ErrIndexRange, vertexCount, MaxIndexedVertices)
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d at %d, mesh has %d vertices", ErrIndexRange, idx, i, vertexCount)
		}
	}
	return nil
}

func (d *Device) newBuffer(target gl.Enum, usage BufferUsage, size int, data []byte) *Buffer {
	b := &Buffer{
		dev:    d,
		obj:    d.funcs.CreateBuffer(),
		target: target,
		usage:  usage,
		size:   size,
	}
	d.state.bindBuffer(d.funcs, target, b.obj)
	d.funcs.BufferData(target, size, toGLUsage(usage), data)
	d.track(b)
	return b
}

// Upload replaces the start of the buffer contents.
func (b *Buffer) Upload(data []float32) error {
	if b.released {
		return ErrReleased
	}
	if b.target != gl.ARRAY_BUFFER {
		return fmt.Errorf("gpu: upload of floats to an index buffer")
	}
	if n := len(data) * 4; n > b.size {
		return fmt.Errorf("gpu: upload of %d bytes overflows buffer of %d", n, b.size)
	}
	b.dev.state.bindBuffer(b.dev.funcs, b.target, b.obj)
	if len(data)*4 == b.size {
		b.dev.funcs.BufferData(b.target, b.size, toGLUsage(b.usage), gl.BytesView(data))
	} else {
		b.dev.funcs.BufferSubData(b.target, 0, gl.BytesView(data))
	}
	return nil
}

// Len returns the number of floats or indices in the buffer.
func (b *Buffer) Len() int {
	return b.count
}

func (b *Buffer) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	b.dev.untrack(b)
	b.dev.state.deleteBuffer(b.dev.funcs, b.obj)
}
