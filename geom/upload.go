// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"github.com/glsketch/glsketch/gpu"
)

// Layout assigns attribute locations to mesh attributes. Negative
// locations are not uploaded.
type Layout struct {
	Position, Normal, Color, UV int
}

// DefaultLayout is the layout of the mesh shaders.
var DefaultLayout = Layout{Position: 0, Normal: 1, Color: 2, UV: 3}

// Geometry is a mesh uploaded to the GPU.
type Geometry struct {
	VertexArray *gpu.VertexArray
	Count       int
}

// Upload validates m and uploads it with layout l.
func (m *Mesh) Upload(d *gpu.Device, l Layout) (*Geometry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var attribs []gpu.Attrib
	for _, a := range []struct {
		loc  int
		data []float32
		size int
	}{
		{l.Position, m.Positions, 3},
		{l.Normal, m.Normals, 3},
		{l.Color, m.Colors, 4},
		{l.UV, m.UVs, 2},
	} {
		if a.loc < 0 || len(a.data) == 0 {
			continue
		}
		buf, err := d.NewVertexBuffer(a.data, gpu.BufferStatic)
		if err != nil {
			return nil, err
		}
		attribs = append(attribs, gpu.Attrib{Buffer: buf, Location: a.loc, Size: a.size})
	}
	idx, err := d.NewIndexBuffer(m.Indices, m.VertexCount())
	if err != nil {
		return nil, err
	}
	vao, err := d.NewVertexArray(idx, attribs...)
	if err != nil {
		return nil, err
	}
	return &Geometry{VertexArray: vao, Count: len(m.Indices)}, nil
}

// Draw draws the triangles of g with p.
func (g *Geometry) Draw(d *gpu.Device, p *gpu.Program) error {
	return d.DrawElements(p, g.VertexArray, gpu.DrawModeTriangles, g.Count)
}

// Upload stores the ribbon attributes at locations 0 to 3: position,
// previous, next and sign.
func (r *Ribbon) Upload(d *gpu.Device) (*gpu.VertexArray, error) {
	var attribs []gpu.Attrib
	for i, a := range []struct {
		data []float32
		size int
	}{
		{r.Positions, 3},
		{r.Prev, 3},
		{r.Next, 3},
		{r.Sign, 1},
	} {
		buf, err := d.NewVertexBuffer(a.data, gpu.BufferStatic)
		if err != nil {
			return nil, err
		}
		attribs = append(attribs, gpu.Attrib{Buffer: buf, Location: i, Size: a.size})
	}
	return d.NewVertexArray(nil, attribs...)
}

// Release frees the vertex array and buffers of g.
func (g *Geometry) Release() {
	if g != nil {
		g.VertexArray.ReleaseAll()
	}
}
