// SPDX-License-Identifier: Unlicense OR MIT

// Package geom generates the meshes of the sketches.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/gpu"
)

// Mesh is an indexed triangle mesh in flat attribute arrays. Positions
// and normals have three components per vertex, colors four and texture
// coordinates two.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	UVs       []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Fill sets every vertex color to c.
func (m *Mesh) Fill(c mgl32.Vec4) *Mesh {
	for i := 0; i+4 <= len(m.Colors); i += 4 {
		copy(m.Colors[i:i+4], c[:])
	}
	return m
}

// Validate checks attribute lengths and that every index addresses a
// vertex of the mesh.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	if len(m.Positions) != n*3 {
		return fmt.Errorf("geom: %d position floats is not a multiple of 3", len(m.Positions))
	}
	for _, a := range []struct {
		name string
		data []float32
		size int
	}{
		{"normal", m.Normals, 3},
		{"color", m.Colors, 4},
		{"uv", m.UVs, 2},
	} {
		if a.data != nil && len(a.data) != n*a.size {
			return fmt.Errorf("geom: %d %s floats for %d vertices", len(a.data), a.name, n)
		}
	}
	return gpu.ValidateIndices(m.Indices, n)
}

// builder accumulates a mesh while generating it and rejects meshes
// 16-bit indices cannot address.
type builder struct {
	m Mesh
}

func newBuilder(vertices int) (*builder, error) {
	if vertices > gpu.MaxIndexedVertices {
		return nil, fmt.Errorf("%w: %d vertices exceed the 16-bit limit of %d", gpu.ErrIndexRange, vertices, gpu.MaxIndexedVertices)
	}
	return &builder{m: Mesh{
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		Colors:    make([]float32, 0, vertices*4),
		UVs:       make([]float32, 0, vertices*2),
	}}, nil
}

func (b *builder) vertex(pos, normal mgl32.Vec3, color mgl32.Vec4, u, v float32) {
	b.m.Positions = append(b.m.Positions, pos[:]...)
	b.m.Normals = append(b.m.Normals, normal[:]...)
	b.m.Colors = append(b.m.Colors, color[:]...)
	b.m.UVs = append(b.m.UVs, u, v)
}

// grid appends the two triangles of every cell of a rows by cols grid
// of (cols+1) vertices per row.
func (b *builder) grid(rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			id := uint16((cols+1)*i + j)
			c := uint16(cols)
			b.m.Indices = append(b.m.Indices,
				id, id+c+1, id+1,
				id+c+1, id+c+2, id+1,
			)
		}
	}
}

// Sphere returns a UV sphere of rows by cols segments with hue varying
// around the axis.
func Sphere(rows, cols int, radius float32) (*Mesh, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("geom: invalid sphere segments %dx%d", rows, cols)
	}
	b, err := newBuilder((rows + 1) * (cols + 1))
	if err != nil {
		return nil, err
	}
	for i := 0; i <= rows; i++ {
		rs, rc := math.Sincos(2 * math.Pi / float64(rows) * float64(i))
		for j := 0; j <= cols; j++ {
			ts, tc := math.Sincos(2 * math.Pi / float64(cols) * float64(j))
			n := mgl32.Vec3{float32(rc * tc), float32(rs), float32(rc * ts)}
			b.vertex(n.Mul(radius), n, hue(360/float32(cols)*float32(j)),
				float32(j)/float32(cols), float32(i)/float32(rows))
		}
	}
	b.grid(rows, cols)
	return &b.m, nil
}

// Torus returns a torus of tube radius irad around a ring of radius
// orad.
func Torus(rows, cols int, irad, orad float32) (*Mesh, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("geom: invalid torus segments %dx%d", rows, cols)
	}
	b, err := newBuilder((rows + 1) * (cols + 1))
	if err != nil {
		return nil, err
	}
	for i := 0; i <= rows; i++ {
		rs, rc := math.Sincos(2 * math.Pi / float64(rows) * float64(i))
		for j := 0; j <= cols; j++ {
			ts, tc := math.Sincos(2 * math.Pi / float64(cols) * float64(j))
			ring := rc*float64(irad) + float64(orad)
			pos := mgl32.Vec3{float32(ring * tc), float32(rs * float64(irad)), float32(ring * ts)}
			n := mgl32.Vec3{float32(rc * tc), float32(rs), float32(rc * ts)}
			t := float32(i)/float32(rows) + 0.5
			if t > 1 {
				t--
			}
			b.vertex(pos, n, hue(360/float32(cols)*float32(j)), float32(j)/float32(cols), 1-t)
		}
	}
	b.grid(rows, cols)
	return &b.m, nil
}

// Cube returns an axis aligned cube of the given side. Normals point
// from the center through each corner, the direction environment map
// lookups sample.
func Cube(side float32) *Mesh {
	h := side / 2
	corners := [24]mgl32.Vec3{
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1},
		{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1},
		{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
		{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1},
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	b, _ := newBuilder(len(corners))
	for i, c := range corners {
		b.vertex(c.Mul(h), c.Normalize(), hue(360/float32(len(corners))*float32(i)), uvs[i%4][0], uvs[i%4][1])
	}
	for f := uint16(0); f < 6; f++ {
		o := f * 4
		b.m.Indices = append(b.m.Indices, o, o+1, o+2, o, o+2, o+3)
	}
	return &b.m
}

// Plane returns a white 2x2 plane in the XZ plane facing +Y.
func Plane() *Mesh {
	return &Mesh{
		Positions: []float32{-1, 0, -1, 1, 0, -1, -1, 0, 1, 1, 0, 1},
		Normals:   []float32{0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0},
		Colors:    []float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		UVs:       []float32{0, 0, 1, 0, 0, 1, 1, 1},
		Indices:   []uint16{0, 2, 1, 3, 1, 2},
	}
}
