// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	_ "embed"

	"github.com/glsketch/glsketch/gpu"
)

var (
	//go:embed shaders/quad.vert
	QuadVertex string
	//go:embed shaders/copy.frag
	copyFragment string
)

// Quad is a screen filling rectangle with positions at location 0 and
// texture coordinates at location 1, the geometry of every full screen
// pass.
type Quad struct {
	dev *gpu.Device
	vao *gpu.VertexArray
}

// NewQuad uploads the quad geometry.
func NewQuad(d *gpu.Device) (*Quad, error) {
	pos, err := d.NewVertexBuffer([]float32{-1, -1, 1, -1, -1, 1, 1, 1}, gpu.BufferStatic)
	if err != nil {
		return nil, err
	}
	uv, err := d.NewVertexBuffer([]float32{0, 0, 1, 0, 0, 1, 1, 1}, gpu.BufferStatic)
	if err != nil {
		return nil, err
	}
	idx, err := d.NewIndexBuffer([]uint16{0, 1, 2, 3, 2, 1}, 4)
	if err != nil {
		return nil, err
	}
	vao, err := d.NewVertexArray(idx,
		gpu.Attrib{Buffer: pos, Location: 0, Size: 2},
		gpu.Attrib{Buffer: uv, Location: 1, Size: 2},
	)
	if err != nil {
		return nil, err
	}
	return &Quad{dev: d, vao: vao}, nil
}

// Draw runs p over every pixel of the bound target.
func (q *Quad) Draw(p *gpu.Program) error {
	return q.dev.DrawElements(p, q.vao, gpu.DrawModeTriangles, -1)
}

// NewPostProgram builds a full screen program from a fragment shader
// reading vUv.
func NewPostProgram(d *gpu.Device, name, fragment string, uniforms ...string) (*gpu.Program, error) {
	return d.NewProgram(gpu.ProgramDesc{Name: name, Vertex: QuadVertex, Fragment: fragment, Uniforms: uniforms})
}

// Copier draws a texture to the bound target.
type Copier struct {
	quad  *Quad
	prog  *gpu.Program
	image gpu.Uniform
}

func NewCopier(q *Quad) (*Copier, error) {
	p, err := NewPostProgram(q.dev, "copy", copyFragment, "uImage")
	if err != nil {
		return nil, err
	}
	u, _ := p.Uniform("uImage")
	return &Copier{quad: q, prog: p, image: u}, nil
}

func (c *Copier) Draw(src *gpu.Texture) error {
	src.Bind(0)
	c.image.Sampler(0)
	return c.quad.Draw(c.prog)
}

// Release frees the quad geometry.
func (q *Quad) Release() {
	if q != nil {
		q.vao.ReleaseAll()
	}
}

func (c *Copier) Release() {
	if c != nil {
		c.prog.Release()
	}
}
