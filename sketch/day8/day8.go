// SPDX-License-Identifier: Unlicense OR MIT

// Package day8 turns every pixel of an image into a particle and lets
// them drift with transform feedback, one capture buffer per attribute.
package day8

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/asset"
	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/particle"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/update.vert
	updateVert string
	//go:embed shaders/update.frag
	updateFrag string
	//go:embed shaders/draw.vert
	drawVert string
	//go:embed shaders/draw.frag
	drawFrag string
)

// ImageSize is the side of the square the source image is resampled
// to, one particle per pixel.
const ImageSize = 256

var varyings = []string{"vPosition", "vVelocity", "vColor"}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day8",
		Description: "image pixels as particles with separate transform feedback buffers",
		New:         func() sketch.Sketch { return New() },
	})
}

// state is one generation of the particles: a buffer per attribute and
// the vertex array reading them.
type state struct {
	position, velocity, color *gpu.Buffer
	vao                       *gpu.VertexArray
}

func (s *state) outputs() []*gpu.Buffer {
	return []*gpu.Buffer{s.position, s.velocity, s.color}
}

func (s *state) release() {
	s.vao.Release()
	for _, b := range s.outputs() {
		b.Release()
	}
}

type Sketch struct {
	dev    *gpu.Device
	size   image.Point
	update *gpu.Program
	draw   *gpu.Program
	u      struct {
		time, mouse, move gpu.Uniform
		vp, drawMove      gpu.Uniform
	}
	states *pipeline.PingPong[*state]
	count  int
	cam    camera.Camera
	mouse  mgl32.Vec2

	// Move scales the per frame displacement.
	Move float32
}

func New() *Sketch {
	return &Sketch{
		cam:  camera.Perspective(mgl32.Vec3{0, 0, 2}, 60, 1, 0.01, 1000),
		Move: 0.1,
	}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	s.cam.SetAspect(env.Size.X, env.Size.Y)
	d := s.dev
	var err error
	s.update, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day8 update",
		Vertex:   updateVert,
		Fragment: updateFrag,
		Varyings: varyings,
		Mode:     gpu.FeedbackSeparate,
		Uniforms: []string{"time", "mouse", "move"},
	})
	if err != nil {
		return err
	}
	u, err := s.update.Uniforms("time", "mouse", "move")
	if err != nil {
		return err
	}
	s.u.time, s.u.mouse, s.u.move = u["time"], u["mouse"], u["move"]

	s.draw, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day8 draw",
		Vertex:   drawVert,
		Fragment: drawFrag,
		Uniforms: []string{"vpMatrix", "move"},
	})
	if err != nil {
		return err
	}
	u, err = s.draw.Uniforms("vpMatrix", "move")
	if err != nil {
		return err
	}
	s.u.vp, s.u.drawMove = u["vpMatrix"], u["move"]

	src, err := s.source(ctx, env)
	if err != nil {
		return err
	}
	parts := particle.FromImage(asset.Resize(src, ImageSize, ImageSize))
	s.count = parts.Len()
	var pair [2]*state
	for i := range pair {
		if pair[i], err = s.newState(parts); err != nil {
			return err
		}
	}
	s.states = pipeline.NewPingPong(pair[0], pair[1])
	return nil
}

func (s *Sketch) newState(p *particle.Separate) (*state, error) {
	d := s.dev
	st := new(state)
	var err error
	if st.position, err = d.NewVertexBuffer(p.Position, gpu.BufferStream); err != nil {
		return nil, err
	}
	if st.velocity, err = d.NewVertexBuffer(p.Velocity, gpu.BufferStream); err != nil {
		return nil, err
	}
	if st.color, err = d.NewVertexBuffer(p.Color, gpu.BufferStream); err != nil {
		return nil, err
	}
	st.vao, err = d.NewVertexArray(nil,
		gpu.Attrib{Buffer: st.position, Location: 0, Size: 3},
		gpu.Attrib{Buffer: st.velocity, Location: 1, Size: 3},
		gpu.Attrib{Buffer: st.color, Location: 2, Size: 4},
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// source returns the configured image, or a color wheel.
func (s *Sketch) source(ctx context.Context, env sketch.Env) (image.Image, error) {
	if env.Assets != nil && env.Image != "" {
		img, err := asset.LoadImage(ctx, env.Assets, env.Image)
		if err != nil {
			return nil, fmt.Errorf("day8: %w", err)
		}
		return img, nil
	}
	return colorWheel(ImageSize), nil
}

func colorWheel(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			h := float32(math.Atan2(dy, dx) * 180 / math.Pi)
			v := float32(math.Min(math.Hypot(dx, dy)/c, 1))
			col, _ := geom.HSVA(h, 1, v, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(col[0] * 255),
				G: uint8(col[1] * 255),
				B: uint8(col[2] * 255),
				A: 255,
			})
		}
	}
	return img
}

// Event points the attraction at the pointer.
func (s *Sketch) Event(e sketch.Event) {
	switch e := e.(type) {
	case sketch.PointerEvent:
		if e.Window.X() > 0 && e.Window.Y() > 0 {
			s.mouse = mgl32.Vec2{
				2*e.Position.X()/e.Window.X() - 1,
				1 - 2*e.Position.Y()/e.Window.Y(),
			}
		}
	case sketch.ResizeEvent:
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	s.u.time.Float(f.Seconds())
	s.u.mouse.Vec2(s.mouse[0], s.mouse[1])
	s.u.move.Float(s.Move)
	read, write := s.states.Read, s.states.Write
	if err := d.Capture(s.update, read.vao, gpu.DrawModePoints, s.count, write.outputs()...); err != nil {
		return fmt.Errorf("day8: update: %w", err)
	}

	d.BindScreen(s.size)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	d.SetDepthTest(false)
	d.SetCullFace(false)
	d.SetBlend(true)
	d.BlendFuncSeparate(gpu.BlendFactorSrcAlpha, gpu.BlendFactorOne, gpu.BlendFactorOne, gpu.BlendFactorOne)
	s.u.vp.Mat4(s.cam.ViewProjection())
	s.u.drawMove.Float(0)
	if err := d.DrawArrays(s.draw, write.vao, gpu.DrawModePoints, 0, s.count); err != nil {
		return fmt.Errorf("day8: draw: %w", err)
	}
	s.states.Swap()
	return nil
}

func (s *Sketch) Release() {
	s.update.Release()
	s.draw.Release()
	if s.states != nil {
		for _, st := range s.states.Both() {
			st.release()
		}
	}
}
