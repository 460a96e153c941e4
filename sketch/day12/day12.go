// SPDX-License-Identifier: Unlicense OR MIT

// Package day12 simulates a thousand trails in float textures. Each
// column holds one trail, head in row zero, and every update shifts the
// history down a row.
package day12

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/params"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/init.frag
	initFrag string
	//go:embed shaders/update.frag
	updateFrag string
	//go:embed shaders/trail.vert
	trailVert string
	//go:embed shaders/trail.frag
	trailFrag string
)

const (
	NumTrails   = 1000
	NumVertices = 128
	// TimeStep advances the force field once per frame.
	TimeStep = 0.01
)

func init() {
	sketch.Register(sketch.Info{
		Name:        "day12",
		Description: "instanced line strip trails from float render targets",
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	quad *pipeline.Quad

	start, update, trail *gpu.Program
	u                   map[string]gpu.Uniform
	tu                  map[string]gpu.Uniform

	state *pipeline.PingPong[*gpu.Framebuffer]
	// empty feeds the instanced draw, which reads everything from
	// textures.
	empty *gpu.VertexArray
	cam   camera.Camera
	time  float32
	set   *params.Set
}

func New() *Sketch {
	return &Sketch{
		cam: camera.Perspective(mgl32.Vec3{0, 0, 150}, 90, 1, 0.01, 5000),
		set: params.New(
			params.Param{Name: "alpha", Value: 0.5, Min: 0, Max: 1, Step: 0.05},
			params.Param{Name: "hue", Value: 200, Min: 0, Max: 360, Step: 10},
		),
	}
}

func (s *Sketch) Params() *params.Set {
	return s.set
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	s.cam.SetAspect(env.Size.X, env.Size.Y)
	d := s.dev
	var err error
	if s.quad, err = pipeline.NewQuad(d); err != nil {
		return err
	}
	if s.start, err = pipeline.NewPostProgram(d, "day12 init", initFrag, "seed"); err != nil {
		return err
	}
	if s.update, err = pipeline.NewPostProgram(d, "day12 update", updateFrag, "uPosTex", "uVelTex", "time"); err != nil {
		return err
	}
	if s.u, err = s.update.Uniforms("uPosTex", "uVelTex", "time"); err != nil {
		return err
	}
	s.trail, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day12 trail",
		Vertex:   trailVert,
		Fragment: trailFrag,
		Uniforms: []string{"uPosTex", "vpMat", "uAlpha", "uColor"},
	})
	if err != nil {
		return err
	}
	if s.tu, err = s.trail.Uniforms("uPosTex", "vpMat", "uAlpha", "uColor"); err != nil {
		return err
	}
	if s.empty, err = d.NewVertexArray(nil); err != nil {
		return err
	}

	var fbs [2]*gpu.Framebuffer
	for i := range fbs {
		fbs[i], err = d.NewFramebuffer(gpu.FramebufferDesc{
			Width:       NumTrails,
			Height:      NumVertices,
			Attachments: 2,
			Format:      gpu.TextureFormatRGBA32F,
			Filter:      gpu.FilterNearest,
		})
		if err != nil {
			return fmt.Errorf("day12: %w", err)
		}
	}
	s.state = pipeline.NewPingPong(fbs[0], fbs[1])

	s.state.Read.Bind()
	d.SetBlend(false)
	d.Clear(0, 0, 0, 1)
	seed, _ := s.start.Uniform("seed")
	seed.Float(rand.Float32() * 100)
	if err := s.quad.Draw(s.start); err != nil {
		return fmt.Errorf("day12: init: %w", err)
	}
	return nil
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	read, write := s.state.Read, s.state.Write

	write.Bind()
	d.SetBlend(false)
	d.Clear(0, 0, 0, 1)
	read.Texture(0).Bind(0)
	read.Texture(1).Bind(1)
	s.u["uPosTex"].Sampler(0)
	s.u["uVelTex"].Sampler(1)
	s.time += TimeStep
	s.u["time"].Float(s.time)
	if err := s.quad.Draw(s.update); err != nil {
		return fmt.Errorf("day12: update: %w", err)
	}

	d.BindScreen(s.size)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	d.SetBlend(true)
	d.BlendFunc(gpu.BlendFactorSrcAlpha, gpu.BlendFactorOne)
	write.Texture(0).Bind(0)
	s.tu["uPosTex"].Sampler(0)
	s.tu["vpMat"].Mat4(s.cam.ViewProjection())
	s.tu["uAlpha"].Float(s.set.Get("alpha"))
	c, _ := geom.HSVA(s.set.Get("hue"), 0.6, 1, 1)
	s.tu["uColor"].Vec4(c[0], c[1], c[2], c[3])
	err := d.DrawArraysInstanced(s.trail, s.empty, gpu.DrawModeLineStrip, 0, NumVertices, NumTrails)
	d.SetBlend(false)
	if err != nil {
		return fmt.Errorf("day12: trails: %w", err)
	}
	s.state.Swap()
	return nil
}

func (s *Sketch) Release() {
	s.start.Release()
	s.update.Release()
	s.trail.Release()
	s.empty.Release()
	if s.state != nil {
		for _, fb := range s.state.Both() {
			fb.Release()
		}
	}
	s.quad.Release()
}
