// SPDX-License-Identifier: Unlicense OR MIT

// Package day1 draws a single white triangle.
package day1

import (
	"context"
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/main.vert
	mainVert string
	//go:embed shaders/main.frag
	mainFrag string
)

func init() {
	sketch.Register(sketch.Info{
		Name:        "day1",
		Description: "a single triangle",
		New:         func() sketch.Sketch { return New() },
	})
}

var triangle = geom.Mesh{
	Positions: []float32{0, 2, 0, 1, 0, 0, -1, 0, 0},
	Indices:   []uint16{0, 1, 2},
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	prog *gpu.Program
	mvp  gpu.Uniform
	tri  *geom.Geometry
	cam  camera.Camera
}

func New() *Sketch {
	return &Sketch{
		cam: camera.Perspective(mgl32.Vec3{0, 1, 3}, 90, 1, 0.1, 100),
	}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	s.cam.SetAspect(env.Size.X, env.Size.Y)
	var err error
	s.prog, err = s.dev.NewProgram(gpu.ProgramDesc{Name: "day1", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	if s.mvp, err = s.prog.Uniform("mvpMatrix"); err != nil {
		return err
	}
	if s.tri, err = triangle.Upload(s.dev, geom.Layout{Position: 0, Normal: -1, Color: -1, UV: -1}); err != nil {
		return fmt.Errorf("day1: %w", err)
	}
	return nil
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

func (s *Sketch) Render(pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	s.mvp.Mat4(s.cam.ViewProjection())
	return s.tri.Draw(d, s.prog)
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.tri.Release()
}
