// SPDX-License-Identifier: Unlicense OR MIT

// Package day2 spins two copies of a vertex colored quad about
// different axes.
package day2

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
		Name:        "day2",
		Description: "indexed quads with vertex colors and back face culling",
		FPS:         60,
		New:         func() sketch.Sketch { return New() },
	})
}

var quad = geom.Mesh{
	Positions: []float32{0, 1, 0, 1, 0, 0, -1, 0, 0, 0, -1, 0},
	Colors: []float32{
		1, 0, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
		0, 0, 0, 1,
	},
	Indices: []uint16{0, 1, 2, 1, 2, 3},
}

// axes are the rotation axes of the two copies, drawn in order.
var axes = [2]mgl32.Vec3{{0, 1, 0}, {1, 0, 0}}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	prog *gpu.Program
	mvp  gpu.Uniform
	quad *geom.Geometry
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
	s.prog, err = s.dev.NewProgram(gpu.ProgramDesc{Name: "day2", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	if s.mvp, err = s.prog.Uniform("mvpMatrix"); err != nil {
		return err
	}
	if s.quad, err = quad.Upload(s.dev, geom.Layout{Position: 0, Normal: -1, Color: 1, UV: -1}); err != nil {
		return fmt.Errorf("day2: %w", err)
	}
	return nil
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

// Angle returns the rotation of frame i: one degree per frame.
func Angle(i int) float32 {
	return mgl32.DegToRad(float32(i % 360))
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(true)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	vp := s.cam.ViewProjection()
	for _, axis := range axes {
		s.mvp.Mat4(vp.Mul4(mgl32.HomogRotate3D(Angle(f.Index), axis)))
		if err := s.quad.Draw(d, s.prog); err != nil {
			return fmt.Errorf("day2: %w", err)
		}
	}
	return nil
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.quad.Release()
}
