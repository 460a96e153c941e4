// SPDX-License-Identifier: Unlicense OR MIT

// Package day14 draws a camera facing ribbon along a Lissajous curve.
package day14

import (
	"context"
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/params"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/ribbon.vert
	ribbonVert string
	//go:embed shaders/ribbon.frag
	ribbonFrag string
)

// NumSegments is the number of strip vertices.
const NumSegments = 1000

func init() {
	sketch.Register(sketch.Info{
		Name:        "day14",
		Description: "screen facing ribbon drawn as one triangle strip",
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev    *gpu.Device
	size   image.Point
	prog   *gpu.Program
	u      map[string]gpu.Uniform
	ribbon *gpu.VertexArray
	cam    camera.Camera
	set    *params.Set
}

func New() *Sketch {
	return &Sketch{
		cam: camera.Perspective(mgl32.Vec3{0, 0, 200}, 75, 1, 0.1, 1000),
		set: params.New(
			params.Param{Name: "width", Value: 2, Min: 0.1, Max: 10, Step: 0.1},
			params.Param{Name: "spin", Value: 0.2, Min: -2, Max: 2, Step: 0.05},
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
	names := []string{"mMat", "vMat", "pMat", "cPos", "width"}
	var err error
	s.prog, err = s.dev.NewProgram(gpu.ProgramDesc{
		Name:     "day14 ribbon",
		Vertex:   ribbonVert,
		Fragment: ribbonFrag,
		Uniforms: names,
	})
	if err != nil {
		return err
	}
	if s.u, err = s.prog.Uniforms(names...); err != nil {
		return err
	}
	r := geom.NewRibbon(geom.Lissajous(NumSegments, 50))
	if s.ribbon, err = r.Upload(s.dev); err != nil {
		return fmt.Errorf("day14: %w", err)
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
	d.BindScreen(s.size)
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(true)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)

	model := mgl32.HomogRotate3DY(f.Seconds() * s.set.Get("spin"))
	eye := s.cam.Eye
	s.u["mMat"].Mat4(model)
	s.u["vMat"].Mat4(s.cam.View())
	s.u["pMat"].Mat4(s.cam.Projection())
	s.u["cPos"].Vec3(eye[0], eye[1], eye[2])
	s.u["width"].Float(s.set.Get("width"))
	if err := d.DrawArrays(s.prog, s.ribbon, gpu.DrawModeTriangleStrip, 0, NumSegments); err != nil {
		return fmt.Errorf("day14: %w", err)
	}
	return nil
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.ribbon.ReleaseAll()
}
