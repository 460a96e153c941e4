// SPDX-License-Identifier: Unlicense OR MIT

// Package day3 lights a tumbling torus with a point light and a
// directional light.
package day3

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
		Name:        "day3",
		Description: "point and directional lighting on a torus",
		FPS:         60,
		New:         func() sketch.Sketch { return New() },
	})
}

var (
	lightDir  = mgl32.Vec3{-0.5, 0.2, 0.5}
	lightPos  = mgl32.Vec3{0, 0, 3}
	cameraDir = mgl32.Vec3{0, 10, 20}
	ambient   = mgl32.Vec4{0.1, 0.1, 0.1, 1}
	spinAxis  = mgl32.Vec3{0, 1, 1}.Normalize()
)

type Sketch struct {
	dev   *gpu.Device
	size  image.Point
	prog  *gpu.Program
	u     map[string]gpu.Uniform
	torus *geom.Geometry
	cam   camera.Camera
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
	s.prog, err = s.dev.NewProgram(gpu.ProgramDesc{Name: "day3", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	s.u, err = s.prog.Uniforms("mvpMatrix", "mMatrix", "normMatrix", "lightDir", "lightPos", "cameraDir", "ambLightColor")
	if err != nil {
		return err
	}
	torus, err := geom.Torus(100, 100, 1, 2)
	if err != nil {
		return err
	}
	if s.torus, err = torus.Upload(s.dev, geom.Layout{Position: 0, Normal: 1, Color: 2, UV: -1}); err != nil {
		return fmt.Errorf("day3: %w", err)
	}
	s.u["lightDir"].Vec3(lightDir[0], lightDir[1], lightDir[2])
	s.u["lightPos"].Vec3(lightPos[0], lightPos[1], lightPos[2])
	s.u["cameraDir"].Vec3(cameraDir[0], cameraDir[1], cameraDir[2])
	s.u["ambLightColor"].Vec4(ambient[0], ambient[1], ambient[2], ambient[3])
	return nil
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

// Model returns the torus transform of frame i.
func Model(i int) mgl32.Mat4 {
	rad := mgl32.DegToRad(float32(i % 360))
	return mgl32.Translate3D(0, 0, -3).Mul4(mgl32.HomogRotate3D(rad, spinAxis))
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(true)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	m := Model(f.Index + 1)
	s.u["mvpMatrix"].Mat4(s.cam.MVP(m))
	s.u["mMatrix"].Mat4(m)
	s.u["normMatrix"].Mat4(m.Inv())
	if err := s.torus.Draw(d, s.prog); err != nil {
		return fmt.Errorf("day3: %w", err)
	}
	return nil
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.torus.Release()
}
