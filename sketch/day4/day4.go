// SPDX-License-Identifier: Unlicense OR MIT

// Package day4 draws a sky box and a torus reflecting it, seen from a
// camera rolling around the X axis.
//
// The sky is read from posx.jpg, negx.jpg, posy.jpg, negy.jpg, posz.jpg
// and negz.jpg in the environment's assets when all six are present and
// generated otherwise.
package day4

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/asset"
	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/quat"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/main.vert
	mainVert string
	//go:embed shaders/main.frag
	mainFrag string
)

const (
	// SkySize is the face size of the sky cube map.
	SkySize  = 512
	distance = 10
	skyScale = 100
)

var (
	rollAxis = mgl32.Vec3{1, 0, 0}
	spinAxis = mgl32.Vec3{0, 1, 1}.Normalize()
)

func init() {
	sketch.Register(sketch.Info{
		Name:        "day4",
		Description: "cube map sky box and reflections",
		FPS:         60,
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	prog *gpu.Program
	u    map[string]gpu.Uniform

	box, torus *geom.Geometry
	sky        *gpu.Texture

	cam camera.Camera
}

func New() *Sketch {
	return &Sketch{
		cam: camera.Perspective(mgl32.Vec3{0, 0, distance}, 90, 1, 0.1, 200),
	}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	s.cam.SetAspect(env.Size.X, env.Size.Y)
	d := s.dev
	var err error
	s.prog, err = d.NewProgram(gpu.ProgramDesc{Name: "day4", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	if s.u, err = s.prog.Uniforms("mvpMatrix", "mMatrix", "cameraPos", "cubeTexture", "reflection"); err != nil {
		return err
	}

	layout := geom.Layout{Position: 0, Normal: 1, Color: 2, UV: -1}
	torus, err := geom.Torus(80, 100, 1, 2)
	if err != nil {
		return err
	}
	if s.torus, err = torus.Fill(mgl32.Vec4{1, 1, 1, 1}).Upload(d, layout); err != nil {
		return fmt.Errorf("day4: %w", err)
	}
	if s.box, err = geom.Cube(2).Fill(mgl32.Vec4{1, 1, 1, 1}).Upload(d, layout); err != nil {
		return fmt.Errorf("day4: %w", err)
	}

	faces, err := skyFaces(ctx, env)
	if err != nil {
		return err
	}
	if s.sky, err = d.NewCubeTexture(SkySize, gpu.TextureFormatRGBA8, gpu.FilterLinear); err != nil {
		return err
	}
	for i, pix := range faces {
		if err := s.sky.UploadFace(i, pix); err != nil {
			return err
		}
	}
	return nil
}

func skyFaces(ctx context.Context, env sketch.Env) ([6][]byte, error) {
	if asset.HasCube(env.Assets) {
		return asset.LoadCube(ctx, env.Assets, SkySize)
	}
	var faces [6][]byte
	for i := range faces {
		faces[i] = asset.SkyFace(i, SkySize)
	}
	return faces, nil
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

// Camera returns the camera of frame i. It rolls half a degree per
// frame.
func (s *Sketch) Camera(i int) camera.Camera {
	q, _ := quat.Rotate(float32(i%720)*math.Pi/360, rollAxis)
	return s.cam.Orbit(q, distance)
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)

	cam := s.Camera(f.Index + 1)
	s.sky.Bind(0)
	s.u["cubeTexture"].Sampler(0)
	s.u["cameraPos"].Vec3(cam.Eye[0], cam.Eye[1], cam.Eye[2])

	m := mgl32.Scale3D(skyScale, skyScale, skyScale)
	s.u["reflection"].Int(1)
	s.u["mvpMatrix"].Mat4(cam.MVP(m))
	s.u["mMatrix"].Mat4(m)
	if err := s.box.Draw(d, s.prog); err != nil {
		return fmt.Errorf("day4: sky: %w", err)
	}

	m = mgl32.HomogRotate3D(mgl32.DegToRad(float32((f.Index+1)%360)), spinAxis)
	s.u["reflection"].Int(0)
	s.u["mvpMatrix"].Mat4(cam.MVP(m))
	s.u["mMatrix"].Mat4(m)
	if err := s.torus.Draw(d, s.prog); err != nil {
		return fmt.Errorf("day4: torus: %w", err)
	}
	return nil
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.box.Release()
	s.torus.Release()
	s.sky.Release()
}
