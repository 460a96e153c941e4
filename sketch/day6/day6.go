// SPDX-License-Identifier: Unlicense OR MIT

// Package day6 projects an image from a point light onto a room of
// tori, like a slide projector.
package day6

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
	// ImageSize is the size of the projected texture.
	ImageSize = 512
	distance  = 20
	tori      = 10
)

var (
	lightPos = mgl32.Vec3{-15, 10, 15}
	lightUp  = mgl32.Vec3{0, 0.57, -0.57}
	rollAxis = mgl32.Vec3{1, 0, 0}
)

// bias maps clip coordinates to texture coordinates.
var bias = mgl32.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 1, 0,
	0.5, 0.5, 0, 1,
}

// walls are the floor and the two walls behind the tori.
var walls = []mgl32.Mat4{
	mgl32.Translate3D(0, -10, 0).Mul4(mgl32.Scale3D(50, 1, 50)),
	mgl32.Translate3D(0, 10, -20).Mul4(mgl32.HomogRotate3DX(math.Pi / 2)).Mul4(mgl32.Scale3D(20, 1, 20)),
	mgl32.Translate3D(20, 10, 0).Mul4(mgl32.HomogRotate3DZ(math.Pi / 2)).Mul4(mgl32.Scale3D(20, 1, 20)),
}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day6",
		Description: "projective texture mapping from a point light",
		FPS:         60,
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	prog *gpu.Program
	u    map[string]gpu.Uniform

	torus, plane *geom.Geometry
	tex          *gpu.Texture

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
	s.prog, err = d.NewProgram(gpu.ProgramDesc{Name: "day6", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	if s.u, err = s.prog.Uniforms("mvpMatrix", "mMatrix", "invMatrix", "tMatrix", "lightPos", "projTexture"); err != nil {
		return err
	}
	layout := geom.Layout{Position: 0, Normal: 1, Color: 2, UV: -1}
	torus, err := geom.Torus(64, 64, 1, 2)
	if err != nil {
		return err
	}
	if s.torus, err = torus.Fill(mgl32.Vec4{1, 1, 1, 1}).Upload(d, layout); err != nil {
		return fmt.Errorf("day6: %w", err)
	}
	if s.plane, err = geom.Plane().Upload(d, layout); err != nil {
		return fmt.Errorf("day6: %w", err)
	}

	src, err := source(ctx, env)
	if err != nil {
		return err
	}
	s.tex, err = d.NewImageTexture(asset.Resize(src, ImageSize, ImageSize), gpu.FilterLinearMipmap, gpu.WrapClamp)
	return err
}

// source returns the configured image, or a hue checkerboard.
func source(ctx context.Context, env sketch.Env) (image.Image, error) {
	if env.Assets != nil && env.Image != "" {
		img, err := asset.LoadImage(ctx, env.Assets, env.Image)
		if err != nil {
			return nil, fmt.Errorf("day6: %w", err)
		}
		return img, nil
	}
	return checker(ImageSize, 8), nil
}

func checker(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cx, cy := x/cell, y/cell
			if (cx+cy)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				continue
			}
			c, _ := geom.HSVA(float32(cx*360/cells), 0.8, 1, 1)
			img.SetRGBA(x, y, color.RGBA{R: uint8(c[0] * 255), G: uint8(c[1] * 255), B: uint8(c[2] * 255), A: 255})
		}
	}
	return img
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

// Projector returns the matrix from world space to the homogeneous
// texture coordinates of the projected image.
func Projector() mgl32.Mat4 {
	view := mgl32.LookAtV(lightPos, mgl32.Vec3{}, lightUp)
	proj := mgl32.Perspective(math.Pi/2, 1, 0.1, 200)
	return bias.Mul4(proj).Mul4(view)
}

// TorusPosition returns the position of torus i, in two rows of five.
func TorusPosition(i int) mgl32.Vec3 {
	return mgl32.Vec3{float32((i%5 - 2) * 7), float32(i/5*7 - 5), float32((i%5 - 2) * 5)}
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)

	q, _ := quat.Rotate(float32((f.Index+1)%720)*math.Pi/360, rollAxis)
	cam := s.cam.Orbit(q, distance)
	s.tex.Bind(0)
	s.u["projTexture"].Sampler(0)
	s.u["tMatrix"].Mat4(Projector())
	s.u["lightPos"].Vec3(lightPos[0], lightPos[1], lightPos[2])

	for i := 0; i < tori; i++ {
		p := TorusPosition(i)
		if err := s.draw(cam, s.torus, mgl32.Translate3D(p[0], p[1], p[2])); err != nil {
			return fmt.Errorf("day6: torus: %w", err)
		}
	}
	for _, m := range walls {
		if err := s.draw(cam, s.plane, m); err != nil {
			return fmt.Errorf("day6: wall: %w", err)
		}
	}
	return nil
}

func (s *Sketch) draw(cam camera.Camera, g *geom.Geometry, m mgl32.Mat4) error {
	s.u["mvpMatrix"].Mat4(cam.MVP(m))
	s.u["mMatrix"].Mat4(m)
	s.u["invMatrix"].Mat4(m.Inv())
	return g.Draw(s.dev, s.prog)
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.torus.Release()
	s.plane.Release()
	s.tex.Release()
}
