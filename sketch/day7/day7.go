// SPDX-License-Identifier: Unlicense OR MIT

// Package day7 casts the shadow of a torus onto a plane with a shadow
// map rendered from a spot light above.
package day7

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/quat"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/depth.vert
	depthVert string
	//go:embed shaders/depth.frag
	depthFrag string
	//go:embed shaders/main.vert
	mainVert string
	//go:embed shaders/main.frag
	mainFrag string
)

const (
	// ShadowSize is the size of the shadow map.
	ShadowSize = 1024
	distance   = 70
	far        = 150
)

var (
	lightPos    = mgl32.Vec3{0, 20, 0}
	lightTarget = mgl32.Vec3{0, -10, 0}
	lightUp     = mgl32.Vec3{0, 0, -1}
	tiltAxis    = mgl32.Vec3{0, 0, 1}
	floor       = mgl32.Translate3D(10, -10, 0).Mul4(mgl32.Scale3D(30, 1, 30))
)

// bias maps clip coordinates to texture coordinates.
var bias = mgl32.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 1, 0,
	0.5, 0.5, 0, 1,
}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day7",
		Description: "shadow mapping with depth packed into RGBA",
		FPS:         60,
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev   *gpu.Device
	size  image.Point
	depth *gpu.Program
	main  *gpu.Program
	du    gpu.Uniform
	mu    map[string]gpu.Uniform

	torus, plane *geom.Geometry
	shadow       *gpu.Framebuffer

	cam  camera.Camera
	tilt quat.Q
	rot  quat.Q
}

func New() *Sketch {
	tilt, _ := quat.Rotate(mgl32.DegToRad(20), tiltAxis)
	return &Sketch{
		cam:  camera.Perspective(mgl32.Vec3{0, distance, 0}, 45, 1, 0.1, far),
		tilt: tilt,
		rot:  quat.Identity(),
	}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	s.cam.SetAspect(env.Size.X, env.Size.Y)
	d := s.dev
	var err error
	s.depth, err = d.NewProgram(gpu.ProgramDesc{Name: "day7 depth", Vertex: depthVert, Fragment: depthFrag})
	if err != nil {
		return err
	}
	if s.du, err = s.depth.Uniform("mvpMatrix"); err != nil {
		return err
	}
	s.main, err = d.NewProgram(gpu.ProgramDesc{Name: "day7 main", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	if s.mu, err = s.main.Uniforms("mvpMatrix", "mMatrix", "invMatrix", "tMatrix", "lightMatrix", "lightPos", "shadowMap"); err != nil {
		return err
	}

	layout := geom.Layout{Position: 0, Normal: 1, Color: 2, UV: -1}
	torus, err := geom.Torus(64, 64, 1, 2)
	if err != nil {
		return err
	}
	if s.torus, err = torus.Upload(d, layout); err != nil {
		return fmt.Errorf("day7: %w", err)
	}
	if s.plane, err = geom.Plane().Upload(d, layout); err != nil {
		return fmt.Errorf("day7: %w", err)
	}
	// Packed depth must not be filtered.
	s.shadow, err = d.NewFramebuffer(gpu.FramebufferDesc{
		Width:  ShadowSize,
		Height: ShadowSize,
		Format: gpu.TextureFormatRGBA8,
		Filter: gpu.FilterNearest,
		Wrap:   gpu.WrapClamp,
		Depth:  true,
	})
	return err
}

// Event turns the view with primary button drags.
func (s *Sketch) Event(e sketch.Event) {
	switch e := e.(type) {
	case sketch.PointerEvent:
		if e.Kind != sketch.Move || !e.Buttons.Contain(sketch.ButtonPrimary) {
			return
		}
		c := e.Center()
		if q, ok := quat.FromDrag(c.X(), c.Y(), e.Window.X(), e.Window.Y()); ok {
			s.rot = q
		}
	case sketch.ResizeEvent:
		s.size = e.Size
		s.cam.SetAspect(e.Size.X, e.Size.Y)
	}
}

// Camera returns the view camera. It looks down from above, tilted
// about Z and turned by the current drag.
func (s *Sketch) Camera() camera.Camera {
	q := quat.Mul(s.rot, s.tilt)
	c := s.cam
	c.Eye = quat.Vec(mgl32.Vec3{0, distance, 0}, q)
	c.Up = quat.Vec(mgl32.Vec3{0, 0, -1}, q)
	return c
}

// LightViewProjection returns the light's clip transform.
func LightViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(lightPos, lightTarget, lightUp)
	return mgl32.Perspective(math.Pi/2, 1, 0.1, far).Mul4(view)
}

func (s *Sketch) Render(pipeline.Frame) error {
	d := s.dev
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(true)
	lvp := LightViewProjection()
	models := [2]struct {
		g *geom.Geometry
		m mgl32.Mat4
	}{
		{s.torus, mgl32.Ident4()},
		{s.plane, floor},
	}

	s.shadow.Bind()
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	for _, o := range models {
		s.du.Mat4(lvp.Mul4(o.m))
		if err := o.g.Draw(d, s.depth); err != nil {
			return fmt.Errorf("day7: depth: %w", err)
		}
	}

	d.BindScreen(s.size)
	d.Clear(0, 0.7, 0.7, 1)
	d.ClearDepth(1)
	cam := s.Camera()
	s.shadow.Texture(0).Bind(0)
	s.mu["shadowMap"].Sampler(0)
	s.mu["tMatrix"].Mat4(bias.Mul4(lvp))
	s.mu["lightPos"].Vec3(lightPos[0], lightPos[1], lightPos[2])
	for _, o := range models {
		s.mu["mvpMatrix"].Mat4(cam.MVP(o.m))
		s.mu["mMatrix"].Mat4(o.m)
		s.mu["invMatrix"].Mat4(o.m.Inv())
		s.mu["lightMatrix"].Mat4(lvp.Mul4(o.m))
		if err := o.g.Draw(d, s.main); err != nil {
			return fmt.Errorf("day7: %w", err)
		}
	}
	return nil
}

func (s *Sketch) Release() {
	s.depth.Release()
	s.main.Release()
	s.torus.Release()
	s.plane.Release()
	s.shadow.Release()
}
