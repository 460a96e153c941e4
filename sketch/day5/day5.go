// SPDX-License-Identifier: Unlicense OR MIT

// Package day5 renders a mirror sphere among six spinning tori. The
// sphere reflects a cube map drawn from its center every frame.
package day5

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
	//go:embed shaders/light.vert
	lightVert string
	//go:embed shaders/light.frag
	lightFrag string
)

const (
	// EnvSize is the face size of the dynamic environment map.
	EnvSize = 1024
	skySize = 128

	near, far = 0.1, 200
	distance  = 20
)

var lightDir = mgl32.Vec3{-1, 1, 1}

// faces places one torus in front of every cube face, tinted with the
// face's ambient color. Order follows camera.CubeFace.
var faces = [6]struct {
	pos mgl32.Vec3
	amb mgl32.Vec4
}{
	{mgl32.Vec3{9, 0, 0}, mgl32.Vec4{1, 0.5, 0.5, 1}},
	{mgl32.Vec3{-9, 0, 0}, mgl32.Vec4{0.5, 0, 0, 1}},
	{mgl32.Vec3{0, 9, 0}, mgl32.Vec4{0.5, 1, 0.5, 1}},
	{mgl32.Vec3{0, -9, 0}, mgl32.Vec4{0, 0.5, 0, 1}},
	{mgl32.Vec3{2, 0, 9}, mgl32.Vec4{0.5, 0.5, 1, 1}},
	{mgl32.Vec3{0, 0, -9}, mgl32.Vec4{0, 0, 0.5, 1}},
}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day5",
		Description: "dynamic cube map reflections with a quaternion orbit camera",
		FPS:         60,
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev   *gpu.Device
	size  image.Point
	main  *gpu.Program
	light *gpu.Program
	mu    map[string]gpu.Uniform
	lu    map[string]gpu.Uniform

	torus, box, sphere *geom.Geometry
	sky                *gpu.Texture
	env                *gpu.Framebuffer

	cam camera.Camera
	rot quat.Q
}

func New() *Sketch {
	return &Sketch{
		cam: camera.Perspective(mgl32.Vec3{0, 0, distance}, 90, 1, near, far),
		rot: quat.Identity(),
	}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	s.cam.SetAspect(env.Size.X, env.Size.Y)
	d := s.dev
	var err error
	s.main, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day5 main",
		Vertex:   mainVert,
		Fragment: mainFrag,
	})
	if err != nil {
		return err
	}
	if s.mu, err = s.main.Uniforms("mvpMatrix", "mMatrix", "cameraPos", "cubeTexture", "background"); err != nil {
		return err
	}
	s.light, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day5 light",
		Vertex:   lightVert,
		Fragment: lightFrag,
	})
	if err != nil {
		return err
	}
	if s.lu, err = s.light.Uniforms("mvpMatrix", "invMatrix", "lightDir", "cameraDir", "ambColor"); err != nil {
		return err
	}

	layout := geom.Layout{Position: 0, Normal: 1, Color: 2, UV: -1}
	torus, err := geom.Torus(80, 100, 1, 2)
	if err != nil {
		return err
	}
	sphere, err := geom.Sphere(50, 50, 5)
	if err != nil {
		return err
	}
	sphere.Fill(mgl32.Vec4{1, 1, 1, 1})
	meshes := []struct {
		dst  **geom.Geometry
		mesh *geom.Mesh
	}{
		{&s.torus, torus},
		{&s.box, geom.Cube(1).Fill(mgl32.Vec4{1, 1, 1, 1})},
		{&s.sphere, sphere},
	}
	for _, m := range meshes {
		if *m.dst, err = m.mesh.Upload(d, layout); err != nil {
			return fmt.Errorf("day5: %w", err)
		}
	}

	if s.sky, err = d.NewCubeTexture(skySize, gpu.TextureFormatRGBA8, gpu.FilterLinear); err != nil {
		return err
	}
	for face := 0; face < 6; face++ {
		if err := s.sky.UploadFace(face, asset.SkyFace(face, skySize)); err != nil {
			return err
		}
	}
	s.env, err = d.NewCubeFramebuffer(EnvSize, true)
	return err
}

// Event rotates the camera with primary button drags.
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

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetBlend(false)
	angle := float32((f.Index+1)%360) * math.Pi / 180

	for face := 0; face < 6; face++ {
		if err := s.env.BindFace(face); err != nil {
			return err
		}
		d.Clear(0, 0, 0, 1)
		d.ClearDepth(1)
		cam := camera.CubeFace(face, mgl32.Vec3{}, near, far)
		if err := s.drawSky(cam.ViewProjection(), mgl32.Vec3{}); err != nil {
			return err
		}
		if err := s.drawTori(cam.ViewProjection(), camera.FaceDir(face).Mul(-1), angle); err != nil {
			return err
		}
	}

	d.BindScreen(s.size)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	cam := s.cam.Orbit(s.rot, distance)
	vp := cam.ViewProjection()
	if err := s.drawSky(vp, cam.Eye); err != nil {
		return err
	}
	s.env.Texture(0).Bind(0)
	s.mu["mvpMatrix"].Mat4(vp)
	s.mu["mMatrix"].Mat4(mgl32.Ident4())
	s.mu["background"].Int(0)
	if err := s.sphere.Draw(d, s.main); err != nil {
		return fmt.Errorf("day5: sphere: %w", err)
	}
	return s.drawTori(vp, cam.Eye, angle)
}

func (s *Sketch) drawSky(vp mgl32.Mat4, eye mgl32.Vec3) error {
	m := mgl32.Scale3D(100, 100, 100)
	s.sky.Bind(0)
	s.mu["mvpMatrix"].Mat4(vp.Mul4(m))
	s.mu["mMatrix"].Mat4(m)
	s.mu["cameraPos"].Vec3(eye[0], eye[1], eye[2])
	s.mu["cubeTexture"].Sampler(0)
	s.mu["background"].Int(1)
	if err := s.box.Draw(s.dev, s.main); err != nil {
		return fmt.Errorf("day5: sky: %w", err)
	}
	return nil
}

func (s *Sketch) drawTori(vp mgl32.Mat4, eye mgl32.Vec3, angle float32) error {
	s.lu["lightDir"].Vec3(lightDir[0], lightDir[1], lightDir[2])
	s.lu["cameraDir"].Vec3(eye[0], eye[1], eye[2])
	for i, fc := range faces {
		m := mgl32.Translate3D(fc.pos[0], fc.pos[1], fc.pos[2]).Mul4(mgl32.HomogRotate3D(angle, camera.FaceDir(i)))
		s.lu["mvpMatrix"].Mat4(vp.Mul4(m))
		s.lu["invMatrix"].Mat4(m.Inv())
		s.lu["ambColor"].Vec4(fc.amb[0], fc.amb[1], fc.amb[2], fc.amb[3])
		if err := s.torus.Draw(s.dev, s.light); err != nil {
			return fmt.Errorf("day5: torus: %w", err)
		}
	}
	return nil
}

func (s *Sketch) Release() {
	s.main.Release()
	s.light.Release()
	s.torus.Release()
	s.box.Release()
	s.sphere.Release()
	s.sky.Release()
	s.env.Release()
}
