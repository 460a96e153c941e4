// SPDX-License-Identifier: Unlicense OR MIT

// Package day15 draws noise-displaced lines stored in float textures
// and glows them with bloom.
package day15

import (
	"context"
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/camera"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/params"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/prepare.frag
	prepareFrag string
	//go:embed shaders/update.frag
	updateFrag string
	//go:embed shaders/view.vert
	viewVert string
	//go:embed shaders/view.frag
	viewFrag string
)

const (
	NumSegments = 1000
	NumLines    = 40
	// Tilt is the rotation of the line field about X, in radians.
	Tilt = -1.0
)

var updateUniforms = []string{"iPos", "iNorm", "time", "frequent", "multiplier", "diff"}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day15",
		Description: "noise lines in float textures with bloom",
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	quad *pipeline.Quad

	prepare, update, view *gpu.Program
	u                     map[string]gpu.Uniform
	vu                    map[string]gpu.Uniform
	empty                 *gpu.VertexArray

	state *pipeline.PingPong[*gpu.Framebuffer]
	// target and bloom follow the screen size.
	target *gpu.Framebuffer
	bloom  *pipeline.Bloom

	cam camera.Camera
	set *params.Set
}

func New() *Sketch {
	return &Sketch{
		cam: camera.Perspective(mgl32.Vec3{0, 0, 300}, 75, 1, 0.1, 1000),
		set: params.New(
			params.Param{Name: "frequent", Value: 0.05, Min: 0, Max: 10, Step: 0.0001},
			params.Param{Name: "multiplier", Value: 4, Min: 0, Max: 10, Step: 0.001},
			params.Param{Name: "diff", Value: 0.0001, Min: 0, Max: 10, Step: 0.0001},
			params.Param{Name: "uThreshold", Value: 0.478, Min: 0, Max: 1, Step: 0.001},
			params.Param{Name: "uIntensity", Value: 0.1, Min: 0, Max: 1, Step: 0.001},
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
	if s.prepare, err = pipeline.NewPostProgram(d, "day15 prepare", prepareFrag); err != nil {
		return err
	}
	if s.update, err = pipeline.NewPostProgram(d, "day15 update", updateFrag, updateUniforms...); err != nil {
		return err
	}
	if s.u, err = s.update.Uniforms(updateUniforms...); err != nil {
		return err
	}
	viewUniforms := []string{"iPos", "iNorm", "mMat", "vMat", "pMat", "cPos"}
	s.view, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day15 view",
		Vertex:   viewVert,
		Fragment: viewFrag,
		Uniforms: viewUniforms,
	})
	if err != nil {
		return err
	}
	if s.vu, err = s.view.Uniforms(viewUniforms...); err != nil {
		return err
	}
	if s.empty, err = d.NewVertexArray(nil); err != nil {
		return err
	}

	var fbs [2]*gpu.Framebuffer
	for i := range fbs {
		fbs[i], err = d.NewFramebuffer(gpu.FramebufferDesc{
			Width:       NumLines,
			Height:      NumSegments,
			Attachments: 2,
			Format:      gpu.TextureFormatRGBA32F,
			Filter:      gpu.FilterNearest,
		})
		if err != nil {
			return fmt.Errorf("day15: %w", err)
		}
	}
	s.state = pipeline.NewPingPong(fbs[0], fbs[1])
	if err := s.resize(); err != nil {
		return err
	}

	s.state.Read.Bind()
	d.SetBlend(false)
	d.Clear(0, 0, 0, 1)
	if err := s.quad.Draw(s.prepare); err != nil {
		return fmt.Errorf("day15: prepare: %w", err)
	}
	return nil
}

// resize recreates the offscreen target and the bloom chain when the
// screen size changed.
func (s *Sketch) resize() error {
	if s.target != nil && s.target.Size() == s.size {
		return nil
	}
	s.target.Release()
	s.bloom.Release()
	s.target, s.bloom = nil, nil
	var err error
	s.target, err = s.dev.NewFramebuffer(gpu.FramebufferDesc{
		Width:  s.size.X,
		Height: s.size.Y,
		Format: pipeline.PostFormat(s.dev),
		Filter: gpu.FilterLinear,
		Depth:  true,
	})
	if err != nil {
		return fmt.Errorf("day15: target: %w", err)
	}
	if s.bloom, err = pipeline.NewBloom(s.quad, s.size); err != nil {
		return fmt.Errorf("day15: bloom: %w", err)
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
	if s.size.X <= 0 || s.size.Y <= 0 {
		// Minimized; keep the targets until the window has an area again.
		return nil
	}
	if err := s.resize(); err != nil {
		return err
	}
	read, write := s.state.Read, s.state.Write

	write.Bind()
	d.SetBlend(false)
	d.SetDepthTest(false)
	d.Clear(0, 0, 0, 1)
	read.Texture(0).Bind(0)
	read.Texture(1).Bind(1)
	s.u["iPos"].Sampler(0)
	s.u["iNorm"].Sampler(1)
	s.u["time"].Float(float32(f.Index))
	s.u["frequent"].Float(s.set.Get("frequent"))
	s.u["multiplier"].Float(s.set.Get("multiplier"))
	s.u["diff"].Float(s.set.Get("diff"))
	if err := s.quad.Draw(s.update); err != nil {
		return fmt.Errorf("day15: update: %w", err)
	}

	s.target.Bind()
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(false)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	write.Texture(0).Bind(0)
	write.Texture(1).Bind(1)
	s.vu["iPos"].Sampler(0)
	s.vu["iNorm"].Sampler(1)
	s.vu["mMat"].Mat4(mgl32.HomogRotate3DX(Tilt))
	s.vu["vMat"].Mat4(s.cam.View())
	s.vu["pMat"].Mat4(s.cam.Projection())
	s.vu["cPos"].Vec3(s.cam.Eye[0], s.cam.Eye[1], s.cam.Eye[2])
	err := d.DrawArraysInstanced(s.view, s.empty, gpu.DrawModeTriangleStrip, 0, 2*NumSegments, NumLines)
	d.SetDepthTest(false)
	if err != nil {
		return fmt.Errorf("day15: view: %w", err)
	}

	s.bloom.Threshold = s.set.Get("uThreshold")
	s.bloom.Intensity = s.set.Get("uIntensity")
	if err := s.bloom.Render(s.target.Texture(0), s.size); err != nil {
		return fmt.Errorf("day15: %w", err)
	}
	s.state.Swap()
	return nil
}

func (s *Sketch) Release() {
	s.prepare.Release()
	s.update.Release()
	s.view.Release()
	s.empty.Release()
	if s.state != nil {
		for _, fb := range s.state.Both() {
			fb.Release()
		}
	}
	s.target.Release()
	s.bloom.Release()
	s.quad.Release()
}
