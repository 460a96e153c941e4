// SPDX-License-Identifier: Unlicense OR MIT

// Package day9 renders text into a texture and shows it on a quad.
package day9

import (
	"context"
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/asset"
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

const (
	// Text is drawn into the texture, one rune per grid cell.
	Text = "あいうえおabcdef12345漢字カタカナ"
	// TextureSize is the size of the text texture.
	TextureSize = 512
)

func init() {
	sketch.Register(sketch.Info{
		Name:        "day9",
		Description: "text rendered to a mipmapped texture",
		New:         func() sketch.Sketch { return New() },
	})
}

// quad covers clip space. The top edge samples v = 1, the first row of
// the uploaded image.
var quad = geom.Mesh{
	Positions: []float32{-1, 1, 0, 1, 1, 0, -1, -1, 0, 1, -1, 0},
	UVs:       []float32{0, 1, 1, 1, 0, 0, 1, 0},
	Indices:   []uint16{0, 2, 1, 2, 3, 1},
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	prog *gpu.Program
	u    map[string]gpu.Uniform
	quad *geom.Geometry
	tex  *gpu.Texture
}

func New() *Sketch {
	return &Sketch{}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	d := s.dev
	var err error
	s.prog, err = d.NewProgram(gpu.ProgramDesc{Name: "day9", Vertex: mainVert, Fragment: mainFrag})
	if err != nil {
		return err
	}
	if s.u, err = s.prog.Uniforms("mvpMatrix", "img"); err != nil {
		return err
	}
	if s.quad, err = quad.Upload(d, geom.Layout{Position: 0, Normal: -1, Color: -1, UV: 1}); err != nil {
		return fmt.Errorf("day9: %w", err)
	}
	atlas, err := asset.TextAtlas(Text, TextureSize, nil)
	if err != nil {
		return fmt.Errorf("day9: %w", err)
	}
	s.tex, err = d.NewImageTexture(atlas, gpu.FilterLinearMipmapNearest, gpu.WrapClamp)
	return err
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
	}
}

// MVP returns the fixed orthographic view of the quad.
func MVP() mgl32.Mat4 {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return mgl32.Ortho(-1, 1, -1, 1, 0.1, 100).Mul4(view)
}

func (s *Sketch) Render(pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(true)
	d.SetBlend(true)
	d.BlendFunc(gpu.BlendFactorSrcAlpha, gpu.BlendFactorOneMinusSrcAlpha)
	d.Clear(0.2, 0.2, 0, 1)
	d.ClearDepth(1)
	s.tex.Bind(0)
	s.u["img"].Sampler(0)
	s.u["mvpMatrix"].Mat4(MVP())
	if err := s.quad.Draw(d, s.prog); err != nil {
		return fmt.Errorf("day9: %w", err)
	}
	return nil
}

func (s *Sketch) Release() {
	s.prog.Release()
	s.quad.Release()
	s.tex.Release()
}
