// SPDX-License-Identifier: Unlicense OR MIT

// Package day10 extrudes a text atlas with repeated passes over
// multiple render targets and scrolls the result in tiles.
package day10

import (
	"context"
	_ "embed"
	"fmt"
	"image"

	"github.com/glsketch/glsketch/asset"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/first.frag
	firstFrag string
	//go:embed shaders/second.frag
	secondFrag string
	//go:embed shaders/third.frag
	thirdFrag string
	//go:embed shaders/final.frag
	finalFrag string
)

const (
	// Text is drawn into the atlas, one rune per cell.
	Text = "あいうえおabcdef12345漢字カタカナ"
	// AtlasSize is the side of the atlas and of every offscreen target.
	AtlasSize = 1024
	// Split is the number of tiles per side in the final pass.
	Split = 5
	// Iterations is the number of round trips between the two
	// spreading targets.
	Iterations = 4

	targets = 4
)

var channels = []string{"img1", "img2", "img3", "img4"}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day10",
		Description: "text atlas extruded over multiple render targets",
		New:         func() sketch.Sketch { return New() },
	})
}

type Sketch struct {
	dev  *gpu.Device
	size image.Point
	quad *pipeline.Quad

	first, second, third, final *gpu.Program

	firstU, secondU, thirdU, finalU map[string]gpu.Uniform

	atlas *gpu.Texture
	// spread ping-pongs between fb[0] and fb[1]; fb[2] keeps the inner
	// result while the outer one is computed.
	fb     [3]*gpu.Framebuffer
	result *gpu.Framebuffer
}

func New() *Sketch {
	return new(Sketch)
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	d := s.dev
	var err error
	if s.quad, err = pipeline.NewQuad(d); err != nil {
		return err
	}
	progs := []struct {
		dst      **gpu.Program
		uniforms *map[string]gpu.Uniform
		name     string
		frag     string
		names    []string
	}{
		{&s.first, &s.firstU, "day10 first", firstFrag, []string{"img", "flag"}},
		{&s.second, &s.secondU, "day10 second", secondFrag, channels},
		{&s.third, &s.thirdU, "day10 third", thirdFrag, []string{"img1", "img2"}},
		{&s.final, &s.finalU, "day10 final", finalFrag, []string{"img", "split", "time"}},
	}
	for _, p := range progs {
		if *p.dst, err = pipeline.NewPostProgram(d, p.name, p.frag, p.names...); err != nil {
			return err
		}
		if *p.uniforms, err = (*p.dst).Uniforms(p.names...); err != nil {
			return err
		}
	}

	img, err := asset.TextAtlas(Text, AtlasSize, nil)
	if err != nil {
		return fmt.Errorf("day10: %w", err)
	}
	if s.atlas, err = d.NewImageTexture(img, gpu.FilterLinearMipmap, gpu.WrapClamp); err != nil {
		return err
	}
	for i := range s.fb {
		s.fb[i], err = d.NewFramebuffer(gpu.FramebufferDesc{
			Width:       AtlasSize,
			Height:      AtlasSize,
			Attachments: targets,
			Filter:      gpu.FilterLinear,
			Depth:       true,
		})
		if err != nil {
			return err
		}
	}
	s.result, err = d.NewFramebuffer(gpu.FramebufferDesc{
		Width:  AtlasSize,
		Height: AtlasSize,
		Filter: gpu.FilterLinear,
		Depth:  true,
	})
	if err != nil {
		return err
	}
	return s.prepare()
}

// prepare renders the extruded text into the result target once.
func (s *Sketch) prepare() error {
	d := s.dev
	d.SetDepthTest(true)
	d.DepthFunc(gpu.DepthFuncLessEqual)
	d.SetCullFace(true)

	if err := s.extrude(true); err != nil {
		return err
	}
	if err := s.spread(s.fb[0], s.fb[2]); err != nil {
		return err
	}
	if err := s.extrude(false); err != nil {
		return err
	}

	s.result.Bind()
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	s.fb[2].Texture(2).Bind(0)
	s.fb[0].Texture(2).Bind(1)
	s.thirdU["img1"].Sampler(0)
	s.thirdU["img2"].Sampler(1)
	if err := s.quad.Draw(s.third); err != nil {
		return fmt.Errorf("day10: third pass: %w", err)
	}
	return nil
}

// extrude splits the atlas into the targets of fb[0], glyphs when
// inside is set and background otherwise, then spreads them back and
// forth with fb[1].
func (s *Sketch) extrude(inside bool) error {
	d := s.dev
	s.fb[0].Bind()
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	s.atlas.Bind(0)
	s.firstU["img"].Sampler(0)
	flag := float32(0)
	if inside {
		flag = 1
	}
	s.firstU["flag"].Float(flag)
	if err := s.quad.Draw(s.first); err != nil {
		return fmt.Errorf("day10: first pass: %w", err)
	}
	for i := 0; i < Iterations; i++ {
		if err := s.spread(s.fb[0], s.fb[1]); err != nil {
			return err
		}
		if err := s.spread(s.fb[1], s.fb[0]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sketch) spread(src, dst *gpu.Framebuffer) error {
	d := s.dev
	dst.Bind()
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)
	for i, name := range channels {
		src.Texture(i).Bind(i)
		s.secondU[name].Sampler(i)
	}
	if err := s.quad.Draw(s.second); err != nil {
		return fmt.Errorf("day10: second pass: %w", err)
	}
	return nil
}

func (s *Sketch) Event(e sketch.Event) {
	if e, ok := e.(sketch.ResizeEvent); ok {
		s.size = e.Size
	}
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	d.BindScreen(s.size)
	d.Clear(1, 0, 0, 1)
	d.ClearDepth(1)
	s.result.Texture(0).Bind(0)
	s.finalU["img"].Sampler(0)
	s.finalU["split"].Float(Split)
	// Tiles scroll per frame, not per second.
	s.finalU["time"].Float(float32(f.Index))
	if err := s.quad.Draw(s.final); err != nil {
		return fmt.Errorf("day10: final pass: %w", err)
	}
	return nil
}

func (s *Sketch) Release() {
	for _, p := range []*gpu.Program{s.first, s.second, s.third, s.final} {
		p.Release()
	}
	for _, fb := range s.fb {
		fb.Release()
	}
	s.result.Release()
	s.atlas.Release()
	s.quad.Release()
}
