// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/glsketch/glsketch/gpu"
)

var (
	//go:embed shaders/blur.frag
	blurFragment string
	//go:embed shaders/filter.frag
	filterFragment string
	//go:embed shaders/bloom.frag
	bloomFragment string
)

// BloomLevels are the downscale divisors of the bloom blur chain.
var BloomLevels = [4]int{4, 8, 16, 32}

// PostFormat returns the format of post-processing targets: linear
// filtered floats where supported, 8-bit otherwise.
func PostFormat(d *gpu.Device) gpu.TextureFormat {
	if c := d.Caps(); c.FloatRenderTargets && c.FloatLinear {
		return gpu.TextureFormatRGBA32F
	}
	return gpu.TextureFormatRGBA8
}

func newPostTarget(d *gpu.Device, size image.Point) (*gpu.Framebuffer, error) {
	return d.NewFramebuffer(gpu.FramebufferDesc{
		Width:  size.X,
		Height: size.Y,
		Format: PostFormat(d),
		Filter: gpu.FilterLinear,
	})
}

// Blur is a separable gaussian blur: a horizontal pass into the first
// target, then a vertical pass into the second.
type Blur struct {
	quad     *Quad
	prog     *gpu.Program
	image    gpu.Uniform
	vertical gpu.Uniform
	targets  [2]*gpu.Framebuffer
}

// NewBlur creates a blur rendering at size.
func NewBlur(q *Quad, size image.Point) (*Blur, error) {
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("pipeline: invalid blur size %v", size)
	}
	p, err := NewPostProgram(q.dev, "blur", blurFragment, "uImage", "uVertical")
	if err != nil {
		return nil, err
	}
	u, _ := p.Uniforms("uImage", "uVertical")
	b := &Blur{quad: q, prog: p, image: u["uImage"], vertical: u["uVertical"]}
	for i := range b.targets {
		if b.targets[i], err = newPostTarget(q.dev, size); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Render blurs src.
func (b *Blur) Render(src *gpu.Texture) error {
	for i, fbo := range b.targets {
		fbo.Bind()
		b.quad.dev.Clear(0, 0, 0, 1)
		in := src
		if i > 0 {
			in = b.targets[0].Texture(0)
		}
		in.Bind(0)
		b.image.Sampler(0)
		b.vertical.Int(i)
		if err := b.quad.Draw(b.prog); err != nil {
			return err
		}
	}
	return nil
}

// Texture returns the blurred result.
func (b *Blur) Texture() *gpu.Texture {
	return b.targets[1].Texture(0)
}

// Bloom adds a glow to bright areas: a threshold filter, blurs at the
// BloomLevels scales and a composite with the source.
type Bloom struct {
	quad *Quad

	filter       *gpu.Program
	filterImage  gpu.Uniform
	threshold    gpu.Uniform
	intensity    gpu.Uniform
	filterTarget *gpu.Framebuffer

	blurs [len(BloomLevels)]*Blur

	compose  *gpu.Program
	base     gpu.Uniform
	blurTexs [len(BloomLevels)]gpu.Uniform

	// Threshold is the luminance above which pixels glow.
	Threshold float32
	// Intensity scales the glow.
	Intensity float32
}

// NewBloom creates the chain for a source of size.
func NewBloom(q *Quad, size image.Point) (*Bloom, error) {
	d := q.dev
	b := &Bloom{quad: q, Threshold: 0.478, Intensity: 0.1}
	var err error
	b.filter, err = NewPostProgram(d, "bloom filter", filterFragment, "uImage", "uThreshold", "uIntensity")
	if err != nil {
		return nil, err
	}
	u, _ := b.filter.Uniforms("uImage", "uThreshold", "uIntensity")
	b.filterImage, b.threshold, b.intensity = u["uImage"], u["uThreshold"], u["uIntensity"]
	if b.filterTarget, err = newPostTarget(d, size); err != nil {
		return nil, err
	}
	for i, div := range BloomLevels {
		s := image.Pt(max(size.X/div, 1), max(size.Y/div, 1))
		if b.blurs[i], err = NewBlur(q, s); err != nil {
			return nil, err
		}
	}
	names := []string{"uBase", "uBlur0", "uBlur1", "uBlur2", "uBlur3"}
	b.compose, err = NewPostProgram(d, "bloom compose", bloomFragment, names...)
	if err != nil {
		return nil, err
	}
	u, _ = b.compose.Uniforms(names...)
	b.base = u["uBase"]
	for i := range b.blurTexs {
		b.blurTexs[i] = u[names[i+1]]
	}
	return b, nil
}

// Render applies bloom to src and draws the result to the screen of
// the given size.
func (b *Bloom) Render(src *gpu.Texture, screen image.Point) error {
	d := b.quad.dev
	b.filterTarget.Bind()
	d.Clear(0, 0, 0, 1)
	src.Bind(0)
	b.filterImage.Sampler(0)
	b.threshold.Float(b.Threshold)
	b.intensity.Float(b.Intensity)
	if err := b.quad.Draw(b.filter); err != nil {
		return fmt.Errorf("bloom filter: %w", err)
	}
	for i, blur := range b.blurs {
		if err := blur.Render(b.filterTarget.Texture(0)); err != nil {
			return fmt.Errorf("bloom blur %d: %w", i, err)
		}
	}
	d.BindScreen(screen)
	src.Bind(0)
	b.base.Sampler(0)
	for i, blur := range b.blurs {
		blur.Texture().Bind(i + 1)
		b.blurTexs[i].Sampler(i + 1)
	}
	return b.quad.Draw(b.compose)
}

// Filtered returns the thresholded image, for debugging.
func (b *Bloom) Filtered() *gpu.Texture {
	return b.filterTarget.Texture(0)
}

func (b *Blur) Release() {
	if b == nil {
		return
	}
	b.prog.Release()
	for _, t := range b.targets {
		t.Release()
	}
}

// Release frees the programs and targets of the chain. The quad is
// owned by the caller.
func (b *Bloom) Release() {
	if b == nil {
		return
	}
	b.filter.Release()
	b.filterTarget.Release()
	for _, blur := range b.blurs {
		blur.Release()
	}
	b.compose.Release()
}
