// SPDX-License-Identifier: Unlicense OR MIT

// Package day11 is a particle fountain updated entirely on the GPU:
// particles live in an interleaved buffer pair advanced by transform
// feedback, respawn at the pointer and drift through a force field.
package day11

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/asset"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/particle"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

var (
	//go:embed shaders/update.vert
	updateVert string
	//go:embed shaders/update.frag
	updateFrag string
	//go:embed shaders/draw.vert
	drawVert string
	//go:embed shaders/draw.frag
	drawFrag string
)

const (
	// NumParticles is the size of the pool.
	NumParticles = 10000
	// BirthRate is the number of particles born per millisecond.
	BirthRate = 0.5
	noiseSize = 512
	forceSize = 256
)

var varyings = []string{"vPosition", "vAge", "vLife", "vVelocity"}

func init() {
	sketch.Register(sketch.Info{
		Name:        "day11",
		Description: "transform feedback particle fountain following the pointer",
		New:         func() sketch.Sketch { return New() },
	})
}

// system is one buffer of the pool with the vertex arrays reading it.
type system struct {
	buf    *gpu.Buffer
	update *gpu.VertexArray
	draw   *gpu.VertexArray
}

type Sketch struct {
	dev    *gpu.Device
	size   image.Point
	update *gpu.Program
	draw   *gpu.Program
	u      struct {
		dTime, gravity, origin           gpu.Uniform
		minTheta, maxTheta               gpu.Uniform
		minSpeed, maxSpeed, noise, force gpu.Uniform
	}
	systems *pipeline.PingPong[*system]
	noise   *gpu.Texture
	force   *gpu.Texture
	emitter particle.Emitter
	rng     *rand.Rand

	Gravity  mgl32.Vec2
	Origin   mgl32.Vec2
	MinTheta float32
	MaxTheta float32
	MinSpeed float32
	MaxSpeed float32
}

// New returns the sketch with its initial emitter settings.
func New() *Sketch {
	return &Sketch{
		emitter:  particle.Emitter{Num: NumParticles, Rate: BirthRate},
		rng:      rand.New(rand.NewPCG(11, 11)),
		Gravity:  mgl32.Vec2{0, -0.4},
		MinTheta: math.Pi/2 - 0.5,
		MaxTheta: math.Pi/2 + 0.5,
		MinSpeed: 0.5,
		MaxSpeed: 1,
	}
}

func (s *Sketch) Setup(ctx context.Context, env sketch.Env) error {
	s.dev = env.Device
	s.size = env.Size
	d := s.dev
	var err error
	s.update, err = d.NewProgram(gpu.ProgramDesc{
		Name:     "day11 update",
		Vertex:   updateVert,
		Fragment: updateFrag,
		Varyings: varyings,
		Mode:     gpu.FeedbackInterleaved,
		Uniforms: []string{"dTime", "noise", "force", "gravity", "origin", "minTheta", "maxTheta", "minSpeed", "maxSpeed"},
	})
	if err != nil {
		return err
	}
	u, err := s.update.Uniforms("dTime", "noise", "force", "gravity", "origin", "minTheta", "maxTheta", "minSpeed", "maxSpeed")
	if err != nil {
		return err
	}
	s.u.dTime, s.u.noise, s.u.force = u["dTime"], u["noise"], u["force"]
	s.u.gravity, s.u.origin = u["gravity"], u["origin"]
	s.u.minTheta, s.u.maxTheta = u["minTheta"], u["maxTheta"]
	s.u.minSpeed, s.u.maxSpeed = u["minSpeed"], u["maxSpeed"]

	s.draw, err = d.NewProgram(gpu.ProgramDesc{Name: "day11 draw", Vertex: drawVert, Fragment: drawFrag})
	if err != nil {
		return err
	}

	pool := particle.Pool(NumParticles, 1.01, 1.05, s.rng)
	var pair [2]*system
	for i := range pair {
		if pair[i], err = s.newSystem(pool); err != nil {
			return err
		}
	}
	s.systems = pipeline.NewPingPong(pair[0], pair[1])

	s.noise, err = d.NewTexture(gpu.TextureDesc{
		Width:  noiseSize,
		Height: noiseSize,
		Format: gpu.TextureFormatRG8,
		Filter: gpu.FilterLinear,
	}, particle.Noise(noiseSize, noiseSize, s.rng))
	if err != nil {
		return err
	}
	field, err := s.loadField(ctx, env)
	if err != nil {
		return err
	}
	s.force, err = d.NewTexture(gpu.TextureDesc{
		Width:  forceSize,
		Height: forceSize,
		Format: gpu.TextureFormatRGB8,
		Filter: gpu.FilterLinear,
		Wrap:   gpu.WrapRepeat,
	}, rgb(field))
	return err
}

func (s *Sketch) newSystem(pool []float32) (*system, error) {
	d := s.dev
	buf, err := d.NewVertexBuffer(pool, gpu.BufferStream)
	if err != nil {
		return nil, err
	}
	const stride = particle.Stride * 4
	attribs := []gpu.Attrib{
		{Buffer: buf, Location: 0, Size: 2, Stride: stride, Offset: 0},
		{Buffer: buf, Location: 1, Size: 1, Stride: stride, Offset: 8},
		{Buffer: buf, Location: 2, Size: 1, Stride: stride, Offset: 12},
		{Buffer: buf, Location: 3, Size: 2, Stride: stride, Offset: 16},
	}
	update, err := d.NewVertexArray(nil, attribs...)
	if err != nil {
		return nil, err
	}
	draw, err := d.NewVertexArray(nil, attribs[:3]...)
	if err != nil {
		return nil, err
	}
	return &system{buf: buf, update: update, draw: draw}, nil
}

// loadField returns the force field image, resized to the texture
// size. Without a configured image a smooth random field is used.
func (s *Sketch) loadField(ctx context.Context, env sketch.Env) (*image.RGBA, error) {
	if env.Assets != nil && env.Image != "" {
		img, err := asset.LoadImage(ctx, env.Assets, env.Image)
		if err != nil {
			return nil, fmt.Errorf("day11: force field: %w", err)
		}
		return asset.Resize(img, forceSize, forceSize), nil
	}
	const n = 16
	seed := image.NewRGBA(image.Rect(0, 0, n, n))
	for i := 0; i < len(seed.Pix); i += 4 {
		seed.Pix[i] = byte(s.rng.IntN(256))
		seed.Pix[i+1] = byte(s.rng.IntN(256))
		seed.Pix[i+2] = 128
		seed.Pix[i+3] = 255
	}
	return asset.Resize(seed, forceSize, forceSize), nil
}

// rgb drops the alpha channel.
func rgb(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[x*4:x*4+3]...)
		}
	}
	return out
}

// Event moves the emitter with the pointer.
func (s *Sketch) Event(e sketch.Event) {
	p, ok := e.(sketch.PointerEvent)
	if !ok || p.Kind != sketch.Move || p.Window.X() == 0 || p.Window.Y() == 0 {
		return
	}
	s.Origin = mgl32.Vec2{
		4*p.Position.X()/p.Window.X() - 1,
		-(4*p.Position.Y()/p.Window.Y() - 1),
	}
}

func (s *Sketch) Render(f pipeline.Frame) error {
	d := s.dev
	n := s.emitter.Born()
	s.emitter.Advance(f.Delta)

	d.BindScreen(s.size)
	d.Clear(0, 0, 0, 1)
	d.ClearDepth(1)

	s.u.dTime.Float(f.DeltaSeconds())
	s.u.gravity.Vec2(s.Gravity[0], s.Gravity[1])
	s.u.origin.Vec2(s.Origin[0], s.Origin[1])
	s.u.minTheta.Float(s.MinTheta)
	s.u.maxTheta.Float(s.MaxTheta)
	s.u.minSpeed.Float(s.MinSpeed)
	s.u.maxSpeed.Float(s.MaxSpeed)
	s.noise.Bind(0)
	s.u.noise.Sampler(0)
	s.force.Bind(1)
	s.u.force.Sampler(1)

	read, write := s.systems.Read, s.systems.Write
	if err := d.Capture(s.update, read.update, gpu.DrawModePoints, n, write.buf); err != nil {
		return fmt.Errorf("day11: update: %w", err)
	}
	d.SetBlend(true)
	d.BlendFunc(gpu.BlendFactorSrcAlpha, gpu.BlendFactorOneMinusSrcAlpha)
	if err := d.DrawArrays(s.draw, read.draw, gpu.DrawModePoints, 0, n); err != nil {
		return fmt.Errorf("day11: draw: %w", err)
	}
	s.systems.Swap()
	return nil
}

func (s *Sketch) Release() {
	s.update.Release()
	s.draw.Release()
	s.noise.Release()
	s.force.Release()
	if s.systems != nil {
		for _, sys := range s.systems.Both() {
			sys.update.Release()
			sys.draw.Release()
			sys.buf.Release()
		}
	}
}
