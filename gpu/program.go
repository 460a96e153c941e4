// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/internal/gl"
)

// ProgramDesc describes a vertex and fragment shader pair. Sources
// without a #version line get the device shader header.
type ProgramDesc struct {
	Name     string
	Vertex   string
	Fragment string
	// Varyings lists the vertex outputs captured by transform feedback,
	// in buffer order.
	Varyings []string
	Mode     FeedbackMode
	// Uniforms lists names resolved at build time. A missing name fails
	// the build with ErrMissingUniform.
	Uniforms []string
}

type Program struct {
	dev      *Device
	name     string
	key      programKey
	linked   *linkedProgram
	varyings []string
	mode     FeedbackMode
	uniforms map[string]Uniform
	released bool
}

// Uniform is a resolved uniform location of a program. The zero value
// is unresolved and panics when set.
type Uniform struct {
	p    *Program
	loc  gl.Uniform
	name string
}

// NewProgram compiles and links desc, sharing the GL program with
// earlier programs built from identical sources.
func (d *Device) NewProgram(desc ProgramDesc) (*Program, error) {
	if len(desc.Varyings) > 0 && desc.Mode == FeedbackNone {
		desc.Mode = FeedbackInterleaved
	}
	if len(desc.Varyings) == 0 {
		desc.Mode = FeedbackNone
	}
	vs, fs := d.withHeader(desc.Vertex), d.withHeader(desc.Fragment)
	key := keyFor(vs, fs, desc.Varyings, desc.Mode)
	lp, err := d.programs.get(key, func() (gl.Program, error) {
		return gl.CreateProgram(d.funcs, vs, fs, desc.Varyings, toGLFeedbackMode(desc.Mode))
	})
	if err != nil {
		be := &BuildError{Program: desc.Name, Err: err}
		var ile *gl.InfoLogError
		if errors.As(err, &ile) {
			be.Log = ile.Log
			if ile.Stage != 0 {
				be.Stage = gl.StageName(ile.Stage)
			}
		}
		Logger().Error("gpu: program build failed", "program", desc.Name, "stage", be.Stage, "log", be.Log)
		return nil, be
	}
	p := &Program{
		dev:      d,
		name:     desc.Name,
		key:      key,
		linked:   lp,
		varyings: append([]string(nil), desc.Varyings...),
		mode:     desc.Mode,
		uniforms: make(map[string]Uniform),
	}
	d.track(p)
	if _, err := p.Uniforms(desc.Uniforms...); err != nil {
		p.Release()
		return nil, err
	}
	Logger().Debug("gpu: program built", "program", desc.Name, "varyings", len(desc.Varyings))
	return p, nil
}

func (p *Program) Name() string {
	return p.name
}

// Varyings returns the captured vertex outputs and their capture mode.
func (p *Program) Varyings() ([]string, FeedbackMode) {
	return p.varyings, p.mode
}

// Uniform resolves a uniform location, caching the result.
func (p *Program) Uniform(name string) (Uniform, error) {
	if u, ok := p.uniforms[name]; ok {
		return u, nil
	}
	loc := p.dev.funcs.GetUniformLocation(p.linked.obj, name)
	if !loc.Valid() {
		return Uniform{}, fmt.Errorf("%w: %q in program %q", ErrMissingUniform, name, p.name)
	}
	u := Uniform{p: p, loc: loc, name: name}
	p.uniforms[name] = u
	return u, nil
}

// Uniforms resolves several uniforms at once. The error joins every
// missing name.
func (p *Program) Uniforms(names ...string) (map[string]Uniform, error) {
	res := make(map[string]Uniform, len(names))
	var errs []error
	for _, n := range names {
		u, err := p.Uniform(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res[n] = u
	}
	return res, errors.Join(errs...)
}

// AttribLocation returns the location of a vertex input.
func (p *Program) AttribLocation(name string) (int, error) {
	loc := p.dev.funcs.GetAttribLocation(p.linked.obj, name)
	if loc < 0 {
		return 0, fmt.Errorf("%w: %q in program %q", ErrMissingAttrib, name, p.name)
	}
	return loc, nil
}

// Attrib resolves the named input and describes it as size floats read
// from buf.
func (p *Program) Attrib(name string, buf *Buffer, size int) (Attrib, error) {
	loc, err := p.AttribLocation(name)
	if err != nil {
		return Attrib{}, err
	}
	return Attrib{Buffer: buf, Location: loc, Size: size}, nil
}

func (p *Program) use() {
	if p.released {
		panic(fmt.Errorf("gpu: program %q used after release", p.name))
	}
	p.dev.state.useProgram(p.dev.funcs, p.linked.obj)
}

// samplerUnits returns the texture units read by the program.
func (p *Program) samplerUnits() map[string]int {
	return p.linked.units
}

func (p *Program) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.dev.untrack(p)
	p.dev.programs.put(p.dev, p.key)
}

func (u Uniform) use() {
	if u.p == nil {
		panic("gpu: uniform not resolved")
	}
	u.p.use()
}

func (u Uniform) Name() string {
	return u.name
}

func (u Uniform) Float(v float32) {
	u.use()
	u.p.dev.funcs.Uniform1f(u.loc, v)
}

func (u Uniform) Int(v int) {
	u.use()
	u.p.dev.funcs.Uniform1i(u.loc, v)
}

func (u Uniform) Vec2(x, y float32) {
	u.use()
	u.p.dev.funcs.Uniform2f(u.loc, x, y)
}

func (u Uniform) Vec3(x, y, z float32) {
	u.use()
	u.p.dev.funcs.Uniform3f(u.loc, x, y, z)
}

func (u Uniform) Vec4(x, y, z, w float32) {
	u.use()
	u.p.dev.funcs.Uniform4f(u.loc, x, y, z, w)
}

func (u Uniform) Mat4(m mgl32.Mat4) {
	u.use()
	u.p.dev.funcs.UniformMatrix4fv(u.loc, m[:])
}

// Sampler points a sampler uniform at a texture unit.
func (u Uniform) Sampler(unit int) {
	u.use()
	u.p.dev.funcs.Uniform1i(u.loc, unit)
	u.p.linked.units[u.name] = unit
}
