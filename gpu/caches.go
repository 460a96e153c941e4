// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"regexp"
	"strings"

	"github.com/glsketch/glsketch/internal/gl"
)

// programKey identifies a linked program by its exact inputs.
type programKey struct {
	vert, frag string
	varyings   string
	mode       FeedbackMode
}

// linkedProgram is a GL program shared by every Program built from the
// same sources.
type linkedProgram struct {
	obj  gl.Program
	refs int
	// units records the texture unit assigned to each sampler uniform.
	units map[string]int
}

type programCache struct {
	res map[programKey]*linkedProgram
}

func newProgramCache() *programCache {
	return &programCache{
		res: make(map[programKey]*linkedProgram),
	}
}

func keyFor(vert, frag string, varyings []string, mode FeedbackMode) programKey {
	return programKey{
		vert:     vert,
		frag:     frag,
		varyings: strings.Join(varyings, "\x00"),
		mode:     mode,
	}
}

// get returns the cached program for key, linking it with build on a
// miss.
func (c *programCache) get(key programKey, build func() (gl.Program, error)) (*linkedProgram, error) {
	if lp, exists := c.res[key]; exists {
		lp.refs++
		return lp, nil
	}
	obj, err := build()
	if err != nil {
		return nil, err
	}
	lp := &linkedProgram{obj: obj, refs: 1, units: make(map[string]int)}
	// Unassigned samplers read unit 0.
	for _, name := range samplerNames(key.vert, key.frag) {
		lp.units[name] = 0
	}
	c.res[key] = lp
	return lp, nil
}

// put drops a reference and deletes the program when none remain.
func (c *programCache) put(d *Device, key programKey) {
	lp, exists := c.res[key]
	if !exists {
		return
	}
	lp.refs--
	if lp.refs > 0 {
		return
	}
	delete(c.res, key)
	d.state.deleteProgram(d.funcs, lp.obj)
}

var samplerDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?[iu]?sampler\w*\s+(\w+)\s*;`)

// samplerNames lists the sampler uniforms declared in the sources.
func samplerNames(srcs ...string) []string {
	var names []string
	for _, src := range srcs {
		for _, m := range samplerDecl.FindAllStringSubmatch(src, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

func (c *programCache) len() int {
	return len(c.res)
}

func (c *programCache) release(d *Device) {
	for k, lp := range c.res {
		delete(c.res, k)
		d.state.deleteProgram(d.funcs, lp.obj)
	}
}
