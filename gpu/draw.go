// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/glsketch/glsketch/internal/gl"
)

// DrawArrays draws count vertices of v with p.
func (d *Device) DrawArrays(p *Program, v *VertexArray, mode DrawMode, first, count int) error {
	if err := d.prepareDraw(p, v); err != nil {
		return err
	}
	d.funcs.DrawArrays(toGLDrawMode(mode), first, count)
	return nil
}

// DrawArraysInstanced draws instances copies of count vertices.
func (d *Device) DrawArraysInstanced(p *Program, v *VertexArray, mode DrawMode, first, count, instances int) error {
	if err := d.prepareDraw(p, v); err != nil {
		return err
	}
	d.funcs.DrawArraysInstanced(toGLDrawMode(mode), first, count, instances)
	return nil
}

// DrawElements draws the first count indices of the index buffer of v.
// A negative count draws all of them.
func (d *Device) DrawElements(p *Program, v *VertexArray, mode DrawMode, count int) error {
	if err := d.prepareIndexed(p, v, &count); err != nil {
		return err
	}
	d.funcs.DrawElements(toGLDrawMode(mode), count, gl.UNSIGNED_SHORT, 0)
	return nil
}

// DrawElementsInstanced is the instanced variant of DrawElements.
func (d *Device) DrawElementsInstanced(p *Program, v *VertexArray, mode DrawMode, count, instances int) error {
	if err := d.prepareIndexed(p, v, &count); err != nil {
		return err
	}
	d.funcs.DrawElementsInstanced(toGLDrawMode(mode), count, gl.UNSIGNED_SHORT, 0, instances)
	return nil
}

func (d *Device) prepareIndexed(p *Program, v *VertexArray, count *int) error {
	if v.index == nil {
		return fmt.Errorf("gpu: indexed draw without index buffer")
	}
	if *count < 0 || *count > v.index.count {
		*count = v.index.count
	}
	return d.prepareDraw(p, v)
}

// prepareDraw binds p and v and rejects draws that would read a buffer
// being captured or sample a texture being rendered to.
func (d *Device) prepareDraw(p *Program, v *VertexArray) error {
	if v.released {
		return fmt.Errorf("gpu: vertex array: %w", ErrReleased)
	}
	if d.feedback.active {
		for _, out := range d.feedback.outputs {
			if v.uses(out) {
				return fmt.Errorf("%w: program %q", ErrFeedbackAliasing, p.name)
			}
		}
	}
	if fbo := d.bound; fbo != nil {
		for name, unit := range p.samplerUnits() {
			if unit >= 0 && unit < maxTextureUnits && fbo.attached(d.state.boundTexture(unit)) {
				return fmt.Errorf("%w: %q in program %q", ErrFeedbackLoop, name, p.name)
			}
		}
	}
	p.use()
	d.state.bindVertexArray(d.funcs, v.obj)
	return nil
}
