// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/glsketch/glsketch/internal/gl"
)

var (
	ErrCompile               = gl.ErrCompile
	ErrLink                  = gl.ErrLink
	ErrMissingUniform        = errors.New("gpu: uniform not found")
	ErrMissingAttrib         = errors.New("gpu: attribute not found")
	ErrMissingExtension      = errors.New("gpu: extension not supported")
	ErrIncompleteFramebuffer = errors.New("gpu: framebuffer incomplete")
	ErrIndexRange            = errors.New("gpu: index out of range")
	ErrFeedbackAliasing      = errors.New("gpu: transform feedback output bound as vertex input")
	ErrFeedbackLoop          = errors.New("gpu: texture sampled while bound as render target")
	ErrReleased              = errors.New("gpu: resource released")
)

// BuildError reports a program that failed to compile or link.
type BuildError struct {
	Program string
	// Stage is "vertex" or "fragment" for compile errors and empty for
	// link errors.
	Stage string
	// Log is the driver info log.
	Log string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("gpu: build %q: %v", e.Program, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func missingExtension(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingExtension, name)
}
