// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

var (
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("program link failed")
)

// InfoLogError carries the driver info log of a failed compile or link.
type InfoLogError struct {
	Err error
	// Stage is VERTEX_SHADER or FRAGMENT_SHADER for compile errors and
	// zero for link errors.
	Stage Enum
	Log   string
}

func (e *InfoLogError) Error() string {
	if e.Stage != 0 {
		return fmt.Sprintf("%s shader: %v: %s", StageName(e.Stage), e.Err, e.Log)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Log)
}

func (e *InfoLogError) Unwrap() error {
	return e.Err
}

func StageName(stage Enum) string {
	switch stage {
	case VERTEX_SHADER:
		return "vertex"
	case FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("stage(0x%x)", uint(stage))
	}
}

// CreateProgram compiles and links a program. If varyings is non-empty
// the vertex outputs are registered for transform feedback capture in
// bufferMode (INTERLEAVED_ATTRIBS or SEPARATE_ATTRIBS) before linking.
func CreateProgram(ctx Functions, vsSrc, fsSrc string, varyings []string, bufferMode Enum) (Program, error) {
	vs, err := createShader(ctx, VERTEX_SHADER, vsSrc)
	if err != nil {
		return Program{}, err
	}
	defer ctx.DeleteShader(vs)
	fs, err := createShader(ctx, FRAGMENT_SHADER, fsSrc)
	if err != nil {
		return Program{}, err
	}
	defer ctx.DeleteShader(fs)
	prog := ctx.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	if len(varyings) > 0 {
		ctx.TransformFeedbackVaryings(prog, varyings, bufferMode)
	}
	ctx.LinkProgram(prog)
	if ctx.GetProgrami(prog, LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return Program{}, &InfoLogError{Err: ErrLink, Log: strings.TrimSpace(log)}
	}
	return prog, nil
}

func createShader(ctx Functions, typ Enum, src string) (Shader, error) {
	sh := ctx.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(sh)
		ctx.DeleteShader(sh)
		return Shader{}, &InfoLogError{Err: ErrCompile, Stage: typ, Log: strings.TrimSpace(log)}
	}
	return sh, nil
}

// BytesView returns a byte slice view of a slice.
func BytesView[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// ParseGLVersion parses a VERSION string and reports whether it
// describes an OpenGL ES (or WebGL) context.
func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("failed to parse OpenGL ES version (%s)", glVer)
}

// HasExtension reports whether ext is in the space separated
// EXTENSIONS string exts.
func HasExtension(exts, ext string) bool {
	for _, e := range strings.Fields(exts) {
		if e == ext || e == "GL_"+ext {
			return true
		}
	}
	return false
}
