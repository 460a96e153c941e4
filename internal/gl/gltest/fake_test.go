// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gltest

import (
	"errors"
	"testing"

	"github.com/glsketch/glsketch/internal/gl"
)

const (
	vsrc = `
layout(location = 0) in vec2 aPos;
in float aAge;
uniform mat4 uMVP;
out vec2 vPos;
out float vAge;
void main() {
	vPos = aPos;
	vAge = aAge;
	gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
`
	fsrc = `
uniform sampler2D uTex;
in vec2 vPos;
out vec4 fragColor;
void main() {
	fragColor = texture(uTex, vPos);
}
`
)

func TestLinkResolvesDeclarations(t *testing.T) {
	f := New()
	p, err := gl.CreateProgram(f, vsrc, fsrc, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if loc := f.GetUniformLocation(p, "uTex"); !loc.Valid() {
		t.Error("uTex not resolved")
	}
	if loc := f.GetUniformLocation(p, "missing"); loc.Valid() {
		t.Error("unexpected location for undeclared uniform")
	}
	if got := f.GetAttribLocation(p, "aPos"); got != 0 {
		t.Errorf("aPos location = %d, want 0", got)
	}
	if got := f.GetAttribLocation(p, "aAge"); got != 1 {
		t.Errorf("aAge location = %d, want 1", got)
	}
}

func TestCompileFailures(t *testing.T) {
	tests := map[string]string{
		"no main":    "out vec4 c;",
		"unbalanced": "void main() { if (true) { }",
	}
	for name, src := range tests {
		f := New()
		_, err := gl.CreateProgram(f, src, fsrc, nil, 0)
		if !errors.Is(err, gl.ErrCompile) {
			t.Errorf("%s: got %v, want ErrCompile", name, err)
		}
		var ile *gl.InfoLogError
		if !errors.As(err, &ile) || ile.Stage != gl.VERTEX_SHADER || ile.Log == "" {
			t.Errorf("%s: missing info log: %v", name, err)
		}
	}
}

func TestLinkRejectsUnknownVarying(t *testing.T) {
	f := New()
	if _, err := gl.CreateProgram(f, vsrc, fsrc, []string{"vPos", "vAge"}, gl.SEPARATE_ATTRIBS); err != nil {
		t.Fatal(err)
	}
	_, err := gl.CreateProgram(f, vsrc, fsrc, []string{"vVelocity"}, gl.INTERLEAVED_ATTRIBS)
	if !errors.Is(err, gl.ErrLink) {
		t.Fatalf("got %v, want ErrLink", err)
	}
}

func TestFramebufferCompleteness(t *testing.T) {
	f := New()
	fb := f.CreateFramebuffer()
	f.BindFramebuffer(gl.FRAMEBUFFER, fb)
	if st := f.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_MISSING_ATTACHMENT {
		t.Errorf("empty framebuffer status 0x%x", st)
	}
	tex := f.CreateTexture()
	f.BindTexture(gl.TEXTURE_2D, tex)
	f.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, 4, 4, gl.RGBA, gl.FLOAT, nil)
	f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	if st := f.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_UNSUPPORTED {
		t.Errorf("float attachment without extension: status 0x%x", st)
	}
	if !f.EnableExtension("EXT_color_buffer_float") {
		t.Fatal("extension not available")
	}
	if st := f.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		t.Errorf("status 0x%x, want complete", st)
	}
}

func TestReadPixelsReturnsClearColor(t *testing.T) {
	f := New()
	f.ClearColor(1, 0, 0, 1)
	f.Clear(gl.COLOR_BUFFER_BIT)
	px := make([]byte, 8)
	f.ReadPixels(0, 0, 2, 1, gl.RGBA, gl.UNSIGNED_BYTE, px)
	want := []byte{255, 0, 0, 255, 255, 0, 0, 255}
	if string(px) != string(want) {
		t.Errorf("got %v, want %v", px, want)
	}
}
