// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "syscall/js"

type (
	Buffer       js.Value
	Framebuffer  js.Value
	Program      js.Value
	Renderbuffer js.Value
	Shader       js.Value
	Texture      js.Value
	Uniform      js.Value
	VertexArray  js.Value
)

var NoUniform = Uniform(js.Null())

func valid(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

func (b Buffer) Valid() bool {
	return valid(js.Value(b))
}

func (b Buffer) Equal(b2 Buffer) bool {
	return js.Value(b).Equal(js.Value(b2))
}

func (f Framebuffer) Valid() bool {
	return valid(js.Value(f))
}

func (f Framebuffer) Equal(f2 Framebuffer) bool {
	return js.Value(f).Equal(js.Value(f2))
}

func (p Program) Valid() bool {
	return valid(js.Value(p))
}

func (p Program) Equal(p2 Program) bool {
	return js.Value(p).Equal(js.Value(p2))
}

func (r Renderbuffer) Valid() bool {
	return valid(js.Value(r))
}

func (r Renderbuffer) Equal(r2 Renderbuffer) bool {
	return js.Value(r).Equal(js.Value(r2))
}

func (s Shader) Valid() bool {
	return valid(js.Value(s))
}

func (t Texture) Valid() bool {
	return valid(js.Value(t))
}

func (t Texture) Equal(t2 Texture) bool {
	return js.Value(t).Equal(js.Value(t2))
}

func (u Uniform) Valid() bool {
	return valid(js.Value(u))
}

func (a VertexArray) Valid() bool {
	return valid(js.Value(a))
}

func (a VertexArray) Equal(a2 VertexArray) bool {
	return js.Value(a).Equal(js.Value(a2))
}
