// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/glsketch/glsketch/internal/gl"
)

type (
	BlendFactor   uint8
	DepthFunc     uint8
	DrawMode      uint8
	TextureFormat uint8
	TextureFilter uint8
	TextureWrap   uint8
	BufferUsage   uint8
	FeedbackMode  uint8
)

const (
	BlendFactorOne BlendFactor = iota
	BlendFactorZero
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
)

const (
	DepthFuncLess DepthFunc = iota
	DepthFuncLessEqual
	DepthFuncGreater
	DepthFuncGreaterEqual
)

const (
	DrawModeTriangles DrawMode = iota
	DrawModeTriangleStrip
	DrawModePoints
	DrawModeLines
	DrawModeLineStrip
)

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatRGB8
	TextureFormatRG8
	// TextureFormatRGBA32F stores four 32-bit floats per texel.
	TextureFormatRGBA32F
)

const (
	FilterNearest TextureFilter = iota
	FilterLinear
	// FilterLinearMipmap samples trilinearly and generates mipmaps on
	// upload.
	FilterLinearMipmap
	// FilterLinearMipmapNearest samples the nearest mipmap level
	// bilinearly.
	FilterLinearMipmapNearest
)

func (f TextureFilter) mipmapped() bool {
	return f == FilterLinearMipmap || f == FilterLinearMipmapNearest
}

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
)

const (
	// BufferStatic is uploaded once.
	BufferStatic BufferUsage = iota
	BufferDynamic
	// BufferStream is rewritten every frame, by the CPU or by transform
	// feedback.
	BufferStream
)

const (
	FeedbackNone FeedbackMode = iota
	// FeedbackInterleaved captures every varying into one buffer.
	FeedbackInterleaved
	// FeedbackSeparate captures each varying into its own buffer.
	FeedbackSeparate
)

func toGLBlendFactor(f BlendFactor) gl.Enum {
	switch f {
	case BlendFactorOne:
		return gl.ONE
	case BlendFactorZero:
		return gl.ZERO
	case BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactorDstColor:
		return gl.DST_COLOR
	default:
		panic("unsupported blend factor")
	}
}

func toGLDrawMode(mode DrawMode) gl.Enum {
	switch mode {
	case DrawModeTriangles:
		return gl.TRIANGLES
	case DrawModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case DrawModePoints:
		return gl.POINTS
	case DrawModeLines:
		return gl.LINES
	case DrawModeLineStrip:
		return gl.LINE_STRIP
	default:
		panic("unsupported draw mode")
	}
}

func toGLUsage(u BufferUsage) gl.Enum {
	switch u {
	case BufferStatic:
		return gl.STATIC_DRAW
	case BufferDynamic:
		return gl.DYNAMIC_DRAW
	case BufferStream:
		return gl.STREAM_DRAW
	default:
		panic("unsupported buffer usage")
	}
}

func toGLFeedbackMode(m FeedbackMode) gl.Enum {
	switch m {
	case FeedbackInterleaved:
		return gl.INTERLEAVED_ATTRIBS
	case FeedbackSeparate:
		return gl.SEPARATE_ATTRIBS
	default:
		return 0
	}
}

// textureTriple holds the type settings for
// a TexImage2D call.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
	// bpp is the number of bytes per texel.
	bpp int
}

func tripleFor(f TextureFormat) textureTriple {
	switch f {
	case TextureFormatRGBA8:
		return textureTriple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4}
	case TextureFormatRGB8:
		return textureTriple{gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE, 3}
	case TextureFormatRG8:
		return textureTriple{gl.RG8, gl.RG, gl.UNSIGNED_BYTE, 2}
	case TextureFormatRGBA32F:
		return textureTriple{gl.RGBA32F, gl.RGBA, gl.FLOAT, 16}
	default:
		panic(fmt.Sprintf("unsupported texture format %d", f))
	}
}

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8:
		return "RGBA8"
	case TextureFormatRGB8:
		return "RGB8"
	case TextureFormatRG8:
		return "RG8"
	case TextureFormatRGBA32F:
		return "RGBA32F"
	default:
		return fmt.Sprintf("TextureFormat(%d)", uint8(f))
	}
}
