// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER                   = 0x8892
	BACK                           = 0x0405
	BLEND                          = 0xbe2
	CLAMP_TO_EDGE                  = 0x812f
	COLOR_ATTACHMENT0              = 0x8ce0
	COLOR_BUFFER_BIT               = 0x4000
	COMPILE_STATUS                 = 0x8b81
	CULL_FACE                      = 0xb44
	DEPTH_ATTACHMENT               = 0x8d00
	DEPTH_BUFFER_BIT               = 0x100
	DEPTH_COMPONENT16              = 0x81a5
	DEPTH_COMPONENT24              = 0x81a6
	DEPTH_TEST                     = 0xb71
	DRAW_FRAMEBUFFER               = 0x8ca9
	DST_COLOR                      = 0x306
	DYNAMIC_COPY                   = 0x88ea
	DYNAMIC_DRAW                   = 0x88e8
	ELEMENT_ARRAY_BUFFER           = 0x8893
	EXTENSIONS                     = 0x1f03
	FALSE                          = 0
	FLOAT                          = 0x1406
	FRAGMENT_SHADER                = 0x8b30
	FRAMEBUFFER                    = 0x8d40
	FRAMEBUFFER_COMPLETE           = 0x8cd5
	FRAMEBUFFER_INCOMPLETE         = 0x8cd6
	FRAMEBUFFER_MISSING_ATTACHMENT = 0x8cd7
	FRAMEBUFFER_UNSUPPORTED        = 0x8cdd
	FRONT                          = 0x0404
	FUNC_ADD                       = 0x8006
	INTERLEAVED_ATTRIBS            = 0x8c8c
	INVALID_INDEX                  = ^uint(0)
	LEQUAL                         = 0x203
	LESS                           = 0x201
	GREATER                        = 0x204
	GEQUAL                         = 0x206
	LINEAR                         = 0x2601
	LINEAR_MIPMAP_LINEAR           = 0x2703
	LINEAR_MIPMAP_NEAREST          = 0x2701
	LINES                          = 0x1
	LINE_STRIP                     = 0x3
	LINK_STATUS                    = 0x8b82
	MAX_COLOR_ATTACHMENTS          = 0x8cdf
	MAX_DRAW_BUFFERS               = 0x8824
	MAX_TEXTURE_SIZE               = 0xd33
	MAX_TEXTURE_IMAGE_UNITS        = 0x8872
	NEAREST                        = 0x2600
	NONE                           = 0
	NO_ERROR                       = 0x0
	NUM_EXTENSIONS                 = 0x821d
	ONE                            = 0x1
	ONE_MINUS_SRC_ALPHA            = 0x303
	PACK_ALIGNMENT                 = 0xd05
	POINTS                         = 0x0
	RASTERIZER_DISCARD             = 0x8c89
	READ_FRAMEBUFFER               = 0x8ca8
	RENDERER                       = 0x1f01
	RENDERBUFFER                   = 0x8d41
	REPEAT                         = 0x2901
	RG                             = 0x8227
	RG8                            = 0x822b
	RGB                            = 0x1907
	RGB8                           = 0x8051
	RGBA                           = 0x1908
	RGBA16F                        = 0x881a
	RGBA32F                        = 0x8814
	RGBA8                          = 0x8058
	SEPARATE_ATTRIBS               = 0x8c8d
	SRC_ALPHA                      = 0x302
	STATIC_DRAW                    = 0x88e4
	STREAM_DRAW                    = 0x88e0
	TEXTURE_2D                     = 0xde1
	TEXTURE_CUBE_MAP               = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X    = 0x8515
	TEXTURE_MAG_FILTER             = 0x2800
	TEXTURE_MIN_FILTER             = 0x2801
	TEXTURE_WRAP_R                 = 0x8072
	TEXTURE_WRAP_S                 = 0x2802
	TEXTURE_WRAP_T                 = 0x2803
	TEXTURE0                       = 0x84c0
	TRANSFORM_FEEDBACK_BUFFER      = 0x8c8e
	TRIANGLE_STRIP                 = 0x5
	TRIANGLES                      = 0x4
	TRUE                           = 1
	UNPACK_ALIGNMENT               = 0xcf5
	UNPACK_FLIP_Y_WEBGL            = 0x9240
	UNSIGNED_BYTE                  = 0x1401
	UNSIGNED_SHORT                 = 0x1403
	VERSION                        = 0x1f02
	VERTEX_SHADER                  = 0x8b31
	ZERO                           = 0x0
)
