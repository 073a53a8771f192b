// This file is part of Relay64.
//
// Relay64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Relay64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Relay64.  If not, see <https://www.gnu.org/licenses/>.

package glapi

// capabilities
const (
	CULL_FACE                = 0x0B44
	DEPTH_TEST               = 0x0B71
	STENCIL_TEST             = 0x0B90
	DITHER                   = 0x0BD0
	BLEND                    = 0x0BE2
	SCISSOR_TEST             = 0x0C11
	POLYGON_OFFSET_FILL      = 0x8037
	SAMPLE_ALPHA_TO_COVERAGE = 0x809E
	SAMPLE_COVERAGE          = 0x80A0
	DEPTH_CLAMP              = 0x864F
	FRAMEBUFFER_SRGB         = 0x8DB9
	PRIMITIVE_RESTART        = 0x8F9D
)

// blend factors
const (
	ZERO                = 0
	ONE                 = 1
	SRC_COLOR           = 0x0300
	ONE_MINUS_SRC_COLOR = 0x0301
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303
	DST_ALPHA           = 0x0304
	ONE_MINUS_DST_ALPHA = 0x0305
)

// comparison functions
const (
	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207
)

// faces and winding
const (
	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408
	CW             = 0x0900
	CCW            = 0x0901
)

// stencil operations
const (
	KEEP    = 0x1E00
	REPLACE = 0x1E01
	INCR    = 0x1E02
	DECR    = 0x1E03
	INVERT  = 0x150A
)

// buffer targets and usage
const (
	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	DRAW_INDIRECT_BUFFER = 0x8F3F
	UNIFORM_BUFFER       = 0x8A11
	STREAM_DRAW          = 0x88E0
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8
)

// framebuffers
const (
	FRAMEBUFFER              = 0x8D40
	READ_FRAMEBUFFER         = 0x8CA8
	DRAW_FRAMEBUFFER         = 0x8CA9
	RENDERBUFFER             = 0x8D41
	COLOR_ATTACHMENT0        = 0x8CE0
	DEPTH_ATTACHMENT         = 0x8D00
	STENCIL_ATTACHMENT       = 0x8D20
	DEPTH_STENCIL_ATTACHMENT = 0x821A
)

// textures
const (
	TEXTURE0           = 0x84C0
	TEXTURE_2D         = 0x0DE1
	TEXTURE_CUBE_MAP   = 0x8513
	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	TEXTURE_WRAP_R     = 0x8072
	TEXTURE_MAX_LEVEL  = 0x813D
	NEAREST            = 0x2600
	LINEAR             = 0x2601
	REPEAT             = 0x2901
	CLAMP_TO_EDGE      = 0x812F
)

// queries
const (
	VIEWPORT                         = 0x0BA2
	SCISSOR_BOX                      = 0x0C10
	MAX_VERTEX_ATTRIBS               = 0x8869
	MAX_TEXTURE_IMAGE_UNITS          = 0x8872
	MAX_COMBINED_TEXTURE_IMAGE_UNITS = 0x8B4D
	FRAMEBUFFER_BINDING              = 0x8CA6
)

// clear mask bits
const (
	DEPTH_BUFFER_BIT   = 0x0100
	STENCIL_BUFFER_BIT = 0x0400
	COLOR_BUFFER_BIT   = 0x4000
)

// primitives, data types and pixel formats
const (
	POINTS         = 0x0000
	LINES          = 0x0001
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	UNSIGNED_BYTE  = 0x1401
	UNSIGNED_SHORT = 0x1403
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406
	RGBA           = 0x1908

	DEPTH_COMPONENT   = 0x1902
	DEPTH_COMPONENT24 = 0x81A6
)

// shaders
const (
	FRAGMENT_SHADER = 0x8B30
	VERTEX_SHADER   = 0x8B31
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
)
