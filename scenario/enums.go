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


package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/relay64/relay64/glapi"
	"gopkg.in/yaml.v3"
)

// enums are named in scenario files by their lower case GL name without the
// GL_ prefix.

var capabilities = map[string]uint32{
	"blend":               glapi.BLEND,
	"cull_face":           glapi.CULL_FACE,
	"depth_test":          glapi.DEPTH_TEST,
	"dither":              glapi.DITHER,
	"polygon_offset_fill": glapi.POLYGON_OFFSET_FILL,
	"scissor_test":        glapi.SCISSOR_TEST,
	"stencil_test":        glapi.STENCIL_TEST,
}

var blendFactors = map[string]uint32{
	"zero":                glapi.ZERO,
	"one":                 glapi.ONE,
	"src_color":           glapi.SRC_COLOR,
	"one_minus_src_color": glapi.ONE_MINUS_SRC_COLOR,
	"src_alpha":           glapi.SRC_ALPHA,
	"one_minus_src_alpha": glapi.ONE_MINUS_SRC_ALPHA,
	"dst_alpha":           glapi.DST_ALPHA,
	"one_minus_dst_alpha": glapi.ONE_MINUS_DST_ALPHA,
}

var compareFuncs = map[string]uint32{
	"never":    glapi.NEVER,
	"less":     glapi.LESS,
	"equal":    glapi.EQUAL,
	"lequal":   glapi.LEQUAL,
	"greater":  glapi.GREATER,
	"notequal": glapi.NOTEQUAL,
	"gequal":   glapi.GEQUAL,
	"always":   glapi.ALWAYS,
}

var primitives = map[string]uint32{
	"points":         glapi.POINTS,
	"lines":          glapi.LINES,
	"triangles":      glapi.TRIANGLES,
	"triangle_strip": glapi.TRIANGLE_STRIP,
}

var clearBits = map[string]uint32{
	"color":   glapi.COLOR_BUFFER_BIT,
	"depth":   glapi.DEPTH_BUFFER_BIT,
	"stencil": glapi.STENCIL_BUFFER_BIT,
}

func decodeEnum(value *yaml.Node, kind string, names map[string]uint32) (uint32, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	v, ok := names[strings.ToLower(s)]
	if !ok {
		known := make([]string, 0, len(names))
		for k := range names {
			known = append(known, k)
		}
		sort.Strings(known)
		return 0, fmt.Errorf("line %d: unknown %s %q (one of %s)", value.Line, kind, s, strings.Join(known, ", "))
	}
	return v, nil
}

// Capability is a named capability for the enable and disable operations.
type Capability uint32

// UnmarshalYAML implements yaml.Unmarshaler for Capability.
func (c *Capability) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "capability", capabilities)
	*c = Capability(v)
	return err
}

// BlendFactor is a named source or destination blend factor.
type BlendFactor uint32

// UnmarshalYAML implements yaml.Unmarshaler for BlendFactor.
func (f *BlendFactor) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "blend factor", blendFactors)
	*f = BlendFactor(v)
	return err
}

// CompareFunc is a named depth comparison function.
type CompareFunc uint32

// UnmarshalYAML implements yaml.Unmarshaler for CompareFunc.
func (f *CompareFunc) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "comparison function", compareFuncs)
	*f = CompareFunc(v)
	return err
}

// Primitive is a named primitive type for the draw operation.
type Primitive uint32

// UnmarshalYAML implements yaml.Unmarshaler for Primitive.
func (p *Primitive) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "primitive", primitives)
	*p = Primitive(v)
	return err
}

// ClearMask is a list of buffer names for the clear operation. For example,
// [color, depth].
type ClearMask uint32

// UnmarshalYAML implements yaml.Unmarshaler for ClearMask.
func (m *ClearMask) UnmarshalYAML(value *yaml.Node) error {
	var names []yaml.Node
	if err := value.Decode(&names); err != nil {
		return err
	}
	*m = 0
	for i := range names {
		v, err := decodeEnum(&names[i], "buffer", clearBits)
		if err != nil {
			return err
		}
		*m |= ClearMask(v)
	}
	return nil
}
