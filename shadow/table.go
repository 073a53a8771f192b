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

package shadow

import "fmt"

// slotID identifies an entry in the slot table.
type slotID int

// List of slots. The order of the list has no significance.
const (
	slotBlend slotID = iota
	slotDepthFunc
	slotDepthMask
	slotCullFace
	slotFrontFace
	slotPolygonOffset
	slotStencilFunc
	slotStencilOp
	slotStencilMask
	slotColorMask
	slotViewport
	slotScissor
	slotClearColor
	slotClearDepth
	slotArrayBuffer
	slotElementBuffer
	slotIndirectBuffer
	slotVertexArray
	slotProgram
	slotDrawFramebuffer
	slotReadFramebuffer
	slotReadBuffer
	slotActiveTexture
	slotTextureUnit
	slotCapability
	slotAttribEnabled
	slotAttribPointer
	slotAttribConstant
	slotSamplerParam
	slotUniform
	slotPassthrough

	numSlots
)

// slotKind describes how a slot is stored.
type slotKind int

const (
	// a single value
	scalar slotKind = iota

	// one value per index
	perIndex

	// one row of values per driver object
	sideTable

	// not cached. the call is always forwarded
	uncached
)

func (k slotKind) String() string {
	switch k {
	case scalar:
		return "scalar"
	case perIndex:
		return "per-index"
	case sideTable:
		return "side-table"
	case uncached:
		return "uncached"
	}
	return "unknown slot kind"
}

// slotSpec is an entry in the slot table.
type slotSpec struct {
	// name of the slot. the same as the driver call that sets it
	name string

	kind slotKind

	// what the slot is indexed by. empty for scalar slots
	key string

	// whether the slot refers to a driver object. object slots are cleared
	// when the render context is lost because the objects no longer exist
	object bool
}

func (s slotSpec) String() string {
	if s.key == "" {
		return fmt.Sprintf("%s (%s)", s.name, s.kind)
	}
	return fmt.Sprintf("%s (%s by %s)", s.name, s.kind, s.key)
}

// slotTable describes every slot in the shadow. the table drives
// invalidation and the reporting of counters.
var slotTable = [numSlots]slotSpec{
	slotBlend:           {name: "BlendFuncSeparate", kind: scalar},
	slotDepthFunc:       {name: "DepthFunc", kind: scalar},
	slotDepthMask:       {name: "DepthMask", kind: scalar},
	slotCullFace:        {name: "CullFace", kind: scalar},
	slotFrontFace:       {name: "FrontFace", kind: scalar},
	slotPolygonOffset:   {name: "PolygonOffset", kind: scalar},
	slotStencilFunc:     {name: "StencilFunc", kind: scalar},
	slotStencilOp:       {name: "StencilOp", kind: scalar},
	slotStencilMask:     {name: "StencilMask", kind: scalar},
	slotColorMask:       {name: "ColorMask", kind: scalar},
	slotViewport:        {name: "Viewport", kind: scalar},
	slotScissor:         {name: "Scissor", kind: scalar},
	slotClearColor:      {name: "ClearColor", kind: scalar},
	slotClearDepth:      {name: "ClearDepth", kind: scalar},
	slotArrayBuffer:     {name: "BindBuffer/ARRAY_BUFFER", kind: scalar, object: true},
	slotElementBuffer:   {name: "BindBuffer/ELEMENT_ARRAY_BUFFER", kind: scalar, object: true},
	slotIndirectBuffer:  {name: "BindBuffer/DRAW_INDIRECT_BUFFER", kind: scalar, object: true},
	slotVertexArray:     {name: "BindVertexArray", kind: scalar, object: true},
	slotProgram:         {name: "UseProgram", kind: scalar, object: true},
	slotDrawFramebuffer: {name: "BindFramebuffer/DRAW_FRAMEBUFFER", kind: scalar, object: true},
	slotReadFramebuffer: {name: "BindFramebuffer/READ_FRAMEBUFFER", kind: scalar, object: true},
	slotReadBuffer:      {name: "ReadBuffer", kind: scalar},
	slotActiveTexture:   {name: "ActiveTexture", kind: scalar},
	slotTextureUnit:     {name: "BindTexture", kind: perIndex, key: "texture unit", object: true},
	slotCapability:      {name: "Enable/Disable", kind: perIndex, key: "capability"},
	slotAttribEnabled:   {name: "EnableVertexAttribArray", kind: perIndex, key: "attribute"},
	slotAttribPointer:   {name: "VertexAttribPointer", kind: perIndex, key: "attribute", object: true},
	slotAttribConstant:  {name: "VertexAttrib4f", kind: perIndex, key: "attribute"},
	slotSamplerParam:    {name: "TexParameteri", kind: sideTable, key: "texture"},
	slotUniform:         {name: "Uniform", kind: sideTable, key: "program/location"},
	slotPassthrough:     {name: "passthrough", kind: uncached},
}

// Counter is the number of calls to a wrapper that were forwarded to the
// driver and the number that were skipped.
type Counter struct {
	Forwarded uint64
	Skipped   uint64
}

func (c Counter) String() string {
	return fmt.Sprintf("%d forwarded, %d skipped", c.Forwarded, c.Skipped)
}

// Add returns the sum of two counters.
func (c Counter) Add(o Counter) Counter {
	return Counter{
		Forwarded: c.Forwarded + o.Forwarded,
		Skipped:   c.Skipped + o.Skipped,
	}
}
