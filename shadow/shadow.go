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

import (
	"github.com/relay64/relay64/assert"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/logger"
)

// Gate decides whether the shadow can be trusted. When it returns false every
// call is forwarded to the driver.
type Gate interface {
	Trusted() bool
}

// GateFunc allows a function to be used as a Gate.
type GateFunc func() bool

// Trusted implements the Gate interface.
func (f GateFunc) Trusted() bool {
	return f()
}

// Options for a new Shadow. The zero value of a field selects the default.
type Options struct {
	// maximum number of texture units the shadow will track. the number is
	// reduced further if the driver supports fewer units
	TextureUnits int

	// maximum number of uniform locations cached per program. uniforms at
	// higher locations are always forwarded
	UniformBound int

	// whether to discard the contents of a depth attachment when the
	// framebuffer it belongs to is unbound
	InvalidateDepth bool

	// whether to cache uniform values at all
	CacheUniforms bool
}

// default values for Options.
const (
	DefaultTextureUnits = 32
	DefaultUniformBound = 64

	// number of vertex attributes tracked. most drivers support exactly this
	// number
	maxVertexAttribs = 16
)

// DefaultOptions returns the Options used by the relay.
func DefaultOptions() Options {
	return Options{
		TextureUnits:    DefaultTextureUnits,
		UniformBound:    DefaultUniformBound,
		InvalidateDepth: true,
		CacheUniforms:   true,
	}
}

type blendState struct {
	srcRGB, dstRGB     uint32
	srcAlpha, dstAlpha uint32
}

type stencilFuncState struct {
	fn   uint32
	ref  int32
	mask uint32
}

type textureBinding struct {
	target uint32
	name   uint32
}

type attribPointer struct {
	size       int32
	xtype      uint32
	normalized bool
	stride     int32
	offset     uintptr
	buffer     uint32
}

// Shadow is the cached driver state of a single render context.
type Shadow struct {
	driver glapi.Driver
	gate   Gate
	opts   Options

	thread assert.Thread

	blend         slot[blendState]
	depthFunc     slot[uint32]
	depthMask     slot[bool]
	cullFace      slot[uint32]
	frontFace     slot[uint32]
	polygonOffset slot[[2]float32]
	stencilFunc   slot[stencilFuncState]
	stencilOp     slot[[3]uint32]
	stencilMask   slot[uint32]
	colorMask     slot[[4]bool]
	viewport      slot[[4]int32]
	scissor       slot[[4]int32]
	clearColor    slot[[4]float32]
	clearDepth    slot[float64]

	arrayBuffer    slot[uint32]
	elementBuffer  slot[uint32]
	indirectBuffer slot[uint32]
	vertexArray    slot[uint32]
	program        slot[uint32]

	drawFramebuffer slot[uint32]
	readFramebuffer slot[uint32]
	readBuffer      slot[uint32]

	activeTexture slot[uint32]
	textureUnits  indexed[textureBinding]

	capabilities indexed[bool]
	capTable     capabilityTable

	attribEnabled  indexed[bool]
	attribPointer  indexed[attribPointer]
	attribConstant indexed[[4]float32]

	// per object side tables
	textures     map[uint32]*textureRow
	programs     map[uint32]*programRow
	framebuffers map[uint32]*framebufferRow

	// whether the framebuffer bound to each binding point has a depth
	// attachment
	depthBound [numBindingPoints]bool

	// the real name of framebuffer zero
	defaultFramebuffer uint32

	// slots by id. entries are nil for side tables and uncached calls
	slots [numSlots]invalidator

	counters [numSlots]Counter

	// optional entry points that have been reported as unavailable
	reported [glapi.NumEntryPoints]bool
}

// NewShadow is the preferred method of initialisation for the Shadow type.
// The Gate can be nil, in which case no call is ever skipped.
func NewShadow(driver glapi.Driver, gate Gate, opts Options) *Shadow {
	if opts.TextureUnits <= 0 {
		opts.TextureUnits = DefaultTextureUnits
	}
	if opts.UniformBound <= 0 {
		opts.UniformBound = DefaultUniformBound
	}

	sh := &Shadow{
		driver:   driver,
		gate:     gate,
		opts:     opts,
		capTable: newCapabilityTable(),
	}

	sh.textureUnits.resize(opts.TextureUnits)
	sh.capabilities.resize(int(NumCapabilities))
	sh.attribEnabled.resize(maxVertexAttribs)
	sh.attribPointer.resize(maxVertexAttribs)
	sh.attribConstant.resize(maxVertexAttribs)

	sh.slots = [numSlots]invalidator{
		slotBlend:           &sh.blend,
		slotDepthFunc:       &sh.depthFunc,
		slotDepthMask:       &sh.depthMask,
		slotCullFace:        &sh.cullFace,
		slotFrontFace:       &sh.frontFace,
		slotPolygonOffset:   &sh.polygonOffset,
		slotStencilFunc:     &sh.stencilFunc,
		slotStencilOp:       &sh.stencilOp,
		slotStencilMask:     &sh.stencilMask,
		slotColorMask:       &sh.colorMask,
		slotViewport:        &sh.viewport,
		slotScissor:         &sh.scissor,
		slotClearColor:      &sh.clearColor,
		slotClearDepth:      &sh.clearDepth,
		slotArrayBuffer:     &sh.arrayBuffer,
		slotElementBuffer:   &sh.elementBuffer,
		slotIndirectBuffer:  &sh.indirectBuffer,
		slotVertexArray:     &sh.vertexArray,
		slotProgram:         &sh.program,
		slotDrawFramebuffer: &sh.drawFramebuffer,
		slotReadFramebuffer: &sh.readFramebuffer,
		slotReadBuffer:      &sh.readBuffer,
		slotActiveTexture:   &sh.activeTexture,
		slotTextureUnit:     &sh.textureUnits,
		slotCapability:      &sh.capabilities,
		slotAttribEnabled:   &sh.attribEnabled,
		slotAttribPointer:   &sh.attribPointer,
		slotAttribConstant:  &sh.attribConstant,
	}

	sh.freeRows()

	return sh
}

// SetGate changes the Gate used by the shadow.
func (sh *Shadow) SetGate(gate Gate) {
	sh.gate = gate
}

func (sh *Shadow) trusted() bool {
	return sh.gate != nil && sh.gate.Trusted()
}

// Claim records the calling goroutine as the only goroutine allowed to use
// the shadow. Only checked when compiled with the assertions build tag.
func (sh *Shadow) Claim() {
	sh.thread.Claim()
}

// Release forgets the goroutine recorded by Claim().
func (sh *Shadow) Release() {
	sh.thread.Release()
}

// Zero invalidates every slot and forgets every side table row. The
// capability translation table is rebuilt.
func (sh *Shadow) Zero() {
	for _, s := range sh.slots {
		if s != nil {
			s.invalidate()
		}
	}
	sh.freeRows()
	sh.capTable = newCapabilityTable()
	sh.depthBound = [numBindingPoints]bool{}
	clear(sh.reported[:])
}

// InvalidateObjects clears every slot that refers to a driver object. Used
// when the objects of the render context have been lost.
func (sh *Shadow) InvalidateObjects() {
	for id, s := range sh.slots {
		if s != nil && slotTable[id].object {
			s.invalidate()
		}
	}
	sh.depthBound = [numBindingPoints]bool{}
}

// FreeRows forgets every side table row. Slots that refer to objects are
// cleared because the objects are no longer known to the shadow.
func (sh *Shadow) FreeRows() {
	sh.freeRows()
	sh.InvalidateObjects()
}

func (sh *Shadow) freeRows() {
	sh.textures = make(map[uint32]*textureRow)
	sh.programs = make(map[uint32]*programRow)
	sh.framebuffers = make(map[uint32]*framebufferRow)
}

// Limits sets the default framebuffer and the number of texture units. The
// number of texture units is capped by the TextureUnits option. Texture unit
// slots are invalidated.
func (sh *Shadow) Limits(defaultFramebuffer uint32, textureUnits int) {
	sh.defaultFramebuffer = defaultFramebuffer
	sh.textureUnits.resize(min(max(textureUnits, 1), sh.opts.TextureUnits))
}

// DefaultFramebuffer returns the real name of framebuffer zero.
func (sh *Shadow) DefaultFramebuffer() uint32 {
	return sh.defaultFramebuffer
}

// TextureUnits returns the number of texture units being tracked.
func (sh *Shadow) TextureUnits() int {
	return len(sh.textureUnits)
}

// Seed sets every scalar and per-index slot to the initial value of a newly
// created render context. The viewport and scissor box are queried from the
// driver. Seeding does not call the driver in any other way.
func (sh *Shadow) Seed() {
	var v [4]int32
	sh.driver.GetIntegerv(glapi.VIEWPORT, v[:])
	sh.viewport.set(v)
	sh.driver.GetIntegerv(glapi.SCISSOR_BOX, v[:])
	sh.scissor.set(v)

	sh.blend.set(blendState{srcRGB: glapi.ONE, dstRGB: glapi.ZERO, srcAlpha: glapi.ONE, dstAlpha: glapi.ZERO})
	sh.depthFunc.set(glapi.LESS)
	sh.depthMask.set(true)
	sh.cullFace.set(glapi.BACK)
	sh.frontFace.set(glapi.CCW)
	sh.polygonOffset.set([2]float32{})
	sh.stencilFunc.set(stencilFuncState{fn: glapi.ALWAYS, ref: 0, mask: 0xffffffff})
	sh.stencilOp.set([3]uint32{glapi.KEEP, glapi.KEEP, glapi.KEEP})
	sh.stencilMask.set(0xffffffff)
	sh.colorMask.set([4]bool{true, true, true, true})
	sh.clearColor.set([4]float32{})
	sh.clearDepth.set(1.0)

	sh.arrayBuffer.set(0)
	sh.elementBuffer.set(0)
	sh.indirectBuffer.set(0)
	sh.vertexArray.set(0)
	sh.program.set(0)
	sh.drawFramebuffer.set(sh.defaultFramebuffer)
	sh.readFramebuffer.set(sh.defaultFramebuffer)
	sh.activeTexture.set(glapi.TEXTURE0)

	for i := range sh.textureUnits {
		sh.textureUnits[i].set(textureBinding{target: glapi.TEXTURE_2D})
	}
	for c := range sh.capabilities {
		sh.capabilities[c].set(Capability(c) == CapDither)
	}
	for i := range maxVertexAttribs {
		sh.attribEnabled[i].set(false)
		sh.attribConstant[i].set([4]float32{0, 0, 0, 1})
	}
}

// available returns true if the optional entry point has been resolved by the
// driver. the first time an entry point is found to be unavailable it is
// logged.
func (sh *Shadow) available(ep glapi.EntryPoint) bool {
	if sh.driver.Available(ep) {
		return true
	}
	if !sh.reported[ep] {
		sh.reported[ep] = true
		logger.Logf(logger.Allow, "shadow", "%s is not available", ep)
	}
	return false
}

// Counters returns the forwarded and skipped counts for every slot that has
// been used. The map is keyed by slot name.
func (sh *Shadow) Counters() map[string]Counter {
	m := make(map[string]Counter)
	for id, c := range sh.counters {
		if c.Forwarded > 0 || c.Skipped > 0 {
			m[slotTable[id].name] = c
		}
	}
	return m
}

// Total returns the sum of all counters.
func (sh *Shadow) Total() Counter {
	var t Counter
	for _, c := range sh.counters {
		t = t.Add(c)
	}
	return t
}

// ResetCounters sets all counters to zero.
func (sh *Shadow) ResetCounters() {
	sh.counters = [numSlots]Counter{}
}
