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

import "github.com/relay64/relay64/glapi"

// Replay submits every valid slot to the driver. Afterwards the driver state
// is the same as the cached state and the cache can be trusted again.
//
// Slots are submitted in a fixed order: vertex array, array buffer, vertex
// attributes, capabilities, framebuffers, blend function, clear color,
// program, viewport, the remaining fixed function state, and lastly the
// texture units with the active texture unit selected last.
//
// A vertex attribute pointer is only submitted if the buffer it was recorded
// with is the buffer bound to the array buffer target. Otherwise the slot is
// cleared.
func (sh *Shadow) Replay() {
	sh.thread.Check("shadow")

	d := sh.driver

	if v, ok := sh.vertexArray.get(); ok && sh.available(glapi.EntryVertexArrayObjects) {
		d.BindVertexArray(v)
	}

	arrayBuffer, arrayBufferOk := sh.arrayBuffer.get()
	if arrayBufferOk {
		d.BindBuffer(glapi.ARRAY_BUFFER, arrayBuffer)
	}

	for i := range sh.attribEnabled {
		idx := uint32(i)
		if v, ok := sh.attribEnabled[i].get(); ok {
			if v {
				d.EnableVertexAttribArray(idx)
			} else {
				d.DisableVertexAttribArray(idx)
			}
		}
		if v, ok := sh.attribPointer[i].get(); ok {
			if arrayBufferOk && v.buffer == arrayBuffer {
				d.VertexAttribPointer(idx, v.size, v.xtype, v.normalized, v.stride, v.offset)
			} else {
				sh.attribPointer[i].invalidate()
			}
		}
	}

	for c := range sh.capabilities {
		if v, ok := sh.capabilities[c].get(); ok {
			if v {
				d.Enable(sh.capTable.enum[c])
			} else {
				d.Disable(sh.capTable.enum[c])
			}
		}
	}

	draw, drawOk := sh.drawFramebuffer.get()
	read, readOk := sh.readFramebuffer.get()
	if drawOk && readOk && draw == read {
		d.BindFramebuffer(glapi.FRAMEBUFFER, draw)
	} else {
		if drawOk {
			d.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, draw)
		}
		if readOk {
			d.BindFramebuffer(glapi.READ_FRAMEBUFFER, read)
		}
	}

	if v, ok := sh.blend.get(); ok {
		d.BlendFuncSeparate(v.srcRGB, v.dstRGB, v.srcAlpha, v.dstAlpha)
	}
	if v, ok := sh.clearColor.get(); ok {
		d.ClearColor(v[0], v[1], v[2], v[3])
	}
	if v, ok := sh.program.get(); ok {
		d.UseProgram(v)
	}
	if v, ok := sh.viewport.get(); ok {
		d.Viewport(v[0], v[1], v[2], v[3])
	}

	sh.replayFixedFunction()
	sh.replayTextures()
}

// replayFixedFunction submits the slots not covered by the main part of
// Replay().
func (sh *Shadow) replayFixedFunction() {
	d := sh.driver

	if v, ok := sh.elementBuffer.get(); ok {
		d.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, v)
	}
	if v, ok := sh.indirectBuffer.get(); ok && sh.available(glapi.EntryDrawIndirect) {
		d.BindBuffer(glapi.DRAW_INDIRECT_BUFFER, v)
	}
	if v, ok := sh.readBuffer.get(); ok && sh.available(glapi.EntryReadBuffer) {
		d.ReadBuffer(v)
	}
	if v, ok := sh.depthFunc.get(); ok {
		d.DepthFunc(v)
	}
	if v, ok := sh.depthMask.get(); ok {
		d.DepthMask(v)
	}
	if v, ok := sh.cullFace.get(); ok {
		d.CullFace(v)
	}
	if v, ok := sh.frontFace.get(); ok {
		d.FrontFace(v)
	}
	if v, ok := sh.polygonOffset.get(); ok {
		d.PolygonOffset(v[0], v[1])
	}
	if v, ok := sh.stencilFunc.get(); ok {
		d.StencilFunc(v.fn, v.ref, v.mask)
	}
	if v, ok := sh.stencilOp.get(); ok {
		d.StencilOp(v[0], v[1], v[2])
	}
	if v, ok := sh.stencilMask.get(); ok {
		d.StencilMask(v)
	}
	if v, ok := sh.colorMask.get(); ok {
		d.ColorMask(v[0], v[1], v[2], v[3])
	}
	if v, ok := sh.scissor.get(); ok {
		d.Scissor(v[0], v[1], v[2], v[3])
	}
	if v, ok := sh.clearDepth.get(); ok {
		d.ClearDepth(v)
	}
	for i := range sh.attribConstant {
		if v, ok := sh.attribConstant[i].get(); ok {
			d.VertexAttrib4f(uint32(i), v[0], v[1], v[2], v[3])
		}
	}
}

// replayTextures binds the texture of every texture unit. the active texture
// unit is the last to be selected so that it remains active afterwards.
func (sh *Shadow) replayTextures() {
	d := sh.driver

	active, activeOk := sh.activeTexture.get()

	for i := range sh.textureUnits {
		unit := glapi.TEXTURE0 + uint32(i)
		if activeOk && unit == active {
			continue
		}
		if v, ok := sh.textureUnits[i].get(); ok {
			d.ActiveTexture(unit)
			d.BindTexture(v.target, v.name)
		}
	}

	if !activeOk {
		// the slot is invalid so the next call to ActiveTexture() will be
		// forwarded whatever unit the loop above left selected
		return
	}

	d.ActiveTexture(active)
	if unit := sh.activeUnit(); unit != nil {
		if v, ok := unit.get(); ok {
			d.BindTexture(v.target, v.name)
		}
	}
}

// Neutralise leaves the driver in a neutral state for other users of the
// render context. Every enabled capability and vertex attribute array is
// disabled and the first texture unit is made active. The cache is not
// changed and will be restored by the next call to Replay().
func (sh *Shadow) Neutralise() {
	sh.thread.Check("shadow")

	d := sh.driver

	for c := range sh.capabilities {
		if v, ok := sh.capabilities[c].get(); ok && v {
			d.Disable(sh.capTable.enum[c])
		}
	}
	for i := range sh.attribEnabled {
		if v, ok := sh.attribEnabled[i].get(); ok && v {
			d.DisableVertexAttribArray(uint32(i))
		}
	}
	d.ActiveTexture(glapi.TEXTURE0)
}
