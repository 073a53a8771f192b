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

// BindBuffer mirrors the driver function of the same name. Only the array,
// element array and draw indirect targets are cached.
func (sh *Shadow) BindBuffer(target uint32, buffer uint32) {
	forward := func() {
		sh.driver.BindBuffer(target, buffer)
	}

	switch target {
	case glapi.ARRAY_BUFFER:
		update(sh, slotArrayBuffer, &sh.arrayBuffer, buffer, forward)
	case glapi.ELEMENT_ARRAY_BUFFER:
		update(sh, slotElementBuffer, &sh.elementBuffer, buffer, forward)
	case glapi.DRAW_INDIRECT_BUFFER:
		if !sh.available(glapi.EntryDrawIndirect) {
			return
		}
		update(sh, slotIndirectBuffer, &sh.indirectBuffer, buffer, forward)
	default:
		update(sh, slotPassthrough, nil, buffer, forward)
	}
}

// BindVertexArray mirrors the driver function of the same name. The call does
// nothing if vertex array objects are not supported by the driver.
//
// Attribute state and the element array binding belong to the vertex array
// object so they are forgotten whenever a different object is bound.
func (sh *Shadow) BindVertexArray(array uint32) {
	if !sh.available(glapi.EntryVertexArrayObjects) {
		return
	}
	update(sh, slotVertexArray, &sh.vertexArray, array, func() {
		sh.driver.BindVertexArray(array)
		sh.attribEnabled.invalidate()
		sh.attribPointer.invalidate()
		sh.elementBuffer.invalidate()
	})
}

// UseProgram mirrors the driver function of the same name.
func (sh *Shadow) UseProgram(program uint32) {
	update(sh, slotProgram, &sh.program, program, func() {
		sh.driver.UseProgram(program)
	})
}

// framebuffer binding points.
type bindingPoint int

const (
	drawBinding bindingPoint = iota
	readBinding

	numBindingPoints
)

func (bp bindingPoint) target() uint32 {
	if bp == readBinding {
		return glapi.READ_FRAMEBUFFER
	}
	return glapi.DRAW_FRAMEBUFFER
}

// bindingPoints returns the binding points affected by a framebuffer target.
func bindingPoints(target uint32) []bindingPoint {
	switch target {
	case glapi.FRAMEBUFFER:
		return []bindingPoint{drawBinding, readBinding}
	case glapi.DRAW_FRAMEBUFFER:
		return []bindingPoint{drawBinding}
	case glapi.READ_FRAMEBUFFER:
		return []bindingPoint{readBinding}
	}
	return nil
}

func (sh *Shadow) framebufferSlot(bp bindingPoint) (slotID, *slot[uint32]) {
	if bp == readBinding {
		return slotReadFramebuffer, &sh.readFramebuffer
	}
	return slotDrawFramebuffer, &sh.drawFramebuffer
}

// leaveFramebuffer is called immediately before the framebuffer bound to the
// binding point is replaced. if the framebuffer has a depth attachment then
// the driver is told that the contents of the attachment are no longer
// required. on tiled GPUs this saves writing the depth buffer back to memory.
func (sh *Shadow) leaveFramebuffer(bp bindingPoint) {
	if !sh.depthBound[bp] {
		return
	}
	sh.depthBound[bp] = false

	if !sh.opts.InvalidateDepth || !sh.available(glapi.EntryInvalidateFramebuffer) {
		return
	}
	sh.driver.InvalidateFramebuffer(bp.target(), []uint32{glapi.DEPTH_ATTACHMENT})
}

// BindFramebuffer mirrors the driver function of the same name. Framebuffer
// zero is translated to the default framebuffer of the render context.
//
// The FRAMEBUFFER target binds both the draw and read binding points. The call
// is skipped only if both binding points are already bound to the
// framebuffer.
func (sh *Shadow) BindFramebuffer(target uint32, framebuffer uint32) {
	if framebuffer == 0 {
		framebuffer = sh.defaultFramebuffer
	}

	points := bindingPoints(target)
	if points == nil {
		update(sh, slotPassthrough, nil, framebuffer, func() {
			sh.driver.BindFramebuffer(target, framebuffer)
		})
		return
	}

	sh.thread.Check("shadow")

	skip := sh.trusted()
	for _, bp := range points {
		_, sl := sh.framebufferSlot(bp)
		skip = skip && sl.valid && sl.value == framebuffer
	}

	id, _ := sh.framebufferSlot(points[0])
	if skip {
		sh.counters[id].Skipped++
		return
	}

	// a binding point that already holds the framebuffer is not being left
	for _, bp := range points {
		_, sl := sh.framebufferSlot(bp)
		if !sl.valid || sl.value != framebuffer {
			sh.leaveFramebuffer(bp)
		}
	}

	sh.driver.BindFramebuffer(target, framebuffer)
	sh.counters[id].Forwarded++

	hasDepth := false
	if row, ok := sh.framebuffers[framebuffer]; ok && framebuffer != sh.defaultFramebuffer {
		hasDepth = row.hasDepth
	}
	for _, bp := range points {
		_, sl := sh.framebufferSlot(bp)
		sl.set(framebuffer)
		sh.depthBound[bp] = hasDepth
	}
}

// ReadBuffer mirrors the driver function of the same name. The call does
// nothing if the driver does not support it.
func (sh *Shadow) ReadBuffer(mode uint32) {
	if !sh.available(glapi.EntryReadBuffer) {
		return
	}
	update(sh, slotReadBuffer, &sh.readBuffer, mode, func() {
		sh.driver.ReadBuffer(mode)
	})
}

// ActiveTexture mirrors the driver function of the same name.
func (sh *Shadow) ActiveTexture(texture uint32) {
	update(sh, slotActiveTexture, &sh.activeTexture, texture, func() {
		sh.driver.ActiveTexture(texture)
	})
}

// activeUnit returns the slot for the active texture unit. returns nil if the
// active unit is not known or is not tracked.
func (sh *Shadow) activeUnit() *slot[textureBinding] {
	active, ok := sh.activeTexture.get()
	if !ok || active < glapi.TEXTURE0 {
		return nil
	}
	return sh.textureUnits.at(int(active - glapi.TEXTURE0))
}

// BindTexture mirrors the driver function of the same name. The binding is
// cached for the active texture unit.
func (sh *Shadow) BindTexture(target uint32, texture uint32) {
	update(sh, slotTextureUnit, sh.activeUnit(), textureBinding{target: target, name: texture}, func() {
		sh.driver.BindTexture(target, texture)
	})
}
