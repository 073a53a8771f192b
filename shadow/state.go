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

// BlendFunc mirrors the driver function of the same name. It shares a slot
// with BlendFuncSeparate().
func (sh *Shadow) BlendFunc(sfactor uint32, dfactor uint32) {
	v := blendState{srcRGB: sfactor, dstRGB: dfactor, srcAlpha: sfactor, dstAlpha: dfactor}
	update(sh, slotBlend, &sh.blend, v, func() {
		sh.driver.BlendFunc(sfactor, dfactor)
	})
}

// BlendFuncSeparate mirrors the driver function of the same name.
func (sh *Shadow) BlendFuncSeparate(srcRGB uint32, dstRGB uint32, srcAlpha uint32, dstAlpha uint32) {
	v := blendState{srcRGB: srcRGB, dstRGB: dstRGB, srcAlpha: srcAlpha, dstAlpha: dstAlpha}
	update(sh, slotBlend, &sh.blend, v, func() {
		sh.driver.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
	})
}

// DepthFunc mirrors the driver function of the same name.
func (sh *Shadow) DepthFunc(fn uint32) {
	update(sh, slotDepthFunc, &sh.depthFunc, fn, func() {
		sh.driver.DepthFunc(fn)
	})
}

// DepthMask mirrors the driver function of the same name.
func (sh *Shadow) DepthMask(flag bool) {
	update(sh, slotDepthMask, &sh.depthMask, flag, func() {
		sh.driver.DepthMask(flag)
	})
}

// CullFace mirrors the driver function of the same name.
func (sh *Shadow) CullFace(mode uint32) {
	update(sh, slotCullFace, &sh.cullFace, mode, func() {
		sh.driver.CullFace(mode)
	})
}

// FrontFace mirrors the driver function of the same name.
func (sh *Shadow) FrontFace(mode uint32) {
	update(sh, slotFrontFace, &sh.frontFace, mode, func() {
		sh.driver.FrontFace(mode)
	})
}

// PolygonOffset mirrors the driver function of the same name.
func (sh *Shadow) PolygonOffset(factor float32, units float32) {
	update(sh, slotPolygonOffset, &sh.polygonOffset, [2]float32{factor, units}, func() {
		sh.driver.PolygonOffset(factor, units)
	})
}

// StencilFunc mirrors the driver function of the same name.
func (sh *Shadow) StencilFunc(fn uint32, ref int32, mask uint32) {
	v := stencilFuncState{fn: fn, ref: ref, mask: mask}
	update(sh, slotStencilFunc, &sh.stencilFunc, v, func() {
		sh.driver.StencilFunc(fn, ref, mask)
	})
}

// StencilOp mirrors the driver function of the same name.
func (sh *Shadow) StencilOp(fail uint32, zfail uint32, zpass uint32) {
	update(sh, slotStencilOp, &sh.stencilOp, [3]uint32{fail, zfail, zpass}, func() {
		sh.driver.StencilOp(fail, zfail, zpass)
	})
}

// StencilMask mirrors the driver function of the same name.
func (sh *Shadow) StencilMask(mask uint32) {
	update(sh, slotStencilMask, &sh.stencilMask, mask, func() {
		sh.driver.StencilMask(mask)
	})
}

// ColorMask mirrors the driver function of the same name.
func (sh *Shadow) ColorMask(r bool, g bool, b bool, a bool) {
	update(sh, slotColorMask, &sh.colorMask, [4]bool{r, g, b, a}, func() {
		sh.driver.ColorMask(r, g, b, a)
	})
}

// Viewport mirrors the driver function of the same name.
func (sh *Shadow) Viewport(x int32, y int32, width int32, height int32) {
	update(sh, slotViewport, &sh.viewport, [4]int32{x, y, width, height}, func() {
		sh.driver.Viewport(x, y, width, height)
	})
}

// Scissor mirrors the driver function of the same name.
func (sh *Shadow) Scissor(x int32, y int32, width int32, height int32) {
	update(sh, slotScissor, &sh.scissor, [4]int32{x, y, width, height}, func() {
		sh.driver.Scissor(x, y, width, height)
	})
}

// ClearColor mirrors the driver function of the same name.
func (sh *Shadow) ClearColor(r float32, g float32, b float32, a float32) {
	update(sh, slotClearColor, &sh.clearColor, [4]float32{r, g, b, a}, func() {
		sh.driver.ClearColor(r, g, b, a)
	})
}

// ClearDepth mirrors the driver function of the same name.
func (sh *Shadow) ClearDepth(depth float64) {
	update(sh, slotClearDepth, &sh.clearDepth, depth, func() {
		sh.driver.ClearDepth(depth)
	})
}
