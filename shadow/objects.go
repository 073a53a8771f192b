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
	"github.com/relay64/relay64/glapi"
)

// sampler parameters cached for each texture.
var samplerParams = map[uint32]int{
	glapi.TEXTURE_MIN_FILTER: 0,
	glapi.TEXTURE_MAG_FILTER: 1,
	glapi.TEXTURE_WRAP_S:     2,
	glapi.TEXTURE_WRAP_T:     3,
	glapi.TEXTURE_WRAP_R:     4,
}

type textureRow struct {
	params [5]slot[int32]
}

type uniformKind int

const (
	uniformInt uniformKind = iota
	uniformFloat
	uniformVec2
	uniformVec3
	uniformVec4
)

type uniformValue struct {
	kind uniformKind
	i    int32
	f    [4]float32
}

type programRow struct {
	uniforms []slot[uniformValue]
}

type framebufferRow struct {
	hasDepth bool
}

// GenTextures mirrors the driver function of the same name. A side table row
// is created for every new texture.
func (sh *Shadow) GenTextures(n int32) []uint32 {
	sh.passthrough()
	textures := sh.driver.GenTextures(n)
	for _, t := range textures {
		sh.textures[t] = &textureRow{}
	}
	return textures
}

// DeleteTextures mirrors the driver function of the same name. The side table
// rows of the textures are freed and any texture unit bound to one of the
// textures is cleared.
func (sh *Shadow) DeleteTextures(textures []uint32) {
	sh.passthrough()
	sh.driver.DeleteTextures(textures)
	for _, t := range textures {
		delete(sh.textures, t)
		for i := range sh.textureUnits {
			if v, ok := sh.textureUnits[i].get(); ok && v.name == t {
				sh.textureUnits[i].invalidate()
			}
		}
	}
}

// TexParameteri mirrors the driver function of the same name. Sampler
// parameters are cached for the texture bound to the active texture unit.
// Other parameters are always forwarded.
func (sh *Shadow) TexParameteri(target uint32, pname uint32, param int32) {
	forward := func() {
		sh.driver.TexParameteri(target, pname, param)
	}

	var sl *slot[int32]
	if p, ok := samplerParams[pname]; ok {
		if unit := sh.activeUnit(); unit != nil {
			if b, ok := unit.get(); ok && b.target == target {
				if row, ok := sh.textures[b.name]; ok {
					sl = &row.params[p]
				}
			}
		}
	}

	update(sh, slotSamplerParam, sl, param, forward)
}

// CreateProgram mirrors the driver function of the same name. A side table row
// with room for every cached uniform location is created for the program.
func (sh *Shadow) CreateProgram() uint32 {
	sh.passthrough()
	program := sh.driver.CreateProgram()
	sh.programs[program] = &programRow{
		uniforms: make([]slot[uniformValue], sh.opts.UniformBound),
	}
	return program
}

// DeleteProgram mirrors the driver function of the same name. The side table
// row is freed and the active program is cleared if it was the deleted
// program.
func (sh *Shadow) DeleteProgram(program uint32) {
	sh.passthrough()
	sh.driver.DeleteProgram(program)
	delete(sh.programs, program)
	if v, ok := sh.program.get(); ok && v == program {
		sh.program.invalidate()
	}
}

// GenBuffers mirrors the driver function of the same name.
func (sh *Shadow) GenBuffers(n int32) []uint32 {
	sh.passthrough()
	return sh.driver.GenBuffers(n)
}

// DeleteBuffers mirrors the driver function of the same name. Buffer bindings
// and vertex attributes that refer to the buffers are cleared.
func (sh *Shadow) DeleteBuffers(buffers []uint32) {
	sh.passthrough()
	sh.driver.DeleteBuffers(buffers)
	for _, b := range buffers {
		for _, sl := range []*slot[uint32]{&sh.arrayBuffer, &sh.elementBuffer, &sh.indirectBuffer} {
			if v, ok := sl.get(); ok && v == b {
				sl.invalidate()
			}
		}
		for i := range sh.attribPointer {
			if v, ok := sh.attribPointer[i].get(); ok && v.buffer == b {
				sh.attribPointer[i].invalidate()
			}
		}
	}
}

// GenFramebuffers mirrors the driver function of the same name.
func (sh *Shadow) GenFramebuffers(n int32) []uint32 {
	sh.passthrough()
	framebuffers := sh.driver.GenFramebuffers(n)
	for _, f := range framebuffers {
		sh.framebuffers[f] = &framebufferRow{}
	}
	return framebuffers
}

// DeleteFramebuffers mirrors the driver function of the same name. Binding
// points bound to a deleted framebuffer are cleared.
func (sh *Shadow) DeleteFramebuffers(framebuffers []uint32) {
	sh.passthrough()
	sh.driver.DeleteFramebuffers(framebuffers)
	for _, f := range framebuffers {
		delete(sh.framebuffers, f)
		for bp := range numBindingPoints {
			_, sl := sh.framebufferSlot(bp)
			if v, ok := sl.get(); ok && v == f {
				sl.invalidate()
				sh.depthBound[bp] = false
			}
		}
	}
}

// GenVertexArrays mirrors the driver function of the same name. Returns nil
// if vertex array objects are not supported by the driver.
func (sh *Shadow) GenVertexArrays(n int32) []uint32 {
	if !sh.available(glapi.EntryVertexArrayObjects) {
		return nil
	}
	sh.passthrough()
	return sh.driver.GenVertexArrays(n)
}

// DeleteVertexArrays mirrors the driver function of the same name.
func (sh *Shadow) DeleteVertexArrays(arrays []uint32) {
	if !sh.available(glapi.EntryVertexArrayObjects) {
		return
	}
	sh.passthrough()
	sh.driver.DeleteVertexArrays(arrays)
	for _, a := range arrays {
		if v, ok := sh.vertexArray.get(); ok && v == a {
			sh.vertexArray.invalidate()
		}
	}
}

func isDepthAttachment(attachment uint32) bool {
	return attachment == glapi.DEPTH_ATTACHMENT || attachment == glapi.DEPTH_STENCIL_ATTACHMENT
}

// attach records whether the framebuffer bound to target has a depth
// attachment. attaching to the FRAMEBUFFER target affects the draw
// framebuffer. every binding point holding that framebuffer is updated.
func (sh *Shadow) attach(target uint32, attachment uint32, object uint32) {
	if !isDepthAttachment(attachment) {
		return
	}
	points := bindingPoints(target)
	if len(points) == 0 {
		return
	}

	_, sl := sh.framebufferSlot(points[0])
	fb, ok := sl.get()
	if !ok || fb == sh.defaultFramebuffer {
		return
	}
	row, ok := sh.framebuffers[fb]
	if !ok {
		return
	}
	row.hasDepth = object != 0

	for bp := range numBindingPoints {
		_, sl := sh.framebufferSlot(bp)
		if v, ok := sl.get(); ok && v == fb {
			sh.depthBound[bp] = row.hasDepth
		}
	}
}

// FramebufferTexture2D mirrors the driver function of the same name. Depth
// attachments are recorded for the framebuffer bound to target.
func (sh *Shadow) FramebufferTexture2D(target uint32, attachment uint32, textarget uint32, texture uint32, level int32) {
	sh.passthrough()
	sh.driver.FramebufferTexture2D(target, attachment, textarget, texture, level)
	sh.attach(target, attachment, texture)
}

// FramebufferRenderbuffer mirrors the driver function of the same name. Depth
// attachments are recorded for the framebuffer bound to target.
func (sh *Shadow) FramebufferRenderbuffer(target uint32, attachment uint32, renderbuffertarget uint32, renderbuffer uint32) {
	sh.passthrough()
	sh.driver.FramebufferRenderbuffer(target, attachment, renderbuffertarget, renderbuffer)
	sh.attach(target, attachment, renderbuffer)
}

// uniformSlot returns the cache slot for the uniform location of the active
// program. returns nil if the uniform cannot be cached.
func (sh *Shadow) uniformSlot(location int32) *slot[uniformValue] {
	if !sh.opts.CacheUniforms || location < 0 {
		return nil
	}
	program, ok := sh.program.get()
	if !ok {
		return nil
	}
	row, ok := sh.programs[program]
	if !ok || int(location) >= len(row.uniforms) {
		return nil
	}
	return &row.uniforms[location]
}

// Uniform1i mirrors the driver function of the same name.
func (sh *Shadow) Uniform1i(location int32, v0 int32) {
	update(sh, slotUniform, sh.uniformSlot(location), uniformValue{kind: uniformInt, i: v0}, func() {
		sh.driver.Uniform1i(location, v0)
	})
}

// Uniform1f mirrors the driver function of the same name.
func (sh *Shadow) Uniform1f(location int32, v0 float32) {
	v := uniformValue{kind: uniformFloat, f: [4]float32{v0}}
	update(sh, slotUniform, sh.uniformSlot(location), v, func() {
		sh.driver.Uniform1f(location, v0)
	})
}

// Uniform2f mirrors the driver function of the same name.
func (sh *Shadow) Uniform2f(location int32, v0 float32, v1 float32) {
	v := uniformValue{kind: uniformVec2, f: [4]float32{v0, v1}}
	update(sh, slotUniform, sh.uniformSlot(location), v, func() {
		sh.driver.Uniform2f(location, v0, v1)
	})
}

// Uniform3f mirrors the driver function of the same name.
func (sh *Shadow) Uniform3f(location int32, v0 float32, v1 float32, v2 float32) {
	v := uniformValue{kind: uniformVec3, f: [4]float32{v0, v1, v2}}
	update(sh, slotUniform, sh.uniformSlot(location), v, func() {
		sh.driver.Uniform3f(location, v0, v1, v2)
	})
}

// Uniform4f mirrors the driver function of the same name.
func (sh *Shadow) Uniform4f(location int32, v0 float32, v1 float32, v2 float32, v3 float32) {
	v := uniformValue{kind: uniformVec4, f: [4]float32{v0, v1, v2, v3}}
	update(sh, slotUniform, sh.uniformSlot(location), v, func() {
		sh.driver.Uniform4f(location, v0, v1, v2, v3)
	})
}
