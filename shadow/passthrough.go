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

// passthrough is called by every wrapper that always forwards to the driver.
func (sh *Shadow) passthrough() {
	sh.thread.Check("shadow")
	sh.counters[slotPassthrough].Forwarded++
}

// Clear mirrors the driver function of the same name. Never cached.
func (sh *Shadow) Clear(mask uint32) {
	sh.passthrough()
	sh.driver.Clear(mask)
}

// DrawArrays mirrors the driver function of the same name. Never cached.
func (sh *Shadow) DrawArrays(mode uint32, first int32, count int32) {
	sh.passthrough()
	sh.driver.DrawArrays(mode, first, count)
}

// DrawElements mirrors the driver function of the same name. Never cached.
func (sh *Shadow) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	sh.passthrough()
	sh.driver.DrawElements(mode, count, xtype, offset)
}

// ReadPixels mirrors the driver function of the same name. Never cached.
func (sh *Shadow) ReadPixels(x int32, y int32, width int32, height int32, format uint32, xtype uint32, pixels []byte) {
	sh.passthrough()
	sh.driver.ReadPixels(x, y, width, height, format, xtype, pixels)
}

// BufferData mirrors the driver function of the same name. Never cached.
func (sh *Shadow) BufferData(target uint32, data []byte, usage uint32) {
	sh.passthrough()
	sh.driver.BufferData(target, data, usage)
}

// TexImage2D mirrors the driver function of the same name. Never cached.
func (sh *Shadow) TexImage2D(target uint32, level int32, internalformat int32, width int32, height int32, format uint32, xtype uint32, pixels []byte) {
	sh.passthrough()
	sh.driver.TexImage2D(target, level, internalformat, width, height, format, xtype, pixels)
}

// TexSubImage2D mirrors the driver function of the same name. Never cached.
func (sh *Shadow) TexSubImage2D(target uint32, level int32, xoffset int32, yoffset int32, width int32, height int32, format uint32, xtype uint32, pixels []byte) {
	sh.passthrough()
	sh.driver.TexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, pixels)
}

// CreateShader mirrors the driver function of the same name. Never cached.
func (sh *Shadow) CreateShader(xtype uint32) uint32 {
	sh.passthrough()
	return sh.driver.CreateShader(xtype)
}

// ShaderSource mirrors the driver function of the same name. Never cached.
func (sh *Shadow) ShaderSource(shader uint32, source string) {
	sh.passthrough()
	sh.driver.ShaderSource(shader, source)
}

// CompileShader mirrors the driver function of the same name. Never cached.
func (sh *Shadow) CompileShader(shader uint32) {
	sh.passthrough()
	sh.driver.CompileShader(shader)
}

// GetShaderiv mirrors the driver function of the same name. Never cached.
func (sh *Shadow) GetShaderiv(shader uint32, pname uint32) int32 {
	sh.passthrough()
	return sh.driver.GetShaderiv(shader, pname)
}

// DeleteShader mirrors the driver function of the same name. Never cached.
func (sh *Shadow) DeleteShader(shader uint32) {
	sh.passthrough()
	sh.driver.DeleteShader(shader)
}

// AttachShader mirrors the driver function of the same name. Never cached.
func (sh *Shadow) AttachShader(program uint32, shader uint32) {
	sh.passthrough()
	sh.driver.AttachShader(program, shader)
}

// LinkProgram mirrors the driver function of the same name. Never cached.
func (sh *Shadow) LinkProgram(program uint32) {
	sh.passthrough()
	sh.driver.LinkProgram(program)
}

// GetProgramiv mirrors the driver function of the same name. Never cached.
func (sh *Shadow) GetProgramiv(program uint32, pname uint32) int32 {
	sh.passthrough()
	return sh.driver.GetProgramiv(program, pname)
}

// GetUniformLocation mirrors the driver function of the same name. Never cached.
func (sh *Shadow) GetUniformLocation(program uint32, name string) int32 {
	sh.passthrough()
	return sh.driver.GetUniformLocation(program, name)
}

// GetIntegerv mirrors the driver function of the same name. Never cached.
func (sh *Shadow) GetIntegerv(pname uint32, data []int32) {
	sh.passthrough()
	sh.driver.GetIntegerv(pname, data)
}
