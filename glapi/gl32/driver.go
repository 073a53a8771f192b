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


// Package gl32 implements glapi.Driver with the OpenGL 3.2 core profile
// bindings of go-gl.
//
// InvalidateFramebuffer and the indirect draw functions are not part of the
// 3.2 core profile and are never reported as available, even if the driver
// itself provides them.
package gl32

import (
	"unsafe"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/logger"
)

var _ glapi.Driver = (*Driver)(nil)

// Driver implements the glapi.Driver interface.
type Driver struct {
	available [glapi.NumEntryPoints]bool
}

// NewDriver is the preferred method of initialisation for the Driver type.
// The driver cannot be used until Resolve() has been called.
func NewDriver() *Driver {
	return &Driver{}
}

// entry points that have no binding in the 3.2 core profile
var unbound = [glapi.NumEntryPoints]bool{
	glapi.EntryInvalidateFramebuffer: true,
	glapi.EntryDrawIndirect:          true,
}

// Resolve implements the glapi.Driver interface.
func (drv *Driver) Resolve(getProcAddress glapi.ProcAddressFunc) error {
	if getProcAddress == nil {
		return curated.Errorf("gl32: no proc address function")
	}

	err := gl.InitWithProcAddrFunc(getProcAddress)
	if err != nil {
		return curated.Errorf("gl32: %v", err)
	}

	for ep := range glapi.NumEntryPoints {
		drv.available[ep] = !unbound[ep] && ep.Resolvable(getProcAddress)
	}

	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return nil
}

// Available implements the glapi.Driver interface.
func (drv *Driver) Available(ep glapi.EntryPoint) bool {
	if ep < 0 || ep >= glapi.NumEntryPoints {
		return false
	}
	return drv.available[ep]
}

// gl.Ptr() does not accept an empty slice
func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}

func (drv *Driver) Enable(cap uint32) { gl.Enable(cap) }
func (drv *Driver) Disable(cap uint32) { gl.Disable(cap) }

func (drv *Driver) BlendFunc(sfactor uint32, dfactor uint32) {
	gl.BlendFunc(sfactor, dfactor)
}

func (drv *Driver) BlendFuncSeparate(srcRGB uint32, dstRGB uint32, srcAlpha uint32, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (drv *Driver) DepthFunc(fn uint32) { gl.DepthFunc(fn) }
func (drv *Driver) DepthMask(flag bool) { gl.DepthMask(flag) }
func (drv *Driver) CullFace(mode uint32) { gl.CullFace(mode) }
func (drv *Driver) FrontFace(mode uint32) { gl.FrontFace(mode) }
func (drv *Driver) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }

func (drv *Driver) StencilFunc(fn uint32, ref int32, mask uint32) {
	gl.StencilFunc(fn, ref, mask)
}

func (drv *Driver) StencilOp(fail uint32, zfail uint32, zpass uint32) {
	gl.StencilOp(fail, zfail, zpass)
}

func (drv *Driver) StencilMask(mask uint32) { gl.StencilMask(mask) }
func (drv *Driver) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }
func (drv *Driver) Viewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }
func (drv *Driver) Scissor(x, y, w, h int32) { gl.Scissor(x, y, w, h) }
func (drv *Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (drv *Driver) ClearDepth(depth float64) { gl.ClearDepth(depth) }
func (drv *Driver) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (drv *Driver) GenBuffers(n int32) []uint32 {
	b := make([]uint32, n)
	if n > 0 {
		gl.GenBuffers(n, &b[0])
	}
	return b
}

func (drv *Driver) DeleteBuffers(buffers []uint32) {
	if len(buffers) > 0 {
		gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	}
}

func (drv *Driver) BufferData(target uint32, data []byte, usage uint32) {
	gl.BufferData(target, len(data), bytesPtr(data), usage)
}

func (drv *Driver) GenVertexArrays(n int32) []uint32 {
	a := make([]uint32, n)
	if n > 0 {
		gl.GenVertexArrays(n, &a[0])
	}
	return a
}

func (drv *Driver) DeleteVertexArrays(arrays []uint32) {
	if len(arrays) > 0 {
		gl.DeleteVertexArrays(int32(len(arrays)), &arrays[0])
	}
}

func (drv *Driver) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (drv *Driver) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (drv *Driver) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csource, nil)
}

func (drv *Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (drv *Driver) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (drv *Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }
func (drv *Driver) CreateProgram() uint32 { return gl.CreateProgram() }
func (drv *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (drv *Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (drv *Driver) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (drv *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (drv *Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (drv *Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (drv *Driver) Uniform1i(location int32, v0 int32) { gl.Uniform1i(location, v0) }
func (drv *Driver) Uniform1f(location int32, v0 float32) { gl.Uniform1f(location, v0) }

func (drv *Driver) Uniform2f(location int32, v0, v1 float32) {
	gl.Uniform2f(location, v0, v1)
}

func (drv *Driver) Uniform3f(location int32, v0, v1, v2 float32) {
	gl.Uniform3f(location, v0, v1, v2)
}

func (drv *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (drv *Driver) GenFramebuffers(n int32) []uint32 {
	f := make([]uint32, n)
	if n > 0 {
		gl.GenFramebuffers(n, &f[0])
	}
	return f
}

func (drv *Driver) DeleteFramebuffers(framebuffers []uint32) {
	if len(framebuffers) > 0 {
		gl.DeleteFramebuffers(int32(len(framebuffers)), &framebuffers[0])
	}
}

func (drv *Driver) BindFramebuffer(target, framebuffer uint32) {
	gl.BindFramebuffer(target, framebuffer)
}

func (drv *Driver) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (drv *Driver) FramebufferRenderbuffer(target, attachment, renderbuffertarget, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(target, attachment, renderbuffertarget, renderbuffer)
}

// InvalidateFramebuffer is never available with this driver. The shadow
// checks Available() before calling it.
func (drv *Driver) InvalidateFramebuffer(target uint32, attachments []uint32) {
	logger.Logf(logger.Allow, "gl32", "InvalidateFramebuffer(%#x) called but not available", target)
}

func (drv *Driver) ReadBuffer(mode uint32) { gl.ReadBuffer(mode) }
func (drv *Driver) ActiveTexture(texture uint32) { gl.ActiveTexture(texture) }

func (drv *Driver) GenTextures(n int32) []uint32 {
	t := make([]uint32, n)
	if n > 0 {
		gl.GenTextures(n, &t[0])
	}
	return t
}

func (drv *Driver) DeleteTextures(textures []uint32) {
	if len(textures) > 0 {
		gl.DeleteTextures(int32(len(textures)), &textures[0])
	}
}

func (drv *Driver) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (drv *Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (drv *Driver) TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, level, internalformat, width, height, 0, format, xtype, bytesPtr(pixels))
}

func (drv *Driver) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, bytesPtr(pixels))
}

func (drv *Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }
func (drv *Driver) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (drv *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (drv *Driver) VertexAttrib4f(index uint32, x, y, z, w float32) {
	gl.VertexAttrib4f(index, x, y, z, w)
}

func (drv *Driver) Clear(mask uint32) { gl.Clear(mask) }
func (drv *Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (drv *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, xtype, offset)
}

func (drv *Driver) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	gl.ReadPixels(x, y, width, height, format, xtype, bytesPtr(pixels))
}

func (drv *Driver) GetIntegerv(pname uint32, data []int32) {
	if len(data) > 0 {
		gl.GetIntegerv(pname, &data[0])
	}
}
