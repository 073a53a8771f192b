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

import "unsafe"

// ProcAddressFunc returns the address of the named driver entry point. The
// address is nil if the entry point is not provided by the driver.
type ProcAddressFunc func(name string) unsafe.Pointer

// EntryPoint identifies an optional group of driver entry points.
type EntryPoint int

// List of optional entry points.
const (
	EntryInvalidateFramebuffer EntryPoint = iota
	EntryVertexArrayObjects
	EntryReadBuffer
	EntryDrawIndirect

	// the number of optional entry points. not a valid entry point.
	NumEntryPoints
)

func (ep EntryPoint) String() string {
	switch ep {
	case EntryInvalidateFramebuffer:
		return "InvalidateFramebuffer"
	case EntryVertexArrayObjects:
		return "VertexArrayObjects"
	case EntryReadBuffer:
		return "ReadBuffer"
	case EntryDrawIndirect:
		return "DrawIndirect"
	}
	return "unknown entry point"
}

// Symbols returns the names of the driver functions that make up the entry
// point. The entry point is available only if all of the symbols resolve.
func (ep EntryPoint) Symbols() []string {
	switch ep {
	case EntryInvalidateFramebuffer:
		return []string{"glInvalidateFramebuffer"}
	case EntryVertexArrayObjects:
		return []string{"glGenVertexArrays", "glDeleteVertexArrays", "glBindVertexArray"}
	case EntryReadBuffer:
		return []string{"glReadBuffer"}
	case EntryDrawIndirect:
		return []string{"glDrawArraysIndirect", "glDrawElementsIndirect"}
	}
	return nil
}

// Resolvable returns true if every symbol of the entry point is returned by
// getProcAddress as a non-nil address.
func (ep EntryPoint) Resolvable(getProcAddress ProcAddressFunc) bool {
	if getProcAddress == nil {
		return false
	}
	for _, s := range ep.Symbols() {
		if getProcAddress(s) == nil {
			return false
		}
	}
	return true
}

// Driver is the graphics driver. Implementations are not required to be safe
// for concurrent use and must only be called from the render thread.
type Driver interface {
	// Resolve (re)loads every entry point through getProcAddress. Called by
	// the lifecycle controller on every context reset because addresses are
	// not guaranteed to survive a context loss.
	Resolve(getProcAddress ProcAddressFunc) error

	// Available returns true if an optional entry point has been resolved.
	Available(ep EntryPoint) bool

	Enable(cap uint32)
	Disable(cap uint32)

	BlendFunc(sfactor uint32, dfactor uint32)
	BlendFuncSeparate(srcRGB uint32, dstRGB uint32, srcAlpha uint32, dstAlpha uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	PolygonOffset(factor float32, units float32)
	StencilFunc(fn uint32, ref int32, mask uint32)
	StencilOp(fail uint32, zfail uint32, zpass uint32)
	StencilMask(mask uint32)
	ColorMask(r bool, g bool, b bool, a bool)
	Viewport(x int32, y int32, width int32, height int32)
	Scissor(x int32, y int32, width int32, height int32)
	ClearColor(r float32, g float32, b float32, a float32)
	ClearDepth(depth float64)

	GenBuffers(n int32) []uint32
	DeleteBuffers(buffers []uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)

	GenVertexArrays(n int32) []uint32
	DeleteVertexArrays(arrays []uint32)
	BindVertexArray(array uint32)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v0 int32)
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0 float32, v1 float32)
	Uniform3f(location int32, v0 float32, v1 float32, v2 float32)
	Uniform4f(location int32, v0 float32, v1 float32, v2 float32, v3 float32)

	GenFramebuffers(n int32) []uint32
	DeleteFramebuffers(framebuffers []uint32)
	BindFramebuffer(target uint32, framebuffer uint32)
	FramebufferTexture2D(target uint32, attachment uint32, textarget uint32, texture uint32, level int32)
	FramebufferRenderbuffer(target uint32, attachment uint32, renderbuffertarget uint32, renderbuffer uint32)
	InvalidateFramebuffer(target uint32, attachments []uint32)
	ReadBuffer(mode uint32)

	ActiveTexture(texture uint32)
	GenTextures(n int32) []uint32
	DeleteTextures(textures []uint32)
	BindTexture(target uint32, texture uint32)
	TexParameteri(target uint32, pname uint32, param int32)
	TexImage2D(target uint32, level int32, internalformat int32, width int32, height int32, format uint32, xtype uint32, pixels []byte)
	TexSubImage2D(target uint32, level int32, xoffset int32, yoffset int32, width int32, height int32, format uint32, xtype uint32, pixels []byte)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	VertexAttrib4f(index uint32, x float32, y float32, z float32, w float32)

	Clear(mask uint32)
	DrawArrays(mode uint32, first int32, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
	ReadPixels(x int32, y int32, width int32, height int32, format uint32, xtype uint32, pixels []byte)

	GetIntegerv(pname uint32, data []int32)
}
