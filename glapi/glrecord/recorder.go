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

// Package glrecord is an implementation of glapi.Driver that records every
// call made to it rather than calling a real graphics driver. It is used by
// the tests of the shadow and lifecycle packages, and by the headless SIM mode
// to count how many driver calls the shadow has forwarded.
//
// Objects names are allocated from a counter that starts at one, in the same
// way that most real drivers allocate them. Deleted names are never reused.
package glrecord

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/glapi"
)

// Call is a single recorded driver call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	s := make([]string, len(c.Args))
	for i, a := range c.Args {
		s[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(s, ", "))
}

// Recorder implements the glapi.Driver interface.
type Recorder struct {
	calls []Call

	// the next name for each type of object
	nextName uint32

	// symbols that ProcAddress() will not resolve
	missing map[string]bool

	// entry points resolved by the most recent call to Resolve()
	available [glapi.NumEntryPoints]bool
	resolved  bool

	// responses to GetIntegerv()
	integers map[uint32][]int32

	// uniform locations handed out by GetUniformLocation()
	locations map[string]int32
}

// the address returned by ProcAddress() for symbols that are not missing. the
// value is never dereferenced.
var procAddress byte

// NewRecorder is the preferred method of initialisation for the Recorder type.
func NewRecorder() *Recorder {
	rec := &Recorder{
		missing:   make(map[string]bool),
		locations: make(map[string]int32),
	}
	rec.integers = map[uint32][]int32{
		glapi.FRAMEBUFFER_BINDING:              {0},
		glapi.MAX_COMBINED_TEXTURE_IMAGE_UNITS: {48},
		glapi.MAX_TEXTURE_IMAGE_UNITS:          {16},
		glapi.MAX_VERTEX_ATTRIBS:               {16},
		glapi.VIEWPORT:                         {0, 0, 640, 480},
		glapi.SCISSOR_BOX:                      {0, 0, 640, 480},
	}
	return rec
}

// ProcAddress can be used as a glapi.ProcAddressFunc. It resolves every
// symbol that has not been marked as missing with Omit().
func (rec *Recorder) ProcAddress(name string) unsafe.Pointer {
	if rec.missing[name] {
		return nil
	}
	return unsafe.Pointer(&procAddress)
}

// Omit marks symbols as missing. They will not be resolved by ProcAddress()
// from now on.
func (rec *Recorder) Omit(symbols ...string) {
	for _, s := range symbols {
		rec.missing[s] = true
	}
}

// SetInteger sets the response to GetIntegerv() for pname.
func (rec *Recorder) SetInteger(pname uint32, values ...int32) {
	rec.integers[pname] = values
}

func (rec *Recorder) record(name string, args ...any) {
	rec.calls = append(rec.calls, Call{Name: name, Args: args})
}

// Calls returns a copy of every call recorded since the last Reset().
func (rec *Recorder) Calls() []Call {
	c := make([]Call, len(rec.calls))
	copy(c, rec.calls)
	return c
}

// Mark returns a value that can be used with Since().
func (rec *Recorder) Mark() int {
	return len(rec.calls)
}

// Since returns the calls made since the mark was taken.
func (rec *Recorder) Since(mark int) []Call {
	if mark > len(rec.calls) {
		return nil
	}
	c := make([]Call, len(rec.calls)-mark)
	copy(c, rec.calls[mark:])
	return c
}

// Count returns the number of calls to the named function.
func (rec *Recorder) Count(name string) int {
	n := 0
	for _, c := range rec.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Len returns the total number of calls recorded.
func (rec *Recorder) Len() int {
	return len(rec.calls)
}

// Last returns the most recent call to the named function. The bool return
// value is false if there has been no such call.
func (rec *Recorder) Last(name string) (Call, bool) {
	for i := len(rec.calls) - 1; i >= 0; i-- {
		if rec.calls[i].Name == name {
			return rec.calls[i], true
		}
	}
	return Call{}, false
}

// Names returns the names of calls made since the mark, in order.
func (rec *Recorder) Names(mark int) []string {
	var n []string
	for _, c := range rec.Since(mark) {
		n = append(n, c.Name)
	}
	return n
}

// Reset forgets all recorded calls. Object names continue from where they
// were.
func (rec *Recorder) Reset() {
	rec.calls = rec.calls[:0]
}

func (rec *Recorder) names(n int32) []uint32 {
	s := make([]uint32, n)
	for i := range s {
		rec.nextName++
		s[i] = rec.nextName
	}
	return s
}

// Resolve implements the glapi.Driver interface.
func (rec *Recorder) Resolve(getProcAddress glapi.ProcAddressFunc) error {
	rec.record("Resolve")
	if getProcAddress == nil {
		rec.resolved = false
		return curated.Errorf("glrecord: no proc address function")
	}
	for ep := glapi.EntryPoint(0); ep < glapi.NumEntryPoints; ep++ {
		rec.available[ep] = ep.Resolvable(getProcAddress)
	}
	rec.resolved = true
	return nil
}

// Available implements the glapi.Driver interface.
func (rec *Recorder) Available(ep glapi.EntryPoint) bool {
	return rec.resolved && rec.available[ep]
}

func (rec *Recorder) Enable(cap uint32)  { rec.record("Enable", cap) }
func (rec *Recorder) Disable(cap uint32) { rec.record("Disable", cap) }

func (rec *Recorder) BlendFunc(sfactor uint32, dfactor uint32) {
	rec.record("BlendFunc", sfactor, dfactor)
}

func (rec *Recorder) BlendFuncSeparate(srcRGB uint32, dstRGB uint32, srcAlpha uint32, dstAlpha uint32) {
	rec.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (rec *Recorder) DepthFunc(fn uint32)   { rec.record("DepthFunc", fn) }
func (rec *Recorder) DepthMask(flag bool)   { rec.record("DepthMask", flag) }
func (rec *Recorder) CullFace(mode uint32)  { rec.record("CullFace", mode) }
func (rec *Recorder) FrontFace(mode uint32) { rec.record("FrontFace", mode) }

func (rec *Recorder) PolygonOffset(factor float32, units float32) {
	rec.record("PolygonOffset", factor, units)
}

func (rec *Recorder) StencilFunc(fn uint32, ref int32, mask uint32) {
	rec.record("StencilFunc", fn, ref, mask)
}

func (rec *Recorder) StencilOp(fail uint32, zfail uint32, zpass uint32) {
	rec.record("StencilOp", fail, zfail, zpass)
}

func (rec *Recorder) StencilMask(mask uint32) { rec.record("StencilMask", mask) }

func (rec *Recorder) ColorMask(r bool, g bool, b bool, a bool) {
	rec.record("ColorMask", r, g, b, a)
}

func (rec *Recorder) Viewport(x int32, y int32, width int32, height int32) {
	rec.record("Viewport", x, y, width, height)
}

func (rec *Recorder) Scissor(x int32, y int32, width int32, height int32) {
	rec.record("Scissor", x, y, width, height)
}

func (rec *Recorder) ClearColor(r float32, g float32, b float32, a float32) {
	rec.record("ClearColor", r, g, b, a)
}

func (rec *Recorder) ClearDepth(depth float64) { rec.record("ClearDepth", depth) }

func (rec *Recorder) GenBuffers(n int32) []uint32 {
	s := rec.names(n)
	rec.record("GenBuffers", s)
	return s
}

func (rec *Recorder) DeleteBuffers(buffers []uint32) { rec.record("DeleteBuffers", buffers) }

func (rec *Recorder) BindBuffer(target uint32, buffer uint32) {
	rec.record("BindBuffer", target, buffer)
}

func (rec *Recorder) BufferData(target uint32, data []byte, usage uint32) {
	rec.record("BufferData", target, len(data), usage)
}

func (rec *Recorder) GenVertexArrays(n int32) []uint32 {
	s := rec.names(n)
	rec.record("GenVertexArrays", s)
	return s
}

func (rec *Recorder) DeleteVertexArrays(arrays []uint32) { rec.record("DeleteVertexArrays", arrays) }
func (rec *Recorder) BindVertexArray(array uint32)       { rec.record("BindVertexArray", array) }

func (rec *Recorder) CreateShader(xtype uint32) uint32 {
	s := rec.names(1)[0]
	rec.record("CreateShader", xtype)
	return s
}

func (rec *Recorder) ShaderSource(shader uint32, source string) {
	rec.record("ShaderSource", shader, len(source))
}

func (rec *Recorder) CompileShader(shader uint32) { rec.record("CompileShader", shader) }

func (rec *Recorder) GetShaderiv(shader uint32, pname uint32) int32 {
	rec.record("GetShaderiv", shader, pname)
	return 1
}

func (rec *Recorder) DeleteShader(shader uint32) { rec.record("DeleteShader", shader) }

func (rec *Recorder) CreateProgram() uint32 {
	p := rec.names(1)[0]
	rec.record("CreateProgram")
	return p
}

func (rec *Recorder) AttachShader(program uint32, shader uint32) {
	rec.record("AttachShader", program, shader)
}

func (rec *Recorder) LinkProgram(program uint32) { rec.record("LinkProgram", program) }

func (rec *Recorder) GetProgramiv(program uint32, pname uint32) int32 {
	rec.record("GetProgramiv", program, pname)
	return 1
}

func (rec *Recorder) DeleteProgram(program uint32) { rec.record("DeleteProgram", program) }
func (rec *Recorder) UseProgram(program uint32)    { rec.record("UseProgram", program) }

func (rec *Recorder) GetUniformLocation(program uint32, name string) int32 {
	rec.record("GetUniformLocation", program, name)
	key := fmt.Sprintf("%d/%s", program, name)
	if l, ok := rec.locations[key]; ok {
		return l
	}
	l := int32(0)
	for k := range rec.locations {
		if strings.HasPrefix(k, fmt.Sprintf("%d/", program)) {
			l++
		}
	}
	rec.locations[key] = l
	return l
}

func (rec *Recorder) Uniform1i(location int32, v0 int32) {
	rec.record("Uniform1i", location, v0)
}

func (rec *Recorder) Uniform1f(location int32, v0 float32) {
	rec.record("Uniform1f", location, v0)
}

func (rec *Recorder) Uniform2f(location int32, v0 float32, v1 float32) {
	rec.record("Uniform2f", location, v0, v1)
}

func (rec *Recorder) Uniform3f(location int32, v0 float32, v1 float32, v2 float32) {
	rec.record("Uniform3f", location, v0, v1, v2)
}

func (rec *Recorder) Uniform4f(location int32, v0 float32, v1 float32, v2 float32, v3 float32) {
	rec.record("Uniform4f", location, v0, v1, v2, v3)
}

func (rec *Recorder) GenFramebuffers(n int32) []uint32 {
	s := rec.names(n)
	rec.record("GenFramebuffers", s)
	return s
}

func (rec *Recorder) DeleteFramebuffers(framebuffers []uint32) {
	rec.record("DeleteFramebuffers", framebuffers)
}

func (rec *Recorder) BindFramebuffer(target uint32, framebuffer uint32) {
	rec.record("BindFramebuffer", target, framebuffer)
}

func (rec *Recorder) FramebufferTexture2D(target uint32, attachment uint32, textarget uint32, texture uint32, level int32) {
	rec.record("FramebufferTexture2D", target, attachment, textarget, texture, level)
}

func (rec *Recorder) FramebufferRenderbuffer(target uint32, attachment uint32, renderbuffertarget uint32, renderbuffer uint32) {
	rec.record("FramebufferRenderbuffer", target, attachment, renderbuffertarget, renderbuffer)
}

func (rec *Recorder) InvalidateFramebuffer(target uint32, attachments []uint32) {
	rec.record("InvalidateFramebuffer", target, attachments)
}

func (rec *Recorder) ReadBuffer(mode uint32)       { rec.record("ReadBuffer", mode) }
func (rec *Recorder) ActiveTexture(texture uint32) { rec.record("ActiveTexture", texture) }

func (rec *Recorder) GenTextures(n int32) []uint32 {
	s := rec.names(n)
	rec.record("GenTextures", s)
	return s
}

func (rec *Recorder) DeleteTextures(textures []uint32) { rec.record("DeleteTextures", textures) }

func (rec *Recorder) BindTexture(target uint32, texture uint32) {
	rec.record("BindTexture", target, texture)
}

func (rec *Recorder) TexParameteri(target uint32, pname uint32, param int32) {
	rec.record("TexParameteri", target, pname, param)
}

func (rec *Recorder) TexImage2D(target uint32, level int32, internalformat int32, width int32, height int32, format uint32, xtype uint32, pixels []byte) {
	rec.record("TexImage2D", target, level, internalformat, width, height, format, xtype, len(pixels))
}

func (rec *Recorder) TexSubImage2D(target uint32, level int32, xoffset int32, yoffset int32, width int32, height int32, format uint32, xtype uint32, pixels []byte) {
	rec.record("TexSubImage2D", target, level, xoffset, yoffset, width, height, format, xtype, len(pixels))
}

func (rec *Recorder) EnableVertexAttribArray(index uint32) {
	rec.record("EnableVertexAttribArray", index)
}

func (rec *Recorder) DisableVertexAttribArray(index uint32) {
	rec.record("DisableVertexAttribArray", index)
}

func (rec *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	rec.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (rec *Recorder) VertexAttrib4f(index uint32, x float32, y float32, z float32, w float32) {
	rec.record("VertexAttrib4f", index, x, y, z, w)
}

func (rec *Recorder) Clear(mask uint32) { rec.record("Clear", mask) }

func (rec *Recorder) DrawArrays(mode uint32, first int32, count int32) {
	rec.record("DrawArrays", mode, first, count)
}

func (rec *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	rec.record("DrawElements", mode, count, xtype, offset)
}

func (rec *Recorder) ReadPixels(x int32, y int32, width int32, height int32, format uint32, xtype uint32, pixels []byte) {
	rec.record("ReadPixels", x, y, width, height, format, xtype)
	clear(pixels)
}

func (rec *Recorder) GetIntegerv(pname uint32, data []int32) {
	rec.record("GetIntegerv", pname)
	copy(data, rec.integers[pname])
}
