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

// Package glapi describes the graphics driver as seen by the relay. The Driver
// interface mirrors the OpenGL calls that the state shadow intercepts, with
// the same names and (Go-ified) signatures. Enumeration values are the native
// OpenGL values so that a Driver implementation can pass them straight
// through.
//
// Some entry points are optional. A low-capability backend (GLES2 for
// example) may not provide vertex array objects or framebuffer invalidation.
// The Available() function reports whether an optional entry point has been
// resolved. Calling an unavailable entry point is a programming error; the
// shadow checks Available() before forwarding.
//
// Implementations of Driver are in the gldriver package (go-gl) and the
// glrecord package (records calls, used for testing and for headless runs).
package glapi
