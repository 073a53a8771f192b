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

package glrecord_test

import (
	"testing"

	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/glapi/glrecord"
	"github.com/relay64/relay64/test"
)

func TestRecording(t *testing.T) {
	rec := glrecord.NewRecorder()

	rec.Viewport(0, 0, 10, 20)
	rec.Enable(glapi.BLEND)
	mark := rec.Mark()
	rec.Enable(glapi.DEPTH_TEST)

	test.ExpectEquality(t, rec.Len(), 3)
	test.ExpectEquality(t, rec.Count("Enable"), 2)
	test.ExpectEquality(t, len(rec.Since(mark)), 1)

	c, ok := rec.Last("Viewport")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, c.String(), "Viewport(0, 0, 10, 20)")

	rec.Reset()
	test.ExpectEquality(t, rec.Len(), 0)
	_, ok = rec.Last("Viewport")
	test.ExpectFailure(t, ok)
}

func TestEntryPoints(t *testing.T) {
	rec := glrecord.NewRecorder()

	// nothing is available before Resolve()
	test.ExpectFailure(t, rec.Available(glapi.EntryReadBuffer))

	rec.Omit(glapi.EntryInvalidateFramebuffer.Symbols()...)
	test.DemandSuccess(t, rec.Resolve(rec.ProcAddress))
	test.ExpectFailure(t, rec.Available(glapi.EntryInvalidateFramebuffer))
	test.ExpectSuccess(t, rec.Available(glapi.EntryVertexArrayObjects))

	test.ExpectFailure(t, rec.Resolve(nil))
	test.ExpectFailure(t, rec.Available(glapi.EntryVertexArrayObjects))
}

func TestNamesAndQueries(t *testing.T) {
	rec := glrecord.NewRecorder()

	a := rec.GenTextures(2)
	b := rec.GenBuffers(1)
	test.DemandEquality(t, len(a), 2)
	test.ExpectInequality(t, a[0], a[1])
	test.ExpectInequality(t, a[1], b[0])

	var v [4]int32
	rec.GetIntegerv(glapi.VIEWPORT, v[:])
	test.ExpectEquality(t, v, [4]int32{0, 0, 640, 480})

	rec.SetInteger(glapi.FRAMEBUFFER_BINDING, 3)
	rec.GetIntegerv(glapi.FRAMEBUFFER_BINDING, v[:1])
	test.ExpectEquality(t, v[0], int32(3))

	p := rec.CreateProgram()
	l := rec.GetUniformLocation(p, "tex")
	test.ExpectEquality(t, rec.GetUniformLocation(p, "tex"), l)
	test.ExpectInequality(t, rec.GetUniformLocation(p, "col"), l)
}
