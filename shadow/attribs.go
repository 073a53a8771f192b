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

// EnableVertexAttribArray mirrors the driver function of the same name.
func (sh *Shadow) EnableVertexAttribArray(index uint32) {
	update(sh, slotAttribEnabled, sh.attribEnabled.at(int(index)), true, func() {
		sh.driver.EnableVertexAttribArray(index)
	})
}

// DisableVertexAttribArray mirrors the driver function of the same name.
func (sh *Shadow) DisableVertexAttribArray(index uint32) {
	update(sh, slotAttribEnabled, sh.attribEnabled.at(int(index)), false, func() {
		sh.driver.DisableVertexAttribArray(index)
	})
}

// VertexAttribPointer mirrors the driver function of the same name. The
// buffer currently bound to the array buffer target is recorded as the source
// of the attribute. If the array buffer binding is not known then the call is
// not cached.
func (sh *Shadow) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	forward := func() {
		sh.driver.VertexAttribPointer(index, size, xtype, normalized, stride, offset)
	}

	buffer, ok := sh.arrayBuffer.get()
	if !ok {
		if sl := sh.attribPointer.at(int(index)); sl != nil {
			sl.invalidate()
		}
		update(sh, slotAttribPointer, nil, attribPointer{}, forward)
		return
	}

	v := attribPointer{
		size:       size,
		xtype:      xtype,
		normalized: normalized,
		stride:     stride,
		offset:     offset,
		buffer:     buffer,
	}
	update(sh, slotAttribPointer, sh.attribPointer.at(int(index)), v, forward)
}

// VertexAttrib4f mirrors the driver function of the same name.
func (sh *Shadow) VertexAttrib4f(index uint32, x float32, y float32, z float32, w float32) {
	update(sh, slotAttribConstant, sh.attribConstant.at(int(index)), [4]float32{x, y, z, w}, func() {
		sh.driver.VertexAttrib4f(index, x, y, z, w)
	})
}
