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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// WriteGraph writes the internal structure of the shadow to w as a Graphviz
// dot file. Useful for inspecting the side tables when debugging.
func (sh *Shadow) WriteGraph(w io.Writer) {
	sh.thread.Check("shadow")

	// the driver and gate are not part of the shadow's own state. they are
	// removed from the copy so that the graph only shows cached values
	c := *sh
	c.driver = nil
	c.gate = nil
	c.slots = [numSlots]invalidator{}
	memviz.Map(w, &c)
}
