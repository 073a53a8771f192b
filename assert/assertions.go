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

//go:build assertions

package assert

import "fmt"

// Check panics if the calling goroutine is not the owner of the thread.
func (th *Thread) Check(context string) {
	id := GetGoRoutineID()
	if th.id == 0 {
		th.id = id
		return
	}
	if th.id != id {
		panic(fmt.Sprintf("%s: called from goroutine %d but owned by goroutine %d", context, id, th.id))
	}
}
