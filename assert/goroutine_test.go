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

package assert_test

import (
	"testing"

	"github.com/relay64/relay64/assert"
	"github.com/relay64/relay64/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	ch := make(chan uint64)
	go func() {
		ch <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-ch, id)
}

func TestThreadCheckSameGoroutine(t *testing.T) {
	var th assert.Thread
	th.Claim()

	// must never panic when called from the owning goroutine, regardless of
	// whether the assertions build tag is specified
	th.Check("test")
	th.Check("test")
}
