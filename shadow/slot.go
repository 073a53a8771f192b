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

// slot is a single cached value. a slot that is not valid has never been set
// or has been cleared, and will never cause a call to be skipped.
type slot[T comparable] struct {
	value T
	valid bool
}

func (sl *slot[T]) set(v T) {
	sl.value = v
	sl.valid = true
}

func (sl *slot[T]) invalidate() {
	var z T
	sl.value = z
	sl.valid = false
}

// get returns the cached value and whether it is valid.
func (sl *slot[T]) get() (T, bool) {
	return sl.value, sl.valid
}

// indexed is a slot for each index of an indexed driver value. for example,
// the texture bound to each texture unit.
type indexed[T comparable] []slot[T]

func (ix *indexed[T]) invalidate() {
	for i := range *ix {
		(*ix)[i].invalidate()
	}
}

// resize changes the number of indexes. all slots are invalidated.
func (ix *indexed[T]) resize(n int) {
	*ix = make(indexed[T], n)
}

// at returns the slot for the index or nil if the index is out of range.
func (ix indexed[T]) at(idx int) *slot[T] {
	if idx < 0 || idx >= len(ix) {
		return nil
	}
	return &ix[idx]
}

// invalidator is implemented by slot and indexed.
type invalidator interface {
	invalidate()
}

// update is the core of every cached wrapper. the driver call is made by the
// forward function, which is skipped only if the shadow is trusted and the slot
// already holds the value.
//
// the cache is updated after forwarding so that the cached value is always the
// value that was last submitted to the driver.
func update[T comparable](sh *Shadow, id slotID, sl *slot[T], v T, forward func()) {
	sh.thread.Check("shadow")

	if sl == nil {
		sh.counters[id].Forwarded++
		forward()
		return
	}

	if sh.trusted() && sl.valid && sl.value == v {
		sh.counters[id].Skipped++
		return
	}

	forward()
	sl.set(v)
	sh.counters[id].Forwarded++
}
