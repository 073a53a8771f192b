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

// Package staging implements the fixed capacity circular byte arena used to
// hand variable length payloads from the producer goroutine to the render
// thread.
//
// The Pool tracks only two cursors. The start cursor is the offset of the
// oldest live allocation and the end cursor is the offset at which the next
// allocation will be placed. Because there are no free lists, allocations
// must be released in the order in which they were made:
//
//	pool, _ := staging.NewPool(1024)
//	a, _ := pool.Allocate(payload)
//	...
//	b := pool.Bytes(a)
//	pool.Release(a)
//
// An allocation is never split across the end of the arena. If there is not
// enough room between the end cursor and the end of the arena then the
// allocation is placed at offset zero, but only if it fits before the start
// cursor. Otherwise the caller waits until the consumer releases enough
// space.
//
// A Pool is safe for one producer and one consumer goroutine. Allocate() may
// block. Release() never blocks.
package staging
