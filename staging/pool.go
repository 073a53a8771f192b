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

package staging

import (
	"context"
	"sync"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/logger"
)

// alignment of every allocation in the arena.
const alignment = 4

func pad(size int) int {
	return (size + alignment - 1) &^ (alignment - 1)
}

// Allocation is a claim on a region of the Pool's arena. The zero value is an
// invalid allocation.
type Allocation struct {
	Offset        int
	RequestedSize int
	PaddedSize    int
	Valid         bool

	// position of the allocation in the FIFO order. used to check that
	// release happens in order.
	seq uint64
}

// Stats are running totals for the lifetime of the pool.
type Stats struct {
	Allocations uint64
	Releases    uint64
	Waits       uint64
	Wraps       uint64
	HighWater   int
}

// Pool is a fixed capacity circular arena.
type Pool struct {
	crit  sync.Mutex
	space *sync.Cond

	arena []byte

	start int
	end   int
	full  bool

	// sequence number of the next allocation and of the next allocation
	// expected to be released
	nextSeq    uint64
	releaseSeq uint64

	closed bool

	stats Stats
}

// NewPool is the preferred method of initialisation for the Pool type.
// Capacity must be a positive multiple of four.
func NewPool(capacity int) (*Pool, error) {
	if capacity <= 0 || capacity%alignment != 0 {
		return nil, curated.Errorf(ConfigurationError, curated.Errorf("capacity must be a positive multiple of %d (%d)", alignment, capacity))
	}
	p := &Pool{
		arena: make([]byte, capacity),
	}
	p.space = sync.NewCond(&p.crit)
	return p, nil
}

// Capacity returns the size of the arena in bytes.
func (p *Pool) Capacity() int {
	return len(p.arena)
}

// free returns the number of unallocated bytes. they are not necessarily
// contiguous. must be called with the critical section held.
func (p *Pool) free() int {
	if p.start > p.end || p.full {
		return p.start - p.end
	}
	return len(p.arena) - p.end + p.start
}

// Free returns the number of unallocated bytes in the pool. The bytes are not
// necessarily contiguous.
func (p *Pool) Free() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.free()
}

// Stats returns a copy of the pool's running totals.
func (p *Pool) Stats() Stats {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.stats
}

// placement returns the offset at which an allocation of padded size can be
// placed. the bool return value is false if there is no room. must be called
// with the critical section held.
func (p *Pool) placement(padded int) (int, bool) {
	if p.full {
		return 0, false
	}

	if p.start > p.end {
		// the in-use region wraps the end of the arena. the only free space is
		// between end and start
		if p.end+padded <= p.start {
			return p.end, true
		}
		return 0, false
	}

	if p.end+padded <= len(p.arena) {
		return p.end, true
	}

	// the allocation would have to wrap. it is placed at offset zero only if
	// it fits before the oldest live allocation
	if padded <= p.start {
		return 0, true
	}

	return 0, false
}

// Allocate copies data into the arena and returns the Allocation that claims
// it. The call blocks until there is contiguous space for the data.
func (p *Pool) Allocate(data []byte) (Allocation, error) {
	return p.AllocateContext(context.Background(), data)
}

// AllocateContext is the same as Allocate() except that waiting for space is
// abandoned if the context is done. The context error is returned wrapped in
// no other error.
func (p *Pool) AllocateContext(ctx context.Context, data []byte) (Allocation, error) {
	if len(data) == 0 {
		return Allocation{}, curated.Errorf(ProtocolMisuse, "zero length allocation")
	}

	padded := pad(len(data))
	if padded > len(p.arena) {
		return Allocation{}, curated.Errorf(ConfigurationError, curated.Errorf("request of %d bytes exceeds capacity of %d", len(data), len(p.arena)))
	}

	// waking the waiters when the context is done means that the loop below
	// will see the context error. the lock is taken so that the broadcast
	// cannot happen between the check of ctx.Err() and the call to Wait()
	stop := context.AfterFunc(ctx, func() {
		p.crit.Lock()
		defer p.crit.Unlock()
		p.space.Broadcast()
	})
	defer stop()

	p.crit.Lock()
	defer p.crit.Unlock()

	var offset int
	waited := false
	for {
		if p.closed {
			return Allocation{}, curated.Errorf(Closed)
		}
		if err := ctx.Err(); err != nil {
			return Allocation{}, err
		}

		var ok bool
		if offset, ok = p.placement(padded); ok {
			break
		}

		if !waited {
			waited = true
			p.stats.Waits++
		}
		p.space.Wait()
	}

	// copy before the cursors are committed
	copy(p.arena[offset:], data)
	clear(p.arena[offset+len(data) : offset+padded])

	if offset < p.end {
		p.stats.Wraps++
	}

	p.end = offset + padded
	if p.end == len(p.arena) {
		p.end = 0
	}
	p.full = p.end == p.start

	a := Allocation{
		Offset:        offset,
		RequestedSize: len(data),
		PaddedSize:    padded,
		Valid:         true,
		seq:           p.nextSeq,
	}
	p.nextSeq++

	p.stats.Allocations++
	if used := len(p.arena) - p.free(); used > p.stats.HighWater {
		p.stats.HighWater = used
	}

	return a, nil
}

// live returns true if the allocation has not yet been released. must be
// called with the critical section held.
func (p *Pool) live(a Allocation) bool {
	return a.Valid && a.seq >= p.releaseSeq && a.seq < p.nextSeq
}

// Bytes returns the data of a live allocation. The slice refers directly to
// the arena and must not be used after the allocation is released. Returns nil
// if the allocation is invalid or has been released.
func (p *Pool) Bytes(a Allocation) []byte {
	p.crit.Lock()
	defer p.crit.Unlock()
	if !p.live(a) {
		return nil
	}
	return p.arena[a.Offset : a.Offset+a.RequestedSize : a.Offset+a.RequestedSize]
}

// Release returns the space claimed by the allocation to the pool. It must be
// the oldest live allocation. Releasing in any other order, or releasing an
// invalid allocation, returns a ProtocolMisuse error and does not change the
// pool.
func (p *Pool) Release(a Allocation) error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if !a.Valid {
		return curated.Errorf(ProtocolMisuse, "release of invalid allocation")
	}
	if !p.live(a) {
		return curated.Errorf(ProtocolMisuse, "release of already released allocation")
	}
	if a.seq != p.releaseSeq {
		logger.Logf(logger.Allow, "staging", "out of order release (%d expected, %d released)", p.releaseSeq, a.seq)
		return curated.Errorf(ProtocolMisuse, "out of order release")
	}

	p.releaseSeq++
	p.start = a.Offset + a.PaddedSize
	if p.start == len(p.arena) {
		p.start = 0
	}
	p.full = false

	// an empty pool starts again from the beginning of the arena. this
	// maximises the contiguous space available to the next allocation
	if p.releaseSeq == p.nextSeq {
		p.start = 0
		p.end = 0
	}

	p.stats.Releases++
	p.space.Broadcast()

	return nil
}

// Close wakes any blocked producer. All future calls to Allocate() fail with
// the Closed error. Live allocations can still be read and released.
func (p *Pool) Close() {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.closed = true
	p.space.Broadcast()
}
