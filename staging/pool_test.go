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

package staging_test

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/staging"
	"github.com/relay64/relay64/test"
)

func payload(size int, seed byte) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}

// allocate in a goroutine and return a channel on which the result will be
// sent.
func allocateAsync(pool *staging.Pool, ctx context.Context, data []byte) chan staging.Allocation {
	ch := make(chan staging.Allocation, 1)
	go func() {
		a, err := pool.AllocateContext(ctx, data)
		if err != nil {
			close(ch)
			return
		}
		ch <- a
	}()
	return ch
}

// returns true if nothing arrives on the channel within a short time.
func stillBlocked(ch chan staging.Allocation) bool {
	select {
	case <-ch:
		return false
	case <-time.After(50 * time.Millisecond):
		return true
	}
}

func TestNewPool(t *testing.T) {
	_, err := staging.NewPool(0)
	test.ExpectSuccess(t, curated.Is(err, staging.ConfigurationError))
	_, err = staging.NewPool(1022)
	test.ExpectSuccess(t, curated.Is(err, staging.ConfigurationError))

	pool, err := staging.NewPool(1024)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pool.Capacity(), 1024)
	test.ExpectEquality(t, pool.Free(), 1024)
}

func TestPadding(t *testing.T) {
	pool, err := staging.NewPool(64)
	test.DemandSuccess(t, err)

	a, err := pool.Allocate(payload(5, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.Offset, 0)
	test.ExpectEquality(t, a.RequestedSize, 5)
	test.ExpectEquality(t, a.PaddedSize, 8)

	b, err := pool.Allocate(payload(4, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Offset, 8)
	test.ExpectEquality(t, b.PaddedSize, 4)
	test.ExpectEquality(t, pool.Free(), 64-12)
}

func TestRoundTrip(t *testing.T) {
	pool, err := staging.NewPool(256)
	test.DemandSuccess(t, err)

	data := payload(99, 7)
	a, err := pool.Allocate(data)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(pool.Bytes(a), data))

	// changing the source data does not change the staged data
	data[0] = 255
	test.ExpectSuccess(t, pool.Bytes(a)[0] == 7)

	test.ExpectSuccess(t, pool.Release(a))
	test.ExpectSuccess(t, pool.Bytes(a) == nil)
	test.ExpectSuccess(t, pool.Bytes(staging.Allocation{}) == nil)
}

func TestZeroAndOversize(t *testing.T) {
	pool, err := staging.NewPool(128)
	test.DemandSuccess(t, err)

	_, err = pool.Allocate(nil)
	test.ExpectSuccess(t, curated.Is(err, staging.ProtocolMisuse))

	_, err = pool.Allocate(payload(129, 0))
	test.ExpectSuccess(t, curated.Is(err, staging.ConfigurationError))

	// a request of exactly the capacity fills the pool
	a, err := pool.Allocate(payload(128, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.Offset, 0)
	test.ExpectEquality(t, pool.Free(), 0)
	test.ExpectSuccess(t, pool.Release(a))
	test.ExpectEquality(t, pool.Free(), 128)
}

func TestReleaseMisuse(t *testing.T) {
	pool, err := staging.NewPool(128)
	test.DemandSuccess(t, err)

	a, err := pool.Allocate(payload(16, 0))
	test.DemandSuccess(t, err)
	b, err := pool.Allocate(payload(16, 0))
	test.DemandSuccess(t, err)

	// out of order
	err = pool.Release(b)
	test.ExpectSuccess(t, curated.Is(err, staging.ProtocolMisuse))
	test.ExpectEquality(t, pool.Free(), 96)

	// invalid
	err = pool.Release(staging.Allocation{})
	test.ExpectSuccess(t, curated.Is(err, staging.ProtocolMisuse))

	test.ExpectSuccess(t, pool.Release(a))

	// double release
	err = pool.Release(a)
	test.ExpectSuccess(t, curated.Is(err, staging.ProtocolMisuse))

	test.ExpectSuccess(t, pool.Release(b))
	test.ExpectEquality(t, pool.Free(), 128)
}

// the second allocation cannot fit in the space left before the end of the
// arena and cannot wrap because the oldest allocation is still live.
func TestBlockWithoutSplit(t *testing.T) {
	pool, err := staging.NewPool(1024)
	test.DemandSuccess(t, err)

	a, err := pool.Allocate(payload(300, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.Offset, 0)

	b, err := pool.Allocate(payload(300, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Offset, 300)

	ch := allocateAsync(pool, context.Background(), payload(500, 0))
	test.ExpectSuccess(t, stillBlocked(ch))

	// 424 bytes remain at the end of the arena and 300 bytes are free at the
	// start. neither is large enough so the request must keep waiting
	test.DemandSuccess(t, pool.Release(a))
	test.ExpectSuccess(t, stillBlocked(ch))

	test.DemandSuccess(t, pool.Release(b))
	c, ok := <-ch
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, c.Offset, 0)
	test.ExpectEquality(t, c.PaddedSize, 500)
	test.ExpectEquality(t, pool.Stats().Waits, uint64(1))
}

func TestWrapBeforeStart(t *testing.T) {
	pool, err := staging.NewPool(1024)
	test.DemandSuccess(t, err)

	a, err := pool.Allocate(payload(400, 0))
	test.DemandSuccess(t, err)
	b, err := pool.Allocate(payload(400, 0))
	test.DemandSuccess(t, err)
	c, err := pool.Allocate(payload(174, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Offset+c.RequestedSize, 974)

	// there is no room at the end of the arena and no room before the first
	// live allocation, which starts at offset zero
	ch := allocateAsync(pool, context.Background(), payload(100, 0))
	test.ExpectSuccess(t, stillBlocked(ch))

	// the first allocation is released. the request now wraps to offset zero
	test.DemandSuccess(t, pool.Release(a))
	d, ok := <-ch
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, d.Offset, 0)
	test.ExpectEquality(t, pool.Stats().Wraps, uint64(1))

	// the region between the wrapped allocation and b is free
	e, err := pool.Allocate(payload(300, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Offset, 100)
	test.ExpectEquality(t, pool.Free(), 0)

	for _, x := range []staging.Allocation{b, c, d, e} {
		test.ExpectSuccess(t, pool.Release(x))
	}
	test.ExpectEquality(t, pool.Free(), 1024)
}

func TestCancel(t *testing.T) {
	pool, err := staging.NewPool(64)
	test.DemandSuccess(t, err)

	_, err = pool.Allocate(payload(64, 0))
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = pool.AllocateContext(ctx, payload(4, 0))
	test.ExpectSuccess(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClose(t *testing.T) {
	pool, err := staging.NewPool(64)
	test.DemandSuccess(t, err)

	_, err = pool.Allocate(payload(64, 0))
	test.DemandSuccess(t, err)

	done := make(chan error)
	go func() {
		_, err := pool.Allocate(payload(4, 0))
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	pool.Close()
	test.ExpectSuccess(t, curated.Is(<-done, staging.Closed))
}

// one producer and one consumer with random payload sizes. every payload read
// by the consumer must be identical to the payload staged by the producer and
// no two live allocations may overlap.
func TestProducerConsumer(t *testing.T) {
	const capacity = 512
	const count = 2000

	pool, err := staging.NewPool(capacity)
	test.DemandSuccess(t, err)

	type staged struct {
		a    staging.Allocation
		data []byte
	}
	handoff := make(chan staged, 64)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(handoff)
		r := rand.New(rand.NewPCG(1, 2))
		for i := range count {
			data := payload(1+r.IntN(capacity/4), byte(i))
			a, err := pool.Allocate(data)
			if err != nil {
				t.Error(err)
				return
			}
			handoff <- staged{a: a, data: data}
		}
	}()

	var live []staging.Allocation
	overlaps := func(a staging.Allocation) bool {
		for _, l := range live {
			if a.Offset < l.Offset+l.PaddedSize && l.Offset < a.Offset+a.PaddedSize {
				return true
			}
		}
		return false
	}

	received := 0
	for s := range handoff {
		test.ExpectSuccess(t, !overlaps(s.a), "overlap")
		live = append(live, s.a)

		occupied := 0
		for _, l := range live {
			occupied += l.PaddedSize
		}
		test.ExpectSuccess(t, occupied <= capacity, "occupancy")

		test.ExpectSuccess(t, bytes.Equal(pool.Bytes(s.a), s.data), "round trip")

		// hold on to some allocations for an extra iteration. at most one
		// allocation is held while waiting for the producer so there is always
		// room for a payload of up to a quarter of the capacity
		if received%3 != 0 {
			for _, l := range live {
				test.ExpectSuccess(t, pool.Release(l))
			}
			live = live[:0]
		}
		received++
	}

	for _, l := range live {
		test.ExpectSuccess(t, pool.Release(l))
	}

	wg.Wait()
	test.ExpectEquality(t, received, count)
	test.ExpectEquality(t, pool.Free(), capacity)

	stats := pool.Stats()
	test.ExpectEquality(t, stats.Allocations, uint64(count))
	test.ExpectEquality(t, stats.Releases, uint64(count))
}
