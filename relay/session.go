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

package relay

import (
	"context"
	"sync"

	"github.com/relay64/relay64/assert"
	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/staging"
)

// Sentinal error patterns.
const (
	SessionClosed = "relay: session closed"
	HandlerError  = "relay: handler: %v"
)

// Handler is called by the render thread for every submitted payload. The
// slice is only valid for the duration of the call.
type Handler func(payload []byte) error

// Session is the split between the producer goroutine and the render thread.
type Session struct {
	pool    *staging.Pool
	handoff chan staging.Allocation

	done      chan struct{}
	closeOnce sync.Once

	render assert.Thread
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(prefs *Preferences) (*Session, error) {
	pool, err := staging.NewPool(prefs.PoolCapacity.Get().(int))
	if err != nil {
		return nil, err
	}

	s := &Session{
		pool:    pool,
		handoff: make(chan staging.Allocation, prefs.HandoffDepth.Get().(int)),
		done:    make(chan struct{}),
	}

	logger.Logf(logger.Allow, "relay", "session started with %d byte pool", pool.Capacity())

	return s, nil
}

// Pool returns the staging pool used by the session.
func (s *Session) Pool() *staging.Pool {
	return s.pool
}

// Submit stages the payload and hands it to the render thread. It blocks if
// the pool has no room for the payload or if the render thread has too many
// payloads waiting. Must only be called by the producer goroutine.
func (s *Session) Submit(ctx context.Context, payload []byte) error {
	a, err := s.pool.AllocateContext(ctx, payload)
	if err != nil {
		if curated.Is(err, staging.Closed) {
			return curated.Errorf(SessionClosed)
		}
		return err
	}

	// once allocated the handle must reach the render thread. abandoning it
	// here would prevent every later allocation from being released. the
	// only way out is if the session is closed, in which case the allocation
	// is never released. it is the newest allocation in the pool so payloads
	// already waiting can still be released in order
	select {
	case s.handoff <- a:
	case <-s.done:
		return curated.Errorf(SessionClosed)
	}

	return nil
}

// consume calls the handler with the payload of the allocation and then
// releases the allocation. the allocation is released even if the handler
// fails.
func (s *Session) consume(a staging.Allocation, handler Handler) error {
	herr := handler(s.pool.Bytes(a))
	if err := s.pool.Release(a); err != nil {
		return err
	}
	if herr != nil {
		return curated.Errorf(HandlerError, herr)
	}
	return nil
}

// Service handles every payload that is waiting for the render thread. It
// does not wait for more payloads to arrive. Returns the number of payloads
// handled. Must only be called by the render thread.
//
// Service stops at the first handler error. Payloads that have not been
// handled remain waiting for the next call.
func (s *Session) Service(handler Handler) (int, error) {
	s.render.Check("relay")

	n := 0
	for {
		select {
		case a := <-s.handoff:
			if err := s.consume(a, handler); err != nil {
				return n, err
			}
			n++
		default:
			return n, nil
		}
	}
}

// ServiceWait is the same as Service() except that it waits for at least one
// payload if none are waiting. Returns the context's error if the context is
// done before a payload arrives. SessionClosed is returned only once the
// session is closed and no payloads are waiting.
func (s *Session) ServiceWait(ctx context.Context, handler Handler) (int, error) {
	s.render.Check("relay")

	// a waiting payload is preferred over the closed session
	var a staging.Allocation
	select {
	case a = <-s.handoff:
	default:
		select {
		case a = <-s.handoff:
		case <-s.done:
			return 0, curated.Errorf(SessionClosed)
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if err := s.consume(a, handler); err != nil {
		return 0, err
	}

	n, err := s.Service(handler)
	return n + 1, err
}

// Close ends the session. A producer blocked in Submit() is released with a
// SessionClosed error. Payloads that are waiting for the render thread can
// still be serviced.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.pool.Close()
		stats := s.pool.Stats()
		logger.Logf(logger.Allow, "relay", "session closed after %d allocations (%d waits, %d wraps, %d bytes high water)",
			stats.Allocations, stats.Waits, stats.Wraps, stats.HighWater)
	})
}
