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

package relay_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/test"
)

func newPreferences(t *testing.T, capacity int, depth int) *relay.Preferences {
	t.Helper()
	p, err := relay.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.PoolCapacity.Set(capacity))
	test.DemandSuccess(t, p.HandoffDepth.Set(depth))
	return p
}

func TestSessionOrder(t *testing.T) {
	s, err := relay.NewSession(newPreferences(t, 256, 4))
	test.DemandSuccess(t, err)
	defer s.Close()

	const count = 500

	go func() {
		for i := range count {
			p := bytes.Repeat([]byte{byte(i)}, 1+i%60)
			if err := s.Submit(context.Background(), p); err != nil {
				return
			}
		}
	}()

	received := 0
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for received < count {
		_, err := s.ServiceWait(ctx, func(payload []byte) error {
			expected := bytes.Repeat([]byte{byte(received)}, 1+received%60)
			test.ExpectSuccess(t, bytes.Equal(payload, expected), received)
			received++
			return nil
		})
		test.DemandSuccess(t, err)
	}

	test.ExpectEquality(t, s.Pool().Free(), 256)
}

func TestSessionHandlerError(t *testing.T) {
	s, err := relay.NewSession(newPreferences(t, 64, 4))
	test.DemandSuccess(t, err)
	defer s.Close()

	test.DemandSuccess(t, s.Submit(context.Background(), []byte{1, 2, 3}))
	test.DemandSuccess(t, s.Submit(context.Background(), []byte{4, 5, 6}))

	n, err := s.Service(func(payload []byte) error {
		if payload[0] == 1 {
			return errors.New("bad payload")
		}
		return nil
	})
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, curated.Is(err, relay.HandlerError))

	// the failed payload was released. the other is still waiting
	n, err = s.Service(func(payload []byte) error { return nil })
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, s.Pool().Free(), 64)
}

func TestSessionClose(t *testing.T) {
	s, err := relay.NewSession(newPreferences(t, 64, 1))
	test.DemandSuccess(t, err)

	// fill the handoff channel
	test.DemandSuccess(t, s.Submit(context.Background(), []byte{1}))

	done := make(chan error)
	go func() {
		done <- s.Submit(context.Background(), []byte{2})
	}()

	time.Sleep(10 * time.Millisecond)
	s.Close()
	test.ExpectSuccess(t, curated.Is(<-done, relay.SessionClosed))
	test.ExpectSuccess(t, curated.Is(s.Submit(context.Background(), []byte{3}), relay.SessionClosed))

	// close can be called more than once
	s.Close()
}

func TestSessionServiceAfterClose(t *testing.T) {
	for range 20 {
		s, err := relay.NewSession(newPreferences(t, 64, 4))
		test.DemandSuccess(t, err)

		test.DemandSuccess(t, s.Submit(context.Background(), []byte{1}))
		test.DemandSuccess(t, s.Submit(context.Background(), []byte{2}))
		s.Close()

		var received []byte
		n, err := s.ServiceWait(context.Background(), func(payload []byte) error {
			received = append(received, payload...)
			return nil
		})
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, n, 2)
		test.ExpectSuccess(t, bytes.Equal(received, []byte{1, 2}))
		test.ExpectEquality(t, s.Pool().Free(), 64)

		_, err = s.ServiceWait(context.Background(), func([]byte) error { return nil })
		test.ExpectSuccess(t, curated.Is(err, relay.SessionClosed))
	}
}

func TestSessionCancel(t *testing.T) {
	s, err := relay.NewSession(newPreferences(t, 64, 1))
	test.DemandSuccess(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = s.ServiceWait(ctx, func([]byte) error { return nil })
	test.ExpectSuccess(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")
	p, err := relay.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)

	opts := p.ShadowOptions()
	test.ExpectEquality(t, opts.TextureUnits, 32)
	test.ExpectEquality(t, opts.UniformBound, 64)
	test.ExpectSuccess(t, opts.InvalidateDepth)

	test.DemandSuccess(t, p.UniformBound.Set(16))
	test.DemandSuccess(t, p.CacheUniforms.Set(false))
	test.DemandSuccess(t, p.Save())

	q, err := relay.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.ShadowOptions().UniformBound, 16)
	test.ExpectFailure(t, q.ShadowOptions().CacheUniforms)

	// out of range
	test.ExpectFailure(t, p.TextureUnits.Set(100))
}
