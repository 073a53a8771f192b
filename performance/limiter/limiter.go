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


// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(ctx, 60)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderFrame()
//	}
//
// The limiter goroutine stops when the context is cancelled.
package limiter

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// this is a really rough attempt at frame rate limiting. probably only any
// good if base performance of the machine is well above the required rate.

// FpsLimiter will trigger every frames per second
type FpsLimiter struct {
	secondsPerFrame atomic.Int64

	tick chan bool
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type
func NewFPSLimiter(ctx context.Context, framesPerSecond int) (*FpsLimiter, error) {
	lim := &FpsLimiter{}
	err := lim.SetLimit(framesPerSecond)
	if err != nil {
		return nil, err
	}

	lim.tick = make(chan bool)

	// run ticker concurrently
	go func() {
		t := time.Now()
		adjusted := time.Duration(lim.secondsPerFrame.Load())
		for {
			select {
			case lim.tick <- true:
			case <-ctx.Done():
				return
			}

			target := time.Duration(lim.secondsPerFrame.Load())
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - target

			// the adjustment can't be allowed to run away if the consumer
			// stalls for a long time
			adjusted = max(0, min(adjusted, target))
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the limit at which the FpsLimiter waits
func (lim *FpsLimiter) SetLimit(framesPerSecond int) error {
	if framesPerSecond <= 0 {
		return fmt.Errorf("limiter: frames per second must be positive: %d", framesPerSecond)
	}
	lim.secondsPerFrame.Store(int64(time.Second) / int64(framesPerSecond))
	return nil
}

// Wait will block until trigger
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}
