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


package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/relay64/relay64/performance/limiter"
	"github.com/relay64/relay64/test"
)

func TestLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := limiter.NewFPSLimiter(ctx, 0)
	test.ExpectFailure(t, err)

	lim, err := limiter.NewFPSLimiter(ctx, 100)
	test.ExpectSuccess(t, err)

	start := time.Now()
	for range 10 {
		lim.Wait()
	}

	// ten ticks at 100fps are spread over roughly 90ms
	test.ExpectSuccess(t, time.Since(start) >= 50*time.Millisecond)

	test.ExpectFailure(t, lim.SetLimit(-1))
}
