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
	"testing"

	"github.com/relay64/relay64/glapi/glrecord"
	"github.com/relay64/relay64/lifecycle"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/shadow"
	"github.com/relay64/relay64/test"
)

func TestHeadless(t *testing.T) {
	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(rec.ProcAddress, logger.Deny)

	// nothing negotiated yet
	test.ExpectFailure(t, fe.CreateContext())

	c := lifecycle.NewController(rec, shadow.DefaultOptions(), nil)
	created := 0
	test.DemandSuccess(t, c.Setup(lifecycle.Params{
		Environment:  fe.Environment,
		ContextReset: func() { created++ },
	}))

	test.DemandSuccess(t, fe.CreateContext())
	test.ExpectEquality(t, created, 1)
	test.DemandSuccess(t, c.Bind())

	test.DemandSuccess(t, fe.LoseContext())
	test.ExpectEquality(t, created, 2)
	test.ExpectEquality(t, c.State(), lifecycle.Lost)

	test.DemandSuccess(t, fe.DestroyContext())
	test.ExpectEquality(t, c.State(), lifecycle.Lost)
}

func TestHeadlessRefusal(t *testing.T) {
	fe := relay.NewHeadless(nil, logger.Deny)
	c := lifecycle.NewController(glrecord.NewRecorder(), shadow.DefaultOptions(), nil)

	err := c.Setup(lifecycle.Params{Environment: fe.Environment})
	test.ExpectFailure(t, err)
	test.DemandEquality(t, len(fe.Messages), 1)
	test.ExpectEquality(t, fe.Messages[0], "graphics backend unavailable")
}
