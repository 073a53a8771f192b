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


package main

import (
	"testing"

	"github.com/relay64/relay64/test"
)

func newSync() *mainSync {
	return &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}
}

func TestLaunchVersion(t *testing.T) {
	sync := newSync()
	go launch(sync, []string{"version"})

	state := <-sync.state
	test.ExpectEquality(t, state.req, reqQuit)
	test.ExpectEquality(t, state.args, nil)
}

func TestLaunchBadFlag(t *testing.T) {
	sync := newSync()
	go launch(sync, []string{"-nosuchflag"})

	state := <-sync.state
	test.ExpectEquality(t, state.req, reqQuit)
	test.ExpectEquality(t, state.args, any(10))
}

func TestLaunchMissingScenario(t *testing.T) {
	sync := newSync()
	go launch(sync, []string{"sim"})

	state := <-sync.state
	test.ExpectEquality(t, state.req, reqQuit)
	test.ExpectEquality(t, state.args, any(20))
}
