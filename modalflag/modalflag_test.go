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


package modalflag_test

import (
	"testing"

	"github.com/relay64/relay64/modalflag"
	"github.com/relay64/relay64/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.ExpectEquality(t, len(md.RemainingArgs()), 0)
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log", "-frames", "20", "quad.yaml", "extra"})
	log := md.AddBool("log", false, "echo log")
	frames := md.AddInt("frames", 10, "number of frames")
	pool := md.AddString("pool", "", "pool size")

	test.ExpectEquality(t, *log, false)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *log, true)
	test.ExpectEquality(t, *frames, 20)
	test.ExpectEquality(t, *pool, "")
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "quad.yaml")
	test.ExpectEquality(t, md.GetArg(1), "extra")
	test.ExpectEquality(t, md.GetArg(2), "")

	var visited []string
	md.Visit(func(f string) {
		visited = append(visited, f)
	})
	test.ExpectEquality(t, len(visited), 2)
	test.ExpectEquality(t, visited[0], "frames")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nosuchflag"})
	md.AddSubMode("RUN", "run")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"sim", "-frames", "5", "quad.yaml"})
	md.AddSubMode("RUN", "play in a window")
	md.AddSubMode("SIM", "play without a window")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "SIM")

	md.NewMode()
	frames := md.AddInt("frames", 10, "number of frames")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 5)
	test.ExpectEquality(t, md.GetArg(0), "quad.yaml")
	test.ExpectEquality(t, md.Path(), "SIM")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"quad.yaml"})
	md.AddSubMode("RUN", "play in a window")
	md.AddSubMode("SIM", "play without a window")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	md.AddSubMode("FAST", "")
	md.AddSubMode("SLOW", "")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Path(), "RUN/FAST")
	test.ExpectEquality(t, md.String(), "RUN/FAST")
	test.ExpectEquality(t, md.GetArg(0), "quad.yaml")
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, tw.Compare("No help available\n"))
}

func TestHelpFlags(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("log", true, "echo log")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -log\n" +
		"    \techo log (default true)\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp))
}

func TestHelpModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubMode("RUN", "window")
	md.AddSubMode("SIM", "headless")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  sub-modes:\n" +
		"    RUN  window (default)\n" +
		"    SIM  headless\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp))
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"sim", "-help"})
	md.AddSubMode("RUN", "window")
	md.AddSubMode("SIM", "headless")
	_, _ = md.Parse()

	md.NewMode()
	md.AddBool("log", false, "echo log")
	md.AdditionalHelp("The scenario file is required.")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage of SIM mode:\n" +
		"  -log\n" +
		"    \techo log\n" +
		"\n" +
		"The scenario file is required.\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp))
}
