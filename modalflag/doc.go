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


// Package modalflag wraps the flag package of the standard library so that a
// command line can be divided into modes, each with its own flags.
//
// Arguments are given to NewArgs() and each layer of the command line is then
// parsed with a call to Parse(). Before each call, the flags and the sub-modes
// of the layer are added:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubMode("RUN", "play a scenario in a window")
//	md.AddSubMode("SIM", "play a scenario without a window")
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "number of frames")
//		...
//	}
//
// The first sub-mode added is the default and is selected if the next argument
// does not name a sub-mode. Sub-modes are matched without regard to case.
//
// Help is printed to Output if the -help flag is found. The help lists the
// flags and sub-modes of the layer being parsed.
package modalflag
