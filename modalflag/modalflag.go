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


package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

const modeSeparator = "/"

type subMode struct {
	name        string
	description string
}

// Modes is a command line divided into modes. The Output field should be set
// before calling Parse() or help messages will not be seen.
type Modes struct {
	// where help messages are printed
	Output io.Writer

	// flags for the layer being parsed. replaced by NewArgs() and NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes for the layer being parsed
	subModes []subMode

	// every mode selected so far. never reset
	path []string

	// printed after the flags and sub-modes
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts the first layer.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new layer. Arguments that have not been consumed by
// earlier layers are parsed by the next call to Parse().
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
}

// AdditionalHelp is printed after the flags and sub-modes of the current
// layer.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddSubMode adds a sub-mode to the current layer. The first sub-mode added is
// the default.
func (md *Modes) AddSubMode(name string, description string) {
	md.subModes = append(md.subModes, subMode{
		name:        strings.ToUpper(name),
		description: description,
	})
}

// ParseResult is returned by Parse().
type ParseResult int

// List of valid ParseResult values.
const (
	// parsing succeeded. if sub-modes were added then Mode() returns the
	// selected sub-mode
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// the error is returned as the second value
	ParseError
)

// Parse the current layer of arguments.
func (md *Modes) Parse() (ParseResult, error) {
	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help()
			return ParseHelp, nil
		}
		return ParseError, err
	}

	// flags consumed by this layer are not seen by the next
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := md.subModes[0].name
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, s := range md.subModes {
		if s.name == arg {
			mode = s.name
			md.argsIdx++
			break // for loop
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var hasFlags bool
	md.flags.VisitAll(func(_ *flag.Flag) {
		hasFlags = true
	})

	if !hasFlags && len(md.subModes) == 0 {
		if md.Path() == "" {
			fmt.Fprintf(md.Output, "No help available\n")
		} else {
			fmt.Fprintf(md.Output, "No help available for %s\n", md.Path())
		}
		return
	}

	if md.Path() == "" {
		fmt.Fprintf(md.Output, "Usage:\n")
	} else {
		fmt.Fprintf(md.Output, "Usage of %s mode:\n", md.Path())
	}

	if hasFlags {
		md.flags.SetOutput(md.Output)
		md.flags.PrintDefaults()
		md.flags.SetOutput(io.Discard)
	}

	if len(md.subModes) > 0 {
		if hasFlags {
			fmt.Fprintf(md.Output, "\n")
		}
		fmt.Fprintf(md.Output, "  sub-modes:\n")
		tw := tabwriter.NewWriter(md.Output, 0, 0, 2, ' ', 0)
		for i, s := range md.subModes {
			if i == 0 {
				fmt.Fprintf(tw, "    %s\t%s (default)\n", s.name, s.description)
			} else {
				fmt.Fprintf(tw, "    %s\t%s\n", s.name, s.description)
			}
		}
		tw.Flush()
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}

// RemainingArgs returns the arguments that are neither flags nor a sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument from RemainingArgs(). Returns the empty
// string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddBool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for the next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddDuration flag for the next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// Visit calls fn for every flag that was set on the command line, in
// lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
