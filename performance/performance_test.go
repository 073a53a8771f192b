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


package performance_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/relay64/relay64/performance"
	"github.com/relay64/relay64/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, MEM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)
	test.ExpectEquality(t, p.String(), "CPU,MEM")

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	p, err = performance.ParseProfileString("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	_, err = performance.ParseProfileString("cpu,gpu")
	test.ExpectFailure(t, err)
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(120, 2*time.Second, 60)
	test.ExpectApproximate(t, fps, 60.0, 0.001)
	test.ExpectApproximate(t, accuracy, 100.0, 0.001)

	fps, accuracy = performance.CalcFPS(120, 4*time.Second, 0)
	test.ExpectApproximate(t, fps, 30.0, 0.001)
	test.ExpectEquality(t, accuracy, 0.0)

	fps, _ = performance.CalcFPS(120, 0, 60)
	test.ExpectEquality(t, fps, 0.0)
}

func TestRunProfiler(t *testing.T) {
	header := filepath.Join(t.TempDir(), "test")
	ran := false

	err := performance.RunProfiler(performance.ProfileMem, header, func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ran, true)

	_, err = os.Stat(header + "_mem.profile")
	test.ExpectSuccess(t, err)

	// the error from the run function is returned
	sentinal := errors.New("test")
	err = performance.RunProfiler(performance.ProfileNone, header, func() error {
		return sentinal
	})
	test.ExpectEquality(t, err, sentinal)
}
