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


package regression_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/regression"
	"github.com/relay64/relay64/test"
)

var quad = filepath.Join("..", "scenario", "testdata", "quad.yaml")

func TestRegression(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "regressionDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	w := &test.CompareWriter{}

	// an empty database
	res, err := regression.RegressRun(ctx, dbPath, w, false, false, nil)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, res.Succeed, 0)

	reg := &regression.DigestRegression{Scenario: quad, Frames: 5, Notes: "quad"}
	test.DemandSuccess(t, regression.RegressAdd(ctx, dbPath, w, reg))
	test.ExpectSuccess(t, w.Contains("added: 000 quad.yaml [5 frames] [quad]"))
	test.ExpectInequality(t, reg.Digest(), "")

	reg = &regression.DigestRegression{Scenario: quad}
	test.DemandSuccess(t, regression.RegressAdd(ctx, dbPath, w, reg))

	w.Clear()
	test.DemandSuccess(t, regression.RegressList(dbPath, w))
	test.ExpectSuccess(t, w.Contains("000 [digest] quad.yaml [5 frames] [quad]"))
	test.ExpectSuccess(t, w.Contains("001 [digest] quad.yaml"))
	test.ExpectSuccess(t, w.Contains("Total: 2"))

	w.Clear()
	res, err = regression.RegressRun(ctx, dbPath, w, false, false, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res, regression.Results{Succeed: 2})
	test.ExpectSuccess(t, w.Contains("succeed: 000"))

	w.Clear()
	res, err = regression.RegressRun(ctx, dbPath, w, false, false, []string{"1"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res, regression.Results{Succeed: 1, Skipped: 1})

	_, err = regression.RegressRun(ctx, dbPath, w, false, false, []string{"x"})
	test.ExpectFailure(t, err)

	// alter the recorded digest of the first entry
	data, err := os.ReadFile(dbPath)
	test.DemandSuccess(t, err)
	lines := strings.Split(string(data), "\n")
	fields := strings.Split(lines[0], ",")
	fields[4] = "0000"
	lines[0] = strings.Join(fields, ",")
	test.DemandSuccess(t, os.WriteFile(dbPath, []byte(strings.Join(lines, "\n")), 0o600))

	w.Clear()
	res, err = regression.RegressRun(ctx, dbPath, w, true, false, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res, regression.Results{Succeed: 1, Fail: 1})
	test.ExpectSuccess(t, w.Contains("failure: 000"))
	test.ExpectSuccess(t, w.Contains("digest mismatch"))

	// delete is confirmed by the reader
	w.Clear()
	test.DemandSuccess(t, regression.RegressDelete(dbPath, w, strings.NewReader("n\n"), "0"))
	test.DemandSuccess(t, regression.RegressDelete(dbPath, w, strings.NewReader("y\n"), "0"))
	test.ExpectSuccess(t, w.Contains("deleted test #0"))

	err = regression.RegressDelete(dbPath, w, strings.NewReader("y\n"), "0")
	test.ExpectEquality(t, curated.Is(err, regression.RegressionError), true)

	w.Clear()
	test.DemandSuccess(t, regression.RegressList(dbPath, w))
	test.ExpectSuccess(t, w.Contains("Total: 1"))
}

func TestRegressionMissingScenario(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "regressionDB")
	w := &test.CompareWriter{}

	reg := &regression.DigestRegression{Scenario: filepath.Join(t.TempDir(), "missing.yaml")}
	err := regression.RegressAdd(context.Background(), dbPath, w, reg)
	test.ExpectEquality(t, curated.Is(err, regression.RegressionError), true)

	// nothing was added so the database was never created
	_, err = os.Stat(dbPath)
	test.ExpectFailure(t, err)
}
