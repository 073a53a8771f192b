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


package regression

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/database"
	"github.com/relay64/relay64/paths"
	"github.com/relay64/relay64/relay"
)

// Sentinal error patterns.
const (
	RegressionError = "regression: %v"
)

// the name of the regression database in the resource directory
const regressionDBFile = "regressionDB"

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is for convenience really (or "logical binding", as the structured
	// programmers would have it)
	//
	// message is the string that is to be printed during the regression.
	//
	// the returned string is the reason for a failed regression
	regress(ctx context.Context, newRegression bool, output io.Writer, message string, prefs *relay.Preferences) (bool, string, error)
}

// DefaultDBPath returns the path to the regression database in the resource
// directory.
func DefaultDBPath() (string, error) {
	return paths.ResourcePath("", regressionDBFile)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(digestEntryType, deserialiseDigestEntry)
}

// regression tests use the default preferences regardless of what the user
// has saved. the prefs file alongside the database is never written to.
func regressionPreferences(dbPath string) (*relay.Preferences, error) {
	p, err := relay.NewPreferencesFromFile(dbPath + ".prefs")
	if err != nil {
		return nil, curated.Errorf(RegressionError, err)
	}
	p.SetDefaults()
	return p, nil
}

// RegressList displays all entries in the database.
func RegressList(dbPath string, output io.Writer) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression db.
func RegressDelete(dbPath string, output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(RegressionError, fmt.Sprintf("invalid key [%s]", key))
	}

	db, err := database.StartSession(dbPath, database.ActivityModifying, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	ent, err := db.Get(v)
	if err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	_, err = confirmation.Read(confirm)
	if err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}

	if confirm[0] != 'y' && confirm[0] != 'Y' {
		return db.EndSession(false)
	}

	if err := db.Delete(v); err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}
	fmt.Fprintf(output, "deleted test #%s from regression database\n", key)

	return db.EndSession(true)
}

// RegressAdd adds a new regression handler to the database.
func RegressAdd(ctx context.Context, dbPath string, output io.Writer, reg Regressor) error {
	prefs, err := regressionPreferences(dbPath)
	if err != nil {
		return err
	}

	db, err := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	msg := fmt.Sprintf("adding: %s", reg)
	ok, reason, err := reg.regress(ctx, true, output, msg, prefs)
	if err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}
	if !ok {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, reason)
	}

	key, err := db.Add(reg)
	if err != nil {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}

	fmt.Fprintf(output, "%s\radded: %03d %s\n", ansi.EraseEntireLine, key, reg)

	return db.EndSession(true)
}

// Results of RegressRun().
type Results struct {
	Succeed int
	Fail    int
	Error   int
	Skipped int
}

func (r Results) String() string {
	s := fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", r.Succeed, r.Fail, r.Skipped)
	if r.Error > 0 {
		s = fmt.Sprintf("%s [with errors]", s)
	}
	return s
}

// RegressRun runs all the tests in the regression database. The filterKeys
// list specifies which entries to test. an empty keys list means that every
// entry should be tested.
//
// Stops at the first error if failOnError is true. The context cancels the
// test that is running and stops any further tests.
func RegressRun(ctx context.Context, dbPath string, output io.Writer, verbose bool, failOnError bool, filterKeys []string) (Results, error) {
	var res Results

	prefs, err := regressionPreferences(dbPath)
	if err != nil {
		return res, err
	}

	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return res, curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(false)

	// make sure any supplied keys list is in order
	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return res, curated.Errorf(RegressionError, fmt.Sprintf("invalid key [%s]", k))
		}
		keys = append(keys, v)
	}
	sort.Ints(keys)
	if len(keys) > 0 {
		res.Skipped = db.NumEntries() - len(keys)
	}

	// returned by onSelect to stop the selection early
	stop := errors.New("stop")

	onSelect := func(key int, ent database.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		// datbase entry should also satisfy Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf(RegressionError, "database entry does not satisfy Regressor interface")
		}

		// run regress() function with message. message does not have a
		// trailing newline
		msg := fmt.Sprintf("running: %03d %s", key, reg)
		ok, reason, err := reg.regress(ctx, false, output, msg, prefs)

		// once regress() has completed we clear the line ready for the
		// completion message
		io.WriteString(output, ansi.EraseEntireLine)

		// print completion message depending on result of regress()
		if err != nil {
			res.Error++
			fmt.Fprintf(output, "\r  ERROR: %03d %s\n", key, reg)

			// output any error message on following line
			if verbose {
				fmt.Fprintf(output, "%v\n", err)
			}

			if failOnError {
				return stop
			}
		} else if !ok {
			res.Fail++
			fmt.Fprintf(output, "\rfailure: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "%s\n", reason)
			}
		} else {
			res.Succeed++
			fmt.Fprintf(output, "\rsucceed: %03d %s\n", key, reg)
		}

		return nil
	}

	_, err = db.SelectKeys(onSelect, keys...)
	fmt.Fprintln(output, res)

	switch {
	case err == nil:
	case curated.Is(err, database.NotAvailable) && db.NumEntries() == 0:
		// an empty database is not an error
	case errors.Is(err, stop):
	default:
		return res, curated.Errorf(RegressionError, err)
	}

	return res, nil
}
