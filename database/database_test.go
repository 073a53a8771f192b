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


package database_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/database"
	"github.com/relay64/relay64/test"
)

type counterEntry struct {
	name    string
	count   int
	cleaned *int
}

func (e *counterEntry) EntryType() string {
	return "counter"
}

func (e *counterEntry) String() string {
	return fmt.Sprintf("%s=%d", e.name, e.count)
}

func (e *counterEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{e.name, strconv.Itoa(e.count)}, nil
}

func (e *counterEntry) CleanUp() error {
	if e.cleaned != nil {
		*e.cleaned++
	}
	return nil
}

func initSession(db *database.Session) error {
	return db.RegisterEntryType("counter", func(fields database.SerialisedEntry) (database.Entry, error) {
		if len(fields) != 2 {
			return nil, fmt.Errorf("wrong number of fields")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		return &counterEntry{name: fields[0], count: n}, nil
	})
}

func TestDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	// reading a database that doesn't exist
	_, err := database.StartSession(path, database.ActivityReading, initSession)
	test.ExpectEquality(t, curated.Is(err, database.NotAvailable), true)

	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 0)

	key, err := db.Add(&counterEntry{name: "Viewport", count: 9})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 0)
	key, err = db.Add(&counterEntry{name: "Uniform", count: 5})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 1)
	test.DemandSuccess(t, db.EndSession(true))

	db, err = database.StartSession(path, database.ActivityModifying, initSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 2)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, db.List(w))
	test.ExpectSuccess(t, w.Compare("000 [counter] Viewport=9\n001 [counter] Uniform=5\nTotal: 2\n"))

	ent, err := db.Get(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "Uniform=5")

	// the free key is reused
	test.ExpectSuccess(t, db.Delete(0))
	test.ExpectFailure(t, db.Delete(0))
	key, err = db.Add(&counterEntry{name: "Scissor", count: 1})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 0)

	var names []string
	_, err = db.SelectAll(func(_ int, ent database.Entry) error {
		names = append(names, ent.String())
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprint(names), "[Scissor=1 Uniform=5]")

	_, err = db.SelectKeys(nil, 5)
	test.ExpectEquality(t, curated.Is(err, database.NotAvailable), true)

	// changes are not written unless committed
	test.DemandSuccess(t, db.EndSession(false))
	db, err = database.StartSession(path, database.ActivityReading, initSession)
	test.DemandSuccess(t, err)
	ent, err = db.Get(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "Viewport=9")

	// reading sessions can't be modified
	_, err = db.Add(&counterEntry{name: "Scissor"})
	test.ExpectFailure(t, err)
}

func TestDatabaseCleanUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)

	cleaned := 0
	key, err := db.Add(&counterEntry{name: "Viewport", cleaned: &cleaned})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, db.Delete(key))
	test.ExpectEquality(t, cleaned, 1)
}

func TestDatabaseErrors(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"badkey":    "abc,counter,Viewport,1\n",
		"duplicate": "000,counter,Viewport,1\n000,counter,Scissor,1\n",
		"type":      "000,timer,Viewport,1\n",
		"fields":    "000,counter,Viewport\n",
	} {
		path := filepath.Join(dir, name)
		test.DemandSuccess(t, os.WriteFile(path, []byte(content), 0o600))
		_, err := database.StartSession(path, database.ActivityReading, initSession)
		test.ExpectEquality(t, curated.Is(err, database.DatabaseError), true, name)
	}

	// separators can't be serialised
	path := filepath.Join(dir, "sep")
	db, err := database.StartSession(path, database.ActivityCreating, initSession)
	test.DemandSuccess(t, err)
	_, err = db.Add(&counterEntry{name: "a,b"})
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, db.EndSession(true))
}
