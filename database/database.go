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


package database

import (
	"fmt"
	"io"
	"sort"

	"github.com/relay64/relay64/curated"
)

// Sentinal error patterns.
const (
	DatabaseError = "database: %v"
	NotAvailable  = "database: not available (%v)"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// NumEntries returns the number of entries in the database.
func (db Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	// sort entries into key order
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]
		if _, err := fmt.Fprintf(output, "%03d [%s] %s\n", key, ent.EntryType(), ent); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}

// Get returns the entry with the specified key.
func (db Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf(NotAvailable, fmt.Sprintf("key %d", key))
	}
	return ent, nil
}

// Add an entry to the db. Returns the key of the new entry.
func (db *Session) Add(ent Entry) (int, error) {
	if db.activity == ActivityReading {
		return 0, curated.Errorf(DatabaseError, "cannot add entry in a reading session")
	}

	if _, ok := db.entryTypes[ent.EntryType()]; !ok {
		return 0, curated.Errorf(DatabaseError, fmt.Sprintf("unregistered entry type [%s]", ent.EntryType()))
	}

	var key int

	// find spare key
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return 0, curated.Errorf(DatabaseError, fmt.Sprintf("maximum entries exceeded (max %d)", maxEntries))
	}

	db.entries[key] = ent

	return key, nil
}

// Delete deletes an entry with the specified key. returns NotAvailable if not
// such entry exists.
func (db *Session) Delete(key int) error {
	if db.activity == ActivityReading {
		return curated.Errorf(DatabaseError, "cannot delete entry in a reading session")
	}

	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(NotAvailable, fmt.Sprintf("key %d", key))
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	delete(db.entries, key)

	return nil
}
