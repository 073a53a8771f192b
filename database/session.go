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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/relay64/relay64/curated"
)

// Activity is used to specify the general activity of what will be occurring
// during the database session.
type Activity int

// Valid activities: the "higher level" activities inherit the activity
// abilities of the activity levels lower down the scale.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new DB session. The init argument is a
// function that registers the entry types that may be found in the database.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	if err := init(db); err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && activity == ActivityCreating {
			return db, nil
		}
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf(DatabaseError, err)
	}
	defer f.Close()

	if err := db.readEntries(bufio.NewScanner(f)); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database session. Entries are written to disk if
// commitChanges is true and the activity of the session allows it.
func (db *Session) EndSession(commitChanges bool) error {
	if !commitChanges || db.activity == ActivityReading {
		return nil
	}

	f, err := os.Create(db.path)
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	w := bufio.NewWriter(f)
	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]
		ser, err := ent.Serialise()
		if err != nil {
			_ = f.Close()
			return curated.Errorf(DatabaseError, err)
		}

		w.WriteString(recordHeader(key, ent.EntryType()))
		for _, s := range ser {
			if strings.Contains(s, fieldSep) || strings.Contains(s, entrySep) {
				_ = f.Close()
				return curated.Errorf(DatabaseError, fmt.Sprintf("field contains a separator [%s]", s))
			}
			w.WriteString(fieldSep)
			w.WriteString(s)
		}
		w.WriteString(entrySep)
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return curated.Errorf(DatabaseError, err)
	}
	if err := f.Close(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}

func (db *Session) readEntries(scanner *bufio.Scanner) error {
	line := 0
	for scanner.Scan() {
		line++

		s := strings.TrimSpace(scanner.Text())
		if len(s) == 0 {
			continue
		}

		fields := strings.Split(s, fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf(DatabaseError, fmt.Sprintf("missing entry type at line %d", line))
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf(DatabaseError, fmt.Sprintf("invalid key [%s] at line %d", fields[leaderFieldKey], line))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(DatabaseError, fmt.Sprintf("duplicate key [%d] at line %d", key, line))
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf(DatabaseError, fmt.Sprintf("unrecognised entry type [%s] at line %d", fields[leaderFieldID], line))
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf(DatabaseError, fmt.Sprintf("line %d: %v", line, err))
		}

		db.entries[key] = ent
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}
