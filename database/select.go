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

import "github.com/relay64/relay64/curated"

// SelectAll entries in the database in key order. onSelect can be nil.
//
// Selection stops if onSelect() returns an error. Returns the last matched
// entry in selection or an error with the last entry matched before the error
// occurred.
func (db Session) SelectAll(onSelect func(key int, ent Entry) error) (Entry, error) {
	return db.SelectKeys(onSelect)
}

// SelectKeys matches entries with the specified key(s). keys can be singular.
// if list of keys is empty then all keys are matched (SelectAll() maybe more
// appropriate in that case). onSelect can be nil.
//
// Selection stops if onSelect() returns an error. Returns the last matched
// entry in selection or an error with the last entry matched before the error
// occurred.
func (db Session) SelectKeys(onSelect func(key int, ent Entry) error, keys ...int) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.SortedKeyList()
	}

	for _, key := range keyList {
		ent, ok := db.entries[key]
		if !ok {
			return entry, curated.Errorf(NotAvailable, key)
		}
		entry = ent
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	if entry == nil {
		return nil, curated.Errorf(NotAvailable, "select empty")
	}

	return entry, nil
}
