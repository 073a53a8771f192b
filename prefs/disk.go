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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the name of the prefs file in the resource directory.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is written as the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand while relay64 is running ***"

// the separator between key and value in the prefs file.
const diskKeyValue = " :: "

// Disk represents preference values as stored on disk. Values are added with
// Add() and then saved and loaded as a group.
//
// A prefs file can be shared by more than one Disk instance. Saving preserves
// entries in the file that the Disk instance does not know about.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for prefs file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load from Disk. The key
// value will be normalised to lowercase.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return fmt.Errorf("prefs: empty key")
	}
	if strings.Contains(key, diskKeyValue) || strings.Contains(key, commandLineKeyValue) {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// read the prefs file into a map of key/value strings. a missing file is not
// an error.
func (dsk *Disk) read() (map[string]string, error) {
	data := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if line == WarningBoilerPlate {
				continue
			}
		}
		kv := strings.SplitN(line, diskKeyValue, 2)
		if len(kv) != 2 {
			continue
		}
		data[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return data, nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	for key, p := range dsk.entries {
		data[key] = p.String()
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, diskKeyValue, data[key]))
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. Values in the most recent command line
// group override values on disk. Keys in the file that have not been added to
// the Disk instance are ignored.
func (dsk *Disk) Load() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	for key, p := range dsk.entries {
		if v, ok := data[key]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
		if ok, v := GetCommandLinePref(key); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}

	return nil
}

// Reset all preference values added to the Disk instance.
func (dsk *Disk) Reset() error {
	for key, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}
	return nil
}
