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
	"fmt"
	"sort"
	"strings"
)

// preferences can be overridden from the command line with a string of the
// form:
//
//	relay.pool::65536; shadow.uniforms::32
//
// each call to PushCommandLineStack() adds a new group of overrides. overrides
// are consumed by Disk.Load() and are removed from the group as they are
// used. the stack allows a mode to push its own group without affecting the
// group of an enclosing mode.
var commandLineStack []map[string]Value

// separators used in the command line string.
const (
	commandLineKeyValue = "::"
	commandLineEntry    = ";"
)

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a command line string and adds it as a new
// group. Malformed entries are ignored.
func PushCommandLineStack(prefs string) {
	group := make(map[string]Value)

	for _, p := range strings.Split(prefs, commandLineEntry) {
		kv := strings.Split(p, commandLineKeyValue)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		if key == "" {
			continue
		}
		group[key] = strings.TrimSpace(kv[1])
	}

	commandLineStack = append(commandLineStack, group)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the unused entries of the group, sorted by key, in the same format
// as accepted by PushCommandLineStack().
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(keys))
	for _, key := range keys {
		s = append(s, fmt.Sprintf("%s%s%v", key, commandLineKeyValue, popped[key]))
	}

	return strings.Join(s, commandLineEntry+" ")
}

// GetCommandLinePref returns the value for key from the most recent group.
// The entry is deleted from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	key = strings.ToLower(key)
	group := commandLineStack[len(commandLineStack)-1]
	if v, ok := group[key]; ok {
		delete(group, key)
		return true, v
	}

	return false, nil
}
