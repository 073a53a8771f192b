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

package curated

import (
	"errors"
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error.
//
// Note that unlike the Errorf() function in the fmt package the first argument
// is named "pattern" not "format". The pattern is used by the Is() and Has()
// functions to identify the error.
func Errorf(pattern string, values ...any) error {
	// formatting is deferred until Error() is called
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Normalisation being the removal
// of duplicate adjacent error messsage parts in the error message chain. It
// doesn't affect letter-case or white space.
func (er curated) Error() string {
	// the %w verb is only meaningful to fmt.Errorf(). use %v so that the
	// message is the same regardless of which verb was used
	pattern := strings.ReplaceAll(er.pattern, "%w", "%v")
	s := fmt.Sprintf(pattern, er.values...)

	p := strings.Split(s, ": ")
	n := p[:1]
	for i := 1; i < len(p); i++ {
		if p[i] != n[len(n)-1] {
			n = append(n, p[i])
		}
	}

	return strings.Join(n, ": ")
}

// Unwrap returns any errors that were used as placeholder values.
func (er curated) Unwrap() []error {
	var w []error
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			w = append(w, e)
		}
	}
	return w
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if error is a curated error with a specific pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if error is a curated error with a specific pattern somewhere in
// the chain. The chain can include uncurated errors that wrap curated errors
// with the %w verb.
func Has(err error, pattern string) bool {
	if err == nil {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, w := range e.Unwrap() {
			if Has(w, pattern) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return Has(e.Unwrap(), pattern)
	}

	return false
}

// Cause returns the innermost curated error in the chain. Returns nil if
// there is no curated error in the chain.
func Cause(err error) error {
	var c curated
	if !errors.As(err, &c) {
		return nil
	}

	for {
		var inner error
		for _, w := range c.Unwrap() {
			var n curated
			if errors.As(w, &n) {
				inner = n
				break
			}
		}
		if inner == nil {
			return c
		}
		c = inner.(curated)
	}
}
