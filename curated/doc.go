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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are the "expected" errors of the relay: an undersized staging
// pool, a release made out of order, a front-end that refuses to provide a
// hardware context. Anything else is uncurated and should be treated as
// unexpected.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, exactly like fmt.Errorf(). The
// pattern is remembered and is what identifies the error:
//
//	const PoolTooSmall = "staging: request of %d bytes exceeds capacity of %d bytes"
//
//	err := curated.Errorf(PoolTooSmall, 2048, 1024)
//
//	if curated.Is(err, PoolTooSmall) {
//		fmt.Println("true")
//	}
//
// Packages that return curated errors should declare the patterns they use as
// exported string constants. This is the closest thing we have to sentinal
// errors and it means callers never need to compare error strings.
//
// The Has() function is similar to Is() but checks if the pattern occurs
// anywhere in the chain of wrapped errors. Wrapping is by the %v or %w verbs.
//
//	e := curated.Errorf(PoolTooSmall, 2048, 1024)
//	f := curated.Errorf("lifecycle: %v", e)
//
//	curated.Is(f, PoolTooSmall)  // false
//	curated.Has(f, PoolTooSmall) // true
//
// The IsAny() function answers whether the error was created by Errorf() at
// all.
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts. Parts are separated by the sub-string ": ", as
// suggested on p239 of "The Go Programming Language" (Donovan, Kernighan). So
// the following:
//
//	e := curated.Errorf("staging: %v", curated.Errorf("staging: zero length request"))
//
// will print as "staging: zero length request" and not "staging: staging: zero
// length request".
//
// Curated errors implement Unwrap() so the standard errors.Is() and errors.As()
// functions work through them.
package curated
