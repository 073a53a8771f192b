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


package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// the maximum number of payloads in a single frame. used to make a unique
// seed from the frame and payload index
const maxPerFrame = 1 << 16

// Random generates payload content.
type Random struct {
	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where payloads must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	return &Random{}
}

// new RNG from the standard library
func (rnd *Random) rand(frame int, index int) *rand.Rand {
	seed := int64(frame)*maxPerFrame + int64(index)
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(seed))
	}
	return rand.New(rand.NewSource(baseSeed + seed))
}

// Fill writes content to b for the payload at the index in the frame.
func (rnd *Random) Fill(frame int, index int, b []byte) {
	// the error from Read() is always nil
	_, _ = rnd.rand(frame, index).Read(b)
}

// Intn returns a number in the range [0,n) for the payload at the index in
// the frame.
func (rnd *Random) Intn(frame int, index int, n int) int {
	return rnd.rand(frame, index).Intn(n)
}
