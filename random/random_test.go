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


package random_test

import (
	"bytes"
	"testing"

	"github.com/relay64/relay64/random"
	"github.com/relay64/relay64/test"
)

func TestRandom(t *testing.T) {
	a := random.NewRandom()
	b := random.NewRandom()
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i, 0, i), b.Intn(i, 0, i))
	}

	x := make([]byte, 64)
	y := make([]byte, 64)
	a.Fill(3, 1, x)
	b.Fill(3, 1, y)
	test.ExpectSuccess(t, bytes.Equal(x, y))

	// a different payload in the same frame
	b.Fill(3, 2, y)
	test.ExpectFailure(t, bytes.Equal(x, y))
}
