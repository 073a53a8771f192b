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


package digest_test

import (
	"testing"

	"github.com/relay64/relay64/digest"
	"github.com/relay64/relay64/test"
)

func TestPayloads(t *testing.T) {
	a := digest.NewPayloads()
	b := digest.NewPayloads()
	test.ExpectEquality(t, a.Hash(), b.Hash())

	a.Write([]byte{1, 2, 3})
	a.Write([]byte{4, 5})
	b.Write([]byte{1, 2, 3})
	b.Write([]byte{4, 5})
	test.ExpectEquality(t, a.Count(), 2)
	test.ExpectEquality(t, a.Hash(), b.Hash())

	// same bytes split differently is a different digest
	c := digest.NewPayloads()
	c.Write([]byte{1, 2})
	c.Write([]byte{3, 4, 5})
	test.ExpectInequality(t, a.Hash(), c.Hash())

	// order matters
	d := digest.NewPayloads()
	d.Write([]byte{4, 5})
	d.Write([]byte{1, 2, 3})
	test.ExpectInequality(t, a.Hash(), d.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Count(), 0)
	test.ExpectEquality(t, a.Hash(), digest.NewPayloads().Hash())
}

var _ digest.Digest = (*digest.Payloads)(nil)
