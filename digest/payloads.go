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


package digest

import (
	"crypto/sha1"
	"fmt"
)

// Payloads is an implementation of the Digest interface for payload data. Each
// payload is hashed together with the digest of the previous payload, so the
// final hash depends on the order of payloads as well as their content.
type Payloads struct {
	digest [sha1.Size]byte
	buffer []byte
	count  int
}

// NewPayloads is the preferred method of initialisation for the Payloads type.
func NewPayloads() *Payloads {
	return &Payloads{}
}

// Hash implements digest.Digest interface.
func (dig *Payloads) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Payloads) ResetDigest() {
	clear(dig.digest[:])
	dig.count = 0
}

// Count returns the number of payloads added since the last reset.
func (dig *Payloads) Count() int {
	return dig.count
}

// Write adds a payload to the digest. It implements io.Writer so that a digest
// can be the target of an io.Copy().
func (dig *Payloads) Write(payload []byte) (int, error) {
	n := len(dig.digest) + len(payload)
	if cap(dig.buffer) < n {
		dig.buffer = make([]byte, n)
	}
	dig.buffer = dig.buffer[:n]

	// the first bytes of the buffer are the previous digest
	copy(dig.buffer, dig.digest[:])
	copy(dig.buffer[len(dig.digest):], payload)
	dig.digest = sha1.Sum(dig.buffer)
	dig.count++

	return len(payload), nil
}
