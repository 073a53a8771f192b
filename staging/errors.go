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

package staging

// Sentinal error patterns.
const (
	// ConfigurationError is returned when a request can never be satisfied by
	// the pool. Waiting will not help.
	ConfigurationError = "staging: configuration: %v"

	// ProtocolMisuse is returned when the pool is used in a way that breaks
	// the allocate/release contract. The pool is left unchanged.
	ProtocolMisuse = "staging: misuse: %v"

	// Closed is returned by Allocate() when the pool has been closed.
	Closed = "staging: pool closed"
)
