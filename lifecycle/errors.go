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

package lifecycle

// Sentinal error patterns.
const (
	// Setup() or ContextReset() cannot continue. Retrying will not help
	ConfigurationError = "lifecycle: configuration: %v"

	// something asked for has never been supplied
	NotAvailable = "lifecycle: not available: %v"

	// an optional driver entry point has not been resolved. never returned
	// as an error, only logged
	UnsupportedEntryPoint = "lifecycle: unsupported entry point: %v"

	// a verb was called in a state that does not allow it
	ProtocolMisuse = "lifecycle: misuse: %v"
)
