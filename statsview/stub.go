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

//go:build !statsview

package statsview

import "github.com/relay64/relay64/logger"

// Launch is a stub when the statsview build constraint is not present.
func Launch() {
	logger.Log(logger.Allow, "statsview", "not available in this build")
}

// Available returns false when the statsview build constraint is not present.
func Available() bool {
	return false
}
