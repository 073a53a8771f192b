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

// Package assert provides runtime checks for the threading contract of the
// relay. The state shadow and the lifecycle controller must only ever be
// touched from the render thread. Checks are compiled in only when the
// "assertions" build tag is specified. Otherwise the functions are stubbed.
package assert
