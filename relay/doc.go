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

// Package relay ties the parts of the render relay together. A Session owns
// the staging pool and the channel over which allocations are handed from the
// producer to the render thread.
//
// The producer calls Submit() with the payload bytes. The payload is staged
// in the pool and the allocation handle sent to the render thread. The render
// thread calls Service() once per frame, or ServiceWait() if it wants to wait
// for the producer. Each payload is given to the handler function and then
// released, in the order in which the payloads were submitted.
//
// The package also provides Headless, a front-end without a window that is
// used by the SIM mode and by tests.
package relay
