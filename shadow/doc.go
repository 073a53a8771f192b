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

// Package shadow keeps an in-memory copy of the driver state of a single
// render context. The copy is used to skip driver calls that would not change
// anything.
//
// Every state changing driver call has a method of the same name on the Shadow
// type. The method compares the requested value with the cached value and
// only forwards the call to the driver if the values differ, if the slot has
// never been set, or if the cache is not trusted. Draws, clears and read backs
// are never cached and always forward.
//
// Whether the cache can be trusted is decided by the Gate given to the Shadow.
// In practice the Gate is the lifecycle controller and the cache is trusted
// only when the render context is bound. A Shadow without a Gate never skips
// a call.
//
// A Shadow is not safe for concurrent use. It must only be used by the
// goroutine that has the render context bound. When compiled with the
// assertions build tag this is checked on every call.
package shadow
