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

package notifications

// Notice describes events in the lifecycle of the render context.
type Notice string

// List of defined notifications.
const (
	// the front-end has provided a hardware render context for the first time
	NotifyContextCreated Notice = "NotifyContextCreated"

	// the render context has been lost. the state shadow is no longer trusted
	NotifyContextLost Notice = "NotifyContextLost"

	// the state shadow has been replayed onto the render context and is
	// trusted again
	NotifyContextRestored Notice = "NotifyContextRestored"

	// the render context has been destroyed
	NotifyContextDestroyed Notice = "NotifyContextDestroyed"

	// an optional driver entry point has not been resolved. the relay will
	// continue without it
	NotifyEntryPointUnavailable Notice = "NotifyEntryPointUnavailable"
)

// Notify is used for direct communication between the lifecycle controller
// and the front-end. The front-end should not block in the Notify()
// function. It is called on the render thread.
type Notify interface {
	Notify(notice Notice) error
}
