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

// Package lifecycle controls the render context on behalf of the relay. It
// decides when the state shadow can be trusted.
//
// The front-end drives the controller through the verbs Setup(), Bind(),
// Unbind(), ContextReset() and ContextDestroy(). The controller moves between
// the states Uninitialized, Configured, Bound, Unbound and Lost:
//
//	Uninitialized --Setup--> Configured --ContextReset--> Configured
//	Configured/Unbound/Lost --Bind--> Bound --Unbind--> Unbound
//	any state after the first reset --ContextReset--> Lost
//	any state --ContextDestroy--> Lost
//
// The shadow is trusted only in the Bound state. Bind() replays the shadow
// onto the driver before entering the Bound state, so after a context loss the
// shadow is trusted again only once the replay is complete.
//
// Every verb must be called on the render thread.
package lifecycle
