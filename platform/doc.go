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


// Package platform contains the windowed front-ends for the relay. Each
// front-end creates a window with a render context of the type requested by
// the core through the environment.SetHWRender command.
//
// The front-ends implement the same methods as relay.Headless, so that a
// scenario can be played on a real driver. Loss of the render context is
// simulated by deleting the context and creating a new one.
//
// Every method must be called from the main thread.
package platform
