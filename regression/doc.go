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


// Package regression facilitates the regression testing of the relay. By
// adding test results to a database, the tests can be rerun automatically and
// checked for consistancy.
//
// The digest test plays a scenario for a set number of frames with the
// recording driver. Payload content is generated with a zero seed so that it
// is the same every time. The digest of the payloads as seen by the render
// thread is saved to the database along with the number of driver calls that
// were forwarded and skipped by the state shadow.
//
// A change in the digest means that payloads are being corrupted or reordered
// between the producer and the render thread. A change in the driver call
// totals means that the behaviour of the state shadow has changed.
package regression
