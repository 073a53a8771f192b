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


// Package random should be used in preference to the math/rand package when
// payload content is generated.
//
// Fill() writes bytes that depend only on the frame and the index of the
// payload within the frame, together with the base seed. A payload can
// therefore be regenerated after the fact, which is how a test knows what the
// render thread should have received.
//
// If the same content is required every single time then set ZeroSeed to true.
// This is useful for testing purposes.
package random
