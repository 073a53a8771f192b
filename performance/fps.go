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


package performance

import "time"

// CalcFPS takes the number of frames and the duration of the run and returns
// the frames-per-second. If a target rate is given (greater than zero) the
// accuracy of the measured rate is returned as a percentage of the target.
func CalcFPS(numFrames int, duration time.Duration, target float64) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration.Seconds()
	if target > 0 {
		accuracy = 100 * fps / target
	}
	return fps, accuracy
}
