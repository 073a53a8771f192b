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


// Package performance contains helper functions relating to performance.
//
// RunProfiler() runs a function while the requested profiles are gathered.
// The profiles are written to files named after the filenameHeader argument.
//
// CalcFPS() calculates the frames-per-second of a completed run, in aggregate.
// It is not suitable for live monitoring.
//
// The limiter sub-package stalls the render loop of a windowed front-end so
// that frames are played at a fixed rate.
package performance
