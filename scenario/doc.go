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


// Package scenario describes and plays a synthetic workload through the relay.
// A scenario is a YAML file naming the payloads the producer submits for every
// frame, the driver objects that are created whenever the render context is
// reset, and the operations the render thread performs for every frame.
//
// An example scenario:
//
//	name: textured quad
//	frames: 120
//	payloads: [4096, 512]
//	lose_context_every: 50
//	resources:
//	    textures: 2
//	    programs: 1
//	    framebuffers: 1
//	ops:
//	    - framebuffer: 0
//	    - viewport: [0, 0, 320, 240]
//	    - enable: blend
//	    - blend: [src_alpha, one_minus_src_alpha]
//	    - use_program: 0
//	    - uniform: {name: tint, values: [1, 1, 1, 1]}
//	    - bind_texture: {unit: 0, texture: 1}
//	    - clear: [color, depth]
//	    - draw: {mode: triangles, count: 6}
//	    - framebuffer: -1
//
// The operations are applied through the state shadow so the same frame
// repeated many times should result in mostly skipped driver calls. The
// Report returned by Run() shows how many.
//
// Payloads are uploaded to a vertex buffer as they arrive. The contents of
// the payload are not interpreted.
package scenario
