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

package shadow

import "github.com/relay64/relay64/glapi"

// Capability is the logical identifier of a driver capability. Capabilities
// are enabled and disabled with the Enable() and Disable() functions.
type Capability int

// List of capabilities tracked by the shadow.
const (
	CapBlend Capability = iota
	CapCullFace
	CapDepthTest
	CapStencilTest
	CapScissorTest
	CapPolygonOffsetFill
	CapDither
	CapSampleAlphaToCoverage
	CapSampleCoverage
	CapDepthClamp
	CapFramebufferSRGB
	CapPrimitiveRestart

	NumCapabilities
)

// capabilityTable translates between logical capabilities and driver enums.
type capabilityTable struct {
	enum    [NumCapabilities]uint32
	logical map[uint32]Capability
}

func newCapabilityTable() capabilityTable {
	t := capabilityTable{
		enum: [NumCapabilities]uint32{
			CapBlend:                 glapi.BLEND,
			CapCullFace:              glapi.CULL_FACE,
			CapDepthTest:             glapi.DEPTH_TEST,
			CapStencilTest:           glapi.STENCIL_TEST,
			CapScissorTest:           glapi.SCISSOR_TEST,
			CapPolygonOffsetFill:     glapi.POLYGON_OFFSET_FILL,
			CapDither:                glapi.DITHER,
			CapSampleAlphaToCoverage: glapi.SAMPLE_ALPHA_TO_COVERAGE,
			CapSampleCoverage:        glapi.SAMPLE_COVERAGE,
			CapDepthClamp:            glapi.DEPTH_CLAMP,
			CapFramebufferSRGB:       glapi.FRAMEBUFFER_SRGB,
			CapPrimitiveRestart:      glapi.PRIMITIVE_RESTART,
		},
		logical: make(map[uint32]Capability),
	}
	for c, e := range t.enum {
		t.logical[e] = Capability(c)
	}
	return t
}

// Enum returns the driver enum for the capability.
func (sh *Shadow) Enum(c Capability) uint32 {
	if c < 0 || c >= NumCapabilities {
		return 0
	}
	return sh.capTable.enum[c]
}

func (sh *Shadow) setCapability(cap uint32, enable bool) {
	forward := func() {
		if enable {
			sh.driver.Enable(cap)
		} else {
			sh.driver.Disable(cap)
		}
	}

	// capabilities not in the table are never cached
	c, ok := sh.capTable.logical[cap]
	if !ok {
		update(sh, slotPassthrough, nil, enable, forward)
		return
	}

	update(sh, slotCapability, sh.capabilities.at(int(c)), enable, forward)
}

// Enable mirrors the driver function of the same name.
func (sh *Shadow) Enable(cap uint32) {
	sh.setCapability(cap, true)
}

// Disable mirrors the driver function of the same name.
func (sh *Shadow) Disable(cap uint32) {
	sh.setCapability(cap, false)
}

// EnableCapability is the same as Enable() but takes a logical capability.
func (sh *Shadow) EnableCapability(c Capability) {
	if e := sh.Enum(c); e != 0 {
		sh.Enable(e)
	}
}

// DisableCapability is the same as Disable() but takes a logical capability.
func (sh *Shadow) DisableCapability(c Capability) {
	if e := sh.Enum(c); e != 0 {
		sh.Disable(e)
	}
}

// IsEnabled returns the cached state of the capability. The second return
// value is false if the capability is not cached or if the cache is not
// trusted.
func (sh *Shadow) IsEnabled(cap uint32) (bool, bool) {
	c, ok := sh.capTable.logical[cap]
	if !ok || !sh.trusted() {
		return false, false
	}
	return sh.capabilities[c].get()
}
