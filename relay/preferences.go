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

package relay

import (
	"strings"

	"github.com/relay64/relay64/paths"
	"github.com/relay64/relay64/prefs"
	"github.com/relay64/relay64/shadow"
)

// Preferences defines and collates all the preference values used by the
// relay.
type Preferences struct {
	dsk *prefs.Disk

	// size of the staging pool in bytes. must be a multiple of four
	PoolCapacity prefs.Int

	// number of allocations that can be waiting for the render thread
	HandoffDepth prefs.Int

	// the maximum number of texture units tracked by the shadow
	TextureUnits prefs.Int

	// the number of uniform locations cached for each program
	UniformBound prefs.Int

	// discard depth attachments when a framebuffer is unbound
	InvalidateDepth prefs.Bool

	// cache uniform values
	CacheUniforms prefs.Bool
}

func (p *Preferences) String() string {
	s := strings.Builder{}
	s.WriteString("pool capacity: ")
	s.WriteString(p.PoolCapacity.String())
	s.WriteString("\nhandoff depth: ")
	s.WriteString(p.HandoffDepth.String())
	s.WriteString("\ntexture units: ")
	s.WriteString(p.TextureUnits.String())
	s.WriteString("\nuniform bound: ")
	s.WriteString(p.UniformBound.String())
	s.WriteString("\ninvalidate depth: ")
	s.WriteString(p.InvalidateDepth.String())
	s.WriteString("\ncache uniforms: ")
	s.WriteString(p.CacheUniforms.String())
	return s.String()
}

// default preference values.
const (
	defaultPoolCapacity = 4 * 1024 * 1024
	defaultHandoffDepth = 256
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the prefs file in the resource
// directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() but with an explicit
// path for the prefs file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.PoolCapacity.SetRange(4, 1<<30)
	p.HandoffDepth.SetRange(1, 1<<16)
	p.TextureUnits.SetRange(1, shadow.DefaultTextureUnits)
	p.UniformBound.SetRange(1, 1024)
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("relay.poolcapacity", &p.PoolCapacity)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("relay.handoffdepth", &p.HandoffDepth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("shadow.textureunits", &p.TextureUnits)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("shadow.uniformbound", &p.UniformBound)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("shadow.invalidatedepth", &p.InvalidateDepth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("shadow.cacheuniforms", &p.CacheUniforms)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.PoolCapacity.Set(defaultPoolCapacity)
	_ = p.HandoffDepth.Set(defaultHandoffDepth)
	_ = p.TextureUnits.Set(shadow.DefaultTextureUnits)
	_ = p.UniformBound.Set(shadow.DefaultUniformBound)
	_ = p.InvalidateDepth.Set(true)
	_ = p.CacheUniforms.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// ShadowOptions returns the options for a new state shadow.
func (p *Preferences) ShadowOptions() shadow.Options {
	return shadow.Options{
		TextureUnits:    p.TextureUnits.Get().(int),
		UniformBound:    p.UniformBound.Get().(int),
		InvalidateDepth: p.InvalidateDepth.Get().(bool),
		CacheUniforms:   p.CacheUniforms.Get().(bool),
	}
}
