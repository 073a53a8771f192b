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


package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/shadow"
	"gopkg.in/yaml.v3"
)

// Sentinal error patterns.
const (
	InvalidScenario = "scenario: %s: %v"
	PlaybackError   = "scenario: playback: %v"
)

// Resources is the number of each type of driver object that is created every
// time the render context is reset.
type Resources struct {
	Textures     int `yaml:"textures"`
	Programs     int `yaml:"programs"`
	Framebuffers int `yaml:"framebuffers"`
}

// TextureBinding is the argument for the bind_texture operation. Texture is
// an index into the textures created for the scenario.
type TextureBinding struct {
	Unit    int `yaml:"unit"`
	Texture int `yaml:"texture"`
}

// Uniform is the argument for the uniform operation. Between one and four
// values.
type Uniform struct {
	Name   string    `yaml:"name"`
	Values []float32 `yaml:"values"`
}

// Draw is the argument for the draw operation.
type Draw struct {
	Mode  Primitive `yaml:"mode"`
	First int32     `yaml:"first"`
	Count int32     `yaml:"count"`
}

// Op is a single operation performed by the render thread. Exactly one field
// must be set.
//
// UseProgram and Framebuffer are indexes into the objects created for the
// scenario. An index of -1 unbinds the program or binds the default
// framebuffer.
type Op struct {
	Viewport   []int32       `yaml:"viewport,omitempty"`
	Scissor    []int32       `yaml:"scissor,omitempty"`
	Enable     *Capability   `yaml:"enable,omitempty"`
	Disable    *Capability   `yaml:"disable,omitempty"`
	Blend      []BlendFactor `yaml:"blend,omitempty"`
	DepthFunc  *CompareFunc  `yaml:"depth_func,omitempty"`
	ClearColor []float32     `yaml:"clear_color,omitempty"`
	Clear      *ClearMask    `yaml:"clear,omitempty"`

	BindTexture *TextureBinding `yaml:"bind_texture,omitempty"`
	UseProgram  *int            `yaml:"use_program,omitempty"`
	Framebuffer *int            `yaml:"framebuffer,omitempty"`
	Uniform     *Uniform        `yaml:"uniform,omitempty"`
	Draw        *Draw           `yaml:"draw,omitempty"`
}

// Scenario is a synthetic workload for the relay.
type Scenario struct {
	Name string `yaml:"name"`

	// number of frames to play
	Frames int `yaml:"frames"`

	// size in bytes of every payload submitted by the producer for each frame
	Payloads []int `yaml:"payloads"`

	// size of the staging pool. zero means that the preference value is used
	Pool int `yaml:"pool,omitempty"`

	// the render context is lost after every N frames. zero means the
	// context is never lost
	LoseContextEvery int `yaml:"lose_context_every,omitempty"`

	Resources Resources `yaml:"resources"`
	Ops       []Op      `yaml:"ops"`

	// ops compiled by validate()
	steps []step
}

// Load a scenario from a YAML file.
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(InvalidScenario, filename, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return sc, nil
}

// Parse a scenario from YAML data.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, curated.Errorf(InvalidScenario, "yaml", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// PerFrame returns the total number of payload bytes submitted for each frame.
func (sc *Scenario) PerFrame() int {
	var n int
	for _, sz := range sc.Payloads {
		n += sz
	}
	return n
}

// Apply the scenario's overrides to the preferences.
func (sc *Scenario) Apply(prefs *relay.Preferences) error {
	if sc.Pool == 0 {
		return nil
	}
	if err := prefs.PoolCapacity.Set(sc.Pool); err != nil {
		return curated.Errorf(InvalidScenario, "pool", err)
	}
	return nil
}

func (sc *Scenario) validate() error {
	if sc.Frames <= 0 {
		return curated.Errorf(InvalidScenario, "frames", "must be at least one")
	}
	if sc.LoseContextEvery < 0 {
		return curated.Errorf(InvalidScenario, "lose_context_every", "cannot be negative")
	}
	if sc.Pool < 0 || sc.Pool%4 != 0 {
		return curated.Errorf(InvalidScenario, "pool", "must be a positive multiple of four")
	}
	for i, sz := range sc.Payloads {
		if sz <= 0 {
			return curated.Errorf(InvalidScenario, fmt.Sprintf("payload %d", i), "must be at least one byte")
		}
		if sc.Pool > 0 && sz > sc.Pool {
			return curated.Errorf(InvalidScenario, fmt.Sprintf("payload %d", i), "larger than the pool")
		}
	}
	if sc.Resources.Textures < 0 || sc.Resources.Programs < 0 || sc.Resources.Framebuffers < 0 {
		return curated.Errorf(InvalidScenario, "resources", "cannot be negative")
	}

	sc.steps = sc.steps[:0]
	for i, op := range sc.Ops {
		s, err := sc.compile(op)
		if err != nil {
			return curated.Errorf(InvalidScenario, fmt.Sprintf("op %d", i), err)
		}
		sc.steps = append(sc.steps, s)
	}

	return nil
}

// step is a compiled Op.
type step func(p *Player)

func checkIndex(field string, idx int, count int, allowNone bool) error {
	if allowNone && idx == -1 {
		return nil
	}
	if idx < 0 || idx >= count {
		return fmt.Errorf("%s index %d out of range (%d created)", field, idx, count)
	}
	return nil
}

func (sc *Scenario) compile(op Op) (step, error) {
	var s step
	var set int

	if op.Viewport != nil {
		set++
		v := op.Viewport
		if len(v) != 4 {
			return nil, fmt.Errorf("viewport needs four values")
		}
		s = func(p *Player) { p.sh.Viewport(v[0], v[1], v[2], v[3]) }
	}
	if op.Scissor != nil {
		set++
		v := op.Scissor
		if len(v) != 4 {
			return nil, fmt.Errorf("scissor needs four values")
		}
		s = func(p *Player) { p.sh.Scissor(v[0], v[1], v[2], v[3]) }
	}
	if op.Enable != nil {
		set++
		c := uint32(*op.Enable)
		s = func(p *Player) { p.sh.Enable(c) }
	}
	if op.Disable != nil {
		set++
		c := uint32(*op.Disable)
		s = func(p *Player) { p.sh.Disable(c) }
	}
	if op.Blend != nil {
		set++
		switch len(op.Blend) {
		case 2:
			src, dst := uint32(op.Blend[0]), uint32(op.Blend[1])
			s = func(p *Player) { p.sh.BlendFunc(src, dst) }
		case 4:
			b := op.Blend
			s = func(p *Player) { p.sh.BlendFuncSeparate(uint32(b[0]), uint32(b[1]), uint32(b[2]), uint32(b[3])) }
		default:
			return nil, fmt.Errorf("blend needs two or four factors")
		}
	}
	if op.DepthFunc != nil {
		set++
		f := uint32(*op.DepthFunc)
		s = func(p *Player) { p.sh.DepthFunc(f) }
	}
	if op.ClearColor != nil {
		set++
		c := op.ClearColor
		if len(c) != 4 {
			return nil, fmt.Errorf("clear_color needs four values")
		}
		s = func(p *Player) { p.sh.ClearColor(c[0], c[1], c[2], c[3]) }
	}
	if op.Clear != nil {
		set++
		m := uint32(*op.Clear)
		if m == 0 {
			return nil, fmt.Errorf("clear needs at least one buffer")
		}
		s = func(p *Player) { p.sh.Clear(m) }
	}
	if op.BindTexture != nil {
		set++
		b := *op.BindTexture
		if b.Unit < 0 || b.Unit >= shadow.DefaultTextureUnits {
			return nil, fmt.Errorf("texture unit %d out of range", b.Unit)
		}
		if err := checkIndex("texture", b.Texture, sc.Resources.Textures, true); err != nil {
			return nil, err
		}
		s = func(p *Player) { p.bindTexture(b) }
	}
	if op.UseProgram != nil {
		set++
		idx := *op.UseProgram
		if err := checkIndex("program", idx, sc.Resources.Programs, true); err != nil {
			return nil, err
		}
		s = func(p *Player) { p.useProgram(idx) }
	}
	if op.Framebuffer != nil {
		set++
		idx := *op.Framebuffer
		if err := checkIndex("framebuffer", idx, sc.Resources.Framebuffers, true); err != nil {
			return nil, err
		}
		s = func(p *Player) { p.bindFramebuffer(idx) }
	}
	if op.Uniform != nil {
		set++
		u := *op.Uniform
		if u.Name == "" {
			return nil, fmt.Errorf("uniform has no name")
		}
		if len(u.Values) < 1 || len(u.Values) > 4 {
			return nil, fmt.Errorf("uniform needs between one and four values")
		}
		s = func(p *Player) { p.uniform(u) }
	}
	if op.Draw != nil {
		set++
		d := *op.Draw
		if d.Count <= 0 || d.First < 0 {
			return nil, fmt.Errorf("draw needs a positive count")
		}
		s = func(p *Player) { p.draw(d) }
	}

	switch set {
	case 0:
		return nil, fmt.Errorf("empty operation")
	case 1:
		return s, nil
	}
	return nil, fmt.Errorf("more than one operation in the same entry")
}
