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
	"context"
	"fmt"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/digest"
	"github.com/relay64/relay64/environment"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/lifecycle"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/shadow"
)

// FrontEnd is the part of a front-end that the Player needs. The
// relay.Headless type implements this interface as do the windowed platforms.
type FrontEnd interface {
	Environment(cmd environment.Command, data any) bool
	CreateContext() error
	LoseContext() error
	DestroyContext() error
}

const vertexShader = `#version 150 core
in vec2 position;
void main() {
	gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentShader = `#version 150 core
uniform vec4 tint;
uniform sampler2D image;
out vec4 colour;
void main() {
	colour = tint * texture(image, vec2(0.5));
}
`

// size of the textures created for a scenario
const textureSize = 4

type uniformKey struct {
	program uint32
	name    string
}

// Player plays the frames of a scenario on the render thread.
type Player struct {
	sc      *Scenario
	ctrl    *lifecycle.Controller
	sh      *shadow.Shadow
	session *relay.Session
	fe      FrontEnd

	// driver objects. recreated on every context reset
	vertices     uint32
	vertexArray  uint32
	textures     []uint32
	programs     []uint32
	framebuffers []uint32
	attachments  []uint32
	locations    map[uniformKey]int32

	// the program selected by the most recent use_program operation
	program uint32

	// first error in the context reset callback
	resetErr error

	report Report
	digest *digest.Payloads
}

// NewPlayer is the preferred method of initialisation for the Player type.
func NewPlayer(sc *Scenario, ctrl *lifecycle.Controller, session *relay.Session, fe FrontEnd) *Player {
	return &Player{
		sc:        sc,
		ctrl:      ctrl,
		sh:        ctrl.Shadow(),
		session:   session,
		fe:        fe,
		locations: make(map[uniformKey]int32),
		report: Report{
			Name: sc.Name,
		},
		digest: digest.NewPayloads(),
	}
}

// Params returns the parameters for lifecycle.Controller.Setup().
func (p *Player) Params() lifecycle.Params {
	return lifecycle.Params{
		Environment:    p.fe.Environment,
		ContextReset:   p.createResources,
		ContextDestroy: p.deleteResources,
		ContextType:    environment.ContextOpenGLCore,
		Depth:          true,
	}
}

// Report returns the report for the frames played so far.
func (p *Player) Report() Report {
	r := p.report
	r.Total = p.sh.Total()
	r.Counters = p.sh.Counters()
	r.Pool = p.session.Pool().Stats()
	r.RenderDigest = p.digest.Hash()
	return r
}

func (p *Player) createResources() {
	p.program = 0
	clear(p.locations)

	p.vertices = p.sh.GenBuffers(1)[0]
	// vertex array objects are optional. without them the attributes are
	// set on the driver's default state
	p.vertexArray = 0
	if va := p.sh.GenVertexArrays(1); len(va) > 0 {
		p.vertexArray = va[0]
		p.sh.BindVertexArray(p.vertexArray)
	}
	p.sh.BindBuffer(glapi.ARRAY_BUFFER, p.vertices)
	p.sh.EnableVertexAttribArray(0)
	p.sh.VertexAttribPointer(0, 2, glapi.FLOAT, false, 8, 0)

	p.textures = p.textures[:0]
	if n := p.sc.Resources.Textures; n > 0 {
		p.textures = p.sh.GenTextures(int32(n))
		pixels := make([]byte, textureSize*textureSize*4)
		for i := range pixels {
			pixels[i] = 0xff
		}
		p.sh.ActiveTexture(glapi.TEXTURE0)
		for _, t := range p.textures {
			p.sh.BindTexture(glapi.TEXTURE_2D, t)
			p.sh.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_MIN_FILTER, glapi.NEAREST)
			p.sh.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_MAG_FILTER, glapi.NEAREST)
			p.sh.TexImage2D(glapi.TEXTURE_2D, 0, glapi.RGBA, textureSize, textureSize, glapi.RGBA, glapi.UNSIGNED_BYTE, pixels)
		}
	}

	p.programs = p.programs[:0]
	for range p.sc.Resources.Programs {
		prog, err := p.compileProgram()
		if err != nil {
			logger.Log(logger.Allow, "scenario", err)
			if p.resetErr == nil {
				p.resetErr = err
			}
		}
		p.programs = append(p.programs, prog)
	}

	p.framebuffers = p.framebuffers[:0]
	p.attachments = p.attachments[:0]
	if n := p.sc.Resources.Framebuffers; n > 0 {
		p.framebuffers = p.sh.GenFramebuffers(int32(n))

		// a colour and a depth texture for every framebuffer
		p.attachments = p.sh.GenTextures(int32(n * 2))
		p.sh.ActiveTexture(glapi.TEXTURE0)
		for i, fb := range p.framebuffers {
			colour := p.attachments[i*2]
			depth := p.attachments[i*2+1]

			p.sh.BindTexture(glapi.TEXTURE_2D, colour)
			p.sh.TexImage2D(glapi.TEXTURE_2D, 0, glapi.RGBA, textureSize, textureSize, glapi.RGBA, glapi.UNSIGNED_BYTE, nil)
			p.sh.BindTexture(glapi.TEXTURE_2D, depth)
			p.sh.TexImage2D(glapi.TEXTURE_2D, 0, glapi.DEPTH_COMPONENT24, textureSize, textureSize, glapi.DEPTH_COMPONENT, glapi.UNSIGNED_INT, nil)

			p.sh.BindFramebuffer(glapi.FRAMEBUFFER, fb)
			p.sh.FramebufferTexture2D(glapi.FRAMEBUFFER, glapi.COLOR_ATTACHMENT0, glapi.TEXTURE_2D, colour, 0)
			p.sh.FramebufferTexture2D(glapi.FRAMEBUFFER, glapi.DEPTH_ATTACHMENT, glapi.TEXTURE_2D, depth, 0)
		}
		p.sh.BindFramebuffer(glapi.FRAMEBUFFER, 0)
	}

	p.sh.BindTexture(glapi.TEXTURE_2D, 0)

	logger.Logf(logger.Allow, "scenario", "created %d textures, %d programs, %d framebuffers",
		len(p.textures), len(p.programs), len(p.framebuffers))
}

func (p *Player) compileShader(xtype uint32, source string) (uint32, error) {
	sh := p.sh.CreateShader(xtype)
	p.sh.ShaderSource(sh, source)
	p.sh.CompileShader(sh)
	if p.sh.GetShaderiv(sh, glapi.COMPILE_STATUS) == 0 {
		p.sh.DeleteShader(sh)
		return 0, curated.Errorf(PlaybackError, fmt.Sprintf("shader %#x did not compile", xtype))
	}
	return sh, nil
}

func (p *Player) compileProgram() (uint32, error) {
	vert, err := p.compileShader(glapi.VERTEX_SHADER, vertexShader)
	if err != nil {
		return 0, err
	}
	defer p.sh.DeleteShader(vert)

	frag, err := p.compileShader(glapi.FRAGMENT_SHADER, fragmentShader)
	if err != nil {
		return 0, err
	}
	defer p.sh.DeleteShader(frag)

	prog := p.sh.CreateProgram()
	p.sh.AttachShader(prog, vert)
	p.sh.AttachShader(prog, frag)
	p.sh.LinkProgram(prog)
	if p.sh.GetProgramiv(prog, glapi.LINK_STATUS) == 0 {
		p.sh.DeleteProgram(prog)
		return 0, curated.Errorf(PlaybackError, "program did not link")
	}

	return prog, nil
}

// the context is still current when the destroy callback is called so
// objects are deleted properly.
func (p *Player) deleteResources() {
	if len(p.framebuffers) > 0 {
		p.sh.DeleteFramebuffers(p.framebuffers)
		p.sh.DeleteTextures(p.attachments)
	}
	for _, prog := range p.programs {
		if prog != 0 {
			p.sh.DeleteProgram(prog)
		}
	}
	if len(p.textures) > 0 {
		p.sh.DeleteTextures(p.textures)
	}
	if p.vertexArray != 0 {
		p.sh.DeleteVertexArrays([]uint32{p.vertexArray})
	}
	p.sh.DeleteBuffers([]uint32{p.vertices})

	p.framebuffers = p.framebuffers[:0]
	p.attachments = p.attachments[:0]
	p.programs = p.programs[:0]
	p.textures = p.textures[:0]
	p.vertices = 0
	p.vertexArray = 0
	p.program = 0
}

// upload is the relay.Handler for the session.
func (p *Player) upload(payload []byte) error {
	if payload == nil {
		return curated.Errorf(PlaybackError, "payload is no longer staged")
	}
	p.sh.BindBuffer(glapi.ARRAY_BUFFER, p.vertices)
	p.sh.BufferData(glapi.ARRAY_BUFFER, payload, glapi.STREAM_DRAW)
	p.report.Payloads++
	p.report.PayloadBytes += len(payload)
	_, _ = p.digest.Write(payload)
	return nil
}

func (p *Player) bindTexture(b TextureBinding) {
	var t uint32
	if b.Texture >= 0 {
		t = p.textures[b.Texture]
	}
	p.sh.ActiveTexture(glapi.TEXTURE0 + uint32(b.Unit))
	p.sh.BindTexture(glapi.TEXTURE_2D, t)
}

func (p *Player) useProgram(idx int) {
	p.program = 0
	if idx >= 0 {
		p.program = p.programs[idx]
	}
	p.sh.UseProgram(p.program)
}

func (p *Player) bindFramebuffer(idx int) {
	var fb uint32
	if idx >= 0 {
		fb = p.framebuffers[idx]
	}
	p.sh.BindFramebuffer(glapi.FRAMEBUFFER, fb)
}

// uniform locations are looked up once per program and name.
func (p *Player) uniform(u Uniform) {
	if p.program == 0 {
		return
	}

	k := uniformKey{program: p.program, name: u.Name}
	loc, ok := p.locations[k]
	if !ok {
		loc = p.sh.GetUniformLocation(p.program, u.Name)
		p.locations[k] = loc
	}
	if loc < 0 {
		return
	}

	v := u.Values
	switch len(v) {
	case 1:
		p.sh.Uniform1f(loc, v[0])
	case 2:
		p.sh.Uniform2f(loc, v[0], v[1])
	case 3:
		p.sh.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		p.sh.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (p *Player) draw(d Draw) {
	p.sh.DrawArrays(uint32(d.Mode), d.First, d.Count)
}

// Frame plays a single frame. The frame number counts from zero.
//
// The render context is bound, the payloads for the frame are uploaded and
// then the scenario's operations are applied. The context is unbound before
// returning. If the scenario says so, the render context is then lost.
//
// Must only be called from the render thread.
func (p *Player) Frame(ctx context.Context, frame int) error {
	if p.resetErr != nil {
		return p.resetErr
	}

	if err := p.ctrl.Bind(); err != nil {
		return err
	}

	// payloads belonging to the following frame may be uploaded too if the
	// producer is ahead of the render thread
	want := (frame + 1) * len(p.sc.Payloads)
	for p.report.Payloads < want {
		if _, err := p.session.ServiceWait(ctx, p.upload); err != nil {
			p.ctrl.Unbind()
			return err
		}
	}

	for _, s := range p.sc.steps {
		s(p)
	}

	p.ctrl.Unbind()
	p.report.Frames++

	every := p.sc.LoseContextEvery
	if every > 0 && (frame+1)%every == 0 && frame+1 < p.sc.Frames {
		if err := p.fe.LoseContext(); err != nil {
			return err
		}
		p.report.ContextLosses++
	}

	return nil
}
