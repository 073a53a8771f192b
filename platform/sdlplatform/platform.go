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


// Package sdlplatform is a windowed front-end using SDL.
package sdlplatform

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/environment"
	"github.com/relay64/relay64/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// Platform is the SDL front-end.
type Platform struct {
	title         string
	width, height int32

	window  *sdl.Window
	context sdl.GLContext
	perm    logger.Permission

	// the render context negotiated by the core
	hw *environment.HWRender
}

// NewPlatform is the preferred method of initialisation for the Platform
// type. The window is not created until the core has negotiated a render
// context and CreateContext() is called.
func NewPlatform(title string, width, height int32, perm logger.Permission) (*Platform, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(perm, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	return &Platform{
		title:  title,
		width:  width,
		height: height,
		perm:   perm,
	}, nil
}

func getProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

// Environment is the environment function for the core.
func (plt *Platform) Environment(cmd environment.Command, data any) bool {
	switch cmd {
	case environment.SetHWRender:
		hw, ok := data.(*environment.HWRender)
		if !ok {
			return false
		}
		if err := plt.attributes(hw); err != nil {
			logger.Log(plt.perm, "sdl", err)
			return false
		}
		hw.GetProcAddress = getProcAddress
		hw.Label = "sdl"
		plt.hw = hw
		return true

	case environment.GetLogInterface:
		logif, ok := data.(*environment.LogInterface)
		if !ok {
			return false
		}
		logif.Permission = plt.perm
		return true

	case environment.SetMessage:
		msg, ok := data.(*environment.Message)
		if !ok {
			return false
		}
		logger.Log(plt.perm, "sdl", msg.Text)
		if plt.window != nil {
			plt.window.SetTitle(fmt.Sprintf("%s (%s)", plt.title, msg.Text))
		}
		return true
	}

	return false
}

// the attributes must be set before the window is created.
func (plt *Platform) attributes(hw *environment.HWRender) error {
	type attribute struct {
		attr  sdl.GLattr
		value int
	}

	attrs := []attribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, hw.VersionMajor},
		{sdl.GL_CONTEXT_MINOR_VERSION, hw.VersionMinor},
	}

	switch hw.ContextType {
	case environment.ContextOpenGLCore:
		attrs = append(attrs,
			attribute{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
			attribute{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE})
	case environment.ContextOpenGLES3:
		attrs = append(attrs, attribute{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_ES})
	default:
		return curated.Errorf("sdl: unsupported context type: %s", hw.ContextType)
	}

	if hw.Depth {
		attrs = append(attrs, attribute{sdl.GL_DEPTH_SIZE, 24})
	}
	if hw.Stencil {
		attrs = append(attrs, attribute{sdl.GL_STENCIL_SIZE, 8})
	}

	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
	}

	return nil
}

func (plt *Platform) negotiated() error {
	if plt.hw == nil {
		return curated.Errorf("sdl: no render context has been negotiated")
	}
	return nil
}

func (plt *Platform) createContext() error {
	var err error
	plt.context, err = plt.window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = plt.window.GLMakeCurrent(plt.context)
	if err != nil {
		sdl.GLDeleteContext(plt.context)
		plt.context = nil
		return fmt.Errorf("sdl: %w", err)
	}
	return nil
}

func (plt *Platform) deleteContext() {
	if plt.context != nil {
		sdl.GLDeleteContext(plt.context)
		plt.context = nil
	}
}

// CreateContext creates the window and the render context, and tells the core
// that the context exists.
func (plt *Platform) CreateContext() error {
	if err := plt.negotiated(); err != nil {
		return err
	}

	if plt.window == nil {
		var err error
		plt.window, err = sdl.CreateWindow(plt.title,
			sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, plt.width, plt.height,
			sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI)
		if err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
	}

	if err := plt.createContext(); err != nil {
		return err
	}

	major, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	minor, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	logger.Logf(plt.perm, "sdl", "using GL version %d.%d", major, minor)

	plt.hw.ContextReset()
	return nil
}

// LoseContext deletes the render context and creates a new one. The window is
// not affected.
func (plt *Platform) LoseContext() error {
	if err := plt.negotiated(); err != nil {
		return err
	}
	plt.hw.ContextDestroy()
	plt.deleteContext()
	if err := plt.createContext(); err != nil {
		return err
	}
	plt.hw.ContextReset()
	return nil
}

// DestroyContext tells the core that the render context is about to be
// destroyed and then destroys it.
func (plt *Platform) DestroyContext() error {
	if err := plt.negotiated(); err != nil {
		return err
	}
	plt.hw.ContextDestroy()
	plt.deleteContext()
	return nil
}

// Service the window. Returns false if the user has asked to quit.
func (plt *Platform) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}
		}
	}
	return true
}

// Swap the front and back buffers of the window.
func (plt *Platform) Swap() {
	if plt.window != nil && plt.context != nil {
		plt.window.GLSwap()
	}
}

// Destroy the window and quit SDL.
func (plt *Platform) Destroy() error {
	plt.deleteContext()
	if plt.window != nil {
		if err := plt.window.Destroy(); err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
		plt.window = nil
	}
	sdl.Quit()
	return nil
}
