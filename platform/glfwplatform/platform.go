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


// Package glfwplatform is a windowed front-end using GLFW.
//
// The render context of a GLFW window cannot be replaced so loss of the render
// context is simulated by destroying the window and creating a new one.
package glfwplatform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/environment"
	"github.com/relay64/relay64/logger"
)

// Platform is the GLFW front-end.
type Platform struct {
	title         string
	width, height int

	window *glfw.Window
	perm   logger.Permission

	// the render context negotiated by the core
	hw *environment.HWRender

	// the most recent message sent by the core with the SetMessage command
	message string
}

// NewPlatform is the preferred method of initialisation for the Platform
// type. The window is not created until the core has negotiated a render
// context and CreateContext() is called.
func NewPlatform(title string, width, height int, perm logger.Permission) (*Platform, error) {
	// GLFW must be used from the main thread
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}

	logger.Logf(perm, "glfw", "version %s", glfw.GetVersionString())

	return &Platform{
		title:  title,
		width:  width,
		height: height,
		perm:   perm,
	}, nil
}

// Environment is the environment function for the core.
func (plt *Platform) Environment(cmd environment.Command, data any) bool {
	switch cmd {
	case environment.SetHWRender:
		hw, ok := data.(*environment.HWRender)
		if !ok {
			return false
		}
		switch hw.ContextType {
		case environment.ContextOpenGLCore, environment.ContextOpenGLES3:
		default:
			logger.Logf(plt.perm, "glfw", "unsupported context type: %s", hw.ContextType)
			return false
		}
		hw.GetProcAddress = glfw.GetProcAddress
		hw.Label = "glfw"
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
		plt.message = msg.Text
		logger.Log(plt.perm, "glfw", msg.Text)
		if plt.window != nil {
			plt.window.SetTitle(fmt.Sprintf("%s (%s)", plt.title, msg.Text))
		}
		return true
	}

	return false
}

func (plt *Platform) negotiated() error {
	if plt.hw == nil {
		return curated.Errorf("glfw: no render context has been negotiated")
	}
	return nil
}

func (plt *Platform) hints() {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, plt.hw.VersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, plt.hw.VersionMinor)

	switch plt.hw.ContextType {
	case environment.ContextOpenGLCore:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	case environment.ContextOpenGLES3:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	}

	if plt.hw.Depth {
		glfw.WindowHint(glfw.DepthBits, 24)
	} else {
		glfw.WindowHint(glfw.DepthBits, 0)
	}
	if plt.hw.Stencil {
		glfw.WindowHint(glfw.StencilBits, 8)
	} else {
		glfw.WindowHint(glfw.StencilBits, 0)
	}
}

func (plt *Platform) createWindow() error {
	plt.hints()

	title := plt.title
	if plt.message != "" {
		title = fmt.Sprintf("%s (%s)", plt.title, plt.message)
	}

	var err error
	plt.window, err = glfw.CreateWindow(plt.width, plt.height, title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	plt.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return nil
}

func (plt *Platform) destroyWindow() {
	if plt.window != nil {
		plt.window.Destroy()
		plt.window = nil
	}
}

// CreateContext creates the window and tells the core that the render context
// exists.
func (plt *Platform) CreateContext() error {
	if err := plt.negotiated(); err != nil {
		return err
	}
	if plt.window == nil {
		if err := plt.createWindow(); err != nil {
			return err
		}
	}
	plt.hw.ContextReset()
	return nil
}

// LoseContext destroys the window and creates a new one with a new render
// context.
func (plt *Platform) LoseContext() error {
	if err := plt.negotiated(); err != nil {
		return err
	}
	plt.hw.ContextDestroy()
	plt.destroyWindow()
	if err := plt.createWindow(); err != nil {
		return err
	}
	plt.hw.ContextReset()
	return nil
}

// DestroyContext tells the core that the render context is about to be
// destroyed and then destroys the window.
func (plt *Platform) DestroyContext() error {
	if err := plt.negotiated(); err != nil {
		return err
	}
	plt.hw.ContextDestroy()
	plt.destroyWindow()
	return nil
}

// Service the window. Returns false if the user has asked to quit.
func (plt *Platform) Service() bool {
	glfw.PollEvents()
	if plt.window == nil {
		return true
	}
	if plt.window.GetKey(glfw.KeyEscape) == glfw.Press {
		return false
	}
	return !plt.window.ShouldClose()
}

// Swap the front and back buffers of the window.
func (plt *Platform) Swap() {
	if plt.window != nil {
		plt.window.SwapBuffers()
	}
}

// Destroy the window and terminate GLFW.
func (plt *Platform) Destroy() error {
	plt.destroyWindow()
	glfw.Terminate()
	return nil
}
