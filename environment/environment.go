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

// Package environment defines the callback protocol between the relay and the
// front-end that owns the window and the render context.
//
// The relay asks the front-end for things by calling the environment function
// with a Command and a pointer to the data for that command. The function
// returns false if the front-end does not support the command or cannot
// provide what was asked for.
package environment

import (
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/logger"
)

// Label is used to name the front-end in log entries.
type Label string

// Command is the first argument to the environment function.
type Command int

// List of valid commands.
const (
	// the relay wants a hardware render context. data is *HWRender. the
	// front-end fills in the GetProcAddress and GetCurrentFramebuffer fields
	// and calls the ContextReset hook once the context exists
	SetHWRender Command = iota

	// data is *LogInterface. the front-end sets the Permission that the relay
	// should use when logging
	GetLogInterface

	// data is *Message. the front-end displays the message to the user
	SetMessage
)

func (cmd Command) String() string {
	switch cmd {
	case SetHWRender:
		return "SetHWRender"
	case GetLogInterface:
		return "GetLogInterface"
	case SetMessage:
		return "SetMessage"
	}
	return "unknown command"
}

// Func is the environment function supplied by the front-end.
type Func func(cmd Command, data any) bool

// ContextType is the type of render context being asked for.
type ContextType int

// List of valid context types.
const (
	ContextOpenGLCore ContextType = iota
	ContextOpenGLES3
)

func (ct ContextType) String() string {
	switch ct {
	case ContextOpenGLCore:
		return "OpenGL core"
	case ContextOpenGLES3:
		return "OpenGL ES3"
	}
	return "unknown context type"
}

// HWRender is the data for the SetHWRender command.
type HWRender struct {
	// filled in by the relay
	ContextType  ContextType
	VersionMajor int
	VersionMinor int
	Depth        bool
	Stencil      bool

	// hooks called by the front-end on the render thread when the context
	// has been created or reset, and immediately before the context is
	// destroyed. filled in by the relay
	ContextReset   func()
	ContextDestroy func()

	// filled in by the front-end. GetCurrentFramebuffer can be left nil, in
	// which case the default framebuffer is queried from the driver
	GetProcAddress        glapi.ProcAddressFunc
	GetCurrentFramebuffer func() uint32

	// name of the front-end. filled in by the front-end
	Label Label
}

// LogInterface is the data for the GetLogInterface command.
type LogInterface struct {
	Permission logger.Permission
}

// Message is the data for the SetMessage command.
type Message struct {
	Text string

	// number of frames to show the message for. zero means the front-end
	// should decide
	Frames int
}
