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
	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/environment"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/logger"
)

// Headless is a front-end without a window. Context creation, loss and
// destruction are triggered by calling the methods of the same name.
type Headless struct {
	getProcAddress glapi.ProcAddressFunc
	perm           logger.Permission

	// the render context negotiated by the core. nil until SetHWRender has
	// been received
	hw *environment.HWRender

	// messages received with the SetMessage command
	Messages []string
}

// NewHeadless is the preferred method of initialisation for the Headless
// type. The getProcAddress function is handed to the core when it asks for a
// render context.
func NewHeadless(getProcAddress glapi.ProcAddressFunc, perm logger.Permission) *Headless {
	return &Headless{
		getProcAddress: getProcAddress,
		perm:           perm,
	}
}

// Environment is the environment function for the core.
func (h *Headless) Environment(cmd environment.Command, data any) bool {
	switch cmd {
	case environment.SetHWRender:
		hw, ok := data.(*environment.HWRender)
		if !ok || h.getProcAddress == nil {
			return false
		}
		hw.GetProcAddress = h.getProcAddress
		hw.Label = "headless"
		h.hw = hw
		return true

	case environment.GetLogInterface:
		logif, ok := data.(*environment.LogInterface)
		if !ok {
			return false
		}
		logif.Permission = h.perm
		return true

	case environment.SetMessage:
		msg, ok := data.(*environment.Message)
		if !ok {
			return false
		}
		h.Messages = append(h.Messages, msg.Text)
		logger.Log(h.perm, "headless", msg.Text)
		return true
	}

	return false
}

func (h *Headless) negotiated() error {
	if h.hw == nil {
		return curated.Errorf("headless: no render context has been negotiated")
	}
	return nil
}

// CreateContext tells the core that the render context exists.
func (h *Headless) CreateContext() error {
	if err := h.negotiated(); err != nil {
		return err
	}
	h.hw.ContextReset()
	return nil
}

// LoseContext simulates the loss of the render context. The context is
// destroyed and then created again.
func (h *Headless) LoseContext() error {
	if err := h.negotiated(); err != nil {
		return err
	}
	h.hw.ContextDestroy()
	h.hw.ContextReset()
	return nil
}

// DestroyContext tells the core that the render context is about to be
// destroyed.
func (h *Headless) DestroyContext() error {
	if err := h.negotiated(); err != nil {
		return err
	}
	h.hw.ContextDestroy()
	return nil
}
