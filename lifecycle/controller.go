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

package lifecycle

import (
	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/environment"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/notifications"
	"github.com/relay64/relay64/shadow"
)

// Params for the Setup() verb.
type Params struct {
	// the environment function of the front-end. required
	Environment environment.Func

	// called after the controller has handled a context reset. the core
	// should create its driver objects in this callback
	ContextReset func()

	// called before the controller handles a context destruction
	ContextDestroy func()

	ContextType environment.ContextType
	Stencil     bool
	Depth       bool
}

// Controller orchestrates the render context and the state shadow.
type Controller struct {
	driver glapi.Driver
	shadow *shadow.Shadow
	notify notifications.Notify

	state  State
	params Params

	// the data for the SetHWRender command. the front-end fills in fields of
	// the same instance
	hw *environment.HWRender

	// number of context resets since the most recent Setup()
	resets int

	perm logger.Permission
}

// NewController is the preferred method of initialisation for the Controller
// type. The notify argument can be nil.
func NewController(driver glapi.Driver, opts shadow.Options, notify notifications.Notify) *Controller {
	c := &Controller{
		driver: driver,
		notify: notify,
		perm:   logger.Allow,
	}
	c.shadow = shadow.NewShadow(driver, c, opts)
	return c
}

// Shadow returns the state shadow managed by the controller.
func (c *Controller) Shadow() *shadow.Shadow {
	return c.shadow
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Trusted implements the shadow.Gate interface.
func (c *Controller) Trusted() bool {
	return c.state == Bound
}

func (c *Controller) setState(s State) {
	if s != c.state {
		logger.Logf(c.perm, "lifecycle", "%s -> %s", c.state, s)
	}
	c.state = s
}

func (c *Controller) sendNotification(notice notifications.Notice) {
	if c.notify == nil {
		return
	}
	if err := c.notify.Notify(notice); err != nil {
		logger.Log(c.perm, "lifecycle", err)
	}
}

// Setup negotiates a hardware render context with the front-end and prepares
// the shadow. The driver itself is not touched until the front-end signals
// that the context exists by calling the ContextReset hook.
func (c *Controller) Setup(params Params) error {
	if params.Environment == nil {
		return curated.Errorf(ConfigurationError, "no environment callback")
	}

	var logif environment.LogInterface
	if params.Environment(environment.GetLogInterface, &logif) && logif.Permission != nil {
		c.perm = logif.Permission
	}

	hw := &environment.HWRender{
		ContextType:    params.ContextType,
		VersionMajor:   3,
		VersionMinor:   2,
		Depth:          params.Depth,
		Stencil:        params.Stencil,
		ContextReset:   c.contextResetHook,
		ContextDestroy: c.ContextDestroy,
	}
	if params.ContextType == environment.ContextOpenGLES3 {
		hw.VersionMinor = 0
	}

	if !params.Environment(environment.SetHWRender, hw) {
		msg := "graphics backend unavailable"
		params.Environment(environment.SetMessage, &environment.Message{Text: msg})
		return curated.Errorf(ConfigurationError, msg)
	}

	c.params = params
	c.hw = hw
	c.resets = 0
	c.shadow.Zero()
	c.setState(Configured)

	logger.Logf(c.perm, "lifecycle", "%s context requested from %s", hw.ContextType, hw.Label)

	return nil
}

// the ContextReset field of environment.HWRender has no return value.
func (c *Controller) contextResetHook() {
	if err := c.ContextReset(); err != nil {
		logger.Log(c.perm, "lifecycle", err)
	}
}

// ContextReset is called when the render context has been created or
// recreated. Every driver entry point is resolved again. The first reset after
// Setup() queries the driver for the default framebuffer and the number of
// texture units, and seeds the shadow with the driver's defaults. Any later
// reset means that the context was lost. The shadow is not trusted again until
// the next call to Bind().
func (c *Controller) ContextReset() error {
	if c.state == Uninitialized {
		return curated.Errorf(ProtocolMisuse, "context reset before setup")
	}

	if c.hw.GetProcAddress == nil {
		return curated.Errorf(ConfigurationError, "front-end did not supply a proc address function")
	}

	if err := c.driver.Resolve(c.hw.GetProcAddress); err != nil {
		return curated.Errorf(ConfigurationError, err)
	}

	for ep := glapi.EntryPoint(0); ep < glapi.NumEntryPoints; ep++ {
		if !c.driver.Available(ep) {
			logger.Log(c.perm, "lifecycle", curated.Errorf(UnsupportedEntryPoint, ep))
			c.sendNotification(notifications.NotifyEntryPointUnavailable)
		}
	}

	if c.resets == 0 {
		c.shadow.Zero()
		c.shadow.Limits(c.defaultFramebuffer(), c.textureUnits())
		c.shadow.Seed()
		c.setState(Configured)
		c.sendNotification(notifications.NotifyContextCreated)
	} else {
		// objects belonging to the old context no longer exist
		c.shadow.FreeRows()
		c.shadow.Limits(c.defaultFramebuffer(), c.textureUnits())
		c.setState(Lost)
		c.sendNotification(notifications.NotifyContextLost)
	}
	c.resets++

	if c.params.ContextReset != nil {
		c.params.ContextReset()
	}

	return nil
}

func (c *Controller) defaultFramebuffer() uint32 {
	if c.hw.GetCurrentFramebuffer != nil {
		return c.hw.GetCurrentFramebuffer()
	}
	var fb [1]int32
	c.driver.GetIntegerv(glapi.FRAMEBUFFER_BINDING, fb[:])
	return uint32(fb[0])
}

func (c *Controller) textureUnits() int {
	var n [1]int32
	c.driver.GetIntegerv(glapi.MAX_COMBINED_TEXTURE_IMAGE_UNITS, n[:])
	return int(n[0])
}

// Bind replays the shadow onto the driver and enters the Bound state. The
// calling goroutine becomes the render thread.
func (c *Controller) Bind() error {
	if c.state == Uninitialized {
		return curated.Errorf(ProtocolMisuse, "bind before setup")
	}
	if c.resets == 0 {
		return curated.Errorf(NotAvailable, "no render context")
	}
	if c.state == Bound {
		return nil
	}

	c.shadow.Claim()
	c.shadow.Replay()

	restored := c.state == Lost
	c.setState(Bound)
	if restored {
		c.sendNotification(notifications.NotifyContextRestored)
	}

	return nil
}

// Unbind leaves the render context in a neutral state for other users and
// enters the Unbound state. Does nothing unless the controller is Bound.
func (c *Controller) Unbind() {
	if c.state != Bound {
		return
	}
	c.shadow.Neutralise()
	c.shadow.Release()
	c.setState(Unbound)
}

// ContextDestroy is called by the front-end immediately before the render
// context is destroyed. The side table rows of the shadow are freed and the
// controller enters the Lost state.
func (c *Controller) ContextDestroy() {
	if c.state == Uninitialized {
		return
	}
	if c.params.ContextDestroy != nil {
		c.params.ContextDestroy()
	}
	c.shadow.FreeRows()
	c.shadow.Release()
	c.setState(Lost)
	c.sendNotification(notifications.NotifyContextDestroyed)
}

// ProcAddressGet returns the function used to resolve driver entry points.
func (c *Controller) ProcAddressGet() (glapi.ProcAddressFunc, error) {
	if c.hw == nil || c.hw.GetProcAddress == nil {
		return nil, curated.Errorf(NotAvailable, "proc address function")
	}
	return c.hw.GetProcAddress, nil
}
