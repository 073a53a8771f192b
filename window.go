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


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/environment"
	"github.com/relay64/relay64/glapi/gl32"
	"github.com/relay64/relay64/lifecycle"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/modalflag"
	"github.com/relay64/relay64/notifications"
	"github.com/relay64/relay64/performance/limiter"
	"github.com/relay64/relay64/platform/glfwplatform"
	"github.com/relay64/relay64/platform/sdlplatform"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/scenario"
	"github.com/relay64/relay64/version"
)

// the methods of the SDL and GLFW platforms used by the window.
type platform interface {
	scenario.FrontEnd
	Service() bool
	Swap()
	Destroy() error
}

// window implements the GuiCreator interface. Every call to Service() plays
// one frame of the scenario on the main thread.
type window struct {
	plt     platform
	player  *scenario.Player
	session *relay.Session
	ctx     context.Context

	frame  int
	frames int

	// frame rate limiter. nil if the frame rate is not limited
	lim *limiter.FpsLimiter

	// the result of the run is sent once
	done     chan error
	finished bool
}

// notifications from the lifecycle controller are shown in the title bar.
type titleNotify struct {
	plt platform
}

func (n titleNotify) Notify(notice notifications.Notice) error {
	n.plt.Environment(environment.SetMessage, &environment.Message{Text: string(notice)})
	return nil
}

func newWindow(ctx context.Context, sc *scenario.Scenario, prefs *relay.Preferences, session *relay.Session, useGLFW bool, fps int) (*window, error) {
	title := version.String()

	var plt platform
	var err error
	if useGLFW {
		plt, err = glfwplatform.NewPlatform(title, 640, 480, logger.Allow)
	} else {
		plt, err = sdlplatform.NewPlatform(title, 640, 480, logger.Allow)
	}
	if err != nil {
		return nil, err
	}

	ctrl := lifecycle.NewController(gl32.NewDriver(), prefs.ShadowOptions(), titleNotify{plt: plt})
	player := scenario.NewPlayer(sc, ctrl, session, plt)

	if err := ctrl.Setup(player.Params()); err != nil {
		_ = plt.Destroy()
		return nil, err
	}
	if err := plt.CreateContext(); err != nil {
		_ = plt.Destroy()
		return nil, err
	}

	w := &window{
		plt:     plt,
		player:  player,
		session: session,
		ctx:     ctx,
		frames:  sc.Frames,
		done:    make(chan error, 1),
	}

	if fps > 0 {
		w.lim, err = limiter.NewFPSLimiter(ctx, fps)
		if err != nil {
			_ = plt.DestroyContext()
			_ = plt.Destroy()
			return nil, err
		}
	}

	return w, nil
}

func (w *window) finish(err error) {
	if w.finished {
		return
	}
	w.finished = true
	w.session.Close()
	w.done <- err
}

// Service implements the GuiCreator interface.
func (w *window) Service() {
	if w.finished {
		_ = w.plt.Service()
		return
	}

	if !w.plt.Service() {
		w.finish(w.plt.DestroyContext())
		return
	}

	if w.frame >= w.frames {
		w.finish(w.plt.DestroyContext())
		return
	}

	// events are still serviced while waiting for the next frame
	if w.lim != nil && !w.lim.HasWaited() {
		return
	}

	if err := w.player.Frame(w.ctx, w.frame); err != nil {
		w.finish(err)
		return
	}
	w.plt.Swap()
	w.frame++
}

// Destroy implements the GuiCreator interface.
func (w *window) Destroy(output io.Writer) {
	if err := w.plt.Destroy(); err != nil {
		fmt.Fprintln(output, err)
	}
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	counters := md.AddBool("counters", false, "print counters for every state slot")
	useGLFW := md.AddBool("glfw", false, "use GLFW rather than SDL")
	fps := md.AddInt("fps", 60, "limit the frame rate. zero for no limit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sc, prefs, err := c.prepare(md)
	if err != nil {
		return err
	}

	session, err := relay.NewSession(prefs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sync.creator <- func() (GuiCreator, error) {
		return newWindow(ctx, sc, prefs, session, *useGLFW, *fps)
	}

	var win *window
	select {
	case g := <-sync.creation:
		win = g.(*window)
	case err := <-sync.creationError:
		session.Close()
		return err
	}

	// the producer. the render thread is the main thread
	producer := scenario.NewProducer(sc, nil)
	produced := make(chan error, 1)
	start := time.Now()
	go func() {
		err := producer.Produce(ctx, session)
		if err != nil {
			cancel()
		}
		produced <- err
	}()

	err = <-win.done
	elapsed := time.Since(start)
	cancel()

	// a producer error explains why the render thread stopped
	if perr := <-produced; perr != nil && !curated.Is(perr, relay.SessionClosed) && !errors.Is(perr, context.Canceled) {
		err = perr
	}

	report := win.player.Report()
	report.ProducerDigest = producer.Hash()
	if err == nil && report.Frames == sc.Frames && report.ProducerDigest != report.RenderDigest {
		err = curated.Errorf(scenario.PlaybackError, "payload digest mismatch")
	}
	printReport(report, elapsed, float64(*fps), *counters)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
