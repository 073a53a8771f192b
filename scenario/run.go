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
	"io"
	"sort"
	"strings"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/lifecycle"
	"github.com/relay64/relay64/notifications"
	"github.com/relay64/relay64/random"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/shadow"
	"github.com/relay64/relay64/staging"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Report is the result of playing a scenario.
type Report struct {
	Name          string
	Frames        int
	Payloads      int
	PayloadBytes  int
	ContextLosses int

	// forwarded and skipped driver calls
	Total    shadow.Counter
	Counters map[string]shadow.Counter

	Pool staging.Stats

	// digest of the payloads as submitted by the producer and as uploaded by
	// the render thread. the producer digest is empty if the report was not
	// made by Run()
	ProducerDigest string
	RenderDigest   string
}

func (r Report) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %d frames, %d payloads (%d bytes), %d context losses\n",
		r.Name, r.Frames, r.Payloads, r.PayloadBytes, r.ContextLosses))
	s.WriteString(fmt.Sprintf("driver calls: %s\n", r.Total))
	s.WriteString(fmt.Sprintf("staging: %d allocations, %d waits, %d wraps, %d bytes high water",
		r.Pool.Allocations, r.Pool.Waits, r.Pool.Wraps, r.Pool.HighWater))
	s.WriteString(fmt.Sprintf("\npayload digest: %s", r.RenderDigest))
	return s.String()
}

// WriteCounters writes the counter for every state slot to io.Writer. Slots
// that were never used are omitted.
func (r Report) WriteCounters(w io.Writer) {
	names := make([]string, 0, len(r.Counters))
	for n, c := range r.Counters {
		if c.Forwarded+c.Skipped > 0 {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "%-20s %s\n", n, r.Counters[n])
	}
}

// Options for Run().
type Options struct {
	// progress bar is written to Progress. nil for no progress bar
	Progress io.Writer

	// receives lifecycle notifications. can be nil
	Notify notifications.Notify

	// a graph of the state shadow is written to Graph after the last frame.
	// nil for no graph
	Graph io.Writer

	// payload content is generated with Random. a new instance with the
	// random base seed is used if it is nil
	Random *random.Random
}

// Run plays the scenario with the driver and front-end. The producer and the
// render thread each run in their own goroutine. The render context is
// created at the start of the run and destroyed at the end.
//
// The driver must be usable from any goroutine. Use a Player directly if the
// render thread must be the main thread.
func Run(ctx context.Context, sc *Scenario, prefs *relay.Preferences, driver glapi.Driver, fe FrontEnd, opts Options) (Report, error) {
	if err := sc.Apply(prefs); err != nil {
		return Report{Name: sc.Name}, err
	}

	session, err := relay.NewSession(prefs)
	if err != nil {
		return Report{Name: sc.Name}, err
	}
	defer session.Close()

	ctrl := lifecycle.NewController(driver, prefs.ShadowOptions(), opts.Notify)
	player := NewPlayer(sc, ctrl, session, fe)
	if err := ctrl.Setup(player.Params()); err != nil {
		return player.Report(), err
	}

	var bar *progressbar.ProgressBar
	if opts.Progress == nil {
		bar = progressbar.DefaultSilent(int64(sc.Frames), sc.Name)
	} else {
		bar = progressbar.NewOptions(sc.Frames,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription(sc.Name),
			progressbar.OptionShowCount(),
		)
	}
	defer bar.Close()

	producer := NewProducer(sc, opts.Random)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return producer.Produce(gctx, session)
	})

	g.Go(func() error {
		// closing the session releases the producer if the render thread
		// finishes early
		defer session.Close()

		if err := fe.CreateContext(); err != nil {
			return err
		}
		for frame := range sc.Frames {
			if err := player.Frame(gctx, frame); err != nil {
				return err
			}
			_ = bar.Add(1)
		}
		if opts.Graph != nil {
			ctrl.Shadow().WriteGraph(opts.Graph)
		}
		return fe.DestroyContext()
	})

	err = g.Wait()

	report := player.Report()
	report.ProducerDigest = producer.Hash()
	if err == nil && report.ProducerDigest != report.RenderDigest {
		err = curated.Errorf(PlaybackError, "payload digest mismatch")
	}

	return report, err
}
