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


package scenario_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/digest"
	"github.com/relay64/relay64/glapi"
	"github.com/relay64/relay64/glapi/glrecord"
	"github.com/relay64/relay64/lifecycle"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/notifications"
	"github.com/relay64/relay64/random"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/scenario"
	"github.com/relay64/relay64/staging"
	"github.com/relay64/relay64/test"
)

func newPreferences(t *testing.T) *relay.Preferences {
	t.Helper()
	p, err := relay.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	return p
}

type notices struct {
	list []notifications.Notice
}

func (n *notices) Notify(notice notifications.Notice) error {
	n.list = append(n.list, notice)
	return nil
}

func TestLoad(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "quad.yaml"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sc.Name, "textured quad")
	test.ExpectEquality(t, sc.Frames, 10)
	test.ExpectEquality(t, len(sc.Payloads), 3)
	test.ExpectEquality(t, sc.PerFrame(), 4608)
	test.ExpectEquality(t, sc.LoseContextEvery, 4)
	test.ExpectEquality(t, sc.Resources.Framebuffers, 1)
	test.ExpectEquality(t, len(sc.Ops), 13)

	test.ExpectEquality(t, uint32(*sc.Ops[2].Enable), uint32(glapi.BLEND))
	test.ExpectEquality(t, uint32(sc.Ops[3].Blend[1]), uint32(glapi.ONE_MINUS_SRC_ALPHA))
	test.ExpectEquality(t, uint32(*sc.Ops[9].Clear), uint32(glapi.COLOR_BUFFER_BIT|glapi.DEPTH_BUFFER_BIT))
	test.ExpectEquality(t, *sc.Ops[11].Framebuffer, -1)

	_, err = scenario.Load(filepath.Join("testdata", "missing.yaml"))
	test.ExpectFailure(t, err)
}

func TestParseErrors(t *testing.T) {
	bad := map[string]string{
		"no frames":        "frames: 0",
		"empty payload":    "frames: 1\npayloads: [0]",
		"payload too big":  "frames: 1\npool: 64\npayloads: [65]",
		"bad pool":         "frames: 1\npool: 63",
		"unknown cap":      "frames: 1\nops:\n  - enable: fog",
		"unknown factor":   "frames: 1\nops:\n  - blend: [one, two]",
		"three factors":    "frames: 1\nops:\n  - blend: [one, one, one]",
		"two ops":          "frames: 1\nops:\n  - enable: blend\n    disable: blend",
		"empty op":         "frames: 1\nops:\n  - {}",
		"bad texture":      "frames: 1\nresources: {textures: 1}\nops:\n  - bind_texture: {unit: 0, texture: 1}",
		"bad program":      "frames: 1\nops:\n  - use_program: 0",
		"bad viewport":     "frames: 1\nops:\n  - viewport: [0, 0, 10]",
		"empty clear":      "frames: 1\nops:\n  - clear: []",
		"too many uniform": "frames: 1\nops:\n  - uniform: {name: tint, values: [1, 2, 3, 4, 5]}",
		"not yaml":         "frames: [",
	}

	for name, data := range bad {
		_, err := scenario.Parse([]byte(data))
		if !curated.Is(err, scenario.InvalidScenario) {
			t.Errorf("%s: expected an invalid scenario error, got %v", name, err)
		}
	}

	sc, err := scenario.Parse([]byte("frames: 1\nresources: {framebuffers: 1}\nops:\n  - framebuffer: -1\n  - use_program: -1"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(sc.Ops), 2)
}

func TestRun(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "quad.yaml"))
	test.DemandSuccess(t, err)

	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(rec.ProcAddress, logger.Deny)
	n := &notices{}
	progress := &bytes.Buffer{}
	graph := &bytes.Buffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := scenario.Run(ctx, sc, newPreferences(t), rec, fe, scenario.Options{
		Progress: progress,
		Notify:   n,
		Graph:    graph,
	})
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, report.Frames, 10)
	test.ExpectEquality(t, report.Payloads, 30)
	test.ExpectEquality(t, report.PayloadBytes, 10*4608)
	test.ExpectEquality(t, report.ContextLosses, 2)
	test.ExpectEquality(t, report.Pool.Allocations, uint64(30))
	test.ExpectEquality(t, report.Pool.Releases, uint64(30))
	test.ExpectInequality(t, report.Total.Skipped, uint64(0))
	test.ExpectInequality(t, progress.Len(), 0)
	test.ExpectInequality(t, graph.Len(), 0)
	test.ExpectEquality(t, report.RenderDigest, report.ProducerDigest)

	// the viewport is the same for every frame
	test.ExpectEquality(t, report.Counters["Viewport"].Forwarded, uint64(1))
	test.ExpectEquality(t, report.Counters["Viewport"].Skipped, uint64(9))

	test.ExpectEquality(t, rec.Count("BufferData"), 30)
	test.ExpectEquality(t, rec.Count("DrawArrays"), 20)

	// the framebuffer with the depth attachment is left once every frame
	test.ExpectEquality(t, rec.Count("InvalidateFramebuffer") >= 10, true)

	// one program for every context
	test.ExpectEquality(t, rec.Count("CreateProgram"), 3)
	test.ExpectEquality(t, rec.Count("DeleteProgram"), 3)

	test.ExpectEquality(t, fmt.Sprint(n.list), fmt.Sprint([]notifications.Notice{
		notifications.NotifyContextCreated,
		notifications.NotifyContextDestroyed,
		notifications.NotifyContextLost,
		notifications.NotifyContextRestored,
		notifications.NotifyContextDestroyed,
		notifications.NotifyContextLost,
		notifications.NotifyContextRestored,
		notifications.NotifyContextDestroyed,
	}))

	s := report.String()
	test.ExpectEquality(t, len(s) > 0, true)

	w := &test.CompareWriter{}
	report.WriteCounters(w)
	test.ExpectSuccess(t, w.Contains("Viewport"))
}

func TestRunRefused(t *testing.T) {
	sc, err := scenario.Parse([]byte("frames: 1"))
	test.DemandSuccess(t, err)

	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(nil, logger.Deny)

	_, err = scenario.Run(context.Background(), sc, newPreferences(t), rec, fe, scenario.Options{})
	test.ExpectEquality(t, curated.Is(err, lifecycle.ConfigurationError), true)
	test.ExpectEquality(t, len(fe.Messages), 1)
}

func TestRunProducerError(t *testing.T) {
	sc, err := scenario.Parse([]byte("frames: 2\npayloads: [100]"))
	test.DemandSuccess(t, err)

	prefs := newPreferences(t)
	test.DemandSuccess(t, prefs.PoolCapacity.Set(64))

	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(rec.ProcAddress, logger.Deny)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := scenario.Run(ctx, sc, prefs, rec, fe, scenario.Options{})
	test.ExpectEquality(t, curated.Is(err, staging.ConfigurationError), true)
	test.ExpectEquality(t, report.Frames, 0)
}

func TestPlayer(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
frames: 3
payloads: [16]
resources: {programs: 1}
ops:
  - use_program: 0
  - uniform: {name: tint, values: [1, 1, 1, 1]}
  - uniform: {name: tint, values: [1, 1, 1, 1]}
  - draw: {mode: points, count: 1}
`))
	test.DemandSuccess(t, err)

	prefs := newPreferences(t)
	session, err := relay.NewSession(prefs)
	test.DemandSuccess(t, err)
	defer session.Close()

	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(rec.ProcAddress, logger.Deny)
	ctrl := lifecycle.NewController(rec, prefs.ShadowOptions(), nil)
	player := scenario.NewPlayer(sc, ctrl, session, fe)

	// frame before the context exists
	test.DemandSuccess(t, ctrl.Setup(player.Params()))
	err = player.Frame(context.Background(), 0)
	test.ExpectEquality(t, curated.Is(err, lifecycle.NotAvailable), true)

	test.DemandSuccess(t, fe.CreateContext())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rnd := random.NewRandom()
	rnd.ZeroSeed = true
	producer := scenario.NewProducer(sc, rnd)
	done := make(chan error, 1)
	go func() {
		done <- producer.Produce(ctx, session)
	}()

	for frame := range sc.Frames {
		test.DemandSuccess(t, player.Frame(ctx, frame))
		test.ExpectEquality(t, ctrl.State(), lifecycle.Unbound)
	}

	test.DemandSuccess(t, <-done)

	report := player.Report()
	test.ExpectEquality(t, report.Frames, 3)
	test.ExpectEquality(t, report.Payloads, 3)
	test.ExpectEquality(t, report.RenderDigest, producer.Hash())

	// the same seed produces the same payloads
	expected := digest.NewPayloads()
	b := make([]byte, 16)
	for frame := range sc.Frames {
		rnd.Fill(frame, 0, b)
		_, _ = expected.Write(b)
	}
	test.ExpectEquality(t, report.RenderDigest, expected.Hash())

	// the location is looked up once and the uniform is only forwarded once
	test.ExpectEquality(t, rec.Count("GetUniformLocation"), 1)
	test.ExpectEquality(t, rec.Count("Uniform4f"), 1)
	test.ExpectEquality(t, report.Counters["Uniform"].Skipped, uint64(5))
}

func TestRunWithoutVertexArrays(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "quad.yaml"))
	test.DemandSuccess(t, err)

	rec := glrecord.NewRecorder()
	rec.Omit("glGenVertexArrays", "glDeleteVertexArrays", "glBindVertexArray")
	fe := relay.NewHeadless(rec.ProcAddress, logger.Deny)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := scenario.Run(ctx, sc, newPreferences(t), rec, fe, scenario.Options{})
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, report.Frames, 10)
	test.ExpectEquality(t, report.RenderDigest, report.ProducerDigest)
	test.ExpectEquality(t, rec.Count("GenVertexArrays"), 0)
	test.ExpectEquality(t, rec.Count("BindVertexArray"), 0)
	test.ExpectEquality(t, rec.Count("DeleteVertexArrays"), 0)
	test.ExpectEquality(t, rec.Count("DrawArrays"), 20)
}
