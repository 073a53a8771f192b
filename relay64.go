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
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/relay64/relay64/curated"
	"github.com/relay64/relay64/glapi/glrecord"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/modalflag"
	"github.com/relay64/relay64/paths"
	"github.com/relay64/relay64/performance"
	"github.com/relay64/relay64/prefs"
	"github.com/relay64/relay64/regression"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/scenario"
	"github.com/relay64/relay64/statsview"
	"github.com/relay64/relay64/version"
	"golang.org/x/term"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of windows
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the window
	Destroy(io.Writer)

	// Service() is called repeatedly by the main thread. It should not loop
	// longer than necessary
	Service()
}

// communication between the main() function and the launch() function. SDL
// and GLFW both require window creation and event handling to happen on the
// main thread. the render context is also current on the main thread so the
// render thread of the relay is the main thread when a window is used.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// gui is an interface. make sure it is really nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate window creation and to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubMode("RUN", "play a scenario in a window")
	md.AddSubMode("SIM", "play a scenario with the recording driver")
	md.AddSubMode("REGRESS", "run, add or remove regression tests")
	md.AddSubMode("PREFS", "show or change the preferences")
	md.AddSubMode("VERSION", "print the version")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)
	case "SIM":
		err = sim(md, sync)
	case "REGRESS":
		err = regress(md, sync)
	case "PREFS":
		err = preferences(md)
	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to the RUN and SIM modes.
type common struct {
	frames    *int
	pool      *int
	prefs     *string
	log       *bool
	statsview *bool
}

func addCommon(md *modalflag.Modes) common {
	c := common{
		frames: md.AddInt("frames", 0, "override the number of frames in the scenario"),
		pool:   md.AddInt("pool", 0, "override the size of the staging pool in bytes"),
		prefs:  md.AddString("prefs", "", "override preferences (eg. 'shadow.cacheuniforms::false')"),
		log:    md.AddBool("log", false, "echo log to stdout"),
	}
	if statsview.Available() {
		c.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	md.AdditionalHelp("A scenario file is required. See the scenario package for the format.")
	return c
}

// prepare the scenario and the preferences for the RUN and SIM modes.
func (c common) prepare(md *modalflag.Modes) (*scenario.Scenario, *relay.Preferences, error) {
	if *c.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if c.statsview != nil && *c.statsview {
		statsview.Launch()
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil, fmt.Errorf("scenario file required for %s mode", md)
	case 1:
	default:
		return nil, nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	sc, err := scenario.Load(md.GetArg(0))
	if err != nil {
		return nil, nil, err
	}
	if *c.frames > 0 {
		sc.Frames = *c.frames
	}
	if *c.pool > 0 {
		sc.Pool = *c.pool
	}

	prefs.PushCommandLineStack(*c.prefs)
	p, err := relay.NewPreferences()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "relay64", "unused preference overrides: %s", unused)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := sc.Apply(p); err != nil {
		return nil, nil, err
	}

	return sc, p, nil
}

func printReport(report scenario.Report, elapsed time.Duration, target float64, counters bool) {
	fmt.Println(report)
	fps, accuracy := performance.CalcFPS(report.Frames, elapsed, target)
	if target > 0 {
		fmt.Printf("%.2f fps (%.1f%% of target) in %s\n", fps, accuracy, elapsed.Round(time.Millisecond))
	} else {
		fmt.Printf("%.2f fps in %s\n", fps, elapsed.Round(time.Millisecond))
	}
	if counters {
		report.WriteCounters(os.Stdout)
	}
}

func sim(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	c := addCommon(md)
	counters := md.AddBool("counters", false, "print counters for every state slot")
	progress := md.AddBool("progress", term.IsTerminal(int(os.Stderr.Fd())), "show progress bar")
	dumpShadow := md.AddBool("dumpshadow", false, "write a graph of the state shadow after the last frame")
	profile := md.AddString("profile", "none", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	sc, prefs, err := c.prepare(md)
	if err != nil {
		return err
	}

	// interrupt cancels the run rather than quitting immediately
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(rec.ProcAddress, logger.Allow)

	var opts scenario.Options
	if *progress {
		opts.Progress = os.Stderr
	}
	if *dumpShadow {
		fn := paths.UniqueFilename("shadow", sc.Name, "dot")
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Log(logger.Allow, "relay64", err)
			}
			logger.Logf(logger.Allow, "relay64", "shadow graph written to %s", fn)
		}()
		opts.Graph = f
	}

	var report scenario.Report
	start := time.Now()
	err = performance.RunProfiler(prf, sc.Name, func() error {
		var err error
		report, err = scenario.Run(ctx, sc, prefs, rec, fe, opts)
		return err
	})
	elapsed := time.Since(start)
	if *progress {
		fmt.Fprintln(os.Stderr)
	}
	printReport(report, elapsed, 0, *counters)

	if err != nil && !curated.Is(err, relay.SessionClosed) {
		return err
	}
	return nil
}

// yesReader always answers yes to a confirmation.
type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regress(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AddSubMode("RUN", "run regression tests")
	md.AddSubMode("LIST", "list the regression database")
	md.AddSubMode("DELETE", "delete an entry from the regression database")
	md.AddSubMode("ADD", "add a scenario to the regression database")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbPath, err := regression.DefaultDBPath()
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
		failOnError := md.AddBool("fail", false, "stop at the first error")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		// interrupt cancels the tests rather than quitting immediately
		sync.state <- stateRequest{req: reqNoIntSig}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		res, err := regression.RegressRun(ctx, dbPath, md.Output, *verbose, *failOnError, md.RemainingArgs())
		if err != nil {
			return err
		}
		if res.Fail > 0 || res.Error > 0 {
			return fmt.Errorf("%d regression tests did not succeed", res.Fail+res.Error)
		}

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}
		return regression.RegressList(dbPath, md.Output)

	case "DELETE":
		md.NewMode()
		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			// use stdin for confirmation unless "yes" flag has been sent
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}
			return regression.RegressDelete(dbPath, md.Output, confirmation, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at at time")
		}

	case "ADD":
		return regressAdd(md, dbPath)
	}

	return nil
}

func regressAdd(md *modalflag.Modes, dbPath string) error {
	md.NewMode()
	notes := md.AddString("notes", "", "additional annotation for the database")
	frames := md.AddInt("frames", 0, "number of frames to play. zero for the number in the scenario file")

	md.AdditionalHelp("The scenario is played with the recording driver and the default preferences.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("scenario file required for %s mode", md)
	case 1:
		pth, err := filepath.Abs(md.GetArg(0))
		if err != nil {
			return err
		}

		reg := &regression.DigestRegression{
			Scenario: pth,
			Frames:   *frames,
			Notes:    *notes,
		}

		err = regression.RegressAdd(context.Background(), dbPath, md.Output, reg)
		if err != nil {
			// using carriage return (without newline) at beginning of error
			// message because we want to overwrite the last output from
			// RegressAdd()
			return fmt.Errorf("\rerror adding regression test: %v", err)
		}
	default:
		return fmt.Errorf("regression tests can only be added one at a time")
	}

	return nil
}

func preferences(md *modalflag.Modes) error {
	md.NewMode()
	defaults := md.AddBool("defaults", false, "revert to the default values")
	pool := md.AddInt("pool", 0, "size of the staging pool in bytes")
	depth := md.AddInt("handoff", 0, "number of payloads that can wait for the render thread")
	uniforms := md.AddInt("uniforms", 0, "number of uniform locations cached for each program")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prefs, err := relay.NewPreferences()
	if err != nil {
		return err
	}

	var changed bool
	if *defaults {
		prefs.SetDefaults()
		changed = true
	}
	if *pool > 0 {
		if err := prefs.PoolCapacity.Set(*pool); err != nil {
			return err
		}
		changed = true
	}
	if *depth > 0 {
		if err := prefs.HandoffDepth.Set(*depth); err != nil {
			return err
		}
		changed = true
	}
	if *uniforms > 0 {
		if err := prefs.UniformBound.Set(*uniforms); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		if err := prefs.Save(); err != nil {
			return err
		}
	}

	fmt.Println(prefs)
	return nil
}
