// Package runner drives the plugin lifecycle: load, start, enable, the paced
// frame loop, then disable and stop. Plugins register factories by name; the
// runner resolves names at load time and treats a miss as a fatal fault.
package runner

import (
	"log/slog"
	"time"

	"github.com/speedsim/simless/pkg/errors"
	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/plugin"
)

// Options configures a run.
type Options struct {
	// RunTime bounds the run in simulated seconds. Negative means unbounded.
	RunTime float64
	// Pace sleeps each frame so wall time tracks the tick step. Off by
	// default so tests run at full speed.
	Pace bool
	// StrictTeardown re-raises panics from Disable/Stop instead of logging
	// them. Legacy-compat mode, off by default.
	StrictTeardown bool
	// Logger defaults to the harness logger.
	Logger *slog.Logger
}

// hosted is one loaded plugin and its lifecycle state.
type hosted struct {
	id   int
	name string
	info plugin.Info
	p    plugin.Plugin
}

// Runner owns the frame loop for one harness.
type Runner struct {
	h       *harness.Harness
	opts    Options
	logger  *slog.Logger
	plugins []*hosted
	tick    int
	started bool
}

// New creates a runner for the harness.
func New(h *harness.Harness, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = h.Logger()
	}
	return &Runner{h: h, opts: opts, logger: logger}
}

// Tick returns how many frames have run.
func (r *Runner) Tick() int { return r.tick }

// Load resolves each name against the factory registry and constructs the
// plugin. Ids are assigned in load order starting at 1; id 0 is the harness.
// An unknown name is a fatal load fault.
func (r *Runner) Load(names []string) error {
	const op = "runner.Load"
	for _, name := range names {
		f, ok := lookup(name)
		if !ok {
			return errors.Newf(op, errors.KindLoad, "no plugin registered as %q", name)
		}
		id := len(r.plugins) + 1
		p := f(r.h.NewContext(id))
		if p == nil {
			return errors.Newf(op, errors.KindLoad, "factory for %q returned nil", name)
		}
		r.plugins = append(r.plugins, &hosted{id: id, name: name, p: p})
		r.logger.Debug("plugin loaded", "plugin", name, "id", id)
	}
	return nil
}

// Start runs every plugin's Start in load order. A Start error is fatal.
func (r *Runner) Start() error {
	const op = "runner.Start"
	for _, hp := range r.plugins {
		info, err := hp.p.Start()
		if err != nil {
			return errors.Wrap(op, errors.KindLoad, err)
		}
		hp.info = info
		r.logger.Info("plugin started",
			"plugin", hp.name, "id", hp.id,
			"signature", info.Signature, "descr", info.Description)
	}
	r.started = true
	return nil
}

// Enable runs every plugin's Enable in load order. A plugin refusing to
// enable is suppressed, not unloaded; the run continues without it.
func (r *Runner) Enable() {
	for _, hp := range r.plugins {
		if !hp.p.Enable() {
			r.logger.Warn("plugin refused enable", "plugin", hp.name, "id", hp.id)
			r.h.DisablePlugin(hp.id)
		}
	}
}

// RunOneTick advances the simulation one frame: flight loops, then draw
// callbacks, then the backend frame. It returns false when the loop should
// end (quit requested, backend closed, or budget reached).
func (r *Runner) RunOneTick() bool {
	backend := r.h.Graphics.Backend()
	if backend != nil && !backend.BeginFrame() {
		r.logger.Info("render backend closed", "tick", r.tick)
		return false
	}

	r.h.Loops.Tick()
	r.h.Graphics.RunDrawCallbacks()

	if backend != nil {
		backend.EndFrame()
	}
	r.tick++

	if r.h.QuitRequested() {
		r.logger.Info("quit requested", "tick", r.tick)
		return false
	}
	if r.opts.RunTime >= 0 && r.h.ElapsedTime() >= r.opts.RunTime {
		r.logger.Info("run-time budget reached", "tick", r.tick, "elapsed", r.h.ElapsedTime())
		return false
	}
	return true
}

// Run executes the full lifecycle for the named plugins: Load, Start, Enable,
// the frame loop, then unconditional Disable and Stop in load order.
func (r *Runner) Run(names []string) error {
	if err := r.Load(names); err != nil {
		return err
	}
	if len(r.plugins) == 0 {
		r.logger.Info("no plugins loaded, nothing to run")
		return nil
	}
	if err := r.Start(); err != nil {
		return err
	}
	r.Enable()

	r.logger.Info("entering frame loop",
		"run", r.h.RunID(), "plugins", len(r.plugins), "budget", r.opts.RunTime)
	step := r.h.Loops.Step()
	for {
		frameStart := time.Now()
		if !r.RunOneTick() {
			break
		}
		if r.opts.Pace {
			if remaining := time.Duration(step*float64(time.Second)) - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	r.logger.Info("frame loop complete", "ticks", r.tick, "elapsed", r.h.ElapsedTime())

	r.Teardown()
	return nil
}

// Teardown runs Disable then Stop on every plugin in load order. Plugins the
// harness already suppressed still get Disable, matching host behavior.
// Failures are logged and never interrupt the remaining teardown, unless
// StrictTeardown is set.
func (r *Runner) Teardown() {
	for _, hp := range r.plugins {
		r.teardownStep("runner.Disable", hp, hp.p.Disable)
	}
	for _, hp := range r.plugins {
		r.teardownStep("runner.Stop", hp, hp.p.Stop)
	}
}

func (r *Runner) teardownStep(op string, hp *hosted, fn func()) {
	if r.opts.StrictTeardown {
		fn()
		return
	}
	defer errors.Recover(op)
	fn()
}

// EndLoop asks the frame loop to stop after the current tick.
func (r *Runner) EndLoop() { r.h.RequestQuit() }
