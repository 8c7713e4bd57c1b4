// Package harness aggregates the simulation subsystems into one façade that
// plugins receive at construction. It replaces the process-wide singleton of
// the host scripting surface with an explicit object, so two harnesses can
// coexist in one test binary.
package harness

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/flightloop"
	"github.com/speedsim/simless/pkg/graphics"
	"github.com/speedsim/simless/pkg/plugin"
	"github.com/speedsim/simless/pkg/widget"
)

// Options configures a harness. Zero values select the defaults noted.
type Options struct {
	// Step is the simulated seconds advanced per tick.
	// Defaults to flightloop.DefaultStep (1/60 s).
	Step float64
	// SystemPath and PrefsPath default to the working directory.
	SystemPath string
	PrefsPath  string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Harness owns the dataref registry, widget tree, flight-loop scheduler and
// graphics system for one simulated run. It is not safe for concurrent use;
// the runner drives everything from a single goroutine.
type Harness struct {
	Datarefs *dataref.Registry
	Widgets  *widget.Tree
	Loops    *flightloop.Scheduler
	Graphics *graphics.System

	disabled *plugin.DisabledSet
	runID    string
	logger   *slog.Logger

	systemPath string
	prefsPath  string

	quitRequested bool
}

// New builds a harness with all subsystems wired to the shared disabled set.
func New(opts Options) *Harness {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	step := opts.Step
	if step <= 0 {
		step = flightloop.DefaultStep
	}
	systemPath := opts.SystemPath
	if systemPath == "" {
		systemPath, _ = os.Getwd()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = systemPath
	}

	h := &Harness{
		Datarefs:   dataref.NewRegistry(logger),
		Widgets:    widget.NewTree(logger),
		Loops:      flightloop.NewScheduler(step, logger),
		Graphics:   graphics.NewSystem(logger),
		disabled:   plugin.NewDisabledSet(),
		runID:      uuid.NewString(),
		logger:     logger,
		systemPath: systemPath,
		prefsPath:  prefsPath,
	}
	h.Widgets.SetOwnerFilter(h.disabled)
	h.Loops.SetOwnerFilter(h.disabled)
	h.Graphics.SetOwnerFilter(h.disabled)
	return h
}

// RunID identifies this run in logs.
func (h *Harness) RunID() string { return h.runID }

// Logger returns the harness logger.
func (h *Harness) Logger() *slog.Logger { return h.logger }

// ElapsedTime returns simulated seconds since the run began.
func (h *Harness) ElapsedTime() float64 { return h.Loops.Now() }

// DisablePlugin suppresses the plugin's flight loops, widget callbacks and
// draw callbacks from the next tick on. Satisfies readiness.Disabler.
func (h *Harness) DisablePlugin(id int) {
	if h.disabled.Disabled(id) {
		return
	}
	h.disabled.Disable(id)
	h.logger.Warn("plugin disabled", "plugin", id, "run", h.runID)
}

// PluginDisabled reports whether the plugin has been suppressed.
func (h *Harness) PluginDisabled(id int) bool { return h.disabled.Disabled(id) }

// Disabled exposes the suppression set, for the runner's teardown pass.
func (h *Harness) Disabled() *plugin.DisabledSet { return h.disabled }

// RequestQuit asks the runner to end the frame loop after the current tick.
func (h *Harness) RequestQuit() { h.quitRequested = true }

// QuitRequested reports whether a quit has been asked for.
func (h *Harness) QuitRequested() bool { return h.quitRequested }

// Speak voices a message. Headless runs log it instead.
func (h *Harness) Speak(text string) {
	h.logger.Info("speak", "text", text)
}

// Log writes a plugin-facing log line through the harness logger.
func (h *Harness) Log(msg string) {
	h.logger.Info(msg)
}

// SystemPath returns the simulated installation root.
func (h *Harness) SystemPath() string { return h.systemPath }

// PrefsPath returns the simulated preferences directory.
func (h *Harness) PrefsPath() string { return h.prefsPath }

// DirectorySeparator returns the host path separator.
func (h *Harness) DirectorySeparator() string { return string(filepath.Separator) }

// ScreenSize reports the virtual screen dimensions.
func (h *Harness) ScreenSize() (width, height int) { return h.Graphics.ScreenSize() }

// MouseLocation reports the last known mouse position.
func (h *Harness) MouseLocation() (x, y int) { return h.Graphics.MouseLocation() }

// FindCommand resolves a host command by name. Commands are not simulated;
// every name maps to the same inert handle.
func (h *Harness) FindCommand(name string) int {
	h.logger.Debug("find command", "name", name)
	return 1
}

// CommandOnce triggers a host command. Inert in simulation.
func (h *Harness) CommandOnce(cmd int) {
	h.logger.Debug("command once", "cmd", cmd)
}

// Context is the per-plugin view of the harness handed to plugin factories.
// It embeds the full façade plus the plugin's own id.
type Context struct {
	*Harness
	id int
}

// NewContext binds a plugin id to the harness.
func (h *Harness) NewContext(pluginID int) *Context {
	return &Context{Harness: h, id: pluginID}
}

// MyID returns the id of the plugin this context was issued to.
func (c *Context) MyID() int { return c.id }
