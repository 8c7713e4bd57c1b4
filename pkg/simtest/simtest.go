// Package simtest provides helpers for testing plugins against a real
// harness without the paced frame loop: a tick driver, an inline plugin
// adapter, and error-handler scoping.
package simtest

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/speedsim/simless/pkg/errors"
	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/plugin"
	"github.com/speedsim/simless/pkg/runner"
)

// Tester owns a harness and runner pair for one test.
type Tester struct {
	H *harness.Harness
	R *runner.Runner

	t *testing.T
}

// New creates a tester with the default 1/60 s step and a discard logger.
// Registered inline plugins are deregistered via t.Cleanup.
func New(t *testing.T) *Tester {
	return NewWithStep(t, 0)
}

// NewWithStep creates a tester with an explicit tick step in sim seconds.
func NewWithStep(t *testing.T, step float64) *Tester {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := harness.New(harness.Options{Step: step, Logger: logger})
	return &Tester{
		H: h,
		R: runner.New(h, runner.Options{RunTime: -1}),
		t: t,
	}
}

// InlinePlugin adapts a set of optional hooks into the plugin lifecycle, so
// tests can script behavior without declaring a type per test.
type InlinePlugin struct {
	Ctx *harness.Context

	OnStart   func(ctx *harness.Context) error
	OnEnable  func(ctx *harness.Context) bool
	OnDisable func(ctx *harness.Context)
	OnStop    func(ctx *harness.Context)
}

func (p *InlinePlugin) Start() (plugin.Info, error) {
	info := plugin.Info{Name: "inline", Signature: "simtest.inline", Description: "inline test plugin"}
	if p.OnStart != nil {
		return info, p.OnStart(p.Ctx)
	}
	return info, nil
}

func (p *InlinePlugin) Enable() bool {
	if p.OnEnable != nil {
		return p.OnEnable(p.Ctx)
	}
	return true
}

func (p *InlinePlugin) Disable() {
	if p.OnDisable != nil {
		p.OnDisable(p.Ctx)
	}
}

func (p *InlinePlugin) Stop() {
	if p.OnStop != nil {
		p.OnStop(p.Ctx)
	}
}

// Install registers an inline plugin under a test-unique name and returns
// that name for Load. The registration is removed when the test ends.
func (s *Tester) Install(suffix string, build func() *InlinePlugin) string {
	name := fmt.Sprintf("%s/%s", s.t.Name(), suffix)
	runner.Register(name, func(ctx *harness.Context) plugin.Plugin {
		p := build()
		p.Ctx = ctx
		return p
	})
	s.t.Cleanup(func() { runner.Deregister(name) })
	return name
}

// Boot loads, starts and enables the named plugins, failing the test on any
// load or start fault. The frame loop is not entered; use Pump.
func (s *Tester) Boot(names ...string) {
	s.t.Helper()
	if err := s.R.Load(names); err != nil {
		s.t.Fatalf("load: %v", err)
	}
	if err := s.R.Start(); err != nil {
		s.t.Fatalf("start: %v", err)
	}
	s.R.Enable()
}

// Pump advances the simulation n ticks, stopping early if the loop ends.
// It returns how many ticks actually ran.
func (s *Tester) Pump(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !s.R.RunOneTick() {
			ran++
			break
		}
		ran++
	}
	return ran
}

// PumpUntil ticks until the condition holds, failing the test after
// maxTicks.
func (s *Tester) PumpUntil(maxTicks int, cond func() bool) {
	s.t.Helper()
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return
		}
		s.R.RunOneTick()
	}
	if !cond() {
		s.t.Fatalf("condition not reached after %d ticks", maxTicks)
	}
}

// SilenceErrors swallows reported errors and panics for the duration of the
// test, for exercising failure paths without log noise.
func SilenceErrors(t *testing.T) {
	errors.SetHandler(silentHandler{})
	t.Cleanup(func() { errors.SetHandler(nil) })
}

type silentHandler struct{}

func (silentHandler) HandleError(err *errors.Error)      {}
func (silentHandler) HandlePanic(err *errors.PanicError) {}
