// Package readiness gates plugin logic until its declared datarefs are all
// resolvable and correctly typed. The host may expose datarefs several frames
// after plugin load — during aircraft reloads, or when another plugin
// registers them late — so plugins poll a Monitor from their flight loop
// instead of assuming handles are live at enable time.
package readiness

import (
	"log/slog"
	"sort"

	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/errors"
)

// Spec declares one required dataref: where it lives, what type it must
// carry, and the default applied when the harness creates it.
type Spec struct {
	Path     string
	Type     dataref.Type
	Writable bool
	Required bool
	Default  any
}

// Disabler is the consumer-side surface for the readiness timeout: when the
// declared set never resolves, the owning plugin is forcibly muted.
type Disabler interface {
	DisablePlugin(id int)
}

// Options tune a Monitor. The zero value means a 10-tick timeout and a
// warning throttled to once per 60 ticks.
type Options struct {
	TimeoutTicks  int
	WarnEveryTick int
	Logger        *slog.Logger
}

// Monitor tracks the binding state for one consumer's declared datarefs.
// Once Poll reports ready it stays ready; timing out is terminal the other
// way, disabling the owner.
type Monitor struct {
	reg      *dataref.Registry
	specs    map[string]Spec
	keys     []string
	bound    map[string]*Accessor
	owner    int
	disabler Disabler
	logger   *slog.Logger

	timeout   int
	warnEvery int

	started      bool
	startTick    int
	lastWarnTick int
	failed       bool
}

// NewMonitor validates the spec set and creates a monitor for one consumer.
func NewMonitor(reg *dataref.Registry, specs map[string]Spec, owner int, disabler Disabler, opts Options) (*Monitor, error) {
	if err := validate(specs); err != nil {
		return nil, err
	}
	if opts.TimeoutTicks <= 0 {
		opts.TimeoutTicks = 10
	}
	if opts.WarnEveryTick <= 0 {
		opts.WarnEveryTick = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Monitor{
		reg:       reg,
		specs:     specs,
		keys:      keys,
		bound:     make(map[string]*Accessor, len(specs)),
		owner:     owner,
		disabler:  disabler,
		logger:    opts.Logger,
		timeout:   opts.TimeoutTicks,
		warnEvery: opts.WarnEveryTick,
	}, nil
}

func validate(specs map[string]Spec) error {
	const op = "readiness.NewMonitor"
	for key, spec := range specs {
		if spec.Path == "" {
			return errors.Newf(op, errors.KindConfig, "%s: empty dataref path", key)
		}
		switch spec.Type {
		case dataref.TypeInt, dataref.TypeFloat, dataref.TypeDouble,
			dataref.TypeFloatArray, dataref.TypeIntArray, dataref.TypeByteArray:
		default:
			return errors.Newf(op, errors.KindConfig, "%s: invalid dataref type %d", key, int(spec.Type))
		}
		if spec.Required && spec.Default == nil {
			return errors.Newf(op, errors.KindConfig,
				"%s: required spec must declare a default", key)
		}
	}
	return nil
}

// RegisterAll pre-registers every spec with its declared type and default.
// Registration is idempotent, so specs another plugin already established
// are left untouched.
func (m *Monitor) RegisterAll() error {
	for _, key := range m.keys {
		spec := m.specs[key]
		if _, err := m.reg.Register(spec.Path, spec.Type, spec.Writable, spec.Default); err != nil {
			return err
		}
	}
	return nil
}

// Poll attempts to bind every still-unbound spec and reports whether the
// whole set is ready. Tick 0 is the host's startup-probe convention and is
// always "not ready". Binding stops at the first failure each tick and
// retries next tick. Once the elapsed tick count exceeds the timeout the
// owning plugin is disabled — a terminal outcome.
func (m *Monitor) Poll(tick int) bool {
	if m.failed {
		return false
	}

	if tick == 0 {
		m.started = true
		m.startTick = 0
		m.lastWarnTick = 0
		return false
	}
	if !m.started {
		m.started = true
		m.startTick = tick
		m.lastWarnTick = tick
	}

	// Fast path: readiness is permanent once reached.
	if len(m.bound) == len(m.specs) {
		return true
	}

	for _, key := range m.keys {
		if _, ok := m.bound[key]; ok {
			continue
		}
		spec := m.specs[key]

		h, ok := m.reg.Lookup(spec.Path)
		if !ok {
			break
		}
		info, ok := m.reg.Info(h)
		if !ok {
			break
		}
		if info.Dummy || info.Type != spec.Type {
			m.logger.Debug("dataref not yet type-matched",
				"path", spec.Path, "want", spec.Type.String(), "got", info.Type.String())
			break
		}
		m.bound[key] = &Accessor{reg: m.reg, handle: h, typ: spec.Type}
	}

	if len(m.bound) != len(m.specs) {
		elapsed := tick - m.startTick
		if elapsed > m.timeout {
			if tick-m.lastWarnTick >= m.warnEvery {
				m.logger.Warn("required datarefs still not ready", "elapsed_ticks", elapsed)
				m.lastWarnTick = tick
			}
			errors.Report(errors.Newf("readiness.Poll", errors.KindTimeout,
				"required datarefs not available after %d ticks; disabling plugin %d", elapsed, m.owner))
			if m.disabler != nil {
				m.disabler.DisablePlugin(m.owner)
			}
			m.failed = true
		}
		return false
	}
	return true
}

// Accessor returns the bound accessor for a spec key, or nil while unbound.
func (m *Monitor) Accessor(key string) *Accessor {
	return m.bound[key]
}

// Ready reports the current state without scanning.
func (m *Monitor) Ready() bool {
	return !m.failed && len(m.bound) == len(m.specs)
}
