// Package flightloop owns all periodic callback state of the simless
// harness: flight loop creation, interval-based rescheduling, and the
// monotonic simulated clock that advances by a fixed step once per frame.
// Wall-clock time never reaches the simulated timeline.
package flightloop

import (
	"log/slog"
	"math"

	"github.com/speedsim/simless/pkg/errors"
)

// DefaultStep is the simulated seconds added per tick (a 60 Hz frame).
const DefaultStep = 1.0 / 60.0

// ID identifies a flight loop. The zero ID is invalid.
type ID int

// Phase selects when a loop runs relative to the flight model. The harness
// keeps the value for ABI compatibility; all loops run within the same tick.
type Phase int

const (
	PhaseBeforeFlightModel Phase = 0
	PhaseAfterFlightModel  Phase = 1
)

// Callback is a flight-loop body. sinceLast and elapsed are simulated
// seconds since this loop last fired, counter is the number of completed
// calls before this one, and ref is the context given at creation. The
// return value reschedules the loop: positive means that many simulated
// seconds ahead, zero means do not fire again, negative keeps the previous
// interval.
type Callback func(sinceLast, elapsed float64, counter int, ref any) float64

// loop is the scheduler-owned state for one flight loop.
type loop struct {
	id       ID
	cb       Callback
	phase    Phase
	ref      any
	owner    int
	interval float64
	nextFire float64
	lastFire float64
	counter  int
	active   bool
}

// OwnerFilter suppresses firing for loops owned by disabled plugins.
type OwnerFilter interface {
	Disabled(owner int) bool
}

// Scheduler drives all flight loops against a fixed-step simulated clock.
// Not safe for concurrent use; the tick loop is the only driver.
type Scheduler struct {
	loops  map[ID]*loop
	order  []ID
	nextID ID
	now    float64
	step   float64
	filter OwnerFilter
	logger *slog.Logger
}

// NewScheduler creates a scheduler. A non-positive step means DefaultStep;
// a nil logger means slog.Default().
func NewScheduler(step float64, logger *slog.Logger) *Scheduler {
	if step <= 0 {
		step = DefaultStep
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		loops:  make(map[ID]*loop),
		nextID: 1,
		step:   step,
		logger: logger,
	}
}

// SetOwnerFilter installs the disabled-plugin filter consulted by Tick.
func (s *Scheduler) SetOwnerFilter(f OwnerFilter) {
	s.filter = f
}

// Now returns the current simulated time in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Step returns the simulated seconds added per tick.
func (s *Scheduler) Step() float64 { return s.step }

// Create registers a flight loop without scheduling it. The owner is the
// creating plugin's id; owner 0 is never suppressed.
func (s *Scheduler) Create(cb Callback, phase Phase, ref any, owner int) ID {
	id := s.nextID
	s.nextID++
	s.loops[id] = &loop{
		id:       id,
		cb:       cb,
		phase:    phase,
		ref:      ref,
		owner:    owner,
		nextFire: math.Inf(1),
		active:   true,
	}
	s.order = append(s.order, id)
	s.logger.Debug("flight loop created", "id", int(id), "phase", int(phase), "owner", owner)
	return id
}

// Schedule arms a flight loop. interval < 0 fires on the very next tick,
// interval == 0 disarms it, interval > 0 fires that many simulated seconds
// from now.
func (s *Scheduler) Schedule(id ID, interval float64) {
	l, ok := s.loops[id]
	if !ok {
		return
	}
	l.interval = interval
	l.lastFire = s.now
	switch {
	case interval < 0:
		l.nextFire = s.now
	case interval == 0:
		l.nextFire = math.Inf(1)
	default:
		l.nextFire = s.now + interval
	}
}

// Destroy removes a flight loop; subsequent ticks ignore the id.
func (s *Scheduler) Destroy(id ID) {
	if _, ok := s.loops[id]; !ok {
		return
	}
	delete(s.loops, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Debug("flight loop destroyed", "id", int(id))
}

// NextFireTime returns the simulated time a loop will next fire, or -1 when
// the loop does not exist or is not scheduled.
func (s *Scheduler) NextFireTime(id ID) float64 {
	l, ok := s.loops[id]
	if !ok || math.IsInf(l.nextFire, 1) {
		return -1
	}
	return l.nextFire
}

// Len returns the number of live flight loops.
func (s *Scheduler) Len() int { return len(s.loops) }

// Tick advances the simulated clock one step and fires every due loop in
// creation order. A callback's return value reschedules it; a recovered
// panic keeps the previous interval.
func (s *Scheduler) Tick() {
	s.now += s.step

	// Snapshot the order: callbacks may create or destroy loops mid-tick.
	due := make([]ID, len(s.order))
	copy(due, s.order)

	for _, id := range due {
		l, ok := s.loops[id]
		if !ok || !l.active || l.nextFire > s.now {
			continue
		}
		if s.filter != nil && l.owner != 0 && s.filter.Disabled(l.owner) {
			continue
		}

		since := s.now - l.lastFire
		ret, panicked := s.invoke(l, since)
		l.lastFire = s.now
		l.counter++

		interval := l.interval
		if !panicked {
			switch {
			case ret > 0:
				interval = ret
			case ret == 0:
				interval = 0
			default:
				// Negative keeps the previous interval.
			}
		}
		l.interval = interval
		switch {
		case interval < 0:
			l.nextFire = s.now
		case interval == 0:
			l.nextFire = math.Inf(1)
		default:
			l.nextFire = s.now + interval
		}
	}
}

func (s *Scheduler) invoke(l *loop, since float64) (ret float64, panicked bool) {
	panicked = true
	defer errors.Recover("flightloop.Tick")
	ret = l.cb(since, since, l.counter, l.ref)
	panicked = false
	return ret, panicked
}
