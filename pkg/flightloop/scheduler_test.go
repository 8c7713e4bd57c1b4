package flightloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedsim/simless/pkg/errors"
)

type firing struct {
	since   float64
	counter int
	ref     any
}

func TestScheduleNegativeFiresNextTick(t *testing.T) {
	s := NewScheduler(0, nil)

	var fired []firing
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		fired = append(fired, firing{since, counter, ref})
		return 0
	}, PhaseBeforeFlightModel, "ctx", 0)
	s.Schedule(id, -1)

	s.Tick()
	require.Len(t, fired, 1)
	assert.InDelta(t, DefaultStep, fired[0].since, 1e-9)
	assert.Equal(t, 0, fired[0].counter)
	assert.Equal(t, "ctx", fired[0].ref)

	// Returned 0: no further firing.
	s.Tick()
	s.Tick()
	assert.Len(t, fired, 1)
}

func TestPositiveIntervalFiresAfterSimSeconds(t *testing.T) {
	s := NewScheduler(0.5, nil)

	var count int
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		count++
		return -1 // keep the previous interval
	}, PhaseAfterFlightModel, nil, 0)
	s.Schedule(id, 1.0)

	s.Tick() // now=0.5
	assert.Equal(t, 0, count)
	s.Tick() // now=1.0, due
	assert.Equal(t, 1, count)
	s.Tick() // now=1.5
	assert.Equal(t, 1, count)
	s.Tick() // now=2.0, due again: negative return kept the 1.0s interval
	assert.Equal(t, 2, count)
}

func TestReturnPositiveReschedules(t *testing.T) {
	s := NewScheduler(1.0, nil)

	var count int
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		count++
		return 3.0
	}, PhaseBeforeFlightModel, nil, 0)
	s.Schedule(id, -1)

	s.Tick() // fires, reschedules 3s ahead (now=1 → due at 4)
	assert.Equal(t, 1, count)
	s.Tick() // now=2
	s.Tick() // now=3
	assert.Equal(t, 1, count)
	s.Tick() // now=4, due
	assert.Equal(t, 2, count)
}

func TestScheduleZeroDisarms(t *testing.T) {
	s := NewScheduler(0, nil)

	var count int
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		count++
		return -1
	}, PhaseBeforeFlightModel, nil, 0)
	s.Schedule(id, -1)
	s.Schedule(id, 0)

	s.Tick()
	assert.Equal(t, 0, count)
	assert.Equal(t, float64(-1), s.NextFireTime(id))
}

func TestCounterIncrements(t *testing.T) {
	s := NewScheduler(0, nil)

	var counters []int
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		counters = append(counters, counter)
		return -1
	}, PhaseBeforeFlightModel, nil, 0)
	s.Schedule(id, -1)

	s.Tick()
	s.Tick()
	s.Tick()
	assert.Equal(t, []int{0, 1, 2}, counters)
}

func TestDestroyStopsFiring(t *testing.T) {
	s := NewScheduler(0, nil)

	var count int
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		count++
		return -1
	}, PhaseBeforeFlightModel, nil, 0)
	s.Schedule(id, -1)

	s.Tick()
	s.Destroy(id)
	s.Tick()
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.Len())
}

func TestPanicKeepsPreviousInterval(t *testing.T) {
	prev := errors.DefaultHandler
	errors.SetHandler(&nopHandler{})
	defer errors.SetHandler(prev)

	s := NewScheduler(1.0, nil)

	var calls int
	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 {
		calls++
		panic("misbehaving plugin")
	}, PhaseBeforeFlightModel, nil, 0)
	s.Schedule(id, 2.0)

	s.Tick() // now=1
	s.Tick() // now=2, fires and panics
	assert.Equal(t, 1, calls)
	// Previous interval (2.0s) kept: due again at now=4.
	s.Tick() // now=3
	assert.Equal(t, 1, calls)
	s.Tick() // now=4
	assert.Equal(t, 2, calls)
}

func TestStableOrderForEqualDueTimes(t *testing.T) {
	s := NewScheduler(0, nil)

	var order []string
	mk := func(name string) Callback {
		return func(since, elapsed float64, counter int, ref any) float64 {
			order = append(order, name)
			return -1
		}
	}
	a := s.Create(mk("a"), PhaseBeforeFlightModel, nil, 0)
	b := s.Create(mk("b"), PhaseBeforeFlightModel, nil, 0)
	s.Schedule(b, -1)
	s.Schedule(a, -1)

	s.Tick()
	s.Tick()
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

func TestOwnerFilterSuppressesDisabled(t *testing.T) {
	s := NewScheduler(0, nil)
	s.SetOwnerFilter(staticFilter{2: true})

	var fired []int
	mk := func(owner int) Callback {
		return func(since, elapsed float64, counter int, ref any) float64 {
			fired = append(fired, owner)
			return -1
		}
	}
	a := s.Create(mk(1), PhaseBeforeFlightModel, nil, 1)
	b := s.Create(mk(2), PhaseBeforeFlightModel, nil, 2)
	s.Schedule(a, -1)
	s.Schedule(b, -1)

	s.Tick()
	assert.Equal(t, []int{1}, fired)
}

func TestNextFireTimeQuery(t *testing.T) {
	s := NewScheduler(1.0, nil)

	id := s.Create(func(since, elapsed float64, counter int, ref any) float64 { return 0 },
		PhaseBeforeFlightModel, nil, 0)
	assert.Equal(t, float64(-1), s.NextFireTime(id))

	s.Schedule(id, 5.0)
	assert.InDelta(t, 5.0, s.NextFireTime(id), 1e-9)

	assert.Equal(t, float64(-1), s.NextFireTime(ID(999)))
}

type staticFilter map[int]bool

func (f staticFilter) Disabled(owner int) bool { return f[owner] }

type nopHandler struct{}

func (nopHandler) HandleError(*errors.Error)      {}
func (nopHandler) HandlePanic(*errors.PanicError) {}
