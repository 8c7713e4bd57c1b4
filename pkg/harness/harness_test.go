package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/flightloop"
)

func TestNewWiresSubsystems(t *testing.T) {
	h := New(Options{})

	require.NotNil(t, h.Datarefs)
	require.NotNil(t, h.Widgets)
	require.NotNil(t, h.Loops)
	require.NotNil(t, h.Graphics)
	assert.NotEmpty(t, h.RunID())
	assert.InDelta(t, flightloop.DefaultStep, h.Loops.Step(), 1e-12)
}

func TestElapsedTimeTracksTicks(t *testing.T) {
	h := New(Options{Step: 0.25})

	assert.Zero(t, h.ElapsedTime())
	h.Loops.Tick()
	h.Loops.Tick()
	assert.InDelta(t, 0.5, h.ElapsedTime(), 1e-9)
}

func TestDisablePluginSuppressesFlightLoops(t *testing.T) {
	h := New(Options{Step: 1.0})

	calls := 0
	id := h.Loops.Create(func(since, elapsed float64, counter int, ref any) float64 {
		calls++
		return -1
	}, flightloop.PhaseBeforeFlightModel, nil, 7)
	h.Loops.Schedule(id, -1)

	h.Loops.Tick()
	require.Equal(t, 1, calls)

	h.DisablePlugin(7)
	assert.True(t, h.PluginDisabled(7))
	h.Loops.Tick()
	assert.Equal(t, 1, calls, "disabled plugin's loop must not fire")
}

func TestDisableIgnoresHarnessID(t *testing.T) {
	h := New(Options{})

	h.DisablePlugin(0)
	assert.False(t, h.PluginDisabled(0))
}

func TestQuitRequestLatch(t *testing.T) {
	h := New(Options{})

	assert.False(t, h.QuitRequested())
	h.RequestQuit()
	assert.True(t, h.QuitRequested())
}

func TestContextCarriesPluginID(t *testing.T) {
	h := New(Options{})
	ctx := h.NewContext(3)

	assert.Equal(t, 3, ctx.MyID())
	// The embedded façade is the same harness, not a copy.
	handle := ctx.Datarefs.Find("sim/test/shared")
	require.NoError(t, ctx.Datarefs.SetFloat(handle, 1.5))

	got, err := h.Datarefs.GetFloat(h.Datarefs.Find("sim/test/shared"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-6)
}

func TestSeparateHarnessesDoNotShareState(t *testing.T) {
	a := New(Options{})
	b := New(Options{})

	ha := a.Datarefs.Find("sim/test/isolated")
	require.NoError(t, a.Datarefs.SetInt(ha, 42))

	_, ok := b.Datarefs.Lookup("sim/test/isolated")
	assert.False(t, ok)
	assert.Equal(t, dataref.TypeUnset, mustInfo(t, a, "missing"))
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func mustInfo(t *testing.T, h *Harness, name string) dataref.Type {
	t.Helper()
	handle := h.Datarefs.Find(name)
	info, ok := h.Datarefs.Info(handle)
	require.True(t, ok)
	return info.Type
}
