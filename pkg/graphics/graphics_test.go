package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedsim/simless/pkg/errors"
)

type nopHandler struct{}

func (nopHandler) HandleError(err *errors.Error)     {}
func (nopHandler) HandlePanic(err *errors.PanicError) {}

func TestDrawCallbacksRunInRegistrationOrder(t *testing.T) {
	s := NewSystem(nil)

	var order []string
	s.RegisterDrawCallback(func(Phase, bool) { order = append(order, "a") }, PhaseScene, false, 0)
	s.RegisterDrawCallback(func(Phase, bool) { order = append(order, "b") }, PhaseWindow, true, 0)
	s.RegisterDrawCallback(func(Phase, bool) { order = append(order, "c") }, PhaseWindow, false, 0)

	s.RunDrawCallbacks()
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestUnregisterStopsCallback(t *testing.T) {
	s := NewSystem(nil)

	calls := 0
	id := s.RegisterDrawCallback(func(Phase, bool) { calls++ }, PhaseWindow, false, 0)

	s.RunDrawCallbacks()
	s.UnregisterDrawCallback(id)
	s.RunDrawCallbacks()

	assert.Equal(t, 1, calls)
}

func TestPanicDoesNotBreakFrame(t *testing.T) {
	errors.SetHandler(nopHandler{})
	defer errors.SetHandler(nil)

	s := NewSystem(nil)

	ran := false
	s.RegisterDrawCallback(func(Phase, bool) { panic("boom") }, PhaseScene, false, 0)
	s.RegisterDrawCallback(func(Phase, bool) { ran = true }, PhaseScene, false, 0)

	s.RunDrawCallbacks()
	assert.True(t, ran, "callback after the panicking one should still run")
}

type blocked struct{ owner int }

func (b blocked) Disabled(owner int) bool { return owner == b.owner }

func TestOwnerFilterSuppressesCallbacks(t *testing.T) {
	s := NewSystem(nil)
	s.SetOwnerFilter(blocked{owner: 2})

	var ran []int
	s.RegisterDrawCallback(func(Phase, bool) { ran = append(ran, 1) }, PhaseWindow, false, 1)
	s.RegisterDrawCallback(func(Phase, bool) { ran = append(ran, 2) }, PhaseWindow, false, 2)

	s.RunDrawCallbacks()
	assert.Equal(t, []int{1}, ran)
}

func TestCallbackReceivesPhaseAndBefore(t *testing.T) {
	s := NewSystem(nil)

	var gotPhase Phase
	var gotBefore bool
	s.RegisterDrawCallback(func(p Phase, before bool) {
		gotPhase = p
		gotBefore = before
	}, PhaseWindow, true, 0)

	s.RunDrawCallbacks()
	assert.Equal(t, PhaseWindow, gotPhase)
	assert.True(t, gotBefore)
}

func TestTextureNumbersAreUnique(t *testing.T) {
	s := NewSystem(nil)

	first := s.GenerateTextureNumbers(3)
	second := s.GenerateTextureNumbers(2)
	require.Len(t, first, 3)
	require.Len(t, second, 2)

	seen := map[int]bool{}
	for _, id := range append(first, second...) {
		assert.False(t, seen[id], "texture id %d allocated twice", id)
		seen[id] = true
	}

	s.DeleteTexture(first[0])
	third := s.GenerateTextureNumbers(1)
	assert.NotContains(t, second, third[0])
}

func TestScreenAndMouseState(t *testing.T) {
	s := NewSystem(nil)

	w, h := s.ScreenSize()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	s.SetMouseLocation(320, 640)
	x, y := s.MouseLocation()
	assert.Equal(t, 320, x)
	assert.Equal(t, 640, y)
}

type recordingBackend struct {
	texts []string
}

func (r *recordingBackend) BeginFrame() bool { return true }
func (r *recordingBackend) DrawText(x, y int, text string, color [3]float32) {
	r.texts = append(r.texts, text)
}
func (r *recordingBackend) EndFrame() {}
func (r *recordingBackend) Close()    {}

func TestDrawNumberFormatsPrecision(t *testing.T) {
	s := NewSystem(nil)
	b := &recordingBackend{}
	s.AttachBackend(b)

	s.DrawNumber([3]float32{1, 1, 1}, 10, 20, 123.456, 8, 2)
	require.Len(t, b.texts, 1)
	assert.Equal(t, "  123.46", b.texts[0])
}
