// Package graphics provides the drawing surface of the simless harness:
// draw-callback registration, text drawing, a texture-id allocator, and
// screen/mouse queries. It is not a renderer — drawing is forwarded to an
// opaque Backend, and with none attached every call is a cheap state
// mutation or log line, which keeps headless runs deterministic.
package graphics

import (
	"fmt"
	"log/slog"

	"github.com/speedsim/simless/pkg/errors"
)

// Phase selects when a draw callback runs. Values follow the host ABI.
type Phase int

const (
	// PhaseScene runs while the 3-D scene is drawn.
	PhaseScene Phase = 25
	// PhaseWindow runs with the 2-D window overlays.
	PhaseWindow Phase = 40
)

// DrawCallback is invoked once per frame for each registration.
type DrawCallback func(phase Phase, before bool)

// CallbackID identifies one draw-callback registration.
type CallbackID int

// Backend is the opaque rendering surface. BeginFrame returns false once the
// surface has been closed by the user, which ends the run loop.
type Backend interface {
	BeginFrame() bool
	DrawText(x, y int, text string, color [3]float32)
	EndFrame()
	Close()
}

// OwnerFilter suppresses draw callbacks owned by disabled plugins.
type OwnerFilter interface {
	Disabled(owner int) bool
}

type registration struct {
	id     CallbackID
	cb     DrawCallback
	phase  Phase
	before bool
	owner  int
}

// System holds all drawing state for one harness run.
type System struct {
	callbacks []registration
	nextCB    CallbackID
	backend   Backend
	filter    OwnerFilter
	logger    *slog.Logger

	nextTexture int
	textures    map[int]struct{}

	screenW, screenH int
	mouseX, mouseY   int
}

// NewSystem creates a graphics system with a 1920x1080 virtual screen.
// A nil logger means slog.Default().
func NewSystem(logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	return &System{
		nextCB:      1,
		nextTexture: 1,
		textures:    make(map[int]struct{}),
		screenW:     1920,
		screenH:     1080,
		logger:      logger,
	}
}

// AttachBackend connects a rendering backend; nil means headless.
func (s *System) AttachBackend(b Backend) { s.backend = b }

// Backend returns the attached backend, nil when headless.
func (s *System) Backend() Backend { return s.backend }

// SetOwnerFilter installs the disabled-plugin filter.
func (s *System) SetOwnerFilter(f OwnerFilter) { s.filter = f }

// RegisterDrawCallback adds a per-frame draw callback and returns its
// registration id. Owner 0 is never suppressed.
func (s *System) RegisterDrawCallback(cb DrawCallback, phase Phase, before bool, owner int) CallbackID {
	id := s.nextCB
	s.nextCB++
	s.callbacks = append(s.callbacks, registration{id: id, cb: cb, phase: phase, before: before, owner: owner})
	return id
}

// UnregisterDrawCallback removes a registration by id.
func (s *System) UnregisterDrawCallback(id CallbackID) {
	for i, reg := range s.callbacks {
		if reg.id == id {
			s.callbacks = append(s.callbacks[:i], s.callbacks[i+1:]...)
			return
		}
	}
}

// RunDrawCallbacks invokes every registered draw callback in registration
// order. Panics are recovered per callback and never break the frame.
func (s *System) RunDrawCallbacks() {
	snapshot := make([]registration, len(s.callbacks))
	copy(snapshot, s.callbacks)
	for _, reg := range snapshot {
		if s.filter != nil && reg.owner != 0 && s.filter.Disabled(reg.owner) {
			continue
		}
		s.invoke(reg)
	}
}

func (s *System) invoke(reg registration) {
	defer errors.Recover("graphics.RunDrawCallbacks")
	reg.cb(reg.phase, reg.before)
}

// DrawString draws text at the given screen position. Headless mode logs at
// debug level instead.
func (s *System) DrawString(color [3]float32, x, y int, text string) {
	if s.backend == nil {
		s.logger.Debug("draw string", "x", x, "y", y, "text", text)
		return
	}
	s.backend.DrawText(x, y, text, color)
}

// DrawNumber draws a number formatted to the given width and precision.
func (s *System) DrawNumber(color [3]float32, x, y int, number float64, digits, decimals int) {
	s.DrawString(color, x, y, fmt.Sprintf("%*.*f", digits, decimals, number))
}

// GenerateTextureNumbers allocates count texture ids.
func (s *System) GenerateTextureNumbers(count int) []int {
	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := s.nextTexture
		s.nextTexture++
		s.textures[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// BindTexture is a no-op kept for ABI compatibility.
func (s *System) BindTexture(textureID, unit int) {}

// DeleteTexture releases a texture id.
func (s *System) DeleteTexture(textureID int) {
	delete(s.textures, textureID)
}

// ScreenSize returns the virtual screen dimensions.
func (s *System) ScreenSize() (w, h int) { return s.screenW, s.screenH }

// MouseLocation returns the last known mouse position.
func (s *System) MouseLocation() (x, y int) { return s.mouseX, s.mouseY }

// SetMouseLocation records a mouse position, used by backends and tests.
func (s *System) SetMouseLocation(x, y int) { s.mouseX, s.mouseY = x, y }
