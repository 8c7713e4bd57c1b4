package ota

// Frame is one display update sent to the device.
type Frame struct {
	TempC    float64
	Avionics bool
}

// Device is the outside-air-temperature display. The real hardware sits on a
// serial link; the harness only needs the display contract.
type Device interface {
	// Ready reports whether the device can accept frames. The plugin backs
	// off and retries when the device drops.
	Ready() bool
	// Display pushes a temperature and avionics power state to the device.
	Display(f Frame) error
	// Close releases the connection.
	Close() error
}

// MemoryDevice is an in-process Device that records every accepted frame.
// Consecutive identical frames are dropped, matching the hardware's own
// refresh suppression.
type MemoryDevice struct {
	frames []Frame
	ready  bool
	closed bool
}

// NewMemoryDevice returns a ready in-memory device.
func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{ready: true}
}

// SetReady toggles availability, for exercising the retry path.
func (d *MemoryDevice) SetReady(ready bool) { d.ready = ready }

// Ready implements Device.
func (d *MemoryDevice) Ready() bool { return d.ready && !d.closed }

// Display implements Device.
func (d *MemoryDevice) Display(f Frame) error {
	if n := len(d.frames); n > 0 && d.frames[n-1] == f {
		return nil
	}
	d.frames = append(d.frames, f)
	return nil
}

// Close implements Device.
func (d *MemoryDevice) Close() error {
	d.closed = true
	return nil
}

// Frames returns the recorded frames in arrival order.
func (d *MemoryDevice) Frames() []Frame { return d.frames }

// Closed reports whether Close has been called.
func (d *MemoryDevice) Closed() bool { return d.closed }
