// Package ota implements the outside-air-temperature plugin: it reads the
// OAT and electrical bus voltages from the dataref registry and pushes
// display frames to an external device once the avionics bus is powered.
package ota

import (
	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/flightloop"
	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/plugin"
	"github.com/speedsim/simless/pkg/readiness"
	"github.com/speedsim/simless/pkg/runner"
)

// PluginName is the factory-registry name.
const PluginName = "ota"

const (
	// OATPath is the outside air temperature in degrees C.
	OATPath = "sim/cockpit2/temperature/outside_air_temp_degc"
	// BusVoltsPath carries one voltage per electrical bus.
	BusVoltsPath = "sim/cockpit2/electrical/bus_volts"

	// avionicsPowerThreshold is the bus voltage above which the avionics
	// are considered powered.
	avionicsPowerThreshold = 8.0

	// Retry intervals in sim seconds.
	notReadyInterval   = 0.5
	deviceLostInterval = 10.0
	displayInterval    = 2.0
)

func init() {
	runner.Register(PluginName, func(ctx *harness.Context) plugin.Plugin {
		return New(ctx, NewMemoryDevice())
	})
}

// specs declares the datarefs the plugin depends on.
func specs() map[string]readiness.Spec {
	return map[string]readiness.Spec{
		"oat_c": {
			Path:     OATPath,
			Type:     dataref.TypeFloat,
			Writable: true,
			Required: true,
			Default:  float32(10.0),
		},
		"bus_volts": {
			Path:     BusVoltsPath,
			Type:     dataref.TypeFloatArray,
			Writable: true,
			Required: true,
			Default:  []float32{0, 0, 0, 0},
		},
	}
}

// DetectAvionicsBus picks the bus index feeding the avionics: a powered bus
// that sits measurably below the hottest one (the battery or alternator bus).
// Falls back to bus 1 when the shape is ambiguous.
func DetectAvionicsBus(volts []float32) int {
	if len(volts) == 0 {
		return 1
	}
	peak := volts[0]
	for _, v := range volts[1:] {
		if v > peak {
			peak = v
		}
	}
	for i, v := range volts {
		if v > 1.0 && v < peak-0.5 {
			return i
		}
	}
	return 1
}

// Plugin drives the OAT display device.
type Plugin struct {
	ctx     *harness.Context
	device  Device
	monitor *readiness.Monitor
	loop    flightloop.ID
	hasLoop bool
}

// New builds the plugin around a device. The registered factory uses an
// in-memory device; a real deployment injects the serial one.
func New(ctx *harness.Context, device Device) *Plugin {
	return &Plugin{ctx: ctx, device: device}
}

// Start declares identity and pre-registers the dataref specs.
func (p *Plugin) Start() (plugin.Info, error) {
	info := plugin.Info{
		Name:        "OTA display v1.0",
		Signature:   "ota.speedsim.simless",
		Description: "Display outside air temp on an external device",
	}

	m, err := readiness.NewMonitor(p.ctx.Datarefs, specs(), p.ctx.MyID(), p.ctx.Harness,
		readiness.Options{Logger: p.ctx.Logger()})
	if err != nil {
		return info, err
	}
	if err := m.RegisterAll(); err != nil {
		return info, err
	}
	p.monitor = m
	return info, nil
}

// Enable refuses when the device is gone, otherwise schedules the display
// loop for the next tick.
func (p *Plugin) Enable() bool {
	if !p.device.Ready() {
		p.ctx.Log("ota: display device unavailable")
		return false
	}
	p.loop = p.ctx.Loops.Create(p.flightLoop, flightloop.PhaseBeforeFlightModel, nil, p.ctx.MyID())
	p.ctx.Loops.Schedule(p.loop, -1)
	p.hasLoop = true
	return true
}

func (p *Plugin) flightLoop(since, elapsed float64, counter int, ref any) float64 {
	if !p.monitor.Poll(counter) {
		return notReadyInterval
	}
	if !p.device.Ready() {
		return deviceLostInterval
	}

	temp, err := p.monitor.Accessor("oat_c").Float()
	if err != nil {
		p.ctx.Log("ota: oat read failed: " + err.Error())
		return displayInterval
	}
	volts, err := p.monitor.Accessor("bus_volts").Floats()
	if err != nil {
		p.ctx.Log("ota: bus volts read failed: " + err.Error())
		return displayInterval
	}

	avionics := false
	if idx := DetectAvionicsBus(volts); idx < len(volts) {
		avionics = float64(volts[idx]) > avionicsPowerThreshold
	}

	if err := p.device.Display(Frame{TempC: float64(temp), Avionics: avionics}); err != nil {
		p.ctx.Log("ota: display write failed: " + err.Error())
		return deviceLostInterval
	}
	return displayInterval
}

// Disable tears down the loop and closes the device connection.
func (p *Plugin) Disable() {
	if p.hasLoop {
		p.ctx.Loops.Destroy(p.loop)
		p.hasLoop = false
	}
	if err := p.device.Close(); err != nil {
		p.ctx.Log("ota: device close failed: " + err.Error())
	}
}

// Stop has nothing left to release.
func (p *Plugin) Stop() {}
