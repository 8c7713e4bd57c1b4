// Package otagui is the development GUI for the OTA plugin: a window with a
// slider that overrides the outside air temperature, and a close button that
// ends the run. It exists so the display pipeline can be exercised without
// flying an aircraft.
package otagui

import (
	"fmt"

	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/plugin"
	"github.com/speedsim/simless/pkg/plugins/ota"
	"github.com/speedsim/simless/pkg/runner"
	"github.com/speedsim/simless/pkg/widget"
)

// PluginName is the factory-registry name.
const PluginName = "ota-gui"

const (
	sliderMin = -50
	sliderMax = 50
)

func init() {
	runner.Register(PluginName, func(ctx *harness.Context) plugin.Plugin {
		return New(ctx)
	})
}

// Plugin owns the OTA control window.
type Plugin struct {
	ctx *harness.Context

	win    widget.ID
	slider widget.ID
	quit   widget.ID
}

// New builds the GUI plugin.
func New(ctx *harness.Context) *Plugin {
	return &Plugin{ctx: ctx}
}

// Window returns the root window id, 0 before Enable.
func (p *Plugin) Window() widget.ID { return p.win }

// Slider returns the temperature slider id, 0 before Enable.
func (p *Plugin) Slider() widget.ID { return p.slider }

// QuitButton returns the close button id, 0 before Enable.
func (p *Plugin) QuitButton() widget.ID { return p.quit }

// Start declares identity.
func (p *Plugin) Start() (plugin.Info, error) {
	return plugin.Info{
		Name:        "Dev OTA GUI",
		Signature:   "simless.dev.ota.gui",
		Description: "Development GUI for adjusting outside air temperature",
	}, nil
}

// Enable builds the window tree and wires the callbacks.
func (p *Plugin) Enable() bool {
	tree := p.ctx.Widgets
	owner := p.ctx.MyID()
	oat := p.ctx.Datarefs.Find(ota.OATPath)

	p.win = tree.Create(widget.Geometry{Left: 100, Top: 500, Right: 500, Bottom: 100},
		widget.ClassMainWindow, "Simless OTA Control", true, 0)
	tree.Create(widget.Geometry{Left: 120, Top: 460, Right: 480, Bottom: 430},
		widget.ClassCaption, "Adjust Outside Air Temperature (degC)", true, p.win)

	p.slider = tree.Create(widget.Geometry{Left: 120, Top: 420, Right: 480, Bottom: 380},
		widget.ClassScrollBar, "OAT Slider", true, p.win)
	tree.SetProperty(p.slider, widget.PropScrollBarMin, sliderMin)
	tree.SetProperty(p.slider, widget.PropScrollBarMax, sliderMax)
	tree.SetProperty(p.slider, widget.PropScrollBarSliderPosition, 0)

	p.quit = tree.Create(widget.Geometry{Left: 120, Top: 340, Right: 260, Bottom: 300},
		widget.ClassButton, "Close", true, p.win)

	tree.AddCallback(p.slider, owner, func(w widget.ID, msg widget.Message, param1, param2 any) {
		if msg != widget.MsgMouseDrag {
			return
		}
		temp := tree.IntProperty(p.slider, widget.PropScrollBarSliderPosition, 0)
		if err := p.ctx.Datarefs.SetFloat(oat, float32(temp)); err != nil {
			p.ctx.Log("ota-gui: oat override failed: " + err.Error())
			return
		}
		p.ctx.Log(fmt.Sprintf("ota-gui: oat override %d degC", temp))
	})

	tree.AddCallback(p.quit, owner, func(w widget.ID, msg widget.Message, param1, param2 any) {
		if msg != widget.MsgMouseDown {
			return
		}
		p.destroyWindow()
		p.ctx.RequestQuit()
	})

	return true
}

func (p *Plugin) destroyWindow() {
	if p.win == 0 {
		return
	}
	tree := p.ctx.Widgets
	// Destroy has no child cascade; take the children down first.
	for _, id := range tree.Children(p.win) {
		tree.Destroy(id)
	}
	tree.Destroy(p.win)
	p.win, p.slider, p.quit = 0, 0, 0
}

// Disable removes the window if it is still up.
func (p *Plugin) Disable() {
	p.destroyWindow()
}

// Stop has nothing left to release.
func (p *Plugin) Stop() {}
