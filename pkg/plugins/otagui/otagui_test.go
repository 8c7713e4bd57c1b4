package otagui_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/plugin"
	"github.com/speedsim/simless/pkg/plugins/ota"
	"github.com/speedsim/simless/pkg/plugins/otagui"
	"github.com/speedsim/simless/pkg/runner"
	"github.com/speedsim/simless/pkg/simtest"
	"github.com/speedsim/simless/pkg/widget"
)

func install(t *testing.T) (string, *captured) {
	t.Helper()
	c := &captured{}
	name := fmt.Sprintf("%s/ota-gui", t.Name())
	runner.Register(name, func(ctx *harness.Context) plugin.Plugin {
		c.p = otagui.New(ctx)
		return c.p
	})
	t.Cleanup(func() { runner.Deregister(name) })
	return name, c
}

type captured struct{ p *otagui.Plugin }

func TestEnableBuildsWindowTree(t *testing.T) {
	name, c := install(t)
	s := simtest.New(t)
	s.Boot(name)

	tree := s.H.Widgets
	require.NotZero(t, c.p.Window())
	assert.Equal(t, widget.ClassMainWindow, tree.Class(c.p.Window()))
	assert.Equal(t, "Simless OTA Control", tree.Descriptor(c.p.Window()))

	children := tree.Children(c.p.Window())
	assert.Len(t, children, 3, "caption, slider and close button")

	assert.Equal(t, widget.ClassScrollBar, tree.Class(c.p.Slider()))
	assert.Equal(t, -50, tree.IntProperty(c.p.Slider(), widget.PropScrollBarMin, 99))
	assert.Equal(t, 50, tree.IntProperty(c.p.Slider(), widget.PropScrollBarMax, 99))
}

func TestSliderDragOverridesOAT(t *testing.T) {
	name, c := install(t)
	s := simtest.New(t)
	s.Boot(name)

	tree := s.H.Widgets
	tree.SetProperty(c.p.Slider(), widget.PropScrollBarSliderPosition, -12)
	tree.Dispatch(c.p.Slider(), widget.MsgMouseDrag, nil, nil)

	h, ok := s.H.Datarefs.Lookup(ota.OATPath)
	require.True(t, ok)
	got, err := s.H.Datarefs.GetFloat(h)
	require.NoError(t, err)
	assert.InDelta(t, -12.0, got, 1e-6)
}

func TestSliderIgnoresOtherMessages(t *testing.T) {
	name, c := install(t)
	s := simtest.New(t)
	s.Boot(name)

	tree := s.H.Widgets
	tree.SetProperty(c.p.Slider(), widget.PropScrollBarSliderPosition, 30)
	tree.Dispatch(c.p.Slider(), widget.MsgMouseUp, nil, nil)

	h := s.H.Datarefs.Find(ota.OATPath)
	info, ok := s.H.Datarefs.Info(h)
	require.True(t, ok)
	assert.True(t, info.Dummy, "no write means the dataref stays a dummy")
}

func TestCloseButtonTearsDownAndQuits(t *testing.T) {
	name, c := install(t)
	s := simtest.New(t)
	s.Boot(name)

	tree := s.H.Widgets
	require.Equal(t, 4, tree.Len())

	tree.Dispatch(c.p.QuitButton(), widget.MsgMouseDown, nil, nil)

	assert.Zero(t, tree.Len(), "window and children destroyed")
	assert.True(t, s.H.QuitRequested())
	assert.Zero(t, c.p.Window())
}

func TestClickOnButtonGeometryQuits(t *testing.T) {
	name, _ := install(t)
	s := simtest.New(t)
	s.Boot(name)

	// (130, 320) falls inside the close button rectangle.
	_, hit := s.H.Widgets.Click(130, 320)
	require.True(t, hit)
	assert.True(t, s.H.QuitRequested())
}

func TestDisableIsIdempotentAfterClose(t *testing.T) {
	name, c := install(t)
	s := simtest.New(t)
	s.Boot(name)

	s.H.Widgets.Dispatch(c.p.QuitButton(), widget.MsgMouseDown, nil, nil)
	s.R.Teardown()
	assert.Zero(t, s.H.Widgets.Len())
}

func TestFactoryRegistration(t *testing.T) {
	assert.Contains(t, runner.Plugins(), otagui.PluginName)
}
