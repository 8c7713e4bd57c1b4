// Package widget implements the retained widget tree of the simless harness:
// windows, captions, sliders, and buttons addressed by integer ids, with
// geometry, visibility, z-order, typed properties, parent links, and
// per-node callback lists. Message dispatch bubbles from a node up through
// its ancestors; hit-testing scans the z-order from topmost down.
//
// Rendering is delegated to an opaque Backend. With no backend attached the
// tree runs headless and every setter is a pure state mutation.
package widget

// ID identifies a live widget node. Ids are assigned monotonically and never
// reused within a run. The zero ID stands for "no widget" and, as a parent,
// for the implicit root container.
type ID int

// Class identifies the widget kind. Values match the host ABI.
type Class int

const (
	ClassMainWindow      Class = 1
	ClassSubWindow       Class = 2
	ClassButton          Class = 3
	ClassTextField       Class = 4
	ClassCaption         Class = 5
	ClassScrollBar       Class = 6
	ClassGeneralGraphics Class = 7
)

func (c Class) String() string {
	switch c {
	case ClassMainWindow:
		return "main-window"
	case ClassSubWindow:
		return "sub-window"
	case ClassButton:
		return "button"
	case ClassTextField:
		return "text-field"
	case ClassCaption:
		return "caption"
	case ClassScrollBar:
		return "scroll-bar"
	case ClassGeneralGraphics:
		return "general-graphics"
	default:
		return "custom"
	}
}

// Property identifies a typed per-widget property slot.
type Property int

const (
	PropScrollBarMin            Property = 100
	PropScrollBarMax            Property = 101
	PropScrollBarSliderPosition Property = 102
	PropScrollBarPageAmount     Property = 103
	PropScrollBarType           Property = 104

	PropMainWindowHasCloseBoxes Property = 110

	PropButtonType Property = 200
)

// Scroll bar type property values.
const (
	ScrollBarTypeScrollBar = 0
	ScrollBarTypeSlider    = 1
)

// Button type property values.
const (
	ButtonTypePush     = 0
	ButtonTypeRadio    = 1
	ButtonTypeCheckBox = 2
)

// Message identifies a widget message delivered through Dispatch.
type Message int

const (
	MsgMouseDown                      Message = 1
	MsgMouseDrag                      Message = 2
	MsgMouseUp                        Message = 3
	MsgKeyPress                       Message = 4
	MsgScrollBarSliderPositionChanged Message = 5
	MsgPushButtonPressed              Message = 6
	MsgCloseButtonPushed              Message = 7
)

func (m Message) String() string {
	switch m {
	case MsgMouseDown:
		return "mouse-down"
	case MsgMouseDrag:
		return "mouse-drag"
	case MsgMouseUp:
		return "mouse-up"
	case MsgKeyPress:
		return "key-press"
	case MsgScrollBarSliderPositionChanged:
		return "scroll-changed"
	case MsgPushButtonPressed:
		return "button-pushed"
	case MsgCloseButtonPushed:
		return "close-pushed"
	default:
		return "unknown"
	}
}

// Geometry is a widget rectangle in host screen coordinates, where top is
// the larger Y value.
type Geometry struct {
	Left, Top, Right, Bottom int
}

// Contains reports whether the point lies inside the rectangle.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.Left && x <= g.Right && y >= g.Bottom && y <= g.Top
}

// Callback handles a widget message. Messages always continue to the
// remaining callbacks on the node and then bubble to the ancestors; a
// callback that panics is recovered and logged without breaking delivery.
type Callback func(w ID, msg Message, param1, param2 any)
