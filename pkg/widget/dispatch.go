package widget

import (
	"github.com/speedsim/simless/pkg/errors"
)

// AddCallback appends a message handler to a widget's ordered callback list.
// The owner is the registering plugin's id; delivery to callbacks of a
// disabled plugin is suppressed. Owner 0 is never suppressed.
func (t *Tree) AddCallback(id ID, owner int, fn Callback) {
	n, ok := t.nodes[id]
	if !ok || fn == nil {
		return
	}
	n.callbacks = append(n.callbacks, ownedCallback{owner: owner, fn: fn})
}

// Dispatch delivers a message to every callback registered on id, then
// bubbles the same message up the parent chain, invoking ancestor callbacks
// too. A visited set guards against parent cycles. A panicking callback is
// recovered and reported; it never blocks delivery to siblings or ancestors.
func (t *Tree) Dispatch(id ID, msg Message, param1, param2 any) {
	visited := make(map[ID]bool)
	for id != 0 && !visited[id] {
		visited[id] = true
		n, ok := t.nodes[id]
		if !ok {
			return
		}
		for _, cb := range n.callbacks {
			if t.filter != nil && cb.owner != 0 && t.filter.Disabled(cb.owner) {
				continue
			}
			t.invoke(cb.fn, id, msg, param1, param2)
		}
		id = n.parent
	}
}

func (t *Tree) invoke(fn Callback, id ID, msg Message, param1, param2 any) {
	defer errors.Recover("widget.Dispatch")
	fn(id, msg, param1, param2)
}

// HitTest scans the z-order from topmost to bottommost and returns the first
// visible widget whose geometry contains the point.
func (t *Tree) HitTest(x, y int) (ID, bool) {
	for i := len(t.zorder) - 1; i >= 0; i-- {
		n, ok := t.nodes[t.zorder[i]]
		if !ok || !n.visible {
			continue
		}
		if n.geom.Contains(x, y) {
			return n.id, true
		}
	}
	return 0, false
}

// Click hit-tests the point and, on a hit, dispatches a mouse-down to the
// widget under it. Returns the hit widget, if any.
func (t *Tree) Click(x, y int) (ID, bool) {
	id, ok := t.HitTest(x, y)
	if !ok {
		return 0, false
	}
	t.Dispatch(id, MsgMouseDown, x, y)
	return id, true
}
