package widget

import (
	"log/slog"
	"sort"
)

type ownedCallback struct {
	owner int
	fn    Callback
}

// node is the tree-owned state behind an ID.
type node struct {
	id         ID
	class      Class
	geom       Geometry
	visible    bool
	parent     ID
	descriptor string
	props      map[Property]any
	callbacks  []ownedCallback
}

// OwnerFilter suppresses callback delivery for disabled plugins. A nil
// filter delivers everything.
type OwnerFilter interface {
	Disabled(owner int) bool
}

// Tree is the retained widget tree for one harness run. It is not safe for
// concurrent use; the single-threaded tick loop is the only mutator.
type Tree struct {
	nodes   map[ID]*node
	zorder  []ID
	nextID  ID
	focus   ID
	backend Backend
	filter  OwnerFilter
	logger  *slog.Logger
}

// NewTree creates an empty tree. A nil logger means slog.Default().
func NewTree(logger *slog.Logger) *Tree {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tree{
		nodes:  make(map[ID]*node),
		nextID: 1,
		logger: logger,
	}
}

// AttachBackend connects a rendering backend. Pass nil for headless mode.
func (t *Tree) AttachBackend(b Backend) {
	t.backend = b
}

// SetOwnerFilter installs the disabled-plugin filter consulted by Dispatch.
func (t *Tree) SetOwnerFilter(f OwnerFilter) {
	t.filter = f
}

// Create makes a new widget node. Parent 0 attaches to the implicit root
// container. New widgets draw on top of existing ones.
func (t *Tree) Create(geom Geometry, class Class, descriptor string, visible bool, parent ID) ID {
	id := t.nextID
	t.nextID++

	t.nodes[id] = &node{
		id:         id,
		class:      class,
		geom:       geom,
		visible:    visible,
		parent:     parent,
		descriptor: descriptor,
		props:      make(map[Property]any),
	}
	t.zorder = append(t.zorder, id)

	t.logger.Debug("widget created",
		"id", int(id), "class", class.String(), "descriptor", descriptor, "parent", int(parent))
	if t.backend != nil {
		t.backend.CreateNode(id, class, geom, descriptor, visible, parent)
	}
	return id
}

// Destroy removes a widget: its state, callbacks, z-order slot, and focus if
// it held it. Children are NOT destroyed — the caller is responsible for
// descendants, matching the host's behavior.
func (t *Tree) Destroy(id ID) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	delete(t.nodes, id)
	for i, zid := range t.zorder {
		if zid == id {
			t.zorder = append(t.zorder[:i], t.zorder[i+1:]...)
			break
		}
	}
	if t.focus == id {
		t.focus = 0
	}
	t.logger.Debug("widget destroyed", "id", int(id))
	if t.backend != nil {
		t.backend.DestroyNode(id)
	}
}

// Exists reports whether the id refers to a live widget.
func (t *Tree) Exists(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Len returns the number of live widgets.
func (t *Tree) Len() int { return len(t.nodes) }

// SetGeometry updates a widget's rectangle.
func (t *Tree) SetGeometry(id ID, geom Geometry) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	n.geom = geom
	if t.backend != nil {
		t.backend.UpdateGeometry(id, geom)
	}
}

// Geometry returns a widget's rectangle.
func (t *Tree) Geometry(id ID) Geometry {
	if n, ok := t.nodes[id]; ok {
		return n.geom
	}
	return Geometry{}
}

// ExposedGeometry returns the on-screen rectangle. The harness does no
// clipping, so it equals Geometry.
func (t *Tree) ExposedGeometry(id ID) Geometry {
	return t.Geometry(id)
}

// Show makes a widget visible.
func (t *Tree) Show(id ID) { t.setVisible(id, true) }

// Hide makes a widget invisible. Hidden widgets are skipped by hit-testing.
func (t *Tree) Hide(id ID) { t.setVisible(id, false) }

func (t *Tree) setVisible(id ID, visible bool) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	n.visible = visible
	if t.backend != nil {
		t.backend.UpdateVisible(id, visible)
	}
}

// Visible reports whether a widget is visible.
func (t *Tree) Visible(id ID) bool {
	if n, ok := t.nodes[id]; ok {
		return n.visible
	}
	return false
}

// Parent returns a widget's parent id, 0 for root-attached widgets.
func (t *Tree) Parent(id ID) ID {
	if n, ok := t.nodes[id]; ok {
		return n.parent
	}
	return 0
}

// Children returns the ids whose parent is id, in ascending id order.
func (t *Tree) Children(id ID) []ID {
	var out []ID
	for _, zid := range t.zorder {
		if n := t.nodes[zid]; n != nil && n.parent == id {
			out = append(out, zid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Class returns a widget's class.
func (t *Tree) Class(id ID) Class {
	if n, ok := t.nodes[id]; ok {
		return n.class
	}
	return 0
}

// SetDescriptor updates a widget's descriptor text.
func (t *Tree) SetDescriptor(id ID, text string) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	n.descriptor = text
	if t.backend != nil {
		t.backend.UpdateDescriptor(id, text)
	}
}

// Descriptor returns a widget's descriptor text.
func (t *Tree) Descriptor(id ID) string {
	if n, ok := t.nodes[id]; ok {
		return n.descriptor
	}
	return ""
}

// SetProperty sets a typed property slot.
func (t *Tree) SetProperty(id ID, prop Property, value any) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	n.props[prop] = value
	if t.backend != nil {
		t.backend.UpdateProperty(id, prop, value)
	}
}

// Property reads a property slot; ok is false when the slot was never set.
func (t *Tree) Property(id ID, prop Property) (any, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	v, ok := n.props[prop]
	return v, ok
}

// IntProperty reads a property slot as an int, with a fallback default.
func (t *Tree) IntProperty(id ID, prop Property, def int) int {
	v, ok := t.Property(id, prop)
	if !ok {
		return def
	}
	if i, ok := v.(int); ok {
		return i
	}
	return def
}

// BringToFront moves a widget to the top of the z-order.
func (t *Tree) BringToFront(id ID) {
	for i, zid := range t.zorder {
		if zid == id {
			t.zorder = append(t.zorder[:i], t.zorder[i+1:]...)
			t.zorder = append(t.zorder, id)
			return
		}
	}
}

// PushBehind moves a widget to the bottom of the z-order.
func (t *Tree) PushBehind(id ID) {
	for i, zid := range t.zorder {
		if zid == id {
			t.zorder = append(t.zorder[:i], t.zorder[i+1:]...)
			t.zorder = append([]ID{id}, t.zorder...)
			return
		}
	}
}

// InFront reports whether a widget is topmost.
func (t *Tree) InFront(id ID) bool {
	return len(t.zorder) > 0 && t.zorder[len(t.zorder)-1] == id
}

// SetFocus gives a widget keyboard focus. Focus is global: a different
// holder is silently replaced. Pass 0 to clear focus.
func (t *Tree) SetFocus(id ID) {
	t.focus = id
}

// Focus returns the focused widget, 0 when none.
func (t *Tree) Focus() ID {
	return t.focus
}

// LoseFocus clears focus only if the widget currently holds it.
func (t *Tree) LoseFocus(id ID) {
	if t.focus == id {
		t.focus = 0
	}
}
