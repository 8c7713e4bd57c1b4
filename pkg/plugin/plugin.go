// Package plugin defines the contract between the harness and the avionics
// plugins it hosts. It has no dependencies so both sides can import it.
package plugin

// Info carries the identity a plugin reports from Start.
type Info struct {
	Name        string
	Signature   string
	Description string
}

// Plugin is the lifecycle every hosted plugin implements.
//
// Start runs exactly once, before the first frame. Enable may be refused by
// returning false, in which case the run aborts. Disable is called when the
// harness suppresses a misbehaving plugin; Stop runs once at teardown, after
// Disable for any plugin still enabled.
type Plugin interface {
	Start() (Info, error)
	Enable() bool
	Disable()
	Stop()
}

// DisabledSet tracks which plugin ids the harness has suppressed.
// Id 0 is reserved for the harness itself and is never disabled.
type DisabledSet struct {
	ids map[int]struct{}
}

// NewDisabledSet returns an empty set.
func NewDisabledSet() *DisabledSet {
	return &DisabledSet{ids: make(map[int]struct{})}
}

// Disable marks the id as suppressed. Id 0 is ignored.
func (d *DisabledSet) Disable(id int) {
	if id == 0 {
		return
	}
	d.ids[id] = struct{}{}
}

// Disabled reports whether the id is suppressed.
func (d *DisabledSet) Disabled(id int) bool {
	_, ok := d.ids[id]
	return ok
}

// IDs returns the suppressed ids, unordered.
func (d *DisabledSet) IDs() []int {
	out := make([]int, 0, len(d.ids))
	for id := range d.ids {
		out = append(out, id)
	}
	return out
}

// Len returns how many plugins are suppressed.
func (d *DisabledSet) Len() int { return len(d.ids) }
