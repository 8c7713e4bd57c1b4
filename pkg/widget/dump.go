package widget

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders the tree as deterministic text, one widget per line in
// z-order from bottommost to topmost. Used by diagnostics and golden tests.
func (t *Tree) Dump() string {
	var sb strings.Builder
	for _, id := range t.zorder {
		n, ok := t.nodes[id]
		if !ok {
			continue
		}
		vis := "visible"
		if !n.visible {
			vis = "hidden"
		}
		fmt.Fprintf(&sb, "#%d %s %q geom=(%d,%d,%d,%d) %s parent=%d",
			int(n.id), n.class, n.descriptor,
			n.geom.Left, n.geom.Top, n.geom.Right, n.geom.Bottom,
			vis, int(n.parent))
		if len(n.props) > 0 {
			keys := make([]int, 0, len(n.props))
			for p := range n.props {
				keys = append(keys, int(p))
			}
			sort.Ints(keys)
			sb.WriteString(" props{")
			for i, k := range keys {
				if i > 0 {
					sb.WriteString(" ")
				}
				fmt.Fprintf(&sb, "%d:%v", k, n.props[Property(k)])
			}
			sb.WriteString("}")
		}
		if t.focus == n.id {
			sb.WriteString(" focused")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
