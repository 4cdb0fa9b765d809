package rbtree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the tree sideways, right subtree on top, one node per line
// indented by depth. Useful for logging and debugging rotations.
func (t *Tree) Dump(w io.Writer) error {
	if t.destroyed || t.root == nilSlot {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}

	type frame struct {
		slot  uint32
		depth int
	}
	var stack []frame
	x, depth := t.root, 0
	for x != nilSlot || len(stack) > 0 {
		for x != nilSlot {
			stack = append(stack, frame{x, depth})
			x = t.nodes[x].right
			depth++
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[f.slot]
		if _, err := fmt.Fprintf(w, "%s%d (%s)\n", strings.Repeat("    ", f.depth), n.key, n.color); err != nil {
			return err
		}
		x, depth = n.left, f.depth+1
	}
	return nil
}
