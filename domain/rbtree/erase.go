package rbtree

// Erase removes the node named by h. Handles that belong to another
// tree, or whose node was already erased, are rejected with
// ErrInvalidHandle and the tree is not modified.
func (t *Tree) Erase(h Handle) error {
	z, err := t.resolve(h, "erase")
	if err != nil {
		return err
	}
	t.erase(z)
	return nil
}

// erase unlinks z. When z has two children its in-order successor y (the
// minimum of z's right subtree) is moved into z's position and takes
// over z's color; x is the node that moves into the position y vacated.
func (t *Tree) erase(z uint32) {
	nodes := t.nodes
	y := z
	yColor := nodes[y].color
	var x uint32

	switch {
	case nodes[z].left == nilSlot:
		x = nodes[z].right
		t.transplant(z, x)
	case nodes[z].right == nilSlot:
		x = nodes[z].left
		t.transplant(z, x)
	default:
		y = t.minimum(nodes[z].right) // successor
		yColor = nodes[y].color
		x = nodes[y].right
		if nodes[y].parent == z {
			// x may be the sentinel; fixup needs its parent either way.
			nodes[x].parent = y
		} else {
			t.transplant(y, nodes[y].right)
			nodes[y].right = nodes[z].right
			nodes[nodes[y].right].parent = y
		}
		t.transplant(z, y)
		nodes[y].left = nodes[z].left
		nodes[nodes[y].left].parent = y
		nodes[y].color = nodes[z].color
	}

	if yColor == Black {
		t.eraseFixup(x)
	}

	nodes[nilSlot].parent = nilSlot
	t.release(z)
	t.size--
	t.stats.Erases++
}

// eraseFixup pushes the missing black at x up the tree until it can be
// absorbed by a red node, a rotation, or the root.
func (t *Tree) eraseFixup(x uint32) {
	nodes := t.nodes
	for x != t.root && nodes[x].color == Black {
		p := nodes[x].parent
		if x == nodes[p].left {
			w := nodes[p].right
			if nodes[w].color == Red {
				nodes[w].color = Black
				nodes[p].color = Red
				t.rotateLeft(p)
				w = nodes[p].right
				t.stats.EraseSiblingRed++
			}
			if nodes[nodes[w].left].color == Black && nodes[nodes[w].right].color == Black {
				nodes[w].color = Red
				x = p
				t.stats.EraseNephewsBlack++
				continue
			}
			if nodes[nodes[w].right].color == Black {
				nodes[nodes[w].left].color = Black
				nodes[w].color = Red
				t.rotateRight(w)
				w = nodes[p].right
				t.stats.EraseNearNephewRed++
			}
			nodes[w].color = nodes[p].color
			nodes[p].color = Black
			nodes[nodes[w].right].color = Black
			t.rotateLeft(p)
			x = t.root
			t.stats.EraseFarNephewRed++
		} else {
			// mirror cases
			w := nodes[p].left
			if nodes[w].color == Red {
				nodes[w].color = Black
				nodes[p].color = Red
				t.rotateRight(p)
				w = nodes[p].left
				t.stats.EraseSiblingRed++
			}
			if nodes[nodes[w].right].color == Black && nodes[nodes[w].left].color == Black {
				nodes[w].color = Red
				x = p
				t.stats.EraseNephewsBlack++
				continue
			}
			if nodes[nodes[w].left].color == Black {
				nodes[nodes[w].right].color = Black
				nodes[w].color = Red
				t.rotateLeft(w)
				w = nodes[p].left
				t.stats.EraseNearNephewRed++
			}
			nodes[w].color = nodes[p].color
			nodes[p].color = Black
			nodes[nodes[w].left].color = Black
			t.rotateRight(p)
			x = t.root
			t.stats.EraseFarNephewRed++
		}
	}
	nodes[x].color = Black
}
