package rbtree

import "github.com/cockroachdb/errors"

// Insert adds key and returns a handle to the new node. Equal keys are
// routed right, so duplicates coexist. The only failure is ErrTreeFull
// (or ErrDestroyed), in which case nothing was linked.
func (t *Tree) Insert(key int64) (Handle, error) {
	if t.destroyed {
		return Handle{}, errors.Wrapf(ErrDestroyed, "insert %d", key)
	}

	// Standard BST descent; y trails x as the eventual parent.
	y := nilSlot
	x := t.root
	for x != nilSlot {
		y = x
		if key < t.nodes[x].key {
			x = t.nodes[x].left
		} else {
			x = t.nodes[x].right
		}
	}

	z, err := t.alloc(key)
	if err != nil {
		return Handle{}, err
	}

	// alloc may have grown the arena
	nodes := t.nodes
	nodes[z].parent = y
	switch {
	case y == nilSlot:
		t.root = z
	case key < nodes[y].key:
		nodes[y].left = z
	default:
		nodes[y].right = z
	}
	t.size++
	t.stats.Inserts++

	t.insertFixup(z)
	return t.handle(z), nil
}

// insertFixup resolves a red/red violation between z and its parent.
// The sentinel parent of the root is black, so the loop stops at the
// root at the latest.
func (t *Tree) insertFixup(z uint32) {
	nodes := t.nodes
	for nodes[nodes[z].parent].color == Red {
		p := nodes[z].parent
		g := nodes[p].parent
		if p == nodes[g].left {
			uncle := nodes[g].right
			if nodes[uncle].color == Red {
				nodes[p].color = Black
				nodes[uncle].color = Black
				nodes[g].color = Red
				z = g
				t.stats.InsertUncleRed++
				continue
			}
			if z == nodes[p].right {
				z = p
				t.rotateLeft(z)
				t.stats.InsertInner++
			}
			p = nodes[z].parent
			g = nodes[p].parent
			nodes[p].color = Black
			nodes[g].color = Red
			t.rotateRight(g)
			t.stats.InsertOuter++
		} else {
			// mirror cases
			uncle := nodes[g].left
			if nodes[uncle].color == Red {
				nodes[p].color = Black
				nodes[uncle].color = Black
				nodes[g].color = Red
				z = g
				t.stats.InsertUncleRed++
				continue
			}
			if z == nodes[p].left {
				z = p
				t.rotateRight(z)
				t.stats.InsertInner++
			}
			p = nodes[z].parent
			g = nodes[p].parent
			nodes[p].color = Black
			nodes[g].color = Red
			t.rotateLeft(g)
			t.stats.InsertOuter++
		}
	}
	nodes[t.root].color = Black
}
