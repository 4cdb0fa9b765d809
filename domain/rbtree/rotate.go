package rbtree

// rotateLeft promotes x's right child y above x. y takes x's slot under
// x's former parent (or becomes root) and x receives y's old left
// subtree as its right subtree. In-order key sequence is unchanged.
func (t *Tree) rotateLeft(x uint32) {
	nodes := t.nodes
	y := nodes[x].right
	nodes[x].right = nodes[y].left
	if nodes[y].left != nilSlot {
		nodes[nodes[y].left].parent = x
	}
	nodes[y].parent = nodes[x].parent
	switch xp := nodes[x].parent; {
	case xp == nilSlot:
		t.root = y
	case x == nodes[xp].left:
		nodes[xp].left = y
	default:
		nodes[xp].right = y
	}
	nodes[y].left = x
	nodes[x].parent = y
	t.stats.LeftRotations++
}

// rotateRight is the mirror of rotateLeft.
func (t *Tree) rotateRight(y uint32) {
	nodes := t.nodes
	x := nodes[y].left
	nodes[y].left = nodes[x].right
	if nodes[x].right != nilSlot {
		nodes[nodes[x].right].parent = y
	}
	nodes[x].parent = nodes[y].parent
	switch yp := nodes[y].parent; {
	case yp == nilSlot:
		t.root = x
	case y == nodes[yp].right:
		nodes[yp].right = x
	default:
		nodes[yp].left = x
	}
	nodes[x].right = y
	nodes[y].parent = x
	t.stats.RightRotations++
}

// transplant links v into u's position under u's parent. u's own
// children are left alone; the caller relinks them.
func (t *Tree) transplant(u, v uint32) {
	nodes := t.nodes
	up := nodes[u].parent
	switch {
	case up == nilSlot:
		t.root = v
	case u == nodes[up].left:
		nodes[up].left = v
	default:
		nodes[up].right = v
	}
	nodes[v].parent = up
}
