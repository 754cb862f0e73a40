package sortable

// Positions are translation-only: a node's world position is the sum of its
// own and every ancestor's layout position plus visual offset.

// WorldPosition returns the node's top-left corner in world coordinates,
// including visual offsets of the node and all of its ancestors.
func (n *Node) WorldPosition() (float64, float64) {
	var x, y float64
	for p := n; p != nil; p = p.Parent {
		x += p.X + p.OffsetX
		y += p.Y + p.OffsetY
	}
	return x, y
}

// Bounds returns the node's world-space rectangle, including its current
// visual offset.
func (n *Node) Bounds() Rect {
	x, y := n.WorldPosition()
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
}

// LayoutBounds returns the node's world-space rectangle ignoring its own
// visual offset (ancestor offsets still apply).
func (n *Node) LayoutBounds() Rect {
	b := n.Bounds()
	return b.Translate(-n.OffsetX, -n.OffsetY)
}

// WorldToLocal converts world coordinates to this node's local coordinates.
func (n *Node) WorldToLocal(wx, wy float64) (float64, float64) {
	x, y := n.WorldPosition()
	return wx - x, wy - y
}

// LocalToWorld converts local coordinates to world coordinates.
func (n *Node) LocalToWorld(lx, ly float64) (float64, float64) {
	x, y := n.WorldPosition()
	return lx + x, ly + y
}

// SetOffset sets the visual offset directly, bypassing any animator.
func (n *Node) SetOffset(x, y float64) {
	n.OffsetX = x
	n.OffsetY = y
}
