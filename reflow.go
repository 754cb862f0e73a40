package sortable

// applyReflow slides the siblings between the dragged node's original slot
// and dropIndex so that a gap opens at dropIndex. rects are the sibling
// bounds captured at gesture start. Siblings outside the window return to
// their layout position. The dragged node is left alone; it follows the
// pointer.
func applyReflow(anim Animator, siblings []*Node, rects []Rect, dragIndex, dropIndex int, duration float32) {
	n := len(siblings)
	if len(rects) < n {
		n = len(rects)
	}

	if dragIndex < dropIndex {
		// Moving forward: each sibling in (drag, drop] takes the slot before it.
		for i := n - 1; i >= 0; i-- {
			sibling := siblings[i]
			if i < dragIndex || i > dropIndex {
				anim.SetOffset(sibling, 0, 0, duration)
				continue
			}
			if i == dragIndex {
				continue
			}
			prev := rects[i-1]
			if i == dragIndex+1 {
				prev = rects[dragIndex]
			}
			anim.SetOffset(sibling, prev.X-rects[i].X, prev.Y-rects[i].Y, duration)
		}
		return
	}

	// Moving backward (or back home): each sibling in [drop, drag) takes the
	// slot after it.
	for i := 0; i < n; i++ {
		sibling := siblings[i]
		if i < dropIndex || i > dragIndex {
			anim.SetOffset(sibling, 0, 0, duration)
			continue
		}
		if i == dragIndex {
			continue
		}
		next := rects[i+1]
		if i == dragIndex-1 {
			next = rects[dragIndex]
		}
		anim.SetOffset(sibling, next.X-rects[i].X, next.Y-rects[i].Y, duration)
	}
}

// resetOffsets returns every node to its layout position at once.
func resetOffsets(anim Animator, nodes []*Node) {
	for _, n := range nodes {
		anim.SetOffset(n, 0, 0, 0)
	}
}
