package sortable

import (
	"cmp"
	"slices"
)

// DropSlot returns the slot the dragged node currently overlaps.
//
// box is the dragged node's current (offset) bounds, current is the index it
// started at and centers holds every sibling's center captured at gesture
// start. The result is in [0, len(centers)]; len(centers) means the end of
// the list.
//
// This is a first-fit hit test over sibling centers, not a containment test.
// Siblings whose center lies right of the box's left edge form the column
// set, those whose center lies below its top edge form the row set. The
// dragged node's own slot is tested against the next sibling's center, so it
// only leaves its slot once it passes that neighbor; the last node has no
// neighbor and is never placed in either set.
func DropSlot(box Rect, current int, centers []Vec2) int {
	n := len(centers)
	if n == 0 {
		return 0
	}

	var column, row []int
	lineFeed := false
	for i, c := range centers {
		ref := c
		test := true
		if i == current {
			if i+1 < n {
				ref = centers[i+1]
			} else {
				test = false
			}
		}
		if test {
			if box.X < ref.X {
				column = append(column, i)
			}
			if box.Y < ref.Y {
				row = append(row, i)
			}
		}
		if c.Y != centers[0].Y {
			lineFeed = true
		}
	}

	byX := func(a, b int) int { return cmp.Compare(centers[a].X, centers[b].X) }
	byY := func(a, b int) int { return cmp.Compare(centers[a].Y, centers[b].Y) }
	desc := func(f func(a, b int) int) func(a, b int) int {
		return func(a, b int) int { return f(b, a) }
	}

	switch {
	case len(row) == 0 && len(column) == 0:
		return n
	case len(row) == 0:
		if !lineFeed {
			return n
		}
		slices.SortStableFunc(column, desc(byY))
		return column[0]
	case len(column) == 0:
		if !lineFeed {
			return n
		}
		slices.SortStableFunc(row, desc(byX))
		return row[0]
	}

	slices.SortStableFunc(row, byY)
	slices.SortStableFunc(column, byX)
	for _, i := range row {
		if slices.Contains(column, i) {
			return i
		}
	}
	return n
}

// centersOf returns the center point of every rect.
func centersOf(rects []Rect) []Vec2 {
	out := make([]Vec2, len(rects))
	for i, r := range rects {
		out[i] = r.Center()
	}
	return out
}
