package sortable

// FlowLayout places a container's children left to right, wrapping to a new
// line when the next child would cross the container's width. A container
// with zero width never wraps. Each line is as tall as its tallest child.
type FlowLayout struct {
	Gap float64
}

// Apply positions every child of container and returns the size of the
// laid-out content.
func (f FlowLayout) Apply(container *Node) (float64, float64) {
	var x, y, lineH, maxW float64
	for _, child := range container.children {
		if !child.Visible {
			continue
		}
		if x > 0 && container.Width > 0 && x+child.Width > container.Width {
			x = 0
			y += lineH + f.Gap
			lineH = 0
		}
		child.X = x
		child.Y = y
		x += child.Width
		if x > maxW {
			maxW = x
		}
		x += f.Gap
		if child.Height > lineH {
			lineH = child.Height
		}
	}
	return maxW, y + lineH
}
