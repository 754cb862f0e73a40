package sortable

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's bounds.
// Nodes with no size are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// --- Pointer state ---

type pointerState struct {
	down    bool
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
	hitNode *Node
	button  MouseButton // button captured at press time
}

// --- Hit testing ---

// paintOrder returns n's children in draw order: ascending ZIndex, ties in
// child order. The result is written into buf.
func paintOrder(n *Node, buf []*Node) []*Node {
	buf = append(buf[:0], n.children...)
	slices.SortStableFunc(buf, func(a, b *Node) int { return a.ZIndex - b.ZIndex })
	return buf
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	buf = append(buf, n)
	if len(n.children) == 0 {
		return buf
	}
	for _, child := range paintOrder(n, nil) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update to handle mouse input. Injected
// events take priority; while any are queued the real mouse is ignored.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer(readModifiers())
}

// processMousePointer handles real mouse input.
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	// Detect which button is pressed. If the pointer is already down, the
	// button stored at press time wins.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button, mods)
}

// processPointer runs the pointer state machine. While a button is held,
// move and release events go to the node that received the press, so a
// drag keeps reporting even when the pointer leaves that node.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer

	switch {
	case pressed && !ps.down:
		target := s.hitTest(wx, wy)
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		s.dispatch(EventPointerDown, target, wx, wy, button, mods)

	case !pressed && ps.down:
		target := ps.hitNode
		ps.down = false
		ps.hitNode = nil
		ps.lastX, ps.lastY = wx, wy
		s.dispatch(EventPointerUp, target, wx, wy, ps.button, mods)

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			s.dispatch(EventPointerMove, ps.hitNode, wx, wy, ps.button, mods)
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		// Hover move.
		if wx != ps.lastX || wy != ps.lastY {
			s.dispatch(EventPointerMove, s.hitTest(wx, wy), wx, wy, button, mods)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// --- Event dispatch ---

// dispatch delivers an event to target and then to each ancestor in turn.
// Nodes disposed by an earlier handler stop the walk.
func (s *Scene) dispatch(typ EventType, target *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	if target == nil {
		return
	}
	ctx := PointerContext{
		Type:    typ,
		Target:  target,
		GlobalX: wx, GlobalY: wy,
		Button:    button,
		Modifiers: mods,
	}
	for cur := target; cur != nil && !cur.disposed; cur = cur.Parent {
		var fn func(PointerContext)
		switch typ {
		case EventPointerDown:
			fn = cur.OnPointerDown
		case EventPointerUp:
			fn = cur.OnPointerUp
		case EventPointerMove:
			fn = cur.OnPointerMove
		}
		if fn == nil {
			continue
		}
		ctx.Current = cur
		ctx.LocalX, ctx.LocalY = cur.WorldToLocal(wx, wy)
		fn(ctx)
	}
}
