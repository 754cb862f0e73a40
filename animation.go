package sortable

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animator moves nodes to a visual offset, either at once (duration <= 0)
// or over duration seconds. Lists drive all row movement through an
// Animator, so any renderer can supply its own.
type Animator interface {
	SetOffset(node *Node, x, y float64, duration float32)
}

// TweenGroup animates up to 2 float64 fields on a Node simultaneously.
// Call Update(dt) each frame; the group writes values straight into the
// target fields. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenOffset creates a TweenGroup that animates node.OffsetX and
// node.OffsetY to the given values over duration using the easing function.
func TweenOffset(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.OffsetX), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.OffsetY), float32(toY), duration, fn)
	g.fields[0] = &node.OffsetX
	g.fields[1] = &node.OffsetY
	return g
}

// TweenAnimator is the default Animator. It keeps at most one running
// offset tween per node; starting a new one replaces the old one from the
// node's current offset. Advance it with Update once per frame.
type TweenAnimator struct {
	Ease   ease.TweenFunc
	active map[*Node]*offsetTween
}

type offsetTween struct {
	group    *TweenGroup
	toX, toY float64
}

// NewTweenAnimator creates a TweenAnimator using fn for every transition.
// A nil fn means linear.
func NewTweenAnimator(fn ease.TweenFunc) *TweenAnimator {
	if fn == nil {
		fn = ease.Linear
	}
	return &TweenAnimator{Ease: fn, active: make(map[*Node]*offsetTween)}
}

// SetOffset implements Animator.
func (a *TweenAnimator) SetOffset(node *Node, x, y float64, duration float32) {
	if duration <= 0 {
		delete(a.active, node)
		node.SetOffset(x, y)
		return
	}
	if t, ok := a.active[node]; ok && t.toX == x && t.toY == y {
		return
	}
	if node.OffsetX == x && node.OffsetY == y {
		delete(a.active, node)
		return
	}
	a.active[node] = &offsetTween{
		group: TweenOffset(node, x, y, duration, a.Ease),
		toX:   x,
		toY:   y,
	}
}

// Update advances every running tween by dt seconds and drops finished ones.
func (a *TweenAnimator) Update(dt float32) {
	for node, t := range a.active {
		t.group.Update(dt)
		if t.group.Done {
			if !node.IsDisposed() {
				node.SetOffset(t.toX, t.toY)
			}
			delete(a.active, node)
		}
	}
}

// Running reports how many nodes are mid-transition.
func (a *TweenAnimator) Running() int {
	return len(a.active)
}

// Finish jumps every running tween to its end value.
func (a *TweenAnimator) Finish() {
	for node, t := range a.active {
		if !node.IsDisposed() {
			node.SetOffset(t.toX, t.toY)
		}
		delete(a.active, node)
	}
}
