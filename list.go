package sortable

import (
	"slices"
)

// GestureState is the drag state of a List.
type GestureState uint8

const (
	GestureIdle     GestureState = iota // no pointer held on a row
	GestureDragging                     // a row follows the pointer
)

// String returns the state name.
func (s GestureState) String() string {
	if s == GestureDragging {
		return "dragging"
	}
	return "idle"
}

// gesture is everything captured for one press-to-release interaction.
// Sibling geometry is measured once at press time and never refreshed.
type gesture struct {
	node             *Node
	start            int
	drop             int
	rects            []Rect
	centers          []Vec2
	originX, originY float64
	zIndex           int
}

// List makes the children of a container node reorderable by dragging.
// Each child displays one item of the backing slice; after a drag the item
// moves along with its node.
//
// A List is not safe for concurrent use. Listeners are the exception: they
// run on their own goroutines and receive copies of the event data.
type List struct {
	container *Node
	items     []any
	render    RenderFunc
	cfg       ListConfig
	anim      Animator
	layout    FlowLayout
	listeners listenerRegistry
	events    *dispatcher
	torn      bool

	state GestureState
	g     gesture
}

// NewList binds a List to container. Rows are created once items are set.
// A nil container yields a *TypeError.
func NewList(container *Node, cfg ListConfig) (*List, error) {
	if container == nil {
		return nil, typeMismatch("NewList", "*sortable.Node", container)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	l := &List{
		container: container,
		cfg:       cfg,
		anim:      cfg.Animator,
		layout:    FlowLayout{Gap: cfg.Gap},
	}
	l.render = l.defaultRender()
	l.events = newDispatcher(cfg.ListenerConcurrency)
	l.bind()
	return l, nil
}

func (l *List) defaultRender() RenderFunc {
	if l.cfg.RowWidth == defaultRowWidth && l.cfg.RowHeight == defaultRowHeight {
		return DefaultRender
	}
	return RowRender(l.cfg.RowWidth, l.cfg.RowHeight)
}

// --- Accessors ---

// Container returns the bound container node, or nil after Teardown.
func (l *List) Container() *Node {
	return l.container
}

// Items returns the backing slice. It MUST NOT be mutated by the caller.
func (l *List) Items() []any {
	return l.items
}

// Render returns the current render function.
func (l *List) Render() RenderFunc {
	return l.render
}

// State returns the current gesture state.
func (l *List) State() GestureState {
	return l.state
}

// Animator returns the animator moving the rows.
func (l *List) Animator() Animator {
	return l.anim
}

// --- Setters ---

// SetItems replaces the backing slice and rebuilds every row. Any drag in
// progress is abandoned without events.
func (l *List) SetItems(items []any) {
	l.items = items
	l.refresh()
}

// SetItemsAny is SetItems for values of unknown type, such as decoded
// config. Any slice or array is accepted; anything else yields a *TypeError
// and leaves the List untouched.
func (l *List) SetItemsAny(v any) error {
	items, err := toItems("SetItems", v)
	if err != nil {
		return err
	}
	l.SetItems(items)
	return nil
}

// SetRender replaces the render function and rebuilds every row. A nil fn
// yields a *TypeError.
func (l *List) SetRender(fn RenderFunc) error {
	if fn == nil {
		return typeMismatch("SetRender", "sortable.RenderFunc", fn)
	}
	l.render = fn
	l.refresh()
	return nil
}

// SetRenderAny is SetRender for values of unknown type. It accepts a
// RenderFunc or a func(any) *Node.
func (l *List) SetRenderAny(v any) error {
	switch fn := v.(type) {
	case RenderFunc:
		return l.SetRender(fn)
	case func(any) *Node:
		return l.SetRender(fn)
	}
	return typeMismatch("SetRender", "sortable.RenderFunc", v)
}

// SetContainer moves the List to another container: the old one is
// unbound (its rows stay), the new one is bound and rendered. After
// Teardown the default render function is restored unless SetRender was
// called in between.
func (l *List) SetContainer(container *Node) error {
	if container == nil {
		return typeMismatch("SetContainer", "*sortable.Node", container)
	}
	if l.container != nil {
		l.unbind()
	}
	if l.torn {
		l.torn = false
		l.events = newDispatcher(l.cfg.ListenerConcurrency)
	}
	if l.render == nil {
		l.render = l.defaultRender()
	}
	l.container = container
	l.bind()
	l.refresh()
	return nil
}

// --- Listeners ---

// AddListener registers ln for phase. Unknown phases are ignored, and
// registering the same listener twice keeps one registration.
func (l *List) AddListener(phase Phase, ln Listener) {
	l.listeners.add(phase, ln)
}

// RemoveListener unregisters ln from phase.
func (l *List) RemoveListener(phase Phase, ln Listener) {
	l.listeners.remove(phase, ln)
}

// AddListenerByName is AddListener with a phase name such as "change".
// Unknown names are ignored.
func (l *List) AddListenerByName(name string, ln Listener) {
	if p, ok := ParsePhase(name); ok {
		l.AddListener(p, ln)
	}
}

// RemoveListenerByName is RemoveListener with a phase name.
func (l *List) RemoveListenerByName(name string, ln Listener) {
	if p, ok := ParsePhase(name); ok {
		l.RemoveListener(p, ln)
	}
}

// --- Lifecycle ---

// Update advances row animations by dt seconds. Register the List with
// Scene.AddUpdater or call it from your own game loop.
func (l *List) Update(dt float32) {
	if u, ok := l.anim.(Updater); ok {
		u.Update(dt)
	}
}

// Teardown unbinds the List from its container and drops all state. When
// clear is true the rows are disposed as well. Events already raised may
// still reach listeners afterwards.
func (l *List) Teardown(clear bool) {
	if l.container == nil {
		return
	}
	l.unbind()
	if clear {
		l.container.DisposeChildren()
	}
	l.events.close()
	logger.Debug("list torn down", "container", l.container.Name, "cleared", clear)

	l.clearGesture()
	l.container = nil
	l.items = nil
	l.render = nil
	l.torn = true
}

func (l *List) bind() {
	c := l.container
	c.Interactable = true
	c.OnPointerDown = l.onPointerDown
	c.OnPointerMove = l.onPointerMove
	c.OnPointerUp = l.onPointerUp
}

func (l *List) unbind() {
	c := l.container
	c.OnPointerDown = nil
	c.OnPointerMove = nil
	c.OnPointerUp = nil
	l.clearGesture()
}

// refresh disposes every row and renders the backing slice again.
func (l *List) refresh() {
	if l.container == nil {
		return
	}
	l.clearGesture()
	l.container.DisposeChildren()
	for _, item := range l.items {
		row := l.render(item)
		if row == nil {
			// Keep rows aligned with items.
			row = NewContainer("li")
		}
		row.Interactable = true
		l.container.AddChild(row)
	}
	l.relayout()
}

func (l *List) relayout() {
	l.layout.Apply(l.container)
}

func (l *List) itemAt(i int) any {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// --- Gesture ---

func (l *List) onPointerDown(ctx PointerContext) {
	if l.state == GestureDragging || ctx.Target == l.container {
		return
	}
	node := ctx.Target.DirectChildOf(l.container)
	if node == nil {
		return
	}

	children := l.container.children
	resetOffsets(l.anim, children)
	rects := make([]Rect, len(children))
	maxZ := 0
	for i, c := range children {
		rects[i] = c.Bounds()
		maxZ = max(maxZ, c.ZIndex)
	}
	start := l.container.IndexOf(node)

	l.g = gesture{
		node:    node,
		start:   start,
		drop:    start,
		rects:   rects,
		centers: centersOf(rects),
		originX: ctx.GlobalX,
		originY: ctx.GlobalY,
		zIndex:  node.ZIndex,
	}
	node.ZIndex = maxZ + 1
	l.state = GestureDragging

	logger.Debug("drag start", "container", l.container.Name, "index", start)
	l.emit(PhaseDragStart, ctx, l.itemAt(start), start, -1)
}

func (l *List) onPointerMove(ctx PointerContext) {
	if l.state != GestureDragging {
		return
	}
	g := &l.g
	l.anim.SetOffset(g.node, ctx.GlobalX-g.originX, ctx.GlobalY-g.originY, 0)

	drop := DropSlot(g.node.Bounds(), g.start, g.centers)
	if drop != g.drop {
		applyReflow(l.anim, l.container.children, g.rects, g.start, drop, l.cfg.ReflowDuration)
		g.drop = drop
	}
	l.emit(PhaseDrag, ctx, l.itemAt(g.start), g.start, drop)
}

func (l *List) onPointerUp(ctx PointerContext) {
	if l.state != GestureDragging {
		return
	}
	g := l.g
	n := len(l.container.children)

	// The end-of-list slot lands on the last position.
	commit := min(g.drop, n-1)
	if commit != g.start {
		l.moveNode(g.node, g.start, g.drop, n)
		l.moveItem(g.start, commit)
		l.emit(PhaseChange, ctx, l.itemAt(commit), g.start, commit)
		logger.Debug("order changed", "container", l.container.Name, "from", g.start, "to", commit)
	}

	resetOffsets(l.anim, l.container.children)
	g.node.ZIndex = g.zIndex
	l.relayout()

	// drop and dragend report the item now at the start slot, which is the
	// dragged item only when nothing moved.
	item := l.itemAt(g.start)
	l.emit(PhaseDrop, ctx, item, g.start, commit)
	l.emit(PhaseDragEnd, ctx, item, g.start, commit)
	l.clearGesture()
}

// moveNode places node at the drop slot: append for the end slot, prepend
// for the first, otherwise next to the row currently at the slot.
func (l *List) moveNode(node *Node, start, drop, n int) {
	c := l.container
	switch {
	case drop >= n:
		c.AddChild(node)
	case drop == 0:
		c.Prepend(node)
	case start < drop:
		c.InsertAfter(c.children[drop], node)
	default:
		c.InsertBefore(c.children[drop], node)
	}
}

// moveItem moves one backing item with a single remove and insert.
func (l *List) moveItem(from, to int) {
	if from < 0 || from >= len(l.items) || to < 0 || to >= len(l.items) {
		return
	}
	item := l.items[from]
	l.items = slices.Delete(l.items, from, from+1)
	l.items = slices.Insert(l.items, to, item)
}

func (l *List) clearGesture() {
	if l.state == GestureDragging && l.g.node != nil && !l.g.node.IsDisposed() {
		l.g.node.ZIndex = l.g.zIndex
	}
	l.g = gesture{}
	l.state = GestureIdle
}

// emit raises an event without waiting for its listeners.
func (l *List) emit(phase Phase, ctx PointerContext, item any, start, drop int) *Pending {
	return l.events.notify(l.listeners.snapshot(phase), Event{
		Phase:   phase,
		Pointer: ctx,
		Item:    item,
		Start:   start,
		Drop:    drop,
	})
}
