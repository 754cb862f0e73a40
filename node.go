package sortable

// PointerContext carries pointer event data. Events bubble from Target up
// through its ancestors; Current is the node whose handler is running.
type PointerContext struct {
	Type      EventType
	Target    *Node
	Current   *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// --- ID counter ---

// nodeIDCounter is a plain counter; the scene graph is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element. Lists, their rows and anything drawn
// inside a row are all nodes.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout position relative to the parent, and size.
	X, Y          float64
	Width, Height float64

	// Visual offset applied on top of the layout position. Animators write
	// these; layout never does.
	OffsetX, OffsetY float64

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Ordering among siblings for drawing and hit testing.
	ZIndex int

	// Appearance
	Color Color
	Label string

	// Metadata
	UserData any

	// Per-node callbacks (nil by default). Events bubble, so a container
	// handler also sees events targeted at its descendants.
	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnPointerMove func(PointerContext)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a node with no visual representation of its own
// unless it is given a size and color.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	n.Color = Color{}
	return n
}

// NewRect creates a solid color rectangle node of the given size.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	n.Width = w
	n.Height = h
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("sortable: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("sortable: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild. When child is
// already a child of n, index refers to the order after its removal.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("sortable: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("sortable: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("sortable: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// Prepend inserts child before all other children.
func (n *Node) Prepend(child *Node) {
	n.AddChildAt(child, 0)
}

// InsertBefore places child immediately before ref. ref must be a child of n.
func (n *Node) InsertBefore(ref, child *Node) {
	if ref == child {
		return
	}
	if ref.Parent != n {
		panic("sortable: reference node's parent is not this node")
	}
	n.detach(child)
	n.AddChildAt(child, n.IndexOf(ref))
}

// InsertAfter places child immediately after ref. ref must be a child of n.
func (n *Node) InsertAfter(ref, child *Node) {
	if ref == child {
		return
	}
	if ref.Parent != n {
		panic("sortable: reference node's parent is not this node")
	}
	n.detach(child)
	n.AddChildAt(child, n.IndexOf(ref)+1)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("sortable: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("sortable: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// DisposeChildren disposes every child of this node.
func (n *Node) DisposeChildren() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the index of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("sortable: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("sortable: child index out of range")
	}
	oldIndex := n.IndexOf(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// DirectChildOf walks up from n and returns the ancestor (or n itself) whose
// parent is root. Returns nil when n is root or not inside root.
func (n *Node) DirectChildOf(root *Node) *Node {
	if n == root {
		return nil
	}
	for p := n; p != nil; p = p.Parent {
		if p.Parent == root {
			return p
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detach removes child from n without clearing any other state, so that
// index lookups that follow see the post-removal order.
func (n *Node) detach(child *Node) {
	if child.Parent == n {
		n.removeChildByPtr(child)
		child.Parent = nil
	}
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
