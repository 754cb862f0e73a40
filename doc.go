// Package sortable provides drag-to-reorder lists for [Ebitengine].
//
// A [List] binds to a container [Node] and renders one row per item of a
// backing slice. Pressing a row and moving the pointer drags it; the other
// rows slide aside to open a gap where it would land, and on release the row
// and its item move to that slot.
//
// # Quick start
//
//	scene := sortable.NewScene()
//	container := sortable.NewContainer("list")
//	container.Width, container.Height = 560, 400
//	scene.Root().AddChild(container)
//
//	list, err := sortable.NewList(container, sortable.ListConfig{Gap: 8})
//	if err != nil {
//		log.Fatal(err)
//	}
//	list.SetItems([]any{"alpha", "bravo", "charlie"})
//	scene.AddUpdater(list)
//
//	list.AddListener(sortable.PhaseChange, sortable.Listen(func(e sortable.Event) error {
//		fmt.Printf("%v moved from %d to %d\n", e.Item, e.Start, e.Drop)
//		return nil
//	}))
//
//	sortable.Run(scene, sortable.RunConfig{Title: "Sortable", Width: 640, Height: 480})
//
// # Gestures
//
// A gesture runs from press to release. At press time the List measures every
// row once; while dragging, [DropSlot] compares the dragged row's bounds with
// those measurements to find the candidate slot, and rows are only animated
// when that slot changes. Rows move through an [Animator], by default a
// [TweenAnimator] built on [gween].
//
// # Events
//
// Listeners are registered per [Phase]: dragstart, drag, drop, change and
// dragend. They run on their own goroutines so they never stall input
// handling, but the phases of one gesture are delivered in order.
//
// # Scene graph
//
// [Scene] owns the node tree, hit testing and pointer routing. Pointer
// events bubble from the node under the pointer up through its ancestors,
// and while a button is held every event goes to the node that was pressed.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package sortable
