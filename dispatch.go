package sortable

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Phase identifies a stage of a drag gesture that listeners can observe.
//
// PhaseDragStart, PhaseDrag, PhaseDrop and PhaseChange make up the core
// gesture. PhaseDragEnd is an extra terminal phase raised after PhaseDrop,
// so one listener can see every gesture end whether or not it committed.
type Phase uint8

const (
	PhaseDragStart Phase = iota + 1 // pointer pressed on a row
	PhaseDrag                       // pointer moved while dragging
	PhaseDragEnd                    // gesture finished, raised after drop on every release
	PhaseDrop                       // pointer released, whether or not the order changed
	PhaseChange                     // pointer released and the order changed
)

var phaseNames = [...]string{
	PhaseDragStart: "dragstart",
	PhaseDrag:      "drag",
	PhaseDragEnd:   "dragend",
	PhaseDrop:      "drop",
	PhaseChange:    "change",
}

// String returns the phase name, e.g. "dragstart".
func (p Phase) String() string {
	if p.valid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func (p Phase) valid() bool {
	return p >= PhaseDragStart && p <= PhaseChange
}

// ParsePhase maps a phase name to its Phase.
func ParsePhase(name string) (Phase, bool) {
	for p := PhaseDragStart; p <= PhaseChange; p++ {
		if phaseNames[p] == name {
			return p, true
		}
	}
	return 0, false
}

// Event is delivered to listeners. All fields are copies taken when the
// event was raised.
type Event struct {
	Phase   Phase
	Pointer PointerContext // the pointer event that caused this phase
	Item    any
	Start   int
	Drop    int // -1 for PhaseDragStart
}

// HasDrop reports whether Drop carries a slot index.
func (e Event) HasDrop() bool {
	return e.Phase != PhaseDragStart
}

// Listener receives gesture events. Listeners run on their own goroutines
// and must not touch the scene graph. Implementations must be comparable;
// registering an equal listener twice keeps one registration.
type Listener interface {
	HandleSortEvent(Event) error
}

type funcListener struct {
	fn func(Event) error
}

func (l *funcListener) HandleSortEvent(e Event) error { return l.fn(e) }

// Listen wraps fn as a Listener. Keep the returned value to remove it later;
// every call returns a distinct listener.
func Listen(fn func(Event) error) Listener {
	return &funcListener{fn: fn}
}

// --- Registry ---

type listenerRegistry struct {
	sets [PhaseChange + 1]map[Listener]struct{}
}

func (r *listenerRegistry) add(p Phase, l Listener) {
	if !p.valid() || l == nil {
		return
	}
	if r.sets[p] == nil {
		r.sets[p] = make(map[Listener]struct{})
	}
	r.sets[p][l] = struct{}{}
}

func (r *listenerRegistry) remove(p Phase, l Listener) {
	if !p.valid() || l == nil {
		return
	}
	delete(r.sets[p], l)
}

// snapshot copies the phase's listeners so later registry changes do not
// affect an already raised event.
func (r *listenerRegistry) snapshot(p Phase) []Listener {
	set := r.sets[p]
	if len(set) == 0 {
		return nil
	}
	out := make([]Listener, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	return out
}

func (r *listenerRegistry) len(p Phase) int {
	if !p.valid() {
		return 0
	}
	return len(r.sets[p])
}

// --- Pending ---

// Pending tracks the listeners scheduled for one event.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func completedPending() *Pending {
	p := newPending()
	close(p.done)
	return p
}

// Done is closed once every listener for the event has returned.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until every listener has returned and reports their failures
// combined. Panics inside listeners are reported as errors.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// --- Dispatcher ---

type batch struct {
	event     Event
	listeners []Listener
	pending   *Pending
}

// dispatcher runs batches on one worker goroutine in submission order, so a
// phase's listeners all finish before the next phase's start. Inside a
// batch every listener runs on its own goroutine. Submitting never blocks.
//
// The worker only exists while batches are queued; it exits once the queue
// drains and the next notify starts a new one. A drag batch still waiting
// in the queue is replaced by a newer drag batch, so slow drag listeners
// see the latest pointer position instead of a growing backlog.
type dispatcher struct {
	mu      sync.Mutex
	queue   []*batch
	closed  bool
	limit   int
	running bool
}

func newDispatcher(limit int) *dispatcher {
	return &dispatcher{limit: limit}
}

// notify schedules listeners for ev and returns at once.
func (d *dispatcher) notify(listeners []Listener, ev Event) *Pending {
	if len(listeners) == 0 {
		return completedPending()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return completedPending()
	}
	if ev.Phase == PhaseDrag && len(d.queue) > 0 {
		if last := d.queue[len(d.queue)-1]; last.event.Phase == PhaseDrag {
			last.event = ev
			last.listeners = listeners
			return last.pending
		}
	}
	b := &batch{event: ev, listeners: listeners, pending: newPending()}
	d.queue = append(d.queue, b)
	if !d.running {
		d.running = true
		go d.run()
	}
	return b.pending
}

func (d *dispatcher) run() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.running = false
			d.mu.Unlock()
			return
		}
		b := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.runBatch(b)
	}
}

func (d *dispatcher) runBatch(b *batch) {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}
	for _, l := range b.listeners {
		g.Go(func() error {
			if err := callListener(l, b.event); err != nil {
				logger.Warn("listener failed", "phase", b.event.Phase, "err", err)
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			// Failures never cancel sibling listeners.
			return nil
		})
	}
	_ = g.Wait()
	b.pending.err = errs
	close(b.pending.done)
}

// close stops accepting events. Batches already queued still run.
func (d *dispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func callListener(l Listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s listener panicked: %v", ev.Phase, r)
		}
	}()
	return l.HandleSortEvent(ev)
}
