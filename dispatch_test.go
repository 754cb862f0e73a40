package sortable

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestPhaseNames(t *testing.T) {
	tests := []struct {
		phase Phase
		name  string
	}{
		{PhaseDragStart, "dragstart"},
		{PhaseDrag, "drag"},
		{PhaseDragEnd, "dragend"},
		{PhaseDrop, "drop"},
		{PhaseChange, "change"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			p, ok := ParsePhase(tt.name)
			if !ok || p != tt.phase {
				t.Errorf("ParsePhase(%q) = %v, %v", tt.name, p, ok)
			}
		})
	}

	if _, ok := ParsePhase("click"); ok {
		t.Error("ParsePhase should reject unknown names")
	}
	if got := Phase(9).String(); got != "Phase(9)" {
		t.Errorf("unknown phase String() = %q", got)
	}
}

func TestEventHasDrop(t *testing.T) {
	if (Event{Phase: PhaseDragStart, Drop: -1}).HasDrop() {
		t.Error("dragstart carries no drop slot")
	}
	if !(Event{Phase: PhaseDrop}).HasDrop() {
		t.Error("drop carries a drop slot")
	}
}

func TestListenReturnsDistinctListeners(t *testing.T) {
	fn := func(Event) error { return nil }
	if Listen(fn) == Listen(fn) {
		t.Error("each Listen call should return a distinct listener")
	}
}

// --- Registry ---

func TestRegistryDeduplicates(t *testing.T) {
	var r listenerRegistry
	l := Listen(func(Event) error { return nil })
	r.add(PhaseChange, l)
	r.add(PhaseChange, l)

	if r.len(PhaseChange) != 1 {
		t.Errorf("len = %d, want 1", r.len(PhaseChange))
	}
	if got := r.snapshot(PhaseChange); len(got) != 1 {
		t.Errorf("snapshot = %d listeners, want 1", len(got))
	}
}

func TestRegistryIgnoresUnknownPhase(t *testing.T) {
	var r listenerRegistry
	l := Listen(func(Event) error { return nil })
	r.add(0, l)
	r.add(Phase(42), l)
	r.add(PhaseDrag, nil)
	r.remove(Phase(42), l)

	for p := PhaseDragStart; p <= PhaseChange; p++ {
		if r.len(p) != 0 {
			t.Errorf("phase %v has %d listeners, want 0", p, r.len(p))
		}
	}
}

func TestRegistryRemove(t *testing.T) {
	var r listenerRegistry
	a := Listen(func(Event) error { return nil })
	b := Listen(func(Event) error { return nil })
	r.add(PhaseDrop, a)
	r.add(PhaseDrop, b)
	r.remove(PhaseDrop, a)
	r.remove(PhaseDrag, b) // not registered there

	got := r.snapshot(PhaseDrop)
	if len(got) != 1 || got[0] != b {
		t.Errorf("snapshot after remove = %v", got)
	}
}

func TestRegistrySnapshotIsolated(t *testing.T) {
	var r listenerRegistry
	a := Listen(func(Event) error { return nil })
	r.add(PhaseDrop, a)
	snap := r.snapshot(PhaseDrop)
	r.remove(PhaseDrop, a)
	if len(snap) != 1 {
		t.Error("snapshot should not see later removals")
	}
}

// --- Dispatcher ---

func TestNotifyNoListenersCompletes(t *testing.T) {
	d := newDispatcher(0)
	p := d.notify(nil, Event{Phase: PhaseDrag})
	select {
	case <-p.Done():
	default:
		t.Fatal("pending with no listeners should be complete")
	}
	if err := p.Wait(); err != nil {
		t.Errorf("Wait = %v, want nil", err)
	}
	if d.running {
		t.Error("worker should start lazily")
	}
}

func TestNotifyRunsEveryListenerOnce(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()

	var calls atomic.Int32
	var got atomic.Value
	ls := make([]Listener, 5)
	for i := range ls {
		ls[i] = Listen(func(e Event) error {
			calls.Add(1)
			got.Store(e)
			return nil
		})
	}

	ev := Event{Phase: PhaseChange, Item: "x", Start: 2, Drop: 5}
	if err := d.notify(ls, ev).Wait(); err != nil {
		t.Fatalf("Wait = %v", err)
	}
	if calls.Load() != 5 {
		t.Errorf("calls = %d, want 5", calls.Load())
	}
	if e := got.Load().(Event); e.Item != "x" || e.Start != 2 || e.Drop != 5 {
		t.Errorf("event = %+v", e)
	}
}

func TestListenerFailuresIsolated(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()
	captureLogger(t)

	var ok atomic.Bool
	boom := errors.New("boom")
	ls := []Listener{
		Listen(func(Event) error { return boom }),
		Listen(func(Event) error { panic("kaboom") }),
		Listen(func(Event) error {
			ok.Store(true)
			return nil
		}),
	}

	err := d.notify(ls, Event{Phase: PhaseDrop}).Wait()
	if !ok.Load() {
		t.Error("healthy listener should still run")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Wait error should wrap boom, got %v", err)
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}
	if !strings.Contains(err.Error(), "drop listener panicked: kaboom") {
		t.Errorf("panic should be reported, got %v", err)
	}
}

func TestFailuresAreLogged(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()
	buf := captureLogger(t)

	_ = d.notify([]Listener{Listen(func(Event) error { return errors.New("nope") })}, Event{Phase: PhaseDrag}).Wait()
	if !strings.Contains(buf.String(), "listener failed") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestPhasesDeliveredInOrder(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()

	gate := make(chan struct{})
	var mu sync.Mutex
	var order []Phase
	record := func(e Event) error {
		mu.Lock()
		order = append(order, e.Phase)
		mu.Unlock()
		return nil
	}
	slow := Listen(func(e Event) error {
		<-gate
		return record(e)
	})

	d.notify([]Listener{slow}, Event{Phase: PhaseDragStart})
	d.notify([]Listener{Listen(record)}, Event{Phase: PhaseDrag})
	last := d.notify([]Listener{Listen(record)}, Event{Phase: PhaseDrop})
	close(gate)

	if err := last.Wait(); err != nil {
		t.Fatal(err)
	}
	want := []Phase{PhaseDragStart, PhaseDrag, PhaseDrop}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestNotifyDoesNotBlock(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()

	gate := make(chan struct{})
	defer close(gate)
	blocked := Listen(func(Event) error {
		<-gate
		return nil
	})

	done := make(chan struct{})
	go func() {
		for range 10 {
			d.notify([]Listener{blocked}, Event{Phase: PhaseDrag})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked behind a slow listener")
	}
}

func TestListenersOfOneEventRunConcurrently(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()

	const n = 3
	var arrived sync.WaitGroup
	arrived.Add(n)
	release := make(chan struct{})
	go func() {
		arrived.Wait()
		close(release)
	}()

	ls := make([]Listener, n)
	for i := range ls {
		ls[i] = Listen(func(Event) error {
			arrived.Done()
			select {
			case <-release:
				return nil
			case <-time.After(2 * time.Second):
				return errors.New("listeners did not overlap")
			}
		})
	}
	if err := d.notify(ls, Event{Phase: PhaseDrag}).Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestListenerConcurrencyLimit(t *testing.T) {
	d := newDispatcher(1)
	defer d.close()

	var running, peak atomic.Int32
	ls := make([]Listener, 4)
	for i := range ls {
		ls[i] = Listen(func(Event) error {
			cur := running.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		})
	}
	if err := d.notify(ls, Event{Phase: PhaseDrag}).Wait(); err != nil {
		t.Fatal(err)
	}
	if peak.Load() != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak.Load())
	}
}

func TestClosedDispatcherDropsEvents(t *testing.T) {
	d := newDispatcher(0)
	d.close()

	called := false
	p := d.notify([]Listener{Listen(func(Event) error {
		called = true
		return nil
	})}, Event{Phase: PhaseDrop})

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("pending on a closed dispatcher should complete")
	}
	if called {
		t.Error("listener should not run after close")
	}
}

func TestCloseDrainsQueuedBatches(t *testing.T) {
	d := newDispatcher(0)

	var calls atomic.Int32
	l := Listen(func(Event) error {
		calls.Add(1)
		return nil
	})
	d.notify([]Listener{l}, Event{Phase: PhaseDrag})
	p := d.notify([]Listener{l}, Event{Phase: PhaseDrop})
	d.close()

	if err := p.Wait(); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestQueuedDragBatchesCoalesce(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()

	gate := make(chan struct{})
	var mu sync.Mutex
	var seen []Event
	record := Listen(func(e Event) error {
		mu.Lock()
		seen = append(seen, e)
		mu.Unlock()
		return nil
	})
	blocker := Listen(func(Event) error {
		<-gate
		return nil
	})

	d.notify([]Listener{blocker}, Event{Phase: PhaseDragStart})
	p1 := d.notify([]Listener{record}, Event{Phase: PhaseDrag, Drop: 3})
	d.notify([]Listener{record}, Event{Phase: PhaseDrag, Drop: 4})
	p3 := d.notify([]Listener{record}, Event{Phase: PhaseDrag, Drop: 5})
	last := d.notify([]Listener{record}, Event{Phase: PhaseDrop, Drop: 5})
	close(gate)

	if err := last.Wait(); err != nil {
		t.Fatal(err)
	}
	if p1 != p3 {
		t.Error("coalesced drag events should share one pending handle")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("listener saw %d events, want 2 (latest drag, then drop)", len(seen))
	}
	if seen[0].Phase != PhaseDrag || seen[0].Drop != 5 {
		t.Errorf("drag event = %+v, want the latest (drop slot 5)", seen[0])
	}
	if seen[1].Phase != PhaseDrop {
		t.Errorf("second event = %v, want drop", seen[1].Phase)
	}
}

func TestDragAfterOtherPhaseNotCoalesced(t *testing.T) {
	d := newDispatcher(0)
	defer d.close()

	gate := make(chan struct{})
	var calls atomic.Int32
	counter := Listen(func(Event) error {
		calls.Add(1)
		return nil
	})
	blocker := Listen(func(Event) error {
		<-gate
		return nil
	})

	d.notify([]Listener{blocker}, Event{Phase: PhaseDragStart})
	d.notify([]Listener{counter}, Event{Phase: PhaseDrag})
	d.notify([]Listener{counter}, Event{Phase: PhaseDrop})
	last := d.notify([]Listener{counter}, Event{Phase: PhaseDrag})
	close(gate)

	if err := last.Wait(); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestWorkerExitsWhenQueueDrains(t *testing.T) {
	d := newDispatcher(0)
	l := Listen(func(Event) error { return nil })

	if err := d.notify([]Listener{l}, Event{Phase: PhaseDrop}).Wait(); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		d.mu.Lock()
		running := d.running
		d.mu.Unlock()
		if !running {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("worker still running after the queue drained")
		}
		time.Sleep(time.Millisecond)
	}

	// A later event starts a fresh worker.
	if err := d.notify([]Listener{l}, Event{Phase: PhaseDrop}).Wait(); err != nil {
		t.Fatal(err)
	}
}
