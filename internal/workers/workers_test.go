package workers

import (
	"context"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
	ws.Stop()
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := NewWorkers(
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	)
	ws.Run()

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Stop_ReverseOrder(t *testing.T) {
	order := []int{}

	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := NewWorkers(
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	)
	ws.Stop()

	expected := []int{-3, -2, -1}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run()
	ws.Run()
	ws.Run()

	if w.runCount != 3 {
		t.Errorf("expected runCount=3 after 3 calls, got %d", w.runCount)
	}
}

func TestWorkers_Stop_AllWorkersAreStopped(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}

	ws := NewWorkers(w1, w2)
	ws.Run()
	ws.Stop()

	for i, w := range []*mockWorker{w1, w2} {
		if w.stopCount != 1 {
			t.Errorf("worker[%d]: expected stopCount=1, got %d", i, w.stopCount)
		}
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Run and
// the negated ID on Stop.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run() {
	*o.order = append(*o.order, o.id)
}

func (o *orderWorker) Stop() {
	*o.order = append(*o.order, -o.id)
}

// stubSweeper is a minimal service.DraftSweeper capturing lifecycle calls.
type stubSweeper struct {
	started  int
	stopped  int
	interval time.Duration
}

func (s *stubSweeper) Start(_ context.Context, interval time.Duration) {
	s.started++
	s.interval = interval
}

func (s *stubSweeper) Stop() {
	s.stopped++
}

func TestSweepWorker_RunStartsSweeper(t *testing.T) {
	sweeper := &stubSweeper{}
	w := NewSweepWorker(sweeper, time.Minute)

	w.Run()

	if sweeper.started != 1 {
		t.Fatalf("expected sweeper started once, got %d", sweeper.started)
	}
	if sweeper.interval != time.Minute {
		t.Errorf("expected interval=1m, got %v", sweeper.interval)
	}
}

func TestSweepWorker_ZeroIntervalDisablesSweep(t *testing.T) {
	sweeper := &stubSweeper{}
	w := NewSweepWorker(sweeper, 0)

	w.Run()

	if sweeper.started != 0 {
		t.Errorf("expected sweeper to stay idle, got %d starts", sweeper.started)
	}

	// Stop is still safe on a worker that never ran
	w.Stop()
	if sweeper.stopped != 1 {
		t.Errorf("expected stop to pass through, got %d", sweeper.stopped)
	}
}

func TestSweepWorker_StopStopsSweeper(t *testing.T) {
	sweeper := &stubSweeper{}
	w := NewSweepWorker(sweeper, time.Minute)

	w.Run()
	w.Stop()

	if sweeper.stopped != 1 {
		t.Fatalf("expected sweeper stopped once, got %d", sweeper.stopped)
	}
}
