package sim

import (
	"container/heap"
	"testing"
)

func TestEventQueue_OrdersByTime(t *testing.T) {
	// GIVEN events pushed out of time order
	eq := make(EventQueue, 0)
	heap.Push(&eq, &Event{time: 3.0, seq: 1})
	heap.Push(&eq, &Event{time: 1.0, seq: 2})
	heap.Push(&eq, &Event{time: 2.0, seq: 3})

	// WHEN the queue is drained
	var times []float64
	for eq.Len() > 0 {
		ev := heap.Pop(&eq).(*Event)
		times = append(times, ev.time)
	}

	// THEN events come out in ascending time order
	want := []float64{1.0, 2.0, 3.0}
	for i, tm := range times {
		if tm != want[i] {
			t.Errorf("pop order[%d]: got time %f, want %f", i, tm, want[i])
		}
	}
}

func TestEventQueue_EqualTimes_FIFOBySequence(t *testing.T) {
	// GIVEN several events at the same timestamp with increasing sequence
	// numbers, pushed in shuffled order
	eq := make(EventQueue, 0)
	heap.Push(&eq, &Event{time: 5.0, seq: 3})
	heap.Push(&eq, &Event{time: 5.0, seq: 1})
	heap.Push(&eq, &Event{time: 5.0, seq: 4})
	heap.Push(&eq, &Event{time: 5.0, seq: 2})

	// WHEN the queue is drained
	var seqs []uint64
	for eq.Len() > 0 {
		seqs = append(seqs, heap.Pop(&eq).(*Event).seq)
	}

	// THEN ties resolve in scheduling order
	want := []uint64{1, 2, 3, 4}
	for i, seq := range seqs {
		if seq != want[i] {
			t.Errorf("tie-break order[%d]: got seq %d, want %d", i, seq, want[i])
		}
	}
}

func TestScheduleAfter_NegativeDelay_Panics(t *testing.T) {
	s := mustSimulator(t, emptyConfig())

	defer func() {
		if recover() == nil {
			t.Fatal("ScheduleAfter with negative delay did not panic")
		}
	}()
	s.ScheduleAfter(-0.1, func() {})
}

func TestScheduleAfter_InsertedEventsVisibleToRun(t *testing.T) {
	// GIVEN an event whose continuation schedules further events
	s := mustSimulator(t, emptyConfig())
	var fired []string
	s.ScheduleAfter(1.0, func() {
		fired = append(fired, "outer")
		s.ScheduleAfter(0, func() { fired = append(fired, "inner-now") })
		s.ScheduleAfter(2.0, func() { fired = append(fired, "inner-later") })
	})

	// WHEN the simulation runs
	s.Run()

	// THEN the freshly scheduled events run in order
	want := []string{"outer", "inner-now", "inner-later"}
	if len(fired) != len(want) {
		t.Fatalf("fired %d events, want %d", len(fired), len(want))
	}
	for i, name := range fired {
		if name != want[i] {
			t.Errorf("execution order[%d]: got %s, want %s", i, name, want[i])
		}
	}
}

func TestRun_ClockNeverDecreases(t *testing.T) {
	// GIVEN a mix of delayed and zero-delay events
	s := mustSimulator(t, emptyConfig())
	var observed []float64
	record := func() { observed = append(observed, s.Now()) }
	s.ScheduleAfter(2.0, record)
	s.ScheduleAfter(0.5, func() {
		record()
		s.ScheduleAfter(0, record)
		s.ScheduleAfter(0.1, record)
	})
	s.ScheduleAfter(1.0, record)

	// WHEN the simulation runs
	s.Run()

	// THEN the clock sequence is non-decreasing
	for i := 1; i < len(observed); i++ {
		if observed[i] < observed[i-1] {
			t.Errorf("clock decreased: %f after %f", observed[i], observed[i-1])
		}
	}
	if len(observed) != 5 {
		t.Errorf("observed %d events, want 5", len(observed))
	}
}
