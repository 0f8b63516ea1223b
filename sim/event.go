// sim/event.go
//
// Defines the time-ordered event queue that drives the simulation.
// An event carries an opaque continuation; the Simulator assigns each event a
// strictly increasing sequence number at scheduling time so that events with
// identical timestamps resume in the order they were scheduled.

package sim

// Event is a scheduled resumption of a suspended process.
type Event struct {
	time float64 // virtual time (minutes) at which fn runs
	seq  uint64  // scheduling order, breaks ties between equal times
	fn   func()  // continuation to resume
}

// Timestamp returns the virtual time at which the event fires.
func (e *Event) Timestamp() float64 {
	return e.time
}

// EventQueue implements heap.Interface and orders events by (time, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []*Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(*Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}
