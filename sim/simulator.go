// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds the virtual clock, the event loop,
// and all line state for one run. Every "process" in the line (a tray moving
// through a stage, a pickup agent's loop) is a chain of continuations
// multiplexed on this single event loop, so all state mutation happens
// strictly between one event pop and the next.
type Simulator struct {
	Clock float64 // current virtual time in minutes, never decreases

	Config    *SimulationConfig
	RNG       *PartitionedRNG
	Buffer    *Buffer
	Prep      *Stage
	Finish    *Stage
	Agents    []*PickupAgent
	Collector *Collector
	Items     []*WorkItem
	Batches   []*Batch

	// Truncated is set when the horizon cutoff stops the run before every
	// tray completed.
	Truncated bool

	eventQueue  EventQueue
	seq         uint64
	nextBatchID int
}

// NewSimulator validates cfg and builds a ready-to-run simulator. No event
// is scheduled until Run is called, and none is ever scheduled for an
// invalid config.
func NewSimulator(cfg SimulationConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	s := &Simulator{
		Config:     &cfg,
		RNG:        NewPartitionedRNG(cfg.Seed),
		Buffer:     &Buffer{},
		Collector:  NewCollector(),
		eventQueue: make(EventQueue, 0),
	}

	s.Prep = NewStage(s, "prep", cfg.PrepStaff, cfg.PrepTime,
		s.RNG.ForSubsystem(SubsystemPrep),
		&s.Collector.PrepWait, &s.Collector.PrepService)
	s.Finish = NewStage(s, "finish", cfg.FinishStaff, cfg.FinishTime,
		s.RNG.ForSubsystem(SubsystemFinish),
		&s.Collector.FinishWait, &s.Collector.FinishService)

	s.Agents = make([]*PickupAgent, cfg.PickupAgents)
	for i := range s.Agents {
		s.Agents[i] = NewPickupAgent(s, i, s.RNG.ForSubsystem(SubsystemAgent(i)))
	}

	return s, nil
}

// Now returns the current virtual time in minutes.
func (s *Simulator) Now() float64 {
	return s.Clock
}

// WallClock converts a virtual time to the wall-clock label anchored at the
// configured start of shift.
func (s *Simulator) WallClock(t float64) time.Time {
	return s.Config.Start.Add(time.Duration(t * float64(time.Minute)))
}

// ScheduleAfter enqueues fn to run delay minutes from now. Delay must be
// non-negative and finite; a violation is a programming error in the caller,
// not a runtime condition, so it panics.
func (s *Simulator) ScheduleAfter(delay float64, fn func()) {
	if delay < 0 || math.IsNaN(delay) {
		panic(fmt.Sprintf("ScheduleAfter: delay must be non-negative, got %f", delay))
	}
	s.seq++
	heap.Push(&s.eventQueue, &Event{time: s.Clock + delay, seq: s.seq, fn: fn})
}

// Run releases all trays into the line at time zero, starts the pickup
// agents, and drains the event queue in (time, sequence) order. It returns
// the assembled report once the queue is empty or the horizon is crossed.
func (s *Simulator) Run() *RunReport {
	logrus.Infof("Starting run: %d trays, staff %d/%d/%d, batches %d-%d (cap %d)",
		s.Config.TotalItems, s.Config.PrepStaff, s.Config.PickupAgents,
		s.Config.FinishStaff, s.Config.BatchMin, s.Config.BatchMax, s.Config.HardCap)

	s.Items = make([]*WorkItem, s.Config.TotalItems)
	for i := range s.Items {
		item := &WorkItem{ID: i, BatchID: -1}
		s.Items[i] = item
		s.ScheduleAfter(0, func() {
			item.EnteredPrep = s.Clock
			s.Prep.Process(item, s.bufferItem)
		})
	}
	for _, a := range s.Agents {
		a.Start()
	}

	for s.eventQueue.Len() > 0 {
		ev := heap.Pop(&s.eventQueue).(*Event)
		if s.Config.Horizon > 0 && ev.Timestamp() > s.Config.Horizon {
			s.Clock = s.Config.Horizon
			s.Truncated = s.Collector.Completed() < s.Config.TotalItems
			logrus.Infof("[t=%08.3f] Horizon reached with %d/%d trays completed",
				s.Clock, s.Collector.Completed(), s.Config.TotalItems)
			break
		}
		s.Clock = ev.Timestamp()
		logrus.Debugf("[t=%08.3f] executing event seq=%d", s.Clock, ev.seq)
		ev.fn()
	}

	logrus.Infof("[t=%08.3f] Simulation ended", s.Clock)
	return s.Collector.Report(s.Config, s.Truncated)
}

// bufferItem is the prep stage's completion callback: the tray enters the
// shared buffer and waits for a pickup agent.
func (s *Simulator) bufferItem(item *WorkItem) {
	item.BufferedAt = s.Clock
	s.Buffer.Append(item)
	logrus.Debugf("[t=%08.3f] tray %d buffered (buffer len %d)", s.Clock, item.ID, s.Buffer.Len())
}

// completeItem is the finish stage's completion callback: the tray becomes
// an immutable completion record.
func (s *Simulator) completeItem(item *WorkItem) {
	item.CompletedAt = s.Clock
	s.Collector.RecordCompletion(item.ID, s.Clock, s.WallClock(s.Clock))
	logrus.Debugf("[t=%08.3f] tray %d completed (%d/%d)",
		s.Clock, item.ID, s.Collector.Completed(), s.Config.TotalItems)
}

// claimBatchID hands out sequential batch identifiers.
func (s *Simulator) claimBatchID() int {
	id := s.nextBatchID
	s.nextBatchID++
	return id
}
