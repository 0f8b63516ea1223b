// Implements the batch-formation stage: N pickup agents draining the shared
// buffer under the batch-sizing policy and feeding completed batches tray by
// tray into the finish stage.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// PickupAgent is one independent carrier. Each agent owns a capacity-1
// resource (it can carry exactly one batch at a time) and its own RNG
// stream, and runs its loop concurrently with the other agents on the one
// event loop.
//
// An idle agent busy-polls the buffer on a fixed tick. There is no
// item-arrival notification primitive; the poll trades up to one tick of
// added pickup latency for a much simpler loop. This is an explicit
// approximation, not a blocking wait.
type PickupAgent struct {
	sim     *Simulator
	id      int
	carrier *ResourcePool
	rng     *rand.Rand
}

// NewPickupAgent creates agent id with its own capacity-1 carrier pool.
func NewPickupAgent(sim *Simulator, id int, rng *rand.Rand) *PickupAgent {
	return &PickupAgent{
		sim:     sim,
		id:      id,
		carrier: NewResourcePool(sim, 1),
		rng:     rng,
	}
}

// ID returns the agent's identifier.
func (a *PickupAgent) ID() int {
	return a.id
}

// Start schedules the agent's first loop iteration at time zero.
func (a *PickupAgent) Start() {
	a.sim.ScheduleAfter(0, a.step)
}

// morePending reports whether trays that are not yet completed and not yet
// in the buffer still exist. While it holds, a target batch that the buffer
// cannot satisfy yet may still fill up; once it turns false no further
// arrivals can ever occur and whatever remains must be flushed.
func (a *PickupAgent) morePending() bool {
	return a.sim.Collector.Completed()+a.sim.Buffer.Len() < a.sim.Config.TotalItems
}

// step begins one loop iteration: sample a fresh target batch size, then
// wait for the buffer to satisfy it.
func (a *PickupAgent) step() {
	if a.sim.Collector.Completed() >= a.sim.Config.TotalItems {
		logrus.Debugf("[t=%08.3f] agent %d: line drained, stopping", a.sim.Now(), a.id)
		return
	}
	target := uniformInt(a.rng, a.sim.Config.BatchMin, a.sim.Config.BatchMax)
	a.awaitTarget(target)
}

// awaitTarget polls until the buffer can satisfy target, no more arrivals
// are pending, or the run is over; then applies the sizing rules and either
// dispatches or goes back to polling.
func (a *PickupAgent) awaitTarget(target int) {
	s := a.sim
	cfg := s.Config

	if s.Collector.Completed() >= cfg.TotalItems {
		logrus.Debugf("[t=%08.3f] agent %d: line drained, stopping", s.Now(), a.id)
		return
	}

	if s.Buffer.Len() < target && a.morePending() {
		s.ScheduleAfter(cfg.PollTick, func() { a.awaitTarget(target) })
		return
	}

	if s.Buffer.Len() == 0 {
		// No arrivals are pending, yet the buffer is empty: the last trays
		// are mid-carry or mid-finish. Check back for termination.
		s.ScheduleAfter(cfg.PollTick, a.step)
		return
	}

	actual := min(target, s.Buffer.Len(), cfg.HardCap)

	// Drain-avoidance: while the line is still filling, refuse batches below
	// the acceptable minimum and resample a fresh target instead.
	if actual < cfg.MinAcceptable && a.morePending() {
		s.ScheduleAfter(cfg.PollTick, a.step)
		return
	}

	// Forced flush: when morePending() is false the buffer holds every tray
	// that will ever arrive, so the agent accepts actual regardless of
	// MinAcceptable. Waiting for a larger batch here would deadlock the run.
	a.dispatch(actual)
}

// dispatch atomically drains the front size trays off the buffer, carries
// them for a sampled duration, and releases each one into the finish stage.
func (a *PickupAgent) dispatch(size int) {
	s := a.sim
	now := s.Now()

	items := s.Buffer.TakeFront(size)
	batch := NewBatch(s.claimBatchID(), a.id, now, items)
	s.Batches = append(s.Batches, batch)
	s.Collector.RecordBatch(batch.Size)
	for _, it := range items {
		s.Collector.PickupWait.Observe(now - it.BufferedAt)
	}
	logrus.Debugf("[t=%08.3f] agent %d: formed batch %d of %d trays",
		now, a.id, batch.ID, batch.Size)

	a.carrier.Acquire(func() {
		carryTime := uniformDuration(a.rng, s.Config.PickupTime)
		s.ScheduleAfter(carryTime, func() {
			s.Collector.PickupService.Observe(carryTime)
			a.carrier.Release()
			logrus.Debugf("[t=%08.3f] agent %d: delivered batch %d after %.3f min",
				s.Now(), a.id, batch.ID, carryTime)
			// Trays of one batch enter the finish stage independently; their
			// relative order from here on is whatever the finish pool yields.
			for _, it := range batch.Items {
				s.Finish.Process(it, s.completeItem)
			}
			s.ScheduleAfter(0, a.step)
		})
	})
}
