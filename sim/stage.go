// Implements the generic individual-service Stage, instantiated twice: the
// prep stage that feeds the buffer and the finish stage that completes trays.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Stage is a service station with a fixed staff pool and a uniform
// service-time distribution. A tray passing through a stage waits for a free
// staff member (FIFO), is served for a sampled duration, and is handed to
// the stage's completion callback.
type Stage struct {
	sim         *Simulator
	name        string
	pool        *ResourcePool
	serviceTime TimeRange
	rng         *rand.Rand

	wait    *Sample
	service *Sample
}

// NewStage builds a stage with staff identical servers drawing service times
// from the given range on the stage's own RNG stream.
func NewStage(sim *Simulator, name string, staff int, serviceTime TimeRange, rng *rand.Rand, wait, service *Sample) *Stage {
	return &Stage{
		sim:         sim,
		name:        name,
		pool:        NewResourcePool(sim, staff),
		serviceTime: serviceTime,
		rng:         rng,
		wait:        wait,
		service:     service,
	}
}

// Pool exposes the stage's staff pool.
func (st *Stage) Pool() *ResourcePool {
	return st.pool
}

// Process runs one tray through the stage: join the FIFO admission queue,
// hold a staff member for a sampled service time, then hand the tray to
// done. The observable outcome is exactly one wait and one service
// observation plus the done callback at release time.
func (st *Stage) Process(item *WorkItem, done func(*WorkItem)) {
	arrival := st.sim.Now()
	st.pool.Acquire(func() {
		st.wait.Observe(st.sim.Now() - arrival)
		serviceTime := uniformDuration(st.rng, st.serviceTime)
		logrus.Debugf("[t=%08.3f] %s: tray %d starts service (%.3f min)",
			st.sim.Now(), st.name, item.ID, serviceTime)
		st.sim.ScheduleAfter(serviceTime, func() {
			st.service.Observe(serviceTime)
			st.pool.Release()
			done(item)
		})
	})
}
