// Implements the ResourcePool, a fixed-capacity contention point with a FIFO
// wait queue. Every stage of the line models its staff as one pool; each
// pickup agent carries its own capacity-1 pool.

package sim

import "fmt"

// ResourcePool grants up to capacity units concurrently. Callers that cannot
// be granted immediately are suspended in FIFO order: the earliest waiter is
// resumed first, as a zero-delay event at the virtual time of the release.
// Capacity is fixed at construction; there is no resize.
type ResourcePool struct {
	sim      *Simulator
	capacity int
	inUse    int
	waiters  []func()
}

// NewResourcePool creates a pool with the given fixed capacity.
// Panics if capacity < 1; config validation rejects such values earlier.
func NewResourcePool(sim *Simulator, capacity int) *ResourcePool {
	if capacity < 1 {
		panic(fmt.Sprintf("NewResourcePool: capacity must be at least 1, got %d", capacity))
	}
	return &ResourcePool{sim: sim, capacity: capacity}
}

// Acquire requests one unit. If a unit is free it is taken and grant runs
// synchronously, still at the current virtual time. Otherwise the caller is
// parked at the back of the waiter queue and grant runs when Release hands
// it a unit.
func (p *ResourcePool) Acquire(grant func()) {
	if p.inUse < p.capacity {
		p.inUse++
		grant()
		return
	}
	p.waiters = append(p.waiters, grant)
}

// Release returns one unit. If anyone is waiting, the earliest waiter gets
// the unit immediately and its grant is scheduled at zero delay, so it
// resumes at the current clock value, after events already scheduled for
// this instant.
func (p *ResourcePool) Release() {
	if p.inUse <= 0 {
		panic("ResourcePool.Release: no units in use")
	}
	p.inUse--
	if len(p.waiters) == 0 {
		return
	}
	next := p.waiters[0]
	p.waiters = p.waiters[1:]
	p.inUse++
	p.sim.ScheduleAfter(0, next)
}

// InUse returns the number of units currently granted.
func (p *ResourcePool) InUse() int {
	return p.inUse
}

// Capacity returns the fixed capacity of the pool.
func (p *ResourcePool) Capacity() int {
	return p.capacity
}

// Waiting returns the number of suspended callers.
func (p *ResourcePool) Waiting() int {
	return len(p.waiters)
}
