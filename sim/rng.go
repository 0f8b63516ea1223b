package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === Subsystem Constants ===

const (
	// SubsystemPrep is the RNG subsystem for prep-stage service times.
	SubsystemPrep = "prep"

	// SubsystemFinish is the RNG subsystem for finish-stage service times.
	SubsystemFinish = "finish"
)

// SubsystemAgent returns the subsystem name for pickup agent N. Each agent
// draws its batch targets and carry times from its own stream, so a run's
// results do not depend on how agent events interleave with each other.
func SubsystemAgent(id int) string {
	return fmt.Sprintf("agent_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem. Each subsystem's stream is derived as
// masterSeed XOR fnv1a64(subsystemName), so two runs with the same seed and
// config draw identical sequences in every subsystem.
//
// Thread-safety: NOT thread-safe. All draws happen on the event loop.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// uniformDuration samples Uniform(r.Min, r.Max) minutes from rng.
// A degenerate range returns its single value without consuming a draw
// position differently: rand.Float64 is still called once, keeping stream
// positions identical across configs that only widen a range.
func uniformDuration(rng *rand.Rand, r TimeRange) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// uniformInt samples an integer uniformly from [lo, hi] inclusive.
func uniformInt(rng *rand.Rand, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
