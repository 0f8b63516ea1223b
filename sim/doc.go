// Package sim provides the discrete-event simulation engine for traysim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the (time, sequence)-ordered event queue
//   - simulator.go: the event loop, virtual clock, and run driver
//   - resource.go: FIFO fixed-capacity pools every stage contends on
//
// # Architecture
//
// A run models a three-stage production line over a fixed population of
// trays: the prep stage serves trays individually into a shared buffer,
// pickup agents drain the buffer in batches, and the finish stage serves
// carried trays individually to completion.
//
// All processes are cooperative continuations on a single event loop; there
// is no real parallelism and no locking. Events at equal virtual time resume
// in scheduling order, so a run is fully deterministic given a seed and a
// config. Randomness is partitioned per subsystem (rng.go), so adding draws
// to one stage does not reshuffle another stage's stream.
//
// The Collector (metrics.go) is a passive recorder; the RunReport it
// assembles is the engine's only output. The engine performs no file,
// network, or environment interaction; callers (see cmd/) own presentation.
package sim
