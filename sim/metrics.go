// Tracks per-stage wait/service distributions, batch sizes, and completion
// records, and assembles the final RunReport.

package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sample is an append-only aggregate over a stream of observations.
type Sample struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
}

// Observe folds one value into the aggregate.
func (s *Sample) Observe(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.Sum += v
}

// Mean returns the average of the observed values, or 0 for an empty sample.
func (s *Sample) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Stats freezes the aggregate into its reportable form.
func (s *Sample) Stats() SampleStats {
	return SampleStats{Count: s.Count, Mean: s.Mean(), Min: s.Min, Max: s.Max}
}

// SampleStats is the immutable summary of a Sample. Min/Max/Mean are zero
// for an empty distribution rather than NaN.
type SampleStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// StageStats reports one stage's observed behavior over a run.
type StageStats struct {
	Staff   int         `json:"staff"`
	Wait    SampleStats `json:"wait"`
	Service SampleStats `json:"service"`
	// Utilization is sum(service) / (makespan * staff) * 100. Service
	// intervals that straddle the simulation boundary are counted whole, so
	// the value can nominally exceed 100 in pathological windows; reported
	// as observed, not clamped.
	Utilization float64 `json:"utilization_pct"`
}

// CompletionRecord is the immutable completion of a single tray.
type CompletionRecord struct {
	ItemID      int       `json:"item_id"`
	CompletedAt float64   `json:"completed_at"`
	WallClock   time.Time `json:"wall_clock"`
}

// RunReport aggregates statistics about the simulation for final reporting.
type RunReport struct {
	RunID      string  `json:"run_id"`
	TotalItems int     `json:"total_items"`
	Completed  int     `json:"completed"`
	Truncated  bool    `json:"truncated"`
	Makespan   float64 `json:"makespan_minutes"`
	// Throughput is completed trays per virtual minute; for an untruncated
	// run this equals TotalItems / Makespan.
	Throughput float64 `json:"throughput_per_minute"`

	Prep    StageStats  `json:"prep"`
	Pickup  StageStats  `json:"pickup"`
	Finish  StageStats  `json:"finish"`
	Batches SampleStats `json:"batches"`

	// Records lists completions in the order they occurred.
	Records []CompletionRecord `json:"records"`
}

// Collector is the passive recorder the stages report into. It never drives
// the simulation; it only accumulates what the stages observed.
type Collector struct {
	PrepWait      Sample
	PrepService   Sample
	PickupWait    Sample
	PickupService Sample
	FinishWait    Sample
	FinishService Sample
	BatchSizes    Sample

	records   []CompletionRecord
	completed int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBatch records one formed batch's size.
func (c *Collector) RecordBatch(size int) {
	c.BatchSizes.Observe(float64(size))
}

// RecordCompletion appends a tray's completion record and bumps the global
// completed count that pickup agents watch for termination.
func (c *Collector) RecordCompletion(id int, completedAt float64, wallClock time.Time) {
	c.records = append(c.records, CompletionRecord{
		ItemID:      id,
		CompletedAt: completedAt,
		WallClock:   wallClock,
	})
	c.completed++
}

// Completed returns the number of trays that have finished the line.
func (c *Collector) Completed() int {
	return c.completed
}

func utilization(service Sample, staff int, makespan float64) float64 {
	if makespan <= 0 || staff < 1 {
		return 0
	}
	return service.Sum / (makespan * float64(staff)) * 100
}

// Report assembles the RunReport for a finished (or truncated) run.
// Makespan is the last completion time; an empty run reports zeroes
// throughout rather than failing.
func (c *Collector) Report(cfg *SimulationConfig, truncated bool) *RunReport {
	makespan := 0.0
	for _, r := range c.records {
		if r.CompletedAt > makespan {
			makespan = r.CompletedAt
		}
	}
	throughput := 0.0
	if makespan > 0 {
		throughput = float64(c.completed) / makespan
	}
	return &RunReport{
		RunID:      uuid.NewString(),
		TotalItems: cfg.TotalItems,
		Completed:  c.completed,
		Truncated:  truncated,
		Makespan:   makespan,
		Throughput: throughput,
		Prep: StageStats{
			Staff:       cfg.PrepStaff,
			Wait:        c.PrepWait.Stats(),
			Service:     c.PrepService.Stats(),
			Utilization: utilization(c.PrepService, cfg.PrepStaff, makespan),
		},
		Pickup: StageStats{
			Staff:       cfg.PickupAgents,
			Wait:        c.PickupWait.Stats(),
			Service:     c.PickupService.Stats(),
			Utilization: utilization(c.PickupService, cfg.PickupAgents, makespan),
		},
		Finish: StageStats{
			Staff:       cfg.FinishStaff,
			Wait:        c.FinishWait.Stats(),
			Service:     c.FinishService.Stats(),
			Utilization: utilization(c.FinishService, cfg.FinishStaff, makespan),
		},
		Batches: c.BatchSizes.Stats(),
		Records: c.records,
	}
}

// Print displays the aggregated report at the end of a run.
func (r *RunReport) Print() {
	fmt.Println("=== Simulation Report ===")
	fmt.Printf("Run ID               : %s\n", r.RunID)
	fmt.Printf("Completed Trays      : %d / %d\n", r.Completed, r.TotalItems)
	if r.Truncated {
		fmt.Println("Run truncated by horizon before all trays completed")
	}
	fmt.Printf("Makespan             : %.2f min\n", r.Makespan)
	fmt.Printf("Throughput           : %.2f trays/min\n", r.Throughput)
	printStage := func(name string, s StageStats) {
		fmt.Printf("%-8s wait avg      : %.2f s\n", name, s.Wait.Mean*60)
		fmt.Printf("%-8s service avg   : %.2f s\n", name, s.Service.Mean*60)
		fmt.Printf("%-8s utilization   : %.1f%%\n", name, s.Utilization)
	}
	printStage("Prep", r.Prep)
	printStage("Pickup", r.Pickup)
	printStage("Finish", r.Finish)
	fmt.Printf("Batches              : %d (avg size %.2f, min %d, max %d)\n",
		r.Batches.Count, r.Batches.Mean, int(r.Batches.Min), int(r.Batches.Max))
}
