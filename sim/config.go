package sim

import (
	"fmt"
	"math"
	"time"
)

// TimeRange is a uniform service-time range in virtual minutes.
type TimeRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SimulationConfig holds every parameter of a single run. A config is
// validated once, before any event is scheduled; the engine itself assumes a
// valid config throughout the run.
type SimulationConfig struct {
	// Staffing per stage. PickupAgents is the number of independent carriers,
	// each able to move exactly one batch at a time.
	PrepStaff    int `yaml:"prep_staff"`
	PickupAgents int `yaml:"pickup_agents"`
	FinishStaff  int `yaml:"finish_staff"`

	// Per-stage uniform service-time ranges (minutes).
	PrepTime   TimeRange `yaml:"prep_time"`
	PickupTime TimeRange `yaml:"pickup_time"`
	FinishTime TimeRange `yaml:"finish_time"`

	// Batch sizing policy for pickup agents.
	BatchMin      int `yaml:"batch_min"`
	BatchMax      int `yaml:"batch_max"`
	HardCap       int `yaml:"hard_cap"`
	MinAcceptable int `yaml:"min_acceptable"`

	// Total number of trays released into the line at time zero.
	TotalItems int `yaml:"total_items"`

	// PollTick is the delay an idle pickup agent waits before re-checking the
	// buffer (minutes).
	PollTick float64 `yaml:"poll_tick"`

	// Horizon is an optional virtual-time cutoff in minutes; zero means none.
	// A run stopped by the horizon reports Truncated=true.
	Horizon float64 `yaml:"horizon"`

	Seed int64 `yaml:"seed"`

	// Start anchors virtual minute 0 to a wall-clock instant for completion
	// record labels.
	Start time.Time `yaml:"start"`
}

// DefaultConfig returns the reference shift: 180 trays, 2 prep staff,
// 2 pickup agents, 3 finish staff, batches of 5 to 8.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		PrepStaff:     2,
		PickupAgents:  2,
		FinishStaff:   3,
		PrepTime:      TimeRange{Min: 0.17, Max: 0.30},
		PickupTime:    TimeRange{Min: 0.17, Max: 0.30},
		FinishTime:    TimeRange{Min: 0.17, Max: 0.30},
		BatchMin:      5,
		BatchMax:      8,
		HardCap:       10,
		MinAcceptable: 4,
		TotalItems:    180,
		PollTick:      0.1,
		Seed:          42,
		Start:         time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC),
	}
}

func validateRange(name string, r TimeRange) error {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%s bounds must be finite, got (%f, %f)", name, r.Min, r.Max)
	}
	if r.Min < 0 {
		return fmt.Errorf("%s min must be non-negative, got %f", name, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s min must not exceed max, got (%f, %f)", name, r.Min, r.Max)
	}
	return nil
}

// Validate checks all fields of the config. TotalItems may be zero: a
// zero-item run is a valid degenerate case that produces an empty report.
func (c *SimulationConfig) Validate() error {
	if c.PrepStaff < 1 {
		return fmt.Errorf("prep_staff must be at least 1, got %d", c.PrepStaff)
	}
	if c.PickupAgents < 1 {
		return fmt.Errorf("pickup_agents must be at least 1, got %d", c.PickupAgents)
	}
	if c.FinishStaff < 1 {
		return fmt.Errorf("finish_staff must be at least 1, got %d", c.FinishStaff)
	}
	if err := validateRange("prep_time", c.PrepTime); err != nil {
		return err
	}
	if err := validateRange("pickup_time", c.PickupTime); err != nil {
		return err
	}
	if err := validateRange("finish_time", c.FinishTime); err != nil {
		return err
	}
	if c.BatchMin < 1 {
		return fmt.Errorf("batch_min must be at least 1, got %d", c.BatchMin)
	}
	if c.BatchMin > c.BatchMax {
		return fmt.Errorf("batch_min must not exceed batch_max, got (%d, %d)", c.BatchMin, c.BatchMax)
	}
	if c.HardCap < 1 {
		return fmt.Errorf("hard_cap must be at least 1, got %d", c.HardCap)
	}
	if c.MinAcceptable < 1 {
		return fmt.Errorf("min_acceptable must be at least 1, got %d", c.MinAcceptable)
	}
	if c.TotalItems < 0 {
		return fmt.Errorf("total_items must be non-negative, got %d", c.TotalItems)
	}
	if c.PollTick <= 0 {
		return fmt.Errorf("poll_tick must be positive, got %f", c.PollTick)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %f", c.Horizon)
	}
	return nil
}
