package sim

import "testing"

// emptyConfig is a valid config that releases no trays, so Run only drains
// whatever events a test schedules by hand.
func emptyConfig() SimulationConfig {
	cfg := DefaultConfig()
	cfg.TotalItems = 0
	return cfg
}

func mustSimulator(t *testing.T, cfg SimulationConfig) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}
