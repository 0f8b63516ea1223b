package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/traysim/traysim/sim"
)

// Scenario pairs a display name with a full simulation config. Omitted
// config fields fall back to the reference defaults, so a scenario file only
// states what it changes.
type Scenario struct {
	Name   string               `yaml:"name"`
	Config sim.SimulationConfig `yaml:"config"`
}

// UnmarshalYAML decodes a scenario on top of the default config.
func (sc *Scenario) UnmarshalYAML(node *yaml.Node) error {
	type rawScenario Scenario
	raw := rawScenario{Config: sim.DefaultConfig()}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*sc = Scenario(raw)
	return nil
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads and validates a YAML scenario file. Every scenario
// must name itself and carry a valid config; nothing runs if any entry is
// invalid.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var file scenarioFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s declares no scenarios", path)
	}
	seen := map[string]bool{}
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario[%d]: name must not be empty", i)
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("scenario[%d]: duplicate name %q", i, sc.Name)
		}
		seen[sc.Name] = true
		if err := sc.Config.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	return file.Scenarios, nil
}
