package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarios_DefaultsFillOmittedFields(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: small-shift
    config:
      total_items: 30
      seed: 7
`)

	scenarios, err := LoadScenarios(path)

	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	sc := scenarios[0]
	assert.Equal(t, "small-shift", sc.Name)
	assert.Equal(t, 30, sc.Config.TotalItems)
	assert.Equal(t, int64(7), sc.Config.Seed)
	// untouched fields keep the reference defaults
	assert.Equal(t, 2, sc.Config.PrepStaff)
	assert.Equal(t, 0.1, sc.Config.PollTick)
	assert.Equal(t, 5, sc.Config.BatchMin)
}

func TestLoadScenarios_MultipleScenarios(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: baseline
    config: {}
  - name: extra-agent
    config:
      pickup_agents: 3
`)

	scenarios, err := LoadScenarios(path)

	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, 2, scenarios[0].Config.PickupAgents)
	assert.Equal(t, 3, scenarios[1].Config.PickupAgents)
}

func TestLoadScenarios_InvalidConfigRejected(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: broken
    config:
      prep_staff: 0
`)

	_, err := LoadScenarios(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prep_staff")
}

func TestLoadScenarios_UnnamedScenarioRejected(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - config:
      total_items: 5
`)

	_, err := LoadScenarios(path)
	require.Error(t, err)
}

func TestLoadScenarios_DuplicateNamesRejected(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: twin
    config: {}
  - name: twin
    config: {}
`)

	_, err := LoadScenarios(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadScenarios_EmptyFileRejected(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: []\n")

	_, err := LoadScenarios(path)
	require.Error(t, err)
}

func TestLoadScenarios_UnknownTopLevelKeyRejected(t *testing.T) {
	path := writeScenarioFile(t, `
scenarioz:
  - name: typo
`)

	_, err := LoadScenarios(path)
	require.Error(t, err)
}

func TestLoadScenarios_MissingFile(t *testing.T) {
	_, err := LoadScenarios(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
