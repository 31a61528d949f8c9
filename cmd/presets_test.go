package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim"
)

func TestPresets_OnePerPolicy(t *testing.T) {
	names, err := PresetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"fcfs-sample", "priority-np-sample", "priority-p-sample", "round-robin-sample", "sjf-sample", "srtf-sample",
	}, names)
}

func TestPresets_AllValidAndSimulate(t *testing.T) {
	names, err := PresetNames()
	require.NoError(t, err)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			// GIVEN an embedded preset
			w, err := LoadPreset(name)
			require.NoError(t, err)
			require.NotNil(t, w.Scheduling)
			assert.Equal(t, name, w.Name)
			assert.NotEmpty(t, w.Description)

			// THEN it simulates under its own scheduling block
			res, err := sim.Simulate(*w.Scheduling, w.Processes)
			require.NoError(t, err)
			assert.Len(t, res.Metrics.Processes, len(w.Processes))
		})
	}
}

func TestLoadPreset_Unknown(t *testing.T) {
	_, err := LoadPreset("lottery-sample")
	assert.ErrorContains(t, err, `unknown preset "lottery-sample"`)
}
