package evsel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	t.Run("defaults survive an empty config", func(t *testing.T) {
		path := writeConfigFile(t, `{}`)
		config, err := LoadConfiguration(path)
		require.NoError(t, err)
		assert.Equal(t, 1000000000, config.MaxEvents)
		assert.True(t, config.SelectGoodEvents)
		assert.True(t, config.SelectGlobalTracks)
		assert.Equal(t, float32(100), config.MaxVtxZ)
		assert.Equal(t, 10000000, config.TargetEvents)
		assert.Equal(t, float32(1.0), config.SamplingFraction)
		assert.True(t, config.ProcessTableData)
		assert.False(t, config.ProcessTableMC)
		assert.Equal(t, 1, config.NumWorkers)
		assert.True(t, config.WriteData)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"file_in": "input.jsonl",
			"file_out": "output.h5",
			"legacy_run": true,
			"system": "PbPb",
			"max_vtx_z": 10.0,
			"target_events": 500,
			"sampling_fraction": 0.25,
			"select_charge": -1,
			"num_workers": 4
		}`)
		config, err := LoadConfiguration(path)
		require.NoError(t, err)
		assert.Equal(t, "input.jsonl", config.FileIn)
		assert.True(t, config.LegacyRun)
		assert.Equal(t, "PbPb", config.System)
		assert.Equal(t, float32(10.0), config.MaxVtxZ)
		assert.Equal(t, 500, config.TargetEvents)
		assert.Equal(t, float32(0.25), config.SamplingFraction)
		assert.Equal(t, -1, config.SelectCharge)
		assert.Equal(t, 4, config.NumWorkers)
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		_, err := LoadConfiguration("/does/not/exist.json")
		assert.Error(t, err)
	})

	t.Run("malformed json returns an error", func(t *testing.T) {
		path := writeConfigFile(t, `{`)
		_, err := LoadConfiguration(path)
		assert.Error(t, err)
	})
}

func TestValidateConfiguration(t *testing.T) {
	t.Run("both table modes are fatal", func(t *testing.T) {
		config := Configuration{ProcessTableData: true, ProcessTableMC: true}
		err := ValidateConfiguration(config)
		require.Error(t, err)
		var conflict *ErrConflictingModes
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, err.Error(), "process_table_data")
		assert.Contains(t, err.Error(), "process_table_mc")
	})

	t.Run("single mode passes", func(t *testing.T) {
		assert.NoError(t, ValidateConfiguration(Configuration{ProcessTableData: true}))
		assert.NoError(t, ValidateConfiguration(Configuration{ProcessTableMC: true}))
		assert.NoError(t, ValidateConfiguration(Configuration{}))
	})
}
