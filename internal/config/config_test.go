package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	raw := "grid_cols: 6\noffline_max_hours: 12\nmerge_base_coins: 40\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.GridCols)
	assert.Equal(t, 12.0, cfg.OfflineMaxHours)
	assert.Equal(t, int64(40), cfg.MergeBaseCoins)

	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.GridRows)
	assert.Equal(t, int64(100), cfg.SpawnCoinCost)
}

func TestLoadFile_MissingPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_cols: [oops"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestApplyEnv_OverridesSelectedKeys(t *testing.T) {
	t.Setenv("GRID_COLS", "7")
	t.Setenv("OFFLINE_MAX_HOURS", "8.5")
	t.Setenv("AD_WATCH_DURATION", "5s")
	t.Setenv("ENERGY_MAX", "not-a-number")

	cfg := ApplyEnv(Default())
	assert.Equal(t, 7, cfg.GridCols)
	assert.Equal(t, 8.5, cfg.OfflineMaxHours)
	assert.Equal(t, 5*time.Second, cfg.AdWatchDuration)

	// Unparseable values are ignored, not fatal.
	assert.Equal(t, Default().EnergyMax, cfg.EnergyMax)
}
