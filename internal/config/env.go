package config

import (
	"os"
	"strconv"
	"time"
)

// FromEnv loads balance configuration from environment variables
// Falls back to defaults if variables are not set
func FromEnv() Balance {
	return ApplyEnv(Default())
}

// ApplyEnv overlays environment overrides on an existing config.
func ApplyEnv(cfg Balance) Balance {
	if val := getEnvInt("GRID_COLS"); val > 0 {
		cfg.GridCols = val
	}
	if val := getEnvInt("GRID_ROWS"); val > 0 {
		cfg.GridRows = val
	}
	if val := getEnvInt("ENERGY_MAX"); val > 0 {
		cfg.EnergyMax = val
	}
	if val := getEnvInt("ENERGY_REGEN_MINUTES"); val > 0 {
		cfg.EnergyRegenMinutes = val
	}
	if val := getEnvInt("COIN_DAILY_CAP_MULTIPLIER"); val > 0 {
		cfg.CoinDailyCapMultiplier = int64(val)
	}
	if val := getEnvFloat("OFFLINE_MAX_HOURS"); val > 0 {
		cfg.OfflineMaxHours = val
	}
	if val := getEnvInt("DAILY_TASK_COUNT"); val > 0 {
		cfg.DailyTaskCount = val
	}
	if val := getEnvInt("COOP_MERGE_GOAL"); val > 0 {
		cfg.CoopMergeGoal = val
	}
	if val := getEnvInt("STORM_BOSS_GOAL"); val > 0 {
		cfg.StormBossGoal = val
	}
	if val := getEnvInt("PRESTIGE_COLLECTION_PERCENT"); val > 0 {
		cfg.PrestigeCollectionPercent = val
	}
	if val := getEnvDuration("AUTO_SPAWN_INTERVAL"); val > 0 {
		cfg.AutoSpawnInterval = val
	}
	if val := getEnvDuration("BREEDING_EGG_DURATION"); val > 0 {
		cfg.BreedingEggDuration = val
	}
	if val := getEnvDuration("AD_WATCH_DURATION"); val > 0 {
		cfg.AdWatchDuration = val
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}

func getEnvDuration(key string) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0
	}
	return d
}
