package config

import "time"

// Balance holds gameplay balance configuration
type Balance struct {
	// Grid
	GridCols      int `yaml:"grid_cols" json:"grid_cols"`
	GridRows      int `yaml:"grid_rows" json:"grid_rows"`
	GridMaxExpand int `yaml:"grid_max_expand" json:"grid_max_expand"`

	// Currency
	CoinDailyCapMultiplier int64   `yaml:"coin_daily_cap_multiplier" json:"coin_daily_cap_multiplier"`
	EnergyMax              int     `yaml:"energy_max" json:"energy_max"`
	EnergyRegenMinutes     int     `yaml:"energy_regen_minutes" json:"energy_regen_minutes"`
	GemRatePerCustomer     float64 `yaml:"gem_rate_per_customer" json:"gem_rate_per_customer"`

	// Customers and earnings
	CustomerSpawnRateBase float64 `yaml:"customer_spawn_rate_base" json:"customer_spawn_rate_base"`
	ServiceTimeBase       float64 `yaml:"service_time_base" json:"service_time_base"`
	ServiceTimeFloor      float64 `yaml:"service_time_floor" json:"service_time_floor"`
	CoinPerCustomerBase   float64 `yaml:"coin_per_customer_base" json:"coin_per_customer_base"`
	CoinLevelMultiplier   float64 `yaml:"coin_level_multiplier" json:"coin_level_multiplier"`
	DayProgressionGrowth  float64 `yaml:"day_progression_growth" json:"day_progression_growth"`
	DayProgressionCap     int     `yaml:"day_progression_cap" json:"day_progression_cap"`
	AttractionPerCafeLvl  float64 `yaml:"attraction_per_cafe_level" json:"attraction_per_cafe_level"`

	// Offline
	OfflineMaxHours float64 `yaml:"offline_max_hours" json:"offline_max_hours"`

	// Merging and auto-spawn
	MergeBaseCoins       int64         `yaml:"merge_base_coins" json:"merge_base_coins"`
	MergePerLevelCoins   int64         `yaml:"merge_per_level_coins" json:"merge_per_level_coins"`
	ChainChance          float64       `yaml:"chain_chance" json:"chain_chance"`
	ChainBonusCoins      int64         `yaml:"chain_bonus_coins" json:"chain_bonus_coins"`
	AutoSpawnInterval    time.Duration `yaml:"auto_spawn_interval" json:"auto_spawn_interval"`
	AutoSpawnMinInterval time.Duration `yaml:"auto_spawn_min_interval" json:"auto_spawn_min_interval"`
	SpawnSpeedPerLevel   float64       `yaml:"spawn_speed_per_level" json:"spawn_speed_per_level"`

	// Breeding
	BreedingMinLevel    int           `yaml:"breeding_min_level" json:"breeding_min_level"`
	BreedingEggDuration time.Duration `yaml:"breeding_egg_duration" json:"breeding_egg_duration"`
	BreedingBaseSlots   int           `yaml:"breeding_base_slots" json:"breeding_base_slots"`
	BreedingMaxSlots    int           `yaml:"breeding_max_slots" json:"breeding_max_slots"`
	BreedingBonusPerDay int           `yaml:"breeding_bonus_per_day" json:"breeding_bonus_per_day"`

	// Daily tasks
	DailyTaskCount      int   `yaml:"daily_task_count" json:"daily_task_count"`
	StreakTasksForBonus int   `yaml:"streak_tasks_for_bonus" json:"streak_tasks_for_bonus"`
	StreakBonusCoins    int64 `yaml:"streak_bonus_coins" json:"streak_bonus_coins"`

	// Weather
	WeatherSunnyCustomerBonus float64 `yaml:"weather_sunny_customer_bonus" json:"weather_sunny_customer_bonus"`
	WeatherRainIndoorBonus    float64 `yaml:"weather_rain_indoor_bonus" json:"weather_rain_indoor_bonus"`
	WeatherStormCustomerMult  float64 `yaml:"weather_storm_customer_mult" json:"weather_storm_customer_mult"`
	WeatherStormRareDropBonus float64 `yaml:"weather_storm_rare_drop_bonus" json:"weather_storm_rare_drop_bonus"`
	StormBossGoal             int     `yaml:"storm_boss_goal" json:"storm_boss_goal"`
	StormBossRewardCoins      int64   `yaml:"storm_boss_reward_coins" json:"storm_boss_reward_coins"`
	StormBossRewardGems       int     `yaml:"storm_boss_reward_gems" json:"storm_boss_reward_gems"`

	// Prestige
	PrestigeCollectionPercent int     `yaml:"prestige_collection_percent" json:"prestige_collection_percent"`
	PrestigeStarPerReset      int     `yaml:"prestige_star_per_reset" json:"prestige_star_per_reset"`
	PrestigeIncomePerStar     float64 `yaml:"prestige_income_per_star" json:"prestige_income_per_star"`
	PrestigeIncomePerUpgrade  float64 `yaml:"prestige_income_per_upgrade" json:"prestige_income_per_upgrade"`

	// Guild mock
	GuildDailyBonusCoins int64 `yaml:"guild_daily_bonus_coins" json:"guild_daily_bonus_coins"`
	CoopMergeGoal        int   `yaml:"coop_merge_goal" json:"coop_merge_goal"`

	// Minigames
	MinigameRewardCoins int64 `yaml:"minigame_reward_coins" json:"minigame_reward_coins"`

	// Paid actions
	SpawnCoinCost  int64 `yaml:"spawn_coin_cost" json:"spawn_coin_cost"`
	EggRushGemCost int   `yaml:"egg_rush_gem_cost" json:"egg_rush_gem_cost"`

	// Rewarded ads (simulated)
	AdWatchDuration time.Duration `yaml:"ad_watch_duration" json:"ad_watch_duration"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		GridCols:      5,
		GridRows:      5,
		GridMaxExpand: 7,

		CoinDailyCapMultiplier: 1000,
		EnergyMax:              100,
		EnergyRegenMinutes:     5,
		GemRatePerCustomer:     0.01,

		CustomerSpawnRateBase: 0.5,
		ServiceTimeBase:       5,
		ServiceTimeFloor:      0.5,
		CoinPerCustomerBase:   10,
		CoinLevelMultiplier:   0.1,
		DayProgressionGrowth:  0.08,
		DayProgressionCap:     365,
		AttractionPerCafeLvl:  0.2,

		OfflineMaxHours: 24,

		MergeBaseCoins:       20,
		MergePerLevelCoins:   5,
		ChainChance:          0.2,
		ChainBonusCoins:      50,
		AutoSpawnInterval:    10 * time.Second,
		AutoSpawnMinInterval: 3 * time.Second,
		SpawnSpeedPerLevel:   0.03,

		BreedingMinLevel:    5,
		BreedingEggDuration: 24 * time.Hour,
		BreedingBaseSlots:   3,
		BreedingMaxSlots:    6,
		BreedingBonusPerDay: 1,

		DailyTaskCount:      5,
		StreakTasksForBonus: 3,
		StreakBonusCoins:    500,

		WeatherSunnyCustomerBonus: 1.2,
		WeatherRainIndoorBonus:    1.15,
		WeatherStormCustomerMult:  0.9,
		WeatherStormRareDropBonus: 1.5,
		StormBossGoal:             20,
		StormBossRewardCoins:      2000,
		StormBossRewardGems:       10,

		PrestigeCollectionPercent: 80,
		PrestigeStarPerReset:      1,
		PrestigeIncomePerStar:     0.1,
		PrestigeIncomePerUpgrade:  0.05,

		GuildDailyBonusCoins: 500,
		CoopMergeGoal:        30,

		MinigameRewardCoins: 200,

		SpawnCoinCost:  100,
		EggRushGemCost: 10,

		AdWatchDuration: 3 * time.Second,
	}
}
