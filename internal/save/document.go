package save

import (
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
)

// CurrentVersion is the save schema version written by this build.
// Older blobs are loaded by merging over the default document, so new
// fields are backfilled rather than migrated in place.
const CurrentVersion = 2

// Item is one merge-grid occupant in the flat persisted inventory.
// Position is implicit: the item's index in the flat list is its
// row-major slot, first-fit on rebuild.
type Item struct {
	ID        string         `json:"id"`
	Kind      catalog.Kind   `json:"kind"`
	Level     int            `json:"level"`
	Rarity    catalog.Rarity `json:"rarity"`
	SpeciesID string         `json:"species_id,omitempty"`
	// HybridID marks an item produced by breeding.
	HybridID string `json:"hybrid_id,omitempty"`
}

// Collected is one album entry.
type Collected struct {
	SpeciesID string `json:"species_id"`
	Level     int    `json:"level"`
	Count     int    `json:"count"`
}

// Egg is an incubating breeding result. Readiness is recomputed from
// absolute timestamps, never from a running counter.
type Egg struct {
	ID       string        `json:"id"`
	ResultID string        `json:"result_id"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Parent1  string        `json:"parent_1"`
	Parent2  string        `json:"parent_2"`
}

// PlacedDecor is a cafe decoration placed outside the merge grid.
type PlacedDecor struct {
	ID      string  `json:"id"`
	DecorID string  `json:"decor_id"`
	Level   int     `json:"level"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Ledger holds currencies and the lazily regenerating energy pool.
type Ledger struct {
	Coins    int64     `json:"coins"`
	Gems     int       `json:"gems"`
	Energy   int       `json:"energy"`
	EnergyAt time.Time `json:"energy_at"`
	Stars    int       `json:"stars"`
}

// TaskProgress is one daily task's progress row.
type TaskProgress struct {
	TaskID    string `json:"task_id"`
	Progress  int64  `json:"progress"`
	Completed bool   `json:"completed"`
	Claimed   bool   `json:"claimed"`
}

// Tutorial tracks onboarding progress.
type Tutorial struct {
	Step      int  `json:"step"`
	Completed bool `json:"completed"`
	SeenSteps int  `json:"seen_steps"`
}

// Weather is the persisted daily modifier. Type is pure in the seed.
type Weather struct {
	Date string `json:"date"`
	Type string `json:"type"`
	Seed int    `json:"seed"`
}

// Guild is the local cooperative mock.
type Guild struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	MemberIDs        []string `json:"member_ids"`
	DailyClaimedDate string   `json:"daily_claimed_date,omitempty"`
	GiftSentToday    bool     `json:"gift_sent_today"`
	GiftResetDate    string   `json:"gift_reset_date,omitempty"`
	CoopGoal         int      `json:"coop_goal"`
	CoopProgress     int      `json:"coop_progress"`
	CoopClaimedDate  string   `json:"coop_claimed_date,omitempty"`
}

// BreedingDaily limits breeding attempts per calendar day.
type BreedingDaily struct {
	Date      string `json:"date"`
	FreeUsed  bool   `json:"free_used"`
	BonusUsed int    `json:"bonus_used"`
}

// Upgrades are the permanent star-shop purchase levels.
type Upgrades struct {
	IncomeLevel       int `json:"income_level"`
	SpawnSpeedLevel   int `json:"spawn_speed_level"`
	BreedingSlotLevel int `json:"breeding_slot_level"`
}

// Document is the complete persisted save blob. Every other component
// reads and writes through the Store that owns exactly one of these.
type Document struct {
	Version  int       `json:"version"`
	LastSave time.Time `json:"last_save"`
	Logout   time.Time `json:"logout"`

	Ledger   Ledger `json:"ledger"`
	GridCols int    `json:"grid_cols"`
	GridRows int    `json:"grid_rows"`
	Items    []Item `json:"items"`

	Collected   []Collected `json:"collected"`
	PlayerLevel int         `json:"player_level"`
	CafeLevel   int         `json:"cafe_level"`

	DailyTasks    []TaskProgress `json:"daily_tasks"`
	TaskResetDate string         `json:"task_reset_date"`
	Streak        int            `json:"streak"`
	Tutorial      Tutorial       `json:"tutorial"`

	AdWatchCount  int   `json:"ad_watch_count"`
	TotalMerges   int64 `json:"total_merges"`
	TotalServed   int64 `json:"total_served"`
	LifetimeCoins int64 `json:"lifetime_coins"`

	Eggs    []Egg         `json:"eggs"`
	Weather *Weather      `json:"weather,omitempty"`
	Decor   []PlacedDecor `json:"decor"`

	PrestigeCount int    `json:"prestige_count"`
	StarsEarned   int    `json:"stars_earned"`
	Guild         *Guild `json:"guild,omitempty"`
	PlayDays      int    `json:"play_days"`

	MinigameDate   string          `json:"minigame_date,omitempty"`
	MinigamePlayed map[string]bool `json:"minigame_played"`

	BreedingDaily *BreedingDaily `json:"breeding_daily,omitempty"`
	Upgrades      Upgrades       `json:"upgrades"`
	PendingGifts  int            `json:"pending_gifts"`

	BossProgress    int    `json:"boss_progress"`
	BossGoal        int    `json:"boss_goal"`
	BossClaimedDate string `json:"boss_claimed_date,omitempty"`
}

// DefaultDocument returns a structurally complete new-player document.
func DefaultDocument(now time.Time) *Document {
	return &Document{
		Version:  CurrentVersion,
		LastSave: now,
		Logout:   now,
		Ledger: Ledger{
			Coins:    5000,
			Gems:     10,
			Energy:   100,
			EnergyAt: now,
		},
		GridCols:       5,
		GridRows:       5,
		Items:          []Item{},
		Collected:      []Collected{},
		PlayerLevel:    1,
		CafeLevel:      1,
		DailyTasks:     []TaskProgress{},
		TaskResetDate:  now.UTC().Format("2006-01-02"),
		Eggs:           []Egg{},
		Decor:          []PlacedDecor{},
		PlayDays:       1,
		MinigamePlayed: map[string]bool{},
		BossGoal:       20,
	}
}

// RecordCollected bumps the album count for a species at a level,
// creating the entry on first sighting.
func (d *Document) RecordCollected(speciesID string, level int) {
	for i := range d.Collected {
		if d.Collected[i].SpeciesID == speciesID && d.Collected[i].Level == level {
			d.Collected[i].Count++
			return
		}
	}
	d.Collected = append(d.Collected, Collected{SpeciesID: speciesID, Level: level, Count: 1})
}

// UniqueCollected counts distinct species in the album.
func (d *Document) UniqueCollected() int {
	seen := map[string]bool{}
	for _, c := range d.Collected {
		seen[c.SpeciesID] = true
	}
	return len(seen)
}

// ItemByID returns a pointer into the flat inventory, or nil.
func (d *Document) ItemByID(id string) *Item {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i]
		}
	}
	return nil
}
