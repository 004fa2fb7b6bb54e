package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

const (
	sunnyDay = "2026-03-19"
	rainDay  = "2026-03-10"
	stormDay = "2026-03-15"
)

func newSystemOn(day string) (*System, *save.Store, *clock.FakeClock) {
	t0, _ := time.Parse("2006-01-02", day)
	clk := clock.NewFakeClock(t0.Add(9 * time.Hour))
	store := save.Open(save.NewMemoryBackend(), clk, nil)
	return New(store, clk, config.Default()), store, clk
}

func TestDerive_IsPureAndBanded(t *testing.T) {
	typ, seed := Derive(rainDay)
	assert.Equal(t, Rain, typ)
	assert.Equal(t, 155865, seed)

	// Same key, same result.
	typ2, seed2 := Derive(rainDay)
	assert.Equal(t, typ, typ2)
	assert.Equal(t, seed, seed2)

	sunny, _ := Derive(sunnyDay)
	assert.Equal(t, Sunny, sunny)
	storm, _ := Derive(stormDay)
	assert.Equal(t, Storm, storm)
}

func TestToday_PersistsOncePerDay(t *testing.T) {
	s, store, clk := newSystemOn(rainDay)

	first := s.Today()
	assert.Equal(t, rainDay, first.Date)
	assert.Equal(t, string(Rain), first.Type)

	// Stored value is reused within the day even hours later.
	clk.Advance(10 * time.Hour)
	assert.Equal(t, first, s.Today())
	assert.Equal(t, first, *store.Data().Weather)

	// Next day rolls over.
	clk.Advance(24 * time.Hour)
	assert.NotEqual(t, first.Date, s.Today().Date)
}

func TestMultipliers(t *testing.T) {
	cfg := config.Default()

	s, _, _ := newSystemOn(sunnyDay)
	assert.Equal(t, cfg.WeatherSunnyCustomerBonus, s.CustomerMultiplier())
	assert.Equal(t, 1.0, s.RareDropMultiplier())

	s, _, _ = newSystemOn(stormDay)
	assert.Equal(t, cfg.WeatherStormCustomerMult, s.CustomerMultiplier())
	assert.Equal(t, cfg.WeatherStormRareDropBonus, s.RareDropMultiplier())
}

func TestBoss_OnlyOnStormDays(t *testing.T) {
	s, store, _ := newSystemOn(rainDay)
	assert.False(t, s.BossActive())
	s.AddBossProgress(5)
	assert.Equal(t, 0, store.Data().BossProgress)
}

func TestBoss_ProgressCapAndClaim(t *testing.T) {
	s, store, _ := newSystemOn(stormDay)
	assert.True(t, s.BossActive())

	// Not claimable before the goal.
	assert.False(t, s.ClaimBoss())

	s.AddBossProgress(15)
	s.AddBossProgress(15)
	progress, goal := s.BossProgress()
	assert.Equal(t, goal, progress)

	assert.True(t, s.ClaimBoss())
	assert.False(t, s.BossActive())
	assert.False(t, s.ClaimBoss())

	// Claimed: further merges do not move the bar.
	s.AddBossProgress(5)
	assert.Equal(t, goal, store.Data().BossProgress)
}

func TestResetBossIfNewDay(t *testing.T) {
	s, store, clk := newSystemOn(stormDay)
	s.Today()
	s.AddBossProgress(7)

	clk.Advance(24 * time.Hour)
	s.ResetBossIfNewDay()
	assert.Equal(t, 0, store.Data().BossProgress)
	assert.Empty(t, store.Data().BossClaimedDate)
}
