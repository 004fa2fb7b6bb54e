package prestige

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

var testStart = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newSystemForTest() (*System, *save.Store) {
	clk := clock.NewFakeClock(testStart)
	store := save.Open(save.NewMemoryBackend(), clk, nil)
	return New(store, catalog.Default(), config.Default()), store
}

// collectSpecies marks the first n catalog species as collected.
func collectSpecies(store *save.Store, cat *catalog.Catalog, n int) {
	all := cat.All()
	for i := 0; i < n && i < len(all); i++ {
		store.Data().RecordCollected(all[i].ID, all[i].Level)
	}
}

func TestCollectionPercent(t *testing.T) {
	s, store := newSystemForTest()
	cat := catalog.Default()

	assert.Equal(t, 0, s.CollectionPercent())

	collectSpecies(store, cat, cat.Count())
	assert.Equal(t, 100, s.CollectionPercent())
}

func TestCanPrestige_Threshold(t *testing.T) {
	s, store := newSystemForTest()
	cat := catalog.Default()

	// One below the 80% line.
	need := (config.Default().PrestigeCollectionPercent*cat.Count() + 99) / 100
	collectSpecies(store, cat, need-1)
	assert.False(t, s.CanPrestige())

	all := cat.All()
	store.Data().RecordCollected(all[need-1].ID, all[need-1].Level)
	assert.True(t, s.CanPrestige())
}

func TestDo_RefusesBelowThreshold(t *testing.T) {
	s, store := newSystemForTest()

	assert.False(t, s.Do())
	assert.Equal(t, 0, store.Data().PrestigeCount)
	assert.Equal(t, 0, store.Data().Ledger.Stars)
}

func TestDo_WipesProgressAndKeepsStars(t *testing.T) {
	s, store := newSystemForTest()
	cat := catalog.Default()
	collectSpecies(store, cat, cat.Count())

	d := store.Data()
	d.Items = append(d.Items, save.Item{ID: "x", Kind: catalog.KindCreature, SpeciesID: "cat_3", Level: 3})
	d.Eggs = append(d.Eggs, save.Egg{ID: "egg"})
	d.PlayerLevel = 7
	d.CafeLevel = 4
	d.Upgrades.IncomeLevel = 2
	coinsBefore := d.Ledger.Coins

	require.True(t, s.Do())

	assert.Empty(t, d.Items)
	assert.Empty(t, d.Collected)
	assert.Empty(t, d.Eggs)
	assert.Equal(t, 1, d.PlayerLevel)
	assert.Equal(t, 1, d.CafeLevel)

	// Stars and permanent upgrades survive the wipe. So do coins.
	assert.Equal(t, 1, d.PrestigeCount)
	assert.Equal(t, 1, d.StarsEarned)
	assert.Equal(t, 1, d.Ledger.Stars)
	assert.Equal(t, 2, d.Upgrades.IncomeLevel)
	assert.Equal(t, coinsBefore, d.Ledger.Coins)
}

func TestIncomeMultiplier_Composes(t *testing.T) {
	s, store := newSystemForTest()

	assert.InDelta(t, 1.0, s.IncomeMultiplier(), 1e-9)

	store.Data().Ledger.Stars = 2
	store.Data().Upgrades.IncomeLevel = 3
	// (1 + 2*0.1) * (1 + 3*0.05)
	assert.InDelta(t, 1.38, s.IncomeMultiplier(), 1e-9)
}

func TestUpgradeCost_Linear(t *testing.T) {
	s, store := newSystemForTest()

	assert.Equal(t, 1, s.UpgradeCost(UpgradeSpawn))
	store.Data().Upgrades.SpawnSpeedLevel = 4
	assert.Equal(t, 5, s.UpgradeCost(UpgradeSpawn))
}

func TestBuy_SpendsStarsPerLevel(t *testing.T) {
	s, store := newSystemForTest()
	d := store.Data()

	// Broke: nothing happens.
	assert.False(t, s.Buy(UpgradeIncome))
	assert.Equal(t, 0, d.Upgrades.IncomeLevel)

	d.Ledger.Stars = 3
	assert.True(t, s.Buy(UpgradeIncome)) // cost 1
	assert.True(t, s.Buy(UpgradeIncome)) // cost 2
	assert.Equal(t, 2, d.Upgrades.IncomeLevel)
	assert.Equal(t, 0, d.Ledger.Stars)

	assert.False(t, s.Buy(UpgradeIncome))
}

func TestBuy_RoutesToEachAxis(t *testing.T) {
	s, store := newSystemForTest()
	d := store.Data()
	d.Ledger.Stars = 3

	require.True(t, s.Buy(UpgradeSpawn))
	require.True(t, s.Buy(UpgradeSlots))
	assert.Equal(t, 1, s.SpawnSpeedLevel())
	assert.Equal(t, 1, s.SlotLevel())
	assert.False(t, s.Buy(UpgradeKind("unknown")))
}