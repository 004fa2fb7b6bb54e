// Package prestige implements the collection-gated reset and the
// permanent star-shop upgrades it funds.
package prestige

import (
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

// UpgradeKind selects a star-shop axis.
type UpgradeKind string

const (
	UpgradeIncome UpgradeKind = "income"
	UpgradeSpawn  UpgradeKind = "spawn"
	UpgradeSlots  UpgradeKind = "slots"
)

type System struct {
	store *save.Store
	cat   *catalog.Catalog
	cfg   config.Balance
}

func New(store *save.Store, cat *catalog.Catalog, cfg config.Balance) *System {
	return &System{store: store, cat: cat, cfg: cfg}
}

// CollectionPercent is unique species collected over total defined,
// floored to an integer percentage.
func (s *System) CollectionPercent() int {
	total := s.cat.Count()
	if total == 0 {
		return 0
	}
	return s.store.Data().UniqueCollected() * 100 / total
}

func (s *System) CanPrestige() bool {
	return s.CollectionPercent() >= s.cfg.PrestigeCollectionPercent
}

// Do performs the irreversible reset: grid, album, eggs and level
// progress are wiped; stars just earned and all prior upgrades stay.
func (s *System) Do() bool {
	if !s.CanPrestige() {
		return false
	}
	d := s.store.Data()
	d.PrestigeCount++
	d.StarsEarned += s.cfg.PrestigeStarPerReset
	d.Ledger.Stars += s.cfg.PrestigeStarPerReset

	d.Items = []save.Item{}
	d.Collected = []save.Collected{}
	d.Eggs = []save.Egg{}
	d.PlayerLevel = 1
	d.CafeLevel = 1

	s.store.Save()
	return true
}

// IncomeMultiplier composes the star bonus and the income upgrade
// multiplicatively, not additively.
func (s *System) IncomeMultiplier() float64 {
	d := s.store.Data()
	starMult := 1 + float64(d.Ledger.Stars)*s.cfg.PrestigeIncomePerStar
	upgradeMult := 1 + float64(d.Upgrades.IncomeLevel)*s.cfg.PrestigeIncomePerUpgrade
	return starMult * upgradeMult
}

// SpawnSpeedLevel and SlotLevel expose upgrade levels to the grid and
// nursery.
func (s *System) SpawnSpeedLevel() int { return s.store.Data().Upgrades.SpawnSpeedLevel }
func (s *System) SlotLevel() int       { return s.store.Data().Upgrades.BreedingSlotLevel }

func (s *System) upgradeLevel(kind UpgradeKind) int {
	u := s.store.Data().Upgrades
	switch kind {
	case UpgradeIncome:
		return u.IncomeLevel
	case UpgradeSpawn:
		return u.SpawnSpeedLevel
	case UpgradeSlots:
		return u.BreedingSlotLevel
	}
	return 0
}

// UpgradeCost is a simple linear curve: one star more per level owned.
func (s *System) UpgradeCost(kind UpgradeKind) int {
	return 1 + s.upgradeLevel(kind)
}

// Buy spends stars on one upgrade level. No mutation on failure.
func (s *System) Buy(kind UpgradeKind) bool {
	cost := s.UpgradeCost(kind)
	d := s.store.Data()
	if d.Ledger.Stars < cost {
		return false
	}
	switch kind {
	case UpgradeIncome:
		d.Upgrades.IncomeLevel++
	case UpgradeSpawn:
		d.Upgrades.SpawnSpeedLevel++
	case UpgradeSlots:
		d.Upgrades.BreedingSlotLevel++
	default:
		return false
	}
	d.Ledger.Stars -= cost
	s.store.Save()
	return true
}
