// Package breeding incubates hybrids from pairs of high-level
// creatures. Eggs carry absolute timestamps; readiness is recomputed,
// never counted down.
package breeding

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/grid"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

// Pairing rejection reasons.
const (
	ReasonOK           = ""
	ReasonMissing      = "item not found"
	ReasonNotCreature  = "not a creature"
	ReasonHybridParent = "hybrids cannot breed"
	ReasonLevelTooLow  = "level too low"
	ReasonSameLine     = "same evolution line"
	ReasonNoHybrid     = "no known pairing"
	ReasonSlotsFull    = "all slots busy"
	ReasonDailyLimit   = "daily attempts used"
)

type Nursery struct {
	store *save.Store
	clock clock.Clock
	cfg   config.Balance
	cat   *catalog.Catalog
	grid  *grid.Engine
	rng   *rand.Rand
}

func New(store *save.Store, clk clock.Clock, cfg config.Balance, cat *catalog.Catalog,
	g *grid.Engine, rng *rand.Rand) *Nursery {
	return &Nursery{store: store, clock: clk, cfg: cfg, cat: cat, grid: g, rng: rng}
}

// Slots is the incubation capacity: base plus the permanent upgrade,
// hard-capped.
func (n *Nursery) Slots() int {
	slots := n.cfg.BreedingBaseSlots + n.store.Data().Upgrades.BreedingSlotLevel
	if slots > n.cfg.BreedingMaxSlots {
		slots = n.cfg.BreedingMaxSlots
	}
	return slots
}

// ensureDaily lazily resets the attempt counters on day rollover.
func (n *Nursery) ensureDaily() *save.BreedingDaily {
	d := n.store.Data()
	today := clock.DateKey(n.clock.Now())
	if d.BreedingDaily == nil || d.BreedingDaily.Date != today {
		d.BreedingDaily = &save.BreedingDaily{Date: today}
		n.store.Save()
	}
	return d.BreedingDaily
}

// AttemptsLeft reports the free attempt plus remaining bonus attempts
// for today.
func (n *Nursery) AttemptsLeft() int {
	daily := n.ensureDaily()
	left := 0
	if !daily.FreeUsed {
		left++
	}
	left += n.cfg.BreedingBonusPerDay - daily.BonusUsed
	if left < 0 {
		left = 0
	}
	return left
}

// CanPair validates a parent pair without mutating anything. The
// returned reason is empty on success.
func (n *Nursery) CanPair(id1, id2 string) (string, bool) {
	d := n.store.Data()
	p1 := d.ItemByID(id1)
	p2 := d.ItemByID(id2)
	if p1 == nil || p2 == nil || id1 == id2 {
		return ReasonMissing, false
	}
	m1, ok1 := n.cat.Get(p1.SpeciesID)
	m2, ok2 := n.cat.Get(p2.SpeciesID)
	if !ok1 || !ok2 || p1.Kind != catalog.KindCreature || p2.Kind != catalog.KindCreature {
		return ReasonNotCreature, false
	}
	if m1.IsHybrid() || m2.IsHybrid() {
		return ReasonHybridParent, false
	}
	if p1.Level < n.cfg.BreedingMinLevel || p2.Level < n.cfg.BreedingMinLevel {
		return ReasonLevelTooLow, false
	}
	if m1.Line == m2.Line {
		return ReasonSameLine, false
	}
	if _, ok := n.cat.HybridFor(m1.Line, m2.Line, nil); !ok {
		return ReasonNoHybrid, false
	}
	return ReasonOK, true
}

// Start consumes both parents and an attempt, and puts an egg in a
// slot. Once the free attempt is used, the caller must opt into the
// bonus attempt explicitly. The hybrid result is rolled up front and
// sealed into the egg.
func (n *Nursery) Start(id1, id2 string, useBonus bool) (save.Egg, string, bool) {
	if reason, ok := n.CanPair(id1, id2); !ok {
		return save.Egg{}, reason, false
	}
	d := n.store.Data()
	if len(d.Eggs) >= n.Slots() {
		return save.Egg{}, ReasonSlotsFull, false
	}
	daily := n.ensureDaily()
	switch {
	case !daily.FreeUsed:
		daily.FreeUsed = true
	case useBonus && daily.BonusUsed < n.cfg.BreedingBonusPerDay:
		daily.BonusUsed++
	default:
		return save.Egg{}, ReasonDailyLimit, false
	}

	m1, _ := n.cat.Get(d.ItemByID(id1).SpeciesID)
	m2, _ := n.cat.Get(d.ItemByID(id2).SpeciesID)
	result, _ := n.cat.HybridFor(m1.Line, m2.Line, n.rng)

	n.grid.Remove(id1)
	n.grid.Remove(id2)
	egg := save.Egg{
		ID:       uuid.NewString(),
		ResultID: result.ID,
		Start:    n.clock.Now(),
		Duration: n.cfg.BreedingEggDuration,
		Parent1:  m1.ID,
		Parent2:  m2.ID,
	}
	d.Eggs = append(d.Eggs, egg)
	n.store.Save()
	return egg, ReasonOK, true
}

// Eggs returns all incubating eggs.
func (n *Nursery) Eggs() []save.Egg {
	return n.store.Data().Eggs
}

// Find returns an egg by id.
func (n *Nursery) Find(eggID string) (save.Egg, bool) {
	for _, egg := range n.store.Data().Eggs {
		if egg.ID == eggID {
			return egg, true
		}
	}
	return save.Egg{}, false
}

// Finish backdates an egg's start so it reads as ready immediately.
func (n *Nursery) Finish(eggID string) bool {
	d := n.store.Data()
	for i := range d.Eggs {
		if d.Eggs[i].ID == eggID {
			d.Eggs[i].Start = n.clock.Now().Add(-d.Eggs[i].Duration)
			n.store.Save()
			return true
		}
	}
	return false
}

// Remaining is the time left on an egg, zero when ready or unknown.
func (n *Nursery) Remaining(eggID string) time.Duration {
	for _, egg := range n.store.Data().Eggs {
		if egg.ID != eggID {
			continue
		}
		left := egg.Duration - n.clock.Now().Sub(egg.Start)
		if left < 0 {
			left = 0
		}
		return left
	}
	return 0
}

// Ready reports whether an egg has fully incubated.
func (n *Nursery) Ready(egg save.Egg) bool {
	return !n.clock.Now().Before(egg.Start.Add(egg.Duration))
}

// ReadyEggs lists eggs whose incubation has elapsed.
func (n *Nursery) ReadyEggs() []save.Egg {
	var out []save.Egg
	for _, egg := range n.store.Data().Eggs {
		if n.Ready(egg) {
			out = append(out, egg)
		}
	}
	return out
}

// Claim hatches a ready egg onto an empty grid cell and records the
// hybrid in the album. Fails without mutation when the egg is not
// ready or the grid is full.
func (n *Nursery) Claim(eggID string) (save.Item, bool) {
	d := n.store.Data()
	idx := -1
	for i, egg := range d.Eggs {
		if egg.ID == eggID {
			idx = i
			break
		}
	}
	if idx < 0 || !n.Ready(d.Eggs[idx]) {
		return save.Item{}, false
	}
	col, row, ok := n.grid.FindEmptyCell()
	if !ok {
		return save.Item{}, false
	}
	item, ok := n.grid.NewFromSpecies(d.Eggs[idx].ResultID)
	if !ok {
		return save.Item{}, false
	}
	n.grid.Place(item, col, row)
	d.RecordCollected(item.SpeciesID, item.Level)
	d.Eggs = append(d.Eggs[:idx], d.Eggs[idx+1:]...)
	n.store.Save()
	return item, true
}
