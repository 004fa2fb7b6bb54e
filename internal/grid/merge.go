package grid

import (
	"time"

	"github.com/google/uuid"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

// MergeOutcome describes a successful merge.
type MergeOutcome struct {
	Item  save.Item `json:"item"`
	Coins int64     `json:"coins"`
	Chain bool      `json:"chain"`
}

// TryMerge merges the occupant of (srcCol, srcRow) onto
// (dstCol, dstRow). Creatures merge only on identical line and level,
// through the evolution table; other kinds merge on identical level to
// a flat level+1. All validation happens before any removal, so a
// rejected merge mutates nothing.
//
// The chain bonus is one independent roll per merge, never recursive.
func (g *Engine) TryMerge(srcCol, srcRow, dstCol, dstRow int) (MergeOutcome, bool) {
	a := g.ItemAt(srcCol, srcRow)
	b := g.ItemAt(dstCol, dstRow)
	if a == nil || b == nil {
		return MergeOutcome{}, false
	}
	if a.ID == b.ID {
		return MergeOutcome{}, false
	}
	if a.Kind != b.Kind {
		return MergeOutcome{}, false
	}

	var result save.Item
	if a.Kind == catalog.KindCreature && a.SpeciesID != "" && b.SpeciesID != "" {
		ma, okA := g.cat.Get(a.SpeciesID)
		mb, okB := g.cat.Get(b.SpeciesID)
		if !okA || !okB || ma.Line != mb.Line || ma.Level != mb.Level {
			return MergeOutcome{}, false
		}
		next, ok := g.cat.NextEvolution(a.SpeciesID)
		if !ok {
			// top of the line, or a hybrid: nothing to evolve into
			return MergeOutcome{}, false
		}
		result = g.itemFromSpecies(next)
	} else {
		if a.Level != b.Level {
			return MergeOutcome{}, false
		}
		result = save.Item{
			ID:     uuid.NewString(),
			Kind:   a.Kind,
			Level:  a.Level + 1,
			Rarity: a.Rarity,
		}
	}

	chain := g.rng.Float64() < g.cfg.ChainChance
	coins := g.cfg.MergeBaseCoins + g.cfg.MergePerLevelCoins*int64(result.Level)
	if chain {
		coins += g.cfg.ChainBonusCoins
	}

	g.Remove(a.ID)
	g.Remove(b.ID)
	g.Place(result, dstCol, dstRow)

	return MergeOutcome{Item: result, Coins: coins, Chain: chain}, true
}

// AutoSpawn advances the spawn timer and, when it fires and the grid
// has room, inserts one random base-tier creature. The interval
// shortens with the spawn-speed upgrade, clamped to a minimum.
func (g *Engine) AutoSpawn(dt time.Duration, spawnSpeedLevel int) *save.Item {
	g.spawnTimer += dt
	interval := time.Duration(float64(g.cfg.AutoSpawnInterval) * (1 - g.cfg.SpawnSpeedPerLevel*float64(spawnSpeedLevel)))
	if interval < g.cfg.AutoSpawnMinInterval {
		interval = g.cfg.AutoSpawnMinInterval
	}
	if g.spawnTimer < interval {
		return nil
	}
	g.spawnTimer = 0
	col, row, ok := g.FindEmptyCell()
	if !ok {
		return nil
	}
	item, ok := g.NewStarter()
	if !ok {
		return nil
	}
	g.Place(item, col, row)
	return &item
}
