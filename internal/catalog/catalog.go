package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Kind classifies what occupies a grid cell.
type Kind string

const (
	KindCreature   Kind = "creature"
	KindDecoration Kind = "decoration"
	KindOther      Kind = "other"
)

// Rarity is the ordered quality tier of a species or item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RaritySuperRare Rarity = "super_rare"
	RarityUltraRare Rarity = "ultra_rare"
)

// Order returns the tier index, common first.
func (r Rarity) Order() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityRare:
		return 1
	case RaritySuperRare:
		return 2
	case RarityUltraRare:
		return 3
	}
	return -1
}

// LineHybrid marks species produced by breeding. Hybrids have no
// evolution chain and cannot themselves be bred.
const LineHybrid = "hybrid"

// Species is one entry in the creature table.
type Species struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Rarity          Rarity   `json:"rarity"`
	Line            string   `json:"line"`
	Level           int      `json:"level"`
	ServiceBonus    float64  `json:"service_bonus"`
	AttractionBonus float64  `json:"attraction_bonus,omitempty"`
	ParentLines     []string `json:"parent_lines,omitempty"`
}

// IsHybrid reports whether the species comes from the breeding table.
func (s Species) IsHybrid() bool { return s.Line == LineHybrid }

// Catalog holds the keyed lookup tables built once at startup.
type Catalog struct {
	species     []Species
	byID        map[string]Species
	byLineLevel map[string]Species
	hybrids     map[string][]Species
}

func lineLevelKey(line string, level int) string {
	return fmt.Sprintf("%s|%d", line, level)
}

func parentKey(a, b string) string {
	p := []string{a, b}
	sort.Strings(p)
	return strings.Join(p, ",")
}

// New builds a catalog from a species list. Duplicate ids and duplicate
// (line, level) pairs outside the hybrid line are rejected.
func New(list []Species) (*Catalog, error) {
	c := &Catalog{
		species:     make([]Species, len(list)),
		byID:        make(map[string]Species, len(list)),
		byLineLevel: make(map[string]Species, len(list)),
		hybrids:     make(map[string][]Species),
	}
	copy(c.species, list)

	for _, s := range c.species {
		if s.ID == "" {
			return nil, fmt.Errorf("species with empty id")
		}
		if s.Level < 1 {
			return nil, fmt.Errorf("species %s: level must be >= 1", s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate species id: %s", s.ID)
		}
		c.byID[s.ID] = s

		if s.IsHybrid() {
			if len(s.ParentLines) != 2 {
				return nil, fmt.Errorf("hybrid %s: needs exactly two parent lines", s.ID)
			}
			k := parentKey(s.ParentLines[0], s.ParentLines[1])
			c.hybrids[k] = append(c.hybrids[k], s)
			continue
		}

		k := lineLevelKey(s.Line, s.Level)
		if _, dup := c.byLineLevel[k]; dup {
			return nil, fmt.Errorf("duplicate species for line %s level %d", s.Line, s.Level)
		}
		c.byLineLevel[k] = s
	}
	return c, nil
}

// Get looks a species up by id.
func (c *Catalog) Get(id string) (Species, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// ByLineLevel returns the species at (line, level), if defined.
func (c *Catalog) ByLineLevel(line string, level int) (Species, bool) {
	s, ok := c.byLineLevel[lineLevelKey(line, level)]
	return s, ok
}

// NextEvolution returns the (line, level+1) entry for a species.
// Hybrids have no evolution chain; a missing entry is a valid "no result".
func (c *Catalog) NextEvolution(id string) (Species, bool) {
	s, ok := c.byID[id]
	if !ok || s.IsHybrid() {
		return Species{}, false
	}
	return c.ByLineLevel(s.Line, s.Level+1)
}

// HybridFor picks a random hybrid candidate for the given parent lines.
// Order of the lines does not matter.
func (c *Catalog) HybridFor(lineA, lineB string, rng *rand.Rand) (Species, bool) {
	cands := c.hybrids[parentKey(lineA, lineB)]
	if len(cands) == 0 {
		return Species{}, false
	}
	if rng == nil {
		return cands[0], true
	}
	return cands[rng.Intn(len(cands))], true
}

// LevelOnePool returns all non-hybrid level-1 species, the pool the
// auto-spawner draws from.
func (c *Catalog) LevelOnePool() []Species {
	var out []Species
	for _, s := range c.species {
		if !s.IsHybrid() && s.Level == 1 {
			out = append(out, s)
		}
	}
	return out
}

// hatch weights, common..ultra-rare
var hatchWeights = [4]int{70, 20, 9, 1}

// RollRarity draws a rarity tier with the standard egg weights.
func RollRarity(rng *rand.Rand) Rarity {
	roll := rng.Intn(100)
	switch {
	case roll < hatchWeights[3]:
		return RarityUltraRare
	case roll < hatchWeights[3]+hatchWeights[2]:
		return RaritySuperRare
	case roll < hatchWeights[3]+hatchWeights[2]+hatchWeights[1]:
		return RarityRare
	default:
		return RarityCommon
	}
}

// RollHatch draws a random level-1 species of a rolled rarity; if the
// rolled tier has no level-1 entry it falls back to the whole pool.
func (c *Catalog) RollHatch(rng *rand.Rand) (Species, bool) {
	pool := c.LevelOnePool()
	if len(pool) == 0 {
		return Species{}, false
	}
	want := RollRarity(rng)
	var tier []Species
	for _, s := range pool {
		if s.Rarity == want {
			tier = append(tier, s)
		}
	}
	if len(tier) == 0 {
		tier = pool
	}
	return tier[rng.Intn(len(tier))], true
}

// Count returns the number of defined species, the denominator of the
// collection-completion percentage.
func (c *Catalog) Count() int { return len(c.species) }

// All returns the full species list in declaration order.
func (c *Catalog) All() []Species {
	out := make([]Species, len(c.species))
	copy(out, c.species)
	return out
}
