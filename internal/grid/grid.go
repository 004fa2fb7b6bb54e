// Package grid keeps the spatial merge matrix and the flat persisted
// inventory in lockstep: the set of ids in cells is always exactly the
// set of ids in the flat list.
package grid

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

type Engine struct {
	store *save.Store
	cat   *catalog.Catalog
	cfg   config.Balance
	rng   *rand.Rand

	// cells holds item ids, row-major. Derived from the flat list,
	// rebuilt on demand; the flat list is the source of truth.
	cells      [][]string
	spawnTimer time.Duration
}

func New(store *save.Store, cat *catalog.Catalog, cfg config.Balance, rng *rand.Rand) *Engine {
	return &Engine{store: store, cat: cat, cfg: cfg, rng: rng}
}

func (g *Engine) Cols() int {
	if c := g.store.Data().GridCols; c > 0 {
		return c
	}
	return g.cfg.GridCols
}

func (g *Engine) Rows() int {
	if r := g.store.Data().GridRows; r > 0 {
		return r
	}
	return g.cfg.GridRows
}

// Rebuild reconstructs the matrix from the flat list, first-fit
// row-major. Convergent: calling it on a consistent grid changes
// nothing observable.
func (g *Engine) Rebuild() {
	rows, cols := g.Rows(), g.Cols()
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
	}
	items := g.store.Data().Items
	i := 0
	for r := 0; r < rows && i < len(items); r++ {
		for c := 0; c < cols && i < len(items); c++ {
			cells[r][c] = items[i].ID
			i++
		}
	}
	g.cells = cells
}

func (g *Engine) ensure() {
	if g.cells == nil || len(g.cells) != g.Rows() || (len(g.cells) > 0 && len(g.cells[0]) != g.Cols()) {
		g.Rebuild()
	}
}

// ItemAt resolves the occupant of a cell through the flat list, or nil.
func (g *Engine) ItemAt(col, row int) *save.Item {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return nil
	}
	g.ensure()
	id := g.cells[row][col]
	if id == "" {
		return nil
	}
	return g.store.Data().ItemByID(id)
}

// FindEmptyCell scans row-major for the first empty slot.
func (g *Engine) FindEmptyCell() (col, row int, ok bool) {
	g.ensure()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.cells[r][c] == "" {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

func (g *Engine) Full() bool {
	_, _, ok := g.FindEmptyCell()
	return !ok
}

// Remove clears the item's cell and drops it from the flat list.
func (g *Engine) Remove(id string) bool {
	g.ensure()
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] == id {
				g.cells[r][c] = ""
			}
		}
	}
	d := g.store.Data()
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Place puts an item at (col, row), falling back to any empty cell if
// the target is occupied. The flat list is updated in the same step.
func (g *Engine) Place(item save.Item, col, row int) bool {
	g.ensure()
	if g.ItemAt(col, row) != nil {
		var ok bool
		col, row, ok = g.FindEmptyCell()
		if !ok {
			return false
		}
	}
	g.cells[row][col] = item.ID
	d := g.store.Data()
	if d.ItemByID(item.ID) == nil {
		d.Items = append(d.Items, item)
	}
	return true
}

// NewStarter creates a random base-tier creature.
func (g *Engine) NewStarter() (save.Item, bool) {
	pool := g.cat.LevelOnePool()
	if len(pool) == 0 {
		return save.Item{}, false
	}
	meta := pool[g.rng.Intn(len(pool))]
	return g.itemFromSpecies(meta), true
}

// NewHatch creates a level-1 creature drawn with the rarity-weighted
// hatch roll. Reward hatches (coop objective, gifts) use this instead
// of the uniform starter pick.
func (g *Engine) NewHatch() (save.Item, bool) {
	meta, ok := g.cat.RollHatch(g.rng)
	if !ok {
		return save.Item{}, false
	}
	return g.itemFromSpecies(meta), true
}

// NewFromSpecies creates an item for a known species id.
func (g *Engine) NewFromSpecies(speciesID string) (save.Item, bool) {
	meta, ok := g.cat.Get(speciesID)
	if !ok {
		return save.Item{}, false
	}
	return g.itemFromSpecies(meta), true
}

func (g *Engine) itemFromSpecies(meta catalog.Species) save.Item {
	item := save.Item{
		ID:        uuid.NewString(),
		Kind:      catalog.KindCreature,
		Level:     meta.Level,
		Rarity:    meta.Rarity,
		SpeciesID: meta.ID,
	}
	if meta.IsHybrid() {
		item.HybridID = meta.ID
	}
	return item
}

// Tidy removes the single lowest-level item when the grid is full, to
// guarantee room. Deliberately simple, not an optimal declutter.
func (g *Engine) Tidy() bool {
	if !g.Full() {
		return true
	}
	d := g.store.Data()
	if len(d.Items) == 0 {
		return false
	}
	lowest := d.Items[0]
	for _, it := range d.Items[1:] {
		if it.Level < lowest.Level {
			lowest = it
		}
	}
	g.Remove(lowest.ID)
	return true
}
