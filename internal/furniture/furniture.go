// Package furniture manages cafe decorations placed outside the merge
// grid. Placements persist and their bonuses feed the idle rate.
package furniture

import (
	"github.com/google/uuid"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

// Def is one decoration type with its unlock gates and bonuses.
type Def struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Level           int     `json:"level"`
	UnlockAtMerges  int64   `json:"unlock_at_merges,omitempty"`
	UnlockAtCafeLvl int     `json:"unlock_at_cafe_level,omitempty"`
	Capacity        int     `json:"capacity,omitempty"`
	SpeedBonus      float64 `json:"speed_bonus,omitempty"`
}

var defs = []Def{
	{ID: "table_small", Name: "Small Table", Level: 1, Capacity: 1},
	{ID: "table_round", Name: "Round Table", Level: 2, UnlockAtMerges: 20, Capacity: 2, SpeedBonus: 0.1},
	{ID: "chair_cushion", Name: "Cushion Chair", Level: 1, UnlockAtCafeLvl: 2},
	{ID: "counter", Name: "Counter", Level: 3, UnlockAtMerges: 50, Capacity: 3, SpeedBonus: 0.15},
	{ID: "plant_small", Name: "Small Plant", Level: 1, UnlockAtMerges: 10},
	{ID: "lamp", Name: "Lamp", Level: 2, UnlockAtCafeLvl: 3},
}

type Manager struct {
	store *save.Store
}

func New(store *save.Store) *Manager {
	return &Manager{store: store}
}

func Defs() []Def {
	out := make([]Def, len(defs))
	copy(out, defs)
	return out
}

func defByID(id string) (Def, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Def{}, false
}

// Unlocked checks a decoration's merge-count and cafe-level gates.
func (m *Manager) Unlocked(def Def) bool {
	d := m.store.Data()
	if def.UnlockAtMerges > 0 && d.TotalMerges < def.UnlockAtMerges {
		return false
	}
	if def.UnlockAtCafeLvl > 0 && d.CafeLevel < def.UnlockAtCafeLvl {
		return false
	}
	return true
}

func (m *Manager) Placed() []save.PlacedDecor {
	return m.store.Data().Decor
}

// Place puts an unlocked decoration at a free-form position.
func (m *Manager) Place(decorID string, level int, x, y float64) (save.PlacedDecor, bool) {
	def, ok := defByID(decorID)
	if !ok || !m.Unlocked(def) {
		return save.PlacedDecor{}, false
	}
	placed := save.PlacedDecor{
		ID:      uuid.NewString(),
		DecorID: decorID,
		Level:   level,
		X:       x,
		Y:       y,
	}
	d := m.store.Data()
	d.Decor = append(d.Decor, placed)
	m.store.Save()
	return placed, true
}

func (m *Manager) Move(placedID string, x, y float64) bool {
	d := m.store.Data()
	for i := range d.Decor {
		if d.Decor[i].ID == placedID {
			d.Decor[i].X = x
			d.Decor[i].Y = y
			m.store.Save()
			return true
		}
	}
	return false
}

func (m *Manager) Remove(placedID string) bool {
	d := m.store.Data()
	for i := range d.Decor {
		if d.Decor[i].ID == placedID {
			d.Decor = append(d.Decor[:i], d.Decor[i+1:]...)
			m.store.Save()
			return true
		}
	}
	return false
}

// SpeedBonus sums service-speed bonuses across placed decorations.
func (m *Manager) SpeedBonus() float64 {
	total := 0.0
	for _, p := range m.store.Data().Decor {
		if def, ok := defByID(p.DecorID); ok {
			total += def.SpeedBonus
		}
	}
	return total
}

// Capacity sums seating capacity across placed decorations.
func (m *Manager) Capacity() int {
	total := 0
	for _, p := range m.store.Data().Decor {
		if def, ok := defByID(p.DecorID); ok {
			total += def.Capacity
		}
	}
	return total
}
