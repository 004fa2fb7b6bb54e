// Package economy owns coins, gems, stars and the regenerating energy
// pool. Spends are bool-returning and never mutate on failure.
package economy

import (
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

type Ledger struct {
	store *save.Store
	clock clock.Clock
	cfg   config.Balance
}

func New(store *save.Store, clk clock.Clock, cfg config.Balance) *Ledger {
	return &Ledger{store: store, clock: clk, cfg: cfg}
}

func (l *Ledger) Coins() int64 { return l.store.Data().Ledger.Coins }
func (l *Ledger) Gems() int    { return l.store.Data().Ledger.Gems }
func (l *Ledger) Stars() int   { return l.store.Data().Ledger.Stars }

// AddCoins credits coins up to the remaining lifetime-earnings
// allowance, which scales with player level. Excess is silently
// discarded, not an error.
func (l *Ledger) AddCoins(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	d := l.store.Data()
	cap := int64(d.PlayerLevel) * l.cfg.CoinDailyCapMultiplier
	allowed := cap - d.LifetimeCoins
	if allowed < 0 {
		allowed = 0
	}
	add := amount
	if add > allowed {
		add = allowed
	}
	d.Ledger.Coins += add
	d.LifetimeCoins += add
	l.store.Save()
	return add
}

func (l *Ledger) SpendCoins(amount int64) bool {
	d := l.store.Data()
	if d.Ledger.Coins < amount {
		return false
	}
	d.Ledger.Coins -= amount
	l.store.Save()
	return true
}

func (l *Ledger) AddGems(amount int) {
	if amount <= 0 {
		return
	}
	l.store.Data().Ledger.Gems += amount
	l.store.Save()
}

func (l *Ledger) SpendGems(amount int) bool {
	d := l.store.Data()
	if d.Ledger.Gems < amount {
		return false
	}
	d.Ledger.Gems -= amount
	l.store.Save()
	return true
}

func (l *Ledger) AddStars(amount int) {
	if amount <= 0 {
		return
	}
	l.store.Data().Ledger.Stars += amount
	l.store.Save()
}

func (l *Ledger) SpendStars(amount int) bool {
	d := l.store.Data()
	if d.Ledger.Stars < amount {
		return false
	}
	d.Ledger.Stars -= amount
	l.store.Save()
	return true
}

// Energy returns the current pool after lazy regeneration.
func (l *Ledger) Energy() int {
	return l.recomputeEnergy()
}

// recomputeEnergy grants one unit per fixed regen interval elapsed
// since the last grant, clamped to max. The timestamp only advances
// when at least one whole unit was granted, so partial intervals are
// never lost to drift.
func (l *Ledger) recomputeEnergy() int {
	d := l.store.Data()
	now := l.clock.Now()
	interval := time.Duration(l.cfg.EnergyRegenMinutes) * time.Minute
	if interval <= 0 {
		return d.Ledger.Energy
	}
	regen := int(now.Sub(d.Ledger.EnergyAt) / interval)
	if regen <= 0 {
		return d.Ledger.Energy
	}
	e := d.Ledger.Energy + regen
	if e >= l.cfg.EnergyMax {
		e = l.cfg.EnergyMax
		d.Ledger.EnergyAt = now
	} else {
		// Advance by whole intervals only, keeping the partial one.
		d.Ledger.EnergyAt = d.Ledger.EnergyAt.Add(time.Duration(regen) * interval)
	}
	d.Ledger.Energy = e
	l.store.Save()
	return e
}

// SpendEnergy recomputes regen first, then fails without mutation if
// the pool is insufficient.
func (l *Ledger) SpendEnergy(amount int) bool {
	e := l.recomputeEnergy()
	if e < amount {
		return false
	}
	l.store.Data().Ledger.Energy = e - amount
	l.store.Save()
	return true
}

// RecordAdWatch bumps the lifetime rewarded-ad counter.
func (l *Ledger) RecordAdWatch() {
	l.store.Data().AdWatchCount++
	l.store.Save()
}
