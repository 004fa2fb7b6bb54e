// Package weather derives a deterministic per-day condition from the
// date key. Same day, same seed, same type, across restarts.
package weather

import (
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

type Type string

const (
	Sunny Type = "sunny"
	Rain  Type = "rain"
	Storm Type = "storm"
)

type System struct {
	store *save.Store
	clock clock.Clock
	cfg   config.Balance
}

func New(store *save.Store, clk clock.Clock, cfg config.Balance) *System {
	return &System{store: store, clock: clk, cfg: cfg}
}

// Derive maps a date key to its weather. Pure: a fixed key always
// yields the same seed and type. Not cryptographic, just stable.
func Derive(dateKey string) (Type, int) {
	sum := 0
	for _, c := range dateKey {
		sum += int(c)
	}
	seed := (sum*9301 + 49297) % 233280
	normalized := float64(seed) / 233280
	switch {
	case normalized < 0.5:
		return Sunny, seed
	case normalized < 0.85:
		return Rain, seed
	default:
		return Storm, seed
	}
}

// Today returns the stored modifier if its date key matches, otherwise
// derives, persists and returns today's. Idempotent within a day.
func (s *System) Today() save.Weather {
	d := s.store.Data()
	today := clock.DateKey(s.clock.Now())
	if d.Weather != nil && d.Weather.Date == today {
		return *d.Weather
	}
	typ, seed := Derive(today)
	state := save.Weather{Date: today, Type: string(typ), Seed: seed}
	d.Weather = &state
	s.store.Save()
	return state
}

// CustomerMultiplier is the throughput factor for today's weather.
func (s *System) CustomerMultiplier() float64 {
	switch Type(s.Today().Type) {
	case Sunny:
		return s.cfg.WeatherSunnyCustomerBonus
	case Rain:
		return s.cfg.WeatherRainIndoorBonus
	default:
		// storm thins the crowd but boosts rare drops
		return s.cfg.WeatherStormCustomerMult
	}
}

// RareDropMultiplier boosts gem-style drops during a storm.
func (s *System) RareDropMultiplier() float64 {
	if Type(s.Today().Type) == Storm {
		return s.cfg.WeatherStormRareDropBonus
	}
	return 1
}
