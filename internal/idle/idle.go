// Package idle advances the cafe simulation: customer arrivals,
// service throughput and coin income, both live (fixed ticks) and as a
// single recomputed offline block.
package idle

import (
	"math/rand"
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/economy"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/furniture"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/prestige"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/weather"
)

// Stats is the current derived earning profile, for UI display.
type Stats struct {
	Attraction       float64 `json:"attraction"`
	DayMultiplier    float64 `json:"day_multiplier"`
	CustomersPerMin  float64 `json:"customers_per_min"`
	CoinsPerCustomer float64 `json:"coins_per_customer"`
	HourlyCoins      float64 `json:"hourly_coins"`
}

// TickReport is what one live tick produced.
type TickReport struct {
	Served int64 `json:"served"`
	Coins  int64 `json:"coins"`
	Gems   int   `json:"gems"`
}

// OfflineReport is the pending away-earnings block, claimable once.
type OfflineReport struct {
	Duration  time.Duration `json:"duration"`
	Clamped   bool          `json:"clamped"`
	Customers int64         `json:"customers"`
	Coins     int64         `json:"coins"`
	Gems      int           `json:"gems"`
}

type Simulator struct {
	store     *save.Store
	clock     clock.Clock
	cfg       config.Balance
	cat       *catalog.Catalog
	weather   *weather.System
	prestige  *prestige.System
	furniture *furniture.Manager
	ledger    *economy.Ledger
	rng       *rand.Rand

	// Fractional carry between ticks. Not persisted: a restart
	// recomputes the gap as offline time instead.
	serveAcc float64
	coinAcc  float64

	pending *OfflineReport
}

func New(store *save.Store, clk clock.Clock, cfg config.Balance, cat *catalog.Catalog,
	wx *weather.System, pr *prestige.System, fur *furniture.Manager, ledger *economy.Ledger,
	rng *rand.Rand) *Simulator {
	return &Simulator{
		store: store, clock: clk, cfg: cfg, cat: cat,
		weather: wx, prestige: pr, furniture: fur, ledger: ledger, rng: rng,
	}
}

// Attraction sums the cafe-level bonus and per-creature species
// bonuses for everything on the grid.
func (s *Simulator) Attraction() float64 {
	d := s.store.Data()
	total := float64(d.CafeLevel) * s.cfg.AttractionPerCafeLvl
	for _, it := range d.Items {
		if meta, ok := s.cat.Get(it.SpeciesID); ok {
			total += meta.AttractionBonus
		}
	}
	return total
}

// DayMultiplier grows income linearly with days played, capped.
func (s *Simulator) DayMultiplier() float64 {
	days := s.store.Data().PlayDays
	if days > s.cfg.DayProgressionCap {
		days = s.cfg.DayProgressionCap
	}
	return 1 + s.cfg.DayProgressionGrowth*float64(days)
}

// creatureLevelSum is the service staffing score.
func (s *Simulator) creatureLevelSum() int {
	total := 0
	for _, it := range s.store.Data().Items {
		if it.Kind == catalog.KindCreature {
			total += it.Level
		}
	}
	return total
}

// creatureCount is the occupant count. An empty cafe draws nobody.
func (s *Simulator) creatureCount() int {
	n := 0
	for _, it := range s.store.Data().Items {
		if it.Kind == catalog.KindCreature {
			n++
		}
	}
	return n
}

// arrivalRate is customers per second after all modifiers. Scales with
// the occupant count, so zero creatures means zero arrivals.
func (s *Simulator) arrivalRate() float64 {
	return s.cfg.CustomerSpawnRateBase * float64(s.creatureCount()) *
		(1 + s.Attraction()) * s.weather.CustomerMultiplier() * s.DayMultiplier()
}

// serviceRate is customers servable per second: one seat per capacity
// point, each turning over once per service time.
func (s *Simulator) serviceRate() float64 {
	levels := s.creatureLevelSum()
	if levels < 1 {
		levels = 1
	}
	svc := s.cfg.ServiceTimeBase / float64(levels)
	svc /= 1 + s.furniture.SpeedBonus()
	if svc < s.cfg.ServiceTimeFloor {
		svc = s.cfg.ServiceTimeFloor
	}
	seats := 1 + s.furniture.Capacity()
	return float64(seats) / svc
}

// throughput is customers actually served per second.
func (s *Simulator) throughput() float64 {
	arrive := s.arrivalRate()
	serve := s.serviceRate()
	if serve < arrive {
		return serve
	}
	return arrive
}

func (s *Simulator) coinsPerCustomer() float64 {
	d := s.store.Data()
	return s.cfg.CoinPerCustomerBase *
		(1 + s.cfg.CoinLevelMultiplier*float64(d.PlayerLevel)) *
		s.prestige.IncomeMultiplier()
}

// CurrentStats snapshots the derived profile.
func (s *Simulator) CurrentStats() Stats {
	tp := s.throughput()
	cpc := s.coinsPerCustomer()
	return Stats{
		Attraction:       s.Attraction(),
		DayMultiplier:    s.DayMultiplier(),
		CustomersPerMin:  tp * 60,
		CoinsPerCustomer: cpc,
		HourlyCoins:      tp * cpc * 3600,
	}
}

// Tick advances the live simulation by dt. Whole customers are served
// when the fractional accumulator crosses one; income is credited
// through the ledger so the lifetime cap applies. At most one gem can
// drop per tick.
func (s *Simulator) Tick(dt time.Duration) TickReport {
	if dt <= 0 {
		return TickReport{}
	}
	sec := dt.Seconds()
	s.serveAcc += s.throughput() * sec
	served := int64(s.serveAcc)
	if served <= 0 {
		return TickReport{}
	}
	s.serveAcc -= float64(served)

	s.coinAcc += float64(served) * s.coinsPerCustomer()
	coins := int64(s.coinAcc)
	s.coinAcc -= float64(coins)

	d := s.store.Data()
	d.TotalServed += served
	earned := s.ledger.AddCoins(coins)

	gems := 0
	p := float64(served) * s.cfg.GemRatePerCustomer * s.weather.RareDropMultiplier()
	if p > 1 {
		p = 1
	}
	if s.rng.Float64() < p {
		gems = 1
		s.ledger.AddGems(1)
	}
	s.store.Save()
	return TickReport{Served: served, Coins: earned, Gems: gems}
}

// ComputeOffline turns the gap since the given logout into a pending
// earnings block. The gap is clamped to the offline cap and earnings
// are linear in it. Calling it again replaces the pending block.
func (s *Simulator) ComputeOffline(logout time.Time) OfflineReport {
	now := s.clock.Now()
	gap := now.Sub(logout)
	if gap < 0 {
		gap = 0
	}
	max := time.Duration(s.cfg.OfflineMaxHours * float64(time.Hour))
	clamped := false
	if gap > max {
		gap = max
		clamped = true
	}
	sec := gap.Seconds()
	customers := int64(s.throughput() * sec)
	coins := int64(float64(customers) * s.coinsPerCustomer())
	gems := int(float64(customers) * s.cfg.GemRatePerCustomer)
	report := OfflineReport{Duration: gap, Clamped: clamped, Customers: customers, Coins: coins, Gems: gems}
	if customers > 0 {
		s.pending = &report
	} else {
		s.pending = nil
	}
	return report
}

// Pending returns the unclaimed offline block, if any.
func (s *Simulator) Pending() *OfflineReport {
	return s.pending
}

// ClaimOffline credits the pending block once, optionally doubled.
// The second call returns zero.
func (s *Simulator) ClaimOffline(doubled bool) OfflineReport {
	if s.pending == nil {
		return OfflineReport{}
	}
	report := *s.pending
	s.pending = nil
	coins := report.Coins
	gems := report.Gems
	if doubled {
		coins *= 2
		gems *= 2
	}
	d := s.store.Data()
	d.TotalServed += report.Customers
	report.Coins = s.ledger.AddCoins(coins)
	if gems > 0 {
		s.ledger.AddGems(gems)
	}
	report.Gems = gems
	s.store.Save()
	return report
}
