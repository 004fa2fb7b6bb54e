// Package guild is the local cooperative mock: a fake guild with
// scripted members, a shared merge objective, a daily bonus and a gift
// exchange. Everything is simulated against the local save.
package guild

import (
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/economy"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/grid"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

var mockMembers = []string{"mika", "tofu", "latte", "mochi", "pepper"}

type Social struct {
	store  *save.Store
	clock  clock.Clock
	cfg    config.Balance
	ledger *economy.Ledger
	grid   *grid.Engine
}

func New(store *save.Store, clk clock.Clock, cfg config.Balance, ledger *economy.Ledger,
	g *grid.Engine) *Social {
	return &Social{store: store, clock: clk, cfg: cfg, ledger: ledger, grid: g}
}

// ensure creates the mock guild on first touch and rolls daily state.
func (s *Social) ensure() *save.Guild {
	d := s.store.Data()
	if d.Guild == nil {
		d.Guild = &save.Guild{
			ID:        "guild_local",
			Name:      "Paw Pals",
			MemberIDs: append([]string(nil), mockMembers...),
			CoopGoal:  s.cfg.CoopMergeGoal,
		}
		s.store.Save()
	}
	s.ResetDailyIfNeeded()
	return d.Guild
}

// Info returns the guild state for display.
func (s *Social) Info() save.Guild {
	return *s.ensure()
}

// ResetDailyIfNeeded clears the once-per-day flags and restarts the
// coop objective when the calendar day rolled over since a claim.
func (s *Social) ResetDailyIfNeeded() {
	d := s.store.Data()
	g := d.Guild
	if g == nil {
		return
	}
	today := clock.DateKey(s.clock.Now())
	changed := false
	if g.GiftResetDate != today {
		g.GiftResetDate = today
		g.GiftSentToday = false
		changed = true
	}
	if g.CoopClaimedDate != "" && g.CoopClaimedDate != today {
		g.CoopClaimedDate = ""
		g.CoopProgress = 0
		changed = true
	}
	if changed {
		s.store.Save()
	}
}

// ContributeMerge counts the player's merges toward the shared
// objective. Progress freezes at the goal and while today's reward is
// already claimed.
func (s *Social) ContributeMerge(count int) {
	g := s.ensure()
	today := clock.DateKey(s.clock.Now())
	if g.CoopClaimedDate == today {
		return
	}
	g.CoopProgress += count
	if g.CoopProgress > g.CoopGoal {
		g.CoopProgress = g.CoopGoal
	}
	s.store.Save()
}

// CoopProgress reports the shared objective state.
func (s *Social) CoopProgress() (progress, goal int) {
	g := s.ensure()
	return g.CoopProgress, g.CoopGoal
}

// CanClaimCoop reports whether the objective is complete and unclaimed
// today.
func (s *Social) CanClaimCoop() bool {
	g := s.ensure()
	today := clock.DateKey(s.clock.Now())
	return g.CoopProgress >= g.CoopGoal && g.CoopClaimedDate != today
}

// ClaimCoop hatches a random reward creature onto the grid. A full
// grid forfeits the creature but the claim still completes, so the
// objective can restart tomorrow.
func (s *Social) ClaimCoop() (save.Item, bool) {
	if !s.CanClaimCoop() {
		return save.Item{}, false
	}
	d := s.store.Data()
	g := d.Guild
	g.CoopClaimedDate = clock.DateKey(s.clock.Now())
	g.CoopProgress = 0

	var placed save.Item
	if col, row, ok := s.grid.FindEmptyCell(); ok {
		if item, ok := s.grid.NewHatch(); ok {
			s.grid.Place(item, col, row)
			d.RecordCollected(item.SpeciesID, item.Level)
			placed = item
		}
	}
	s.store.Save()
	return placed, true
}

// ClaimDaily pays the guild membership bonus once per calendar day.
func (s *Social) ClaimDaily() (int64, bool) {
	g := s.ensure()
	today := clock.DateKey(s.clock.Now())
	if g.DailyClaimedDate == today {
		return 0, false
	}
	g.DailyClaimedDate = today
	earned := s.ledger.AddCoins(s.cfg.GuildDailyBonusCoins)
	s.store.Save()
	return earned, true
}

// SendGift marks today's gift as sent and queues the reciprocal gift
// from the mock member.
func (s *Social) SendGift() bool {
	g := s.ensure()
	if g.GiftSentToday {
		return false
	}
	g.GiftSentToday = true
	s.store.Data().PendingGifts++
	s.store.Save()
	return true
}

// PendingGifts is the unopened reciprocal gift count.
func (s *Social) PendingGifts() int {
	return s.store.Data().PendingGifts
}

// ClaimGifts opens pending gifts as rarity-rolled hatches, stopping
// when the grid fills. Only gifts actually placed are consumed; the
// rest stay queued.
func (s *Social) ClaimGifts() []save.Item {
	s.ensure()
	d := s.store.Data()
	var out []save.Item
	for d.PendingGifts > 0 {
		col, row, ok := s.grid.FindEmptyCell()
		if !ok {
			break
		}
		item, ok := s.grid.NewHatch()
		if !ok {
			break
		}
		s.grid.Place(item, col, row)
		d.RecordCollected(item.SpeciesID, item.Level)
		d.PendingGifts--
		out = append(out, item)
	}
	if len(out) > 0 {
		s.store.Save()
	}
	return out
}

// VisitFriend simulates viewing a mock member's cafe.
func (s *Social) VisitFriend(memberID string) bool {
	g := s.ensure()
	for _, id := range g.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}
