package weather

import "github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"

// Storm boss: a bonus objective active only on storm days, fed by
// merges, claimable once per day.

// BossActive reports whether today is a storm and the reward has not
// been claimed today.
func (s *System) BossActive() bool {
	if Type(s.Today().Type) != Storm {
		return false
	}
	today := clock.DateKey(s.clock.Now())
	return s.store.Data().BossClaimedDate != today
}

// BossProgress returns the current merge count and goal.
func (s *System) BossProgress() (progress, goal int) {
	d := s.store.Data()
	goal = d.BossGoal
	if goal < 1 {
		goal = s.cfg.StormBossGoal
	}
	return d.BossProgress, goal
}

// AddBossProgress feeds merges into the boss bar, capped at the goal.
// No-op outside storm days or after today's claim.
func (s *System) AddBossProgress(count int) {
	if Type(s.Today().Type) != Storm {
		return
	}
	d := s.store.Data()
	today := clock.DateKey(s.clock.Now())
	if d.BossClaimedDate == today {
		return
	}
	_, goal := s.BossProgress()
	d.BossProgress += count
	if d.BossProgress > goal {
		d.BossProgress = goal
	}
	s.store.Save()
}

// ClaimBoss marks the boss reward claimed for today. The caller grants
// the actual reward. Fails when the goal is unmet or already claimed.
func (s *System) ClaimBoss() bool {
	progress, goal := s.BossProgress()
	if progress < goal || !s.BossActive() {
		return false
	}
	s.store.Data().BossClaimedDate = clock.DateKey(s.clock.Now())
	s.store.Save()
	return true
}

// ResetBossIfNewDay clears progress when the stored weather is stale.
// Called lazily from the login path.
func (s *System) ResetBossIfNewDay() {
	d := s.store.Data()
	today := clock.DateKey(s.clock.Now())
	if d.Weather == nil || d.Weather.Date != today {
		d.BossProgress = 0
		d.BossClaimedDate = ""
		s.store.Save()
	}
}
