// Package task runs the daily task batch, the claim streak and the
// tutorial counter. Progress arrives as typed events from the engine.
package task

import (
	"math/rand"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/economy"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

// Def is one entry in the daily task template pool.
type Def struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Target      int64  `json:"target"`
	RewardCoins int64  `json:"reward_coins,omitempty"`
	RewardGems  int    `json:"reward_gems,omitempty"`
}

var defs = []Def{
	{ID: "merge_5", Name: "Merge 5 times", Target: 5, RewardCoins: 1000},
	{ID: "merge_10", Name: "Merge 10 times", Target: 10, RewardCoins: 2000},
	{ID: "serve_50", Name: "Serve 50 customers", Target: 50, RewardCoins: 1500},
	{ID: "serve_100", Name: "Serve 100 customers", Target: 100, RewardCoins: 3000},
	{ID: "earn_10k", Name: "Earn 10,000 coins", Target: 10000, RewardCoins: 500},
	{ID: "chain_3", Name: "Trigger 3 chain merges", Target: 3, RewardCoins: 800},
	{ID: "chain_10", Name: "Trigger 10 chain merges", Target: 10, RewardGems: 5},
	{ID: "visit_3", Name: "Visit 3 friends", Target: 3, RewardCoins: 1000},
}

// DefByID looks a template up by id.
func DefByID(id string) (Def, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Def{}, false
}

type Tracker struct {
	store  *save.Store
	ledger *economy.Ledger
	clock  clock.Clock
	cfg    config.Balance
	rng    *rand.Rand
}

func New(store *save.Store, ledger *economy.Ledger, clk clock.Clock, cfg config.Balance, rng *rand.Rand) *Tracker {
	return &Tracker{store: store, ledger: ledger, clock: clk, cfg: cfg, rng: rng}
}

// Ensure regenerates the batch lazily when the calendar day rolled
// over. The streak resets with the day and the play-day counter that
// drives long-run balance advances here.
func (t *Tracker) Ensure() {
	d := t.store.Data()
	today := clock.DateKey(t.clock.Now())
	if d.TaskResetDate != today {
		d.TaskResetDate = today
		d.DailyTasks = t.generate()
		d.Streak = 0
		d.PlayDays++
		d.MinigameDate = today
		d.MinigamePlayed = map[string]bool{}
		t.store.Save()
	}
	if len(d.DailyTasks) == 0 {
		d.DailyTasks = t.generate()
		t.store.Save()
	}
}

func (t *Tracker) generate() []save.TaskProgress {
	shuffled := make([]Def, len(defs))
	copy(shuffled, defs)
	t.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := t.cfg.DailyTaskCount
	if n > len(shuffled) {
		n = len(shuffled)
	}
	out := make([]save.TaskProgress, 0, n)
	for _, def := range shuffled[:n] {
		out = append(out, save.TaskProgress{TaskID: def.ID})
	}
	return out
}

// List returns today's batch, regenerating first if needed.
func (t *Tracker) List() []save.TaskProgress {
	t.Ensure()
	return t.store.Data().DailyTasks
}

func (t *Tracker) Streak() int {
	return t.store.Data().Streak
}

// Typed progress events.

func (t *Tracker) OnMerge(count int64) {
	t.addProgress("merge_5", count)
	t.addProgress("merge_10", count)
}

func (t *Tracker) OnChainMerge(count int64) {
	t.addProgress("chain_3", count)
	t.addProgress("chain_10", count)
}

func (t *Tracker) OnServed(count int64) {
	t.addProgress("serve_50", count)
	t.addProgress("serve_100", count)
}

func (t *Tracker) OnEarned(amount int64) {
	t.addProgress("earn_10k", amount)
}

func (t *Tracker) OnVisit() {
	t.addProgress("visit_3", 1)
}

func (t *Tracker) addProgress(taskID string, delta int64) {
	if delta <= 0 {
		return
	}
	t.Ensure()
	d := t.store.Data()
	for i := range d.DailyTasks {
		row := &d.DailyTasks[i]
		if row.TaskID != taskID || row.Completed {
			continue
		}
		row.Progress += delta
		if def, ok := DefByID(taskID); ok && row.Progress >= def.Target {
			row.Completed = true
		}
		t.store.Save()
		return
	}
}

// Claim is the one-shot completed-to-claimed transition. It grants the
// template reward, bumps the streak and pays the streak bonus at the
// threshold.
func (t *Tracker) Claim(taskID string) bool {
	d := t.store.Data()
	for i := range d.DailyTasks {
		row := &d.DailyTasks[i]
		if row.TaskID != taskID {
			continue
		}
		if !row.Completed || row.Claimed {
			return false
		}
		def, ok := DefByID(taskID)
		if !ok {
			return false
		}
		row.Claimed = true
		if def.RewardCoins > 0 {
			t.ledger.AddCoins(def.RewardCoins)
		}
		if def.RewardGems > 0 {
			t.ledger.AddGems(def.RewardGems)
		}
		d.Streak++
		if d.Streak >= t.cfg.StreakTasksForBonus {
			t.ledger.AddCoins(t.cfg.StreakBonusCoins)
		}
		t.store.Save()
		return true
	}
	return false
}

// UnclaimedCount is the badge number: completed but not yet claimed.
func (t *Tracker) UnclaimedCount() int {
	n := 0
	for _, row := range t.List() {
		if row.Completed && !row.Claimed {
			n++
		}
	}
	return n
}

// Tutorial progress.

func (t *Tracker) TutorialStep() int {
	return t.store.Data().Tutorial.Step
}

func (t *Tracker) SetTutorialStep(step int) {
	d := t.store.Data()
	d.Tutorial.Step = step
	if step >= 5 {
		d.Tutorial.Completed = true
	}
	t.store.Save()
}

// MarkMinigamePlayed flips the once-per-day flag for a minigame and
// reports whether this call was the first play today.
func (t *Tracker) MarkMinigamePlayed(name string) bool {
	t.Ensure()
	d := t.store.Data()
	if d.MinigamePlayed == nil {
		d.MinigamePlayed = map[string]bool{}
	}
	if d.MinigamePlayed[name] {
		return false
	}
	d.MinigamePlayed[name] = true
	t.store.Save()
	return true
}
