package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/furniture"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/game"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/prestige"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/task"
)

// App holds what the handlers depend on. The engine is not safe for
// concurrent use, so every handler runs under the app mutex.
type App struct {
	Engine *game.Engine
	Log    *log.Logger

	mu sync.Mutex
}

// TickLoop drives the engine at a fixed step until the context ends.
func (a *App) TickLoop(ctx context.Context, step time.Duration) {
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.mu.Lock()
			a.Engine.Tick(step)
			a.mu.Unlock()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// stateView is the full snapshot the client polls.
type stateView struct {
	Coins      int64  `json:"coins"`
	Gems       int    `json:"gems"`
	Stars      int    `json:"stars"`
	Energy     int    `json:"energy"`
	GridCols   int    `json:"grid_cols"`
	GridRows   int    `json:"grid_rows"`
	Grid       any    `json:"grid"`
	Items      any    `json:"items"`
	Weather    any    `json:"weather"`
	IdleStats  any    `json:"idle_stats"`
	Collection int    `json:"collection_percent"`
	PlayDays   int    `json:"play_days"`
	Pending    any    `json:"pending_offline,omitempty"`
	Streak     int    `json:"streak"`
	BossActive bool   `json:"boss_active"`
	BossGoal   int    `json:"boss_goal"`
	BossDone   int    `json:"boss_progress"`
	Tutorial   int    `json:"tutorial_step"`
	GuildName  string `json:"guild_name"`
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	e := app.Engine

	locked := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			app.mu.Lock()
			defer app.mu.Unlock()
			h(w, r)
		}
	}

	Handle(mux, rr, "GET /api/state", "Full game state snapshot", "", locked(func(w http.ResponseWriter, r *http.Request) {
		d := e.Store.Data()
		gridView := make([][]*string, 0, e.Grid.Rows())
		for row := 0; row < e.Grid.Rows(); row++ {
			line := make([]*string, e.Grid.Cols())
			for col := 0; col < e.Grid.Cols(); col++ {
				if it := e.Grid.ItemAt(col, row); it != nil {
					id := it.ID
					line[col] = &id
				}
			}
			gridView = append(gridView, line)
		}
		progress, goal := e.Weather.BossProgress()
		view := stateView{
			Coins:      e.Ledger.Coins(),
			Gems:       e.Ledger.Gems(),
			Stars:      e.Ledger.Stars(),
			Energy:     e.Ledger.Energy(),
			GridCols:   e.Grid.Cols(),
			GridRows:   e.Grid.Rows(),
			Grid:       gridView,
			Items:      d.Items,
			Weather:    e.Weather.Today(),
			IdleStats:  e.Idle.CurrentStats(),
			Collection: e.Prestige.CollectionPercent(),
			PlayDays:   d.PlayDays,
			Streak:     e.Tasks.Streak(),
			BossActive: e.Weather.BossActive(),
			BossGoal:   goal,
			BossDone:   progress,
			Tutorial:   e.Tasks.TutorialStep(),
		}
		if g := d.Guild; g != nil {
			view.GuildName = g.Name
		}
		if p := e.Idle.Pending(); p != nil {
			view.Pending = p
		}
		writeJSON(w, view)
	}))

	Handle(mux, rr, "POST /api/login", "Start a session: weather, daily resets, offline summary", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.Login())
	}))

	Handle(mux, rr, "POST /api/logout", "Record the away anchor", "", locked(func(w http.ResponseWriter, r *http.Request) {
		e.Logout()
		writeJSON(w, map[string]bool{"ok": true})
	}))

	Handle(mux, rr, "POST /api/merge", "Merge source cell onto target cell", `{"src_col":0,"src_row":0,"dst_col":1,"dst_row":0}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SrcCol int `json:"src_col"`
			SrcRow int `json:"src_row"`
			DstCol int `json:"dst_col"`
			DstRow int `json:"dst_row"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.Merge(body.SrcCol, body.SrcRow, body.DstCol, body.DstRow))
	}))

	Handle(mux, rr, "POST /api/spawn", "Buy one base-tier creature for coins", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.BuySpawn())
	}))

	Handle(mux, rr, "POST /api/tidy", "Discard the lowest-level item when the grid is full", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"ok": e.Tidy()})
	}))

	Handle(mux, rr, "POST /api/offline/claim", "Claim pending offline earnings", `{"doubled":false}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Doubled bool `json:"doubled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.ClaimOffline(body.Doubled))
	}))

	Handle(mux, rr, "GET /api/breeding", "Nursery state: slots, attempts, eggs", "", locked(func(w http.ResponseWriter, r *http.Request) {
		type eggView struct {
			ID        string `json:"id"`
			ResultID  string `json:"result_id"`
			Remaining string `json:"remaining"`
			Ready     bool   `json:"ready"`
		}
		var eggs []eggView
		for _, egg := range e.Nursery.Eggs() {
			eggs = append(eggs, eggView{
				ID:        egg.ID,
				ResultID:  egg.ResultID,
				Remaining: e.Nursery.Remaining(egg.ID).String(),
				Ready:     e.Nursery.Ready(egg),
			})
		}
		writeJSON(w, map[string]any{
			"slots":         e.Nursery.Slots(),
			"attempts_left": e.Nursery.AttemptsLeft(),
			"eggs":          eggs,
		})
	}))

	Handle(mux, rr, "POST /api/breeding/start", "Pair two creatures into an egg", `{"parent_1":"<item-id>","parent_2":"<item-id>","use_bonus":false}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Parent1  string `json:"parent_1"`
			Parent2  string `json:"parent_2"`
			UseBonus bool   `json:"use_bonus"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.StartBreeding(body.Parent1, body.Parent2, body.UseBonus))
	}))

	Handle(mux, rr, "POST /api/breeding/rush", "Spend gems to finish an egg now", `{"egg_id":"<egg-id>"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EggID string `json:"egg_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.RushEgg(body.EggID))
	}))

	Handle(mux, rr, "POST /api/breeding/claim", "Hatch a ready egg onto the grid", `{"egg_id":"<egg-id>"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EggID string `json:"egg_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.ClaimEgg(body.EggID))
	}))

	Handle(mux, rr, "GET /api/prestige", "Prestige readiness and upgrade costs", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"can_prestige":       e.Prestige.CanPrestige(),
			"collection_percent": e.Prestige.CollectionPercent(),
			"stars":              e.Ledger.Stars(),
			"income_multiplier":  e.Prestige.IncomeMultiplier(),
			"upgrade_costs": map[string]int{
				string(prestige.UpgradeIncome): e.Prestige.UpgradeCost(prestige.UpgradeIncome),
				string(prestige.UpgradeSpawn):  e.Prestige.UpgradeCost(prestige.UpgradeSpawn),
				string(prestige.UpgradeSlots):  e.Prestige.UpgradeCost(prestige.UpgradeSlots),
			},
		})
	}))

	Handle(mux, rr, "POST /api/prestige", "Reset progress for a permanent star", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.DoPrestige())
	}))

	Handle(mux, rr, "POST /api/upgrades/buy", "Buy a permanent star upgrade", `{"kind":"income"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Kind string `json:"kind"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, map[string]bool{"ok": e.BuyUpgrade(prestige.UpgradeKind(body.Kind))})
	}))

	Handle(mux, rr, "GET /api/tasks", "Today's daily tasks", "", locked(func(w http.ResponseWriter, r *http.Request) {
		type row struct {
			Def      task.Def `json:"def"`
			Progress int64    `json:"progress"`
			Complete bool     `json:"completed"`
			Claimed  bool     `json:"claimed"`
		}
		var out []row
		for _, tp := range e.Tasks.List() {
			def, _ := task.DefByID(tp.TaskID)
			out = append(out, row{Def: def, Progress: tp.Progress, Complete: tp.Completed, Claimed: tp.Claimed})
		}
		writeJSON(w, map[string]any{"tasks": out, "streak": e.Tasks.Streak()})
	}))

	Handle(mux, rr, "POST /api/tasks/claim", "Claim a completed daily task", `{"task_id":"merge_5"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TaskID string `json:"task_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.ClaimTask(body.TaskID))
	}))

	Handle(mux, rr, "POST /api/tutorial/step", "Advance the tutorial", `{"step":2}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Step int `json:"step"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		e.Tasks.SetTutorialStep(body.Step)
		writeJSON(w, map[string]int{"step": e.Tasks.TutorialStep()})
	}))

	Handle(mux, rr, "GET /api/guild", "Guild state: members, coop objective, gifts", "", locked(func(w http.ResponseWriter, r *http.Request) {
		progress, goal := e.Guild.CoopProgress()
		writeJSON(w, map[string]any{
			"guild":          e.Guild.Info(),
			"coop_progress":  progress,
			"coop_goal":      goal,
			"can_claim_coop": e.Guild.CanClaimCoop(),
			"pending_gifts":  e.Guild.PendingGifts(),
		})
	}))

	Handle(mux, rr, "POST /api/guild/daily", "Claim the guild daily bonus", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.ClaimGuildDaily())
	}))

	Handle(mux, rr, "POST /api/guild/coop/claim", "Claim the shared merge objective", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.ClaimCoop())
	}))

	Handle(mux, rr, "POST /api/guild/gift/send", "Send today's gift", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"ok": e.SendGift()})
	}))

	Handle(mux, rr, "POST /api/guild/gift/claim", "Open pending gifts onto the grid", "", locked(func(w http.ResponseWriter, r *http.Request) {
		items := e.ClaimGifts()
		writeJSON(w, map[string]any{"placed": len(items), "items": items})
	}))

	Handle(mux, rr, "POST /api/guild/visit", "Visit a guild member's cafe", `{"member_id":"mika"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MemberID string `json:"member_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, map[string]bool{"ok": e.VisitFriend(body.MemberID)})
	}))

	Handle(mux, rr, "GET /api/weather", "Today's weather and storm boss", "", locked(func(w http.ResponseWriter, r *http.Request) {
		progress, goal := e.Weather.BossProgress()
		writeJSON(w, map[string]any{
			"weather":       e.Weather.Today(),
			"boss_active":   e.Weather.BossActive(),
			"boss_progress": progress,
			"boss_goal":     goal,
		})
	}))

	Handle(mux, rr, "POST /api/boss/claim", "Claim the storm boss reward", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.ClaimBoss())
	}))

	// The ad wait blocks for its full duration, so it runs outside the
	// app lock; the claim that follows takes it normally.
	Handle(mux, rr, "POST /api/ads/watch", "Watch a rewarded ad, then claim", `{"reward":"offline_double"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Reward string `json:"reward"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		err := e.WatchAd(r.Context(), func() {
			app.mu.Lock()
			defer app.mu.Unlock()
			switch body.Reward {
			case "offline_double":
				e.ClaimOffline(true)
			default:
				e.Ledger.AddCoins(250)
			}
		})
		if err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		writeJSON(w, map[string]bool{"ok": true})
	})

	Handle(mux, rr, "POST /api/minigame/play", "Record a once-per-day minigame play", `{"name":"latte_art"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, e.PlayMinigame(body.Name))
	}))

	Handle(mux, rr, "GET /api/furniture", "Decoration defs and placements", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"defs":        furniture.Defs(),
			"placed":      e.Furniture.Placed(),
			"speed_bonus": e.Furniture.SpeedBonus(),
			"capacity":    e.Furniture.Capacity(),
		})
	}))

	Handle(mux, rr, "POST /api/furniture/place", "Place a decoration", `{"decor_id":"table_small","level":1,"x":2,"y":3}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DecorID string  `json:"decor_id"`
			Level   int     `json:"level"`
			X       float64 `json:"x"`
			Y       float64 `json:"y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		placed, ok := e.Furniture.Place(body.DecorID, body.Level, body.X, body.Y)
		writeJSON(w, map[string]any{"ok": ok, "placed": placed})
	}))

	Handle(mux, rr, "POST /api/furniture/move", "Move a placed decoration", `{"id":"<placed-id>","x":1,"y":1}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, map[string]bool{"ok": e.Furniture.Move(body.ID, body.X, body.Y)})
	}))

	Handle(mux, rr, "POST /api/furniture/remove", "Remove a placed decoration", `{"id":"<placed-id>"}`, locked(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		writeJSON(w, map[string]bool{"ok": e.Furniture.Remove(body.ID)})
	}))

	Handle(mux, rr, "GET /api/catalog", "Species catalog", "", locked(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.Catalog.All())
	}))

	Handle(mux, rr, "GET /api/collection", "Collected species album", "", locked(func(w http.ResponseWriter, r *http.Request) {
		d := e.Store.Data()
		writeJSON(w, map[string]any{
			"collected": d.Collected,
			"unique":    d.UniqueCollected(),
			"total":     e.Catalog.Count(),
			"percent":   e.Prestige.CollectionPercent(),
		})
	}))
}
