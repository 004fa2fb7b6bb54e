// Package game composes every subsystem into one engine and owns the
// cross-module flows: a merge touches the economy, tasks, the guild
// objective and the storm boss; a tick feeds idle income into tasks;
// login settles offline time and daily resets.
package game

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/adwatch"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/breeding"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/economy"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/furniture"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/grid"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/guild"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/idle"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/notify"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/prestige"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/task"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/weather"
)

// mergesPerPlayerLevel is how many lifetime merges advance the player
// one level.
const mergesPerPlayerLevel = 20

// speciesPerCafeLevel is how many unique collected species advance the
// cafe one level.
const speciesPerCafeLevel = 4

type Engine struct {
	Store     *save.Store
	Clock     clock.Clock
	Cfg       config.Balance
	Catalog   *catalog.Catalog
	Ledger    *economy.Ledger
	Weather   *weather.System
	Grid      *grid.Engine
	Idle      *idle.Simulator
	Nursery   *breeding.Nursery
	Prestige  *prestige.System
	Tasks     *task.Tracker
	Guild     *guild.Social
	Furniture *furniture.Manager
	Ads       *adwatch.Gate
	Bus       *notify.Bus
	Log       *log.Logger
}

// New wires the full subsystem graph over one store, clock and rng.
func New(store *save.Store, clk clock.Clock, cfg config.Balance, cat *catalog.Catalog,
	rng *rand.Rand, logger *log.Logger) *Engine {
	ledger := economy.New(store, clk, cfg)
	wx := weather.New(store, clk, cfg)
	g := grid.New(store, cat, cfg, rng)
	pr := prestige.New(store, cat, cfg)
	fur := furniture.New(store)
	sim := idle.New(store, clk, cfg, cat, wx, pr, fur, ledger, rng)
	tracker := task.New(store, ledger, clk, cfg, rng)
	return &Engine{
		Store:     store,
		Clock:     clk,
		Cfg:       cfg,
		Catalog:   cat,
		Ledger:    ledger,
		Weather:   wx,
		Grid:      g,
		Idle:      sim,
		Nursery:   breeding.New(store, clk, cfg, cat, g, rng),
		Prestige:  pr,
		Tasks:     tracker,
		Guild:     guild.New(store, clk, cfg, ledger, g),
		Furniture: fur,
		Ads:       adwatch.New(cfg, ledger),
		Bus:       notify.NewBus(),
		Log:       logger,
	}
}

type LoginResult struct {
	Weather  save.Weather        `json:"weather"`
	Offline  *idle.OfflineReport `json:"offline,omitempty"`
	Energy   int                 `json:"energy"`
	Starter  *save.Item          `json:"starter,omitempty"`
	PlayDays int                 `json:"play_days"`
}

// Login settles everything that accumulated while away: today's
// weather, daily resets, the offline earnings block. A brand-new save
// gets a starter creature.
func (e *Engine) Login() LoginResult {
	d := e.Store.Data()
	logout := e.Store.LogoutTime()

	// The boss reset keys on the stored weather date, so it must run
	// before Today() stamps the new day.
	e.Weather.ResetBossIfNewDay()
	wx := e.Weather.Today()
	e.Tasks.Ensure()
	e.Guild.ResetDailyIfNeeded()
	e.Grid.Rebuild()

	var starter *save.Item
	if len(d.Items) == 0 && d.TotalMerges == 0 {
		if item, ok := e.Grid.NewStarter(); ok {
			if col, row, found := e.Grid.FindEmptyCell(); found {
				e.Grid.Place(item, col, row)
				d.RecordCollected(item.SpeciesID, item.Level)
				starter = &item
			}
		}
	}

	var offline *idle.OfflineReport
	report := e.Idle.ComputeOffline(logout)
	if report.Customers > 0 {
		offline = &report
		e.Bus.Publish(notify.Event{Type: notify.EventOfflineSummary, Payload: report})
	}

	e.Store.Save()
	return LoginResult{
		Weather:  wx,
		Offline:  offline,
		Energy:   e.Ledger.Energy(),
		Starter:  starter,
		PlayDays: d.PlayDays,
	}
}

// Logout stamps the away anchor for the next offline computation.
func (e *Engine) Logout() {
	e.Store.RecordLogout()
}

type TickResult struct {
	Idle    idle.TickReport `json:"idle"`
	Spawned *save.Item      `json:"spawned,omitempty"`
}

// Tick advances the live simulation by dt and routes the produced
// income into task progress. The auto-spawner may drop a new creature.
func (e *Engine) Tick(dt time.Duration) TickResult {
	report := e.Idle.Tick(dt)
	if report.Served > 0 {
		e.Tasks.OnServed(report.Served)
		e.Tasks.OnEarned(report.Coins)
		e.Bus.Publish(notify.Event{Type: notify.EventIdleTick, Payload: report})
	}

	var spawned *save.Item
	if item := e.Grid.AutoSpawn(dt, e.Prestige.SpawnSpeedLevel()); item != nil {
		e.Store.Data().RecordCollected(item.SpeciesID, item.Level)
		e.Store.Save()
		spawned = item
	}
	return TickResult{Idle: report, Spawned: spawned}
}

type SpawnResult struct {
	OK     bool       `json:"ok"`
	Reason string     `json:"reason,omitempty"`
	Item   *save.Item `json:"item,omitempty"`
}

// BuySpawn spends coins to drop one base-tier creature onto the grid.
func (e *Engine) BuySpawn() SpawnResult {
	if e.Grid.Full() {
		return SpawnResult{Reason: "grid full"}
	}
	item, ok := e.Grid.NewStarter()
	if !ok {
		return SpawnResult{Reason: "no species available"}
	}
	if !e.Ledger.SpendCoins(e.Cfg.SpawnCoinCost) {
		return SpawnResult{Reason: "not enough coins"}
	}
	col, row, _ := e.Grid.FindEmptyCell()
	e.Grid.Place(item, col, row)
	e.Store.Data().RecordCollected(item.SpeciesID, item.Level)
	e.Store.Save()
	return SpawnResult{OK: true, Item: &item}
}

type MergeResult struct {
	OK      bool              `json:"ok"`
	Reason  string            `json:"reason,omitempty"`
	Outcome grid.MergeOutcome `json:"outcome,omitempty"`
	Coins   int64             `json:"coins"`
	LevelUp bool              `json:"level_up"`
}

// Merge performs one player merge and fans the result out: coins,
// collection, tasks, the guild objective, storm boss progress and
// level advancement.
func (e *Engine) Merge(srcCol, srcRow, dstCol, dstRow int) MergeResult {
	outcome, ok := e.Grid.TryMerge(srcCol, srcRow, dstCol, dstRow)
	if !ok {
		return MergeResult{Reason: "invalid merge"}
	}
	d := e.Store.Data()
	d.TotalMerges++
	d.RecordCollected(outcome.Item.SpeciesID, outcome.Item.Level)

	levelUp := false
	if d.TotalMerges%mergesPerPlayerLevel == 0 {
		d.PlayerLevel++
		levelUp = true
	}
	if cafe := 1 + d.UniqueCollected()/speciesPerCafeLevel; cafe > d.CafeLevel {
		d.CafeLevel = cafe
	}

	earned := e.Ledger.AddCoins(outcome.Coins)
	e.Tasks.OnMerge(1)
	if outcome.Chain {
		e.Tasks.OnChainMerge(1)
	}
	e.Tasks.OnEarned(earned)
	e.Guild.ContributeMerge(1)
	e.Weather.AddBossProgress(1)
	e.Store.Save()
	return MergeResult{OK: true, Outcome: outcome, Coins: earned, LevelUp: levelUp}
}

type ClaimResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Coins  int64  `json:"coins,omitempty"`
	Gems   int    `json:"gems,omitempty"`
}

// ClaimOffline cashes the pending offline block, doubled when the
// player watched an ad for it.
func (e *Engine) ClaimOffline(doubled bool) ClaimResult {
	report := e.Idle.ClaimOffline(doubled)
	if report.Customers == 0 && report.Coins == 0 {
		return ClaimResult{Reason: "nothing to claim"}
	}
	e.Tasks.OnServed(report.Customers)
	e.Tasks.OnEarned(report.Coins)
	return ClaimResult{OK: true, Coins: report.Coins, Gems: report.Gems}
}

type BreedResult struct {
	OK     bool     `json:"ok"`
	Reason string   `json:"reason,omitempty"`
	Egg    save.Egg `json:"egg,omitempty"`
}

func (e *Engine) StartBreeding(parent1, parent2 string, useBonus bool) BreedResult {
	egg, reason, ok := e.Nursery.Start(parent1, parent2, useBonus)
	if !ok {
		return BreedResult{Reason: reason}
	}
	return BreedResult{OK: true, Egg: egg}
}

// RushEgg spends gems to finish an egg's incubation on the spot.
func (e *Engine) RushEgg(eggID string) ClaimResult {
	egg, ok := e.Nursery.Find(eggID)
	if !ok {
		return ClaimResult{Reason: "no such egg"}
	}
	if e.Nursery.Ready(egg) {
		return ClaimResult{Reason: "already ready"}
	}
	if !e.Ledger.SpendGems(e.Cfg.EggRushGemCost) {
		return ClaimResult{Reason: "not enough gems"}
	}
	e.Nursery.Finish(eggID)
	return ClaimResult{OK: true, Gems: e.Cfg.EggRushGemCost}
}

type HatchResult struct {
	OK     bool      `json:"ok"`
	Reason string    `json:"reason,omitempty"`
	Item   save.Item `json:"item,omitempty"`
}

func (e *Engine) ClaimEgg(eggID string) HatchResult {
	item, ok := e.Nursery.Claim(eggID)
	if !ok {
		return HatchResult{Reason: "egg not ready or grid full"}
	}
	e.Bus.Toast("A new hybrid hatched!")
	return HatchResult{OK: true, Item: item}
}

type PrestigeResult struct {
	OK         bool `json:"ok"`
	Stars      int  `json:"stars"`
	Collection int  `json:"collection_percent"`
}

// DoPrestige resets progress for a permanent star when the collection
// threshold is met.
func (e *Engine) DoPrestige() PrestigeResult {
	pct := e.Prestige.CollectionPercent()
	if !e.Prestige.Do() {
		return PrestigeResult{Collection: pct}
	}
	e.Grid.Rebuild()
	return PrestigeResult{OK: true, Stars: e.Ledger.Stars(), Collection: pct}
}

func (e *Engine) BuyUpgrade(kind prestige.UpgradeKind) bool {
	return e.Prestige.Buy(kind)
}

// ClaimTask claims one finished daily task.
func (e *Engine) ClaimTask(taskID string) ClaimResult {
	if !e.Tasks.Claim(taskID) {
		return ClaimResult{Reason: "task not claimable"}
	}
	return ClaimResult{OK: true}
}

type CoopResult struct {
	OK     bool       `json:"ok"`
	Reason string     `json:"reason,omitempty"`
	Item   *save.Item `json:"item,omitempty"`
}

// ClaimCoop claims the shared merge objective reward.
func (e *Engine) ClaimCoop() CoopResult {
	item, ok := e.Guild.ClaimCoop()
	if !ok {
		return CoopResult{Reason: "objective not complete"}
	}
	res := CoopResult{OK: true}
	if item.ID != "" {
		res.Item = &item
	}
	return res
}

// ClaimGuildDaily pays the guild membership bonus.
func (e *Engine) ClaimGuildDaily() ClaimResult {
	coins, ok := e.Guild.ClaimDaily()
	if !ok {
		return ClaimResult{Reason: "already claimed today"}
	}
	return ClaimResult{OK: true, Coins: coins}
}

func (e *Engine) SendGift() bool {
	return e.Guild.SendGift()
}

func (e *Engine) ClaimGifts() []save.Item {
	return e.Guild.ClaimGifts()
}

// VisitFriend simulates a friend visit and counts task progress.
func (e *Engine) VisitFriend(memberID string) bool {
	if !e.Guild.VisitFriend(memberID) {
		return false
	}
	e.Tasks.OnVisit()
	return true
}

// Tidy frees one grid cell by discarding the lowest-level item.
func (e *Engine) Tidy() bool {
	return e.Grid.Tidy()
}

// WatchAd runs the simulated rewarded ad, streaming progress to the
// bus, then pays the reward via the supplied grant.
func (e *Engine) WatchAd(ctx context.Context, grant func()) error {
	err := e.Ads.Watch(ctx, func(elapsed, total int) {
		e.Bus.Publish(notify.Event{
			Type:    notify.EventAdProgress,
			Payload: map[string]int{"elapsed": elapsed, "total": total},
		})
	})
	if err != nil {
		return err
	}
	if grant != nil {
		grant()
	}
	return nil
}

// ClaimBoss pays the storm boss reward once the merge goal is met.
func (e *Engine) ClaimBoss() ClaimResult {
	if !e.Weather.ClaimBoss() {
		return ClaimResult{Reason: "boss not defeated"}
	}
	coins := e.Ledger.AddCoins(e.Cfg.StormBossRewardCoins)
	e.Ledger.AddGems(e.Cfg.StormBossRewardGems)
	return ClaimResult{OK: true, Coins: coins, Gems: e.Cfg.StormBossRewardGems}
}

// PlayMinigame marks a minigame's once-per-day play and pays a small
// coin reward on the first play.
func (e *Engine) PlayMinigame(name string) ClaimResult {
	if !e.Tasks.MarkMinigamePlayed(name) {
		return ClaimResult{Reason: "already played today"}
	}
	coins := e.Ledger.AddCoins(e.Cfg.MinigameRewardCoins)
	return ClaimResult{OK: true, Coins: coins}
}
