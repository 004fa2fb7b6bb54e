package idle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/catalog"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/clock"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/economy"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/furniture"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/prestige"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/weather"
)

var testStart = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// testCfg neutralizes the daily modifiers and the coin cap so the
// rate arithmetic in assertions stays exact. testStart derives rain.
func testCfg() config.Balance {
	cfg := config.Default()
	cfg.WeatherRainIndoorBonus = 1
	cfg.DayProgressionGrowth = 0
	cfg.CoinDailyCapMultiplier = 1_000_000
	return cfg
}

func newSimWithCfg(cfg config.Balance) (*Simulator, *save.Store, *clock.FakeClock) {
	clk := clock.NewFakeClock(testStart)
	store := save.Open(save.NewMemoryBackend(), clk, nil)
	cat := catalog.Default()
	ledger := economy.New(store, clk, cfg)
	wx := weather.New(store, clk, cfg)
	pr := prestige.New(store, cat, cfg)
	fur := furniture.New(store)
	rng := rand.New(rand.NewSource(1))
	return New(store, clk, cfg, cat, wx, pr, fur, ledger, rng), store, clk
}

func newSimForTest() (*Simulator, *save.Store, *clock.FakeClock) {
	return newSimWithCfg(testCfg())
}

// seedCreature puts one level-1 creature on the grid so customers
// arrive. The rate assertions below assume exactly this occupant.
func seedCreature(store *save.Store) {
	store.Data().Items = append(store.Data().Items, save.Item{
		ID: "crew", Kind: catalog.KindCreature, SpeciesID: "cat_1", Level: 1,
	})
}

// With one creature: attraction 0.2 from cafe level 1, arrival rate
// 0.5*1*1.2 = 0.6/s, but a single unstaffed counter serves one
// customer per five seconds, so service is the bottleneck at 0.2/s.
func TestCurrentStats_FreshCafe(t *testing.T) {
	sim, store, _ := newSimForTest()

	// An empty cafe draws nobody, whatever the service rate says.
	stats := sim.CurrentStats()
	assert.InDelta(t, 0.0, stats.CustomersPerMin, 1e-9)
	assert.InDelta(t, 0.0, stats.HourlyCoins, 1e-9)

	seedCreature(store)
	stats = sim.CurrentStats()
	assert.InDelta(t, 0.2, stats.Attraction, 1e-9)
	assert.InDelta(t, 1.0, stats.DayMultiplier, 1e-9)
	assert.InDelta(t, 12.0, stats.CustomersPerMin, 1e-6)
	assert.InDelta(t, 11.0, stats.CoinsPerCustomer, 1e-9)
	assert.InDelta(t, 7920.0, stats.HourlyCoins, 1e-3)
}

func TestServiceRate_LimitsThroughputUntilStaffed(t *testing.T) {
	sim, store, _ := newSimForTest()
	seedCreature(store)

	assert.InDelta(t, 12.0, sim.CurrentStats().CustomersPerMin, 1e-6)

	// Ten levels of staff cut service time to the floor; arrivals
	// become the bottleneck.
	store.Data().Items[0].Level = 10
	assert.InDelta(t, 36.0, sim.CurrentStats().CustomersPerMin, 1e-6)
}

func TestFurniture_AddsSeats(t *testing.T) {
	sim, store, _ := newSimForTest()
	seedCreature(store)
	fur := furniture.New(store)

	_, ok := fur.Place("table_small", 1, 0.5, 0.5)
	require.True(t, ok)

	// Two seats, each turning over once per five seconds.
	assert.InDelta(t, 24.0, sim.CurrentStats().CustomersPerMin, 1e-6)
}

func TestTick_FractionalAccumulation(t *testing.T) {
	sim, store, _ := newSimForTest()
	seedCreature(store)

	// 0.8 of a customer accrued, nothing served yet.
	report := sim.Tick(4 * time.Second)
	assert.Equal(t, TickReport{}, report)
	assert.Equal(t, int64(0), store.Data().TotalServed)

	report = sim.Tick(1 * time.Second)
	assert.Equal(t, int64(1), report.Served)
	assert.Equal(t, int64(11), report.Coins)
	assert.Equal(t, 0, report.Gems)
	assert.Equal(t, int64(1), store.Data().TotalServed)
	assert.Equal(t, int64(5011), store.Data().Ledger.Coins)
}

func TestTick_IgnoresNonPositiveDt(t *testing.T) {
	sim, store, _ := newSimForTest()

	assert.Equal(t, TickReport{}, sim.Tick(0))
	assert.Equal(t, TickReport{}, sim.Tick(-time.Second))
	assert.Equal(t, int64(0), store.Data().TotalServed)
}

func TestTick_GemDrop(t *testing.T) {
	cfg := testCfg()
	cfg.GemRatePerCustomer = 1 // certain drop once anyone is served
	sim, store, _ := newSimWithCfg(cfg)
	seedCreature(store)

	report := sim.Tick(10 * time.Second)
	assert.Equal(t, int64(2), report.Served)
	assert.Equal(t, 1, report.Gems)
	assert.Equal(t, 11, store.Data().Ledger.Gems)
}

func TestComputeOffline_LinearInGap(t *testing.T) {
	sim, store, clk := newSimForTest()
	seedCreature(store)

	report := sim.ComputeOffline(clk.Now().Add(-time.Hour))
	assert.Equal(t, time.Hour, report.Duration)
	assert.False(t, report.Clamped)
	assert.Equal(t, int64(720), report.Customers)
	assert.Equal(t, int64(7920), report.Coins)
	assert.Equal(t, 7, report.Gems)
	require.NotNil(t, sim.Pending())
	assert.Equal(t, report, *sim.Pending())
}

func TestComputeOffline_ClampedAtCap(t *testing.T) {
	sim, store, clk := newSimForTest()
	seedCreature(store)

	report := sim.ComputeOffline(clk.Now().Add(-48 * time.Hour))
	assert.Equal(t, 24*time.Hour, report.Duration)
	assert.True(t, report.Clamped)
	assert.Equal(t, int64(17280), report.Customers)
	assert.Equal(t, int64(190080), report.Coins)
	assert.Equal(t, 172, report.Gems)
}

func TestComputeOffline_EmptyCafeEarnsNothing(t *testing.T) {
	sim, store, clk := newSimForTest()

	report := sim.ComputeOffline(clk.Now().Add(-time.Hour))
	assert.Equal(t, int64(0), report.Customers)
	assert.Equal(t, int64(0), report.Coins)
	assert.Nil(t, sim.Pending())

	assert.Equal(t, TickReport{}, sim.Tick(10*time.Second))
	assert.Equal(t, int64(0), store.Data().TotalServed)
}

func TestComputeOffline_NoEarningsNoPending(t *testing.T) {
	sim, store, clk := newSimForTest()
	seedCreature(store)

	report := sim.ComputeOffline(clk.Now())
	assert.Equal(t, int64(0), report.Customers)
	assert.Nil(t, sim.Pending())

	// A logout stamp in the future counts as a zero gap.
	report = sim.ComputeOffline(clk.Now().Add(time.Hour))
	assert.Equal(t, time.Duration(0), report.Duration)
	assert.Nil(t, sim.Pending())
}

func TestComputeOffline_ReplacesPending(t *testing.T) {
	sim, store, clk := newSimForTest()
	seedCreature(store)

	sim.ComputeOffline(clk.Now().Add(-time.Hour))
	sim.ComputeOffline(clk.Now().Add(-2 * time.Hour))
	require.NotNil(t, sim.Pending())
	assert.Equal(t, int64(1440), sim.Pending().Customers)
}

func TestClaimOffline_SingleShot(t *testing.T) {
	sim, store, clk := newSimForTest()
	seedCreature(store)
	sim.ComputeOffline(clk.Now().Add(-time.Hour))

	claimed := sim.ClaimOffline(false)
	assert.Equal(t, int64(720), claimed.Customers)
	assert.Equal(t, int64(7920), claimed.Coins)
	assert.Equal(t, 7, claimed.Gems)
	assert.Equal(t, int64(720), store.Data().TotalServed)
	assert.Equal(t, int64(12920), store.Data().Ledger.Coins)
	assert.Equal(t, 17, store.Data().Ledger.Gems)
	assert.Nil(t, sim.Pending())

	assert.Equal(t, OfflineReport{}, sim.ClaimOffline(false))
}

func TestClaimOffline_Doubled(t *testing.T) {
	sim, store, clk := newSimForTest()
	seedCreature(store)
	sim.ComputeOffline(clk.Now().Add(-time.Hour))

	claimed := sim.ClaimOffline(true)
	assert.Equal(t, int64(15840), claimed.Coins)
	assert.Equal(t, 14, claimed.Gems)
	assert.Equal(t, int64(20840), store.Data().Ledger.Coins)
	assert.Equal(t, 24, store.Data().Ledger.Gems)
}
