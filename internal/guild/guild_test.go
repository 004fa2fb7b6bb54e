package guild

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
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/grid"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

var testStart = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newSocialForTest() (*Social, *grid.Engine, *save.Store, *clock.FakeClock) {
	clk := clock.NewFakeClock(testStart)
	store := save.Open(save.NewMemoryBackend(), clk, nil)
	cfg := config.Default()
	ledger := economy.New(store, clk, cfg)
	g := grid.New(store, catalog.Default(), cfg, rand.New(rand.NewSource(1)))
	// High level keeps the daily coin cap away from bonus payouts.
	store.Data().PlayerLevel = 100
	return New(store, clk, cfg, ledger, g), g, store, clk
}

func TestInfo_CreatesMockGuildOnce(t *testing.T) {
	s, _, store, _ := newSocialForTest()

	info := s.Info()
	assert.Equal(t, "guild_local", info.ID)
	assert.Equal(t, "Paw Pals", info.Name)
	assert.Equal(t, mockMembers, info.MemberIDs)
	assert.Equal(t, 30, info.CoopGoal)

	// Second touch reuses the same record.
	store.Data().Guild.CoopProgress = 7
	assert.Equal(t, 7, s.Info().CoopProgress)
}

func TestContributeMerge_CapsAtGoal(t *testing.T) {
	s, _, _, _ := newSocialForTest()

	s.ContributeMerge(12)
	progress, goal := s.CoopProgress()
	assert.Equal(t, 12, progress)
	assert.Equal(t, 30, goal)
	assert.False(t, s.CanClaimCoop())

	s.ContributeMerge(100)
	progress, _ = s.CoopProgress()
	assert.Equal(t, 30, progress)
	assert.True(t, s.CanClaimCoop())
}

func TestClaimCoop_PlacesRewardAndLocksForToday(t *testing.T) {
	s, _, store, clk := newSocialForTest()
	s.ContributeMerge(30)

	item, ok := s.ClaimCoop()
	require.True(t, ok)
	assert.NotEmpty(t, item.ID)
	assert.NotNil(t, store.Data().ItemByID(item.ID))
	assert.Equal(t, 1, store.Data().UniqueCollected())

	// Claimed today: progress is frozen and a second claim fails.
	progress, _ := s.CoopProgress()
	assert.Equal(t, 0, progress)
	s.ContributeMerge(30)
	progress, _ = s.CoopProgress()
	assert.Equal(t, 0, progress)
	_, ok = s.ClaimCoop()
	assert.False(t, ok)

	// Next day the objective restarts.
	clk.Advance(24 * time.Hour)
	s.ContributeMerge(30)
	_, ok = s.ClaimCoop()
	assert.True(t, ok)
}

func TestClaimCoop_FullGridForfeitsReward(t *testing.T) {
	s, g, store, _ := newSocialForTest()
	d := store.Data()
	for i := 0; i < d.GridCols*d.GridRows; i++ {
		d.Items = append(d.Items, save.Item{
			ID: "fill" + string(rune('a'+i)), Kind: catalog.KindCreature, SpeciesID: "cat_1", Level: 1,
		})
	}
	g.Rebuild()
	s.ContributeMerge(30)

	item, ok := s.ClaimCoop()
	assert.True(t, ok, "claim completes even without room")
	assert.Empty(t, item.ID)
	assert.False(t, s.CanClaimCoop())
}

// Coop and gift rewards draw from the weighted hatch pool, not the
// uniform starter pick.
func TestClaimCoop_RewardUsesHatchOdds(t *testing.T) {
	s, _, store, _ := newSocialForTest()
	cat := catalog.Default()
	mirror := rand.New(rand.NewSource(1))

	s.ContributeMerge(30)
	item, ok := s.ClaimCoop()
	require.True(t, ok)
	want, ok := cat.RollHatch(mirror)
	require.True(t, ok)
	assert.Equal(t, want.ID, item.SpeciesID)
	assert.Equal(t, want.Rarity, item.Rarity)
	assert.Equal(t, 1, item.Level)

	store.Data().PendingGifts = 2
	opened := s.ClaimGifts()
	require.Len(t, opened, 2)
	for _, it := range opened {
		want, ok = cat.RollHatch(mirror)
		require.True(t, ok)
		assert.Equal(t, want.ID, it.SpeciesID)
		assert.Equal(t, 1, it.Level)
	}
}

func TestClaimDaily_OncePerDay(t *testing.T) {
	s, _, store, clk := newSocialForTest()

	earned, ok := s.ClaimDaily()
	require.True(t, ok)
	assert.Equal(t, int64(500), earned)
	assert.Equal(t, int64(5500), store.Data().Ledger.Coins)

	_, ok = s.ClaimDaily()
	assert.False(t, ok)

	clk.Advance(24 * time.Hour)
	_, ok = s.ClaimDaily()
	assert.True(t, ok)
}

func TestSendGift_OncePerDayQueuesReciprocal(t *testing.T) {
	s, _, _, clk := newSocialForTest()

	assert.True(t, s.SendGift())
	assert.Equal(t, 1, s.PendingGifts())
	assert.False(t, s.SendGift())
	assert.Equal(t, 1, s.PendingGifts())

	clk.Advance(24 * time.Hour)
	assert.True(t, s.SendGift())
	assert.Equal(t, 2, s.PendingGifts())
}

func TestClaimGifts_DrainsOnlyWhatFits(t *testing.T) {
	s, g, store, _ := newSocialForTest()
	d := store.Data()
	d.PendingGifts = 3

	// Leave exactly two empty cells.
	for i := 0; i < d.GridCols*d.GridRows-2; i++ {
		d.Items = append(d.Items, save.Item{
			ID: "fill" + string(rune('a'+i)), Kind: catalog.KindCreature, SpeciesID: "cat_1", Level: 1,
		})
	}
	g.Rebuild()

	opened := s.ClaimGifts()
	assert.Len(t, opened, 2)
	assert.Equal(t, 1, s.PendingGifts())

	// Grid is full now: nothing more opens.
	assert.Empty(t, s.ClaimGifts())
	assert.Equal(t, 1, s.PendingGifts())
}

func TestVisitFriend(t *testing.T) {
	s, _, _, _ := newSocialForTest()

	assert.True(t, s.VisitFriend("tofu"))
	assert.False(t, s.VisitFriend("stranger"))
}