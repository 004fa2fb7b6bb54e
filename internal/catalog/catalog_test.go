package catalog

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuildsAndLooksUp(t *testing.T) {
	c := Default()

	s, ok := c.Get("cat_1")
	require.True(t, ok)
	assert.Equal(t, "cat", s.Line)
	assert.Equal(t, 1, s.Level)

	_, ok = c.Get("nope")
	assert.False(t, ok)

	s, ok = c.ByLineLevel("dog", 3)
	require.True(t, ok)
	assert.Equal(t, "dog_3", s.ID)
}

func TestNextEvolution(t *testing.T) {
	c := Default()

	next, ok := c.NextEvolution("cat_1")
	require.True(t, ok)
	assert.Equal(t, "cat_2", next.ID)

	// cat_6 evolves into the line top.
	next, ok = c.NextEvolution("cat_6")
	require.True(t, ok)
	assert.Equal(t, "cat_king", next.ID)

	// Top of the line: no result, not an error.
	_, ok = c.NextEvolution("cat_king")
	assert.False(t, ok)

	// Hybrids never evolve.
	_, ok = c.NextEvolution("hybrid_cat_dog")
	assert.False(t, ok)
}

func TestHybridFor_OrderIndependent(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(1))

	s1, ok := c.HybridFor("cat", "dog", rng)
	require.True(t, ok)
	assert.True(t, s1.IsHybrid())
	assert.ElementsMatch(t, []string{"cat", "dog"}, s1.ParentLines)

	s2, ok := c.HybridFor("dog", "cat", rng)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"cat", "dog"}, s2.ParentLines)

	// Unknown combination is a valid no-result.
	_, ok = c.HybridFor("cat", "cat", rng)
	assert.False(t, ok)
}

func TestLevelOnePoolExcludesHybrids(t *testing.T) {
	c := Default()
	pool := c.LevelOnePool()
	require.NotEmpty(t, pool)
	for _, s := range pool {
		assert.Equal(t, 1, s.Level)
		assert.False(t, s.IsHybrid())
	}
}

func TestRollRarity_CoversAllTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[Rarity]int{}
	for i := 0; i < 2000; i++ {
		seen[RollRarity(rng)]++
	}
	// Common dominates, ultra-rare appears but stays rare.
	assert.Greater(t, seen[RarityCommon], seen[RarityRare])
	assert.Greater(t, seen[RarityRare], seen[RaritySuperRare])
	assert.Greater(t, seen[RaritySuperRare], seen[RarityUltraRare])
	assert.Greater(t, seen[RarityUltraRare], 0)
}

func TestRollHatch_AlwaysLevelOne(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		s, ok := c.RollHatch(rng)
		require.True(t, ok)
		assert.Equal(t, 1, s.Level)
	}
}

func TestNew_RejectsBadTables(t *testing.T) {
	_, err := New([]Species{
		{ID: "a", Line: "x", Level: 1},
		{ID: "a", Line: "y", Level: 1},
	})
	assert.ErrorContains(t, err, "duplicate species id")

	_, err = New([]Species{
		{ID: "a", Line: "x", Level: 1},
		{ID: "b", Line: "x", Level: 1},
	})
	assert.ErrorContains(t, err, "duplicate species for line")

	_, err = New([]Species{
		{ID: "h", Line: LineHybrid, Level: 1, ParentLines: []string{"x"}},
	})
	assert.ErrorContains(t, err, "two parent lines")
}

func TestLoadFile_ValidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"species": [
			{"id": "fox_1", "name": "Fox", "rarity": "common", "line": "fox", "level": 1},
			{"id": "fox_2", "name": "Silver Fox", "rarity": "rare", "line": "fox", "level": 2}
		]
	}`), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count())
	next, ok := c.NextEvolution("fox_1")
	require.True(t, ok)
	assert.Equal(t, "fox_2", next.ID)
}

func TestLoadFile_SchemaViolationIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	// level 0 violates the schema minimum.
	require.NoError(t, os.WriteFile(path, []byte(`{
		"species": [{"id": "x", "name": "X", "rarity": "common", "line": "x", "level": 0}]
	}`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_EmptyPathGivesDefaults(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default().Count(), c.Count())
}
