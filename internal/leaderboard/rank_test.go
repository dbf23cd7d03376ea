package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalsOf(pairs map[string]int) map[string]AggregatedTotal {
	totals := make(map[string]AggregatedTotal, len(pairs))
	for userID, total := range pairs {
		totals[userID] = AggregatedTotal{UserID: userID, Total: total}
	}
	return totals
}

func TestRankTotals_OrderAndRanks(t *testing.T) {
	totals := totalsOf(map[string]int{"A": 7000, "B": 6000, "C": 9000, "D": 1000})

	entries := RankTotals(totals, nil, 0, 0)
	require.Len(t, entries, 4)

	// Totaux non croissants, rangs strictement croissants de 1 en 1.
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, entries[i-1].Total, entry.Total)
		}
	}
	assert.Equal(t, "C", entries[0].UserID)
	assert.Equal(t, "D", entries[3].UserID)
}

func TestRankTotals_TiesGetDistinctRanks(t *testing.T) {
	totals := totalsOf(map[string]int{"A": 5000, "B": 5000, "C": 5000})

	entries := RankTotals(totals, nil, 0, 0)
	require.Len(t, entries, 3)

	// Pas de partage de rang sur égalité : positions 1, 2, 3. L'ordre relatif
	// des ex æquo est volontairement non garanti, on ne le fige pas ici.
	seen := map[int]bool{}
	for _, entry := range entries {
		assert.Equal(t, 5000, entry.Total)
		seen[entry.Rank] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestRankTotals_Pagination(t *testing.T) {
	totals := totalsOf(map[string]int{"A": 500, "B": 400, "C": 300, "D": 200, "E": 100})

	t.Run("ranks stay global across pages", func(t *testing.T) {
		page := RankTotals(totals, nil, 2, 2)
		require.Len(t, page, 2)
		assert.Equal(t, 3, page[0].Rank)
		assert.Equal(t, "C", page[0].UserID)
		assert.Equal(t, 4, page[1].Rank)
		assert.Equal(t, "D", page[1].UserID)
	})

	t.Run("offset past the end yields empty page", func(t *testing.T) {
		page := RankTotals(totals, nil, 10, 50)
		assert.Empty(t, page)
	})

	t.Run("zero limit returns the full tail", func(t *testing.T) {
		page := RankTotals(totals, nil, 0, 3)
		require.Len(t, page, 2)
		assert.Equal(t, 4, page[0].Rank)
	})
}

func TestRankTotals_Comparison(t *testing.T) {
	totals := totalsOf(map[string]int{"A": 12000, "B": 8000, "C": 5000})
	compare := totalsOf(map[string]int{"A": 10000, "B": 0, "C": 4000})
	// B n'avait rien sur la période de comparaison : compareTotal 0, pas de
	// pourcentage (jamais Inf ni NaN).

	entries := RankTotals(totals, compare, 0, 0)
	require.Len(t, entries, 3)

	byUser := map[string]int{}
	for i, e := range entries {
		byUser[e.UserID] = i
	}

	a := entries[byUser["A"]]
	require.NotNil(t, a.CompareTotal)
	assert.Equal(t, 10000, *a.CompareTotal)
	require.NotNil(t, a.ImprovementPct)
	assert.InDelta(t, 20.0, *a.ImprovementPct, 0.001)

	b := entries[byUser["B"]]
	require.NotNil(t, b.CompareTotal)
	assert.Equal(t, 0, *b.CompareTotal)
	assert.Nil(t, b.ImprovementPct)

	c := entries[byUser["C"]]
	require.NotNil(t, c.ImprovementPct)
	assert.InDelta(t, 25.0, *c.ImprovementPct, 0.001)
}

func TestRankTotals_ImprovementRoundedToOneDecimal(t *testing.T) {
	totals := totalsOf(map[string]int{"A": 1000})
	compare := totalsOf(map[string]int{"A": 300})

	entries := RankTotals(totals, compare, 0, 0)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].ImprovementPct)
	// (1000-300)/300*100 = 233.333... -> 233.3
	assert.InDelta(t, 233.3, *entries[0].ImprovementPct, 0.0001)
}

func TestRankOf(t *testing.T) {
	totals := totalsOf(map[string]int{"A": 500, "B": 400, "C": 300})

	t.Run("ranked user", func(t *testing.T) {
		rank := RankOf(totals, "B")
		assert.Equal(t, 2, rank.Rank)
		assert.Equal(t, 400, rank.Total)
		assert.Equal(t, 3, rank.TotalUsers)
		assert.InDelta(t, 66.66, rank.Percentile, 0.1)
	})

	t.Run("absent user ranks last plus one", func(t *testing.T) {
		rank := RankOf(totals, "Z")
		assert.Equal(t, 4, rank.Rank)
		assert.Equal(t, 0, rank.Total)
	})

	t.Run("empty standings", func(t *testing.T) {
		rank := RankOf(map[string]AggregatedTotal{}, "A")
		assert.Equal(t, 1, rank.Rank)
		assert.Equal(t, 0, rank.TotalUsers)
		assert.Equal(t, float64(100), rank.Percentile)
	})
}
