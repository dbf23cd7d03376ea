package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
)

func points(values ...int) []TrendDataPoint {
	pts := make([]TrendDataPoint, len(values))
	for i, v := range values {
		pts[i] = TrendDataPoint{Label: string(rune('A' + i)), Value: v}
	}
	return pts
}

func TestSummarizeTrend(t *testing.T) {
	tests := []struct {
		name       string
		values     []int
		wantTotal  int
		wantAvg    int
		wantPct    float64
		wantTrend  string
		wantBest   int
		wantWorst  int
		bestLabel  string
		worstLabel string
	}{
		{
			name:       "flat series is stable",
			values:     []int{50000, 50000, 50000, 50000},
			wantTotal:  200000,
			wantAvg:    50000,
			wantPct:    0,
			wantTrend:  TrendStable,
			wantBest:   50000,
			wantWorst:  50000,
			bestLabel:  "A",
			worstLabel: "A",
		},
		{
			name:       "clear growth is up",
			values:     []int{10000, 12000, 15000, 20000},
			wantTotal:  57000,
			wantAvg:    14250,
			wantPct:    100,
			wantTrend:  TrendUp,
			wantBest:   20000,
			wantWorst:  10000,
			bestLabel:  "D",
			worstLabel: "A",
		},
		{
			name:       "clear decline is down",
			values:     []int{20000, 18000, 9000},
			wantTotal:  47000,
			wantAvg:    15667,
			wantPct:    -55,
			wantTrend:  TrendDown,
			wantBest:   20000,
			wantWorst:  9000,
			bestLabel:  "A",
			worstLabel: "C",
		},
		{
			name:       "small variation stays inside the deadband",
			values:     []int{10000, 10400},
			wantTotal:  20400,
			wantAvg:    10200,
			wantPct:    4,
			wantTrend:  TrendStable,
			wantBest:   10400,
			wantWorst:  10000,
			bestLabel:  "B",
			worstLabel: "A",
		},
		{
			name:       "zero first bucket yields zero percent change",
			values:     []int{0, 30000},
			wantTotal:  30000,
			wantAvg:    15000,
			wantPct:    0,
			wantTrend:  TrendStable,
			wantBest:   30000,
			wantWorst:  0,
			bestLabel:  "B",
			worstLabel: "A",
		},
		{
			name:       "ties resolve to the first bucket",
			values:     []int{5000, 5000, 3000, 5000},
			wantTotal:  18000,
			wantAvg:    4500,
			wantPct:    0,
			wantTrend:  TrendStable,
			wantBest:   5000,
			wantWorst:  3000,
			bestLabel:  "A",
			worstLabel: "C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeTrend(points(tt.values...))

			assert.Equal(t, tt.wantTotal, summary.Total)
			assert.Equal(t, tt.wantAvg, summary.Average)
			assert.InDelta(t, tt.wantPct, summary.PercentChange, 0.001)
			assert.Equal(t, tt.wantTrend, summary.Trend)
			assert.Equal(t, tt.wantBest, summary.Best)
			assert.Equal(t, tt.wantWorst, summary.Worst)
			assert.Equal(t, tt.bestLabel, summary.BestPeriodLabel)
			assert.Equal(t, tt.worstLabel, summary.WorstPeriodLabel)
		})
	}
}

func TestSummarizeTrend_Empty(t *testing.T) {
	summary := SummarizeTrend(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, TrendStable, summary.Trend)
}

func TestBuildSeries_Weekly(t *testing.T) {
	today := day(t, "2026-03-15")

	// De l'activité sur les deux dernières semaines seulement.
	records := []model.ActivityRecord{
		rec(t, "A", "2026-03-15", 8000),
		rec(t, "A", "2026-03-14", 6000),
		rec(t, "A", "2026-03-08", 5000),
		rec(t, "A", "2026-03-08", 4000), // doublon, le max gagne
	}

	series := BuildSeries(records, "A", BucketWeek, 4, today, AggregateOptions{})
	require.Len(t, series, 4)

	// Chaque bucket couvre exactement 7 jours et les buckets sont contigus.
	for i, p := range series {
		assert.Equal(t, 7, p.TotalDays)
		if i > 0 {
			assert.Equal(t,
				DayKey(series[i-1].PeriodEnd.AddDate(0, 0, 1)),
				DayKey(p.PeriodStart))
		}
	}

	// Le dernier bucket se termine aujourd'hui.
	assert.Equal(t, "2026-03-15", DayKey(series[3].PeriodEnd))

	assert.Equal(t, 0, series[0].Value)
	assert.Equal(t, 0, series[1].Value)
	assert.Equal(t, 5000, series[2].Value) // le doublon du 8 est dédupliqué
	assert.Equal(t, 1, series[2].DaysWithData)
	assert.Equal(t, 14000, series[3].Value)
	assert.Equal(t, 2, series[3].DaysWithData)
}

func TestBuildSeries_Monthly(t *testing.T) {
	today := day(t, "2026-03-15")

	records := []model.ActivityRecord{
		rec(t, "A", "2026-01-20", 10000),
		rec(t, "A", "2026-02-10", 7000),
		rec(t, "A", "2026-03-01", 3000),
	}

	series := BuildSeries(records, "A", BucketMonth, 3, today, AggregateOptions{})
	require.Len(t, series, 3)

	assert.Equal(t, "Jan 2026", series[0].Label)
	assert.Equal(t, 10000, series[0].Value)
	assert.Equal(t, 31, series[0].TotalDays)

	assert.Equal(t, "Feb 2026", series[1].Label)
	assert.Equal(t, 7000, series[1].Value)
	assert.Equal(t, 28, series[1].TotalDays)

	// Le mois courant est tronqué à aujourd'hui.
	assert.Equal(t, "Mar 2026", series[2].Label)
	assert.Equal(t, "2026-03-15", DayKey(series[2].PeriodEnd))
	assert.Equal(t, 15, series[2].TotalDays)
}

func TestBuildSeries_EmptyCount(t *testing.T) {
	series := BuildSeries(nil, "A", BucketWeek, 0, day(t, "2026-03-15"), AggregateOptions{})
	assert.Empty(t, series)
}
