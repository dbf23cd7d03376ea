package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
)

// consecutiveDays fabrique un enregistrement par jour pour une suite de jours
// consécutifs se terminant sur end inclus.
func consecutiveDays(t *testing.T, userID, end string, count, steps int) []model.ActivityRecord {
	t.Helper()
	last := day(t, end)
	records := make([]model.ActivityRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, model.ActivityRecord{
			UserID:  userID,
			ForDate: last.AddDate(0, 0, -i),
			Steps:   steps,
		})
	}
	return records
}

func TestStreakEndingOn(t *testing.T) {
	t.Run("unbroken run", func(t *testing.T) {
		records := consecutiveDays(t, "A", "2026-01-10", 6, 4000)
		assert.Equal(t, 6, StreakEndingOn(records, "A", day(t, "2026-01-10")))
	})

	t.Run("gap stops the walk", func(t *testing.T) {
		records := consecutiveDays(t, "A", "2026-01-10", 3, 4000)
		// Un trou le 7, puis de l'activité plus ancienne qui ne compte pas.
		records = append(records, rec(t, "A", "2026-01-05", 4000))
		assert.Equal(t, 3, StreakEndingOn(records, "A", day(t, "2026-01-10")))
	})

	t.Run("no record on the reference day", func(t *testing.T) {
		records := consecutiveDays(t, "A", "2026-01-09", 4, 4000)
		assert.Equal(t, 0, StreakEndingOn(records, "A", day(t, "2026-01-10")))
	})

	t.Run("other users do not contribute", func(t *testing.T) {
		records := consecutiveDays(t, "B", "2026-01-10", 6, 4000)
		assert.Equal(t, 0, StreakEndingOn(records, "A", day(t, "2026-01-10")))
	})
}

func TestDetectMilestones_PersonalBest(t *testing.T) {
	prior := model.UserRecord{UserID: "A", BestDayValue: 8000}

	t.Run("strictly greater day total fires", func(t *testing.T) {
		records := []model.ActivityRecord{rec(t, "A", "2026-01-10", 9500)}
		result := DetectMilestones("A", prior, records, day(t, "2026-01-10"), nil)

		require.NotNil(t, result.PersonalBest)
		assert.Equal(t, 8000, result.PersonalBest.Old)
		assert.Equal(t, 9500, result.PersonalBest.New)
		assert.Equal(t, 1500, result.PersonalBest.Delta)
	})

	t.Run("equal day total does not fire", func(t *testing.T) {
		records := []model.ActivityRecord{rec(t, "A", "2026-01-10", 8000)}
		result := DetectMilestones("A", prior, records, day(t, "2026-01-10"), nil)
		assert.Nil(t, result.PersonalBest)
	})

	t.Run("day total is deduplicated before comparing", func(t *testing.T) {
		// Deux soumissions le même jour : le max (8500) est le total du jour,
		// pas la somme (13500).
		records := []model.ActivityRecord{
			rec(t, "A", "2026-01-10", 5000),
			rec(t, "A", "2026-01-10", 8500),
		}
		result := DetectMilestones("A", prior, records, day(t, "2026-01-10"), nil)
		require.NotNil(t, result.PersonalBest)
		assert.Equal(t, 8500, result.PersonalBest.New)
	})
}

func TestDetectMilestones_StreakThresholds(t *testing.T) {
	t.Run("crossing seven fires", func(t *testing.T) {
		prior := model.UserRecord{UserID: "A", CurrentStreak: 6}
		records := consecutiveDays(t, "A", "2026-01-10", 7, 4000)

		result := DetectMilestones("A", prior, records, day(t, "2026-01-10"), nil)
		require.NotNil(t, result.StreakMilestone)
		assert.Equal(t, 7, result.StreakMilestone.Days)
		assert.Equal(t, 7, result.StreakMilestone.Threshold)
		assert.True(t, result.StreakMilestone.IsNew)
	})

	t.Run("day eight fires nothing", func(t *testing.T) {
		// 8 n'est pas un palier et 7 a déjà été rapporté.
		prior := model.UserRecord{UserID: "A", CurrentStreak: 7}
		records := consecutiveDays(t, "A", "2026-01-11", 8, 4000)

		result := DetectMilestones("A", prior, records, day(t, "2026-01-11"), nil)
		assert.Nil(t, result.StreakMilestone)
	})

	t.Run("only the lowest newly met threshold is reported", func(t *testing.T) {
		// Une reprise après import historique peut sauter plusieurs paliers :
		// on ne rapporte que le plus bas non encore atteint.
		prior := model.UserRecord{UserID: "A", CurrentStreak: 5}
		records := consecutiveDays(t, "A", "2026-01-31", 31, 4000)

		result := DetectMilestones("A", prior, records, day(t, "2026-01-31"), nil)
		require.NotNil(t, result.StreakMilestone)
		assert.Equal(t, 31, result.StreakMilestone.Days)
		assert.Equal(t, 7, result.StreakMilestone.Threshold)
	})

	t.Run("threshold already reached does not refire", func(t *testing.T) {
		prior := model.UserRecord{UserID: "A", CurrentStreak: 14}
		records := consecutiveDays(t, "A", "2026-01-15", 15, 4000)

		result := DetectMilestones("A", prior, records, day(t, "2026-01-15"), nil)
		assert.Nil(t, result.StreakMilestone)
	})
}

func TestDetectMilestones_RankChange(t *testing.T) {
	standings := &LeagueStanding{
		Name: "Morning Walkers",
		Totals: totalsOf(map[string]int{
			"A": 50000, "B": 42000, "C": 38000, "D": 20000, "E": 12000,
		}),
	}

	t.Run("podium finish fires with approximated delta", func(t *testing.T) {
		result := DetectMilestones("C", model.UserRecord{UserID: "C"}, nil, day(t, "2026-01-10"), standings)
		require.NotNil(t, result.RankChange)
		assert.Equal(t, 3, result.RankChange.NewRank)
		assert.Equal(t, 5, result.RankChange.OldRank)
		assert.Equal(t, 2, result.RankChange.Delta)
		assert.Equal(t, "Morning Walkers", result.RankChange.LeagueName)
	})

	t.Run("outside the podium fires nothing", func(t *testing.T) {
		result := DetectMilestones("D", model.UserRecord{UserID: "D"}, nil, day(t, "2026-01-10"), standings)
		assert.Nil(t, result.RankChange)
	})

	t.Run("no league context skips the check", func(t *testing.T) {
		result := DetectMilestones("A", model.UserRecord{UserID: "A"}, nil, day(t, "2026-01-10"), nil)
		assert.Nil(t, result.RankChange)
	})
}

func TestDetectMilestones_Independent(t *testing.T) {
	// Une même soumission peut déclencher les trois jalons à la fois.
	prior := model.UserRecord{UserID: "A", BestDayValue: 3000, CurrentStreak: 6}
	records := consecutiveDays(t, "A", "2026-01-10", 7, 4000)

	standings := &LeagueStanding{
		Name:   "Office League",
		Totals: totalsOf(map[string]int{"A": 28000, "B": 10000}),
	}

	result := DetectMilestones("A", prior, records, day(t, "2026-01-10"), standings)
	assert.True(t, result.Any())
	assert.NotNil(t, result.PersonalBest)
	assert.NotNil(t, result.StreakMilestone)
	assert.NotNil(t, result.RankChange)
}
