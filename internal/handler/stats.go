package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MassBabyGeek/StepLeague-backend/internal/leaderboard"
	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
	"github.com/MassBabyGeek/StepLeague-backend/internal/utils"
)

// GetUserStats récupère les records personnels, streaks et badges d'un
// utilisateur. L'instantané vient de user_records ; les jours actifs sont
// recomptés depuis l'historique.
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := r.Context()

	record, err := fetchUserRecord(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user record", err)
		return
	}

	records, err := fetchUserActivityRecords(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch activities", err)
		return
	}

	stats := model.UserStats{
		UserID:        userID,
		TotalLifetime: record.TotalLifetime,
		BestDayValue:  record.BestDayValue,
		BestDayDate:   record.BestDayDate,
		CurrentStreak: record.CurrentStreak,
		LongestStreak: record.LongestStreak,
		DaysActive:    len(leaderboard.DistinctDates(records, userID)),
		Badges:        leaderboard.BadgesFor(record.TotalLifetime, record.CurrentStreak, record.LongestStreak),
	}

	utils.Success(w, stats)
}

// GetUserTrends récupère la série de tendance d'un utilisateur
// Params : bucket (week|month, week par défaut), count (8 par défaut),
// verified_only
func GetUserTrends(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	query := r.URL.Query()

	bucket := query.Get("bucket")
	if bucket != leaderboard.BucketMonth {
		bucket = leaderboard.BucketWeek
	}
	count := utils.QueryInt(query, "count", 8)
	opts := leaderboard.AggregateOptions{VerifiedOnly: utils.QueryBool(query, "verified_only")}

	records, err := fetchUserActivityRecords(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch activities", err)
		return
	}

	series := leaderboard.BuildSeries(records, userID, bucket, count, time.Now(), opts)
	summary := leaderboard.SummarizeTrend(series)

	utils.Success(w, map[string]interface{}{
		"series":  series,
		"summary": summary,
	})
}
