package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/MassBabyGeek/StepLeague-backend/internal/database"
	"github.com/MassBabyGeek/StepLeague-backend/internal/leaderboard"
	"github.com/MassBabyGeek/StepLeague-backend/internal/middleware"
	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
	"github.com/MassBabyGeek/StepLeague-backend/internal/scanner"
	"github.com/MassBabyGeek/StepLeague-backend/internal/utils"
)

// SubmitActivity enregistre les pas d'un jour pour l'utilisateur authentifié.
// La soumission est toujours insérée telle quelle (les corrections du même
// jour coexistent, l'agrégateur garde le max), puis l'instantané de records
// est recalculé et les jalons franchis sont renvoyés avec la réponse.
func SubmitActivity(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required", err)
		return
	}

	var req model.SubmitActivityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	forDate, err := time.Parse("2006-01-02", req.ForDate)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "forDate must be YYYY-MM-DD", err)
		return
	}

	today := leaderboard.Day(time.Now())
	forDate = leaderboard.Day(forDate)

	if req.Steps < 0 {
		utils.Error(w, http.StatusBadRequest, "steps must be >= 0", nil)
		return
	}
	if forDate.After(today) {
		utils.Error(w, http.StatusBadRequest, "forDate cannot be in the future", nil)
		return
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	ctx := r.Context()

	// Instantané AVANT insertion : c'est contre lui que les jalons sont évalués.
	prior, err := fetchUserRecord(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user record", err)
		return
	}

	record := model.ActivityRecord{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ForDate:   forDate,
		Steps:     req.Steps,
		Source:    source,
		CreatedAt: time.Now(),
	}

	_, err = database.DB.Exec(ctx, `
		INSERT INTO activities (id, user_id, for_date, steps, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.ID, record.UserID, record.ForDate, record.Steps, record.Source, record.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not insert activity", err)
		return
	}

	// Historique complet, soumission incluse.
	records, err := fetchUserActivityRecords(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch activities", err)
		return
	}

	standing, err := weeklyLeagueStanding(ctx, user.ID, today)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute league standing", err)
		return
	}

	milestones := leaderboard.DetectMilestones(user.ID, *prior, records, forDate, standing)

	updated, err := refreshUserRecord(ctx, user.ID, prior, records, today)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user record", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"activity":   record,
		"milestones": milestones,
		"record":     updated,
	})
}

// GetUserActivities récupère l'historique des soumissions d'un utilisateur
// Params : period, start, end, limit (30 par défaut), offset
func GetUserActivities(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	query := r.URL.Query()
	limit := utils.QueryInt(query, "limit", 30)
	offset := utils.QueryInt(query, "offset", 0)

	start, err := utils.QueryDate(query, "start")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid start date", err)
		return
	}
	end, err := utils.QueryDate(query, "end")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid end date", err)
		return
	}

	rng, err := leaderboard.ResolvePeriod(query.Get("period"), start, end, time.Now())
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid period", err)
		return
	}

	sqlQuery := `
		SELECT id, user_id, for_date, steps, verified, source, created_at
		FROM activities
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if rng != nil {
		sqlQuery += ` AND for_date BETWEEN $2 AND $3
		ORDER BY for_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
		args = append(args, rng.Start, rng.End, limit, offset)
	} else {
		sqlQuery += `
		ORDER BY for_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := database.DB.Query(r.Context(), sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query activities", err)
		return
	}
	defer rows.Close()

	activities := []model.ActivityRecord{}
	for rows.Next() {
		rec, err := scanner.ScanActivityRecord(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan activity row", err)
			return
		}
		activities = append(activities, *rec)
	}

	utils.Success(w, activities)
}

// fetchUserRecord charge l'instantané de records d'un utilisateur. Un
// utilisateur sans ligne (première soumission) reçoit un instantané vierge.
func fetchUserRecord(ctx context.Context, userID string) (*model.UserRecord, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT user_id, best_day_value, best_day_date, current_streak,
			longest_streak, total_lifetime, updated_at
		FROM user_records
		WHERE user_id = $1
	`, userID)

	rec, err := scanner.ScanUserRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.UserRecord{UserID: userID}, nil
		}
		return nil, err
	}
	return rec, nil
}

// weeklyLeagueStanding construit le contexte de ligue du détecteur de jalons :
// les totaux de la fenêtre hebdomadaire glissante de la première ligue de
// l'utilisateur. Pas de ligue, pas de contexte (nil).
func weeklyLeagueStanding(ctx context.Context, userID string, today time.Time) (*leaderboard.LeagueStanding, error) {
	var leagueID, leagueName string
	err := database.DB.QueryRow(ctx, `
		SELECT l.id, l.name
		FROM leagues l
		INNER JOIN league_members lm ON lm.league_id = l.id
		WHERE lm.user_id = $1
		ORDER BY lm.joined_at
		LIMIT 1
	`, userID).Scan(&leagueID, &leagueName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	week, err := leaderboard.ResolvePeriod(leaderboard.PeriodLast7Days, nil, nil, today)
	if err != nil {
		return nil, err
	}

	records, err := fetchLeagueActivityRecords(ctx, leagueID, week, nil)
	if err != nil {
		return nil, err
	}

	return &leaderboard.LeagueStanding{
		Name:   leagueName,
		Totals: leaderboard.Aggregate(records, week, leaderboard.AggregateOptions{}),
	}, nil
}

// refreshUserRecord recalcule l'instantané de records depuis l'historique
// complet et l'upsert en base. Le meilleur jour est le max des totaux
// dédupliqués par jour ; la streak courante se termine sur aujourd'hui.
func refreshUserRecord(ctx context.Context, userID string, prior *model.UserRecord, records []model.ActivityRecord, today time.Time) (*model.UserRecord, error) {
	bestValue, bestDate := bestDay(records, userID)

	streak := leaderboard.StreakEndingOn(records, userID, today)
	longest := prior.LongestStreak
	if streak > longest {
		longest = streak
	}

	lifetime := leaderboard.Aggregate(records, nil, leaderboard.AggregateOptions{})[userID].Total

	updated := model.UserRecord{
		UserID:        userID,
		BestDayValue:  bestValue,
		BestDayDate:   bestDate,
		CurrentStreak: streak,
		LongestStreak: longest,
		TotalLifetime: lifetime,
		UpdatedAt:     time.Now(),
	}

	_, err := database.DB.Exec(ctx, `
		INSERT INTO user_records (user_id, best_day_value, best_day_date,
			current_streak, longest_streak, total_lifetime, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			best_day_value = EXCLUDED.best_day_value,
			best_day_date = EXCLUDED.best_day_date,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			total_lifetime = EXCLUDED.total_lifetime,
			updated_at = EXCLUDED.updated_at
	`, updated.UserID, updated.BestDayValue, updated.BestDayDate,
		updated.CurrentStreak, updated.LongestStreak, updated.TotalLifetime, updated.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// bestDay retourne le meilleur total dédupliqué (max par jour) de l'historique
// et la date correspondante. Premier jour rencontré en cas d'égalité.
func bestDay(records []model.ActivityRecord, userID string) (int, time.Time) {
	byDay := make(map[string]int)
	dates := make(map[string]time.Time)
	for _, rec := range records {
		if rec.UserID != userID || rec.Steps < 0 {
			continue
		}
		key := leaderboard.DayKey(rec.ForDate)
		if rec.Steps > byDay[key] {
			byDay[key] = rec.Steps
			dates[key] = leaderboard.Day(rec.ForDate)
		}
	}

	bestValue := 0
	var bestDate time.Time
	for key, value := range byDay {
		if value > bestValue || (value == bestValue && bestValue > 0 && dates[key].Before(bestDate)) {
			bestValue = value
			bestDate = dates[key]
		}
	}
	return bestValue, bestDate
}
