package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/MassBabyGeek/StepLeague-backend/internal/database"
	"github.com/MassBabyGeek/StepLeague-backend/internal/leaderboard"
	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
	"github.com/MassBabyGeek/StepLeague-backend/internal/scanner"
	"github.com/MassBabyGeek/StepLeague-backend/internal/utils"
)

// leaderboardRequest regroupe les fenêtres résolues d'une requête de
// classement. today est figé une fois par requête.
type leaderboardRequest struct {
	Primary *leaderboard.PeriodRange
	Compare *leaderboard.PeriodRange
	Opts    leaderboard.AggregateOptions
}

// resolveLeaderboardRequest parse period/start/end/compare depuis la query
// string et résout les fenêtres. Une borne custom invalide renvoie
// ErrInvalidRange, que l'appelant traduit en 400.
func resolveLeaderboardRequest(query url.Values, today time.Time) (*leaderboardRequest, error) {
	start, err := utils.QueryDate(query, "start")
	if err != nil {
		return nil, err
	}
	end, err := utils.QueryDate(query, "end")
	if err != nil {
		return nil, err
	}

	primary, err := leaderboard.ResolvePeriod(query.Get("period"), start, end, today)
	if err != nil {
		return nil, err
	}

	compareStart, err := utils.QueryDate(query, "compare_start")
	if err != nil {
		return nil, err
	}
	compareEnd, err := utils.QueryDate(query, "compare_end")
	if err != nil {
		return nil, err
	}

	compare, err := leaderboard.CompareRange(primary, query.Get("compare"), compareStart, compareEnd)
	if err != nil {
		return nil, err
	}

	return &leaderboardRequest{
		Primary: primary,
		Compare: compare,
		Opts:    leaderboard.AggregateOptions{VerifiedOnly: utils.QueryBool(query, "verified_only")},
	}, nil
}

// fetchActivityRecords charge les enregistrements bruts couvrant les fenêtres
// demandées. Avec une primaire nil (all_time) on charge tout ; sinon on borne
// la requête SQL sur l'union des deux fenêtres et on laisse l'agrégateur
// filtrer finement.
func fetchActivityRecords(ctx context.Context, primary, compare *leaderboard.PeriodRange) ([]model.ActivityRecord, error) {
	sqlQuery := `
		SELECT a.id, a.user_id, a.for_date, a.steps, a.verified, a.source, a.created_at
		FROM activities a
		INNER JOIN users u ON a.user_id = u.id
		WHERE u.deleted_at IS NULL
	`
	var args []interface{}

	if primary != nil {
		lo, hi := primary.Start, primary.End
		if compare != nil {
			if compare.Start.Before(lo) {
				lo = compare.Start
			}
			if compare.End.After(hi) {
				hi = compare.End
			}
		}
		sqlQuery += ` AND a.for_date BETWEEN $1 AND $2`
		args = []interface{}{lo, hi}
	}

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ActivityRecord
	for rows.Next() {
		rec, err := scanner.ScanActivityRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// fetchUserActivityRecords charge tout l'historique d'un seul utilisateur.
func fetchUserActivityRecords(ctx context.Context, userID string) ([]model.ActivityRecord, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, for_date, steps, verified, source, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY for_date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ActivityRecord
	for rows.Next() {
		rec, err := scanner.ScanActivityRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// decorateEntries complète une page de classement avec le nom, l'avatar et
// les badges des utilisateurs. Un SELECT par page, pas par ligne.
func decorateEntries(ctx context.Context, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, len(entries))
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		ids[i] = entry.UserID
		index[entry.UserID] = i
	}

	rows, err := database.DB.Query(ctx, `
		SELECT u.id, u.name, u.avatar,
			COALESCE(r.total_lifetime, 0),
			COALESCE(r.current_streak, 0),
			COALESCE(r.longest_streak, 0)
		FROM users u
		LEFT JOIN user_records r ON r.user_id = u.id
		WHERE u.id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		var avatar *string
		var lifetime, currentStreak, longestStreak int
		if err := rows.Scan(&id, &name, &avatar, &lifetime, &currentStreak, &longestStreak); err != nil {
			return err
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		entries[i].UserName = name
		if avatar != nil {
			entries[i].Avatar = *avatar
		}
		entries[i].Badges = leaderboard.BadgesFor(lifetime, currentStreak, longestStreak)
	}
	return rows.Err()
}

// GetLeaderboard récupère le classement général
// Params : period, start, end, compare, compare_start, compare_end,
// limit (50 par défaut), offset, verified_only
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	today := time.Now()

	req, err := resolveLeaderboardRequest(query, today)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, leaderboard.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		utils.Error(w, status, "invalid leaderboard request", err)
		return
	}

	limit := utils.QueryInt(query, "limit", 50)
	offset := utils.QueryInt(query, "offset", 0)

	ctx := r.Context()
	records, err := fetchActivityRecords(ctx, req.Primary, req.Compare)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query activities", err)
		return
	}

	totals := leaderboard.Aggregate(records, req.Primary, req.Opts)

	var compare map[string]leaderboard.AggregatedTotal
	if req.Compare != nil {
		compare = leaderboard.Aggregate(records, req.Compare, req.Opts)
	}

	entries := leaderboard.RankTotals(totals, compare, limit, offset)
	if err := decorateEntries(ctx, entries); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not decorate leaderboard", err)
		return
	}

	utils.Success(w, entries)
}

// GetTopPerformers récupère le podium du classement
// Params : period, limit (3 par défaut)
func GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	today := time.Now()

	req, err := resolveLeaderboardRequest(query, today)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, leaderboard.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		utils.Error(w, status, "invalid leaderboard request", err)
		return
	}

	limit := utils.QueryInt(query, "limit", 3)

	ctx := r.Context()
	records, err := fetchActivityRecords(ctx, req.Primary, nil)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query activities", err)
		return
	}

	totals := leaderboard.Aggregate(records, req.Primary, req.Opts)
	entries := leaderboard.RankTotals(totals, nil, limit, 0)
	if err := decorateEntries(ctx, entries); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not decorate leaderboard", err)
		return
	}

	utils.Success(w, entries)
}

// GetUserRank récupère le rang d'un utilisateur dans le classement
// Params : period, start, end, verified_only
func GetUserRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	query := r.URL.Query()
	today := time.Now()

	req, err := resolveLeaderboardRequest(query, today)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, leaderboard.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		utils.Error(w, status, "invalid leaderboard request", err)
		return
	}

	ctx := r.Context()
	records, err := fetchActivityRecords(ctx, req.Primary, nil)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query activities", err)
		return
	}

	totals := leaderboard.Aggregate(records, req.Primary, req.Opts)
	utils.Success(w, leaderboard.RankOf(totals, userID))
}

// GetLeagueLeaderboard récupère le classement restreint aux membres d'une ligue
// Params : period, start, end, compare, limit, offset, verified_only
func GetLeagueLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	leagueID := vars["leagueId"]

	query := r.URL.Query()
	today := time.Now()

	req, err := resolveLeaderboardRequest(query, today)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, leaderboard.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		utils.Error(w, status, "invalid leaderboard request", err)
		return
	}

	limit := utils.QueryInt(query, "limit", 50)
	offset := utils.QueryInt(query, "offset", 0)

	ctx := r.Context()

	league, err := fetchLeague(ctx, leagueID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "league not found", err)
		return
	}

	records, err := fetchLeagueActivityRecords(ctx, leagueID, req.Primary, req.Compare)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query league activities", err)
		return
	}

	totals := leaderboard.Aggregate(records, req.Primary, req.Opts)

	var compare map[string]leaderboard.AggregatedTotal
	if req.Compare != nil {
		compare = leaderboard.Aggregate(records, req.Compare, req.Opts)
	}

	entries := leaderboard.RankTotals(totals, compare, limit, offset)
	if err := decorateEntries(ctx, entries); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not decorate leaderboard", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"league":  league,
		"entries": entries,
	})
}

// fetchLeague charge une ligue par ID.
func fetchLeague(ctx context.Context, leagueID string) (*model.League, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT l.id, l.name, l.tags,
			(SELECT COUNT(*) FROM league_members lm WHERE lm.league_id = l.id) as members,
			l.created_at
		FROM leagues l
		WHERE l.id = $1
	`, leagueID)
	return scanner.ScanLeague(row)
}

// fetchLeagueActivityRecords charge les enregistrements des membres d'une ligue.
func fetchLeagueActivityRecords(ctx context.Context, leagueID string, primary, compare *leaderboard.PeriodRange) ([]model.ActivityRecord, error) {
	sqlQuery := `
		SELECT a.id, a.user_id, a.for_date, a.steps, a.verified, a.source, a.created_at
		FROM activities a
		INNER JOIN league_members lm ON lm.user_id = a.user_id
		INNER JOIN users u ON a.user_id = u.id
		WHERE lm.league_id = $1
			AND u.deleted_at IS NULL
	`
	args := []interface{}{leagueID}

	if primary != nil {
		lo, hi := primary.Start, primary.End
		if compare != nil {
			if compare.Start.Before(lo) {
				lo = compare.Start
			}
			if compare.End.After(hi) {
				hi = compare.End
			}
		}
		sqlQuery += ` AND a.for_date BETWEEN $2 AND $3`
		args = append(args, lo, hi)
	}

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ActivityRecord
	for rows.Next() {
		rec, err := scanner.ScanActivityRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
