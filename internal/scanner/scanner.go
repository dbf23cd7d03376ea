package scanner

import (
	"database/sql"

	"github.com/lib/pq"

	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
	"github.com/MassBabyGeek/StepLeague-backend/internal/utils"
)

// rowScanner est satisfait par pgx.Row comme par pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanActivityRecord scanne une ligne SQL vers un ActivityRecord
// Colonnes attendues : id, user_id, for_date, steps, verified, source, created_at
func ScanActivityRecord(scanner rowScanner) (*model.ActivityRecord, error) {
	var rec model.ActivityRecord
	var verified sql.NullBool
	var source sql.NullString

	err := scanner.Scan(
		&rec.ID, &rec.UserID, &rec.ForDate, &rec.Steps,
		&verified, &source, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Verified = utils.NullBoolToPointer(verified)
	rec.Source = utils.NullStringToString(source)

	return &rec, nil
}

// ScanUserRecord scanne une ligne SQL vers un UserRecord
// Colonnes attendues : user_id, best_day_value, best_day_date, current_streak,
// longest_streak, total_lifetime, updated_at
func ScanUserRecord(scanner rowScanner) (*model.UserRecord, error) {
	var rec model.UserRecord
	var bestDayDate, updatedAt sql.NullTime

	err := scanner.Scan(
		&rec.UserID, &rec.BestDayValue, &bestDayDate,
		&rec.CurrentStreak, &rec.LongestStreak, &rec.TotalLifetime,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.BestDayDate = utils.NullTimeToTime(bestDayDate)
	rec.UpdatedAt = utils.NullTimeToTime(updatedAt)

	return &rec, nil
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile
func ScanUserProfile(scanner rowScanner) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = utils.NullStringToString(avatar)

	return &user, nil
}

// ScanLeague scanne une ligne SQL vers une League avec pq.Array pour les tags
// Colonnes attendues : id, name, tags, members, created_at
func ScanLeague(scanner rowScanner) (*model.League, error) {
	var league model.League

	err := scanner.Scan(
		&league.ID, &league.Name, pq.Array(&league.Tags),
		&league.Members, &league.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &league, nil
}
