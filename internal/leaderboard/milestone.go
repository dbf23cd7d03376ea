package leaderboard

import (
	"time"

	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
)

// StreakThresholds sont les paliers de streak déclenchant un jalon, évalués
// en ordre croissant.
var StreakThresholds = [...]int{7, 14, 30, 100}

// rankMilestoneCutoff : un jalon de rang ne se déclenche que dans le top 3
// hebdomadaire de la ligue.
const rankMilestoneCutoff = 3

// PersonalBest décrit un record du jour battu.
type PersonalBest struct {
	Old   int `json:"old"`
	New   int `json:"new"`
	Delta int `json:"delta"`
}

// StreakMilestone décrit un palier de streak qui vient d'être franchi.
type StreakMilestone struct {
	Days      int  `json:"days"`
	Threshold int  `json:"threshold"`
	IsNew     bool `json:"isNew"`
}

// RankChange décrit une entrée dans le podium hebdomadaire d'une ligue.
// Le rang précédent n'est pas persisté par le store : OldRank est approximé
// par NewRank + 2, l'approximation de l'API historique.
type RankChange struct {
	OldRank    int    `json:"oldRank"`
	NewRank    int    `json:"newRank"`
	Delta      int    `json:"delta"`
	LeagueName string `json:"leagueName,omitempty"`
}

// MilestoneResult regroupe les jalons déclenchés par une soumission. Chaque
// champ est indépendant : une même soumission peut en déclencher zéro, un,
// deux ou trois. Calculé une fois par soumission, jamais persisté ici.
type MilestoneResult struct {
	PersonalBest    *PersonalBest    `json:"personalBest,omitempty"`
	StreakMilestone *StreakMilestone `json:"streakMilestone,omitempty"`
	RankChange      *RankChange      `json:"rankChange,omitempty"`
}

// Any indique si au moins un jalon a été déclenché.
func (m MilestoneResult) Any() bool {
	return m.PersonalBest != nil || m.StreakMilestone != nil || m.RankChange != nil
}

// LeagueStanding est le contexte de ligue optionnel du détecteur : les totaux
// agrégés de la fenêtre hebdomadaire active de la ligue, soumission incluse.
type LeagueStanding struct {
	Name   string
	Totals map[string]AggregatedTotal
}

// DetectMilestones compare l'instantané prior (AVANT acceptation de la
// soumission) à l'état reconstruit depuis records (qui inclut la soumission)
// et rapporte les jalons franchis. records doit contenir l'historique de
// l'utilisateur ; forDate est la date calendaire de la soumission.
func DetectMilestones(userID string, prior model.UserRecord, records []model.ActivityRecord, forDate time.Time, league *LeagueStanding) MilestoneResult {
	var result MilestoneResult

	// Record personnel : total dédupliqué du jour de la soumission contre le
	// meilleur jour connu. Strictement supérieur, sinon rien.
	dayTotal := dayTotalFor(records, userID, forDate)
	if dayTotal > prior.BestDayValue {
		result.PersonalBest = &PersonalBest{
			Old:   prior.BestDayValue,
			New:   dayTotal,
			Delta: dayTotal - prior.BestDayValue,
		}
	}

	// Palier de streak : reconstruit la streak se terminant le jour de la
	// soumission, puis cherche le plus petit palier nouvellement satisfait.
	// Un palier déjà atteint par prior.CurrentStreak ne se re-déclenche pas.
	streak := StreakEndingOn(records, userID, forDate)
	for _, threshold := range StreakThresholds {
		if streak >= threshold && prior.CurrentStreak < threshold {
			result.StreakMilestone = &StreakMilestone{
				Days:      streak,
				Threshold: threshold,
				IsNew:     true,
			}
			break
		}
	}

	// Entrée au podium de la ligue sur la fenêtre hebdomadaire active.
	if league != nil {
		rank := RankOf(league.Totals, userID)
		if rank.TotalUsers > 0 && rank.Rank <= rankMilestoneCutoff {
			result.RankChange = &RankChange{
				OldRank:    rank.Rank + 2,
				NewRank:    rank.Rank,
				Delta:      2,
				LeagueName: league.Name,
			}
		}
	}

	return result
}

// StreakEndingOn reconstruit la streak de jours consécutifs se terminant sur
// ref : on recule d'un jour calendaire à la fois tant que l'utilisateur a au
// moins un enregistrement pour ce jour.
func StreakEndingOn(records []model.ActivityRecord, userID string, ref time.Time) int {
	days := DistinctDates(records, userID)

	streak := 0
	for d := Day(ref); days[DayKey(d)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// dayTotalFor retourne le total dédupliqué (max du jour) de l'utilisateur
// pour une date calendaire donnée.
func dayTotalFor(records []model.ActivityRecord, userID string, forDate time.Time) int {
	day := DayKey(forDate)
	best := 0
	for _, rec := range records {
		if rec.UserID == userID && DayKey(rec.ForDate) == day && rec.Steps > best {
			best = rec.Steps
		}
	}
	return best
}
