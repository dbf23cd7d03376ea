package leaderboard

import (
	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
)

// AggregatedTotal est le total d'un utilisateur sur une fenêtre de dates.
// Total est la somme, pour chaque jour distinct de la fenêtre, du maximum
// des valeurs soumises ce jour-là (jamais la somme des doublons).
type AggregatedTotal struct {
	UserID       string `json:"userId"`
	Total        int    `json:"total"`
	DistinctDays int    `json:"distinctDays"` // jours ayant contribué une valeur non nulle
}

// AggregateOptions ajuste une passe d'agrégation.
type AggregateOptions struct {
	// VerifiedOnly ne retient que les enregistrements explicitement vérifiés
	// (Verified == true). Les tri-états nil (inconnu) et false sont exclus.
	VerifiedOnly bool
}

// Aggregate réduit un lot d'enregistrements bruts en un total par utilisateur
// sur la fenêtre rng. rng nil signifie "all time" : aucun filtrage de date.
//
// Règle de déduplication : un utilisateur peut soumettre plusieurs fois pour
// le même jour (correction, double source) ; on ne garde que le maximum du
// jour pour ne jamais compter double. Un utilisateur sans enregistrement dans
// la fenêtre est absent de la map résultat — l'appelant traite l'absence
// comme zéro, jamais comme une erreur.
func Aggregate(records []model.ActivityRecord, rng *PeriodRange, opts AggregateOptions) map[string]AggregatedTotal {
	type userDay struct {
		user string
		day  string
	}

	// Passe 1 : max par (utilisateur, jour).
	best := make(map[userDay]int)
	for _, rec := range records {
		if rec.Steps < 0 {
			continue
		}
		if opts.VerifiedOnly && (rec.Verified == nil || !*rec.Verified) {
			continue
		}
		if rng != nil && !rng.Contains(rec.ForDate) {
			continue
		}

		key := userDay{user: rec.UserID, day: DayKey(rec.ForDate)}
		if current, ok := best[key]; !ok || rec.Steps > current {
			best[key] = rec.Steps
		}
	}

	// Passe 2 : somme des maxima par utilisateur.
	totals := make(map[string]AggregatedTotal)
	for key, steps := range best {
		agg := totals[key.user]
		agg.UserID = key.user
		agg.Total += steps
		if steps > 0 {
			agg.DistinctDays++
		}
		totals[key.user] = agg
	}

	return totals
}

// DistinctDates retourne l'ensemble des jours distincts (clé YYYY-MM-DD) pour
// lesquels l'utilisateur a au moins un enregistrement. Utilisé par la
// reconstruction de streak.
func DistinctDates(records []model.ActivityRecord, userID string) map[string]bool {
	days := make(map[string]bool)
	for _, rec := range records {
		if rec.UserID == userID {
			days[DayKey(rec.ForDate)] = true
		}
	}
	return days
}
