// Package leaderboard contient le moteur de classement et d'agrégation
// temporelle : résolution de périodes, agrégation dédupliquée des pas,
// classement paginé, badges, jalons et tendances. Toutes les fonctions sont
// pures et travaillent sur des données déjà chargées ; aucune I/O ici.
package leaderboard

import (
	"errors"
	"fmt"
	"time"
)

// Jetons de période acceptés par ResolvePeriod.
const (
	PeriodAllTime    = "all_time"
	PeriodThisYear   = "this_year"
	PeriodThisMonth  = "this_month"
	PeriodLast30Days = "last_30_days"
	PeriodLast7Days  = "last_7_days"
	PeriodCustom     = "custom"
)

// Modes de comparaison d'une période primaire.
const (
	CompareNone     = ""
	ComparePrevious = "previous"
	CompareLastYear = "last_year"
	CompareCustom   = "custom"
)

// ErrInvalidRange signale une période custom avec une borne manquante ou
// inversée. L'erreur est détectée avant toute agrégation.
var ErrInvalidRange = errors.New("invalid period range")

// PeriodRange est une fenêtre de dates calendaires inclusive [Start, End].
// Une valeur nil tient lieu de sentinelle "all time" : agrégation sans borne.
type PeriodRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Day tronque t à sa date calendaire, normalisée en UTC. Toutes les
// comparaisons de dates du moteur passent par ici : on compare des jours,
// jamais des timestamps.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formate une date calendaire en YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Days retourne le nombre de jours calendaires couverts par la fenêtre,
// bornes incluses.
func (p PeriodRange) Days() int {
	return int(Day(p.End).Sub(Day(p.Start)).Hours()/24) + 1
}

// Contains indique si t tombe dans la fenêtre (comparaison calendaire).
func (p PeriodRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(p.Start)) && !d.After(Day(p.End))
}

// ResolvePeriod convertit un jeton de période en fenêtre concrète.
// today est résolu une seule fois par requête par l'appelant et injecté ici,
// jamais relu sur l'horloge ambiante.
//
// all_time retourne (nil, nil) : l'appelant agrège alors sans borne de date.
// Un jeton inconnu est traité comme all_time, comme le faisait l'API historique.
func ResolvePeriod(token string, start, end *time.Time, today time.Time) (*PeriodRange, error) {
	t := Day(today)

	switch token {
	case PeriodThisYear:
		return &PeriodRange{
			Start: time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   t,
			Label: "This year",
		}, nil

	case PeriodThisMonth:
		return &PeriodRange{
			Start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC),
			End:   t,
			Label: "This month",
		}, nil

	case PeriodLast30Days:
		// Fenêtre inclusive d'exactement 30 jours, aujourd'hui compris.
		return &PeriodRange{Start: t.AddDate(0, 0, -29), End: t, Label: "Last 30 days"}, nil

	case PeriodLast7Days:
		return &PeriodRange{Start: t.AddDate(0, 0, -6), End: t, Label: "Last 7 days"}, nil

	case PeriodCustom:
		if start == nil || end == nil {
			return nil, fmt.Errorf("%w: custom period requires start and end", ErrInvalidRange)
		}
		s, e := Day(*start), Day(*end)
		if s.After(e) {
			return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, DayKey(s), DayKey(e))
		}
		return &PeriodRange{Start: s, End: e, Label: "Custom"}, nil

	default:
		// all_time, jeton vide ou inconnu : agrégat lifetime.
		return nil, nil
	}
}

// CompareRange dérive la fenêtre de comparaison d'une période primaire déjà
// résolue. Si la période primaire n'a pas pu être résolue (all_time), la
// comparaison est silencieusement absente : un classement reste exploitable
// sans comparaison, on ne fait pas échouer la requête.
func CompareRange(primary *PeriodRange, mode string, start, end *time.Time) (*PeriodRange, error) {
	if primary == nil || mode == CompareNone {
		return nil, nil
	}

	switch mode {
	case ComparePrevious:
		// Fenêtre de durée identique, immédiatement avant la primaire.
		e := primary.Start.AddDate(0, 0, -1)
		s := e.AddDate(0, 0, -(primary.Days() - 1))
		return &PeriodRange{Start: s, End: e, Label: "Previous period"}, nil

	case CompareLastYear:
		// Même empan mois/jour, un an plus tôt. Les deux bornes reculent
		// indépendamment, ce qui absorbe les années bissextiles.
		return &PeriodRange{
			Start: primary.Start.AddDate(-1, 0, 0),
			End:   primary.End.AddDate(-1, 0, 0),
			Label: "Last year",
		}, nil

	case CompareCustom:
		if start == nil || end == nil {
			return nil, fmt.Errorf("%w: custom comparison requires start and end", ErrInvalidRange)
		}
		s, e := Day(*start), Day(*end)
		if s.After(e) {
			return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, DayKey(s), DayKey(e))
		}
		return &PeriodRange{Start: s, End: e, Label: "Comparison"}, nil

	default:
		return nil, nil
	}
}
