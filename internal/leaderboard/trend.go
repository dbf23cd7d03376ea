package leaderboard

import (
	"math"
	"time"

	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
)

// Directions de tendance.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// trendDeadbandPct : en-deçà de ±5% de variation, la tendance est "stable".
const trendDeadbandPct = 5.0

// Granularités de série acceptées par BuildSeries.
const (
	BucketWeek  = "week"
	BucketMonth = "month"
)

// TrendDataPoint est un bucket d'une série de tendance.
type TrendDataPoint struct {
	Label        string    `json:"label"`
	Value        int       `json:"value"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	DaysWithData int       `json:"daysWithData"`
	TotalDays    int       `json:"totalDays"`
}

// TrendSummary est la synthèse d'une série de buckets.
type TrendSummary struct {
	Total            int     `json:"total"`
	Average          int     `json:"average"` // moyenne arrondie à l'entier
	Best             int     `json:"best"`
	BestPeriodLabel  string  `json:"bestPeriodLabel"`
	Worst            int     `json:"worst"`
	WorstPeriodLabel string  `json:"worstPeriodLabel"`
	Trend            string  `json:"trend"`
	PercentChange    float64 `json:"percentChange"`
}

// BuildSeries construit une série de buckets consécutifs (semaine ou mois) se
// terminant aujourd'hui, par application répétée résolution de période +
// agrégation sur les mêmes enregistrements. Le dernier bucket se termine sur
// today ; un bucket sans donnée vaut simplement zéro.
func BuildSeries(records []model.ActivityRecord, userID, bucket string, count int, today time.Time, opts AggregateOptions) []TrendDataPoint {
	if count <= 0 {
		return []TrendDataPoint{}
	}

	t := Day(today)
	points := make([]TrendDataPoint, 0, count)

	for i := count - 1; i >= 0; i-- {
		var rng PeriodRange

		switch bucket {
		case BucketMonth:
			first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
			rng = PeriodRange{
				Start: first,
				End:   first.AddDate(0, 1, -1),
				Label: first.Format("Jan 2006"),
			}
			if i == 0 {
				// Le mois courant s'arrête à aujourd'hui.
				rng.End = t
			}
		default: // BucketWeek
			end := t.AddDate(0, 0, -7*i)
			rng = PeriodRange{
				Start: end.AddDate(0, 0, -6),
				End:   end,
				Label: end.AddDate(0, 0, -6).Format("Jan 02"),
			}
		}

		agg := Aggregate(records, &rng, opts)[userID]
		points = append(points, TrendDataPoint{
			Label:        rng.Label,
			Value:        agg.Total,
			PeriodStart:  rng.Start,
			PeriodEnd:    rng.End,
			DaysWithData: agg.DistinctDays,
			TotalDays:    rng.Days(),
		})
	}

	return points
}

// SummarizeTrend réduit une série ordonnée de buckets en statistiques de
// synthèse. PercentChange compare le premier et le dernier bucket et vaut 0
// si le premier bucket est nul (pas de division par zéro). En cas d'égalité
// sur best/worst, le premier bucket rencontré gagne.
func SummarizeTrend(points []TrendDataPoint) TrendSummary {
	if len(points) == 0 {
		return TrendSummary{Trend: TrendStable}
	}

	summary := TrendSummary{
		Best:             points[0].Value,
		BestPeriodLabel:  points[0].Label,
		Worst:            points[0].Value,
		WorstPeriodLabel: points[0].Label,
	}

	for _, p := range points {
		summary.Total += p.Value
		if p.Value > summary.Best {
			summary.Best = p.Value
			summary.BestPeriodLabel = p.Label
		}
		if p.Value < summary.Worst {
			summary.Worst = p.Value
			summary.WorstPeriodLabel = p.Label
		}
	}

	summary.Average = int(math.Round(float64(summary.Total) / float64(len(points))))

	first := points[0].Value
	last := points[len(points)-1].Value
	if first != 0 {
		summary.PercentChange = RoundPct(float64(last-first) / float64(first) * 100)
	}

	switch {
	case summary.PercentChange > trendDeadbandPct:
		summary.Trend = TrendUp
	case summary.PercentChange < -trendDeadbandPct:
		summary.Trend = TrendDown
	default:
		summary.Trend = TrendStable
	}

	return summary
}
