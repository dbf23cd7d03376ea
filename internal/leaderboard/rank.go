package leaderboard

import (
	"math"
	"sort"

	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
)

// RankTotals trie les totaux agrégés par total décroissant, assigne des rangs
// denses 1-based et découpe la page (limit, offset) demandée. Les rangs sont
// globaux sur l'ensemble trié, pas remis à zéro par page.
//
// Ordre des ex æquo : tri stable sans clé secondaire — l'ordre relatif de deux
// totaux égaux est celui de l'itération de la map d'entrée et n'est pas
// garanti. C'est un contrat assumé, pas un oubli : les appelants qui exigent
// un ordre déterministe sous égalité doivent trier leur entrée en amont.
//
// compare, si non nil, est une seconde passe d'agrégation sur la fenêtre de
// comparaison : CompareTotal est alors renseigné pour chaque entrée (0 si
// l'utilisateur est absent de la passe) et ImprovementPct, arrondi à une
// décimale, n'est défini que si CompareTotal > 0.
func RankTotals(totals, compare map[string]AggregatedTotal, limit, offset int) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(totals))
	for _, agg := range totals {
		entries = append(entries, model.LeaderboardEntry{UserID: agg.UserID, Total: agg.Total})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return []model.LeaderboardEntry{}
	}
	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := entries[offset:end]
	for i := range page {
		page[i].Rank = offset + i + 1

		if compare != nil {
			prev := compare[page[i].UserID].Total
			compareTotal := prev
			page[i].CompareTotal = &compareTotal
			if prev > 0 {
				pct := RoundPct(float64(page[i].Total-prev) / float64(prev) * 100)
				page[i].ImprovementPct = &pct
			}
		}
	}

	return page
}

// RankOf calcule la position d'un utilisateur dans le classement complet.
// Un utilisateur absent des totaux est classé dernier + 1, comme l'API
// historique. Percentile vaut 100 pour un classement vide.
func RankOf(totals map[string]AggregatedTotal, userID string) model.UserRank {
	full := RankTotals(totals, nil, 0, 0)

	rank := model.UserRank{
		UserID:     userID,
		Rank:       len(full) + 1,
		TotalUsers: len(full),
		Percentile: 100,
	}
	for _, entry := range full {
		if entry.UserID == userID {
			rank.Rank = entry.Rank
			rank.Total = entry.Total
			break
		}
	}
	if rank.TotalUsers > 0 {
		rank.Percentile = float64(rank.Rank) / float64(rank.TotalUsers) * 100
	}
	return rank
}

// RoundPct arrondit un pourcentage à une décimale, la convention de tout
// l'affichage public.
func RoundPct(pct float64) float64 {
	return math.Round(pct*10) / 10
}
