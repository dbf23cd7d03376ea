package model

// LeaderboardEntry est une ligne de classement.
// Les entrées d'un même classement sont triées par Total décroissant et Rank
// est strictement la position 1-based après tri : deux totaux égaux reçoivent
// des rangs consécutifs distincts (pas de partage de rang).
type LeaderboardEntry struct {
	Rank     int      `json:"rank"`
	UserID   string   `json:"userId"`
	UserName string   `json:"userName,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Total    int      `json:"total"`
	Badges   []string `json:"badges,omitempty"`
	// CompareTotal et ImprovementPct ne sont renseignés que si une période de
	// comparaison a été demandée. ImprovementPct est absent quand le total de
	// comparaison vaut 0 (jamais Inf ni NaN).
	CompareTotal   *int     `json:"compareTotal,omitempty"`
	ImprovementPct *float64 `json:"improvementPct,omitempty"`
}

// UserRank est la position d'un utilisateur dans un classement.
type UserRank struct {
	UserID     string  `json:"userId"`
	Rank       int     `json:"rank"`
	Total      int     `json:"total"`
	TotalUsers int     `json:"totalUsers"`
	Percentile float64 `json:"percentile"` // Top X%
}
