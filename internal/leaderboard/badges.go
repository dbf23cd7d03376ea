package leaderboard

// Identifiants de badges.
const (
	BadgeMillionClub = "million_club"
	Badge500kClub    = "500k_club"
	Badge100kClub    = "100k_club"

	BadgeStreak30 = "streak_30"
	BadgeStreak7  = "streak_7"
	BadgeStreak3  = "streak_3"

	BadgeLegend365 = "legend_365"
	BadgeCenturion = "centurion"
)

// Seuils des paliers. Dans un palier, seul le plus haut seuil atteint est
// émis ; les paliers entre eux sont cumulatifs.
const (
	lifetimeMillionClub = 1_000_000
	lifetime500kClub    = 500_000
	lifetime100kClub    = 100_000

	streakThreshold30 = 30
	streakThreshold7  = 7
	streakThreshold3  = 3

	longestStreakLegend    = 365
	longestStreakCenturion = 100
)

// BadgesFor retourne l'ensemble des badges acquis pour un total lifetime et
// des compteurs de streak donnés. Fonction pure et totale : pas d'I/O, pas
// d'état, testable par table.
func BadgesFor(totalLifetime, currentStreak, longestStreak int) []string {
	badges := make([]string, 0, 3)

	// Palier total lifetime : le plus haut seuil gagne.
	switch {
	case totalLifetime >= lifetimeMillionClub:
		badges = append(badges, BadgeMillionClub)
	case totalLifetime >= lifetime500kClub:
		badges = append(badges, Badge500kClub)
	case totalLifetime >= lifetime100kClub:
		badges = append(badges, Badge100kClub)
	}

	// Palier streak courant.
	switch {
	case currentStreak >= streakThreshold30:
		badges = append(badges, BadgeStreak30)
	case currentStreak >= streakThreshold7:
		badges = append(badges, BadgeStreak7)
	case currentStreak >= streakThreshold3:
		badges = append(badges, BadgeStreak3)
	}

	// Palier meilleure streak (acquis à vie, indépendant de la streak courante).
	switch {
	case longestStreak >= longestStreakLegend:
		badges = append(badges, BadgeLegend365)
	case longestStreak >= longestStreakCenturion:
		badges = append(badges, BadgeCenturion)
	}

	return badges
}
