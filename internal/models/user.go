package model

import (
	"time"
)

type UserProfile struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinDate time.Time `json:"joinDate,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// UserRecord est l'instantané des records personnels d'un utilisateur.
// La ligne est maintenue côté store à chaque soumission acceptée ; le moteur
// de classement ne fait que comparer des instantanés avant/après.
type UserRecord struct {
	UserID        string    `json:"userId"`
	BestDayValue  int       `json:"bestDayValue"`
	BestDayDate   time.Time `json:"bestDayDate,omitempty"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
	TotalLifetime int       `json:"totalLifetime"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// UserStats est la vue exposée par GET /users/{userId}/stats.
type UserStats struct {
	UserID        string    `json:"userId"`
	TotalLifetime int       `json:"totalLifetime"`
	BestDayValue  int       `json:"bestDayValue"`
	BestDayDate   time.Time `json:"bestDayDate,omitempty"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
	DaysActive    int       `json:"daysActive"`
	Badges        []string  `json:"badges"`
}
