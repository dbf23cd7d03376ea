package model

import (
	"time"
)

// ActivityRecord représente une soumission brute de pas pour un jour calendaire.
// Plusieurs enregistrements peuvent exister pour le même couple (user, jour),
// par exemple une correction renvoyée par l'utilisateur : rien n'est supprimé,
// c'est l'agrégateur qui déduplique (max du jour).
type ActivityRecord struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	ForDate time.Time `json:"forDate"` // date calendaire, sans heure
	Steps   int       `json:"steps"`
	// Verified est tri-état : true (recoupé avec la source), false (contesté),
	// nil (pas encore vérifié).
	Verified  *bool     `json:"verified,omitempty"`
	Source    string    `json:"source,omitempty"` // manual, healthkit, googlefit...
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// SubmitActivityRequest est le payload de POST /activities.
type SubmitActivityRequest struct {
	ForDate string `json:"forDate"` // YYYY-MM-DD
	Steps   int    `json:"steps"`
	Source  string `json:"source,omitempty"`
}
