package model

import (
	"time"
)

type League struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags,omitempty"`
	Members   int       `json:"members,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
