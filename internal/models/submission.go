package model

import (
	"time"
)

// Submission représente une photo acceptée pour un challenge
type Submission struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ChallengeID string     `json:"challengeId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	TakenAt     time.Time  `json:"takenAt"` // date de prise de vue (UTC, extraite des métadonnées)
	Score       int        `json:"score"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	DeletedBy   *string    `json:"deletedBy,omitempty"`
}

// IsLive indique si la soumission compte encore pour le classement
func (s *Submission) IsLive() bool {
	return s.DeletedAt == nil
}
