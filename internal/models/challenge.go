package model

import (
	"time"
)

// Statuts du cycle de vie d'un challenge
const (
	ChallengeStatusPending = "pending"
	ChallengeStatusActive  = "active"
	ChallengeStatusExpired = "expired"
)

// Challenge représente un défi photo borné dans l'espace et le temps
type Challenge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"` // "" ou "none" = pas de sujet requis, "group" = photo de groupe
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	RadiusKm    float64   `json:"radiusKm"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"` // borne exclusive
	Status      string    `json:"status"`
	// RewardsGranted passe à true une fois les badges de classement distribués.
	// Permet de rejouer l'expiration sans doubler les récompenses.
	RewardsGranted bool       `json:"rewardsGranted"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
}
