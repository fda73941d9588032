package model

import (
	"time"
)

// UserProfile représente un utilisateur de la plateforme
type UserProfile struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar,omitempty"`
	Score     int        `json:"score"`
	IsAdmin   bool       `json:"isAdmin"`
	JoinDate  time.Time  `json:"joinDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
