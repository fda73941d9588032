package model

import "time"

// Badge représente une récompense obtenue par un utilisateur.
// Au plus un badge d'un kind donné par utilisateur.
type Badge struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// UserAchievements regroupe le score, le nombre de soumissions et les badges
type UserAchievements struct {
	UserID          string   `json:"userId"`
	Score           int      `json:"score"`
	SubmissionCount int      `json:"submissionCount"`
	Badges          []Badge  `json:"badges"`
	BadgeKinds      []string `json:"badgeKinds"`
}
