package model

import "time"

// Vote représente le vote d'un utilisateur sur une soumission.
// Un utilisateur ne peut avoir qu'un seul vote actif par soumission
// (contrainte d'unicité sur user_id + submission_id).
type Vote struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	SubmissionID string    `json:"submissionId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VoteInfo contient l'état de vote pour une soumission donnée
type VoteInfo struct {
	TotalVotes int  `json:"totalVotes"`
	UserVoted  bool `json:"userVoted"`
}
