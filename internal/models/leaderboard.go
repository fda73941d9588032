package model

// LeaderboardEntry représente la position d'un utilisateur au classement.
// Dérivé à la demande, jamais persisté.
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
	Rank     int    `json:"rank"`
	Score    int    `json:"score"`
}

// ChallengePlacement représente le rang final d'une soumission dans un
// challenge expiré
type ChallengePlacement struct {
	Rank         int    `json:"rank"`
	SubmissionID string `json:"submissionId"`
	UserID       string `json:"userId"`
	Score        int    `json:"score"`
}
