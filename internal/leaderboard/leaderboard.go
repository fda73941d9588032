// Package leaderboard agrège les scores des soumissions vivantes en un
// classement par utilisateur.
package leaderboard

import (
	"sort"

	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
)

// Aggregate regroupe les soumissions par utilisateur, somme leurs scores et
// retourne le classement trié par score décroissant. Égalités départagées par
// identifiant utilisateur croissant pour rester déterministe.
func Aggregate(submissions []model.Submission) []model.LeaderboardEntry {
	totals := make(map[string]int)
	for _, s := range submissions {
		if !s.IsLive() {
			continue
		}
		totals[s.UserID] += s.Score
	}

	entries := make([]model.LeaderboardEntry, 0, len(totals))
	for userID, score := range totals {
		entries = append(entries, model.LeaderboardEntry{UserID: userID, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
