package utils

import (
	"context"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/leaderboard"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
)

// ComputeLeaderboard agrège les scores de toutes les soumissions vivantes
// et retourne le classement global. Recalculé à chaque appel, jamais mis
// en cache.
func ComputeLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, score
		FROM submissions
		WHERE deleted_at IS NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.Score); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := leaderboard.Aggregate(submissions)
	if err := fillUserNames(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// fillUserNames complète les entrées du classement avec le nom des
// utilisateurs
func fillUserNames(ctx context.Context, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}

	rows, err := database.DB.Query(ctx, `
		SELECT id, name FROM users WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range entries {
		entries[i].UserName = names[entries[i].UserID]
	}
	return nil
}
