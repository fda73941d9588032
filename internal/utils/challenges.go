package utils

import (
	"context"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
)

// StaleChallengeIDs retourne les challenges dont l'état affiché ne
// correspond plus à l'horloge : pending dont la fenêtre a commencé, ou
// actifs/pending dont la fenêtre est finie. Utilisé par le balayage
// périodique pour pousser le cycle de vie sans attendre une requête.
func StaleChallengeIDs(ctx context.Context) ([]string, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id FROM challenges
		WHERE deleted_at IS NULL
		  AND (
			(status = $1 AND start_date <= NOW())
			OR (status <> $2 AND end_date <= NOW())
			OR (status = $2 AND rewards_granted = false)
		  )
	`, model.ChallengeStatusPending, model.ChallengeStatusExpired)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
