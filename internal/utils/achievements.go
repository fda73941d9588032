package utils

import (
	"context"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/lib/pq"
)

// GetUserAchievements retourne le score cumulé, le nombre de soumissions
// vivantes et les badges d'un utilisateur
func GetUserAchievements(ctx context.Context, userID string) (*model.UserAchievements, error) {
	ach := &model.UserAchievements{UserID: userID}

	err := database.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(score), 0), COUNT(*)
		FROM submissions
		WHERE user_id = $1 AND deleted_at IS NULL
	`, userID).Scan(&ach.Score, &ach.SubmissionCount)
	if err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, kind, name, description, icon, earned_at
		FROM badges
		WHERE user_id = $1
		ORDER BY earned_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.UserID, &b.Kind, &b.Name, &b.Description, &b.Icon, &b.EarnedAt); err != nil {
			return nil, err
		}
		ach.Badges = append(ach.Badges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Liste compacte des kinds, pratique côté client
	err = database.DB.QueryRow(ctx, `
		SELECT COALESCE(array_agg(kind ORDER BY earned_at), '{}')
		FROM badges
		WHERE user_id = $1
	`, userID).Scan(pq.Array(&ach.BadgeKinds))
	if err != nil {
		return nil, err
	}

	return ach, nil
}
