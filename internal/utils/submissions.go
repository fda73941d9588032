package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	"github.com/jackc/pgx/v5"
)

// ErrSubmissionNotFound : soumission inexistante ou déjà supprimée
var ErrSubmissionNotFound = errors.New("submission not found")

// DeletedPlaceholder remplace le contenu d'une soumission supprimée.
// La ligne est conservée pour l'historique mais ne compte plus au classement.
const DeletedPlaceholder = "[deleted]"

// SoftDeleteSubmission remplace le contenu par un placeholder et marque la
// soumission supprimée. Seul le propriétaire ou un administrateur y est
// autorisé (vérifié par l'appelant).
func SoftDeleteSubmission(ctx context.Context, submissionID, deletedBy string) error {
	res, err := database.DB.Exec(ctx, `
		UPDATE submissions
		SET title = $1, description = $1, image_url = NULL,
		    deleted_at = NOW(), deleted_by = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`, DeletedPlaceholder, deletedBy, submissionID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// SubmissionOwner retourne le propriétaire d'une soumission vivante
func SubmissionOwner(ctx context.Context, submissionID string) (string, error) {
	var ownerID string
	err := database.DB.QueryRow(ctx, `
		SELECT user_id FROM submissions
		WHERE id = $1 AND deleted_at IS NULL
	`, submissionID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSubmissionNotFound
		}
		return "", fmt.Errorf("could not load submission owner: %w", err)
	}
	return ownerID, nil
}
