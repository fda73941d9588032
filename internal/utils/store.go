package utils

import (
	"context"
	"database/sql"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/badges"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/google/uuid"
)

// DBStore branche le pipeline de validation, le gestionnaire de cycle de vie
// et le moteur de badges sur PostgreSQL
type DBStore struct{}

// CreateSubmission persiste une soumission acceptée (pipeline.Store)
func (DBStore) CreateSubmission(ctx context.Context, s *model.Submission) error {
	_, err := database.DB.Exec(ctx, `
		INSERT INTO submissions
			(id, user_id, challenge_id, title, description, image_url,
			 latitude, longitude, taken_at, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`, s.ID, s.UserID, s.ChallengeID, s.Title, s.Description, s.ImageURL,
		s.Latitude, s.Longitude, s.TakenAt, s.Score)
	return err
}

// Challenge charge un challenge par son identifiant (lifecycle.Store)
func (DBStore) Challenge(ctx context.Context, id string) (*model.Challenge, error) {
	var c model.Challenge
	var createdBy sql.NullString

	err := database.DB.QueryRow(ctx, `
		SELECT id, name, description, subject, latitude, longitude, radius_km,
		       start_date, end_date, status, rewards_granted, created_by,
		       created_at, updated_at
		FROM challenges
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Subject,
		&c.Latitude, &c.Longitude, &c.RadiusKm,
		&c.StartDate, &c.EndDate, &c.Status, &c.RewardsGranted,
		&createdBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedBy = NullStringToString(createdBy)
	return &c, nil
}

// SetStatus met à jour l'état d'un challenge. Un challenge expiré ne
// revient jamais à un état antérieur.
func (DBStore) SetStatus(ctx context.Context, id, status string) error {
	_, err := database.DB.Exec(ctx, `
		UPDATE challenges SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $3
	`, status, id, model.ChallengeStatusExpired)
	return err
}

// LiveSubmissions retourne les soumissions vivantes d'un challenge,
// par date de création croissante (ordre requis pour le départage)
func (DBStore) LiveSubmissions(ctx context.Context, challengeID string) ([]model.Submission, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, challenge_id, score, created_at
		FROM submissions
		WHERE challenge_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.ChallengeID, &s.Score, &s.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// MarkRewardsGranted note que les badges de classement ont été distribués
func (DBStore) MarkRewardsGranted(ctx context.Context, id string) error {
	_, err := database.DB.Exec(ctx, `
		UPDATE challenges SET rewards_granted = true, updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}

// UserStats retourne le score cumulé et le nombre de soumissions vivantes
// d'un utilisateur (badges.Store). Les soumissions supprimées ne comptent
// plus, mais les badges déjà obtenus ne sont jamais repris.
func (DBStore) UserStats(ctx context.Context, userID string) (int, int, error) {
	var score, count int
	err := database.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(score), 0), COUNT(*)
		FROM submissions
		WHERE user_id = $1 AND deleted_at IS NULL
	`, userID).Scan(&score, &count)
	if err != nil {
		return 0, 0, err
	}
	return score, count, nil
}

// Insert crée un badge si l'utilisateur ne l'a pas déjà (badges.Store).
// Le conflit d'unicité (user_id, kind) est traité comme "déjà obtenu",
// jamais comme une erreur : deux évaluations concurrentes ne créent
// qu'un seul badge.
func (DBStore) Insert(ctx context.Context, userID string, def badges.Definition) (bool, error) {
	res, err := database.DB.Exec(ctx, `
		INSERT INTO badges (id, user_id, kind, name, description, icon, earned_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, kind) DO NOTHING
	`, uuid.NewString(), userID, string(def.Kind), def.Name, def.Description, def.Icon)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
