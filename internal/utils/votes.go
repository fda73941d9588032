package utils

import (
	"context"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/votes"
	"github.com/jackc/pgx/v5"
)

// VoteStore exécute les opérations de vote dans une transaction pgx
// (votes.Store). L'insertion, le retrait et l'ajustement du score d'un
// même vote partagent la transaction : tout passe ou rien ne passe.
type VoteStore struct{}

func (VoteStore) InTx(ctx context.Context, fn func(votes.Tx) error) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(voteTx{tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type voteTx struct {
	tx pgx.Tx
}

func (t voteTx) SubmissionLive(ctx context.Context, submissionID string) (bool, error) {
	var live bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM submissions
			WHERE id = $1 AND deleted_at IS NULL
		)
	`, submissionID).Scan(&live)
	return live, err
}

func (t voteTx) InsertVote(ctx context.Context, userID, submissionID string) (bool, error) {
	// La contrainte d'unicité (user_id, submission_id) fait office de verrou
	res, err := t.tx.Exec(ctx, `
		INSERT INTO votes (user_id, submission_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, submission_id) DO NOTHING
	`, userID, submissionID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (t voteTx) DeleteVote(ctx context.Context, userID, submissionID string) (bool, error) {
	res, err := t.tx.Exec(ctx, `
		DELETE FROM votes
		WHERE user_id = $1 AND submission_id = $2
	`, userID, submissionID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (t voteTx) AdjustScore(ctx context.Context, submissionID string, delta int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE submissions SET score = score + $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, delta, submissionID)
	return err
}

// GetVoteInfo récupère le total de votes d'une soumission et si
// l'utilisateur courant a voté
func GetVoteInfo(ctx context.Context, userID *string, submissionID string) (*model.VoteInfo, error) {
	var info model.VoteInfo

	err := database.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM votes WHERE submission_id = $1
	`, submissionID).Scan(&info.TotalVotes)
	if err != nil {
		return nil, err
	}

	if userID != nil && *userID != "" {
		err = database.DB.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM votes
				WHERE user_id = $1 AND submission_id = $2
			)
		`, *userID, submissionID).Scan(&info.UserVoted)
		if err != nil {
			return nil, err
		}
	}

	return &info, nil
}
