// Package votes tient le registre des votes et leur effet sur le score des
// soumissions. Un utilisateur a au plus un vote actif par soumission, et
// chaque vote vaut exactement Step points : posé une fois, repris une fois.
package votes

import (
	"context"
	"errors"
)

// Step : points ajoutés ou retirés au score d'une soumission par vote
const Step = 10

var (
	// ErrAlreadyVoted : l'utilisateur a déjà un vote actif sur cette soumission
	ErrAlreadyVoted = errors.New("votes: already voted on this submission")
	// ErrNoSuchVote : pas de vote à retirer
	ErrNoSuchVote = errors.New("votes: no vote to retract on this submission")
	// ErrSubmissionNotFound : soumission inexistante ou supprimée
	ErrSubmissionNotFound = errors.New("votes: submission not found")
)

// Tx regroupe les opérations d'un vote, exécutées dans une même transaction
type Tx interface {
	// SubmissionLive indique si la soumission existe et n'est pas supprimée
	SubmissionLive(ctx context.Context, submissionID string) (bool, error)
	// InsertVote retourne false si le vote existe déjà
	InsertVote(ctx context.Context, userID, submissionID string) (bool, error)
	// DeleteVote retourne false s'il n'y avait pas de vote à retirer
	DeleteVote(ctx context.Context, userID, submissionID string) (bool, error)
	// AdjustScore ajoute delta au score d'une soumission vivante
	AdjustScore(ctx context.Context, submissionID string, delta int) error
}

// Store ouvre une transaction de vote. Une erreur de fn annule tout.
type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
}

// Ledger applique les règles de vote au-dessus du Store
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Cast enregistre le vote de l'utilisateur et crédite la soumission de Step
// points. L'insertion fait office de verrou : voter deux fois sans retirer
// le vote est un rejet, jamais un double crédit.
func (l *Ledger) Cast(ctx context.Context, userID, submissionID string) error {
	return l.store.InTx(ctx, func(tx Tx) error {
		live, err := tx.SubmissionLive(ctx, submissionID)
		if err != nil {
			return err
		}
		if !live {
			return ErrSubmissionNotFound
		}

		inserted, err := tx.InsertVote(ctx, userID, submissionID)
		if err != nil {
			return err
		}
		if !inserted {
			return ErrAlreadyVoted
		}

		return tx.AdjustScore(ctx, submissionID, Step)
	})
}

// Retract retire le vote de l'utilisateur et débite la soumission de Step
// points. Retirer un vote inexistant est un rejet, le score ne bouge pas.
func (l *Ledger) Retract(ctx context.Context, userID, submissionID string) error {
	return l.store.InTx(ctx, func(tx Tx) error {
		removed, err := tx.DeleteVote(ctx, userID, submissionID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNoSuchVote
		}

		return tx.AdjustScore(ctx, submissionID, -Step)
	})
}
