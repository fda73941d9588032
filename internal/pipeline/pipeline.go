// Package pipeline orchestre la validation d'une soumission photo :
// challenge actif → taille → métadonnées → zone et fenêtre temporelle →
// sujet. La chaîne s'arrête à la première étape qui échoue et rien n'est
// persisté tant que toutes les étapes n'ont pas réussi.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/geo"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/metadata"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/vision"
)

// MaxImageBytes : taille maximale acceptée pour une photo (5 MiB)
const MaxImageBytes = 5 * 1024 * 1024

// Reason identifie la cause d'un rejet, destinée au message utilisateur
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonChallengeNotActive Reason = "challenge_not_active"
	ReasonImageTooLarge      Reason = "image_too_large"
	ReasonNoMetadata         Reason = "no_metadata"
	ReasonMissingGPS         Reason = "missing_gps"
	ReasonMissingDatetime    Reason = "missing_datetime"
	// Zone et fenêtre temporelle partagent un seul code de rejet
	ReasonOutOfBoundsOrWindow Reason = "out_of_bounds_or_window"
	ReasonSubjectMismatch     Reason = "subject_mismatch"
	// Seul rejet que l'appelant peut légitimement retenter
	ReasonOracleUnavailable Reason = "oracle_unavailable"
)

// Message retourne le texte utilisateur associé à une cause de rejet
func (r Reason) Message() string {
	switch r {
	case ReasonChallengeNotActive:
		return "This challenge is not active right now."
	case ReasonImageTooLarge:
		return "The photo must be smaller than 5 MiB."
	case ReasonNoMetadata:
		return "No metadata could be found in the photo. Please ensure GPS is on and take the photo again."
	case ReasonMissingGPS:
		return "Location data could not be found. Please ensure GPS is on and take the photo again."
	case ReasonMissingDatetime:
		return "The time the photo was taken could not be found."
	case ReasonOutOfBoundsOrWindow:
		return "The photo was not taken in the right place or at the right time."
	case ReasonSubjectMismatch:
		return "The photo does not seem to show the challenge subject."
	case ReasonOracleUnavailable:
		return "The photo could not be analysed right now, please try again."
	default:
		return ""
	}
}

// Result est le verdict d'une tentative de soumission
type Result struct {
	Accepted   bool              `json:"accepted"`
	Reason     Reason            `json:"reason,omitempty"`
	Retryable  bool              `json:"retryable,omitempty"`
	Submission *model.Submission `json:"submission,omitempty"`
}

func reject(reason Reason) *Result {
	return &Result{Reason: reason, Retryable: reason == ReasonOracleUnavailable}
}

// ChallengeRefresher met à jour puis retourne le challenge visé.
// Implémenté par lifecycle.Manager.
type ChallengeRefresher interface {
	Refresh(ctx context.Context, challengeID string) (*model.Challenge, error)
}

// SubjectVerifier vérifie que la photo montre bien le sujet requis.
// Implémenté par vision.Verifier.
type SubjectVerifier interface {
	Verify(ctx context.Context, image []byte, subject string) (bool, error)
}

// Store persiste une soumission acceptée
type Store interface {
	CreateSubmission(ctx context.Context, s *model.Submission) error
}

// Uploader stocke la photo d'une soumission acceptée et retourne son URL.
// DeleteSubmissionImage sert au nettoyage si la persistance échoue ensuite.
type Uploader interface {
	UploadSubmissionImage(ctx context.Context, image []byte, submissionID string) (string, error)
	DeleteSubmissionImage(ctx context.Context, submissionID string) error
}

// Request est une tentative de soumission entrante
type Request struct {
	UserID      string
	ChallengeID string
	Title       string
	Description string
	Image       []byte
}

// Pipeline relie les collaborateurs de validation entre eux
type Pipeline struct {
	challenges ChallengeRefresher
	verifier   SubjectVerifier
	store      Store
	uploader   Uploader
	extract    func(image []byte) (*metadata.PhotoMeta, error)
}

func New(challenges ChallengeRefresher, verifier SubjectVerifier, store Store, uploader Uploader) *Pipeline {
	return &Pipeline{
		challenges: challenges,
		verifier:   verifier,
		store:      store,
		uploader:   uploader,
		extract:    metadata.Extract,
	}
}

// Submit déroule les étapes de validation dans l'ordre et, si tout passe,
// persiste la soumission avec un score initial de 0. Un rejet retourne un
// Result avec sa cause et une erreur nil ; seules les pannes inattendues
// (stockage, upload) remontent en erreur.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Result, error) {
	challenge, err := p.challenges.Refresh(ctx, req.ChallengeID)
	if err != nil {
		return nil, fmt.Errorf("pipeline: could not refresh challenge: %w", err)
	}
	if challenge.Status != model.ChallengeStatusActive {
		return reject(ReasonChallengeNotActive), nil
	}

	if len(req.Image) > MaxImageBytes {
		return reject(ReasonImageTooLarge), nil
	}

	meta, err := p.extract(req.Image)
	if err != nil {
		return rejectForMetadata(err)
	}

	center := geo.Point{Latitude: challenge.Latitude, Longitude: challenge.Longitude}
	coords := geo.Point{Latitude: meta.Latitude, Longitude: meta.Longitude}
	if !geo.Validate(center, coords, challenge.RadiusKm, meta.TakenAt, challenge.StartDate, challenge.EndDate) {
		return reject(ReasonOutOfBoundsOrWindow), nil
	}

	ok, err := p.verifier.Verify(ctx, req.Image, challenge.Subject)
	if err != nil {
		if errors.Is(err, vision.ErrOracleUnavailable) {
			return reject(ReasonOracleUnavailable), nil
		}
		return nil, fmt.Errorf("pipeline: subject verification failed: %w", err)
	}
	if !ok {
		return reject(ReasonSubjectMismatch), nil
	}

	submission := &model.Submission{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		ChallengeID: req.ChallengeID,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    meta.Latitude,
		Longitude:   meta.Longitude,
		TakenAt:     meta.TakenAt,
		Score:       0,
		CreatedAt:   time.Now().UTC(),
	}

	if p.uploader != nil {
		url, err := p.uploader.UploadSubmissionImage(ctx, req.Image, submission.ID)
		if err != nil {
			return nil, fmt.Errorf("pipeline: could not store image: %w", err)
		}
		submission.ImageURL = url
	}

	if err := p.store.CreateSubmission(ctx, submission); err != nil {
		// Ne pas laisser d'image orpheline si la ligne n'existe pas
		if p.uploader != nil {
			_ = p.uploader.DeleteSubmissionImage(ctx, submission.ID)
		}
		return nil, fmt.Errorf("pipeline: could not persist submission: %w", err)
	}

	return &Result{Accepted: true, Submission: submission}, nil
}

func rejectForMetadata(err error) (*Result, error) {
	var missing *metadata.MissingFieldError
	switch {
	case errors.Is(err, metadata.ErrNoMetadata):
		return reject(ReasonNoMetadata), nil
	case errors.As(err, &missing):
		if missing.Field == "datetime" {
			return reject(ReasonMissingDatetime), nil
		}
		return reject(ReasonMissingGPS), nil
	default:
		return nil, fmt.Errorf("pipeline: could not read metadata: %w", err)
	}
}
