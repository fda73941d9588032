// Package lifecycle fait avancer les challenges entre les états pending,
// active et expired, et distribue les badges de classement à l'expiration.
// Refresh est idempotent : il peut être appelé à chaque requête sans
// re-classer ni re-récompenser un challenge déjà expiré.
package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/badges"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
)

// StateAt calcule l'état d'un challenge à un instant donné.
// Un challenge déjà expiré ne revient jamais en arrière.
func StateAt(c *model.Challenge, now time.Time) string {
	if c.Status == model.ChallengeStatusExpired {
		return model.ChallengeStatusExpired
	}
	if !now.Before(c.EndDate) {
		return model.ChallengeStatusExpired
	}
	if now.Before(c.StartDate) {
		return model.ChallengeStatusPending
	}
	return model.ChallengeStatusActive
}

// Rank classe les soumissions d'un challenge par score décroissant.
// Le tri est stable : à score égal, la soumission la plus ancienne gagne.
// Les soumissions doivent être fournies par date de création croissante.
func Rank(submissions []model.Submission) []model.ChallengePlacement {
	ranked := make([]model.Submission, len(submissions))
	copy(ranked, submissions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	placements := make([]model.ChallengePlacement, len(ranked))
	for i, s := range ranked {
		placements[i] = model.ChallengePlacement{
			Rank:         i + 1,
			SubmissionID: s.ID,
			UserID:       s.UserID,
			Score:        s.Score,
		}
	}
	return placements
}

// Store est la couche de persistance vue par le gestionnaire de cycle de vie
type Store interface {
	Challenge(ctx context.Context, id string) (*model.Challenge, error)
	SetStatus(ctx context.Context, id, status string) error
	// LiveSubmissions retourne les soumissions vivantes du challenge,
	// triées par date de création croissante
	LiveSubmissions(ctx context.Context, challengeID string) ([]model.Submission, error)
	MarkRewardsGranted(ctx context.Context, id string) error
}

// Manager avance l'état des challenges et déclenche les récompenses
type Manager struct {
	store  Store
	badges *badges.Engine
	now    func() time.Time
}

func NewManager(store Store, engine *badges.Engine) *Manager {
	return &Manager{store: store, badges: engine, now: time.Now}
}

// NewManagerAt permet d'injecter l'horloge, utile pour les tests
func NewManagerAt(store Store, engine *badges.Engine, now func() time.Time) *Manager {
	return &Manager{store: store, badges: engine, now: now}
}

// Refresh recalcule l'état du challenge et, lors du passage à expired,
// distribue les badges de classement. Si une exécution précédente a été
// interrompue au milieu des récompenses, le drapeau rewards_granted reste
// faux et le prochain appel reprend la distribution ; chaque badge étant
// idempotent, rien n'est compté deux fois.
func (m *Manager) Refresh(ctx context.Context, challengeID string) (*model.Challenge, error) {
	c, err := m.store.Challenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	state := StateAt(c, m.now())
	if state != c.Status {
		if err := m.store.SetStatus(ctx, c.ID, state); err != nil {
			return nil, fmt.Errorf("lifecycle: could not update challenge status: %w", err)
		}
		c.Status = state
	}

	if c.Status == model.ChallengeStatusExpired && !c.RewardsGranted {
		if err := m.awardPlacements(ctx, c); err != nil {
			return nil, err
		}
		c.RewardsGranted = true
	}

	return c, nil
}

func (m *Manager) awardPlacements(ctx context.Context, c *model.Challenge) error {
	submissions, err := m.store.LiveSubmissions(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("lifecycle: could not load submissions: %w", err)
	}

	// Les trois premières places reçoivent leur badge de podium, tous les
	// autres participants un badge de participation (une seule fois par
	// utilisateur, même avec plusieurs soumissions classées).
	awarded := make(map[string]bool)
	for _, p := range Rank(submissions) {
		kind := badges.ForRank(p.Rank)
		if kind == badges.KindParticipation && awarded[p.UserID] {
			continue
		}
		awarded[p.UserID] = true
		if _, err := m.badges.Grant(ctx, p.UserID, kind); err != nil {
			return fmt.Errorf("lifecycle: could not grant placement badge: %w", err)
		}
	}

	if err := m.store.MarkRewardsGranted(ctx, c.ID); err != nil {
		return fmt.Errorf("lifecycle: could not mark rewards granted: %w", err)
	}
	return nil
}
