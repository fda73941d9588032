// Package badges définit le catalogue des badges et le moteur de règles qui
// les attribue. Un badge d'un kind donné n'est jamais attribué deux fois au
// même utilisateur : l'insertion repose sur une contrainte d'unicité
// (user_id, kind) et un conflit est traité comme "déjà obtenu".
package badges

import (
	"context"
)

// Kind identifie un type de badge
type Kind string

const (
	// Paliers de score cumulé
	KindScore10   Kind = "score_10"
	KindScore100  Kind = "score_100"
	KindScore1000 Kind = "score_1000"

	// Paliers de nombre de soumissions
	KindSubmissions1   Kind = "submissions_1"
	KindSubmissions10  Kind = "submissions_10"
	KindSubmissions100 Kind = "submissions_100"

	// Classement final d'un challenge
	KindFirstPlace    Kind = "first_place"
	KindSecondPlace   Kind = "second_place"
	KindThirdPlace    Kind = "third_place"
	KindParticipation Kind = "participation"
)

// Definition décrit un badge du catalogue
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Icon        string
}

var catalogue = map[Kind]Definition{
	KindScore10:        {KindScore10, "Bronze Scorer", "Reach a total score of 10", "badge-score-bronze"},
	KindScore100:       {KindScore100, "Silver Scorer", "Reach a total score of 100", "badge-score-silver"},
	KindScore1000:      {KindScore1000, "Gold Scorer", "Reach a total score of 1000", "badge-score-gold"},
	KindSubmissions1:   {KindSubmissions1, "First Steps", "Upload your first photo", "badge-camera-bronze"},
	KindSubmissions10:  {KindSubmissions10, "Regular", "Upload 10 photos", "badge-camera-silver"},
	KindSubmissions100: {KindSubmissions100, "Photographer", "Upload 100 photos", "badge-camera-gold"},
	KindFirstPlace:     {KindFirstPlace, "First Badge", "Finish first in a challenge", "badge-place-1"},
	KindSecondPlace:    {KindSecondPlace, "Second Badge", "Finish second in a challenge", "badge-place-2"},
	KindThirdPlace:     {KindThirdPlace, "Third Badge", "Finish third in a challenge", "badge-place-3"},
	KindParticipation:  {KindParticipation, "Participation Badge", "Take part in a challenge", "badge-participation"},
}

// Lookup retourne la définition d'un kind de badge
func Lookup(kind Kind) (Definition, bool) {
	def, ok := catalogue[kind]
	return def, ok
}

// ForRank retourne le badge de classement correspondant à un rang final
func ForRank(rank int) Kind {
	switch rank {
	case 1:
		return KindFirstPlace
	case 2:
		return KindSecondPlace
	case 3:
		return KindThirdPlace
	default:
		return KindParticipation
	}
}

type metric int

const (
	metricScore metric = iota
	metricSubmissions
)

type thresholdRule struct {
	kind      Kind
	metric    metric
	threshold int
}

var thresholdRules = []thresholdRule{
	{KindScore10, metricScore, 10},
	{KindScore100, metricScore, 100},
	{KindScore1000, metricScore, 1000},
	{KindSubmissions1, metricSubmissions, 1},
	{KindSubmissions10, metricSubmissions, 10},
	{KindSubmissions100, metricSubmissions, 100},
}

// EligibleKinds retourne les badges de palier atteints pour un score cumulé
// et un nombre de soumissions donnés
func EligibleKinds(score, submissions int) []Kind {
	var kinds []Kind
	for _, rule := range thresholdRules {
		value := score
		if rule.metric == metricSubmissions {
			value = submissions
		}
		if value >= rule.threshold {
			kinds = append(kinds, rule.kind)
		}
	}
	return kinds
}

// Store persiste les badges et fournit les statistiques utilisateur
type Store interface {
	// UserStats retourne le score cumulé et le nombre de soumissions vivantes
	UserStats(ctx context.Context, userID string) (score int, submissions int, err error)
	// Insert crée le badge s'il n'existe pas déjà. Retourne false sur conflit.
	Insert(ctx context.Context, userID string, def Definition) (bool, error)
}

// Engine évalue les règles et attribue les badges de façon idempotente
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Grant attribue un badge précis si l'utilisateur ne l'a pas encore.
// Retourne true si le badge vient d'être créé.
func (e *Engine) Grant(ctx context.Context, userID string, kind Kind) (bool, error) {
	def, ok := Lookup(kind)
	if !ok {
		return false, nil
	}
	return e.store.Insert(ctx, userID, def)
}

// GrantEligible évalue tous les paliers pour l'utilisateur et attribue les
// badges manquants. Sûr à rappeler autant de fois que nécessaire.
func (e *Engine) GrantEligible(ctx context.Context, userID string) ([]Kind, error) {
	score, submissions, err := e.store.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	var granted []Kind
	for _, kind := range EligibleKinds(score, submissions) {
		created, err := e.Grant(ctx, userID, kind)
		if err != nil {
			return granted, err
		}
		if created {
			granted = append(granted, kind)
		}
	}
	return granted, nil
}
