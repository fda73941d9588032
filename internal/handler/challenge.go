package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/lifecycle"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/middleware"
	model "github.com/MassBabyGeek/SnapQuest-backend/internal/models"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/scanner"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type createChallengeRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	RadiusKm    float64   `json:"radiusKm"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// CreateChallenge crée un nouveau challenge (organisateurs uniquement)
func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentification requise", err)
		return
	}
	if !user.IsAdmin {
		utils.ErrorSimple(w, http.StatusForbidden, "seul un organisateur peut créer un challenge")
		return
	}

	var req createChallengeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "corps de requête invalide", err)
		return
	}

	if req.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "le nom est requis")
		return
	}
	if req.RadiusKm < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "le rayon doit être positif ou nul")
		return
	}
	if !req.EndDate.After(req.StartDate) {
		utils.ErrorSimple(w, http.StatusBadRequest, "la date de fin doit être après la date de début")
		return
	}

	ctx := context.Background()
	challengeID := uuid.NewString()

	// L'état initial découle directement de la fenêtre temporelle
	c := &model.Challenge{StartDate: req.StartDate, EndDate: req.EndDate, Status: model.ChallengeStatusPending}
	status := lifecycle.StateAt(c, time.Now())

	_, err = database.DB.Exec(ctx, `
		INSERT INTO challenges
			(id, name, description, subject, latitude, longitude, radius_km,
			 start_date, end_date, status, rewards_granted, created_by,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, $11, NOW(), NOW())
	`, challengeID, req.Name, req.Description, req.Subject,
		req.Latitude, req.Longitude, req.RadiusKm,
		req.StartDate.UTC(), req.EndDate.UTC(), status, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de créer le challenge", err)
		return
	}

	logger.Success("Challenge %s créé par %s", req.Name, user.ID)

	challenge, err := lifecycleManager.Refresh(ctx, challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger le challenge", err)
		return
	}

	utils.Success(w, challenge)
}

// GetChallenges liste les challenges, avec un filtre de statut optionnel
func GetChallenges(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()
	statusFilter := r.URL.Query().Get("status")

	rows, err := database.DB.Query(ctx, `
		SELECT id, name, description, subject, latitude, longitude, radius_km,
		       start_date, end_date, status, rewards_granted, created_by,
		       created_at, updated_at, deleted_at
		FROM challenges
		WHERE deleted_at IS NULL
		ORDER BY start_date DESC
	`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les challenges", err)
		return
	}
	defer rows.Close()

	now := time.Now()
	challenges := []*model.Challenge{}
	for rows.Next() {
		c, err := scanner.ScanChallenge(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "impossible de lire un challenge", err)
			return
		}

		// L'état affiché suit l'horloge même si le balayage n'est pas
		// encore passé ; la transition persistée (et ses récompenses)
		// reste du ressort du gestionnaire de cycle de vie
		c.Status = lifecycle.StateAt(c, now)

		if statusFilter != "" && c.Status != statusFilter {
			continue
		}
		challenges = append(challenges, c)
	}

	utils.Success(w, challenges)
}

// GetChallengeById récupère un challenge en rafraîchissant d'abord son état
func GetChallengeById(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	challenge, err := lifecycleManager.Refresh(context.Background(), challengeID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "challenge introuvable", err)
		return
	}

	utils.Success(w, challenge)
}

// RefreshChallenge force la mise à jour de l'état d'un challenge et
// retourne son état courant
func RefreshChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	challenge, err := lifecycleManager.Refresh(context.Background(), challengeID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "challenge introuvable", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"id":     challenge.ID,
		"status": challenge.Status,
	})
}

// GetChallengeLeaderboard retourne le classement des soumissions d'un
// challenge (classement final si le challenge est expiré)
func GetChallengeLeaderboard(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["challengeId"]
	ctx := context.Background()

	challenge, err := lifecycleManager.Refresh(ctx, challengeID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "challenge introuvable", err)
		return
	}

	store := utils.DBStore{}
	submissions, err := store.LiveSubmissions(ctx, challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les soumissions", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"challengeId": challenge.ID,
		"status":      challenge.Status,
		"final":       challenge.Status == model.ChallengeStatusExpired,
		"placements":  lifecycle.Rank(submissions),
	})
}
