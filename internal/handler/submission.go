package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/middleware"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/pipeline"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/scanner"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/gorilla/mux"
)

// SubmitPhoto reçoit une photo en multipart et la fait passer par le
// pipeline de validation. Un rejet retourne 422 avec la cause, une panne
// d'oracle 503 (retentable).
func SubmitPhoto(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentification requise", err)
		return
	}

	challengeID := mux.Vars(r)["id"]

	// Garder une marge pour les champs texte du formulaire
	if err := r.ParseMultipartForm(pipeline.MaxImageBytes + 1024*1024); err != nil {
		utils.Error(w, http.StatusBadRequest, "formulaire multipart invalide", err)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "champ image manquant", err)
		return
	}
	defer file.Close()

	// Lire au plus un octet de trop : le pipeline tranche sur la taille
	image, err := io.ReadAll(io.LimitReader(file, pipeline.MaxImageBytes+1))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "impossible de lire l'image", err)
		return
	}

	// Seul le jpg porte les métadonnées attendues
	if http.DetectContentType(image) != "image/jpeg" {
		utils.ErrorSimple(w, http.StatusBadRequest, "la photo doit être au format jpg")
		return
	}

	ctx := context.Background()

	result, err := submitPipeline.Submit(ctx, pipeline.Request{
		UserID:      user.ID,
		ChallengeID: challengeID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Image:       image,
	})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de traiter la soumission", err)
		return
	}

	if !result.Accepted {
		status := http.StatusUnprocessableEntity
		if result.Retryable {
			status = http.StatusServiceUnavailable
		}
		logger.Warning("Soumission rejetée (%s) pour user %s", result.Reason, user.ID)
		utils.JSON(w, status, utils.APIResponse{
			Success: false,
			Error:   result.Reason.Message(),
			Data:    result,
		})
		return
	}

	// La soumission vient d'être créée : évaluer les paliers de badges
	if _, err := badgeEngine.GrantEligible(ctx, user.ID); err != nil {
		logger.Error("Impossible d'évaluer les badges de %s: %v", user.ID, err)
	}

	logger.Success("Soumission %s acceptée pour le challenge %s", result.Submission.ID, challengeID)
	utils.Success(w, result)
}

// GetFeed liste les soumissions vivantes, les plus récentes d'abord
func GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	limit := 50
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	rows, err := database.DB.Query(ctx, `
		SELECT id, user_id, challenge_id, title, description, image_url,
		       latitude, longitude, taken_at, score,
		       created_at, updated_at, deleted_at, deleted_by
		FROM submissions
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger le fil", err)
		return
	}
	defer rows.Close()

	submissions := []interface{}{}
	for rows.Next() {
		s, err := scanner.ScanSubmission(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "impossible de lire une soumission", err)
			return
		}
		submissions = append(submissions, s)
	}

	utils.Success(w, submissions)
}

// GetSubmission récupère une soumission avec son état de vote
func GetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := mux.Vars(r)["id"]
	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		SELECT id, user_id, challenge_id, title, description, image_url,
		       latitude, longitude, taken_at, score,
		       created_at, updated_at, deleted_at, deleted_by
		FROM submissions
		WHERE id = $1 AND deleted_at IS NULL
	`, submissionID)

	s, err := scanner.ScanSubmission(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "soumission introuvable", err)
		return
	}

	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
	}

	votes, err := utils.GetVoteInfo(ctx, userID, submissionID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les votes", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"submission": s,
		"votes":      votes,
	})
}

// DeleteSubmission remplace le contenu d'une soumission par un placeholder
// (soft delete). Autorisé au propriétaire et aux administrateurs. Les badges
// déjà obtenus grâce à cette soumission restent acquis ; son score ne compte
// plus au classement.
func DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentification requise", err)
		return
	}

	submissionID := mux.Vars(r)["id"]
	ctx := context.Background()

	ownerID, err := utils.SubmissionOwner(ctx, submissionID)
	if err != nil {
		if errors.Is(err, utils.ErrSubmissionNotFound) {
			utils.ErrorSimple(w, http.StatusNotFound, "soumission introuvable")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "impossible de charger la soumission", err)
		return
	}

	if ownerID != user.ID && !user.IsAdmin {
		utils.ErrorSimple(w, http.StatusForbidden, "seul le propriétaire ou un administrateur peut supprimer")
		return
	}

	if err := utils.SoftDeleteSubmission(ctx, submissionID, user.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de supprimer la soumission", err)
		return
	}

	// La ligne est marquée supprimée, l'image n'a plus de raison d'exister
	if imageStore != nil {
		if err := imageStore.DeleteSubmissionImage(ctx, submissionID); err != nil {
			logger.Warning("Impossible de supprimer l'image de %s: %v", submissionID, err)
		}
	}

	utils.Message(w, "soumission supprimée")
}
