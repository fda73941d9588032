package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/middleware"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/votes"
	"github.com/gorilla/mux"
)

// VoteSubmission ajoute le vote de l'utilisateur sur une soumission.
// Voter deux fois sans retirer le vote est un rejet, pas un double crédit.
func VoteSubmission(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentification requise", err)
		return
	}

	submissionID := mux.Vars(r)["id"]
	ctx := context.Background()

	if err := voteLedger.Cast(ctx, user.ID, submissionID); err != nil {
		switch {
		case errors.Is(err, votes.ErrAlreadyVoted):
			utils.ErrorSimple(w, http.StatusConflict, "vous avez déjà voté pour cette soumission")
		case errors.Is(err, votes.ErrSubmissionNotFound):
			utils.ErrorSimple(w, http.StatusNotFound, "soumission introuvable")
		default:
			utils.Error(w, http.StatusInternalServerError, "impossible d'enregistrer le vote", err)
		}
		return
	}

	// Le score du propriétaire vient de changer : réévaluer ses paliers
	ownerID, err := utils.SubmissionOwner(ctx, submissionID)
	if err == nil {
		if _, err := badgeEngine.GrantEligible(ctx, ownerID); err != nil {
			logger.Error("Impossible d'évaluer les badges de %s: %v", ownerID, err)
		}
	}

	info, err := utils.GetVoteInfo(ctx, &user.ID, submissionID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les votes", err)
		return
	}

	utils.Success(w, info)
}

// UnvoteSubmission retire le vote de l'utilisateur
func UnvoteSubmission(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentification requise", err)
		return
	}

	submissionID := mux.Vars(r)["id"]
	ctx := context.Background()

	if err := voteLedger.Retract(ctx, user.ID, submissionID); err != nil {
		if errors.Is(err, votes.ErrNoSuchVote) {
			utils.ErrorSimple(w, http.StatusConflict, "aucun vote à retirer sur cette soumission")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "impossible de retirer le vote", err)
		return
	}

	info, err := utils.GetVoteInfo(ctx, &user.ID, submissionID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les votes", err)
		return
	}

	utils.Success(w, info)
}

// GetVoteStatus récupère le total de votes et si l'utilisateur courant a voté
func GetVoteStatus(w http.ResponseWriter, r *http.Request) {
	submissionID := mux.Vars(r)["id"]

	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
	}

	info, err := utils.GetVoteInfo(context.Background(), userID, submissionID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les votes", err)
		return
	}

	utils.Success(w, info)
}
