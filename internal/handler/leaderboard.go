package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetLeaderboard retourne le classement général, recalculé à la demande
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := utils.ComputeLeaderboard(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de calculer le classement", err)
		return
	}

	limit := len(entries)
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l < limit {
		limit = l
	}

	utils.Success(w, entries[:limit])
}

// GetUserAchievements retourne le score, le nombre de soumissions et les
// badges d'un utilisateur
func GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ach, err := utils.GetUserAchievements(context.Background(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de charger les succès", err)
		return
	}

	utils.Success(w, ach)
}
