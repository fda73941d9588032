package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/middleware"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Signup crée un compte utilisateur. Le mot de passe est haché avec bcrypt
// (sel inclus) avant d'être stocké.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "corps de requête invalide", err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		utils.ErrorSimple(w, http.StatusBadRequest, "nom, email et mot de passe (8 caractères minimum) requis")
		return
	}

	ctx := context.Background()

	// Vérifier l'unicité de l'email
	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`,
		req.Email,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de vérifier l'email", err)
		return
	}
	if exists {
		utils.ErrorSimple(w, http.StatusConflict, "un compte existe déjà avec cet email")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de hacher le mot de passe", err)
		return
	}

	userID := uuid.NewString()
	now := time.Now()
	_, err = database.DB.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, is_admin, join_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $5, $5)
	`, userID, req.Name, req.Email, string(hash), now)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de créer l'utilisateur", err)
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, userID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de créer la session", err)
		return
	}

	logger.Success("Nouvel utilisateur inscrit: %s", req.Email)
	utils.Success(w, authResponse{Token: token, ID: userID, Name: req.Name, Email: req.Email})
}

// Login authentifie un utilisateur et ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "corps de requête invalide", err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx := context.Background()

	var userID, name, passwordHash string
	err := database.DB.QueryRow(ctx, `
		SELECT id, name, password_hash FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`, req.Email).Scan(&userID, &name, &passwordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			utils.ErrorSimple(w, http.StatusUnauthorized, "email ou mot de passe incorrect")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "impossible de charger l'utilisateur", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "email ou mot de passe incorrect")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, userID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible de créer la session", err)
		return
	}

	utils.Success(w, authResponse{Token: token, ID: userID, Name: name, Email: req.Email})
}

// Logout invalide la session courante
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentification requise", err)
		return
	}

	if err := utils.InvalidateSession(context.Background(), token); err != nil {
		utils.Error(w, http.StatusInternalServerError, "impossible d'invalider la session", err)
		return
	}

	utils.Message(w, "déconnecté")
}
