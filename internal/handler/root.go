package handler

import (
	"net/http"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "SnapQuest API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"challenges": []map[string]string{
				{"method": "GET", "path": "/challenges", "description": "Lister les challenges (param: status)"},
				{"method": "GET", "path": "/challenges/{id}", "description": "Récupérer un challenge (état rafraîchi)"},
				{"method": "POST", "path": "/challenges", "description": "Créer un challenge (organisateur)"},
				{"method": "POST", "path": "/challenges/{id}/refresh", "description": "Rafraîchir l'état d'un challenge"},
				{"method": "POST", "path": "/challenges/{id}/submissions", "description": "Soumettre une photo (multipart: image, title, description)"},
				{"method": "GET", "path": "/challenges/{challengeId}/leaderboard", "description": "Classement du challenge"},
			},
			"submissions": []map[string]string{
				{"method": "GET", "path": "/feed", "description": "Fil des soumissions (param: limit)"},
				{"method": "GET", "path": "/submissions/{id}", "description": "Récupérer une soumission et ses votes"},
				{"method": "DELETE", "path": "/submissions/{id}", "description": "Supprimer une soumission (soft delete)"},
				{"method": "POST", "path": "/submissions/{id}/vote", "description": "Voter pour une soumission"},
				{"method": "DELETE", "path": "/submissions/{id}/vote", "description": "Retirer son vote"},
				{"method": "GET", "path": "/submissions/{id}/vote", "description": "État des votes"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (param: limit)"},
				{"method": "GET", "path": "/users/{userId}/achievements", "description": "Score, soumissions et badges d'un utilisateur"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour SnapQuest - Challenges photo géolocalisés",
			"contact":     "support@snapquest.app",
		},
	}

	utils.Success(w, routes)
}

// HealthCheck répond si le serveur est vivant
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]string{"status": "ok"})
}
