package api

import (
	"net/http"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/handler"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/middleware"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/pipeline"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Challenges
	r.HandleFunc("/challenges", handler.GetChallenges).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}", handler.GetChallengeById).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}/refresh", handler.RefreshChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges", handler.CreateChallenge).Methods(http.MethodPost)

	// Soumissions. Le corps de l'upload est plafonné avant même le parsing
	// multipart : la marge au-delà de la photo couvre les champs texte.
	authenticatedRoutes.Handle("/challenges/{id}/submissions",
		middleware.MaxBody(http.HandlerFunc(handler.SubmitPhoto), pipeline.MaxImageBytes+1024*1024),
	).Methods(http.MethodPost)
	r.HandleFunc("/feed", handler.GetFeed).Methods(http.MethodGet)
	r.HandleFunc("/submissions/{id}", handler.GetSubmission).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/submissions/{id}", handler.DeleteSubmission).Methods(http.MethodDelete)

	// Votes
	authenticatedRoutes.HandleFunc("/submissions/{id}/vote", handler.VoteSubmission).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/submissions/{id}/vote", handler.UnvoteSubmission).Methods(http.MethodDelete)
	r.HandleFunc("/submissions/{id}/vote", handler.GetVoteStatus).Methods(http.MethodGet)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{challengeId}/leaderboard", handler.GetChallengeLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/achievements", handler.GetUserAchievements).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
