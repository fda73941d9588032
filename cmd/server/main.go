package main

import (
	"net/http"
	"os"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/api"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/badges"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/config"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/database"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/handler"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/lifecycle"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/middleware"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/pipeline"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/scheduler"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/services"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/vision"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/votes"
	"github.com/joho/godotenv"
)

func main() {
	// Charger .env si présent, sinon variables d'environnement seules
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Success("Connected to PostgreSQL")

	// Stockage des photos acceptées
	cloudinaryService, err := services.NewCloudinaryService(cfg)
	if err != nil {
		logger.Error("Cloudinary initialization failed: %v", err)
		os.Exit(1)
	}

	// Oracles de vérification du sujet (service d'inférence externe)
	visionClient := vision.NewClient(cfg.VisionURL, cfg.VisionTimeout)
	verifier := vision.NewVerifier(visionClient, visionClient, visionClient)

	// Câblage du coeur : badges, cycle de vie, pipeline de validation, votes
	store := utils.DBStore{}
	badgeEngine := badges.NewEngine(store)
	lifecycleManager := lifecycle.NewManager(store, badgeEngine)
	submitPipeline := pipeline.New(lifecycleManager, verifier, store, cloudinaryService)
	voteLedger := votes.NewLedger(utils.VoteStore{})

	handler.Setup(badgeEngine, lifecycleManager, submitPipeline, voteLedger, cloudinaryService)

	// Balayage périodique des challenges à expirer
	cronRunner, err := scheduler.Start(lifecycleManager, cfg.LifecycleSweepSpec)
	if err != nil {
		logger.Error("Scheduler failed to start: %v", err)
		os.Exit(1)
	}
	defer cronRunner.Stop()

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
