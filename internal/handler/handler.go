package handler

import (
	"github.com/MassBabyGeek/SnapQuest-backend/internal/badges"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/lifecycle"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/pipeline"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/votes"
)

// Collaborateurs partagés par tous les handlers, câblés au démarrage
var (
	badgeEngine      *badges.Engine
	lifecycleManager *lifecycle.Manager
	submitPipeline   *pipeline.Pipeline
	voteLedger       *votes.Ledger
	imageStore       pipeline.Uploader
)

// Setup branche les handlers sur le moteur de badges, le gestionnaire de
// cycle de vie, le pipeline de validation, le registre des votes et le
// stockage d'images
func Setup(engine *badges.Engine, manager *lifecycle.Manager, p *pipeline.Pipeline, ledger *votes.Ledger, images pipeline.Uploader) {
	badgeEngine = engine
	lifecycleManager = manager
	submitPipeline = p
	voteLedger = ledger
	imageStore = images
}
