// Package scheduler fait tourner le balayage périodique du cycle de vie des
// challenges, pour que les expirations et les badges de classement tombent
// même sans trafic.
package scheduler

import (
	"context"
	"time"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/lifecycle"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
	"github.com/MassBabyGeek/SnapQuest-backend/internal/utils"
	"github.com/robfig/cron/v3"
)

// Start lance le cron de balayage et retourne l'instance pour pouvoir
// l'arrêter proprement
func Start(manager *lifecycle.Manager, spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		sweep(manager)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("Lifecycle sweep scheduled (%s)", spec)
	return c, nil
}

func sweep(manager *lifecycle.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := utils.StaleChallengeIDs(ctx)
	if err != nil {
		logger.Error("Lifecycle sweep failed to list challenges: %v", err)
		return
	}

	for _, id := range ids {
		if _, err := manager.Refresh(ctx, id); err != nil {
			logger.Error("Lifecycle sweep failed for challenge %s: %v", id, err)
		}
	}

	if len(ids) > 0 {
		logger.Success("Lifecycle sweep refreshed %d challenge(s)", len(ids))
	}
}
