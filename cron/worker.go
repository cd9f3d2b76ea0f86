package cron

import (
	"context"
	"time"

	"github.com/bcart01v/beheardqueue-server/config"
	"github.com/bcart01v/beheardqueue-server/services/scheduling"
	"github.com/bcart01v/beheardqueue-server/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartSweepWorker schedules the periodic archival sweep. The schedule comes
// from config (default @hourly). The returned stop function drains a running
// sweep before the process exits.
func StartSweepWorker(engine scheduling.SchedulingService) (stop func()) {
	logger := utils.GetLogger()

	c := cron.New()
	_, err := c.AddFunc(config.AppConfig.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		result, err := engine.SweepArchive(ctx, time.Now())
		if err != nil {
			logger.Error("archival sweep failed", zap.Error(err))
			return
		}
		if len(result.Errors) > 0 {
			logger.Warn("archival sweep completed with failures",
				zap.Int("archived", result.ArchivedCount),
				zap.Strings("errors", result.Errors))
		}
	})
	if err != nil {
		logger.Fatal("invalid sweep schedule",
			zap.String("schedule", config.AppConfig.SweepSchedule), zap.Error(err))
	}

	c.Start()
	logger.Info("sweep worker started", zap.String("schedule", config.AppConfig.SweepSchedule))

	return func() {
		<-c.Stop().Done()
	}
}
