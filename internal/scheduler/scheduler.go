package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stocktake/internal/config"
	"stocktake/internal/service/reporting"
	"stocktake/pkg/clients/alert"
)

// Scheduler runs the periodic dashboard snapshot job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	alertClient  alert.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. alertClient may be nil
// when no webhook is configured; snapshots are still taken.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, alertClient alert.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		alertClient:  alertClient,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Snapshot.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Snapshot.CronSchedule, s.takeSnapshot); err != nil {
		s.logger.Error("failed to schedule dashboard snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) takeSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, low, err := s.reportingSvc.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to take dashboard snapshot", zap.Error(err))
		return
	}

	if s.alertClient == nil || len(low) == 0 {
		return
	}

	payload := alert.LowStockAlert{Date: snapshot.Date}
	for _, p := range low {
		payload.Products = append(payload.Products, alert.LowStockProduct{
			Name:            p.Name,
			CurrentQuantity: p.CurrentQuantity,
			Unit:            p.DisplayUnit(),
		})
	}

	if err := s.alertClient.SendLowStockAlert(ctx, payload); err != nil {
		s.logger.Error("failed to send low stock alert", zap.Error(err))
		return
	}
	s.logger.Info("low stock alert sent", zap.Int("products", len(payload.Products)))
}
