package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/config"
	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/service/ledger"
)

// SnapshotSink persists the nightly derived aggregate.
type SnapshotSink interface {
	SaveLedgerSnapshot(ctx context.Context, snap models.LedgerSnapshot) error
}

// Scheduler runs the nightly ledger-snapshot job.
type Scheduler struct {
	cron      *cron.Cron
	ledgerSvc *ledger.Service
	sink      SnapshotSink
	cfg       config.SnapshotConfig
	logger    *zap.Logger
}

// NewScheduler creates a scheduler for the configured timezone.
func NewScheduler(cfg config.SnapshotConfig, ledgerSvc *ledger.Service, sink SnapshotSink, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		ledgerSvc: ledgerSvc,
		sink:      sink,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.persistSnapshot); err != nil {
		s.logger.Error("failed to schedule ledger snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) persistSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sum, err := s.ledgerSvc.Summary(ctx)
	if err != nil {
		s.logger.Error("ledger snapshot derivation failed", zap.Error(err))
		return
	}

	record := ledger.SnapshotAt(time.Now().UTC(), sum)
	if err := s.sink.SaveLedgerSnapshot(ctx, record); err != nil {
		s.logger.Error("ledger snapshot persist failed", zap.Error(err))
		return
	}

	s.logger.Info("ledger snapshot persisted",
		zap.Int64("total_revenue", record.TotalRevenue),
		zap.Float64("total_business_value", record.TotalBusinessValue))
}
