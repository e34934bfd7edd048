// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger removes read notifications older than the given age.
type Purger interface {
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	spec      string
	retention time.Duration
	logger    *zap.Logger
}

// New builds a scheduler that purges read notifications older than
// retentionDays on every tick of spec ("@every 24h", "0 3 * * *", ...).
func New(purger Purger, spec string, retentionDays int, log *zap.Logger) *Scheduler {
	log = logger.OrNop(log)
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cronLogger{log: log})),
		purger:    purger,
		spec:      spec,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    log,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("spec", s.spec),
		zap.Duration("retention", s.retention),
	)
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	n, err := s.purger.PurgeRead(ctx, s.retention)
	if err != nil {
		s.logger.Error("notification purge failed", zap.Error(err))
		return
	}
	s.logger.Info("notification purge complete", zap.Int64("deleted", n))
}

type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
