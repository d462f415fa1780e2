package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MirrorRefresher es lo que el job usa de pets.Service.
type MirrorRefresher interface {
	RefreshMirror(ctx context.Context) error
}

// Scheduler corre los jobs periódicos (por ahora solo el refresco del mirror).
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration
}

// NewScheduler registra el refresco del mirror con schedule (formato cron con segundos).
// Un schedule vacío deja el scheduler sin jobs.
func NewScheduler(refresher MirrorRefresher, schedule string, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.DiscardLogger)),
		),
		log:     log,
		timeout: 30 * time.Second,
	}

	if schedule == "" {
		return s, nil
	}
	if _, err := s.cron.AddFunc(schedule, s.refreshJob(refresher)); err != nil {
		return nil, fmt.Errorf("register mirror refresh job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) refreshJob(r MirrorRefresher) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := r.RefreshMirror(ctx); err != nil {
			s.log.Warn("mirror refresh failed", zap.Error(err))
			return
		}
		s.log.Debug("mirror refreshed", zap.Duration("took", time.Since(start)))
	}
}

func (s *Scheduler) Start() {
	s.log.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}
