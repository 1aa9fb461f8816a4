// Package scheduler runs the background jobs on cron schedules: schedule
// materialization, price refresh, the alert sweep, and alert cleanup.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/service/account"
	"github.com/tincan-finance/tincan/pkg/service/alert"
	"github.com/tincan-finance/tincan/pkg/service/budget"
	"github.com/tincan-finance/tincan/pkg/service/crypto"
	"github.com/tincan-finance/tincan/pkg/service/schedule"
)

// Scheduler owns the cron runner and the jobs it triggers.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.Scheduler
	schedules *schedule.Service
	crypto    *crypto.Service
	budgets   *budget.Service
	accounts  *account.Service
	alerts    *alert.Service
	logger    *slog.Logger
}

// New creates a scheduler over the given services.
func New(
	cfg config.Scheduler,
	schedules *schedule.Service,
	cryptoSvc *crypto.Service,
	budgets *budget.Service,
	accounts *account.Service,
	alerts *alert.Service,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		cfg:       cfg,
		schedules: schedules,
		crypto:    cryptoSvc,
		budgets:   budgets,
		accounts:  accounts,
		alerts:    alerts,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start registers the jobs and starts the cron runner. Disabled schedulers
// return immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	jobs := []struct {
		name string
		spec string
		run  func(context.Context)
	}{
		{"materialize-schedules", s.cfg.MaterializeSpec, s.materialize},
		{"refresh-prices", s.cfg.PriceRefreshSpec, s.refreshPrices},
		{"alert-sweep", s.cfg.AlertSweepSpec, s.alertSweep},
		{"alert-cleanup", s.cfg.AlertCleanupSpec, s.alertCleanup},
	}
	for _, j := range jobs {
		job := j
		_, err := s.cron.AddFunc(job.spec, func() {
			started := time.Now()
			job.run(ctx)
			s.logger.Info("job finished", "job", job.name, "took", time.Since(started))
		})
		if err != nil {
			return err
		}
		s.logger.Info("job registered", "job", job.name, "spec", job.spec)
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron runner and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) materialize(ctx context.Context) {
	created, err := s.schedules.ProcessDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("schedule materialization failed", "error", err)
		return
	}
	if created > 0 {
		s.logger.Info("schedules materialized", "created", created)
	}
}

func (s *Scheduler) refreshPrices(ctx context.Context) {
	if _, err := s.crypto.RefreshPrices(ctx); err != nil {
		s.logger.Error("price refresh failed", "error", err)
	}
}

func (s *Scheduler) alertSweep(ctx context.Context) {
	now := time.Now()
	if err := s.budgets.CheckThresholds(ctx, now); err != nil {
		s.logger.Error("budget threshold check failed", "error", err)
	}
	if err := s.accounts.CheckLowBalances(ctx, s.cfg.LowBalanceFloor, now); err != nil {
		s.logger.Error("low balance check failed", "error", err)
	}
}

func (s *Scheduler) alertCleanup(ctx context.Context) {
	retention := time.Duration(s.cfg.AlertRetentionDays) * 24 * time.Hour
	if _, err := s.alerts.Cleanup(ctx, retention, time.Now()); err != nil {
		s.logger.Error("alert cleanup failed", "error", err)
	}
}
