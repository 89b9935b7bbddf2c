package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based maintenance jobs.
type SchedulerService struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func NewSchedulerService(loc *time.Location, logger *slog.Logger) *SchedulerService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedulerService{
		cron:   cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		logger: logger,
	}
}

// ScheduleSessionSweep runs the expired-session cleanup on the given cron spec.
func (s *SchedulerService) ScheduleSessionSweep(spec string, accounts *AccountService) (cron.EntryID, error) {
	if accounts == nil {
		return 0, fmt.Errorf("session sweep needs an account service")
	}
	return s.Schedule(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := accounts.SweepExpiredSessions(ctx); err != nil {
			s.logger.Error("session sweep failed", slog.String("error", err.Error()))
		}
	})
}

// Schedule registers job under a cron spec ("0 */5 * * * *", "@every 10m", ...).
func (s *SchedulerService) Schedule(spec string, job func()) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return id, nil
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
