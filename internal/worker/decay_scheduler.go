package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// ErrSchedulerRunning is returned when Start is called on a running scheduler.
var ErrSchedulerRunning = errors.New("decay scheduler already running")

// DecayFacade exposes the subset of application functionality required by the scheduler.
type DecayFacade interface {
	DecayCandidates(ctx context.Context) ([]model.Listing, error)
	RefreshPrice(ctx context.Context, listing model.Listing) (model.DecayOutcome, error)
	RecomputeMissions(ctx context.Context)
}

// TickReport summarizes a single decay pass.
type TickReport struct {
	Scanned int
	Updated int
	Expired int
	Failed  int
}

// DecayScheduler periodically recomputes prices of active listings.
type DecayScheduler struct {
	facade   DecayFacade
	schedule string
	workers  int
	logger   *slog.Logger

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// NewDecayScheduler validates the cron schedule and constructs the scheduler.
func NewDecayScheduler(facade DecayFacade, schedule string, workers int, logger *slog.Logger) (*DecayScheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parse decay schedule %q: %w", schedule, err)
	}
	if workers <= 0 {
		workers = 1
	}
	return &DecayScheduler{
		facade:   facade,
		schedule: schedule,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Start launches periodic ticks. Ticks keep running after ctx is done until Stop is called.
func (s *DecayScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return ErrSchedulerRunning
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cronLog := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := c.AddFunc(s.schedule, func() { s.Tick(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule decay tick: %w", err)
	}
	c.Start()

	s.cron = c
	s.cancel = cancel
	s.logger.Info("decay scheduler started", slog.String("schedule", s.schedule), slog.Int("workers", s.workers))
	return nil
}

// Stop halts scheduling and waits for a running tick to finish or ctx to expire.
func (s *DecayScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	// A running tick finishes its writes; it is only aborted once ctx expires.
	stopCtx := c.Stop()
	defer cancel()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.logger.Info("decay scheduler stopped")
	return nil
}

// Running reports whether the scheduler is started.
func (s *DecayScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// Tick runs one decay pass over every active listing.
func (s *DecayScheduler) Tick(ctx context.Context) TickReport {
	listings, err := s.facade.DecayCandidates(ctx)
	if err != nil {
		s.logger.Error("fetch decay candidates failed", slog.String("error", err.Error()))
		return TickReport{}
	}

	var updated, expired, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.workers)

	for _, listing := range listings {
		g.Go(func() error {
			outcome, err := s.facade.RefreshPrice(ctx, listing)
			if err != nil {
				failed.Add(1)
				s.logger.Error("refresh price failed", slog.String("listing", listing.ID), slog.String("error", err.Error()))
				return nil
			}
			switch outcome {
			case model.DecayUpdated:
				updated.Add(1)
			case model.DecayExpired:
				expired.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := TickReport{
		Scanned: len(listings),
		Updated: int(updated.Load()),
		Expired: int(expired.Load()),
		Failed:  int(failed.Load()),
	}
	if report.Expired > 0 {
		s.facade.RecomputeMissions(ctx)
	}

	s.logger.Info("decay tick finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("updated", report.Updated),
		slog.Int("expired", report.Expired),
		slog.Int("failed", report.Failed),
	)
	return report
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]any{slog.String("error", err.Error())}, keysAndValues...)
	l.logger.Error("cron: "+msg, args...)
}
