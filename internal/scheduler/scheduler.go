package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"FxPulse/internal/usecase"
	"FxPulse/pkg/logger"
)

// Scheduler runs the periodic analysis work: a full cycle over the event
// window every few minutes, and a faster sweep that picks up events whose
// outcome was just released.
type Scheduler struct {
	cron   *cron.Cron
	runner *usecase.AnalysisRunner
	log    *logger.Logger
	ctx    context.Context
}

// New creates a Scheduler bound to ctx; jobs inherit it.
func New(ctx context.Context, runner *usecase.AnalysisRunner, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		runner: runner,
		log:    log,
		ctx:    ctx,
	}
}

// Register wires the analysis cycle and the staleness sweep.
func (s *Scheduler) Register(cycle, sweep time.Duration) error {
	if _, err := s.cron.AddFunc(every(cycle), s.analysisCycle); err != nil {
		return fmt.Errorf("register analysis cycle: %w", err)
	}
	if _, err := s.cron.AddFunc(every(sweep), s.stalenessSweep); err != nil {
		return fmt.Errorf("register staleness sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and kicks off one immediate cycle so the
// dashboard has signals before the first tick.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
	go s.analysisCycle()
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) analysisCycle() {
	s.log.Debug("running analysis cycle")
	s.runner.RunCycle(s.ctx)
}

func (s *Scheduler) stalenessSweep() {
	s.log.Debug("running staleness sweep")
	s.runner.SweepStale(s.ctx)
}

func every(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}
