// Package worker contains the endpoint resolution worker delivery.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/config"
	"dispatch/internal/delivery"
	"dispatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultInterval = time.Minute

type resolverWorker struct {
	cfg          *config.Config
	logger       *slog.Logger
	resolutionUC usecase.ResolutionUsecase

	// mu guards cancel and stopped; Serve and stop run on different
	// goroutines and fx may stop the app before Serve ever runs.
	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	done    chan struct{}
}

// ServerParams holds dependencies for the resolution worker
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	ResolutionUC usecase.ResolutionUsecase
}

// NewServer creates the periodic endpoint resolution worker
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &resolverWorker{
		cfg:          params.Cfg,
		logger:       params.Logger,
		resolutionUC: params.ResolutionUC,
		done:         make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve runs resolution rounds until the worker is stopped
func (s *resolverWorker) Serve(ctx context.Context) error {
	interval := defaultInterval
	if s.cfg.Resolver != nil && s.cfg.Resolver.Interval > 0 {
		interval = s.cfg.Resolver.Interval
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()

		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer close(s.done)

	s.logger.Info("Starting resolution worker", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once at startup so a restart does not wait a full interval
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *resolverWorker) runOnce(ctx context.Context) {
	report, err := s.resolutionUC.ResolveIncomplete(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Error("Resolution round failed", slog.Any("error", err))
		}

		return
	}

	if report.Claimed == 0 {
		return
	}

	s.logger.Info("Resolution round finished",
		slog.Int("claimed", report.Claimed),
		slog.Int("resolved", report.Resolved),
		slog.Int("failed", report.Failed),
		slog.Int("lost", report.Lost),
	)
}

// stop cancels the resolution loop and waits for the current round to finish.
// Stopping before Serve ever ran returns immediately and keeps a later Serve
// from starting the loop.
func (s *resolverWorker) stop(ctx context.Context) error {
	s.logger.Info("Shutting down resolution worker")

	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}
