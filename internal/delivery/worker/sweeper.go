// Package worker contains background deliveries that run for the
// process lifetime, independent of request traffic.
package worker

import (
	"context"
	"log/slog"
	"time"

	"caloricatcher/config"
	"caloricatcher/internal/delivery"
	"caloricatcher/internal/usecase"

	"go.uber.org/fx"
)

// sessionSweeper periodically removes expired sessions. It is pure
// housekeeping; request-time authentication enforces expiry on its own,
// the sweep just keeps the session map from accumulating dead entries.
type sessionSweeper struct {
	authUsecase usecase.AuthUsecase
	interval    time.Duration
	logger      *slog.Logger
	stop        chan struct{}
	stopped     chan struct{}
}

// SweeperParams holds dependencies for the session sweeper
type SweeperParams struct {
	fx.In
	fx.Lifecycle

	Cfg         *config.Config
	Logger      *slog.Logger
	AuthUsecase usecase.AuthUsecase
}

// NewSessionSweeper creates the sweep delivery. The ticker is owned by
// the fx lifecycle: started with the other deliveries, cancelled at
// shutdown.
func NewSessionSweeper(params SweeperParams) (delivery.Delivery, error) {
	sweeper := &sessionSweeper{
		authUsecase: params.AuthUsecase,
		interval:    params.Cfg.Auth.SweepInterval,
		logger:      params.Logger,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: sweeper.shutdown,
	})

	return sweeper, nil
}

// Serve runs the sweep loop until the delivery is stopped.
func (s *sessionSweeper) Serve(ctx context.Context) error {
	defer close(s.stopped)

	s.logger.Info("Starting session sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.authUsecase.SweepExpiredSessions(ctx); err != nil {
				s.logger.Error("Session sweep failed", slog.Any("error", err))
			}
		case <-s.stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// shutdown signals the loop to exit and waits for it to drain.
func (s *sessionSweeper) shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down session sweeper")
	close(s.stop)

	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
