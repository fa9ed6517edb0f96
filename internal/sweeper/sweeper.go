package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Service periodically removes expired sessions from the store.
type Service struct {
	sessions Sweeper
	interval time.Duration
}

func New(sessions Sweeper, interval time.Duration) *Service {
	return &Service{
		sessions: sessions,
		interval: interval,
	}
}

// Run blocks until ctx is canceled. A non-positive interval disables sweeping.
func (s *Service) Run(ctx context.Context) {
	if s.interval <= 0 {
		zap.L().Info("session sweeper disabled")
		return
	}
	zap.L().Info("session sweeper started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping session sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	removed, err := s.sessions.Sweep(ctx)
	if err != nil {
		zap.L().Error("can't sweep sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("expired sessions removed", zap.Int64("count", removed))
	}
}
