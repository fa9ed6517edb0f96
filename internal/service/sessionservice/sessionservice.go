package sessionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	repo Repo
	ttl  time.Duration
	now  func() time.Time
}

func New(repo Repo, ttl time.Duration) *Service {
	return &Service{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// New returns an anonymous session. It is not persisted until Establish.
func (s *Service) New() *domain.Session {
	return &domain.Session{ID: uuid.NewString()}
}

// Load returns the stored session with the given id, or a new anonymous one if it is
// unknown or expired.
func (s *Service) Load(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return s.New(), nil
	}
	sess, err := s.repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return s.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSession, err)
	}
	if sess.Expired(s.now()) {
		zap.L().Debug("session expired", zap.String("sessionID", id))
		return s.New(), nil
	}
	return sess, nil
}

// Establish binds accountID to sess under a fresh id and persists it, then drops the
// record stored under the old id. On failure sess is left as it was.
func (s *Service) Establish(ctx context.Context, sess *domain.Session, accountID int64) error {
	if sess == nil {
		return fmt.Errorf("%w: no session to establish", domain.ErrSession)
	}

	prev := *sess
	now := s.now()
	sess.ID = uuid.NewString()
	sess.AccountID = &accountID
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)

	if err := s.repo.Save(ctx, sess); err != nil {
		*sess = prev
		zap.L().Error("can't save session", zap.String("sessionID", sess.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrSession, err)
	}
	if err := s.repo.Delete(ctx, prev.ID); err != nil {
		zap.L().Warn("can't drop replaced session", zap.String("sessionID", prev.ID), zap.Error(err))
	}
	zap.L().Info("session established", zap.String("sessionID", sess.ID), zap.Int64("accountID", accountID))
	return nil
}

func (s *Service) CurrentAccountID(sess *domain.Session) (int64, bool) {
	if sess == nil || sess.AccountID == nil {
		return 0, false
	}
	return *sess.AccountID, true
}

func (s *Service) Terminate(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return fmt.Errorf("%w: no session to terminate", domain.ErrSession)
	}
	if err := s.repo.Delete(ctx, sess.ID); err != nil {
		zap.L().Error("can't destroy session", zap.String("sessionID", sess.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrSession, err)
	}
	sess.AccountID = nil
	return nil
}

// Sweep removes every session whose expiry has passed.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrSession, err)
	}
	return removed, nil
}
