package accountservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/payroll/internal/domain"
	"go.uber.org/zap"
)

// Repo is the account store contract both storage backends implement.
type Repo interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			zap.L().Error("failed to get account", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	public := account.Public()
	return &public, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list accounts", zap.Error(err))
		return nil, err
	}
	public := make([]domain.Account, len(accounts))
	for i, a := range accounts {
		public[i] = a.Public()
	}
	return public, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			zap.L().Error("failed to delete account", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}
	zap.L().Info("account deleted", zap.Int64("id", id))
	return nil
}
