package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/GlebRadaev/payroll/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	// Credit adds amount to the balance in one statement and returns the new balance.
	// With allowOverdraft false a result below zero is refused with domain.ErrInsufficientBalance.
	Credit(ctx context.Context, accountID int64, amount float64, allowOverdraft bool) (float64, error)
}

// Policy decides which credits are accepted.
type Policy struct {
	AllowNegative  bool
	AllowOverdraft bool
}

func DefaultPolicy() Policy {
	return Policy{
		AllowNegative:  true,
		AllowOverdraft: true,
	}
}

type Service struct {
	repo   Repo
	policy Policy
}

func New(repo Repo, policy Policy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
	}
}

func (s *Service) Credit(ctx context.Context, accountID int64, amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount must be a finite number", domain.ErrValidation)
	}
	if amount < 0 && !s.policy.AllowNegative {
		return 0, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}

	balance, err := s.repo.Credit(ctx, accountID, amount, s.policy.AllowOverdraft)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInsufficientBalance):
			zap.L().Info("credit refused", zap.Int64("accountID", accountID), zap.Float64("amount", amount), zap.Error(err))
		default:
			zap.L().Error("failed to credit account", zap.Int64("accountID", accountID), zap.Error(err))
		}
		return 0, err
	}
	zap.L().Info("account credited", zap.Int64("accountID", accountID), zap.Float64("amount", amount), zap.Float64("balance", balance))
	return balance, nil
}
