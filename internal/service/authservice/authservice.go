package authservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

type Service struct {
	accountRepo Repo
	hashService auth.HashServiceInterface
	// compared against when the username is unknown so both failures cost one hash check
	dummyHash string
}

func New(repo Repo, hashService auth.HashServiceInterface, dummyHash string) *Service {
	return &Service{
		accountRepo: repo,
		hashService: hashService,
		dummyHash:   dummyHash,
	}
}

func (s *Service) Register(ctx context.Context, username, password string, salary float64) (int64, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, domain.ErrMissingField
	}
	if math.IsNaN(salary) || math.IsInf(salary, 0) {
		return 0, fmt.Errorf("%w: salary must be a finite number", domain.ErrValidation)
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return 0, err
	}
	account, err := s.accountRepo.Create(ctx, &domain.Account{
		Username:     username,
		PasswordHash: hashedPassword,
		Salary:       salary,
		Balance:      0,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			zap.L().Info("username already taken", zap.String("username", username))
		} else {
			zap.L().Error("can't create account: ", zap.Error(err))
		}
		return 0, err
	}

	zap.L().Info("account successfully registered", zap.String("username", username), zap.Int64("id", account.ID))
	return account.ID, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrMissingField
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		s.hashService.ComparePassword(s.dummyHash, password)
		zap.L().Info("invalid credentials", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		zap.L().Error("can't find account: ", zap.Error(err))
		return nil, err
	}
	if ok := s.hashService.ComparePassword(account.PasswordHash, password); !ok {
		zap.L().Info("invalid credentials", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	zap.L().Info("account successfully authenticated", zap.String("username", username))
	public := account.Public()
	return &public, nil
}
