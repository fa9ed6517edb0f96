package service

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GlebRadaev/payroll/internal/repo"
	"github.com/GlebRadaev/payroll/internal/service/accountservice"
	"github.com/GlebRadaev/payroll/internal/service/authservice"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/internal/service/sessionservice"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
)

const dummyPassword = "payroll-timing-equalizer"

type Services struct {
	AuthService    *authservice.Service
	AccountService *accountservice.Service
	LedgerService  *ledgerservice.Service
	SessionService *sessionservice.Service
}

func New(repo *repo.Repositories, policy ledgerservice.Policy, sessionTTL time.Duration) *Services {
	hashService := pkgauth.NewHashService(bcrypt.DefaultCost)
	dummyHash, err := hashService.HashPassword(dummyPassword)
	if err != nil {
		zap.L().Warn("can't prepare dummy hash", zap.Error(err))
	}

	return &Services{
		AuthService:    authservice.New(repo.AccountRepo, hashService, dummyHash),
		AccountService: accountservice.New(repo.AccountRepo),
		LedgerService:  ledgerservice.New(repo.LedgerRepo, policy),
		SessionService: sessionservice.New(repo.SessionRepo, sessionTTL),
	}
}
