package repo

import (
	"database/sql"

	"github.com/GlebRadaev/payroll/internal/pg"
	accountrepo "github.com/GlebRadaev/payroll/internal/repo/account-repo"
	sessionrepo "github.com/GlebRadaev/payroll/internal/repo/session-repo"
	sqliterepo "github.com/GlebRadaev/payroll/internal/repo/sqlite-repo"
	"github.com/GlebRadaev/payroll/internal/service/accountservice"
	"github.com/GlebRadaev/payroll/internal/service/ledgerservice"
	"github.com/GlebRadaev/payroll/internal/service/sessionservice"
)

type Repositories struct {
	AccountRepo accountservice.Repo
	LedgerRepo  ledgerservice.Repo
	SessionRepo sessionservice.Repo
}

func NewPostgres(conn pg.Database, txManager pg.TXManager) *Repositories {
	accountRepo := accountrepo.New(conn, txManager)
	sessionRepo := sessionrepo.New(conn)

	return &Repositories{
		AccountRepo: accountRepo,
		LedgerRepo:  accountRepo,
		SessionRepo: sessionRepo,
	}
}

func NewSQLite(db *sql.DB) *Repositories {
	accountRepo := sqliterepo.NewAccounts(db)

	return &Repositories{
		AccountRepo: accountRepo,
		LedgerRepo:  accountRepo,
		SessionRepo: sqliterepo.NewSessions(db),
	}
}
