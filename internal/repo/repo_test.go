package repo

import (
	"context"
	"path/filepath"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payroll/internal/pg"
	accountrepo "github.com/GlebRadaev/payroll/internal/repo/account-repo"
	sessionrepo "github.com/GlebRadaev/payroll/internal/repo/session-repo"
	sqliterepo "github.com/GlebRadaev/payroll/internal/repo/sqlite-repo"
	"github.com/GlebRadaev/payroll/internal/sqlite"
)

func TestNewPostgres(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewPostgres(mockDB, pg.NewMockTXManager(ctrl))

	assert.IsType(t, &accountrepo.Repository{}, repo.AccountRepo)
	assert.IsType(t, &accountrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &sessionrepo.Repository{}, repo.SessionRepo)

	if err := mockDB.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}

func TestNewSQLite(t *testing.T) {
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "payroll.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLite(db)

	assert.IsType(t, &sqliterepo.Accounts{}, repo.AccountRepo)
	assert.IsType(t, &sqliterepo.Accounts{}, repo.LedgerRepo)
	assert.IsType(t, &sqliterepo.Sessions{}, repo.SessionRepo)
}
