package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/GlebRadaev/payroll/internal/domain"
)

const (
	createAccountQuery = `INSERT INTO users (username, password_hash, salary, balance) VALUES (?1, ?2, ?3, ?4)`
	selectAccount      = `SELECT id, username, password_hash, salary, balance FROM users`
	deleteAccountQuery = `DELETE FROM users WHERE id = ?1`
	creditQuery        = `
		UPDATE users
		SET balance = balance + ?1
		WHERE id = ?2 AND (?3 OR balance + ?1 >= 0)
		RETURNING balance
	`
	accountExistsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?1)`
)

type Accounts struct {
	db *sql.DB
}

func NewAccounts(db *sql.DB) *Accounts {
	return &Accounts{db: db}
}

func (r *Accounts) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := domain.ValidateNewAccount(account); err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, createAccountQuery, account.Username, account.PasswordHash, account.Salary, account.Balance)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		zap.L().Error("can't save account", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "insert account")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read account id")
	}
	account.ID = id
	return account, nil
}

func (r *Accounts) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, selectAccount+` WHERE id = ?1`, id)
}

func (r *Accounts) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.get(ctx, selectAccount+` WHERE username = ?1`, username)
}

func (r *Accounts) get(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Salary, &account.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "select account")
	}
	return &account, nil
}

func (r *Accounts) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccount+` ORDER BY id`)
	if err != nil {
		zap.L().Error("can't list accounts", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "list accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Salary, &account.Balance); err != nil {
			return nil, pkgerrors.Wrap(err, "scan account")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate accounts")
	}
	return accounts, nil
}

func (r *Accounts) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteAccountQuery, id)
	if err != nil {
		zap.L().Error("can't delete account", zap.Error(err))
		return pkgerrors.Wrap(err, "delete account")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "delete account")
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Accounts) Credit(ctx context.Context, accountID int64, amount float64, allowOverdraft bool) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "begin credit")
	}
	defer tx.Rollback() //nolint:errcheck

	var balance float64
	err = tx.QueryRowContext(ctx, creditQuery, amount, accountID, allowOverdraft).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.QueryRowContext(ctx, accountExistsQuery, accountID).Scan(&exists); err != nil {
			return 0, pkgerrors.Wrap(err, "check account")
		}
		if !exists {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrInsufficientBalance
	}
	if err != nil {
		zap.L().Error("can't credit account", zap.Error(err))
		return 0, pkgerrors.Wrap(err, "credit account")
	}
	if err := tx.Commit(); err != nil {
		return 0, pkgerrors.Wrap(err, "commit credit")
	}
	return balance, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
}
