package accountrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

const uniqueViolation = "23505"

const (
	createQuery = `
		INSERT INTO users (username, password_hash, salary, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	getByIDQuery       = `SELECT id, username, password_hash, salary, balance FROM users WHERE id = $1`
	getByUsernameQuery = `SELECT id, username, password_hash, salary, balance FROM users WHERE username = $1`
	listQuery          = `SELECT id, username, password_hash, salary, balance FROM users ORDER BY id`
	deleteQuery        = `DELETE FROM users WHERE id = $1`
	creditQuery        = `
		UPDATE users
		SET balance = balance + $1
		WHERE id = $2 AND ($3::boolean OR balance + $1 >= 0)
		RETURNING balance
	`
	existsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := domain.ValidateNewAccount(account); err != nil {
		return nil, err
	}
	err := r.db.QueryRow(ctx, createQuery, account.Username, account.PasswordHash, account.Salary, account.Balance).Scan(&account.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateUsername
		}
		zap.L().Error("can't save account", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "insert account")
	}
	return account, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, getByIDQuery, id)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.get(ctx, getByUsernameQuery, username)
}

func (r *Repository) get(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Salary, &account.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "select account")
	}
	return &account, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, listQuery)
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

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteQuery, id)
	if err != nil {
		zap.L().Error("can't delete account", zap.Error(err))
		return pkgerrors.Wrap(err, "delete account")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Credit applies amount with a single guarded UPDATE so concurrent credits never lose an update.
func (r *Repository) Credit(ctx context.Context, accountID int64, amount float64, allowOverdraft bool) (float64, error) {
	var balance float64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, creditQuery, amount, accountID, allowOverdraft).Scan(&balance)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			zap.L().Error("can't credit account", zap.Error(err))
			return pkgerrors.Wrap(err, "credit account")
		}

		var exists bool
		if err := r.db.QueryRow(ctx, existsQuery, accountID).Scan(&exists); err != nil {
			return pkgerrors.Wrap(err, "check account")
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientBalance
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
