package sessionrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/pg"
)

const (
	saveQuery = `
		INSERT INTO sessions (id, account_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET account_id = EXCLUDED.account_id, expires_at = EXCLUDED.expires_at
	`
	getQuery           = `SELECT id, account_id, created_at, expires_at FROM sessions WHERE id = $1`
	deleteQuery        = `DELETE FROM sessions WHERE id = $1`
	deleteExpiredQuery = `DELETE FROM sessions WHERE expires_at <= $1`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, sess *domain.Session) error {
	_, err := r.db.Exec(ctx, saveQuery, sess.ID, sess.AccountID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		zap.L().Error("can't save session", zap.Error(err))
		return pkgerrors.Wrap(err, "save session")
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Session, error) {
	var (
		sess      domain.Session
		accountID pgtype.Int8
	)
	err := r.db.QueryRow(ctx, getQuery, id).Scan(&sess.ID, &accountID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("can't load session", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "load session")
	}
	if accountID.Valid {
		sess.AccountID = &accountID.Int64
	}
	return &sess, nil
}

// Delete is idempotent: removing an unknown id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, deleteQuery, id); err != nil {
		zap.L().Error("can't delete session", zap.Error(err))
		return pkgerrors.Wrap(err, "delete session")
	}
	return nil
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredQuery, now)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete expired sessions")
	}
	return tag.RowsAffected(), nil
}
