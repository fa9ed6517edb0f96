package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
)

// Timestamps are stored as unix milliseconds.
const (
	saveSessionQuery = `
		INSERT INTO sessions (id, account_id, created_at, expires_at)
		VALUES (?1, ?2, ?3, ?4)
		ON CONFLICT (id) DO UPDATE
		SET account_id = excluded.account_id, expires_at = excluded.expires_at
	`
	getSessionQuery    = `SELECT id, account_id, created_at, expires_at FROM sessions WHERE id = ?1`
	deleteSessionQuery = `DELETE FROM sessions WHERE id = ?1`
	deleteExpiredQuery = `DELETE FROM sessions WHERE expires_at <= ?1`
)

type Sessions struct {
	db *sql.DB
}

func NewSessions(db *sql.DB) *Sessions {
	return &Sessions{db: db}
}

func (r *Sessions) Save(ctx context.Context, sess *domain.Session) error {
	var accountID sql.NullInt64
	if sess.AccountID != nil {
		accountID = sql.NullInt64{Int64: *sess.AccountID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, saveSessionQuery, sess.ID, accountID, sess.CreatedAt.UnixMilli(), sess.ExpiresAt.UnixMilli())
	if err != nil {
		zap.L().Error("can't save session", zap.Error(err))
		return pkgerrors.Wrap(err, "save session")
	}
	return nil
}

func (r *Sessions) Get(ctx context.Context, id string) (*domain.Session, error) {
	var (
		sess               domain.Session
		accountID          sql.NullInt64
		createdAt, expires int64
	)
	err := r.db.QueryRowContext(ctx, getSessionQuery, id).Scan(&sess.ID, &accountID, &createdAt, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		zap.L().Error("can't load session", zap.Error(err))
		return nil, pkgerrors.Wrap(err, "load session")
	}
	if accountID.Valid {
		sess.AccountID = &accountID.Int64
	}
	sess.CreatedAt = time.UnixMilli(createdAt).UTC()
	sess.ExpiresAt = time.UnixMilli(expires).UTC()
	return &sess, nil
}

func (r *Sessions) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionQuery, id); err != nil {
		zap.L().Error("can't delete session", zap.Error(err))
		return pkgerrors.Wrap(err, "delete session")
	}
	return nil
}

func (r *Sessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredQuery, now.UnixMilli())
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete expired sessions")
	}
	return res.RowsAffected()
}
