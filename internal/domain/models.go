package domain

import "time"

type Account struct {
	ID           int64   `db:"id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Salary       float64 `db:"salary"`
	Balance      float64 `db:"balance"`
}

// Public returns a copy of the account safe to hand to callers outside the store.
func (a Account) Public() Account {
	a.PasswordHash = ""
	return a
}

type Session struct {
	ID        string    `db:"id"`
	AccountID *int64    `db:"account_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
