package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountPublic(t *testing.T) {
	a := Account{ID: 1, Username: "alice", PasswordHash: "hash", Salary: 10, Balance: 5}

	pub := a.Public()

	assert.Empty(t, pub.PasswordHash)
	assert.Equal(t, "hash", a.PasswordHash)
	assert.Equal(t, a.Username, pub.Username)
	assert.Equal(t, a.Balance, pub.Balance)
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{name: "no expiry", expires: time.Time{}, want: false},
		{name: "future", expires: now.Add(time.Minute), want: false},
		{name: "exactly now", expires: now, want: true},
		{name: "past", expires: now.Add(-time.Minute), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ID: "sid", ExpiresAt: tt.expires}
			assert.Equal(t, tt.want, s.Expired(now))
		})
	}
}

func TestValidateNewAccount(t *testing.T) {
	tests := []struct {
		name    string
		account *Account
		wantErr bool
	}{
		{name: "nil", account: nil, wantErr: true},
		{name: "blank username", account: &Account{Username: "  ", PasswordHash: "h"}, wantErr: true},
		{name: "empty hash", account: &Account{Username: "bob"}, wantErr: true},
		{name: "ok", account: &Account{Username: "bob", PasswordHash: "h"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewAccount(tt.account)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
