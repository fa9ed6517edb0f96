package accountservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo), repo
}

func TestGetAccount(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name            string
		id              int64
		prepareMock     func()
		expectedAccount *domain.Account
		expectedError   error
	}{
		{
			name: "Account found",
			id:   1,
			prepareMock: func() {
				repo.EXPECT().GetByID(context.Background(), int64(1)).Return(&domain.Account{
					ID: 1, Username: "bob", PasswordHash: "hash", Salary: 50000, Balance: 200,
				}, nil)
			},
			expectedAccount: &domain.Account{ID: 1, Username: "bob", Salary: 50000, Balance: 200},
		},
		{
			name: "Account not found",
			id:   2,
			prepareMock: func() {
				repo.EXPECT().GetByID(context.Background(), int64(2)).Return(nil, domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name: "Database error",
			id:   1,
			prepareMock: func() {
				repo.EXPECT().GetByID(context.Background(), int64(1)).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			account, err := service.GetAccount(context.Background(), tt.id)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAccount, account)
			}
		})
	}
}

func TestListAccounts(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expected      []domain.Account
		expectedError bool
	}{
		{
			name: "Hashes are stripped",
			prepareMock: func() {
				repo.EXPECT().List(context.Background()).Return([]domain.Account{
					{ID: 1, Username: "bob", PasswordHash: "h1", Salary: 50000, Balance: 200},
					{ID: 2, Username: "alice", PasswordHash: "h2", Salary: 42000},
				}, nil)
			},
			expected: []domain.Account{
				{ID: 1, Username: "bob", Salary: 50000, Balance: 200},
				{ID: 2, Username: "alice", Salary: 42000},
			},
		},
		{
			name: "Empty store",
			prepareMock: func() {
				repo.EXPECT().List(context.Background()).Return(nil, nil)
			},
			expected: []domain.Account{},
		},
		{
			name: "Database error",
			prepareMock: func() {
				repo.EXPECT().List(context.Background()).Return(nil, errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			accounts, err := service.ListAccounts(context.Background())
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, accounts)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, accounts)
			}
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Deleted",
			prepareMock: func() {
				repo.EXPECT().Delete(context.Background(), int64(1)).Return(nil)
			},
		},
		{
			name: "Not found",
			prepareMock: func() {
				repo.EXPECT().Delete(context.Background(), int64(1)).Return(domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name: "Database error",
			prepareMock: func() {
				repo.EXPECT().Delete(context.Background(), int64(1)).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.DeleteAccount(context.Background(), 1)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
