package ledgerservice

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T, policy Policy) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo, policy), repo
}

func TestCredit(t *testing.T) {
	strict := Policy{AllowNegative: false, AllowOverdraft: false}

	tests := []struct {
		name            string
		policy          Policy
		accountID       int64
		amount          float64
		prepareMock     func(repo *MockRepo)
		expectedBalance float64
		expectedError   error
	}{
		{
			name:      "Successful payment",
			policy:    DefaultPolicy(),
			accountID: 1,
			amount:    200,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Credit(context.Background(), int64(1), 200.0, true).Return(200.0, nil)
			},
			expectedBalance: 200,
		},
		{
			name:      "Negative amount allowed by default",
			policy:    DefaultPolicy(),
			accountID: 1,
			amount:    -50,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Credit(context.Background(), int64(1), -50.0, true).Return(-50.0, nil)
			},
			expectedBalance: -50,
		},
		{
			name:          "Negative amount rejected by policy",
			policy:        strict,
			accountID:     1,
			amount:        -50,
			prepareMock:   func(repo *MockRepo) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:      "Overdraft rejected by store",
			policy:    Policy{AllowNegative: true, AllowOverdraft: false},
			accountID: 1,
			amount:    -500,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Credit(context.Background(), int64(1), -500.0, false).Return(0.0, domain.ErrInsufficientBalance)
			},
			expectedError: domain.ErrInsufficientBalance,
		},
		{
			name:          "NaN amount",
			policy:        DefaultPolicy(),
			accountID:     1,
			amount:        math.NaN(),
			prepareMock:   func(repo *MockRepo) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "Infinite amount",
			policy:        DefaultPolicy(),
			accountID:     1,
			amount:        math.Inf(-1),
			prepareMock:   func(repo *MockRepo) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:      "Unknown account",
			policy:    DefaultPolicy(),
			accountID: 99,
			amount:    10,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Credit(context.Background(), int64(99), 10.0, true).Return(0.0, domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:      "Database error",
			policy:    DefaultPolicy(),
			accountID: 1,
			amount:    10,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Credit(context.Background(), int64(1), 10.0, true).Return(0.0, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t, tt.policy)
			tt.prepareMock(repo)

			balance, err := service.Credit(context.Background(), tt.accountID, tt.amount)
			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(err, tt.expectedError) {
					return
				}
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBalance, balance)
		})
	}
}
