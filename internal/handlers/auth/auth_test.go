package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payroll/internal/domain"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
	"github.com/GlebRadaev/payroll/pkg/utils"
)

type mocks struct {
	service  *MockService
	sessions *MockSessionService
	cookies  *MockCookies
}

func NewMock(t *testing.T) (*AuthHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		service:  NewMockService(ctrl),
		sessions: NewMockSessionService(ctrl),
		cookies:  NewMockCookies(ctrl),
	}
	return New(m.service, m.sessions, m.cookies), m
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	var resp utils.Response
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestSignupHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedID    int64
	}{
		{
			name: "Successful registration",
			body: `{"username":"bob","password":"pw1","salary":50000}`,
			prepareMock: func() {
				m.service.EXPECT().Register(context.Background(), "bob", "pw1", 50000.0).Return(int64(1), nil)
			},
			expectedCode: http.StatusCreated,
			expectedID:   1,
		},
		{
			name: "Zero salary is present",
			body: `{"username":"bob","password":"pw1","salary":0}`,
			prepareMock: func() {
				m.service.EXPECT().Register(context.Background(), "bob", "pw1", 0.0).Return(int64(2), nil)
			},
			expectedCode: http.StatusCreated,
			expectedID:   2,
		},
		{
			name:          "Missing salary",
			body:          `{"username":"bob","password":"pw1"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Please provide username, password, and salary.",
		},
		{
			name:          "Missing password",
			body:          `{"username":"bob","salary":10}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Please provide username, password, and salary.",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Blank username rejected by service",
			body: `{"username":"  ","password":"pw1","salary":10}`,
			prepareMock: func() {
				m.service.EXPECT().Register(context.Background(), "  ", "pw1", 10.0).Return(int64(0), domain.ErrMissingField)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Please provide username, password, and salary.",
		},
		{
			name: "Duplicate username",
			body: `{"username":"bob","password":"pw1","salary":50000}`,
			prepareMock: func() {
				m.service.EXPECT().Register(context.Background(), "bob", "pw1", 50000.0).Return(int64(0), domain.ErrDuplicateUsername)
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "An error occurred during registration.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Signup(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorOf(t, rec))
				return
			}
			var resp map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "User registered successfully", resp["message"])
			assert.Equal(t, float64(tt.expectedID), resp["userId"])
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, m := NewMock(t)
	bob := &domain.Account{ID: 1, Username: "bob", Salary: 50000}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"username":"bob","password":"pw1"}`,
			prepareMock: func() {
				m.service.EXPECT().Login(gomock.Any(), "bob", "pw1").Return(bob, nil)
				m.sessions.EXPECT().Establish(gomock.Any(), gomock.Any(), int64(1)).Return(nil)
				m.cookies.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Missing password",
			body:          `{"username":"bob"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Please provide both username and password.",
		},
		{
			name: "Invalid credentials",
			body: `{"username":"bob","password":"wrong"}`,
			prepareMock: func() {
				m.service.EXPECT().Login(gomock.Any(), "bob", "wrong").Return(nil, domain.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid username or password.",
		},
		{
			name: "Store failure",
			body: `{"username":"bob","password":"pw1"}`,
			prepareMock: func() {
				m.service.EXPECT().Login(gomock.Any(), "bob", "pw1").Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "An error occurred during login.",
		},
		{
			name: "Session save failure",
			body: `{"username":"bob","password":"pw1"}`,
			prepareMock: func() {
				m.service.EXPECT().Login(gomock.Any(), "bob", "pw1").Return(bob, nil)
				m.sessions.EXPECT().Establish(gomock.Any(), gomock.Any(), int64(1)).Return(domain.ErrSession)
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error saving session",
		},
		{
			name: "Cookie signing failure",
			body: `{"username":"bob","password":"pw1"}`,
			prepareMock: func() {
				m.service.EXPECT().Login(gomock.Any(), "bob", "pw1").Return(bob, nil)
				m.sessions.EXPECT().Establish(gomock.Any(), gomock.Any(), int64(1)).Return(nil)
				m.cookies.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(errors.New("signing error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error saving session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			req = req.WithContext(pkgauth.WithSession(req.Context(), &domain.Session{ID: "sid-1"}))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorOf(t, rec))
				return
			}
			assert.JSONEq(t, `{"message":"User logged in successfully"}`, rec.Body.String())
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	handler, m := NewMock(t)
	sess := &domain.Session{ID: "sid-1"}

	t.Run("Successful logout", func(t *testing.T) {
		m.sessions.EXPECT().Terminate(gomock.Any(), sess).Return(nil)
		m.cookies.EXPECT().Clear(gomock.Any())

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req = req.WithContext(pkgauth.WithSession(req.Context(), sess))
		rec := httptest.NewRecorder()
		handler.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"User logged out successfully"}`, rec.Body.String())
	})

	t.Run("Termination failure", func(t *testing.T) {
		m.sessions.EXPECT().Terminate(gomock.Any(), sess).Return(domain.ErrSession)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req = req.WithContext(pkgauth.WithSession(req.Context(), sess))
		rec := httptest.NewRecorder()
		handler.Logout(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Logout failed", errorOf(t, rec))
	})
}
