package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/dto"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
	"github.com/GlebRadaev/payroll/pkg/utils"
	"github.com/GlebRadaev/payroll/pkg/validate"
)

type Service interface {
	Register(ctx context.Context, username, password string, salary float64) (int64, error)
	Login(ctx context.Context, username, password string) (*domain.Account, error)
}

type SessionService interface {
	Establish(ctx context.Context, sess *domain.Session, accountID int64) error
	Terminate(ctx context.Context, sess *domain.Session) error
}

type Cookies interface {
	Issue(w http.ResponseWriter, sess *domain.Session) error
	Clear(w http.ResponseWriter)
}

type AuthHandler struct {
	authService    Service
	sessionService SessionService
	cookies        Cookies
}

func New(authService Service, sessionService SessionService, cookies Cookies) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		cookies:        cookies,
	}
}

// Signup godoc
//
//	@Summary		Register a new worker
//	@Description	Create an account with username, password and salary
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SignupRequestDTO	true	"Signup request body"
//	@Success		201		{object}	dto.SignupResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing field"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide username, password, and salary.")
		return
	}
	id, err := h.authService.Register(r.Context(), req.Username, req.Password, *req.Salary)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			utils.RespondWithError(w, http.StatusBadRequest, "Please provide username, password, and salary.")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred during registration.")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.SignupResponseDTO{
		Message: "User registered successfully",
		UserID:  id,
	})
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Authenticate and bind the account to the caller's session cookie
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.MessageResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing field"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide both username and password.")
		return
	}
	account, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, "Please provide both username and password.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password.")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred during login.")
		}
		return
	}

	sess := pkgauth.SessionFromContext(r.Context())
	if err := h.sessionService.Establish(r.Context(), sess, account.ID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving session")
		return
	}
	if err := h.cookies.Issue(w, sess); err != nil {
		zap.L().Error("can't issue session cookie", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{
		Message: "User logged in successfully",
	})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Destroy the caller's session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	dto.MessageResponseDTO
//	@Failure		500	{object}	utils.Response	"Logout failed"
//	@Router			/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := pkgauth.SessionFromContext(r.Context())
	if err := h.sessionService.Terminate(r.Context(), sess); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	h.cookies.Clear(w)
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{
		Message: "User logged out successfully",
	})
}
