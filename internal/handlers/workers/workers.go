package workers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/dto"
	pkgauth "github.com/GlebRadaev/payroll/pkg/auth"
	"github.com/GlebRadaev/payroll/pkg/utils"
)

type Service interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type WorkersHandler struct {
	accountService Service
}

func New(accountService Service) *WorkersHandler {
	return &WorkersHandler{
		accountService: accountService,
	}
}

// List godoc
//
//	@Summary		List workers
//	@Tags			Workers
//	@Produce		json
//	@Success		200	{object}	dto.WorkersResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/workers [get]
func (h *WorkersHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "Failed to retrieve workers.")
}

// Balances godoc
//
//	@Summary		List worker balances
//	@Tags			Workers
//	@Produce		json
//	@Success		200	{object}	dto.WorkersResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/workers/balance [get]
func (h *WorkersHandler) Balances(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "Failed to retrieve worker balances.")
}

func (h *WorkersHandler) list(w http.ResponseWriter, r *http.Request, failure string) {
	accounts, err := h.accountService.ListAccounts(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, failure)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWorkers(accounts))
}

// Profile godoc
//
//	@Summary		Profile of the logged in worker
//	@Tags			Workers
//	@Produce		json
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/profile [get]
func (h *WorkersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pkgauth.AccountIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.profile(w, r, accountID)
}

// ProfileByID godoc
//
//	@Summary		Profile by id
//	@Description	Only the logged in worker's own id is accepted
//	@Tags			Workers
//	@Produce		json
//	@Param			id	path		int	true	"Worker id"
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid user id"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/profile/{id} [get]
func (h *WorkersHandler) ProfileByID(w http.ResponseWriter, r *http.Request) {
	id, ok := ownID(w, r)
	if !ok {
		return
	}
	h.profile(w, r, id)
}

func (h *WorkersHandler) profile(w http.ResponseWriter, r *http.Request, id int64) {
	account, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching profile data.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewProfile(account))
}

// Delete godoc
//
//	@Summary		Delete a worker
//	@Description	Only the logged in worker's own account can be deleted
//	@Tags			Workers
//	@Produce		json
//	@Param			id	path		int	true	"Worker id"
//	@Success		200	{object}	dto.DeleteResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid user id"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/users/{id} [delete]
func (h *WorkersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ownID(w, r)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting user.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DeleteResponseDTO{
		Success: true,
		Message: "User deleted successfully",
	})
}

// ownID parses the {id} path parameter and checks it names the session's account.
func ownID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	accountID, ok := pkgauth.AccountIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	if id != accountID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return 0, false
	}
	return id, true
}
