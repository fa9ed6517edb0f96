package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/payroll/internal/domain"
	"github.com/GlebRadaev/payroll/internal/dto"
	"github.com/GlebRadaev/payroll/pkg/utils"
	"github.com/GlebRadaev/payroll/pkg/validate"
)

type Service interface {
	Credit(ctx context.Context, accountID int64, amount float64) (float64, error)
}

type PaymentsHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *PaymentsHandler {
	return &PaymentsHandler{
		ledgerService: ledgerService,
	}
}

// Pay godoc
//
//	@Summary		Pay a worker
//	@Description	Credit amount to the worker's balance
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayRequestDTO	true	"Payment request body"
//	@Success		200		{object}	dto.PayResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing field"
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/pay [post]
func (h *PaymentsHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Worker ID and amount are required.")
		return
	}

	balance, err := h.ledgerService.Credit(r.Context(), req.WorkerID, *req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment amount.")
		case errors.Is(err, domain.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, "Insufficient balance.")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Error processing payment.")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PayResponseDTO{
		Success: true,
		Message: "Payment successful!",
		Balance: balance,
	})
}
