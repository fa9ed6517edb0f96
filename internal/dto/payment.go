package dto

type PayRequestDTO struct {
	WorkerID int64    `json:"workerId" validate:"required"`
	Amount   *float64 `json:"amount" validate:"required"`
}

type PayResponseDTO struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
}
