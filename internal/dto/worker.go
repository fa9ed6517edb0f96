package dto

import "github.com/GlebRadaev/payroll/internal/domain"

type WorkerDTO struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Salary   float64 `json:"salary"`
	Balance  float64 `json:"balance"`
}

type WorkersResponseDTO struct {
	Workers []WorkerDTO `json:"workers"`
}

type ProfileResponseDTO struct {
	Username string  `json:"username"`
	Salary   float64 `json:"salary"`
	Balance  float64 `json:"balance"`
}

type DeleteResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewWorkers copies only the public fields, so a password hash can never reach a response body.
func NewWorkers(accounts []domain.Account) WorkersResponseDTO {
	workers := make([]WorkerDTO, 0, len(accounts))
	for _, a := range accounts {
		workers = append(workers, WorkerDTO{
			ID:       a.ID,
			Username: a.Username,
			Salary:   a.Salary,
			Balance:  a.Balance,
		})
	}
	return WorkersResponseDTO{Workers: workers}
}

func NewProfile(a *domain.Account) ProfileResponseDTO {
	return ProfileResponseDTO{
		Username: a.Username,
		Salary:   a.Salary,
		Balance:  a.Balance,
	}
}
