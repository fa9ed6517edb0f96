package dto

type SignupRequestDTO struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Salary   *float64 `json:"salary" validate:"required"`
}

type SignupResponseDTO struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type MessageResponseDTO struct {
	Message string `json:"message"`
}
