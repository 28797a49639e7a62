package dto

import "katador_backend/internal/models"

type RegisterRequest struct {
	Email    string             `json:"email" validate:"omitempty,email"`
	Password string             `json:"password"`
	Alias    string             `json:"alias"`
	Role     models.AccountRole `json:"role"`
	Phone    string             `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountSummary — публичное представление аккаунта, без хеша пароля
type AccountSummary struct {
	ID    string             `json:"id"`
	Alias string             `json:"alias"`
	Email string             `json:"email"`
	Role  models.AccountRole `json:"role"`
	Phone string             `json:"phone,omitempty"`
}

type AuthResponse struct {
	Token   string         `json:"token"`
	Account AccountSummary `json:"account"`
}

// NewAccountSummary строит публичное представление из документа аккаунта
func NewAccountSummary(account *models.Account) AccountSummary {
	return AccountSummary{
		ID:    account.ID.Hex(),
		Alias: account.Alias,
		Email: account.Email,
		Role:  account.Role,
		Phone: account.Phone,
	}
}
