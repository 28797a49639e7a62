package dto

import "katador_backend/internal/models"

// LedgerAccountView — строка зеркала для админского списка
type LedgerAccountView struct {
	ID          uint                `json:"id"`
	ExternalID  string              `json:"external_id"`
	DisplayName string              `json:"display_name"`
	Role        models.AccountRole  `json:"role"`
	Email       string              `json:"email"`
	Status      models.MirrorStatus `json:"status"`
}

type LedgerAccountListResponse struct {
	Accounts []LedgerAccountView `json:"accounts"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}
