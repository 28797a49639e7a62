package services

import (
	"context"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/repositories"
	"katador_backend/internal/services/dto"
)

type AdminService interface {
	ListLedgerAccounts(ctx context.Context, page, pageSize int) (*dto.LedgerAccountListResponse, error)
}

type AdminServiceImpl struct {
	ledgerRepo repositories.LedgerRepository
}

func NewAdminService(ledgerRepo repositories.LedgerRepository) AdminService {
	return &AdminServiceImpl{ledgerRepo: ledgerRepo}
}

// ListLedgerAccounts - постраничный список зеркал для операторов;
// точка входа для ручного поиска осиротевших записей
func (s *AdminServiceImpl) ListLedgerAccounts(ctx context.Context, page, pageSize int) (*dto.LedgerAccountListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	mirrors, total, err := s.ledgerRepo.ListMirrors(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	views := make([]dto.LedgerAccountView, 0, len(mirrors))
	for _, m := range mirrors {
		views = append(views, dto.LedgerAccountView{
			ID:          m.ID,
			ExternalID:  m.ExternalID,
			DisplayName: m.DisplayName,
			Role:        m.Role,
			Email:       m.Email,
			Status:      m.Status,
		})
	}

	return &dto.LedgerAccountListResponse{
		Accounts: views,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
