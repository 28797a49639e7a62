package services

import (
	"context"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/logger"
	"katador_backend/internal/repositories"
	"katador_backend/internal/services/dto"
)

type CreditService interface {
	Consume(ctx context.Context, accountID string, req *dto.ConsumeRequest) (*dto.ConsumeResponse, error)
}

type CreditServiceImpl struct {
	ledgerRepo repositories.LedgerRepository
}

func NewCreditService(ledgerRepo repositories.LedgerRepository) CreditService {
	return &CreditServiceImpl{ledgerRepo: ledgerRepo}
}

// Consume - списание кредитов под блокировкой строки баланса.
// При недостатке кредитов транзакция откатывается без мутации,
// клиент получает текущий баланс в details.
func (s *CreditServiceImpl) Consume(ctx context.Context, accountID string, req *dto.ConsumeRequest) (*dto.ConsumeResponse, error) {
	if req.Amount <= 0 {
		return nil, appErrors.NewBadRequestError("amount must be a positive integer")
	}

	remaining, err := s.ledgerRepo.DebitCredits(ctx, accountID, req.Amount)
	if err != nil {
		var insufficient *repositories.InsufficientCreditsError
		if appErrors.As(err, &insufficient) {
			return nil, appErrors.ErrInsufficientCredits.WithDetails(map[string]int{
				"current_credits": insufficient.Current,
			})
		}
		if appErrors.Is(err, repositories.ErrMirrorNotFound) || appErrors.Is(err, repositories.ErrCreditsNotFound) {
			return nil, appErrors.ErrCreditAccountNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "credits consumed",
		"account_id", accountID,
		"amount", req.Amount,
		"remaining", remaining,
		"description", req.Description,
	)

	return &dto.ConsumeResponse{Remaining: remaining}, nil
}
