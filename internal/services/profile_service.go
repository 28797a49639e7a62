package services

import (
	"context"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/logger"
	"katador_backend/internal/models"
	"katador_backend/internal/repositories"
	"katador_backend/internal/services/dto"
)

type ProfileService interface {
	GetProfile(ctx context.Context, accountID string) (*dto.ProfileResponse, error)
}

type ProfileServiceImpl struct {
	accountRepo repositories.AccountRepository
	ledgerRepo  repositories.LedgerRepository
}

func NewProfileService(
	accountRepo repositories.AccountRepository,
	ledgerRepo repositories.LedgerRepository,
) ProfileService {
	return &ProfileServiceImpl{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// GetProfile - профиль аутентифицированного аккаунта: идентичность из
// credential store, план и кредиты из ledger store. Ledger-часть
// деградирует мягко: отсутствие зеркала, неактивный статус или
// недоступность реляционной базы не валят чтение идентичности.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, accountID string) (*dto.ProfileResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrAccountNotFound) {
			// Валидный токен без аккаунта — рассинхронизация токена и хранилища
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.ProfileResponse{
		Account:     dto.NewAccountSummary(account),
		PlanInfo:    dto.PlanInfo{PlanName: models.DefaultPlanName},
		CreditsInfo: dto.CreditsInfo{CreditsCurrent: 0},
	}

	mirror, err := s.ledgerRepo.FindMirrorByExternalID(ctx, accountID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrMirrorNotFound) {
			resp.Note = "ledger mirror not provisioned; defaults shown"
		} else {
			logger.CtxWarn(ctx, "ledger unavailable during profile read",
				"account_id", accountID, "error", err.Error())
			resp.Note = "ledger temporarily unavailable; defaults shown"
		}
		return resp, nil
	}

	if mirror.Status != models.MirrorStatusActivo {
		resp.Note = "account status: " + string(mirror.Status)
		return resp, nil
	}

	s.fillPlanInfo(ctx, mirror.ID, resp)
	s.fillCreditsInfo(ctx, mirror.ID, resp)
	resp.LedgerSynced = true

	return resp, nil
}

func (s *ProfileServiceImpl) fillPlanInfo(ctx context.Context, accountRef uint, resp *dto.ProfileResponse) {
	plan, err := s.ledgerRepo.FindCurrentPlan(ctx, accountRef)
	if err != nil {
		if !appErrors.Is(err, repositories.ErrPlanNotFound) {
			logger.CtxWarn(ctx, "plan lookup failed", "account_ref", accountRef, "error", err.Error())
		}
		resp.Note = appendNote(resp.Note, "no active plan; default shown")
		return
	}

	start := plan.StartDate
	expiration := plan.ExpirationDate
	resp.PlanInfo = dto.PlanInfo{
		PlanName:       plan.PlanName,
		StartDate:      &start,
		ExpirationDate: &expiration,
	}
}

func (s *ProfileServiceImpl) fillCreditsInfo(ctx context.Context, accountRef uint, resp *dto.ProfileResponse) {
	credit, err := s.ledgerRepo.FindCreditBalance(ctx, accountRef)
	if err != nil {
		if !appErrors.Is(err, repositories.ErrCreditsNotFound) {
			logger.CtxWarn(ctx, "credit lookup failed", "account_ref", accountRef, "error", err.Error())
		}
		resp.Note = appendNote(resp.Note, "no credit record; zero shown")
		return
	}

	resp.CreditsInfo = dto.CreditsInfo{CreditsCurrent: credit.CreditsCurrent}
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "; " + note
}
