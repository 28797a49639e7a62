package services

import (
	"context"
	"time"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/auth"
	"katador_backend/internal/logger"
	"katador_backend/internal/models"
	"katador_backend/internal/repositories"
	"katador_backend/internal/services/dto"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	accountRepo repositories.AccountRepository
	ledgerRepo  repositories.LedgerRepository
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	ledgerRepo repositories.LedgerRepository,
) AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Register - регистрация нового аккаунта.
// Сначала создается идентичность в credential store (после этого шага
// регистрация считается состоявшейся), затем одной транзакцией
// провижинятся зеркало, план и кредиты. При провале провижининга
// идентичность компенсируется удалением.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// Валидация без побочных эффектов, в фиксированном порядке
	if req.Email == "" || req.Password == "" || req.Alias == "" || req.Role == "" {
		return nil, appErrors.ErrMissingFields
	}
	if !models.IsValidRole(req.Role) {
		return nil, appErrors.ErrInvalidRole
	}
	if len(req.Password) < 6 {
		return nil, appErrors.ErrWeakPassword
	}

	// Типовой путь без гонки; гонку закрывает уникальный индекс
	if _, err := s.accountRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.ErrEmailAlreadyExists
	} else if !appErrors.Is(err, repositories.ErrAccountNotFound) {
		return nil, appErrors.DatabaseError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Alias:        req.Alias,
		Role:         req.Role,
		Phone:        phoneForRole(req.Role, req.Phone),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if appErrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, appErrors.ErrDuplicateUser
		}
		return nil, appErrors.RegistrationError(err)
	}

	if err := s.provisionLedger(ctx, account); err != nil {
		// Компенсация: откатываем уже созданную идентичность
		s.compensateRegistration(ctx, account, err)
		return nil, appErrors.RegistrationError(err)
	}

	token, err := auth.GenerateToken(account.ID.Hex(), account.Role, account.Email, account.Alias)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token:   token,
		Account: dto.NewAccountSummary(account),
	}, nil
}

// Login - аутентификация по email и паролю
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, appErrors.ErrMissingFields
	}

	// Несуществующий email и неверный пароль не различаются в ответе
	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := s.checkMirrorStatus(ctx, account.ID.Hex()); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(account.ID.Hex(), account.Role, account.Email, account.Alias)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token:   token,
		Account: dto.NewAccountSummary(account),
	}, nil
}

// provisionLedger создает зеркало, стартовый план и кредиты одной
// транзакцией ledger store
func (s *AuthServiceImpl) provisionLedger(ctx context.Context, account *models.Account) error {
	mirror := &models.LedgerAccountMirror{
		ExternalID:  account.ID.Hex(),
		DisplayName: account.Alias,
		Role:        account.Role,
		Email:       account.Email,
		Status:      models.MirrorStatusActivo,
	}

	now := time.Now().UTC()
	expiration := now.AddDate(0, 0, models.DefaultPlanTrialDays)

	return s.ledgerRepo.Provision(ctx, mirror,
		models.DefaultPlanName, now, expiration,
		models.InitialCreditGrant(account.Role),
	)
}

// compensateRegistration удаляет идентичность после провала провижининга.
// Провал самой компенсации оставляет осиротевший аккаунт без зеркала:
// это фиксируется в логе с кодом CONSISTENCY_ERROR для ручной сверки,
// автоматический повтор удаления не выполняется.
func (s *AuthServiceImpl) compensateRegistration(ctx context.Context, account *models.Account, provisionErr error) {
	if delErr := s.accountRepo.Delete(ctx, account.ID.Hex()); delErr != nil {
		logger.CtxError(ctx, "registration compensation failed, manual reconciliation required",
			"code", string(appErrors.CodeConsistencyError),
			"account_id", account.ID.Hex(),
			"email", account.Email,
			"provision_error", provisionErr.Error(),
			"compensation_error", delErr.Error(),
			"timestamp", time.Now().UTC().Format(time.RFC3339),
		)
		return
	}

	logger.CtxWarn(ctx, "ledger provisioning failed, account creation rolled back",
		"account_id", account.ID.Hex(),
		"error", provisionErr.Error(),
	)
}

// checkMirrorStatus блокирует вход для suspendido/baneado. Отсутствие
// зеркала или недоступность ledger store входу не мешают: идентичность
// авторитетна.
func (s *AuthServiceImpl) checkMirrorStatus(ctx context.Context, externalID string) error {
	mirror, err := s.ledgerRepo.FindMirrorByExternalID(ctx, externalID)
	if err != nil {
		if !appErrors.Is(err, repositories.ErrMirrorNotFound) {
			logger.CtxWarn(ctx, "ledger unavailable during login, proceeding on identity alone",
				"account_id", externalID, "error", err.Error())
		}
		return nil
	}

	switch mirror.Status {
	case models.MirrorStatusSuspendido, models.MirrorStatusBaneado:
		return appErrors.ErrAccountNotActive.WithDetails(string(mirror.Status))
	}
	return nil
}

// phoneForRole: телефон хранится только для роли modelo
func phoneForRole(role models.AccountRole, phone string) string {
	if role != models.AccountRoleModelo {
		return ""
	}
	return phone
}
