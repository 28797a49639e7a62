package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"katador_backend/internal/models"
)

var (
	ErrMirrorNotFound  = errors.New("ledger account mirror not found")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrCreditsNotFound = errors.New("credit balance not found")
)

// InsufficientCreditsError — баланс меньше запрошенного списания.
// Несет текущий баланс, прочитанный под блокировкой.
type InsufficientCreditsError struct {
	Current int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: current balance %d", e.Current)
}

// LedgerRepository — реляционное хранилище плана и кредитов,
// подчиненное credential store по фактам идентичности.
type LedgerRepository interface {
	// Provision атомарно создает зеркало, стартовый план и строку
	// кредитов: либо все три строки, либо ни одной.
	Provision(ctx context.Context, mirror *models.LedgerAccountMirror, planName string, start, expiration time.Time, initialCredits int) error

	FindMirrorByExternalID(ctx context.Context, externalID string) (*models.LedgerAccountMirror, error)
	FindCurrentPlan(ctx context.Context, accountRef uint) (*models.Plan, error)
	FindCreditBalance(ctx context.Context, accountRef uint) (*models.CreditBalance, error)

	// DebitCredits списывает amount под блокировкой строки баланса.
	DebitCredits(ctx context.Context, externalID string, amount int) (int, error)

	ListMirrors(ctx context.Context, limit, offset int) ([]models.LedgerAccountMirror, int64, error)
}

type LedgerRepositoryImpl struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// AutoMigrateLedger создает таблицы реляционного хранилища
func AutoMigrateLedger(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.LedgerAccountMirror{},
		&models.Plan{},
		&models.CreditBalance{},
	)
}

func (r *LedgerRepositoryImpl) Provision(ctx context.Context, mirror *models.LedgerAccountMirror, planName string, start, expiration time.Time, initialCredits int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mirror).Error; err != nil {
			return err
		}

		plan := &models.Plan{
			AccountRef:     mirror.ID,
			PlanName:       planName,
			StartDate:      start,
			ExpirationDate: expiration,
		}
		if err := tx.Create(plan).Error; err != nil {
			return err
		}

		credit := &models.CreditBalance{
			AccountRef:     mirror.ID,
			CreditsCurrent: initialCredits,
		}
		return tx.Create(credit).Error
	})
}

func (r *LedgerRepositoryImpl) FindMirrorByExternalID(ctx context.Context, externalID string) (*models.LedgerAccountMirror, error) {
	var mirror models.LedgerAccountMirror
	err := r.db.WithContext(ctx).First(&mirror, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMirrorNotFound
		}
		return nil, err
	}
	return &mirror, nil
}

// FindCurrentPlan возвращает строку плана с самой поздней непросроченной
// датой окончания
func (r *LedgerRepositoryImpl) FindCurrentPlan(ctx context.Context, accountRef uint) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).
		Where("account_ref = ? AND expiration_date > ?", accountRef, time.Now().UTC()).
		Order("expiration_date DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *LedgerRepositoryImpl) FindCreditBalance(ctx context.Context, accountRef uint) (*models.CreditBalance, error) {
	var credit models.CreditBalance
	err := r.db.WithContext(ctx).First(&credit, "account_ref = ?", accountRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditsNotFound
		}
		return nil, err
	}
	return &credit, nil
}

// DebitCredits выполняет read-modify-write в одной транзакции под
// SELECT ... FOR UPDATE. Блокировка строки сериализует конкурентные
// списания по одному аккаунту: без нее два запроса могут пройти
// проверку достаточности по одному и тому же устаревшему балансу.
func (r *LedgerRepositoryImpl) DebitCredits(ctx context.Context, externalID string, amount int) (int, error) {
	var remaining int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mirror models.LedgerAccountMirror
		if err := tx.First(&mirror, "external_id = ?", externalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMirrorNotFound
			}
			return err
		}

		var credit models.CreditBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&credit, "account_ref = ?", mirror.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreditsNotFound
			}
			return err
		}

		if credit.CreditsCurrent < amount {
			// rollback без мутации, текущий баланс уходит вызывающему
			return &InsufficientCreditsError{Current: credit.CreditsCurrent}
		}

		remaining = credit.CreditsCurrent - amount
		return tx.Model(&credit).Update("credits_current", remaining).Error
	})
	if err != nil {
		return 0, err
	}

	return remaining, nil
}

func (r *LedgerRepositoryImpl) ListMirrors(ctx context.Context, limit, offset int) ([]models.LedgerAccountMirror, int64, error) {
	var mirrors []models.LedgerAccountMirror
	var total int64

	db := r.db.WithContext(ctx).Model(&models.LedgerAccountMirror{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id").Limit(limit).Offset(offset).Find(&mirrors).Error
	if err != nil {
		return nil, 0, err
	}
	return mirrors, total, nil
}
