package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"katador_backend/internal/models"
	"katador_backend/internal/repositories"
)

// In-memory фейки обоих хранилищ. Мьютекс в fakeLedgerRepo играет роль
// блокировки строки: DebitCredits держит его на весь read-modify-write,
// как реальная реализация держит SELECT ... FOR UPDATE.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*models.Account // key: id hex

	failCreate error
	failDelete error
	failFind   error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.Account)}
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	for _, acc := range f.accounts {
		if acc.Email == email {
			copy := *acc
			return &copy, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	acc, ok := f.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	copy := *acc
	return &copy, nil
}

func (f *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	for _, acc := range f.accounts {
		if acc.Email == account.Email {
			return repositories.ErrAccountAlreadyExists
		}
	}
	if account.ID.IsZero() {
		account.ID = bson.NewObjectID()
	}
	account.CreatedAt = time.Now().UTC()
	copy := *account
	f.accounts[account.ID.Hex()] = &copy
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete != nil {
		return f.failDelete
	}
	if _, ok := f.accounts[id]; !ok {
		return repositories.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accounts)
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	mirrors map[string]*models.LedgerAccountMirror // key: externalID
	plans   []models.Plan
	credits map[uint]*models.CreditBalance // key: accountRef
	nextID  uint

	failProvision error
	failFind      error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		mirrors: make(map[string]*models.LedgerAccountMirror),
		credits: make(map[uint]*models.CreditBalance),
	}
}

func (f *fakeLedgerRepo) Provision(_ context.Context, mirror *models.LedgerAccountMirror, planName string, start, expiration time.Time, initialCredits int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProvision != nil {
		// атомарность: провал не оставляет частичных строк
		return f.failProvision
	}
	f.nextID++
	mirror.ID = f.nextID
	f.mirrors[mirror.ExternalID] = mirror
	f.plans = append(f.plans, models.Plan{
		AccountRef:     mirror.ID,
		PlanName:       planName,
		StartDate:      start,
		ExpirationDate: expiration,
	})
	f.credits[mirror.ID] = &models.CreditBalance{AccountRef: mirror.ID, CreditsCurrent: initialCredits}
	return nil
}

func (f *fakeLedgerRepo) FindMirrorByExternalID(_ context.Context, externalID string) (*models.LedgerAccountMirror, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	mirror, ok := f.mirrors[externalID]
	if !ok {
		return nil, repositories.ErrMirrorNotFound
	}
	copy := *mirror
	return &copy, nil
}

func (f *fakeLedgerRepo) FindCurrentPlan(_ context.Context, accountRef uint) (*models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	now := time.Now().UTC()
	var current *models.Plan
	for i := range f.plans {
		p := &f.plans[i]
		if p.AccountRef != accountRef || !p.ExpirationDate.After(now) {
			continue
		}
		if current == nil || p.ExpirationDate.After(current.ExpirationDate) {
			current = p
		}
	}
	if current == nil {
		return nil, repositories.ErrPlanNotFound
	}
	copy := *current
	return &copy, nil
}

func (f *fakeLedgerRepo) FindCreditBalance(_ context.Context, accountRef uint) (*models.CreditBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind != nil {
		return nil, f.failFind
	}
	credit, ok := f.credits[accountRef]
	if !ok {
		return nil, repositories.ErrCreditsNotFound
	}
	copy := *credit
	return &copy, nil
}

func (f *fakeLedgerRepo) DebitCredits(_ context.Context, externalID string, amount int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mirror, ok := f.mirrors[externalID]
	if !ok {
		return 0, repositories.ErrMirrorNotFound
	}
	credit, ok := f.credits[mirror.ID]
	if !ok {
		return 0, repositories.ErrCreditsNotFound
	}
	if credit.CreditsCurrent < amount {
		return 0, &repositories.InsufficientCreditsError{Current: credit.CreditsCurrent}
	}
	credit.CreditsCurrent -= amount
	return credit.CreditsCurrent, nil
}

func (f *fakeLedgerRepo) ListMirrors(_ context.Context, limit, offset int) ([]models.LedgerAccountMirror, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.LedgerAccountMirror
	for _, m := range f.mirrors {
		all = append(all, *m)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeLedgerRepo) balance(externalID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	mirror, ok := f.mirrors[externalID]
	if !ok {
		return -1
	}
	return f.credits[mirror.ID].CreditsCurrent
}

func (f *fakeLedgerRepo) setBalance(externalID string, credits int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits[f.mirrors[externalID].ID].CreditsCurrent = credits
}

func (f *fakeLedgerRepo) addMirror(externalID, displayName string, role models.AccountRole, email string, status models.MirrorStatus) *models.LedgerAccountMirror {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	mirror := &models.LedgerAccountMirror{
		ID:          f.nextID,
		ExternalID:  externalID,
		DisplayName: displayName,
		Role:        role,
		Email:       email,
		Status:      status,
	}
	f.mirrors[externalID] = mirror
	return mirror
}

func (f *fakeLedgerRepo) addCredit(accountRef uint, credits int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits[accountRef] = &models.CreditBalance{AccountRef: accountRef, CreditsCurrent: credits}
}

func (f *fakeLedgerRepo) addPlan(accountRef uint, name string, start, expiration time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans = append(f.plans, models.Plan{
		AccountRef:     accountRef,
		PlanName:       name,
		StartDate:      start,
		ExpirationDate: expiration,
	})
}
