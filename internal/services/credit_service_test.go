package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/models"
	"katador_backend/internal/services/dto"
)

func setupCreditAccount(ledger *fakeLedgerRepo, credits int) string {
	const externalID = "64a000000000000000000001"
	mirror := ledger.addMirror(externalID, "X", models.AccountRoleModelo, "a@b.com", models.MirrorStatusActivo)
	ledger.addCredit(mirror.ID, credits)
	return externalID
}

func TestConsume_InvalidAmount(t *testing.T) {
	ledger := newFakeLedgerRepo()
	accountID := setupCreditAccount(ledger, 10)
	svc := NewCreditService(ledger)

	for _, amount := range []int{0, -1, -100} {
		_, err := svc.Consume(context.Background(), accountID, &dto.ConsumeRequest{Amount: amount})
		requireCode(t, err, appErrors.CodeValidationFailed)
	}

	assert.Equal(t, 10, ledger.balance(accountID))
}

func TestConsume_UnknownAccount(t *testing.T) {
	svc := NewCreditService(newFakeLedgerRepo())

	_, err := svc.Consume(context.Background(), "64a0000000000000000000ff", &dto.ConsumeRequest{Amount: 1})
	requireCode(t, err, appErrors.CodeCreditAccountNotFound)
}

func TestConsume_Insufficient(t *testing.T) {
	ledger := newFakeLedgerRepo()
	accountID := setupCreditAccount(ledger, 3)
	svc := NewCreditService(ledger)

	_, err := svc.Consume(context.Background(), accountID, &dto.ConsumeRequest{Amount: 5})
	appErr := requireCode(t, err, appErrors.CodeInsufficientCredits)

	// текущий баланс в деталях, мутации не было
	details, ok := appErr.Details.(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 3, details["current_credits"])
	assert.Equal(t, 3, ledger.balance(accountID))
}

func TestConsume_Success(t *testing.T) {
	ledger := newFakeLedgerRepo()
	accountID := setupCreditAccount(ledger, 10)
	svc := NewCreditService(ledger)

	resp, err := svc.Consume(context.Background(), accountID, &dto.ConsumeRequest{
		Amount:      4,
		Description: "perfil destacado",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Remaining)
	assert.Equal(t, 6, ledger.balance(accountID))
}

func TestConsume_TwoConcurrentOnThree(t *testing.T) {
	ledger := newFakeLedgerRepo()
	accountID := setupCreditAccount(ledger, 3)
	svc := NewCreditService(ledger)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Consume(context.Background(), accountID, &dto.ConsumeRequest{Amount: 2})
		}(i)
	}
	wg.Wait()

	// ровно одно списание проходит, баланс не уходит в минус
	var successes, failures int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			requireCode(t, err, appErrors.CodeInsufficientCredits)
			failures++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 1, ledger.balance(accountID))
}

func TestConsume_ConcurrentNoOverdraft(t *testing.T) {
	const (
		initial    = 50
		workers    = 20
		perRequest = 3
	)

	ledger := newFakeLedgerRepo()
	accountID := setupCreditAccount(ledger, initial)
	svc := NewCreditService(ledger)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Consume(context.Background(), accountID, &dto.ConsumeRequest{Amount: perRequest})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	final := ledger.balance(accountID)
	assert.GreaterOrEqual(t, final, 0)
	// итог равен стартовому минус сумма прошедших списаний
	assert.Equal(t, initial-succeeded*perRequest, final)
}
