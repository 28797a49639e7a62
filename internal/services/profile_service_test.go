package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/v2/bson"

	"katador_backend/internal/appErrors"
	"katador_backend/internal/models"
)

func addAccount(accounts *fakeAccountRepo, email, alias string, role models.AccountRole) string {
	account := &models.Account{
		ID:           bson.NewObjectID(),
		Email:        email,
		PasswordHash: "$2a$10$irrelevant",
		Alias:        alias,
		Role:         role,
	}
	_ = accounts.Create(context.Background(), account)
	return account.ID.Hex()
}

func TestGetProfile_AccountMissing(t *testing.T) {
	svc := NewProfileService(newFakeAccountRepo(), newFakeLedgerRepo())

	_, err := svc.GetProfile(context.Background(), "64a0000000000000000000aa")
	requireCode(t, err, appErrors.CodeAccountNotFound)
}

func TestGetProfile_NoMirrorFallsBackToDefaults(t *testing.T) {
	accounts := newFakeAccountRepo()
	accountID := addAccount(accounts, "a@b.com", "X", models.AccountRoleModelo)
	svc := NewProfileService(accounts, newFakeLedgerRepo())

	// отсутствие зеркала — не ошибка: идентичность авторитетна
	resp, err := svc.GetProfile(context.Background(), accountID)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultPlanName, resp.PlanInfo.PlanName)
	assert.Equal(t, 0, resp.CreditsInfo.CreditsCurrent)
	assert.False(t, resp.LedgerSynced)
	assert.NotEmpty(t, resp.Note)
	assert.Equal(t, "X", resp.Account.Alias)
}

func TestGetProfile_LedgerDownFallsBackToDefaults(t *testing.T) {
	accounts := newFakeAccountRepo()
	accountID := addAccount(accounts, "a@b.com", "X", models.AccountRoleModelo)
	ledger := newFakeLedgerRepo()
	ledger.failFind = errors.New("mysql gone away")
	svc := NewProfileService(accounts, ledger)

	resp, err := svc.GetProfile(context.Background(), accountID)
	require.NoError(t, err)
	assert.False(t, resp.LedgerSynced)
	assert.Equal(t, models.DefaultPlanName, resp.PlanInfo.PlanName)
}

func TestGetProfile_InactiveMirrorDegrades(t *testing.T) {
	accounts := newFakeAccountRepo()
	accountID := addAccount(accounts, "a@b.com", "X", models.AccountRoleModelo)

	ledger := newFakeLedgerRepo()
	mirror := ledger.addMirror(accountID, "X", models.AccountRoleModelo, "a@b.com", models.MirrorStatusBaneado)
	ledger.addCredit(mirror.ID, 42)

	svc := NewProfileService(accounts, ledger)

	resp, err := svc.GetProfile(context.Background(), accountID)
	require.NoError(t, err)

	// неактивный статус: значения по умолчанию с пояснением, не ошибка
	assert.False(t, resp.LedgerSynced)
	assert.Contains(t, resp.Note, "baneado")
	assert.Equal(t, 0, resp.CreditsInfo.CreditsCurrent)
}

func TestGetProfile_ActiveMirrorFullView(t *testing.T) {
	accounts := newFakeAccountRepo()
	accountID := addAccount(accounts, "a@b.com", "X", models.AccountRoleModelo)

	now := time.Now().UTC()
	ledger := newFakeLedgerRepo()
	mirror := ledger.addMirror(accountID, "X", models.AccountRoleModelo, "a@b.com", models.MirrorStatusActivo)
	ledger.addCredit(mirror.ID, 7)
	ledger.addPlan(mirror.ID, "Premium", now.AddDate(0, 0, -5), now.AddDate(0, 0, 25))
	// просроченная строка истории не должна побеждать
	ledger.addPlan(mirror.ID, models.DefaultPlanName, now.AddDate(0, 0, -40), now.AddDate(0, 0, -10))

	svc := NewProfileService(accounts, ledger)

	resp, err := svc.GetProfile(context.Background(), accountID)
	require.NoError(t, err)

	assert.True(t, resp.LedgerSynced)
	assert.Equal(t, "Premium", resp.PlanInfo.PlanName)
	assert.Equal(t, 7, resp.CreditsInfo.CreditsCurrent)
	assert.Empty(t, resp.Note)
}

func TestGetProfile_NoPlanRowShowsDefault(t *testing.T) {
	accounts := newFakeAccountRepo()
	accountID := addAccount(accounts, "a@b.com", "X", models.AccountRoleModelo)

	ledger := newFakeLedgerRepo()
	mirror := ledger.addMirror(accountID, "X", models.AccountRoleModelo, "a@b.com", models.MirrorStatusActivo)
	ledger.addCredit(mirror.ID, 5)

	svc := NewProfileService(accounts, ledger)

	resp, err := svc.GetProfile(context.Background(), accountID)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultPlanName, resp.PlanInfo.PlanName)
	assert.Equal(t, 5, resp.CreditsInfo.CreditsCurrent)
	assert.Contains(t, resp.Note, "no active plan")
}
