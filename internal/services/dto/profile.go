package dto

import "time"

// PlanInfo — сведения о текущем плане для профиля
type PlanInfo struct {
	PlanName       string     `json:"plan_name"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// CreditsInfo — сведения о балансе кредитов для профиля
type CreditsInfo struct {
	CreditsCurrent int `json:"credits_current"`
}

// ProfileResponse — идентичность из credential store, план и кредиты
// из ledger store. LedgerSynced=false означает, что реляционная часть
// недоступна или отсутствует и поля плана/кредитов — значения по
// умолчанию; Note объясняет причину.
type ProfileResponse struct {
	Account      AccountSummary `json:"account"`
	PlanInfo     PlanInfo       `json:"plan_info"`
	CreditsInfo  CreditsInfo    `json:"credits_info"`
	LedgerSynced bool           `json:"ledger_synced"`
	Note         string         `json:"note,omitempty"`
}
