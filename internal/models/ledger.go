package models

import "time"

// LedgerAccountMirror — зеркало аккаунта на реляционной стороне.
// ExternalID хранит id документа из credential store как значение:
// нативного внешнего ключа между хранилищами нет, целостность
// обеспечивается приложением.
type LedgerAccountMirror struct {
	ID          uint         `gorm:"primaryKey;autoIncrement"`
	ExternalID  string       `gorm:"type:varchar(64);uniqueIndex;not null"`
	DisplayName string       `gorm:"type:varchar(100);not null"`
	Role        AccountRole  `gorm:"type:varchar(20);not null"`
	Email       string       `gorm:"type:varchar(255);not null"`
	Status      MirrorStatus `gorm:"type:varchar(20);not null;default:'activo'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LedgerAccountMirror) TableName() string { return "ledger_accounts" }

// Plan — строка истории планов. Текущий план = строка с самой поздней
// непросроченной ExpirationDate.
type Plan struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	AccountRef     uint      `gorm:"not null;index"`
	PlanName       string    `gorm:"type:varchar(50);not null"`
	StartDate      time.Time `gorm:"not null"`
	ExpirationDate time.Time `gorm:"not null"`
	CreatedAt      time.Time

	// Relations
	Account LedgerAccountMirror `gorm:"foreignKey:AccountRef"`
}

func (Plan) TableName() string { return "plans" }

// CreditBalance — ровно одна строка на аккаунт, баланс не бывает
// отрицательным. Мутируется только сервисом списания.
type CreditBalance struct {
	ID             uint `gorm:"primaryKey;autoIncrement"`
	AccountRef     uint `gorm:"not null;uniqueIndex"`
	CreditsCurrent int  `gorm:"not null;default:0"`
	UpdatedAt      time.Time

	// Relations
	Account LedgerAccountMirror `gorm:"foreignKey:AccountRef"`
}

func (CreditBalance) TableName() string { return "credit_balances" }

const (
	// DefaultPlanName — план, назначаемый при провижининге
	DefaultPlanName = "Gratis"
	// DefaultPlanTrialDays — длительность стартового периода
	DefaultPlanTrialDays = 30
)
