package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is a bank or cash movement.
type BankTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CompanyID   uint            `gorm:"not null;index" json:"company_id"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description string          `gorm:"size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"` // positive = deposit, negative = withdrawal
	AccountID   *uint           `gorm:"index" json:"account_id"`
	Account     *Account        `gorm:"constraint:OnDelete:SET NULL" json:"account,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsDeposit reports whether the transaction adds money.
func (t BankTransaction) IsDeposit() bool {
	return t.Amount.IsPositive()
}
