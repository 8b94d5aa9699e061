package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one double-entry posting. Lines are created with it and
// removed with it.
type JournalEntry struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	CompanyID   uint          `gorm:"not null;index" json:"company_id"`
	Reference   string        `gorm:"size:64;index" json:"reference"`
	Date        time.Time     `gorm:"type:date;not null;index" json:"date"`
	Description string        `gorm:"size:255" json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	Lines       []JournalLine `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// JournalLine is one side of a journal entry. Exactly one of Debit/Credit is
// normally nonzero; both are non-negative.
type JournalLine struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	EntryID   uint            `gorm:"not null;index" json:"entry_id"`
	AccountID uint            `gorm:"not null;index" json:"account_id"`
	Account   *Account        `json:"account,omitempty"`
	Memo      string          `gorm:"size:255" json:"memo"`
	Debit     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"debit"`
	Credit    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"credit"`
}
