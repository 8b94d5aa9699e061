package model

import "time"

// Company is the tenant root. Every other entity belongs to one.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	TaxID     string    `gorm:"size:32" json:"tax_id"`
	Address   string    `gorm:"size:255" json:"address"`
	CreatedAt time.Time `json:"created_at"`

	Accounts         []Account         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	JournalEntries   []JournalEntry    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BankTransactions []BankTransaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ActivityLogs     []ActivityLog     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
