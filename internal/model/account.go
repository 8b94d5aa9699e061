package model

import (
	"strings"
	"time"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeIncome    AccountType = "Income"
	AccountTypeExpense   AccountType = "Expense"
)

// AccountTypes lists every valid type in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
}

// ParseAccountType matches s case-insensitively against the known types.
func ParseAccountType(s string) (AccountType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AccountTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// InferAccountType guesses the type from the leading digit of an account code.
// Codes that do not start with 1-5 default to Expense.
func InferAccountType(code string) AccountType {
	code = strings.TrimSpace(code)
	if code == "" {
		return AccountTypeExpense
	}
	switch code[0] {
	case '1':
		return AccountTypeAsset
	case '2':
		return AccountTypeLiability
	case '3':
		return AccountTypeEquity
	case '4':
		return AccountTypeIncome
	default:
		return AccountTypeExpense
	}
}

// GeneratedAccountName is the name given to accounts auto-created from a code.
func GeneratedAccountName(code string) string {
	return "Llogari " + code
}

// Account is a row in a company's chart of accounts.
type Account struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	CompanyID uint        `gorm:"not null;index;uniqueIndex:uq_company_code,priority:1" json:"company_id"`
	Code      string      `gorm:"size:20;not null;uniqueIndex:uq_company_code,priority:2" json:"code"`
	Name      string      `gorm:"size:200;not null" json:"name"`
	Type      AccountType `gorm:"size:30;not null" json:"type"`
	IsActive  bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}
