// Package report computes the trial balance.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Row is one account in the trial balance.
type Row struct {
	AccountID   uint              `json:"account_id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Type        model.AccountType `json:"type"`
	DebitTotal  decimal.Decimal   `json:"debit_total"`
	CreditTotal decimal.Decimal   `json:"credit_total"`
	Balance     decimal.Decimal   `json:"balance"`
}

// TrialBalance is the report for one company.
type TrialBalance struct {
	CompanyID   uint            `json:"company_id"`
	Rows        []Row           `json:"rows"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	// TotalBalance is zero when every stored entry balances.
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type aggregate struct {
	ID          uint
	Code        string
	Name        string
	Type        model.AccountType
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// Compute aggregates every account of the company, active or not, over all
// journal lines. Accounts with no lines appear with zero totals.
func Compute(db *gorm.DB, companyID uint) (TrialBalance, error) {
	var aggs []aggregate
	err := db.Model(&model.Account{}).
		Select("accounts.id, accounts.code, accounts.name, accounts.type, "+
			"COALESCE(SUM(journal_lines.debit), 0) AS debit_total, "+
			"COALESCE(SUM(journal_lines.credit), 0) AS credit_total").
		Joins("LEFT JOIN journal_lines ON journal_lines.account_id = accounts.id").
		Where("accounts.company_id = ?", companyID).
		Group("accounts.id, accounts.code, accounts.name, accounts.type").
		Order("accounts.code ASC").
		Scan(&aggs).Error
	if err != nil {
		return TrialBalance{}, fmt.Errorf("computing trial balance: %w", err)
	}

	tb := TrialBalance{
		CompanyID:    companyID,
		Rows:         make([]Row, 0, len(aggs)),
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
		TotalBalance: decimal.Zero,
	}
	for _, a := range aggs {
		debit := a.DebitTotal.Round(2)
		credit := a.CreditTotal.Round(2)
		row := Row{
			AccountID:   a.ID,
			Code:        a.Code,
			Name:        a.Name,
			Type:        a.Type,
			DebitTotal:  debit,
			CreditTotal: credit,
			Balance:     debit.Sub(credit),
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
		tb.TotalBalance = tb.TotalBalance.Add(row.Balance)
	}
	return tb, nil
}
