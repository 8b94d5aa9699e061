package importer

import (
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

// ImportBank stores one transaction per row. Rows whose date does not parse
// are skipped without an error entry; blank or unparsable amounts are reported.
func (s *Service) ImportBank(tx *gorm.DB, companyID uint, t Table) (Result, error) {
	res := Result{Kind: KindBank}
	b, err := BankSchema.Bind(t.Header)
	if err != nil {
		return res, err
	}

	type bankRow struct {
		txn  model.BankTransaction
		code string
	}
	var pending []bankRow
	for i, row := range t.Rows {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		date, err := ParseDate(b.Get(row, "date"))
		if err != nil {
			res.Skipped++
			continue
		}
		raw := b.Get(row, "amount")
		if raw == "" {
			res.fail(rowNum, "", "amount is required")
			continue
		}
		amount, err := model.ParseAmount(raw)
		if err != nil {
			res.fail(rowNum, "", "cannot parse amount %q", raw)
			continue
		}
		pending = append(pending, bankRow{
			txn: model.BankTransaction{
				CompanyID:   companyID,
				Date:        model.Day(date),
				Description: b.Get(row, "description"),
				Amount:      model.Cents(amount),
			},
			code: b.Get(row, "account_code"),
		})
	}

	cache := s.newAccountCache(tx, companyID)
	for _, p := range pending {
		txn := p.txn
		if p.code != "" {
			acct, err := cache.resolve(p.code)
			if err != nil {
				return Result{Kind: KindBank}, err
			}
			txn.AccountID = &acct.ID
		}
		if err := s.bank.Record(tx, &txn); err != nil {
			return Result{Kind: KindBank}, err
		}
		res.Created++
	}
	res.AccountsCreated = cache.created
	return res, nil
}
