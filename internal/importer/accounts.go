package importer

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/accounts"
	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

// ImportAccounts creates one account per valid row. A code that already
// exists, or appears twice in the file, rejects the whole file.
func (s *Service) ImportAccounts(tx *gorm.DB, companyID uint, t Table) (Result, error) {
	res := Result{Kind: KindAccounts}
	b, err := AccountSchema.Bind(t.Header)
	if err != nil {
		return res, err
	}

	var existing []string
	if err := tx.Model(&model.Account{}).Where("company_id = ?", companyID).Pluck("code", &existing).Error; err != nil {
		return res, fmt.Errorf("loading account codes: %w", err)
	}
	seen := make(map[string]int, len(existing)+len(t.Rows))
	for _, code := range existing {
		seen[code] = 0
	}

	var pending []accounts.Input
	for i, row := range t.Rows {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		in := accounts.Input{
			Code: b.Get(row, "code"),
			Name: b.Get(row, "name"),
			Type: b.Get(row, "type"),
		}
		acct, err := accounts.Validate(in)
		if err != nil {
			res.fail(rowNum, in.Code, "%s", messageOf(err))
			continue
		}
		if first, dup := seen[acct.Code]; dup {
			if first == 0 {
				return Result{Kind: KindAccounts}, apperr.New(apperr.KindDuplicateAccountCode, "code",
					"row %d: account code %s already exists", rowNum, acct.Code)
			}
			return Result{Kind: KindAccounts}, apperr.New(apperr.KindDuplicateAccountCode, "code",
				"row %d: account code %s repeats row %d", rowNum, acct.Code, first)
		}
		seen[acct.Code] = rowNum
		pending = append(pending, in)
	}

	for _, in := range pending {
		if _, err := s.accounts.Create(tx, companyID, in); err != nil {
			return Result{Kind: KindAccounts}, err
		}
		res.Created++
	}
	return res, nil
}

func messageOf(err error) string {
	if ve, ok := apperr.As(err); ok {
		return ve.Message
	}
	return err.Error()
}
