// Package bank records bank and cash movements.
package bank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Input is a transaction as submitted. Amount is signed: positive for a
// deposit, negative for a withdrawal.
type Input struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AccountID   string `json:"account_id"`
}

// Ledger is a company's transactions with their running total.
type Ledger struct {
	Transactions []model.BankTransaction `json:"transactions"`
	Balance      decimal.Decimal         `json:"balance"`
}

// Service provides bank transaction operations.
type Service struct{}

// NewService returns a Service.
func NewService() *Service {
	return &Service{}
}

// Create validates and stores one transaction.
func (s *Service) Create(tx *gorm.DB, companyID uint, in Input) (model.BankTransaction, error) {
	ds := strings.TrimSpace(in.Date)
	if ds == "" {
		return model.BankTransaction{}, apperr.MissingField("date")
	}
	as := strings.TrimSpace(in.Amount)
	if as == "" {
		return model.BankTransaction{}, apperr.MissingField("amount")
	}
	date, err := time.Parse(model.DateFormat, ds)
	if err != nil {
		return model.BankTransaction{}, apperr.New(apperr.KindUnparsableDate, "date", "cannot parse date %q, expected YYYY-MM-DD", ds)
	}
	amount, err := decimal.NewFromString(as)
	if err != nil {
		return model.BankTransaction{}, apperr.New(apperr.KindInvalidAmount, "amount", "cannot parse amount %q", as)
	}

	txn := model.BankTransaction{
		CompanyID:   companyID,
		Date:        model.Day(date),
		Description: strings.TrimSpace(in.Description),
		Amount:      model.Cents(amount),
	}

	if ref := strings.TrimSpace(in.AccountID); ref != "" {
		accountID, err := strconv.ParseUint(ref, 10, 64)
		if err != nil {
			return model.BankTransaction{}, apperr.New(apperr.KindUnknownAccount, "account_id", "unknown account %q", ref)
		}
		var n int64
		err = tx.Model(&model.Account{}).Where("company_id = ? AND id = ?", companyID, accountID).Count(&n).Error
		if err != nil {
			return model.BankTransaction{}, fmt.Errorf("checking account %d: %w", accountID, err)
		}
		if n == 0 {
			return model.BankTransaction{}, apperr.New(apperr.KindUnknownAccount, "account_id", "unknown account %d", accountID)
		}
		id := uint(accountID)
		txn.AccountID = &id
	}

	if err := s.Record(tx, &txn); err != nil {
		return model.BankTransaction{}, err
	}
	return txn, nil
}

// Record stores a prepared transaction.
func (s *Service) Record(tx *gorm.DB, txn *model.BankTransaction) error {
	if err := tx.Create(txn).Error; err != nil {
		return fmt.Errorf("creating bank transaction: %w", err)
	}
	return nil
}

// List returns the company's transactions, newest first, and their balance.
func (s *Service) List(db *gorm.DB, companyID uint) (Ledger, error) {
	var txns []model.BankTransaction
	err := db.Preload("Account").Where("company_id = ?", companyID).
		Order("date DESC").Order("id DESC").Find(&txns).Error
	if err != nil {
		return Ledger{}, fmt.Errorf("listing bank transactions: %w", err)
	}
	balance := decimal.Zero
	for _, t := range txns {
		balance = balance.Add(t.Amount)
	}
	return Ledger{Transactions: txns, Balance: balance.Round(2)}, nil
}

// Delete removes one transaction and returns it.
func (s *Service) Delete(tx *gorm.DB, id uint) (model.BankTransaction, error) {
	var txn model.BankTransaction
	err := tx.First(&txn, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankTransaction{}, apperr.NotFound("transaction", id)
	}
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("loading bank transaction %d: %w", id, err)
	}
	if err := tx.Delete(&txn).Error; err != nil {
		return model.BankTransaction{}, fmt.Errorf("deleting bank transaction %d: %w", id, err)
	}
	return txn, nil
}
