// Package accounts manages each company's chart of accounts.
package accounts

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
	"github.com/cleared-dev/ledgerbook/internal/store"
)

// Input holds the fields accepted when creating an account.
type Input struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Service reads and writes accounts. Every method takes the database handle
// it runs on; writes expect a transaction from store.Do.
type Service struct{}

// NewService returns a Service.
func NewService() *Service {
	return &Service{}
}

// Validate checks and normalizes an Input without touching the database.
func Validate(in Input) (model.Account, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	rawType := strings.TrimSpace(in.Type)
	switch {
	case code == "":
		return model.Account{}, apperr.MissingField("code")
	case name == "":
		return model.Account{}, apperr.MissingField("name")
	case rawType == "":
		return model.Account{}, apperr.MissingField("type")
	}
	typ, ok := model.ParseAccountType(rawType)
	if !ok {
		return model.Account{}, apperr.New(apperr.KindInvalidAccountType, "type", "unknown account type %q", rawType)
	}
	return model.Account{Code: code, Name: name, Type: typ, IsActive: true}, nil
}

// Create adds an account to a company's chart.
func (s *Service) Create(tx *gorm.DB, companyID uint, in Input) (model.Account, error) {
	acct, err := Validate(in)
	if err != nil {
		return model.Account{}, err
	}
	acct.CompanyID = companyID
	if err := s.insert(tx, &acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// insert writes acct, translating a (company, code) collision into
// DuplicateAccountCode. The pre-check gives a clean error on every driver;
// the constraint still catches concurrent inserts.
func (s *Service) insert(tx *gorm.DB, acct *model.Account) error {
	exists, err := s.codeExists(tx, acct.CompanyID, acct.Code)
	if err != nil {
		return err
	}
	if exists {
		return duplicateCode(acct.Code)
	}
	if err := tx.Create(acct).Error; err != nil {
		if store.IsDuplicate(err) {
			return duplicateCode(acct.Code)
		}
		return fmt.Errorf("creating account %s: %w", acct.Code, err)
	}
	return nil
}

func duplicateCode(code string) error {
	return apperr.New(apperr.KindDuplicateAccountCode, "code", "account code %s already exists", code)
}

func (s *Service) codeExists(db *gorm.DB, companyID uint, code string) (bool, error) {
	var n int64
	err := db.Model(&model.Account{}).Where("company_id = ? AND code = ?", companyID, code).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("checking account code %s: %w", code, err)
	}
	return n > 0, nil
}

// ListActive returns the company's active accounts ordered by code.
func (s *Service) ListActive(db *gorm.DB, companyID uint) ([]model.Account, error) {
	var out []model.Account
	err := db.Where("company_id = ? AND is_active = ?", companyID, true).Order("code ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return out, nil
}

// All returns every account of the company, active or not, ordered by code.
func (s *Service) All(db *gorm.DB, companyID uint) ([]model.Account, error) {
	var out []model.Account
	if err := db.Where("company_id = ?", companyID).Order("code ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return out, nil
}

// Get returns an account that belongs to the company.
func (s *Service) Get(db *gorm.DB, companyID, id uint) (model.Account, error) {
	var acct model.Account
	err := db.Where("company_id = ? AND id = ?", companyID, id).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, apperr.NotFound("account", id)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("loading account %d: %w", id, err)
	}
	return acct, nil
}

// ByCode returns the company's account with the given code, or found=false.
func (s *Service) ByCode(db *gorm.DB, companyID uint, code string) (model.Account, bool, error) {
	var acct model.Account
	err := db.Where("company_id = ? AND code = ?", companyID, strings.TrimSpace(code)).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, fmt.Errorf("looking up account %s: %w", code, err)
	}
	return acct, true, nil
}

// Ensure returns the account with the given code, creating it if absent.
// An empty name becomes "Llogari <code>"; an empty type is inferred from the
// leading digit of the code.
func (s *Service) Ensure(tx *gorm.DB, companyID uint, code, name string, typ model.AccountType) (model.Account, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Account{}, false, apperr.MissingField("account_code")
	}
	acct, found, err := s.ByCode(tx, companyID, code)
	if err != nil || found {
		return acct, false, err
	}
	if strings.TrimSpace(name) == "" {
		name = model.GeneratedAccountName(code)
	}
	if typ == "" {
		typ = model.InferAccountType(code)
	}
	acct = model.Account{CompanyID: companyID, Code: code, Name: name, Type: typ, IsActive: true}
	if err := s.insert(tx, &acct); err != nil {
		return model.Account{}, false, err
	}
	return acct, true, nil
}

// Deactivate hides an account from the active list. Its history is kept.
func (s *Service) Deactivate(tx *gorm.DB, companyID, id uint) (model.Account, error) {
	acct, err := s.Get(tx, companyID, id)
	if err != nil {
		return model.Account{}, err
	}
	if err := tx.Model(&acct).Update("is_active", false).Error; err != nil {
		return model.Account{}, fmt.Errorf("deactivating account %d: %w", id, err)
	}
	acct.IsActive = false
	return acct, nil
}

// Delete removes an account with no journal lines. Bank transactions that
// point at it keep their row and lose the reference.
func (s *Service) Delete(tx *gorm.DB, companyID, id uint) error {
	acct, err := s.Get(tx, companyID, id)
	if err != nil {
		return err
	}
	var lines int64
	if err := tx.Model(&model.JournalLine{}).Where("account_id = ?", id).Count(&lines).Error; err != nil {
		return fmt.Errorf("counting lines of account %d: %w", id, err)
	}
	if lines > 0 {
		return apperr.New(apperr.KindAccountInUse, "account", "account %s has %d journal lines; deactivate it instead", acct.Code, lines)
	}
	if err := tx.Model(&model.BankTransaction{}).Where("account_id = ?", id).Update("account_id", nil).Error; err != nil {
		return fmt.Errorf("detaching bank transactions from account %d: %w", id, err)
	}
	if err := tx.Delete(&acct).Error; err != nil {
		return fmt.Errorf("deleting account %d: %w", id, err)
	}
	return nil
}
