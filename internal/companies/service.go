// Package companies manages tenants.
package companies

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Input holds the fields accepted when creating a company.
type Input struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
}

// Service creates, lists and deletes companies.
type Service struct{}

// NewService returns a Service.
func NewService() *Service {
	return &Service{}
}

// Create inserts a company. Name is required.
func (s *Service) Create(tx *gorm.DB, in Input) (model.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Company{}, apperr.MissingField("name")
	}
	c := model.Company{
		Name:    name,
		TaxID:   strings.TrimSpace(in.TaxID),
		Address: strings.TrimSpace(in.Address),
	}
	if err := tx.Create(&c).Error; err != nil {
		return model.Company{}, fmt.Errorf("creating company: %w", err)
	}
	return c, nil
}

// List returns every company ordered by name.
func (s *Service) List(db *gorm.DB) ([]model.Company, error) {
	var out []model.Company
	if err := db.Order("name ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return out, nil
}

// Get returns one company or a NotFound error.
func (s *Service) Get(db *gorm.DB, id uint) (model.Company, error) {
	var c model.Company
	err := db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Company{}, apperr.NotFound("company", id)
	}
	if err != nil {
		return model.Company{}, fmt.Errorf("loading company %d: %w", id, err)
	}
	return c, nil
}

// Delete removes a company and everything it owns, children first.
func (s *Service) Delete(tx *gorm.DB, id uint) error {
	if _, err := s.Get(tx, id); err != nil {
		return err
	}

	entryIDs := tx.Model(&model.JournalEntry{}).Select("id").Where("company_id = ?", id)
	steps := []struct {
		what  string
		query *gorm.DB
		model any
	}{
		{"journal lines", tx.Where("entry_id IN (?)", entryIDs), &model.JournalLine{}},
		{"journal entries", tx.Where("company_id = ?", id), &model.JournalEntry{}},
		{"bank transactions", tx.Where("company_id = ?", id), &model.BankTransaction{}},
		{"accounts", tx.Where("company_id = ?", id), &model.Account{}},
		{"activity", tx.Where("company_id = ?", id), &model.ActivityLog{}},
		{"company", tx.Where("id = ?", id), &model.Company{}},
	}
	for _, step := range steps {
		if err := step.query.Delete(step.model).Error; err != nil {
			return fmt.Errorf("deleting %s of company %d: %w", step.what, id, err)
		}
	}
	return nil
}
