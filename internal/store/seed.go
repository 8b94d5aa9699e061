package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

// DemoCompany is created on an empty database when seeding is enabled.
func DemoCompany() model.Company {
	return model.Company{
		Name:    "Shembull SHPK",
		TaxID:   "L12345678A",
		Address: "Elbasan",
	}
}

// DefaultChart returns the starter chart of accounts for a new company.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1000", Name: "Kasa", Type: model.AccountTypeAsset, IsActive: true},
		{Code: "1010", Name: "Banka", Type: model.AccountTypeAsset, IsActive: true},
		{Code: "2000", Name: "Detyrime", Type: model.AccountTypeLiability, IsActive: true},
		{Code: "3000", Name: "Kapitali", Type: model.AccountTypeEquity, IsActive: true},
		{Code: "4000", Name: "Të Ardhurat", Type: model.AccountTypeIncome, IsActive: true},
		{Code: "5000", Name: "Shpenzimet", Type: model.AccountTypeExpense, IsActive: true},
	}
}

// Seed inserts the demo company and its chart if no company exists yet.
// It reports whether anything was written.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.Do(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Company{}).Count(&n).Error; err != nil {
			return fmt.Errorf("counting companies: %w", err)
		}
		if n > 0 {
			return nil
		}
		company := DemoCompany()
		if err := tx.Create(&company).Error; err != nil {
			return fmt.Errorf("creating demo company: %w", err)
		}
		chart := DefaultChart()
		for i := range chart {
			chart[i].CompanyID = company.ID
		}
		if err := tx.Create(&chart).Error; err != nil {
			return fmt.Errorf("creating default chart: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.log.Info("seeded demo company")
	}
	return seeded, nil
}
