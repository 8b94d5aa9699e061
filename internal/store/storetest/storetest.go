// Package storetest opens throwaway databases for tests.
package storetest

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerbook/internal/config"
	"github.com/cleared-dev/ledgerbook/internal/model"
	"github.com/cleared-dev/ledgerbook/internal/store"
)

// Open returns a migrated SQLite store in a temp dir, closed at test end.
func Open(t *testing.T) *store.Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st, err := store.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(context.Background()))
	return st
}

// Company inserts a company with the default chart and returns it.
func Company(t *testing.T, st *store.Store, name string) model.Company {
	t.Helper()
	company := model.Company{Name: name}
	db := st.DB()
	require.NoError(t, db.Create(&company).Error)
	chart := store.DefaultChart()
	for i := range chart {
		chart[i].CompanyID = company.ID
	}
	require.NoError(t, db.Create(&chart).Error)
	return company
}

// Account looks up an account by code.
func Account(t *testing.T, st *store.Store, companyID uint, code string) model.Account {
	t.Helper()
	var acct model.Account
	require.NoError(t, st.DB().Where("company_id = ? AND code = ?", companyID, code).First(&acct).Error)
	return acct
}
