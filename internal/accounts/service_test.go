package accounts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/accounts"
	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
	"github.com/cleared-dev/ledgerbook/internal/store"
	"github.com/cleared-dev/ledgerbook/internal/store/storetest"
)

func create(t *testing.T, st *store.Store, companyID uint, in accounts.Input) (model.Account, error) {
	t.Helper()
	var acct model.Account
	err := st.Do(context.Background(), func(tx *gorm.DB) error {
		var err error
		acct, err = accounts.NewService().Create(tx, companyID, in)
		return err
	})
	return acct, err
}

func TestCreate(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")

	acct, err := create(t, st, c.ID, accounts.Input{Code: " 6000 ", Name: "Paga", Type: "expense"})
	require.NoError(t, err)
	assert.NotZero(t, acct.ID)
	assert.Equal(t, "6000", acct.Code)
	assert.Equal(t, model.AccountTypeExpense, acct.Type)
	assert.True(t, acct.IsActive)
}

func TestCreate_Validation(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")

	tests := []struct {
		name  string
		in    accounts.Input
		want  error
		field string
	}{
		{"missing code", accounts.Input{Name: "X", Type: "Asset"}, apperr.ErrMissingField, "code"},
		{"missing name", accounts.Input{Code: "1", Type: "Asset"}, apperr.ErrMissingField, "name"},
		{"missing type", accounts.Input{Code: "1", Name: "X"}, apperr.ErrMissingField, "type"},
		{"bad type", accounts.Input{Code: "1", Name: "X", Type: "Revenue"}, apperr.ErrInvalidAccountType, "type"},
		{"duplicate", accounts.Input{Code: "1000", Name: "Kasa 2", Type: "Asset"}, apperr.ErrDuplicateAccountCode, "code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := create(t, st, c.ID, tt.in)
			require.ErrorIs(t, err, tt.want)
			ve, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreate_SameCodeOtherCompany(t *testing.T) {
	st := storetest.Open(t)
	storetest.Company(t, st, "Acme")
	other := model.Company{Name: "Other"}
	require.NoError(t, st.DB().Create(&other).Error)

	_, err := create(t, st, other.ID, accounts.Input{Code: "1000", Name: "Kasa", Type: "Asset"})
	assert.NoError(t, err)
}

func TestListActiveAndAll(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	svc := accounts.NewService()
	ctx := context.Background()
	kasa := storetest.Account(t, st, c.ID, "1000")

	_, err := create(t, st, c.ID, accounts.Input{Code: "0500", Name: "First", Type: "Asset"})
	require.NoError(t, err)
	require.NoError(t, st.Do(ctx, func(tx *gorm.DB) error {
		_, err := svc.Deactivate(tx, c.ID, kasa.ID)
		return err
	}))

	active, err := svc.ListActive(st.Read(ctx), c.ID)
	require.NoError(t, err)
	require.Len(t, active, 6)
	assert.Equal(t, "0500", active[0].Code)
	for _, a := range active {
		assert.NotEqual(t, "1000", a.Code)
	}

	all, err := svc.All(st.Read(ctx), c.ID)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "1000", all[1].Code)
	assert.False(t, all[1].IsActive)
}

func TestEnsure(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	svc := accounts.NewService()
	ctx := context.Background()

	err := st.Do(ctx, func(tx *gorm.DB) error {
		existing, created, err := svc.Ensure(tx, c.ID, "1000", "", "")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Kasa", existing.Name)

		made, created, err := svc.Ensure(tx, c.ID, "9999", "", "")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Llogari 9999", made.Name)
		assert.Equal(t, model.AccountTypeExpense, made.Type)

		named, _, err := svc.Ensure(tx, c.ID, "2100", "TVSH", "")
		require.NoError(t, err)
		assert.Equal(t, "TVSH", named.Name)
		assert.Equal(t, model.AccountTypeLiability, named.Type)

		again, created, err := svc.Ensure(tx, c.ID, "9999", "", "")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, made.ID, again.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestGet_OtherCompany(t *testing.T) {
	st := storetest.Open(t)
	a := storetest.Company(t, st, "A")
	b := storetest.Company(t, st, "B")
	kasaA := storetest.Account(t, st, a.ID, "1000")

	_, err := accounts.NewService().Get(st.Read(context.Background()), b.ID, kasaA.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDelete(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	svc := accounts.NewService()
	ctx := context.Background()
	kasa := storetest.Account(t, st, c.ID, "1000")
	banka := storetest.Account(t, st, c.ID, "1010")
	kap := storetest.Account(t, st, c.ID, "3000")

	require.NoError(t, st.DB().Create(&model.JournalEntry{
		CompanyID: c.ID,
		Date:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Lines: []model.JournalLine{
			{AccountID: kasa.ID, Debit: decimal.NewFromInt(10)},
			{AccountID: kap.ID, Credit: decimal.NewFromInt(10)},
		},
	}).Error)
	tx := model.BankTransaction{CompanyID: c.ID, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(3), AccountID: &banka.ID}
	require.NoError(t, st.DB().Create(&tx).Error)

	err := st.Do(ctx, func(db *gorm.DB) error { return svc.Delete(db, c.ID, kasa.ID) })
	require.ErrorIs(t, err, apperr.ErrAccountInUse)

	require.NoError(t, st.Do(ctx, func(db *gorm.DB) error { return svc.Delete(db, c.ID, banka.ID) }))

	var reloaded model.BankTransaction
	require.NoError(t, st.DB().First(&reloaded, tx.ID).Error)
	assert.Nil(t, reloaded.AccountID)

	_, err = svc.Get(st.Read(ctx), c.ID, banka.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
