package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/journal"
	"github.com/cleared-dev/ledgerbook/internal/model"
	"github.com/cleared-dev/ledgerbook/internal/report"
	"github.com/cleared-dev/ledgerbook/internal/store"
	"github.com/cleared-dev/ledgerbook/internal/store/storetest"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func post(t *testing.T, st *store.Store, companyID uint, d journal.Draft) (model.JournalEntry, error) {
	t.Helper()
	var entry model.JournalEntry
	err := st.Do(context.Background(), func(tx *gorm.DB) error {
		var err error
		entry, err = journal.NewService().Post(tx, companyID, d)
		return err
	})
	return entry, err
}

func countEntries(t *testing.T, st *store.Store) (entries, lines int64) {
	t.Helper()
	require.NoError(t, st.DB().Model(&model.JournalEntry{}).Count(&entries).Error)
	require.NoError(t, st.DB().Model(&model.JournalLine{}).Count(&lines).Error)
	return entries, lines
}

func TestPost_Balanced(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")
	kap := storetest.Account(t, st, c.ID, "3000")

	entry, err := post(t, st, c.ID, journal.Draft{
		Date:        date(2025, 1, 5),
		Description: "Capital",
		Lines: []journal.Line{
			{AccountID: kasa.ID, Debit: dec("100")},
			{AccountID: kap.ID, Credit: dec("100")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", entry.Reference)

	got, err := journal.NewService().Get(st.Read(context.Background()), entry.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "Capital", got.Description)
	require.NotNil(t, got.Lines[0].Account)
	assert.Equal(t, "Kasa", got.Lines[0].Account.Name)
	assert.True(t, dec("100").Equal(got.Lines[0].Debit))
	assert.True(t, dec("100").Equal(got.Lines[1].Credit))
}

func TestPost_UnbalancedPersistsNothing(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")
	kap := storetest.Account(t, st, c.ID, "3000")

	_, err := post(t, st, c.ID, journal.Draft{
		Date: date(2025, 1, 5),
		Lines: []journal.Line{
			{AccountID: kasa.ID, Debit: dec("100")},
			{AccountID: kap.ID, Credit: dec("99.99")},
		},
	})
	require.ErrorIs(t, err, apperr.ErrUnbalancedEntry)

	entries, lines := countEntries(t, st)
	assert.Zero(t, entries)
	assert.Zero(t, lines)
}

func TestPost_StoredCentsKeepTrialBalanceZero(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")
	banka := storetest.Account(t, st, c.ID, "1010")
	kap := storetest.Account(t, st, c.ID, "3000")

	_, err := post(t, st, c.ID, journal.Draft{
		Date: date(2025, 1, 5),
		Lines: []journal.Line{
			{AccountID: kasa.ID, Debit: dec("33.335")},
			{AccountID: banka.ID, Debit: dec("66.665")},
			{AccountID: kap.ID, Credit: dec("100")},
		},
	})
	require.ErrorIs(t, err, apperr.ErrUnbalancedEntry)

	_, err = post(t, st, c.ID, journal.Draft{
		Date: date(2025, 1, 6),
		Lines: []journal.Line{
			{AccountID: kasa.ID, Debit: dec("33.335")},
			{AccountID: banka.ID, Debit: dec("66.664")},
			{AccountID: kap.ID, Credit: dec("100")},
		},
	})
	require.NoError(t, err)

	tb, err := report.Compute(st.Read(context.Background()), c.ID)
	require.NoError(t, err)
	assert.True(t, tb.TotalBalance.IsZero(), "total balance %s", tb.TotalBalance)
	assert.True(t, dec("100").Equal(tb.TotalDebit))
}

func TestPost_ForeignAccount(t *testing.T) {
	st := storetest.Open(t)
	a := storetest.Company(t, st, "A")
	b := storetest.Company(t, st, "B")
	kasaA := storetest.Account(t, st, a.ID, "1000")
	kapB := storetest.Account(t, st, b.ID, "3000")

	_, err := post(t, st, a.ID, journal.Draft{
		Date: date(2025, 1, 5),
		Lines: []journal.Line{
			{AccountID: kasaA.ID, Debit: dec("10")},
			{AccountID: kapB.ID, Credit: dec("10")},
		},
	})
	require.ErrorIs(t, err, apperr.ErrUnknownAccount)
	entries, _ := countEntries(t, st)
	assert.Zero(t, entries)
}

func TestPost_ReferenceSequence(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")
	kap := storetest.Account(t, st, c.ID, "3000")
	lines := []journal.Line{
		{AccountID: kasa.ID, Debit: dec("1")},
		{AccountID: kap.ID, Credit: dec("1")},
	}

	var refs []string
	for _, d := range []time.Time{date(2025, 1, 5), date(2025, 1, 20), date(2025, 2, 1)} {
		entry, err := post(t, st, c.ID, journal.Draft{Date: d, Lines: lines})
		require.NoError(t, err)
		refs = append(refs, entry.Reference)
	}
	assert.Equal(t, []string{"2025-01-001", "2025-01-002", "2025-02-001"}, refs)
}

func TestRecord_SkipsBalanceCheck(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")

	entry := model.JournalEntry{
		CompanyID: c.ID,
		Reference: "J-1",
		Date:      date(2025, 1, 5),
		Lines:     []model.JournalLine{{AccountID: kasa.ID, Debit: dec("12.345")}},
	}
	require.NoError(t, st.Do(context.Background(), func(tx *gorm.DB) error {
		return journal.NewService().Record(tx, &entry)
	}))

	got, err := journal.NewService().Get(st.Read(context.Background()), entry.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, dec("12.35").Equal(got.Lines[0].Debit))
}

func TestListWithTotals(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")
	kap := storetest.Account(t, st, c.ID, "3000")
	exp := storetest.Account(t, st, c.ID, "5000")

	_, err := post(t, st, c.ID, journal.Draft{Date: date(2025, 1, 5), Lines: []journal.Line{
		{AccountID: kasa.ID, Debit: dec("100")},
		{AccountID: kap.ID, Credit: dec("100")},
	}})
	require.NoError(t, err)
	_, err = post(t, st, c.ID, journal.Draft{Date: date(2025, 1, 9), Lines: []journal.Line{
		{AccountID: exp.ID, Debit: dec("20.10")},
		{AccountID: exp.ID, Debit: dec("4.90")},
		{AccountID: kasa.ID, Credit: dec("25")},
	}})
	require.NoError(t, err)

	list, err := journal.NewService().List(st.Read(context.Background()), c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, date(2025, 1, 9).Format(model.DateFormat), list[0].Date.Format(model.DateFormat))
	assert.True(t, dec("25").Equal(list[0].TotalDebit), list[0].TotalDebit.String())
	assert.True(t, dec("25").Equal(list[0].TotalCredit))
	assert.True(t, dec("100").Equal(list[1].TotalDebit))
}

func TestDelete(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	kasa := storetest.Account(t, st, c.ID, "1000")
	kap := storetest.Account(t, st, c.ID, "3000")
	ctx := context.Background()

	entry, err := post(t, st, c.ID, journal.Draft{Date: date(2025, 1, 5), Lines: []journal.Line{
		{AccountID: kasa.ID, Debit: dec("1")},
		{AccountID: kap.ID, Credit: dec("1")},
	}})
	require.NoError(t, err)

	var deleted model.JournalEntry
	require.NoError(t, st.Do(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = journal.NewService().Delete(tx, entry.ID)
		return err
	}))
	assert.Equal(t, c.ID, deleted.CompanyID)

	entries, lines := countEntries(t, st)
	assert.Zero(t, entries)
	assert.Zero(t, lines)

	_, err = journal.NewService().Get(st.Read(ctx), entry.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
