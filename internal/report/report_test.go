package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ledgerbook/internal/model"
	"github.com/cleared-dev/ledgerbook/internal/report"
	"github.com/cleared-dev/ledgerbook/internal/store"
	"github.com/cleared-dev/ledgerbook/internal/store/storetest"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addEntry(t *testing.T, st *store.Store, companyID uint, lines ...model.JournalLine) {
	t.Helper()
	require.NoError(t, st.DB().Create(&model.JournalEntry{
		CompanyID: companyID,
		Date:      time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Lines:     lines,
	}).Error)
}

func TestCompute(t *testing.T) {
	st := storetest.Open(t)
	c := storetest.Company(t, st, "Acme")
	other := storetest.Company(t, st, "Other")
	kasa := storetest.Account(t, st, c.ID, "1000")
	kap := storetest.Account(t, st, c.ID, "3000")
	exp := storetest.Account(t, st, c.ID, "5000")

	addEntry(t, st, c.ID,
		model.JournalLine{AccountID: kasa.ID, Debit: dec("100")},
		model.JournalLine{AccountID: kap.ID, Credit: dec("100")},
	)
	addEntry(t, st, c.ID,
		model.JournalLine{AccountID: exp.ID, Debit: dec("12.30")},
		model.JournalLine{AccountID: kasa.ID, Credit: dec("12.30")},
	)
	otherKasa := storetest.Account(t, st, other.ID, "1000")
	addEntry(t, st, other.ID,
		model.JournalLine{AccountID: otherKasa.ID, Debit: dec("999")},
	)
	require.NoError(t, st.DB().Model(&model.Account{}).Where("id = ?", exp.ID).Update("is_active", false).Error)

	tb, err := report.Compute(st.Read(context.Background()), c.ID)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 6, "every account, including ones without lines")

	codes := make([]string, len(tb.Rows))
	for i, r := range tb.Rows {
		codes[i] = r.Code
	}
	assert.Equal(t, []string{"1000", "1010", "2000", "3000", "4000", "5000"}, codes)

	k := tb.Rows[0]
	assert.Equal(t, "Kasa", k.Name)
	assert.Equal(t, model.AccountTypeAsset, k.Type)
	assert.True(t, dec("100").Equal(k.DebitTotal), k.DebitTotal.String())
	assert.True(t, dec("12.30").Equal(k.CreditTotal), k.CreditTotal.String())
	assert.True(t, dec("87.70").Equal(k.Balance), k.Balance.String())

	banka := tb.Rows[1]
	assert.True(t, banka.DebitTotal.IsZero())
	assert.True(t, banka.CreditTotal.IsZero())
	assert.True(t, banka.Balance.IsZero())

	assert.True(t, dec("-100").Equal(tb.Rows[3].Balance))
	assert.True(t, dec("12.3").Equal(tb.Rows[5].Balance), "inactive accounts still report")

	assert.True(t, dec("112.30").Equal(tb.TotalDebit))
	assert.True(t, dec("112.30").Equal(tb.TotalCredit))
	assert.True(t, tb.TotalBalance.IsZero())
}

func TestCompute_NoAccounts(t *testing.T) {
	st := storetest.Open(t)
	c := model.Company{Name: "Empty"}
	require.NoError(t, st.DB().Create(&c).Error)

	tb, err := report.Compute(st.Read(context.Background()), c.ID)
	require.NoError(t, err)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.TotalDebit.IsZero())
}

func sample() report.TrialBalance {
	return report.TrialBalance{
		Rows: []report.Row{
			{Code: "1000", Name: "Kasa", Type: model.AccountTypeAsset, DebitTotal: dec("100"), CreditTotal: dec("12.3"), Balance: dec("87.7")},
			{Code: "3000", Name: "Kapitali", Type: model.AccountTypeEquity, DebitTotal: dec("0"), CreditTotal: dec("87.7"), Balance: dec("-87.7")},
		},
		TotalDebit:   dec("100"),
		TotalCredit:  dec("100"),
		TotalBalance: dec("0"),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sample()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, report.Header, records[0])
	assert.Equal(t, []string{"1000", "Kasa", "Asset", "100.00", "12.30", "87.70"}, records[1])
	assert.Equal(t, []string{"3000", "Kapitali", "Equity", "0.00", "87.70", "-87.70"}, records[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetName}, f.GetSheetList())
	rows, err := f.GetRows(report.SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, report.Header, rows[0])
	assert.Equal(t, "Kasa", rows[1][1])
	assert.Equal(t, "87.7", rows[1][5])
	assert.Equal(t, "Total", rows[3][1])
	assert.Equal(t, "100", rows[3][3])
}
