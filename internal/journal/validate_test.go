package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestValidate_Balanced(t *testing.T) {
	d, err := Validate(Draft{
		Date: date(2025, 1, 5),
		Lines: []Line{
			{AccountID: 1, Debit: dec("100")},
			{AccountID: 4, Credit: dec("100")},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Lines, 2)
}

func TestValidate_Unbalanced(t *testing.T) {
	_, err := Validate(Draft{
		Date: date(2025, 1, 5),
		Lines: []Line{
			{AccountID: 1, Debit: dec("100")},
			{AccountID: 4, Credit: dec("99.99")},
		},
	})
	require.ErrorIs(t, err, apperr.ErrUnbalancedEntry)
	assert.Contains(t, err.Error(), "entry does not balance")
}

func TestValidate_RoundsLinesBeforeComparing(t *testing.T) {
	d, err := Validate(Draft{
		Date: date(2025, 1, 5),
		Lines: []Line{
			{AccountID: 1, Debit: dec("33.333")},
			{AccountID: 2, Debit: dec("66.667")},
			{AccountID: 4, Credit: dec("100.001")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("33.33").Equal(d.Lines[0].Debit))
	assert.True(t, dec("66.67").Equal(d.Lines[1].Debit))
	assert.True(t, dec("100").Equal(d.Lines[2].Credit))
}

func TestValidate_RejectsSumsThatOnlyBalanceUnrounded(t *testing.T) {
	// 33.335 + 66.665 is 100.000, but the stored cents are 33.34 + 66.67.
	_, err := Validate(Draft{
		Date: date(2025, 1, 5),
		Lines: []Line{
			{AccountID: 1, Debit: dec("33.335")},
			{AccountID: 2, Debit: dec("66.665")},
			{AccountID: 4, Credit: dec("100")},
		},
	})
	require.ErrorIs(t, err, apperr.ErrUnbalancedEntry)
}

func TestValidate_DropsLinesThatRoundToZero(t *testing.T) {
	d, err := Validate(Draft{
		Date: date(2025, 1, 5),
		Lines: []Line{
			{AccountID: 1, Debit: dec("10")},
			{AccountID: 2, Debit: dec("0.004")},
			{AccountID: 4, Credit: dec("10")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, d.Lines, 2)
}

func TestValidate_DropsZeroLines(t *testing.T) {
	d, err := Validate(Draft{
		Date: date(2025, 1, 5),
		Lines: []Line{
			{AccountID: 1, Debit: dec("50")},
			{AccountID: 2},
			{AccountID: 4, Credit: dec("50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, uint(4), d.Lines[1].AccountID)
}

func TestValidate_MissingFields(t *testing.T) {
	_, err := Validate(Draft{Lines: []Line{{AccountID: 1, Debit: dec("1")}, {AccountID: 2, Credit: dec("1")}}})
	require.ErrorIs(t, err, apperr.ErrMissingField)
	ve, _ := apperr.As(err)
	assert.Equal(t, "date", ve.Field)

	_, err = Validate(Draft{Date: date(2025, 1, 5), Lines: []Line{{AccountID: 1}, {AccountID: 2}}})
	require.ErrorIs(t, err, apperr.ErrMissingField)
	ve, _ = apperr.As(err)
	assert.Equal(t, "lines", ve.Field)
}

func TestValidate_Negative(t *testing.T) {
	_, err := Validate(Draft{
		Date:  date(2025, 1, 5),
		Lines: []Line{{AccountID: 1, Debit: dec("-5")}, {AccountID: 2, Credit: dec("-5")}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
}

func TestParseDraft(t *testing.T) {
	var f Form
	body := `{
		"date": "2025-03-10",
		"description": " Capital ",
		"lines": [
			{"account_id": 1, "debit": "100.50", "credit": "", "memo": "cash"},
			{"account_id": "", "debit": "999"},
			{"account_id": "abc", "debit": "999"},
			{"account_id": "4", "debit": null, "credit": 100.5}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	d, err := ParseDraft(f)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 10), d.Date)
	assert.Equal(t, "Capital", d.Description)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, uint(1), d.Lines[0].AccountID)
	assert.True(t, dec("100.50").Equal(d.Lines[0].Debit))
	assert.True(t, d.Lines[0].Credit.IsZero())
	assert.Equal(t, "cash", d.Lines[0].Memo)
	assert.Equal(t, uint(4), d.Lines[1].AccountID)
	assert.True(t, dec("100.5").Equal(d.Lines[1].Credit))
}

func TestParseDraft_Errors(t *testing.T) {
	_, err := ParseDraft(Form{Date: "10/03/2025"})
	require.ErrorIs(t, err, apperr.ErrUnparsableDate)

	_, err = ParseDraft(Form{Date: "2025-03-10", Lines: []LineInput{{AccountID: "1", Debit: "ten"}}})
	require.ErrorIs(t, err, apperr.ErrInvalidAmount)
	ve, _ := apperr.As(err)
	assert.Equal(t, "lines[0].debit", ve.Field)

	_, err = ParseDraft(Form{Date: "2025-03-10", Lines: []LineInput{{AccountID: "1", Credit: "-3"}}})
	require.ErrorIs(t, err, apperr.ErrInvalidAmount)

	d, err := ParseDraft(Form{})
	require.NoError(t, err, "missing date is reported by Validate")
	assert.True(t, d.Date.IsZero())
}

func TestCheckAccounts(t *testing.T) {
	set := AccountSet{1: {}, 4: {}}
	d := Draft{Lines: []Line{{AccountID: 1}, {AccountID: 4}}}
	assert.NoError(t, CheckAccounts(d, set))

	d.Lines = append(d.Lines, Line{AccountID: 7})
	err := CheckAccounts(d, set)
	require.ErrorIs(t, err, apperr.ErrUnknownAccount)
	ve, _ := apperr.As(err)
	assert.Equal(t, "lines[2].account_id", ve.Field)
}
