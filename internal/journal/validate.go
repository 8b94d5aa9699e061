package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Form is a journal entry as submitted: every value is still text.
type Form struct {
	Date        model.Text  `json:"date"`
	Description string      `json:"description"`
	Lines       []LineInput `json:"lines"`
}

// LineInput is one submitted line.
type LineInput struct {
	AccountID model.Text `json:"account_id"`
	Debit     model.Text `json:"debit"`
	Credit    model.Text `json:"credit"`
	Memo      string     `json:"memo"`
}

// Draft is a typed entry ready for validation.
type Draft struct {
	Date        time.Time
	Description string
	Lines       []Line
}

// Line is one typed line of a Draft.
type Line struct {
	AccountID uint
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string
}

// ParseDraft converts form text into a Draft. Lines with an empty or
// non-numeric account reference are skipped.
func ParseDraft(f Form) (Draft, error) {
	d := Draft{Description: strings.TrimSpace(f.Description)}

	if ds := f.Date.String(); ds != "" {
		date, err := time.Parse(model.DateFormat, ds)
		if err != nil {
			return Draft{}, apperr.New(apperr.KindUnparsableDate, "date", "cannot parse date %q, expected YYYY-MM-DD", ds)
		}
		d.Date = date
	}

	for i, in := range f.Lines {
		ref := in.AccountID.String()
		if ref == "" {
			continue
		}
		accountID, err := strconv.ParseUint(ref, 10, 64)
		if err != nil || accountID == 0 {
			continue
		}
		debit, err := parseLineAmount(in.Debit, fmt.Sprintf("lines[%d].debit", i))
		if err != nil {
			return Draft{}, err
		}
		credit, err := parseLineAmount(in.Credit, fmt.Sprintf("lines[%d].credit", i))
		if err != nil {
			return Draft{}, err
		}
		d.Lines = append(d.Lines, Line{
			AccountID: uint(accountID),
			Debit:     debit,
			Credit:    credit,
			Memo:      strings.TrimSpace(in.Memo),
		})
	}
	return d, nil
}

func parseLineAmount(t model.Text, field string) (decimal.Decimal, error) {
	amt, err := model.ParseAmount(t.String())
	if err != nil {
		return decimal.Zero, apperr.New(apperr.KindInvalidAmount, field, "cannot parse amount %q", t.String())
	}
	if amt.IsNegative() {
		return decimal.Zero, apperr.New(apperr.KindInvalidAmount, field, "amount %s is negative", amt.String())
	}
	return amt, nil
}

// Validate applies the balance rule. Amounts are rounded to cents first, so
// the sums compared are the sums stored. Lines where both amounts are zero
// are dropped.
func Validate(d Draft) (Draft, error) {
	if d.Date.IsZero() {
		return Draft{}, apperr.MissingField("date")
	}

	kept := make([]Line, 0, len(d.Lines))
	for i, l := range d.Lines {
		if l.Debit.IsNegative() {
			return Draft{}, apperr.New(apperr.KindInvalidAmount, fmt.Sprintf("lines[%d].debit", i), "amount %s is negative", l.Debit.String())
		}
		if l.Credit.IsNegative() {
			return Draft{}, apperr.New(apperr.KindInvalidAmount, fmt.Sprintf("lines[%d].credit", i), "amount %s is negative", l.Credit.String())
		}
		l.Debit = model.Cents(l.Debit)
		l.Credit = model.Cents(l.Credit)
		if l.Debit.IsZero() && l.Credit.IsZero() {
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		return Draft{}, apperr.MissingField("lines")
	}

	totalDebit, totalCredit := Totals(kept)
	if !totalDebit.Equal(totalCredit) {
		return Draft{}, apperr.New(apperr.KindUnbalancedEntry, "", "entry does not balance")
	}

	d.Date = model.Day(d.Date)
	d.Lines = kept
	return d, nil
}

// Totals sums debits and credits independently.
func Totals(lines []Line) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// AccountChecker reports whether an account id belongs to the company being
// posted to.
type AccountChecker interface {
	Exists(id uint) bool
}

// AccountSet is an AccountChecker over a fixed set of ids.
type AccountSet map[uint]struct{}

func (s AccountSet) Exists(id uint) bool {
	_, ok := s[id]
	return ok
}

// CheckAccounts fails with UnknownAccount on the first line whose account is
// not in accounts.
func CheckAccounts(d Draft, accounts AccountChecker) error {
	for i, l := range d.Lines {
		if !accounts.Exists(l.AccountID) {
			return apperr.New(apperr.KindUnknownAccount, fmt.Sprintf("lines[%d].account_id", i), "unknown account %d", l.AccountID)
		}
	}
	return nil
}
