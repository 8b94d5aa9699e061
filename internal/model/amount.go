package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the ISO layout used for dates on the wire.
const DateFormat = "2006-01-02"

// ParseAmount parses decimal text. Blank cells and the spreadsheet
// placeholders "None", "nan" and "null" count as zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "nan", "null":
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// Cents rounds to the 2-decimal currency precision used for storage.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AllModels lists the tables in migration order.
func AllModels() []any {
	return []any{
		&Company{},
		&Account{},
		&JournalEntry{},
		&JournalLine{},
		&BankTransaction{},
		&ActivityLog{},
	}
}
