package importer

import (
	"time"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

const dayFirstFormat = "2/1/2006"

// ParseDate accepts ISO dates (anything past the first 10 characters is
// ignored, so "2025-01-05 00:00:00" works) and DD/MM/YYYY.
func ParseDate(s string) (time.Time, error) {
	if len(s) >= 10 && s[4] == '-' {
		if t, err := time.Parse(model.DateFormat, s[:10]); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(dayFirstFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.New(apperr.KindUnparsableDate, "date", "cannot parse date %q", s)
}
