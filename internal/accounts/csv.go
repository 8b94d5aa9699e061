package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Header is the column order of the chart export.
var Header = []string{"code", "name", "type", "active"}

const (
	numFields = 4
	colCode   = 0
	colName   = 1
	colType   = 2
	colActive = 3
)

// WriteAccounts writes the chart of accounts as CSV. The header matches what
// the account importer accepts, so an export can be re-imported elsewhere.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colActive] = strconv.FormatBool(acct.IsActive)
	return row
}
