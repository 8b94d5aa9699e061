package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Trial Balance"

// Header is the column order of both exports.
var Header = []string{"Code", "Name", "Type", "Debit", "Credit", "Balance"}

// WriteXLSX writes the trial balance as a workbook with one sheet. Amounts
// are numeric cells with two decimals.
func WriteXLSX(w io.Writer, tb TrialBalance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range tb.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Code, r.Name, string(r.Type), r.DebitTotal.InexactFloat64(), r.CreditTotal.InexactFloat64(), r.Balance.InexactFloat64()}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	totalRow := len(tb.Rows) + 2
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	totals := []any{"", "Total", "", tb.TotalDebit.InexactFloat64(), tb.TotalCredit.InexactFloat64(), tb.TotalBalance.InexactFloat64()}
	if err := f.SetSheetRow(SheetName, cell, &totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(6, totalRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "D2", end, money); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the same columns as WriteXLSX, without the totals row.
func WriteCSV(w io.Writer, tb TrialBalance) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range tb.Rows {
		rec := []string{
			r.Code,
			r.Name,
			string(r.Type),
			r.DebitTotal.StringFixed(2),
			r.CreditTotal.StringFixed(2),
			r.Balance.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
