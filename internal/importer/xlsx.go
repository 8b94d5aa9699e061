package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first worksheet of an Excel workbook.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse returns the first sheet's raw cell values. Numeric cells carrying a
// date number format are rendered as ISO dates.
func (p *XLSXParser) Parse(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, nil
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	dates := dateStyles{f: f, seen: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		dates.date1904 = *props.Date1904
	}
	for i, row := range rows {
		for j, v := range row {
			serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return Table{}, err
			}
			isDate, err := dates.isDate(sheet, cell)
			if err != nil {
				return Table{}, fmt.Errorf("reading style of %s: %w", cell, err)
			}
			if !isDate {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, dates.date1904)
			if err != nil {
				continue
			}
			row[j] = t.Format("2006-01-02")
		}
	}
	return tableFrom(rows), nil
}

// dateStyles caches, per style id, whether the number format shows a date.
type dateStyles struct {
	f        *excelize.File
	seen     map[int]bool
	date1904 bool
}

func (d dateStyles) isDate(sheet, cell string) (bool, error) {
	id, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false, err
	}
	if v, ok := d.seen[id]; ok {
		return v, nil
	}
	style, err := d.f.GetStyle(id)
	if err != nil {
		return false, err
	}
	v := isDateFormat(style)
	d.seen[id] = v
	return v, nil
}

func isDateFormat(s *excelize.Style) bool {
	if s.CustomNumFmt != nil {
		code := strings.ToLower(*s.CustomNumFmt)
		return strings.Contains(code, "yy") || (strings.Contains(code, "d") && strings.Contains(code, "m"))
	}
	// Built-in formats 14-22 are the short, long and date-time layouts.
	return s.NumFmt >= 14 && s.NumFmt <= 22
}
