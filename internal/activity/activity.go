// Package activity keeps the per-company log of outcome messages that API
// mutations produce.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

// DefaultLimit is how many rows List returns when no limit is given.
const DefaultLimit = 100

const maxMessage = 512

// Header is the CSV header of an activity export.
var Header = []string{"timestamp", "action", "level", "message"}

const (
	numFields    = 4
	colTimestamp = 0
	colAction    = 1
	colLevel     = 2
	colMessage   = 3
)

// Record appends one row.
func Record(db *gorm.DB, companyID uint, action string, level model.ActivityLevel, message string) (model.ActivityLog, error) {
	if len(message) > maxMessage {
		cut := maxMessage
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		message = message[:cut]
	}
	row := model.ActivityLog{
		CompanyID: companyID,
		Action:    action,
		Level:     level,
		Message:   message,
	}
	if err := db.Create(&row).Error; err != nil {
		return model.ActivityLog{}, fmt.Errorf("recording activity: %w", err)
	}
	return row, nil
}

// List returns the company's latest rows, newest first.
func List(db *gorm.DB, companyID uint, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var out []model.ActivityLog
	err := db.Where("company_id = ?", companyID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return out, nil
}

// MarshalEntry converts an ActivityLog to a CSV row.
func MarshalEntry(e model.ActivityLog) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.CreatedAt.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colLevel] = string(e.Level)
	row[colMessage] = e.Message
	return row
}

// WriteCSV writes rows as CSV with a header.
func WriteCSV(w io.Writer, rows []model.ActivityLog) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range rows {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
