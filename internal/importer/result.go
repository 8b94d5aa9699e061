package importer

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

// RowError reports a row or entry group that was not imported.
type RowError struct {
	Row     int    `json:"row"`
	Ref     string `json:"ref,omitempty"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	if e.Ref != "" {
		return fmt.Sprintf("row %d (%s): %s", e.Row, e.Ref, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Result summarizes one import.
type Result struct {
	Kind            Kind       `json:"kind"`
	Created         int        `json:"created"`
	Skipped         int        `json:"skipped"`
	AccountsCreated int        `json:"accounts_created"`
	Errors          []RowError `json:"errors,omitempty"`
	// Unbalanced lists imported journal entries whose debits and credits
	// differ. They are stored anyway.
	Unbalanced []string `json:"unbalanced,omitempty"`
}

func (r *Result) fail(row int, ref string, format string, args ...any) {
	r.Skipped++
	r.Errors = append(r.Errors, RowError{Row: row, Ref: ref, Message: fmt.Sprintf(format, args...)})
}

// Level is the activity level the outcome deserves.
func (r Result) Level() model.ActivityLevel {
	if len(r.Errors) > 0 || len(r.Unbalanced) > 0 {
		return model.LevelWarning
	}
	return model.LevelSuccess
}

// Message is a one-line human summary.
func (r Result) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d %s", r.Created, r.Kind.noun())
	if r.Skipped > 0 {
		fmt.Fprintf(&b, ", skipped %d", r.Skipped)
	}
	if r.AccountsCreated > 0 {
		fmt.Fprintf(&b, ", created %d accounts", r.AccountsCreated)
	}
	if len(r.Unbalanced) > 0 {
		fmt.Fprintf(&b, "; unbalanced entries: %s", strings.Join(r.Unbalanced, ", "))
	}
	return b.String()
}
