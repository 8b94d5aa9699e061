package importer

import (
	"strings"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
)

// Column is one field a schema knows about.
type Column struct {
	Name     string
	Required bool
}

// Schema is the fixed set of columns an import understands.
type Schema []Column

// Column sets for each import.
var (
	AccountSchema = Schema{
		{Name: "code", Required: true},
		{Name: "name", Required: true},
		{Name: "type", Required: true},
	}
	JournalSchema = Schema{
		{Name: "entry_ref", Required: true},
		{Name: "date", Required: true},
		{Name: "account_code", Required: true},
		{Name: "debit", Required: true},
		{Name: "credit", Required: true},
		{Name: "description"},
		{Name: "memo"},
	}
	BankSchema = Schema{
		{Name: "date", Required: true},
		{Name: "amount", Required: true},
		{Name: "description"},
		{Name: "account_code"},
	}
)

// Binding maps schema columns to positions in a header.
type Binding struct {
	index map[string]int
}

// NormalizeHeader trims, lower-cases and strips a byte-order mark.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// Bind locates every schema column in header. Unknown header columns are
// ignored. All missing required columns are reported together.
func (s Schema) Bind(header []string) (Binding, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := NormalizeHeader(h)
		if _, dup := pos[name]; !dup && name != "" {
			pos[name] = i
		}
	}

	b := Binding{index: make(map[string]int, len(s))}
	var missing []string
	for _, c := range s {
		i, ok := pos[c.Name]
		if !ok {
			if c.Required {
				missing = append(missing, c.Name)
			}
			continue
		}
		b.index[c.Name] = i
	}
	if len(missing) > 0 {
		return Binding{}, apperr.New(apperr.KindMissingRequiredColumn, strings.Join(missing, ","),
			"missing required columns: %s", strings.Join(missing, ", "))
	}
	return b, nil
}

// Has reports whether the column was present in the header.
func (b Binding) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Get returns the trimmed cell for name, or "" if the column or cell is absent.
func (b Binding) Get(row []string, name string) string {
	i, ok := b.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
