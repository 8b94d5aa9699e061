// Package importer loads accounts, journal entries and bank transactions
// from CSV or XLSX files.
package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
)

// Table is a parsed file: the header row and the data rows below it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parser reads one tabular file format.
type Parser interface {
	Parse(r io.Reader) (Table, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForFile picks a parser from the file extension.
func (r *Registry) ForFile(name string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if p := r.Get(ext); p != nil {
		return p, nil
	}
	return nil, apperr.New(apperr.KindUnsupportedFormat, "file", "unsupported file type %q, expected .csv or .xlsx", filepath.Ext(name))
}

// ReadFile parses r with the parser matching name.
func (r *Registry) ReadFile(name string, rd io.Reader) (Table, error) {
	p, err := r.ForFile(name)
	if err != nil {
		return Table{}, err
	}
	return p.Parse(rd)
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	return r
}
