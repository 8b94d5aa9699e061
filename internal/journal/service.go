// Package journal posts, lists and deletes double-entry journal entries.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/id"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Service provides business logic for journal entries.
type Service struct{}

// NewService creates a journal Service.
func NewService() *Service {
	return &Service{}
}

// Summary is a journal entry with its line totals.
type Summary struct {
	model.JournalEntry
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// Post validates a draft and stores it with a fresh YYYY-MM-NNN reference.
// The entry and its lines are written with tx; the caller's transaction
// decides whether they commit.
func (s *Service) Post(tx *gorm.DB, companyID uint, d Draft) (model.JournalEntry, error) {
	d, err := Validate(d)
	if err != nil {
		return model.JournalEntry{}, err
	}

	var ids []uint
	if err := tx.Model(&model.Account{}).Where("company_id = ?", companyID).Pluck("id", &ids).Error; err != nil {
		return model.JournalEntry{}, fmt.Errorf("loading accounts: %w", err)
	}
	set := make(AccountSet, len(ids))
	for _, i := range ids {
		set[i] = struct{}{}
	}
	if err := CheckAccounts(d, set); err != nil {
		return model.JournalEntry{}, err
	}

	ref, err := s.NextReference(tx, companyID, d.Date)
	if err != nil {
		return model.JournalEntry{}, err
	}

	entry := model.JournalEntry{
		CompanyID:   companyID,
		Reference:   ref,
		Date:        d.Date,
		Description: d.Description,
	}
	for _, l := range d.Lines {
		entry.Lines = append(entry.Lines, model.JournalLine{
			AccountID: l.AccountID,
			Memo:      l.Memo,
			Debit:     l.Debit,
			Credit:    l.Credit,
		})
	}
	if err := s.Record(tx, &entry); err != nil {
		return model.JournalEntry{}, err
	}
	return entry, nil
}

// Record stores an entry and its lines as given. It does not check balance;
// importers use it directly.
func (s *Service) Record(tx *gorm.DB, entry *model.JournalEntry) error {
	entry.Date = model.Day(entry.Date)
	for i := range entry.Lines {
		entry.Lines[i].Debit = model.Cents(entry.Lines[i].Debit)
		entry.Lines[i].Credit = model.Cents(entry.Lines[i].Credit)
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}
	return nil
}

// NextReference returns the next YYYY-MM-NNN reference for the month of date.
func (s *Service) NextReference(db *gorm.DB, companyID uint, date time.Time) (string, error) {
	year, month := date.Year(), int(date.Month())
	var refs []string
	err := db.Model(&model.JournalEntry{}).
		Where("company_id = ? AND reference LIKE ?", companyID, id.MonthPrefix(year, month)+"%").
		Pluck("reference", &refs).Error
	if err != nil {
		return "", fmt.Errorf("reading references: %w", err)
	}
	return id.FormatEntryRef(year, month, id.NextSeq(refs, year, month)), nil
}

type lineTotals struct {
	EntryID     uint
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// List returns the company's entries, newest first, with their totals.
func (s *Service) List(db *gorm.DB, companyID uint) ([]Summary, error) {
	var entries []model.JournalEntry
	if err := db.Where("company_id = ?", companyID).Order("date DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}

	var totals []lineTotals
	err := db.Model(&model.JournalLine{}).
		Select("journal_lines.entry_id AS entry_id, COALESCE(SUM(journal_lines.debit), 0) AS total_debit, COALESCE(SUM(journal_lines.credit), 0) AS total_credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_lines.entry_id").
		Where("journal_entries.company_id = ?", companyID).
		Group("journal_lines.entry_id").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("summing journal lines: %w", err)
	}
	byEntry := make(map[uint]lineTotals, len(totals))
	for _, t := range totals {
		byEntry[t.EntryID] = t
	}

	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		t := byEntry[e.ID]
		out = append(out, Summary{
			JournalEntry: e,
			TotalDebit:   t.TotalDebit.Round(2),
			TotalCredit:  t.TotalCredit.Round(2),
		})
	}
	return out, nil
}

// Get returns one entry with its lines and their accounts.
func (s *Service) Get(db *gorm.DB, entryID uint) (model.JournalEntry, error) {
	var entry model.JournalEntry
	err := db.
		Preload("Lines", func(q *gorm.DB) *gorm.DB { return q.Order("journal_lines.id ASC") }).
		Preload("Lines.Account").
		First(&entry, entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.JournalEntry{}, apperr.NotFound("entry", entryID)
	}
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("loading journal entry %d: %w", entryID, err)
	}
	return entry, nil
}

// Delete removes an entry and its lines. It returns the deleted entry so the
// caller knows which company it belonged to.
func (s *Service) Delete(tx *gorm.DB, entryID uint) (model.JournalEntry, error) {
	var entry model.JournalEntry
	err := tx.First(&entry, entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.JournalEntry{}, apperr.NotFound("entry", entryID)
	}
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("loading journal entry %d: %w", entryID, err)
	}
	if err := tx.Where("entry_id = ?", entryID).Delete(&model.JournalLine{}).Error; err != nil {
		return model.JournalEntry{}, fmt.Errorf("deleting lines of entry %d: %w", entryID, err)
	}
	if err := tx.Delete(&entry).Error; err != nil {
		return model.JournalEntry{}, fmt.Errorf("deleting journal entry %d: %w", entryID, err)
	}
	return entry, nil
}
