package importer

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/model"
)

type journalRow struct {
	num    int
	code   string
	memo   string
	debit  decimal.Decimal
	credit decimal.Decimal
}

type journalGroup struct {
	ref         string
	firstRow    int
	date        string
	description string
	rows        []journalRow
	bad         bool
}

// ImportJournal groups rows by entry_ref and stores one entry per group.
// Dates and descriptions come from the first row of a group. Unknown account
// codes are created on the fly. Entries are not balance-checked; unbalanced
// ones are stored and listed in Result.Unbalanced.
func (s *Service) ImportJournal(tx *gorm.DB, companyID uint, t Table) (Result, error) {
	res := Result{Kind: KindJournal}
	b, err := JournalSchema.Bind(t.Header)
	if err != nil {
		return res, err
	}
	hasDesc := b.Has("description")

	groups := make(map[string]*journalGroup)
	var order []*journalGroup
	for i, row := range t.Rows {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		ref := b.Get(row, "entry_ref")
		if ref == "" {
			res.fail(rowNum, "", "entry_ref is required")
			continue
		}
		g, ok := groups[ref]
		if !ok {
			g = &journalGroup{ref: ref, firstRow: rowNum, date: b.Get(row, "date")}
			if hasDesc {
				g.description = b.Get(row, "description")
			}
			if g.description == "" {
				g.description = ref
			}
			groups[ref] = g
			order = append(order, g)
		}
		if g.bad {
			continue
		}

		code := b.Get(row, "account_code")
		if code == "" {
			g.bad = true
			res.fail(rowNum, ref, "account_code is required")
			continue
		}
		debit, err := model.ParseAmount(b.Get(row, "debit"))
		if err != nil {
			g.bad = true
			res.fail(rowNum, ref, "cannot parse debit %q", b.Get(row, "debit"))
			continue
		}
		credit, err := model.ParseAmount(b.Get(row, "credit"))
		if err != nil {
			g.bad = true
			res.fail(rowNum, ref, "cannot parse credit %q", b.Get(row, "credit"))
			continue
		}
		g.rows = append(g.rows, journalRow{
			num:    rowNum,
			code:   code,
			memo:   b.Get(row, "memo"),
			debit:  debit,
			credit: credit,
		})
	}

	cache := s.newAccountCache(tx, companyID)
	for _, g := range order {
		if g.bad {
			continue
		}
		date, err := ParseDate(g.date)
		if err != nil {
			res.fail(g.firstRow, g.ref, "%s", messageOf(err))
			continue
		}

		entry := model.JournalEntry{
			CompanyID:   companyID,
			Reference:   g.ref,
			Date:        date,
			Description: g.description,
		}
		totalDebit, totalCredit := decimal.Zero, decimal.Zero
		for _, r := range g.rows {
			acct, err := cache.resolve(r.code)
			if err != nil {
				return Result{Kind: KindJournal}, err
			}
			entry.Lines = append(entry.Lines, model.JournalLine{
				AccountID: acct.ID,
				Memo:      r.memo,
				Debit:     r.debit,
				Credit:    r.credit,
			})
			totalDebit = totalDebit.Add(r.debit)
			totalCredit = totalCredit.Add(r.credit)
		}
		if err := s.journal.Record(tx, &entry); err != nil {
			return Result{Kind: KindJournal}, err
		}
		res.Created++
		if !totalDebit.Round(2).Equal(totalCredit.Round(2)) {
			res.Unbalanced = append(res.Unbalanced, g.ref)
		}
	}
	res.AccountsCreated = cache.created
	return res, nil
}
