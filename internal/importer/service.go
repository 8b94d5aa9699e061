package importer

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/accounts"
	"github.com/cleared-dev/ledgerbook/internal/bank"
	"github.com/cleared-dev/ledgerbook/internal/journal"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

// Kind names an import.
type Kind string

const (
	KindAccounts Kind = "accounts"
	KindJournal  Kind = "journal"
	KindBank     Kind = "bank"
)

// Kinds lists every import kind.
var Kinds = []Kind{KindAccounts, KindJournal, KindBank}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown import kind %q (want accounts, journal or bank)", s)
}

func (k Kind) noun() string {
	switch k {
	case KindAccounts:
		return "accounts"
	case KindJournal:
		return "journal entries"
	default:
		return "bank transactions"
	}
}

// Service runs imports. Each Import call parses the whole table first, then
// writes the surviving rows with the given transaction.
type Service struct {
	accounts *accounts.Service
	journal  *journal.Service
	bank     *bank.Service
}

// NewService wires the importer to the domain services it writes through.
func NewService(acc *accounts.Service, jr *journal.Service, bk *bank.Service) *Service {
	return &Service{accounts: acc, journal: jr, bank: bk}
}

// Import dispatches on kind.
func (s *Service) Import(tx *gorm.DB, kind Kind, companyID uint, t Table) (Result, error) {
	switch kind {
	case KindAccounts:
		return s.ImportAccounts(tx, companyID, t)
	case KindJournal:
		return s.ImportJournal(tx, companyID, t)
	case KindBank:
		return s.ImportBank(tx, companyID, t)
	default:
		return Result{}, fmt.Errorf("unknown import kind %q", kind)
	}
}

// accountCache resolves codes through Ensure once per import.
type accountCache struct {
	svc       *accounts.Service
	tx        *gorm.DB
	companyID uint
	byCode    map[string]model.Account
	created   int
}

func (s *Service) newAccountCache(tx *gorm.DB, companyID uint) *accountCache {
	return &accountCache{svc: s.accounts, tx: tx, companyID: companyID, byCode: make(map[string]model.Account)}
}

func (c *accountCache) resolve(code string) (model.Account, error) {
	if acct, ok := c.byCode[code]; ok {
		return acct, nil
	}
	acct, created, err := c.svc.Ensure(c.tx, c.companyID, code, "", "")
	if err != nil {
		return model.Account{}, err
	}
	if created {
		c.created++
	}
	c.byCode[code] = acct
	return acct, nil
}
