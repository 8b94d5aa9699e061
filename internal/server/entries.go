package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/journal"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

func (s *Server) listEntries(c *gin.Context) {
	company := companyFrom(c)
	list, err := s.journal.List(s.store.Read(c.Request.Context()), company.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": list})
}

func (s *Server) postEntry(c *gin.Context) {
	const action = "entry.post"
	company := companyFrom(c)
	var form journal.Form
	if err := s.bindJSON(c, &form); err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	draft, err := journal.ParseDraft(form)
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}

	var entry model.JournalEntry
	err = s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		entry, err = s.journal.Post(tx, company.ID, draft)
		return err
	})
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	s.succeed(c, http.StatusCreated, company.ID, action, model.LevelSuccess,
		fmt.Sprintf("Entry %s posted", entry.Reference), gin.H{"id": entry.ID, "entry": entry})
}

func (s *Server) getEntry(c *gin.Context) {
	id, err := uintParam(c, "entryID")
	if err != nil {
		s.writeError(c, err)
		return
	}
	entry, err := s.journal.Get(s.store.Read(c.Request.Context()), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (s *Server) deleteEntry(c *gin.Context) {
	id, err := uintParam(c, "entryID")
	if err != nil {
		s.writeError(c, err)
		return
	}
	var entry model.JournalEntry
	err = s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		entry, err = s.journal.Delete(tx, id)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.succeed(c, http.StatusOK, entry.CompanyID, "entry.delete", model.LevelWarning,
		fmt.Sprintf("Entry %s deleted", entryLabel(entry)), nil)
}

func entryLabel(e model.JournalEntry) string {
	if e.Reference != "" {
		return e.Reference
	}
	return fmt.Sprintf("#%d", e.ID)
}
