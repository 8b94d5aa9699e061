package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/accounts"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

type accountRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

func (s *Server) listAccounts(c *gin.Context) {
	company := companyFrom(c)
	db := s.store.Read(c.Request.Context())

	var (
		list []model.Account
		err  error
	)
	switch c.Query("all") {
	case "1", "true":
		list, err = s.accounts.All(db, company.ID)
	default:
		list, err = s.accounts.ListActive(db, company.ID)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": list})
}

func (s *Server) createAccount(c *gin.Context) {
	const action = "account.create"
	company := companyFrom(c)
	var req accountRequest
	if err := s.bindJSON(c, &req); err != nil {
		s.fail(c, company.ID, action, err)
		return
	}

	var acct model.Account
	err := s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		acct, err = s.accounts.Create(tx, company.ID, accounts.Input(req))
		return err
	})
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	s.succeed(c, http.StatusCreated, company.ID, action, model.LevelSuccess,
		fmt.Sprintf("Account %s %s created", acct.Code, acct.Name), gin.H{"id": acct.ID, "account": acct})
}

func (s *Server) deactivateAccount(c *gin.Context) {
	const action = "account.deactivate"
	company := companyFrom(c)
	id, err := uintParam(c, "accountID")
	if err != nil {
		s.writeError(c, err)
		return
	}

	var acct model.Account
	err = s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		acct, err = s.accounts.Deactivate(tx, company.ID, id)
		return err
	})
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	s.succeed(c, http.StatusOK, company.ID, action, model.LevelWarning,
		fmt.Sprintf("Account %s deactivated", acct.Code), gin.H{"account": acct})
}

func (s *Server) deleteAccount(c *gin.Context) {
	const action = "account.delete"
	company := companyFrom(c)
	id, err := uintParam(c, "accountID")
	if err != nil {
		s.writeError(c, err)
		return
	}

	err = s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return s.accounts.Delete(tx, company.ID, id)
	})
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	s.succeed(c, http.StatusOK, company.ID, action, model.LevelWarning,
		fmt.Sprintf("Account %d deleted", id), nil)
}

func (s *Server) exportAccounts(c *gin.Context) {
	company := companyFrom(c)
	list, err := s.accounts.All(s.store.Read(c.Request.Context()), company.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	attachment(c, fmt.Sprintf("chart-of-accounts-%d.csv", company.ID), "text/csv; charset=utf-8")
	if err := accounts.WriteAccounts(c.Writer, list); err != nil {
		s.log.WithError(err).Error("writing chart export")
	}
}
