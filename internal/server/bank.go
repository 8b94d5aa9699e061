package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/bank"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

type bankRequest struct {
	Date        model.Text `json:"date" binding:"required"`
	Description string     `json:"description"`
	Amount      model.Text `json:"amount" binding:"required"`
	AccountID   model.Text `json:"account_id"`
}

func (s *Server) listBank(c *gin.Context) {
	company := companyFrom(c)
	ledger, err := s.bank.List(s.store.Read(c.Request.Context()), company.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

func (s *Server) createBank(c *gin.Context) {
	const action = "bank.create"
	company := companyFrom(c)
	var req bankRequest
	if err := s.bindJSON(c, &req); err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	in := bank.Input{
		Date:        req.Date.String(),
		Description: req.Description,
		Amount:      req.Amount.String(),
		AccountID:   req.AccountID.String(),
	}

	var txn model.BankTransaction
	err := s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		txn, err = s.bank.Create(tx, company.ID, in)
		return err
	})
	if err != nil {
		s.fail(c, company.ID, action, err)
		return
	}
	kind := "Withdrawal"
	if txn.IsDeposit() {
		kind = "Deposit"
	}
	s.succeed(c, http.StatusCreated, company.ID, action, model.LevelSuccess,
		fmt.Sprintf("%s of %s recorded", kind, txn.Amount.Abs().StringFixed(2)), gin.H{"id": txn.ID, "transaction": txn})
}

func (s *Server) deleteBank(c *gin.Context) {
	id, err := uintParam(c, "txID")
	if err != nil {
		s.writeError(c, err)
		return
	}
	var txn model.BankTransaction
	err = s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		txn, err = s.bank.Delete(tx, id)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.succeed(c, http.StatusOK, txn.CompanyID, "bank.delete", model.LevelWarning,
		fmt.Sprintf("Transaction %d deleted", txn.ID), nil)
}
