package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/companies"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

type companyRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
}

func (s *Server) listCompanies(c *gin.Context) {
	list, err := s.companies.List(s.store.Read(c.Request.Context()))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list})
}

func (s *Server) createCompany(c *gin.Context) {
	var req companyRequest
	if err := s.bindJSON(c, &req); err != nil {
		s.writeError(c, err)
		return
	}

	var company model.Company
	err := s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var err error
		company, err = s.companies.Create(tx, companies.Input(req))
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.succeed(c, http.StatusCreated, company.ID, "company.create", model.LevelSuccess,
		fmt.Sprintf("Company %s created", company.Name), gin.H{"id": company.ID, "company": company})
}

func (s *Server) getCompany(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"company": companyFrom(c)})
}

func (s *Server) deleteCompany(c *gin.Context) {
	company := companyFrom(c)
	err := s.store.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return s.companies.Delete(tx, company.ID)
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Company %s deleted", company.Name)})
}
