package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/ledgerbook/internal/activity"
	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) trialBalance(c *gin.Context) {
	company := companyFrom(c)
	tb, err := report.Compute(s.store.Read(c.Request.Context()), company.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tb)
}

func (s *Server) exportTrialBalance(c *gin.Context) {
	company := companyFrom(c)
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		s.writeError(c, apperr.New(apperr.KindUnsupportedFormat, "format", "unsupported export format %q, expected xlsx or csv", format))
		return
	}

	tb, err := report.Compute(s.store.Read(c.Request.Context()), company.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	name := fmt.Sprintf("trial-balance-%d.%s", company.ID, format)
	if format == "csv" {
		attachment(c, name, "text/csv; charset=utf-8")
		err = report.WriteCSV(c.Writer, tb)
	} else {
		attachment(c, name, xlsxContentType)
		err = report.WriteXLSX(c.Writer, tb)
	}
	if err != nil {
		s.log.WithError(err).Error("writing trial balance export")
	}
}

func (s *Server) listActivity(c *gin.Context) {
	company := companyFrom(c)
	rows, err := activity.List(s.store.Read(c.Request.Context()), company.ID, activity.DefaultLimit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": rows})
}

func (s *Server) exportActivity(c *gin.Context) {
	company := companyFrom(c)
	rows, err := activity.List(s.store.Read(c.Request.Context()), company.ID, activity.DefaultLimit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	attachment(c, fmt.Sprintf("activity-%d.csv", company.ID), "text/csv; charset=utf-8")
	if err := activity.WriteCSV(c.Writer, rows); err != nil {
		s.log.WithError(err).Error("writing activity export")
	}
}
