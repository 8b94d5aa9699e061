package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/ledgerbook/internal/activity"
	"github.com/cleared-dev/ledgerbook/internal/apperr"
	"github.com/cleared-dev/ledgerbook/internal/config"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

const companyKey = "company"

func uintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.NotFound(name, raw)
	}
	return uint(v), nil
}

// loadCompany resolves :id for every company-scoped route.
func (s *Server) loadCompany(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		s.writeError(c, apperr.NotFound("company", c.Param("id")))
		return
	}
	company, err := s.companies.Get(s.store.Read(c.Request.Context()), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Set(companyKey, company)
	c.Next()
}

func companyFrom(c *gin.Context) model.Company {
	return c.MustGet(companyKey).(model.Company)
}

// succeed records a success message and replies with body plus "message".
func (s *Server) succeed(c *gin.Context, status int, companyID uint, action string, level model.ActivityLevel, message string, body gin.H) {
	s.record(c, companyID, action, level, message)
	if body == nil {
		body = gin.H{}
	}
	body["message"] = message
	c.JSON(status, body)
}

// fail records a rejected mutation, then writes the error. Only validation
// failures are recorded; they carry a message meant for the user.
func (s *Server) fail(c *gin.Context, companyID uint, action string, err error) {
	if ve, ok := apperr.As(err); ok && ve.Kind != apperr.KindNotFound && companyID != 0 {
		s.record(c, companyID, action, model.LevelDanger, ve.Message)
	}
	s.writeError(c, err)
}

func (s *Server) record(c *gin.Context, companyID uint, action string, level model.ActivityLevel, message string) {
	if companyID == 0 {
		return
	}
	if _, err := activity.Record(s.store.Read(c.Request.Context()), companyID, action, level, message); err != nil {
		config.LogError(s.log, "server", "record", action, gin.H{"company_id": companyID}, err)
	}
}

func attachment(c *gin.Context, filename, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
}
