package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/companies", s.listCompanies)
	api.POST("/companies", s.createCompany)

	company := api.Group("/companies/:id", s.loadCompany)
	company.GET("", s.getCompany)
	company.DELETE("", s.deleteCompany)

	company.GET("/accounts", s.listAccounts)
	company.POST("/accounts", s.createAccount)
	company.GET("/accounts/export", s.exportAccounts)
	company.POST("/accounts/:accountID/deactivate", s.deactivateAccount)
	company.DELETE("/accounts/:accountID", s.deleteAccount)

	company.GET("/entries", s.listEntries)
	company.POST("/entries", s.postEntry)

	company.GET("/bank", s.listBank)
	company.POST("/bank", s.createBank)

	company.GET("/reports/trial-balance", s.trialBalance)
	company.GET("/reports/trial-balance/export", s.exportTrialBalance)

	company.POST("/import/:kind", s.importFile)

	company.GET("/activity", s.listActivity)
	company.GET("/activity/export", s.exportActivity)

	api.GET("/entries/:entryID", s.getEntry)
	api.DELETE("/entries/:entryID", s.deleteEntry)
	api.DELETE("/bank/:txID", s.deleteBank)
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
