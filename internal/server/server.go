// Package server exposes the ledger over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/ledgerbook/internal/accounts"
	"github.com/cleared-dev/ledgerbook/internal/bank"
	"github.com/cleared-dev/ledgerbook/internal/companies"
	"github.com/cleared-dev/ledgerbook/internal/config"
	"github.com/cleared-dev/ledgerbook/internal/importer"
	"github.com/cleared-dev/ledgerbook/internal/journal"
	"github.com/cleared-dev/ledgerbook/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server holds the services behind the HTTP API.
type Server struct {
	store     *store.Store
	log       logrus.FieldLogger
	companies *companies.Service
	accounts  *accounts.Service
	journal   *journal.Service
	bank      *bank.Service
	importer  *importer.Service
	parsers   *importer.Registry
	engine    *gin.Engine
}

// New builds the server and its routes.
func New(st *store.Store, cfg config.ServerConfig, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	acc := accounts.NewService()
	jr := journal.NewService()
	bk := bank.NewService()
	s := &Server{
		store:     st,
		log:       log,
		companies: companies.NewService(),
		accounts:  acc,
		journal:   jr,
		bank:      bk,
		importer:  importer.NewService(acc, jr, bk),
		parsers:   importer.DefaultRegistry(),
	}
	registerTagNames()

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(log), corsMiddleware(cfg.CORSOrigins))
	s.routes(r)
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
