// Package httpapi exposes the remember-me ledger over HTTP using gin. The raw
// secret travels only in the cookie; response bodies carry its digest.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address         string
	ledger          *rememberme.Ledger
	issuerKey       string
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewServer builds the HTTP server. Issuance requires issuerKey; an empty key
// disables it.
func NewServer(address string, l logging.Logger, ledger *rememberme.Ledger, issuerKey string, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		ledger:          ledger,
		issuerKey:       issuerKey,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the gin engine with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handler{ledger: s.ledger, logger: s.logger}
	api := r.Group("/api")
	api.POST("/rememberme", RequireIssuerKey(s.issuerKey), h.issue)
	api.GET("/rememberme", h.verify)
	api.DELETE("/rememberme", h.revoke)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
