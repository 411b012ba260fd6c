// Package httpapi exposes the authentication service over JSON HTTP. It maps
// routes to service operations, service errors to status codes, and carries
// the permissive CORS policy the service ships with for browser clients.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/dpetrovs/authgate/internal/logging"
	"github.com/dpetrovs/authgate/internal/server/services"
)

type HTTPServer struct {
	address string
	auth    *services.AuthService
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, as *services.AuthService) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    as,
	}
}

// Handler assembles the route table and wraps it with CORS and request
// logging. Exposed separately from Run so tests can drive the full stack
// through httptest.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /authenticate", s.handleAuthenticate)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.Handle("GET /protected", s.requireAuth(http.HandlerFunc(s.handleProtected)))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return s.logRequests(c.Handler(mux))
}

func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
