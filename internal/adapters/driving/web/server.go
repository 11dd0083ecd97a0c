package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Deps are the application services the server drives.
type Deps struct {
	Workspace   driving.Workspace
	Properties  driving.PropertyService
	Submissions driving.SubmissionService
	Site        driving.SiteService
	Assets      driving.AssetService
	Admin       driving.AdminService

	// Location is optional; without it suggestLocation requests fail.
	Location driving.LocationService
}

// Server serves listing pages, the JSON API and the edit socket.
type Server struct {
	deps     Deps
	settings domain.ServerSettings
	hub      *Hub
	contact  *ipRateLimiter
	handler  http.Handler
}

// NewServer creates a server. Routes are fixed at construction.
func NewServer(settings domain.ServerSettings, deps Deps) *Server {
	s := &Server{
		deps:     deps,
		settings: settings,
		hub:      NewHub(deps.Workspace, deps.Admin, deps.Location),
		contact:  newIPRateLimiter(contactRate, contactBurst, maxTrackedIPs),
	}
	s.handler = securityHeaders(s.routes())
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /p/{id}", s.handlePage)
	mux.HandleFunc("GET /ws/{id}", s.handleSocket)

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/properties/{id}", s.handleGetProperty)
	mux.HandleFunc("POST /api/properties/{id}/contact", s.handleContact)
	mux.HandleFunc("GET /api/properties/{id}/submissions", s.requireAdmin(s.handleSubmissions))
	mux.HandleFunc("POST /api/assets", s.requireAdmin(s.handleUploadAsset))

	mux.HandleFunc("GET "+domain.TempAssetPrefix+"{token}", s.handleTempAsset)
	mux.HandleFunc("GET /assets/local/{key}", s.handleLocalAsset)

	if s.settings.PublicDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.settings.PublicDir))))
	}
	return mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Hub returns the edit socket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.settings.Addr
	if addr == "" {
		addr = domain.DefaultServerAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[Server] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.serve(w, r, r.PathValue("id"), sessionToken(r))
}
