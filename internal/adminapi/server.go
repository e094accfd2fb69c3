// Package adminapi is the HTTP surface of the zone server: zone authoring
// and inspection for admins, plus player event ingestion for game servers
// that talk to the zone service over HTTP.
package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver"
)

const shutdownTimeout = 10 * time.Second

// Server serves the admin API.
type Server struct {
	editor  *zone.Editor
	orch    *crossing.Orchestrator
	game    *gameserver.Server
	schemas *schemas
	auth    *tokenAuth
	router  *mux.Router
}

// New builds the API. tokenHash is a bcrypt hash of the bearer token;
// empty disables auth.
func New(editor *zone.Editor, orch *crossing.Orchestrator, game *gameserver.Server, tokenHash string) (*Server, error) {
	sch, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	auth, err := newTokenAuth(tokenHash)
	if err != nil {
		return nil, err
	}

	s := &Server{
		editor:  editor,
		orch:    orch,
		game:    game,
		schemas: sch,
		auth:    auth,
		router:  mux.NewRouter(),
	}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.auth.middleware)

	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	r.HandleFunc("/zones", s.handleListZones).Methods(http.MethodGet)
	r.HandleFunc("/zones", s.handleCreateZone).Methods(http.MethodPost)
	r.HandleFunc("/zones/at", s.handleZoneAt).Methods(http.MethodGet)
	r.HandleFunc("/zones/loot", s.handleLootAt).Methods(http.MethodGet)
	r.HandleFunc("/zones/{name}", s.handleGetZone).Methods(http.MethodGet)
	r.HandleFunc("/zones/{name}", s.handleDeleteZone).Methods(http.MethodDelete)

	r.HandleFunc("/selection", s.handleGetSelection).Methods(http.MethodGet)
	r.HandleFunc("/selection", s.handleClearSelection).Methods(http.MethodDelete)
	r.HandleFunc("/selection/{corner:[12]}", s.handleSetCorner).Methods(http.MethodPut)

	r.HandleFunc("/players/{id}", s.handleGetPlayer).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}/join", s.handleJoin).Methods(http.MethodPost)
	r.HandleFunc("/players/{id}/move", s.handleMove).Methods(http.MethodPost)
	r.HandleFunc("/players/{id}/leave", s.handleLeave).Methods(http.MethodPost)
	r.HandleFunc("/players/{id}/death", s.handleDeath).Methods(http.MethodPost)
	r.HandleFunc("/players/{id}/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/players/{id}/attack/{victim}", s.handleAttack).Methods(http.MethodPost)
}

// Handler returns the routed, authenticated handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info("admin api listening", "addr", ln.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down admin api: %w", err)
		}
		slog.Info("admin api stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving admin api: %w", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing admin api response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("admin api request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes. Anything unknown is a
// failed dependency (store), reported as 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, zone.ErrIncompleteSelection),
		errors.Is(err, zone.ErrUnknownRisk),
		errors.Is(err, zone.ErrEmptyName),
		errors.Is(err, zone.ErrReservedName),
		errors.Is(err, gameserver.ErrInvalidPosition),
		errors.Is(err, gameserver.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, zone.ErrZoneExists),
		errors.Is(err, gameserver.ErrNameTaken):
		return http.StatusConflict
	case errors.Is(err, zone.ErrZoneNotFound),
		errors.Is(err, gameserver.ErrNotOnline):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
