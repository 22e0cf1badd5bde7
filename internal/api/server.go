// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/outreachready/backend/internal/common"
	"github.com/outreachready/backend/internal/llm"
	"github.com/outreachready/backend/internal/outreach"
	"github.com/outreachready/backend/internal/sqlite"
	"github.com/outreachready/backend/internal/webfetch"
)

// Deps carries the collaborators the server wires into the core. Fetchers are
// injectable so tests can stub outbound traffic; AnalyzerFetcher may be nil
// to reuse Fetcher.
type Deps struct {
	Store           *sqlite.Store
	Provider        llm.Provider
	Fetcher         webfetch.Fetcher
	AnalyzerFetcher webfetch.Fetcher
}

type Server struct {
	router   chi.Router
	store    *sqlite.Store
	provider llm.Provider
	service  *outreach.Service
	analyzer *outreach.Analyzer
}

func NewServer(deps Deps) (*Server, error) {
	logger := common.Logger()
	if deps.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if deps.Provider == nil {
		return nil, fmt.Errorf("provider required")
	}
	analyzerFetcher := deps.AnalyzerFetcher
	if analyzerFetcher == nil {
		analyzerFetcher = deps.Fetcher
	}
	srv := &Server{
		router:   chi.NewRouter(),
		store:    deps.Store,
		provider: deps.Provider,
		service:  outreach.NewService(deps.Provider, deps.Fetcher, deps.Store, deps.Store),
		analyzer: outreach.NewAnalyzer(analyzerFetcher, deps.Provider),
	}
	srv.routes()
	logger.Info("api: server ready", "provider", deps.Provider.Name())
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/messages/generate", s.handleGenerateMessages)
	s.router.Get("/v1/messages", s.handleListMessages)
	s.router.Post("/v1/website/analyze", s.handleAnalyzeWebsite)
	s.router.Post("/v1/contacts", s.handleCreateContact)
	s.router.Get("/v1/contacts", s.handleListContacts)
	s.router.Post("/v1/contacts/{id}/communications", s.handleCreateCommunication)
	s.router.Get("/v1/contacts/{id}/communications", s.handleListCommunications)
	s.router.Get("/v1/logs", s.handleLogs)
	s.router.Get("/debug/vars", expvar.Handler().ServeHTTP)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

// userID resolves the authenticated user from the gateway-populated header.
// Authentication itself is owned by the surrounding application.
func userID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		return "", fmt.Errorf("missing X-User-ID header")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps the core error taxonomy onto HTTP statuses. Parse failures
// are distinguishable from backend failures so callers can tell "the model
// produced garbage" from "the model did not run".
func statusFor(err error) int {
	var verr *outreach.ValidationError
	var berr *outreach.BackendError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, outreach.ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, sqlite.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, outreach.ErrUnparsableOutput):
		return http.StatusUnprocessableEntity
	case errors.As(err, &berr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
