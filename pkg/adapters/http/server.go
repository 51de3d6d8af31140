package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/internal/logging"
	"github.com/aretw0/substrate/internal/presentation/graph"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/aretw0/substrate/pkg/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes a session manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	allowedOrigins []string
	metricsPath    string
	metrics        http.Handler
	logger         *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithMetrics mounts a metrics handler at path.
func WithMetrics(path string, h http.Handler) Option {
	return func(s *Server) {
		s.metricsPath = path
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions:       manager,
		allowedOrigins: []string{"*"},
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, s.metricsPath, s.metrics)
	}

	r.Get("/sessions", s.ListSessions)
	r.Post("/sessions", s.CreateSession)
	r.Get("/sessions/{id}", s.GetSession)
	r.Delete("/sessions/{id}", s.DeleteSession)
	r.Post("/sessions/{id}/click", s.Click)
	r.Post("/sessions/{id}/arm", s.Arm)
	r.Get("/sessions/{id}/events", s.SubscribeEvents)
	r.Get("/sessions/{id}/graph", s.GetGraph)

	return r
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "substrate-http",
		"version":     strings.TrimSpace(substrate.Version),
		"api_version": apiVersion,
	})
}

// GetOpenAPI serves the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(rawSpec)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

type sessionResponse struct {
	ID       string          `json:"id"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

// CreateSession handles POST /sessions. The body and its id are optional.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := decodeBody(r, &body, true); err != nil {
		s.badRequest(w, "CreateSession", err)
		return
	}

	id, err := s.Sessions.Start(r.Context(), body.ID)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	snap, err := s.Sessions.View(r.Context(), id)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Snapshot: snap})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetGraph handles GET /sessions/{id}/graph with a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(graph.GenerateMermaid(snap)))
}

// DeleteSession handles DELETE /sessions/{id} and ends its event streams.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Click handles POST /sessions/{id}/click.
func (s *Server) Click(w http.ResponseWriter, r *http.Request) {
	var body clickRequest
	if err := decodeBody(r, &body, false); err != nil {
		s.badRequest(w, "Click", err)
		return
	}
	s.mutate(w, r, "Click", func(ctx context.Context, d *substrate.Designer) error {
		return d.OnGridClick(ctx, *body.X, *body.Y)
	})
}

// Arm handles POST /sessions/{id}/arm.
func (s *Server) Arm(w http.ResponseWriter, r *http.Request) {
	var body armRequest
	if err := decodeBody(r, &body, false); err != nil {
		s.badRequest(w, "Arm", err)
		return
	}
	role, err := domain.ParseRole(body.Role)
	if err != nil {
		s.badRequest(w, "Arm", err)
		return
	}
	s.mutate(w, r, "Arm", func(ctx context.Context, d *substrate.Designer) error {
		return d.OnArmPlacement(ctx, role)
	})
}

// mutate applies fn under the session lock, broadcasts the resulting diff
// and answers with the new snapshot.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, *substrate.Designer) error) {
	id := chi.URLParam(r, "id")

	var before, after domain.Snapshot
	err := s.Sessions.Do(r.Context(), id, func(ctx context.Context, d *substrate.Designer) error {
		before = d.Snapshot()
		if err := fn(ctx, d); err != nil {
			return err
		}
		after = d.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, op, err)
		return
	}

	// Calculate and Broadcast Diff
	if diff := domain.Diff(id, &before, &after); diff != nil {
		if bytes, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(id, string(bytes))
		}
	} else {
		s.logger.Debug(op+": No diff calculated", "session_id", id)
	}
	writeJSON(w, http.StatusOK, after)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.View(r.Context(), id); err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var watch []string
	if raw := r.URL.Query().Get("watch"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			watch = append(watch, strings.TrimSpace(field))
		}
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribed to session updates", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}
			if len(watch) > 0 && !watched(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// watched reports whether the diff in msg touches any of the named collections.
func watched(msg string, fields []string) bool {
	var diff domain.SnapshotDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range fields {
		switch field {
		case "inputs":
			if diff.Inputs != nil {
				return true
			}
		case "outputs":
			if diff.Outputs != nil {
				return true
			}
		case "hidden":
			if diff.Hidden != nil {
				return true
			}
		case "connections":
			if diff.Connections != nil {
				return true
			}
		case "mode":
			if diff.Mode != nil {
				return true
			}
		}
	}
	return false
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.logger.Warn(op+": Invalid request", "err", err)
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "err", err, "status", status)
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
