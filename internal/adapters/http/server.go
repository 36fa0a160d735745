package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/strops/pkg/core"
)

const maxBodyBytes = 1 << 20

// Service is the part of core.Service the HTTP adapter needs.
type Service interface {
	Run(ctx context.Context, op core.Operation, text string) (core.Result, error)
	RunAll(ctx context.Context, text string) ([]core.Result, error)
}

// Server serves the text operations over HTTP.
type Server struct {
	Service Service
	Metrics *Metrics
	Version string
}

type textRequest struct {
	Text *string `json:"text"`
}

// NewHandler creates the HTTP handler. metrics may be nil, in which case
// /metrics is not mounted.
func NewHandler(svc Service, metrics *Metrics, version string) http.Handler {
	s := &Server{Service: svc, Metrics: metrics, Version: version}
	r := chi.NewRouter()

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/operations", s.ListOperations)
	r.Post("/v1/all", s.ApplyAll)
	r.Post("/v1/{operation}", s.Apply)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "strops-http",
		"version": s.Version,
	})
}

// ListOperations handles GET /operations.
func (s *Server) ListOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]core.Operation{"operations": core.Operations()})
}

// Apply handles POST /v1/{operation}.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	op, err := core.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		writeError(w, err)
		return
	}

	text, err := decodeText(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.Service.Run(r.Context(), op, text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ApplyAll handles POST /v1/all.
func (s *Server) ApplyAll(w http.ResponseWriter, r *http.Request) {
	text, err := decodeText(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	results, err := s.Service.RunAll(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]core.Result{"results": results})
}

func decodeText(w http.ResponseWriter, r *http.Request) (string, error) {
	var body textRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: invalid request body: %v", core.ErrInvalidArgument, err)
	}
	if body.Text == nil {
		return "", fmt.Errorf("%w: missing \"text\"", core.ErrInvalidArgument)
	}
	return *body.Text, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrUnknownOperation):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// ListenAndServe serves handler on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		logger.Info("HTTP server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
