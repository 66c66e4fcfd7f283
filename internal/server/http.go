// Package server exposes the tool registry over HTTP for callers that are
// not speaking MCP (debugging, orchestrators with plain REST clients).
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/watman/watman/internal/meta"
	"github.com/watman/watman/internal/tools"
)

func NewRouter(registry *tools.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/tools/{name}", invokeHandler(registry))

	return r
}

func invokeHandler(registry *tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if _, err := registry.Get(name); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
			return
		}

		args := map[string]any{}
		body, err := io.ReadAll(r.Body)
		if err == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &args); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "request body must be a JSON object"})
				return
			}
		}

		invocationID := uuid.NewString()
		w.Header().Set("X-Invocation-Id", invocationID)

		envelope, err := registry.Execute(r.Context(), name, args)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, meta.ErrMissingToken) {
				status = http.StatusServiceUnavailable
			}
			log.Printf("http: tool %s [%s] failed: %v", name, invocationID, err)
			writeJSON(w, status, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, envelope)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encoding response: %v", err)
	}
}
