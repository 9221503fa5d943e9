// Package receiver is a reference sync endpoint. It accepts outbox batches
// and stores each event once, which makes the at-least-once delivery of the
// client safe to replay.
package receiver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/misterclayt0n/warrior/internal/outbox"
	"github.com/rs/cors"
)

type Server struct {
	store  *EventStore
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(store *EventStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{store: store, logger: logger, now: time.Now}
}

// Handler returns the routed handler wrapped in CORS and request logging.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/sync", s.handleSync).Methods(http.MethodPost)
	r.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.loggingMiddleware(r))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var batch outbox.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "invalid batch: "+err.Error(), http.StatusBadRequest)
		return
	}
	for _, ev := range batch.Events {
		if ev.ID == "" || ev.Type == "" {
			http.Error(w, "every event needs an id and a type", http.StatusBadRequest)
			return
		}
	}

	accepted, err := s.store.Append(r.Context(), batch.Events, s.now())
	if err != nil {
		s.logger.Error("storing batch failed", "events", len(batch.Events), "err", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	s.logger.Info("batch received", "events", len(batch.Events), "new", accepted)
	writeJSON(w, http.StatusOK, outbox.Ack{OK: true, Accepted: accepted})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		s.logger.Error("listing events failed", "err", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
