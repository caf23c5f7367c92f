// Package server exposes the codec, validator, and archive over HTTP.
//
// # Overview
//
// The service is a thin JSON layer over the library packages:
//
//   - POST /api/convert: convert a document between schema generations
//   - POST /api/validate: validate a document against a generation
//   - GET/POST /api/pathways, GET/DELETE /api/pathways/{id}: the archive
//   - GET /healthz: liveness
//
// Request bodies for convert and validate are raw GPML; responses are
// JSON except convert, which returns the converted document.
//
// # Usage
//
//	srv := server.New(server.Config{Addr: ":8080"}, store.NewMemoryStore(), logger)
//	err := srv.ListenAndServe(ctx)
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pathmark/pathmark/pkg/convert"
	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/gpml"
	"github.com/pathmark/pathmark/pkg/store"
	"github.com/pathmark/pathmark/pkg/validate"

	"github.com/beevik/etree"
)

// maxBodySize caps request bodies at 32 MiB; pathway documents are far
// smaller in practice.
const maxBodySize = 32 << 20

// Config configures the HTTP service.
type Config struct {
	Addr string
	// ReadTimeout and WriteTimeout default to 30s.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP service.
type Server struct {
	cfg    Config
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// New creates the service with its routes mounted.
func New(cfg Config, st store.Store, logger *log.Logger) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	s := &Server{cfg: cfg, store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/validate", s.handleValidate)
		r.Route("/pathways", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the route tree, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// ListenAndServe runs the service until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve")
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns every request a UUID, echoed in the X-Request-Id
// header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		id, _ := r.Context().Value(requestIDKey).(string)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	target := gpml.Version(r.URL.Query().Get("target"))
	if !target.Valid() {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidVersion, "unknown target version %q", string(target)))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	p, from, err := gpml.Read(r.Context(), bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var report *convert.Report
	switch {
	case from == gpml.V2013a && target == gpml.V2021:
		report = convert.Upgrade(p)
	case from == gpml.V2021 && target == gpml.V2013a:
		report = convert.Downgrade(p)
	}

	var buf bytes.Buffer
	if err := gpml.Write(r.Context(), p, target, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if report != nil {
		if lossy := report.Lossy(); len(lossy) > 0 {
			detail, _ := json.Marshal(lossy)
			w.Header().Set("X-Conversion-Lossy", string(detail))
		}
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ValidateResponse reports validation findings.
type ValidateResponse struct {
	Version string           `json:"version"`
	Valid   bool             `json:"valid"`
	Issues  []validate.Issue `json:"issues,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, errors.Wrap(errors.ErrCodeConversion, err, "parse document"))
		return
	}

	ver := gpml.Version(r.URL.Query().Get("version"))
	if ver == "" {
		detected, err := gpml.DetectVersion(doc)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		ver = detected
	}
	if !ver.Valid() {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidVersion, "unknown version %q", string(ver)))
		return
	}

	result := validate.Document(doc, ver)
	writeJSON(w, http.StatusOK, ValidateResponse{
		Version: string(ver),
		Valid:   result.Valid(),
		Issues:  result.Issues,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	// Archived documents must at least decode; metadata is lifted from the
	// graph so listings stay truthful.
	p, ver, err := gpml.Read(r.Context(), bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	doc := store.NewDocument(p.Title, p.Organism, string(ver), body)
	if err := s.store.Save(r.Context(), doc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, store.Summary{
		ID:        doc.ID,
		Title:     doc.Title,
		Organism:  doc.Organism,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "pathway %s not found", id))
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response helpers
// =============================================================================

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
