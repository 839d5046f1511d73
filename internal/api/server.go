// Package api exposes the report pipeline as a JSON API. Each request
// carries its own table and result bundle; the handlers share nothing
// mutable between requests.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datareport/adapters/tabular"
	"datareport/app"
	"datareport/domain/report"
	"datareport/internal"
	apperrors "datareport/internal/errors"
	"datareport/internal/render"
)

// Server is the JSON API application
type Server struct {
	router  *chi.Mux
	reports *app.ReportService
	logger  *internal.Logger
	maxBody int64
}

// NewServer creates the API server around a report service
func NewServer(reports *app.ReportService, maxUploadMB int) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		reports: reports,
		logger:  internal.DefaultLogger,
		maxBody: int64(maxUploadMB) << 20,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", s.handleGenerateReport)
		r.Post("/reports/markdown", s.handleGenerateMarkdown)
	})
}

// Handler returns the HTTP handler for serving
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerateReport accepts a multipart upload under "file" and responds
// with the full report bundle as JSON
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	bundle, ok := s.generateFromUpload(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, bundle)
}

// handleGenerateMarkdown responds with the Markdown rendition instead
func (s *Server) handleGenerateMarkdown(w http.ResponseWriter, r *http.Request) {
	bundle, ok := s.generateFromUpload(w, r)
	if !ok {
		return
	}
	md := render.NewMarkdownRenderer().Render(bundle)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(md)
}

func (s *Server) generateFromUpload(w http.ResponseWriter, r *http.Request) (bundle *report.Bundle, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.InvalidInput("multipart field 'file' is required"))
		return nil, false
	}
	defer file.Close()

	t, err := tabular.Read(file, header.Filename)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return nil, false
	}

	result, err := s.reports.Generate(r.Context(), t)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return nil, false
	}
	return result, true
}

func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeEmptyInput, apperrors.CodeInvalidInput, apperrors.CodeMalformedSource:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("[API] Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("[API] Request failed (%d): %v", status, err)
	s.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
