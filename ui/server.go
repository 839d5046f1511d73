// Package ui serves the interactive web application: upload a dataset, get
// the rendered report back, optionally browse the archive. There is no
// server-side session state; every request produces and carries its own
// report bundle.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"datareport/app"
	"datareport/internal"
	"datareport/internal/config"
	"datareport/internal/render"
	"datareport/ports"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server represents the web server for the report generator UI
type Server struct {
	router    *gin.Engine
	reports   *app.ReportService
	html      *render.HTMLRenderer
	markdown  *render.MarkdownRenderer
	archive   ports.ReportArchive // nil when archiving is disabled
	templates *template.Template
	logger    *internal.Logger
	maxBody   int64
}

// NewServer creates a new web server instance. archive may be nil.
func NewServer(cfg *config.Config, reports *app.ReportService, archive ports.ReportArchive) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	htmlRenderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report renderer: %w", err)
	}

	templates, err := template.New("").Funcs(template.FuncMap{
		"count": render.FormatCount,
	}).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		reports:   reports,
		html:      htmlRenderer,
		markdown:  render.NewMarkdownRenderer(),
		archive:   archive,
		templates: templates,
		logger:    internal.DefaultLogger,
		maxBody:   int64(cfg.Upload.MaxFileSizeMB) << 20,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/report", s.handleGenerate)
	s.router.GET("/reports", s.handleArchiveList)
	s.router.GET("/reports/:id/download", s.handleArchiveDownload)
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	s.logger.Info("[UI] Listening on :%s (archive enabled: %v)", port, s.archive != nil)
	return s.router.Run(":" + port)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}
