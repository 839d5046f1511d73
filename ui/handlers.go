package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"datareport/adapters/tabular"
	apperrors "datareport/internal/errors"
	"datareport/internal/render"
	"datareport/models"
)

// handleIndex renders the upload page
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"ArchiveEnabled": s.archive != nil,
	})
}

// handleGenerate accepts the uploaded dataset, runs the pipeline and
// responds with the rendered report. format=md downloads the Markdown
// rendition, format=preview shows it converted to HTML.
func (s *Server) handleGenerate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "Please choose a CSV or XLSX file to upload.")
		return
	}
	defer file.Close()

	t, err := tabular.Read(file, header.Filename)
	if err != nil {
		s.renderError(c, statusForError(err), userMessage(err))
		return
	}

	bundle, err := s.reports.Generate(c.Request.Context(), t)
	if err != nil {
		s.renderError(c, statusForError(err), userMessage(err))
		return
	}

	switch c.Query("format") {
	case "md":
		md := s.markdown.Render(bundle)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="data_report_%s.md"`,
			time.Now().Format("20060102_150405")))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", md)
		return
	case "preview":
		fragment := render.ToHTML(s.markdown.Render(bundle))
		c.Data(http.StatusOK, "text/html; charset=utf-8", fragment)
		return
	}

	document, err := s.html.Render(bundle)
	if err != nil {
		s.logger.Error("[UI] Report rendering failed: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Report rendering failed.")
		return
	}

	if s.archive != nil {
		record := models.NewReportRecord(bundle.Source, bundle.Overview.Rows,
			bundle.Overview.Columns, len(bundle.Insights), string(document))
		if err := s.archive.Save(c.Request.Context(), record); err != nil {
			// Archive failures never block report delivery
			s.logger.Warn("[UI] Failed to archive report: %v", err)
		}
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", document)
}

// handleArchiveList shows previously generated reports
func (s *Server) handleArchiveList(c *gin.Context) {
	if s.archive == nil {
		s.renderError(c, http.StatusNotFound, "Report archiving is not configured.")
		return
	}

	records, err := s.archive.List(c.Request.Context(), 50)
	if err != nil {
		s.logger.Error("[UI] Archive listing failed: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Could not load archived reports.")
		return
	}

	s.renderTemplate(c, "reports.html", gin.H{"Records": records})
}

// handleArchiveDownload serves an archived report as an HTML attachment
func (s *Server) handleArchiveDownload(c *gin.Context) {
	if s.archive == nil {
		s.renderError(c, http.StatusNotFound, "Report archiving is not configured.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid report ID.")
		return
	}

	record, err := s.archive.Get(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("[UI] Archive lookup failed: %v", err)
		s.renderError(c, http.StatusInternalServerError, "Could not load the report.")
		return
	}
	if record == nil {
		s.renderError(c, http.StatusNotFound, "Report not found.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="data_report_%s.html"`,
		record.CreatedAt.Format("20060102_150405")))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(record.HTML))
}

// renderTemplate executes a page template, buffering first so template
// errors never leak a half-written page
func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("[UI] Template error for %s: %v", name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "error.html", gin.H{"Message": message}); err != nil {
		c.String(status, message)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeEmptyInput, apperrors.CodeInvalidInput, apperrors.CodeMalformedSource:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// userMessage maps pipeline errors to upload-page phrasing
func userMessage(err error) string {
	switch apperrors.GetCode(err) {
	case apperrors.CodeEmptyInput:
		return "The uploaded file is empty. Please upload a file with data."
	case apperrors.CodeMalformedSource:
		return "Unable to parse the file. Please ensure it's a valid CSV or XLSX."
	default:
		return "An error occurred while generating the report."
	}
}
