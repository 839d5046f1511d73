package ui

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"datareport/app"
	"datareport/internal/config"
	"datareport/models"
	"datareport/ports"
)

// memoryArchive is an in-memory ReportArchive for handler tests
type memoryArchive struct {
	records []models.ReportRecord
}

func (m *memoryArchive) Save(ctx context.Context, record *models.ReportRecord) error {
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryArchive) List(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	if len(m.records) > limit {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *memoryArchive) Get(ctx context.Context, id uuid.UUID) (*models.ReportRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		Upload: config.UploadConfig{MaxFileSizeMB: 10},
	}
}

func newTestServer(t *testing.T, archive ports.ReportArchive) *Server {
	t.Helper()
	server, err := NewServer(testConfig(), app.NewReportService(nil), archive)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestIndexPage(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Upload") {
		t.Error("index page should show the upload form")
	}
}

func TestGenerateReportPage(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	csv := "region,sales\nNorth,100\nSouth,200\nEast,150\n"
	server.Handler().ServeHTTP(rec, uploadRequest(t, "/report", "sales.csv", csv))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "</html>") {
		t.Error("response should be a full HTML document")
	}
	if !strings.Contains(body, "sales.csv") {
		t.Error("report should name its source file")
	}
}

func TestGenerateMarkdownDownload(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, uploadRequest(t, "/report?format=md", "data.csv", "a,b\n1,2\n"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "attachment") {
		t.Error("Markdown format should download as an attachment")
	}
	if !strings.Contains(rec.Body.String(), "# Data Report — data.csv") {
		t.Error("Markdown body missing the report title")
	}
}

func TestGenerateMarkdownPreview(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, uploadRequest(t, "/report?format=preview", "data.csv", "a,b\n1,2\n"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Error("preview should be converted HTML, not raw Markdown")
	}
}

func TestGenerateEmptyUpload(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, uploadRequest(t, "/report", "empty.csv", "a,b\n"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The uploaded file is empty") {
		t.Errorf("expected the empty-file message, got: %s", rec.Body.String())
	}
}

func TestGenerateMissingFileField(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader("plain body"))
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateArchivesReport(t *testing.T) {
	archive := &memoryArchive{}
	server := newTestServer(t, archive)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, uploadRequest(t, "/report", "sales.csv", "a,b\n1,2\n3,4\n"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(archive.records) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(archive.records))
	}
	record := archive.records[0]
	if record.Source != "sales.csv" || record.RowCount != 2 || record.ColumnCount != 2 {
		t.Errorf("unexpected archived record: %+v", record)
	}
	if !strings.Contains(record.HTML, "</html>") {
		t.Error("archived record should hold the rendered document")
	}
}

func TestArchiveListPage(t *testing.T) {
	archive := &memoryArchive{records: []models.ReportRecord{
		*models.NewReportRecord("old.csv", 10, 3, 5, "<html></html>"),
	}}
	server := newTestServer(t, archive)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "old.csv") {
		t.Error("archive listing should show stored sources")
	}
}

func TestArchiveListDisabled(t *testing.T) {
	server := newTestServer(t, nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when archiving is off", rec.Code)
	}
}

func TestArchiveDownload(t *testing.T) {
	record := models.NewReportRecord("sales.csv", 10, 3, 5, "<html>archived</html>")
	archive := &memoryArchive{records: []models.ReportRecord{*record}}
	server := newTestServer(t, archive)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/reports/"+record.ID.String()+"/download", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "attachment") {
		t.Error("download should set an attachment disposition")
	}
	if rec.Body.String() != "<html>archived</html>" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestArchiveDownloadBadID(t *testing.T) {
	server := newTestServer(t, &memoryArchive{})
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/reports/not-a-uuid/download", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestArchiveDownloadNotFound(t *testing.T) {
	server := newTestServer(t, &memoryArchive{})
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/reports/"+uuid.NewString()+"/download", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
