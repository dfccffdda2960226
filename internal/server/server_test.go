package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	s := New(Config{Logger: log.NewWithOptions(io.Discard, log.Options{})})
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestPlanEndpoint(t *testing.T) {
	s := testServer(t)

	body := strings.NewReader(`{"input_pages": 8, "pages_per_sheet": 2}`)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/plan", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Stats struct {
			SheetCount int    `json:"sheet_count"`
			Grid       string `json:"grid"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Stats.SheetCount != 2 || out.Stats.Grid != "1×2" {
		t.Errorf("stats = %+v, want 2 sheets on 1×2", out.Stats)
	}
}

func TestPlanEndpointValidation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"ZeroPages", `{"input_pages": 0, "pages_per_sheet": 2}`, "INVALID_PAGE_COUNT"},
		{"TooManyPages", `{"input_pages": 501, "pages_per_sheet": 2}`, "INVALID_PAGE_COUNT"},
		{"BadPerSheet", `{"input_pages": 8, "pages_per_sheet": 129}`, "INVALID_PAGES_PER_SHEET"},
		{"MalformedJSON", `{"input_pages":`, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", strings.NewReader(tt.body))
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var out errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", out.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestPreviewEndpoint(t *testing.T) {
	s := testServer(t)

	// No parameters: demo defaults of 8 pages at 2-up.
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Stats struct {
			InputPages int `json:"input_pages"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Stats.InputPages != 8 {
		t.Errorf("input pages = %d, want 8", out.Stats.InputPages)
	}
}

func TestPreviewEndpointParams(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preview?pages=16&nup=4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preview?pages=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-integer pages: status = %d, want 400", rec.Code)
	}
}

func TestRenderEndpointSVG(t *testing.T) {
	s := testServer(t)

	body := strings.NewReader(`{"input_pages": 4, "pages_per_sheet": 2, "format": "svg"}`)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/render", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestRenderEndpointBadFormat(t *testing.T) {
	s := testServer(t)

	body := strings.NewReader(`{"input_pages": 4, "pages_per_sheet": 2, "format": "gif"}`)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/render", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCountEndpointRejectsNonPDF(t *testing.T) {
	s := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("not a pdf")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/count", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var out errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Error.Code != "INVALID_DOCUMENT" {
		t.Errorf("error code = %q, want INVALID_DOCUMENT", out.Error.Code)
	}
}

func TestCountEndpointMissingFile(t *testing.T) {
	s := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/count", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}
