package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cutstack/cutstack/pkg/buildinfo"
	"github.com/cutstack/cutstack/pkg/errors"
	"github.com/cutstack/cutstack/pkg/pagecount"
	"github.com/cutstack/cutstack/pkg/pipeline"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type planRequest struct {
	InputPages   int     `json:"input_pages"`
	PagesPerSide int     `json:"pages_per_sheet"`
	TargetRatio  float64 `json:"target_ratio,omitempty"`
}

type renderRequest struct {
	planRequest
	Format      string `json:"format"`
	CutLines    *bool  `json:"cut_lines,omitempty"`
	PageNumbers *bool  `json:"page_numbers,omitempty"`
}

type countResponse struct {
	Pages int `json:"pages"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := pipeline.Options{
		InputPages:   req.InputPages,
		PagesPerSide: req.PagesPerSide,
		TargetRatio:  req.TargetRatio,
		Logger:       s.logger,
	}
	plan, err := s.runner.Plan(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := pipeline.RenderFormat(plan, pipeline.FormatJSON, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	pages, err := queryInt(r, "pages", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	nup, err := queryInt(r, "nup", pipeline.DefaultPagesPerSide)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		InputPages:   pages,
		PagesPerSide: nup,
		Preview:      true,
		Logger:       s.logger,
	}
	plan, err := s.runner.Plan(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := pipeline.RenderFormat(plan, pipeline.FormatJSON, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse multipart form"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing file field"))
		return
	}
	defer file.Close()

	pages, err := pagecount.Count(file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Pages: pages})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.Options{
		InputPages:   req.InputPages,
		PagesPerSide: req.PagesPerSide,
		TargetRatio:  req.TargetRatio,
		Formats:      []string{format},
		CutLines:     boolOr(req.CutLines, true),
		PageNumbers:  boolOr(req.PageNumbers, true),
		Logger:       s.logger,
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeRaw(w, http.StatusOK, contentTypeFor(format), result.Artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

// writeError maps error codes onto HTTP statuses and emits the standard error
// envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidPageCount,
		errors.ErrCodeInvalidPagesPerSheet,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDocument:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
	}

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %q must be an integer", name)
	}
	return n, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
