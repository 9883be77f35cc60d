package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facturo/facturo/internal/decode"
	"github.com/facturo/facturo/internal/extract"
	"github.com/facturo/facturo/internal/labels"
	"github.com/facturo/facturo/internal/pipeline"
)

// handleParse decodes and extracts an uploaded document synchronously and
// returns the recovered fields. Nothing is persisted.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	res := s.extractFile(filename, data)
	if stats := s.orchestrator.Stats(); stats != nil {
		stats.Record(res, time.Since(start).Milliseconds())
	}

	res.RawText = truncateUTF8(res.RawText, s.cfg.RawTextPreviewBytes)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parsePayload(res))
}

// parsePayload shapes an extraction result for API responses, adding the
// localized display strings clients render verbatim.
func parsePayload(res extract.Result) map[string]any {
	set := labels.For(res.Locale)
	return map[string]any{
		"mode":            res.Kind.String(),
		"mode_label":      labels.KindLabel(res.Kind, res.Locale),
		"language":        res.Locale.String(),
		"currency_symbol": set.CurrencySymbol,
		"from_address":    res.FromAddress,
		"to_address":      res.ToAddress,
		"items":           res.Items,
		"total":           res.Total,
		"doc_title":       res.Title,
		"raw_text":        res.RawText,
	}
}

// handleParseAsync queues a document for background extraction and storage.
func (s *Server) handleParseAsync(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        uuid.NewString(),
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/parse/%s/status", job.ID),
	})
}

func (s *Server) handleParseStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Result != nil {
		snap.Result.RawText = truncateUTF8(snap.Result.RawText, s.cfg.RawTextPreviewBytes)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// readUpload validates and reads the multipart file field. On failure it
// writes the error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !decode.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

// extractFile runs decode plus extraction. Decode failures yield the default
// result with the error noted in the raw text.
func (s *Server) extractFile(filename string, data []byte) extract.Result {
	dec, err := decode.ForFile(filename)
	if err != nil {
		return extract.DefaultResult(fmt.Sprintf("Error opening document: %s", err))
	}
	if pdf, ok := dec.(*decode.PDFDecoder); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	doc, err := dec.Decode(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("decode failed", "filename", filename, "error", err)
		return extract.DefaultResult(fmt.Sprintf("Error opening document: %s", err))
	}
	return extract.Extract(doc.PageTexts())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

// truncateUTF8 caps s at n bytes without splitting a multi-byte rune.
func truncateUTF8(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
