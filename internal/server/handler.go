package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"energyaudit/internal/audit"
	"energyaudit/internal/domain"
	"energyaudit/internal/metrics"
	"energyaudit/internal/report"
)

const (
	formFile = "file"
	formLang = "lang"

	defaultLang = "en"
	pdfSuffix   = ".pdf"

	// multipartMemory is how much of a multipart body is held in memory
	// before parts spill to temporary files.
	multipartMemory = 8 << 20
)

// TextExtractor reads the text of a PDF document.
type TextExtractor interface {
	Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// Analyzer produces an audit summary from report text.
type Analyzer interface {
	Analyze(ctx context.Context, text string, language domain.Language) (audit.Result, error)
}

// Handler serves the ingest-and-summarize and report download endpoints.
type Handler struct {
	extractor      TextExtractor
	analyzer       Analyzer
	metrics        *metrics.Metrics
	log            *slog.Logger
	maxUploadBytes int64
}

func NewHandler(
	extractor TextExtractor,
	analyzer Analyzer,
	m *metrics.Metrics,
	log *slog.Logger,
	maxUploadBytes int64,
) *Handler {
	return &Handler{
		extractor:      extractor,
		analyzer:       analyzer,
		metrics:        m,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register registers the handler routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/process", h.handleProcess)
	r.Post("/download", h.handleDownload)
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, filename, err := h.readUpload(w, r)
	if err != nil {
		h.log.WarnContext(ctx, "Upload is rejected",
			"error", err,
			"filename", filename)
		writeError(w, err)

		return
	}

	lang := r.FormValue(formLang)
	if lang == "" {
		lang = defaultLang
	}

	text, err := h.extractor.Extract(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to extract text from PDF",
			"error", err,
			"filename", filename,
			"sizeBytes", len(data))
		writeError(w, fmt.Errorf("extract text: %w", err))

		return
	}
	h.metrics.ObserveExtractedChars(utf8.RuneCountInString(text))

	result, err := h.analyzer.Analyze(ctx, text, domain.LanguageFromCode(lang))
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to analyze report",
			"error", err,
			"filename", filename,
			"lang", lang)
		writeError(w, fmt.Errorf("analyze: %w", err))

		return
	}

	h.log.InfoContext(ctx, "Report is summarized",
		"filename", filename,
		"lang", lang,
		"textLength", len(text),
		"fallback", result.Fallback)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(result.JSON); err != nil {
		h.log.ErrorContext(ctx, "Failed to write response",
			"error", err,
			"operation", "handleProcess")
	}
}

// readUpload returns the uploaded file contents and name. Only the file name
// suffix is checked.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, "", fmt.Errorf("%w: %w", ErrUploadTooLarge, err)
		}

		return nil, "", fmt.Errorf("%w: %w", ErrPDFRequired, err)
	}
	defer func() {
		if removeErr := r.MultipartForm.RemoveAll(); removeErr != nil {
			h.log.WarnContext(r.Context(), "Failed to remove multipart temp files",
				"error", removeErr)
		}
	}()

	file, header, err := r.FormFile(formFile)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrPDFRequired, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.log.ErrorContext(r.Context(), "Failed to close uploaded file",
				"error", closeErr,
				"filename", header.Filename)
		}
	}()

	if !strings.HasSuffix(header.Filename, pdfSuffix) {
		return nil, header.Filename, fmt.Errorf("%w: filename has no %s suffix", ErrPDFRequired, pdfSuffix)
	}

	data, readErr := io.ReadAll(file)
	if readErr != nil {
		return nil, header.Filename, fmt.Errorf("read upload: %w", readErr)
	}

	return data, header.Filename, nil
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := report.Decode(r.Body)
	if err != nil {
		if errors.Is(err, report.ErrInvalidJSON) {
			h.log.WarnContext(ctx, "Report request is rejected",
				"error", err)
		} else {
			h.log.ErrorContext(ctx, "Failed to decode report request",
				"error", err)
		}
		writeError(w, err)

		return
	}

	pdf, err := report.RenderBytes(summary)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to render report",
			"error", err,
			"attentionCount", len(summary.Attention))
		writeError(w, err)

		return
	}
	h.metrics.IncrementReportsRendered()

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(pdf); err != nil {
		h.log.ErrorContext(ctx, "Failed to write response",
			"error", err,
			"operation", "handleDownload")
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
