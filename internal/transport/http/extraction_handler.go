// Package http contains the chi HTTP handlers.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "xbrlcli/internal/errors"
	"xbrlcli/internal/exporter"
	"xbrlcli/internal/services"
	"xbrlcli/internal/xbrl"
)

// uploadField is the multipart form field carrying the filing.
const uploadField = "file"

// ExtractionHandler serves the upload-and-extract endpoint.
type ExtractionHandler struct {
	service        *services.ExtractionService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// extractionResponse is the JSON envelope around a fact sheet. Significant
// mirrors the on-screen warning of the original tool: false when none of the
// four primary monetary facts resolved.
type extractionResponse struct {
	File        string          `json:"file"`
	Significant bool            `json:"significant"`
	Facts       *xbrl.FactSheet `json:"facts"`
}

// NewExtractionHandler creates the handler.
func NewExtractionHandler(service *services.ExtractionService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ExtractionHandler {
	return &ExtractionHandler{
		service:        service,
		logger:         logger.With(slog.String("handler", "extraction")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the extraction routes.
func (h *ExtractionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Extract)
	return r
}

// Extract handles POST /api/extract. The uploaded part is read fully into an
// isolated buffer before parsing, so no reader state can leak between
// uploads; the pipeline only ever sees materialized bytes.
// With ?format=csv the response is the two-column summary CSV instead of JSON.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Invalid Upload",
			"Expected a multipart form with a file field",
			r.URL.Path,
		))
		return
	}

	part, header, err := r.FormFile(uploadField)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadField, "Missing uploaded file"))
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Unreadable Upload",
			"The uploaded file could not be read",
			r.URL.Path,
		))
		return
	}

	sheet, err := h.service.Extract(r.Context(), data, header.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="factsheet.csv"`)
		if err := exporter.WriteSummaryCSV(w, sheet); err != nil {
			h.logger.ErrorContext(r.Context(), "summary CSV write failed",
				slog.String("error", err.Error()))
		}
		return
	}

	render.JSON(w, r, extractionResponse{
		File:        header.Filename,
		Significant: sheet.HasCoreFinancials(),
		Facts:       sheet,
	})
}
