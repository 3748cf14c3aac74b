package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"xbrlcli/internal/infrastructure"
	"xbrlcli/internal/xbrl"
)

// ErrorHandler converts errors into RFC 7807 responses and logs them with
// the request's trace context.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: infrastructure.WithComponent(logger, "error_handler"),
	}
}

// HandleError renders err as a problem-details response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	if traceID != "" {
		problem.WithExtension("trace_id", traceID)
	}
	render.Render(w, r, problem)
}

// ErrorToProblem maps domain and transport errors onto problem details.
// Extraction failures keep their two-level taxonomy: a document that is not
// XML is the client's fault (400), a well-formed document with no anchorable
// reporting period is unprocessable (422).
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytes):
		return NewProblemDetails(
			http.StatusRequestEntityTooLarge,
			TypePayloadTooLarge,
			"Payload Too Large",
			fmt.Sprintf("The uploaded file exceeds the %d byte limit", maxBytes.Limit),
			r.URL.Path,
		)

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeInternal,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)

	case errors.Is(err, xbrl.ErrMalformedDocument):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeMalformedDocument,
			"Malformed Document",
			"The uploaded file could not be parsed as XML",
			r.URL.Path,
		)

	case errors.Is(err, xbrl.ErrNoValidContext):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeNoValidContext,
			"No Valid Reporting Context",
			"The document declares no temporal context with a valid period end date, so no reporting year can be anchored",
			r.URL.Path,
		)
	}

	var problem *ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing the request",
		r.URL.Path,
	)
}
