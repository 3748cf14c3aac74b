// Package services hosts the application services that sit between the
// transport layer and the extraction core.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"xbrlcli/internal/infrastructure"
	"xbrlcli/internal/xbrl"
)

// ExtractionService runs the extraction pipeline and records observability
// signals around it. The pipeline itself is stateless; the service carries
// only the logger and metric instruments.
type ExtractionService struct {
	logger      *slog.Logger
	extractions metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewExtractionService creates the service and its metric instruments.
// A nil meter disables metrics, which keeps tests and the batch CLI light.
func NewExtractionService(logger *slog.Logger, meter metric.Meter) (*ExtractionService, error) {
	s := &ExtractionService{
		logger: infrastructure.WithComponent(logger, "extraction_service"),
	}

	if meter != nil {
		var err error
		s.extractions, err = meter.Int64Counter("xbrl_extractions_total",
			metric.WithDescription("Number of extraction attempts by outcome"))
		if err != nil {
			return nil, fmt.Errorf("create extraction counter: %w", err)
		}
		s.duration, err = meter.Float64Histogram("xbrl_extraction_duration_seconds",
			metric.WithDescription("Extraction latency in seconds"))
		if err != nil {
			return nil, fmt.Errorf("create duration histogram: %w", err)
		}
	}

	return s, nil
}

// Extract runs one extraction over a fully materialized buffer. The source
// label only feeds logs and metrics; it never influences the result.
func (s *ExtractionService) Extract(ctx context.Context, data []byte, source string) (*xbrl.FactSheet, error) {
	start := time.Now()

	s.logger.InfoContext(ctx, "extraction started",
		slog.String("source", source),
		slog.Int("bytes", len(data)))

	sheet, err := xbrl.Extract(data)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.record(ctx, outcome, elapsed)

	if err != nil {
		s.logger.WarnContext(ctx, "extraction failed",
			slog.String("source", source),
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		return nil, err
	}

	if !sheet.HasCoreFinancials() {
		s.logger.WarnContext(ctx, "no significant financial data extracted",
			slog.String("source", source))
	}

	s.logger.InfoContext(ctx, "extraction completed",
		slog.String("source", source),
		slog.Bool("significant", sheet.HasCoreFinancials()),
		slog.Duration("duration", elapsed))

	return sheet, nil
}

func (s *ExtractionService) record(ctx context.Context, outcome string, elapsed time.Duration) {
	if s.extractions == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.extractions.Add(ctx, 1, attrs)
	s.duration.Record(ctx, elapsed.Seconds(), attrs)
}
