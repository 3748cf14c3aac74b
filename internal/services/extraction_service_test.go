package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"xbrlcli/internal/xbrl"
)

const sampleFiling = `<xbrl>
  <context id="c_2023"><period><endDate>2023-12-31</endDate></period></context>
  <UtilePerditaEsercizio contextRef="c_2023">50.000</UtilePerditaEsercizio>
  <TotalePatrimonioNetto contextRef="c_2023">250.000</TotalePatrimonioNetto>
</xbrl>`

func TestExtract(t *testing.T) {
	service, err := NewExtractionService(slog.Default(), nil)
	require.NoError(t, err)

	sheet, err := service.Extract(context.Background(), []byte(sampleFiling), "sample.xbrl")
	require.NoError(t, err)
	require.NotNil(t, sheet.ROE)
	assert.Equal(t, "20", sheet.ROE.String())
}

func TestExtractPropagatesTypedErrors(t *testing.T) {
	service, err := NewExtractionService(slog.Default(), nil)
	require.NoError(t, err)

	_, err = service.Extract(context.Background(), []byte("garbage"), "broken.xbrl")
	assert.ErrorIs(t, err, xbrl.ErrMalformedDocument)

	_, err = service.Extract(context.Background(), []byte("<xbrl/>"), "empty.xbrl")
	assert.ErrorIs(t, err, xbrl.ErrNoValidContext)
}

func TestExtractWithMeter(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	service, err := NewExtractionService(slog.Default(), provider.Meter("test"))
	require.NoError(t, err)

	sheet, err := service.Extract(context.Background(), []byte(sampleFiling), "sample.xbrl")
	require.NoError(t, err)
	assert.NotNil(t, sheet)
}
