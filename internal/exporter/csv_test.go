package exporter

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbrlcli/internal/xbrl"
)

func testSheet() *xbrl.FactSheet {
	name := "ACME S.R.L."
	taxID := "01234567890"
	year := 2023
	return &xbrl.FactSheet{
		EntityName:   &name,
		TaxID:        &taxID,
		Year:         &year,
		Revenue:      dec("2000000"),
		NetIncome:    dec("100000"),
		TotalAssets:  dec("2500000"),
		Equity:       dec("500000"),
		LongTermDebt: dec("300000"),
		TotalDebt:    dec("300000"),
		ROE:          dec("20"),
		ROA:          dec("4"),
		DebtToEquity: dec("0.6"),
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, testSheet()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Equal(t, []string{"Voce", "Valore", "Sintesi"}, records[0])

	byLabel := make(map[string][]string, len(records))
	for _, rec := range records[1:] {
		byLabel[rec[0]] = rec[1:]
	}
	assert.Equal(t, "ACME S.R.L.", byLabel["Denominazione"][0])
	assert.Equal(t, "2023", byLabel["Anno"][0])
	assert.Equal(t, "€ 2.000.000,00", byLabel["Ricavi"][0])
	assert.Equal(t, "€ 2,00M", byLabel["Ricavi"][1], "monetary rows carry the abbreviated rendering")
	assert.Equal(t, "€ 100,0K", byLabel["Utile Netto"][1])
	assert.Equal(t, "20.00%", byLabel["ROE"][0])
	assert.Empty(t, byLabel["ROE"][1], "ratio rows have no abbreviated column")
	assert.Equal(t, "0.60", byLabel["Debt/Equity"][0])

	_, hasShortTerm := byLabel["Debiti Finanziari Breve"]
	assert.False(t, hasShortTerm, "nil fields are omitted from the summary")
}

func TestWriteBatchCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, slog.Default())

	results := []Result{
		{Source: "acme.xbrl", Sheet: testSheet()},
		{Source: "empty.xbrl", Sheet: &xbrl.FactSheet{}},
	}
	require.NoError(t, writer.WriteBatchCSV("factsheets.csv", results))

	raw, err := os.ReadFile(filepath.Join(dir, "factsheets.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, utf8BOM), "batch CSV carries a UTF-8 BOM")

	records, err := csv.NewReader(strings.NewReader(string(bytes.TrimPrefix(raw, utf8BOM)))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, batchHeader, records[0])

	acme := records[1]
	assert.Equal(t, "acme.xbrl", acme[0])
	assert.Equal(t, "ACME S.R.L.", acme[1])
	assert.Equal(t, "2023", acme[3])
	assert.Equal(t, "2000000", acme[4], "batch CSV keeps raw values, not display formatting")

	empty := records[2]
	assert.Equal(t, "empty.xbrl", empty[0])
	for _, field := range empty[1:] {
		assert.Empty(t, field, "nil fields are blank in batch output")
	}
}
