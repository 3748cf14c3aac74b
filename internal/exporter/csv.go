package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"xbrlcli/internal/infrastructure"
	"xbrlcli/internal/xbrl"
)

// Result pairs one extracted fact sheet with the source it came from.
type Result struct {
	Source string
	Sheet  *xbrl.FactSheet
}

// utf8BOM makes Excel open the CSV with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// batchHeader is the wide one-row-per-filing layout written by WriteBatchCSV.
var batchHeader = []string{
	"source", "entity_name", "tax_id", "year",
	"revenue", "net_income", "total_assets", "equity",
	"short_term_debt", "long_term_debt", "total_debt",
	"roe_percent", "roa_percent", "debt_to_equity",
}

// WriteSummaryCSV writes the item/value summary of one fact sheet, with
// display formatting. Monetary rows carry a third magnitude-abbreviated
// column ("€ 1,23M") for at-a-glance reading. Missing fields are skipped,
// matching the on-screen summary where only extracted data appears.
func WriteSummaryCSV(w io.Writer, sheet *xbrl.FactSheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Voce", "Valore", "Sintesi"}); err != nil {
		return err
	}

	rows := [][3]string{}
	if sheet.EntityName != nil {
		rows = append(rows, [3]string{"Denominazione", *sheet.EntityName})
	}
	if sheet.TaxID != nil {
		rows = append(rows, [3]string{"Codice Fiscale", *sheet.TaxID})
	}
	if sheet.Year != nil {
		rows = append(rows, [3]string{"Anno", fmt.Sprintf("%d", *sheet.Year)})
	}
	monetary := []struct {
		label string
		value *decimal.Decimal
	}{
		{"Ricavi", sheet.Revenue},
		{"Utile Netto", sheet.NetIncome},
		{"Totale Attivo", sheet.TotalAssets},
		{"Patrimonio Netto", sheet.Equity},
		{"Debiti Finanziari Breve", sheet.ShortTermDebt},
		{"Debiti Finanziari Medio Lungo", sheet.LongTermDebt},
		{"Debiti Finanziari Totale", sheet.TotalDebt},
	}
	for _, m := range monetary {
		if m.value != nil {
			rows = append(rows, [3]string{m.label, FormatCurrency(m.value), FormatCurrencyAbbrev(m.value)})
		}
	}
	if sheet.ROE != nil {
		rows = append(rows, [3]string{"ROE", FormatPercent(sheet.ROE)})
	}
	if sheet.ROA != nil {
		rows = append(rows, [3]string{"ROA", FormatPercent(sheet.ROA)})
	}
	if sheet.DebtToEquity != nil {
		rows = append(rows, [3]string{"Debt/Equity", FormatRatio(sheet.DebtToEquity)})
	}

	for _, row := range rows {
		if err := cw.Write(row[:]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVWriter writes fact-sheet CSV files under a base output directory.
type CSVWriter struct {
	outDir string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at outDir.
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{outDir: outDir, logger: infrastructure.WithComponent(logger, "csv_writer")}
}

// WriteBatchCSV writes one wide row per extracted filing with raw (unformatted)
// numeric values, suitable for downstream tools.
func (w *CSVWriter) WriteBatchCSV(filename string, results []Result) error {
	fullPath := filepath.Join(w.outDir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(batchHeader); err != nil {
		return err
	}
	for _, res := range results {
		if err := cw.Write(batchRecord(res)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	w.logger.Info("batch CSV written",
		slog.String("path", fullPath),
		slog.Int("filings", len(results)))
	return nil
}

func batchRecord(res Result) []string {
	s := res.Sheet
	return []string{
		res.Source,
		stringOrEmpty(s.EntityName),
		stringOrEmpty(s.TaxID),
		yearOrEmpty(s.Year),
		decimalOrEmpty(s.Revenue),
		decimalOrEmpty(s.NetIncome),
		decimalOrEmpty(s.TotalAssets),
		decimalOrEmpty(s.Equity),
		decimalOrEmpty(s.ShortTermDebt),
		decimalOrEmpty(s.LongTermDebt),
		decimalOrEmpty(s.TotalDebt),
		decimalOrEmpty(s.ROE),
		decimalOrEmpty(s.ROA),
		decimalOrEmpty(s.DebtToEquity),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yearOrEmpty(y *int) string {
	if y == nil {
		return ""
	}
	return fmt.Sprintf("%d", *y)
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
