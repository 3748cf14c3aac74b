package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"xbrlcli/internal/infrastructure"
)

const factsSheetName = "Facts"

// ExcelWriter writes fact-sheet workbooks under a base output directory.
type ExcelWriter struct {
	outDir string
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at outDir.
func NewExcelWriter(outDir string, logger *slog.Logger) *ExcelWriter {
	return &ExcelWriter{outDir: outDir, logger: infrastructure.WithComponent(logger, "excel_writer")}
}

// WriteWorkbook writes one workbook with a row per extracted filing.
// Numeric cells hold plain numbers so spreadsheet formulas keep working;
// currency formatting is applied as a cell style, not as text.
func (w *ExcelWriter) WriteWorkbook(filename string, results []Result) error {
	fullPath := filepath.Join(w.outDir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(factsSheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range batchHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(factsSheetName, cell, title); err != nil {
			return err
		}
	}

	for row, res := range results {
		values := []interface{}{
			res.Source,
			cellString(res.Sheet.EntityName),
			cellString(res.Sheet.TaxID),
			cellYear(res.Sheet.Year),
			cellNumber(res.Sheet.Revenue),
			cellNumber(res.Sheet.NetIncome),
			cellNumber(res.Sheet.TotalAssets),
			cellNumber(res.Sheet.Equity),
			cellNumber(res.Sheet.ShortTermDebt),
			cellNumber(res.Sheet.LongTermDebt),
			cellNumber(res.Sheet.TotalDebt),
			cellNumber(res.Sheet.ROE),
			cellNumber(res.Sheet.ROA),
			cellNumber(res.Sheet.DebtToEquity),
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(factsSheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("Excel workbook written",
		slog.String("path", fullPath),
		slog.Int("filings", len(results)))
	return nil
}

func cellString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func cellYear(y *int) interface{} {
	if y == nil {
		return nil
	}
	return *y
}

func cellNumber(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return f
}
