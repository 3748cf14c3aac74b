// Command processor extracts fact sheets from every XBRL filing under a
// directory and writes the combined results as CSV, Excel, and per-file
// JSON. Extractions are independent, so files are processed concurrently.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"xbrlcli/internal/config"
	"xbrlcli/internal/exporter"
	"xbrlcli/internal/infrastructure"
	"xbrlcli/internal/services"
)

func main() {
	inDir := flag.String("in", ".", "input directory scanned recursively for .xbrl/.xml files")
	outDir := flag.String("out", "", "output directory (defaults to the configured extraction output dir)")
	workers := flag.Int("workers", 4, "number of concurrent extractions")
	writeJSON := flag.Bool("json", true, "write one JSON fact sheet per filing")
	flag.Parse()

	cfg := config.Default()
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = cfg.Extraction.OutputDir
	}

	if err := run(logger, *inDir, *outDir, *workers, *writeJSON); err != nil {
		logger.Error("batch extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, inDir, outDir string, workers int, writeJSON bool) error {
	files, err := discoverFilings(inDir)
	if err != nil {
		return fmt.Errorf("discover filings: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .xbrl or .xml files found under %s", inDir)
	}
	logger.Info("starting batch extraction",
		slog.Int("files", len(files)),
		slog.Int("workers", workers))

	service, err := services.NewExtractionService(logger, nil)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		results []exporter.Result
		failed  int
	)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			// Each filing gets its own trace ID so its log lines can be
			// followed through the service.
			ctx := infrastructure.EnsureTraceID(ctx)

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			sheet, err := service.Extract(ctx, data, filepath.Base(path))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A single bad filing must not sink the batch.
				infrastructure.LoggerWithContext(ctx).Warn("skipping filing",
					slog.String("file", path),
					slog.String("error", err.Error()))
				failed++
				return nil
			}
			results = append(results, exporter.Result{Source: filepath.Base(path), Sheet: sheet})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("all %d filings failed extraction", failed)
	}

	// Deterministic output order regardless of worker scheduling.
	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })

	csvWriter := exporter.NewCSVWriter(outDir, logger)
	if err := csvWriter.WriteBatchCSV("factsheets.csv", results); err != nil {
		return fmt.Errorf("write batch CSV: %w", err)
	}
	excelWriter := exporter.NewExcelWriter(outDir, logger)
	if err := excelWriter.WriteWorkbook("factsheets.xlsx", results); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if writeJSON {
		if err := writeJSONSheets(outDir, results); err != nil {
			return fmt.Errorf("write JSON sheets: %w", err)
		}
	}

	logger.Info("batch extraction complete",
		slog.Int("extracted", len(results)),
		slog.Int("failed", failed),
		slog.String("output_dir", outDir))
	return nil
}

func discoverFilings(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xbrl", ".xml":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func writeJSONSheets(outDir string, results []exporter.Result) error {
	jsonDir := filepath.Join(outDir, "json")
	if err := os.MkdirAll(jsonDir, 0o755); err != nil {
		return err
	}
	for _, res := range results {
		name := strings.TrimSuffix(res.Source, filepath.Ext(res.Source)) + ".json"
		data, err := json.MarshalIndent(res.Sheet, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(jsonDir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
