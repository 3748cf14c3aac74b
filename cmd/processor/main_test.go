package main

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filingTemplate = `<xbrl>
  <context id="c_2023"><period><endDate>2023-12-31</endDate></period></context>
  <DatiAnagraficiDenominazione>NAME</DatiAnagraficiDenominazione>
  <UtilePerditaEsercizio contextRef="c_2023">100.000</UtilePerditaEsercizio>
  <TotalePatrimonioNetto contextRef="c_2023">500.000</TotalePatrimonioNetto>
</xbrl>`

func writeFiling(t *testing.T, dir, name, entity string) {
	t.Helper()
	content := strings.Replace(filingTemplate, "NAME", entity, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDiscoverFilings(t *testing.T) {
	dir := t.TempDir()
	writeFiling(t, dir, "a.xbrl", "A")
	writeFiling(t, dir, "b.XML", "B")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFiling(t, sub, "c.xbrl", "C")

	files, err := discoverFilings(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3, "xbrl and xml files are discovered recursively, other extensions skipped")
}

func TestRunWritesAllOutputs(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFiling(t, inDir, "beta.xbrl", "BETA S.R.L.")
	writeFiling(t, inDir, "alfa.xbrl", "ALFA S.P.A.")
	// One broken filing must not sink the batch.
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "broken.xbrl"), []byte("not xml"), 0o644))

	require.NoError(t, run(slog.Default(), inDir, outDir, 2, true))

	raw, err := os.ReadFile(filepath.Join(outDir, "factsheets.csv"))
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xef\xbb\xbf"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus the two good filings")
	assert.Equal(t, "alfa.xbrl", records[1][0], "results are sorted by source name")
	assert.Equal(t, "beta.xbrl", records[2][0])

	assert.FileExists(t, filepath.Join(outDir, "factsheets.xlsx"))
	assert.FileExists(t, filepath.Join(outDir, "json", "alfa.json"))
	assert.FileExists(t, filepath.Join(outDir, "json", "beta.json"))
}

func TestRunFailsWhenEverythingFails(t *testing.T) {
	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "broken.xbrl"), []byte("not xml"), 0o644))

	err := run(slog.Default(), inDir, t.TempDir(), 2, false)
	assert.Error(t, err)
}

func TestRunFailsOnEmptyDirectory(t *testing.T) {
	err := run(slog.Default(), t.TempDir(), t.TempDir(), 2, false)
	assert.Error(t, err)
}
