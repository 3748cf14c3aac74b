package exporter

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"xbrlcli/internal/xbrl"
)

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	writer := NewExcelWriter(dir, slog.Default())

	results := []Result{
		{Source: "acme.xbrl", Sheet: testSheet()},
		{Source: "sparse.xbrl", Sheet: &xbrl.FactSheet{}},
	}
	require.NoError(t, writer.WriteWorkbook("factsheets.xlsx", results))

	f, err := excelize.OpenFile(filepath.Join(dir, "factsheets.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(factsSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, batchHeader, rows[0])

	source, err := f.GetCellValue(factsSheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "acme.xbrl", source)

	revenue, err := f.GetCellValue(factsSheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "2000000", revenue)

	sparseRevenue, err := f.GetCellValue(factsSheetName, "E3")
	require.NoError(t, err)
	assert.Empty(t, sparseRevenue, "nil fields leave the cell empty")
}
