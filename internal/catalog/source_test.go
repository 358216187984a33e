package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSource_TrimsHeadersAndKeepsOrder(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{" Model ", "Code", "Weight (kg)"},
		{"7", "B1", 0.5},
		{"9", "A1", 1.2},
	})

	table, err := XLSXSource{File: path}.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Model", "Code", "Weight (kg)"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "7", table.Rows[0][ColumnModel])
	assert.Equal(t, "A1", table.Rows[1][ColumnCode])
}

func TestXLSXSource_ShortRowsLeaveCellsAbsent(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Model", "Code", "Weight (kg)"},
		{"7"},
	})

	table, err := XLSXSource{File: path}.Load()
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	_, ok := table.Rows[0][ColumnCode]
	assert.False(t, ok)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	data := "Model,Code,Weight (kg)\n7,B1,0.5\n9,A1,1.2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	table, err := CSVSource{File: path}.Load()
	require.NoError(t, err)

	assert.True(t, table.HasColumn(ColumnModel))
	assert.True(t, table.HasColumn(ColumnWeight))
	assert.False(t, table.HasColumn(ColumnDepth))
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "B1", table.Rows[0][ColumnCode])
	assert.Equal(t, "1.2", table.Rows[1][ColumnWeight])
}

func TestCSVSource_PaddedHeadersDecodeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	data := " Model ,Code , Weight (kg)\n7,B1,0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	table, err := CSVSource{File: path}.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Model", "Code", "Weight (kg)"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "7", table.Rows[0][ColumnModel])
	assert.Equal(t, "B1", table.Rows[0][ColumnCode])
	assert.Equal(t, "0.5", table.Rows[0][ColumnWeight])
}
