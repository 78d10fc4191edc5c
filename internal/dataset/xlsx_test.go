package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}
	path := filepath.Join(t.TempDir(), "events.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoadXLSX_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "events", [][]string{
		{"user_id", "date", "brand", "goods_name", "content"},
		{"u1", "2024-01-02", "roundlab", "dokdo toner", "gentle"},
		{"u2", "2024-01-03", "torriden", "divein serum", ""},
	})

	table, err := LoadXLSX(path, "")
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "gentle", table.Events()[0].Content)
}

func TestLoadXLSX_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "purchases", [][]string{
		{"user_id", "date", "brand", "goods_name"},
		{"u1", "2024-01-02", "roundlab", "dokdo toner"},
	})

	_, err := LoadXLSX(path, "missing")
	assert.Error(t, err)

	table, err := LoadXLSX(path, "purchases")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadXLSX_MissingFile(t *testing.T) {
	_, err := LoadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}
