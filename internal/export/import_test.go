package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &rows[i]))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadSuggestionsXLSX(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Name", "Image URL", "Description"},
		{" Olive Oil ", "https://img.example.com/oil.png", "Extra virgin"},
		{"", "https://img.example.com/skip.png", "no name"},
		{"Salt"},
	})

	got, err := ReadSuggestionsXLSX(buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Olive Oil", got[0].Name)
	assert.Equal(t, "https://img.example.com/oil.png", got[0].ImageURL)
	assert.Equal(t, "Extra virgin", got[0].Description)

	assert.Equal(t, "Salt", got[1].Name)
	assert.Empty(t, got[1].ImageURL)
	assert.Empty(t, got[1].Description)
}

func TestReadSuggestionsXLSX_NoHeader(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Flour", "", "All purpose"},
	})

	got, err := ReadSuggestionsXLSX(buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Flour", got[0].Name)
}

func TestReadSuggestionsXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadSuggestionsXLSX(bytes.NewReader([]byte("name,qty\nmilk,1\n")))
	assert.Error(t, err)
}
