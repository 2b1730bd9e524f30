package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pantrify/internal/domain"
)

func sampleItems() []domain.PantryItem {
	exp := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	return []domain.PantryItem{
		{
			ID: uuid.New(), Name: "Milk", Qty: 2, ExpirationDate: &exp,
			Source: domain.ItemSourceScan, CreatedAt: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), Name: "Rice, basmati", Qty: 1,
			Source: domain.ItemSourceManual, CreatedAt: time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ExportFormatCSV, sampleItems()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Name", "Quantity", "Expiration Date", "Source", "Added At"}, rows[0])
	assert.Equal(t, []string{"Milk", "2", "2026-11-02", "scan", "2026-10-01T09:30:00Z"}, rows[1])
	assert.Equal(t, "Rice, basmati", rows[2][0])
	assert.Equal(t, "", rows[2][2])
}

func TestWrite_CSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ExportFormatCSV, nil))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ExportFormatXLSX, sampleItems()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Milk", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "2026-11-02", rows[1][2])
	assert.Equal(t, "Rice, basmati", rows[2][0])
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, domain.ExportFormat("pdf"), sampleItems())

	assert.ErrorIs(t, err, domain.ErrInvalidExportFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(domain.ExportFormatCSV))
	assert.Contains(t, ContentType(domain.ExportFormatXLSX), "spreadsheetml")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"my pantry", "my_pantry"},
		{"a@b.com's pantry!!", "a_b_com_s_pantry"},
		{"___", "pantry"},
		{"", "pantry"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "pantry_2026-10-17.csv", BuildFilename("pantry", domain.ExportFormatCSV, now))
	assert.Equal(t, "pantry_2026-10-17.xlsx", BuildFilename("pantry", domain.ExportFormatXLSX, now))
}
