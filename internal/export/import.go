package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"pantrify/internal/domain"
)

// ReadSuggestionsXLSX reads pantry suggestions from the first sheet of a
// workbook. Columns are Name, Image URL, Description; a header row whose first
// cell is "name" is skipped, as are rows with an empty name.
func ReadSuggestionsXLSX(r io.Reader) ([]domain.PantrySuggestion, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	out := make([]domain.PantrySuggestion, 0, len(rows))
	for i, row := range rows {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		if i == 0 && strings.EqualFold(name, "name") {
			continue
		}
		out = append(out, domain.PantrySuggestion{
			Name:        name,
			ImageURL:    cell(row, 1),
			Description: cell(row, 2),
		})
	}
	return out, nil
}

// GetRows trims trailing empty cells, so short rows are common.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
