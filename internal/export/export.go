// Package export renders a user's pantry as a downloadable CSV or XLSX file.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pantrify/internal/domain"
)

// columns defines the header row shared by every format.
var columns = []string{
	"Name",
	"Quantity",
	"Expiration Date",
	"Source",
	"Added At",
}

// itemToRow converts a pantry item to a row aligned with columns.
func itemToRow(item *domain.PantryItem) []string {
	return []string{
		item.Name,
		strconv.Itoa(item.Qty),
		formatDate(item.ExpirationDate),
		string(item.Source),
		item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// Write renders items to w in the requested format.
func Write(w io.Writer, format domain.ExportFormat, items []domain.PantryItem) error {
	switch format {
	case domain.ExportFormatCSV:
		return writeCSV(w, items)
	case domain.ExportFormatXLSX:
		return writeXLSX(w, items)
	default:
		return domain.ErrInvalidExportFormat
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters unsafe in a Content-Disposition
// filename with underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "pantry"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{format}.
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
