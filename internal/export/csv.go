package export

import (
	"encoding/csv"
	"io"

	"pantrify/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows
// detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

func writeCSV(w io.Writer, items []domain.PantryItem) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for i := range items {
		if err := cw.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
