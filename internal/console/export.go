package console

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

const sheetName = "Result"

// ExportFilename names a download taken at now, e.g.
// query-result-2026-10-15T09:30:00.json.
func ExportFilename(now time.Time, format string) string {
	return fmt.Sprintf("query-result-%s.%s", now.UTC().Format("2006-01-02T15:04:05"), format)
}

// WriteJSON writes the result rows as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Rows)
}

// WriteXLSX writes the result as a single-sheet workbook: a header row with
// the column names followed by one row per record.
func WriteXLSX(w io.Writer, res Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for r, rec := range res.Rows {
		row := make([]any, len(res.Columns))
		for i, c := range res.Columns {
			row[i] = cellValue(rec[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// cellValue keeps scalars as they are and renders anything else as JSON.
func cellValue(v any) any {
	switch v := v.(type) {
	case nil:
		return ""
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, time.Time:
		return v
	case []byte:
		return string(v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
