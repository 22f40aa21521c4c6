// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX renders the same table as CSV into a single-sheet workbook.
// Integers stay numeric cells; everything else is written as text.
func XLSX(sheet string, fields []string, rows []Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(fields))
	for i, field := range fields {
		header[i] = field
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return nil, err
		}

		cells := make([]any, len(fields))
		for i, field := range fields {
			switch v := row[field].(type) {
			case int, int64:
				cells[i] = v
			default:
				cells[i] = Cell(v)
			}
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", idx+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
