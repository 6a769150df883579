// Package xlsx encodes and decodes tabular workbooks as .xlsx files.
// It is the only place that touches the spreadsheet library; everything
// above it works with tabular.Workbook values.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/lockbox/internal/tabular"
)

// Encode serializes the workbook into xlsx bytes. Sheet order and column
// order are preserved; row 1 of every sheet is the header.
func Encode(wb *tabular.Workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("renaming first sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
			}
		}

		header := make([]interface{}, len(sheet.Columns))
		for c, col := range sheet.Columns {
			header[c] = col
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return nil, fmt.Errorf("writing header of %s: %w", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cells := make([]interface{}, len(sheet.Columns))
			for c, col := range sheet.Columns {
				cells[c] = row[col]
			}
			ref, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet.Name, ref, &cells); err != nil {
				return nil, fmt.Errorf("writing row %d of %s: %w", r+2, sheet.Name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads an xlsx stream into a workbook. The first row of each sheet is
// taken as the header; short data rows are padded so every header column has
// a value. Cells beyond the header width are dropped.
func Parse(r io.Reader) (*tabular.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	wb := &tabular.Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", name, err)
		}

		sheet := tabular.Sheet{Name: name}
		if len(rows) == 0 {
			wb.Sheets = append(wb.Sheets, sheet)
			continue
		}

		sheet.Columns = rows[0]
		for _, raw := range rows[1:] {
			row := make(map[string]string, len(sheet.Columns))
			for c, col := range sheet.Columns {
				if col == "" {
					continue
				}
				if c < len(raw) {
					row[col] = raw[c]
				} else {
					row[col] = ""
				}
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}
