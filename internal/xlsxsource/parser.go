// =============================================================================
// dialect - XLSX Source Parser
// =============================================================================
//
// This module ingests XLSX workbooks into the same Dataset shape the row
// parser produces for delimited text. Spreadsheets have explicit cell
// boundaries, so delimiter sniffing is skipped; validation and numeric
// coercion downstream are identical to the text pipeline.
//
// Only the first sheet of the workbook is read.
//
// =============================================================================

package xlsxsource

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jordanmiceli/dialect/internal/dataset"
	apperr "github.com/jordanmiceli/dialect/internal/errors"
)

// Parse reads the first sheet of the workbook at path into a Dataset.
//
// PARAMETERS:
//   - path: the path to the .xlsx file.
//
// RETURNS:
//   - A Dataset whose rows hold raw string cells, blank rows dropped.
//   - FILE_NOT_FOUND if the workbook cannot be opened.
//   - NOT_ENOUGH_ROWS if the sheet has no header plus data row.
func Parse(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.FileNotFound(path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, apperr.NotEnoughRows(path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if len(rows) < 2 {
		return nil, apperr.NotEnoughRows(path)
	}

	columns := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = strings.TrimSpace(name)
	}

	var data []dataset.Row
	for _, record := range rows[1:] {
		if isRowEmpty(record) {
			continue
		}

		row := make(dataset.Row, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				row[name] = ""
			}
		}
		data = append(data, row)
	}

	return &dataset.Dataset{
		Columns: columns,
		Rows:    data,
	}, nil
}

// isRowEmpty checks if a sheet row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
