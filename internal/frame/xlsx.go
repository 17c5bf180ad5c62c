// ABOUTME: XLSX export for frames using excelize
// ABOUTME: Numeric cells are stored as numbers, everything else as text

package frame

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// WriteXLSX writes the frame as a single-sheet workbook, index column first.
func (f *Frame) WriteXLSX(w io.Writer) error {
	book := excelize.NewFile()
	defer book.Close()

	header := append([]string{""}, f.columns...)
	for c, name := range header {
		if err := setCell(book, c+1, 1, name); err != nil {
			return err
		}
	}

	for r, row := range f.rows {
		if err := setCell(book, 1, r+2, r); err != nil {
			return err
		}
		for c, cell := range row {
			var value any = cell
			if n, err := strconv.ParseFloat(cell, 64); err == nil {
				value = n
			}
			if err := setCell(book, c+2, r+2, value); err != nil {
				return err
			}
		}
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setCell(book *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name for %d,%d: %w", col, row, err)
	}
	if err := book.SetCellValue(xlsxSheet, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
