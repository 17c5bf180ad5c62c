// ABOUTME: CSV reading and writing for frames
// ABOUTME: Writes the index column first and reads with header-row defaults

package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyCSV is returned when the input has no header row
var ErrEmptyCSV = errors.New("no columns to parse from file")

// ReadCSV parses comma-separated input, taking the first row as the header.
// Rows shorter than the header are padded with empty cells; longer rows are
// an error.
func ReadCSV(r io.Reader) (*Frame, error) {
	records, err := readRecords(r, -1)
	if err != nil {
		return nil, err
	}

	header := records[0]
	rows := records[1:]
	for i, row := range rows {
		switch {
		case len(row) > len(header):
			return nil, fmt.Errorf("parsing csv: row %d has %d fields, header has %d: %w", i+1, len(row), len(header), ErrRaggedRow)
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return New(header, rows)
}

// ReadIndexedCSV parses input written by WriteCSV, dropping the leading
// index column.
func ReadIndexedCSV(r io.Reader) (*Frame, error) {
	records, err := readRecords(r, 0)
	if err != nil {
		return nil, err
	}
	if len(records[0]) == 0 {
		return nil, ErrEmptyCSV
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, rec[1:])
	}
	return New(records[0][1:], rows)
}

// readRecords reads all records. fieldsPerRecord follows csv.Reader: 0 fixes
// the count from the first record, -1 allows any count.
func readRecords(r io.Reader, fieldsPerRecord int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldsPerRecord
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}

	// Spreadsheet exports often start with a UTF-8 byte order mark
	records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	return records, nil
}

// WriteCSV writes the frame with a leading index column.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, f.columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range f.rows {
		rec := append([]string{strconv.Itoa(i)}, row...)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile overwrites path with the frame's CSV form.
func (f *Frame) WriteCSVFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := f.WriteCSV(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return file.Close()
}
