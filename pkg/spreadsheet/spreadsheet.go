// Package spreadsheet reads and writes single-sheet tables as xlsx workbooks or CSV text.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Ramsey-B/collably/pkg/apierrors"
)

// Format is a spreadsheet file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DefaultSheet names the sheet of a table written without one
const DefaultSheet = "Sheet1"

// Table is a header row followed by data rows
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// Records returns the rows keyed by header. Missing trailing cells read as "".
func (t Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Headers))
		for i, header := range t.Headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = strings.TrimSpace(row[i])
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// FormatFromName picks the format from a file name's extension
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "xlsx", "xls":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", apierrors.Newf(apierrors.KindValidation, "unsupported spreadsheet file %q (use .xlsx or .csv)", name)
	}
}

// ParseFormat validates a format name given on the command line
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(value)) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", apierrors.Newf(apierrors.KindValidation, "unsupported format %q (use xlsx or csv)", value)
	}
}

// Write serializes table to w
func Write(w io.Writer, format Format, table Table) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, table)
	case FormatCSV:
		return writeCSV(w, table)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Read parses the first sheet of r. The first non-blank row is the header row.
func Read(r io.Reader, format Format) (Table, error) {
	var (
		rows  [][]string
		sheet string
		err   error
	)
	switch format {
	case FormatXLSX:
		sheet, rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return Table{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return Table{}, apierrors.Wrap(apierrors.KindParse, err, fmt.Sprintf("failed to parse %s file: %v", format, err))
	}

	rows = withoutBlankRows(rows)
	if len(rows) == 0 {
		return Table{}, apierrors.New(apierrors.KindParse, "spreadsheet has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF"))
	}

	return Table{Sheet: sheet, Headers: headers, Rows: rows[1:]}, nil
}

func writeXLSX(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	for i, row := range append([][]string{table.Headers}, table.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, value := range row {
			values[j] = value
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func readXLSX(r io.Reader) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", nil, err
	}
	return sheets[0], rows, nil
}

func writeCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func withoutBlankRows(rows [][]string) [][]string {
	result := make([][]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				result = append(result, row)
				break
			}
		}
	}
	return result
}
