// Package tabular decodes spreadsheets into header-keyed rows and encodes
// bank exports. It understands xlsx (first sheet) and csv.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/daydrill/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUnsupportedFormat is returned for containers the codec cannot read or write.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Codec converts between spreadsheet bytes and rows. The zero value is ready to use.
type Codec struct {
	// NoBOM disables the UTF-8 byte order mark on csv output.
	NoBOM bool
}

// New returns a Codec that writes csv with a BOM so spreadsheet apps detect UTF-8.
func New() *Codec {
	return &Codec{}
}

// Decode reads the first sheet of data. The container is chosen from the file
// extension of name, falling back to content sniffing. Keys of the returned
// rows are the trimmed, lower-cased header cells.
func (c *Codec) Decode(name string, data []byte) ([]domain.Row, error) {
	var (
		grid [][]string
		err  error
	)
	switch detect(name, data) {
	case domain.FormatXLSX:
		grid, err = readXLSX(data)
	case domain.FormatCSV:
		grid, err = readCSV(data)
	default:
		return nil, fmt.Errorf("decode %s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return toRows(grid), nil
}

// Encode writes header and records in the given format.
func (c *Codec) Encode(format domain.ExportFormat, header []string, records [][]string) ([]byte, error) {
	switch format {
	case domain.FormatXLSX:
		return writeXLSX(header, records)
	case domain.FormatCSV:
		return c.writeCSV(header, records)
	}
	return nil, fmt.Errorf("encode %q: %w", format, ErrUnsupportedFormat)
}

func detect(name string, data []byte) domain.ExportFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return domain.FormatXLSX
	case ".csv", ".txt":
		return domain.FormatCSV
	case ".xls":
		// Legacy BIFF workbooks are not readable by excelize.
		return ""
	}
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return domain.FormatXLSX
	}
	return domain.FormatCSV
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true

	var grid [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		grid = append(grid, record)
	}
	return grid, nil
}

// toRows keys every data row by the header row. Blank header cells are
// ignored, a repeated header keeps its first column, and rows whose cells are
// all blank are skipped.
func toRows(grid [][]string) []domain.Row {
	rows := make([]domain.Row, 0)
	if len(grid) == 0 {
		return rows
	}

	header := make([]string, len(grid[0]))
	seen := make(map[string]bool, len(grid[0]))
	for i, h := range grid[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		header[i] = key
	}

	for _, record := range grid[1:] {
		row := make(domain.Row, len(header))
		blank := true
		for i, key := range header {
			if key == "" || i >= len(record) {
				continue
			}
			row[key] = record[i]
			if strings.TrimSpace(record[i]) != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows
}

func writeXLSX(header []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, rec := range append([][]string{header}, records...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(rec))
		for j, v := range rec {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Codec) writeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	if !c.NoBOM {
		buf.Write(utf8BOM)
	}
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
