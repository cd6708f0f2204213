package invoice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a raw tabular batch: a header row and string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadXLSX reads the first sheet of a workbook. Cells are returned unformatted,
// so date cells arrive as Excel serial numbers.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows), nil
}

// ReadCSV reads a comma separated batch with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	columns := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
	}
	return &Table{Columns: columns, Rows: rows[1:]}
}

// columnIndex maps each required column to its position, reporting the
// missing ones in canonical order.
func (t *Table) columnIndex() (map[string]int, error) {
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := index[c]; !ok {
			index[c] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return index, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
