package invoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Batch is the validated content of a Table.
type Batch struct {
	Records []Record
	// Dropped counts rows discarded for an unusable date or amount.
	Dropped int
}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"2006.01.02",
}

// Excel serials above this are past year 9999.
const maxExcelSerial = 2958465

// ParseTable validates a Table. Missing columns fail the whole batch; a row
// whose date or amount cannot be parsed is dropped.
func ParseTable(t *Table) (*Batch, error) {
	index, err := t.columnIndex()
	if err != nil {
		return nil, err
	}

	batch := &Batch{Records: make([]Record, 0, len(t.Rows))}
	for _, row := range t.Rows {
		issueDate, ok := ParseDate(cell(row, index[ColumnIssueDate]))
		if !ok {
			batch.Dropped++
			continue
		}
		amount, ok := ParseAmount(cell(row, index[ColumnFinalAmount]))
		if !ok {
			batch.Dropped++
			continue
		}
		batch.Records = append(batch.Records, Record{
			IssueDate:   issueDate,
			Amount:      amount,
			AuxDocument: cell(row, index[ColumnAuxDocument]),
			Client:      cell(row, index[ColumnClient]),
		})
	}
	return batch, nil
}

// ParseDate reads a calendar day from text or an Excel serial number.
// Time of day is discarded.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 || serial > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return Day(t), true
}

// ParseAmount reads a non-negative amount. When both "," and "." appear the
// last one is the decimal mark, so "1,234.56" and "1.234,56" agree. A lone
// separator groups thousands only when every group after it has three
// digits: "1,250" is 1250 while "1,5" is 1.5. Anything else is rejected.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = normalizeAmount(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, false
	}
	return amount, true
}

func normalizeAmount(s string) string {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		return ungroup(s, ",")
	case strings.Count(s, ".") > 1:
		return ungroup(s, ".")
	}
	return s
}

// ungroup drops sep when it groups thousands. A single sep otherwise becomes
// the decimal point and repeated ones are left for the parser to reject.
func ungroup(s, sep string) string {
	groups := strings.Split(s, sep)
	grouped := len(groups[0]) > 0 && len(strings.TrimLeft(groups[0], "+-")) <= 3
	for _, g := range groups[1:] {
		grouped = grouped && len(g) == 3
	}
	switch {
	case grouped:
		return strings.Join(groups, "")
	case len(groups) == 2:
		return groups[0] + "." + groups[1]
	}
	return s
}
