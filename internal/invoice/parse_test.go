package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseTable_MissingColumns(t *testing.T) {
	table := &Table{
		Columns: []string{ColumnIssueDate, "Otra", ColumnClient},
		Rows:    [][]string{{"2024-01-01", "x", "Acme"}},
	}

	batch, err := ParseTable(table)

	assert.Nil(t, batch)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{ColumnFinalAmount, ColumnAuxDocument}, schemaErr.Missing)
}

func TestParseTable_EmptyTableIsSchemaError(t *testing.T) {
	_, err := ParseTable(&Table{})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, RequiredColumns, schemaErr.Missing)
}

func TestParseTable_DropsUnparseableRows(t *testing.T) {
	table := &Table{
		Columns: []string{ColumnClient, ColumnAuxDocument, ColumnFinalAmount, ColumnIssueDate, "Extra"},
		Rows: [][]string{
			{"Acme", "D1", "100.50", "2024-01-02", "ignored"},
			{"Acme", "D2", "abc", "2024-01-03"},
			{"Acme", "D3", "10", "not a date"},
			{"Acme", "D4", "", "2024-01-04"},
			{"Acme", "D5", "-5", "2024-01-05"},
			{"Beta", "D6", "1,250.00", "05/01/2024"},
			{"Beta", "D7"},
		},
	}

	batch, err := ParseTable(table)

	require.NoError(t, err)
	assert.Equal(t, 5, batch.Dropped)
	require.Len(t, batch.Records, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), batch.Records[0].IssueDate)
	assert.True(t, batch.Records[0].Amount.Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, "D1", batch.Records[0].AuxDocument)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), batch.Records[1].IssueDate)
	assert.True(t, batch.Records[1].Amount.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, "Beta", batch.Records[1].Client)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-01 17:45:00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-01T23:59:00Z", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"45292", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"45292.75", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"03/04/2024", time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), true},
		{"03-04-2024", time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), true},
		{"04/13/2024", time.Time{}, false},
		{"", time.Time{}, false},
		{"-3", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"100", "100", true},
		{" 100.50 ", "100.5", true},
		{"10.005", "10.005", true},
		{"1,250.00", "1250", true},
		{"1.234,56", "1234.56", true},
		{"1,234,567.8", "1234567.8", true},
		{"1.234.567,8", "1234567.8", true},
		{"1.234.567", "1234567", true},
		{"1,250", "1250", true},
		{"1,5", "1.5", true},
		{"12,3456", "12.3456", true},
		{"0", "0", true},
		{"1,2,3", "", false},
		{"1.2.3", "", false},
		{"1,234.5,6", "", false},
		{"-5", "", false},
		{"-1,5", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	body := "\ufeffFecha Emisión, Importe Final,Doc. Auxiliar,Razón Social\n2024-01-01,100,D1,Acme\n"

	table, err := ReadCSV(strings.NewReader(body))

	require.NoError(t, err)
	assert.Equal(t, RequiredColumns, table.Columns)
	assert.Len(t, table.Rows, 1)
}

func TestReadXLSX_SerialDates(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		ColumnIssueDate, ColumnFinalAmount, ColumnAuxDocument, ColumnClient,
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 250.75, "D1", "Acme",
	}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := ReadXLSX(&buf)
	require.NoError(t, err)
	batch, err := ParseTable(table)
	require.NoError(t, err)

	require.Len(t, batch.Records, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), batch.Records[0].IssueDate)
	assert.True(t, batch.Records[0].Amount.Equal(decimal.RequireFromString("250.75")))
}
