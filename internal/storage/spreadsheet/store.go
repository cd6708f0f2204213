// Package spreadsheet stores the invoice history as an xlsx workbook.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/forecast-server/internal/invoice"
)

// SheetName is the sheet written by Save. Load reads the first sheet.
const SheetName = "Ventas"

// Store is a workbook on disk. Save writes a temporary file next to the
// target and renames it into place, so readers never see a partial file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the workbook. A missing file is an empty history.
func (s *Store) Load(ctx context.Context) ([]invoice.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &invoice.ReadError{Source: s.path, Err: err}
	}
	defer file.Close()

	table, err := invoice.ReadXLSX(file)
	if err != nil {
		return nil, &invoice.ReadError{Source: s.path, Err: err}
	}
	batch, err := invoice.ParseTable(table)
	if err != nil {
		return nil, &invoice.ReadError{Source: s.path, Err: err}
	}
	if batch.Dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"path":    s.path,
			"dropped": batch.Dropped,
		}).Warn("spreadsheet.Store.Load dropped unparseable rows")
	}
	return batch.Records, nil
}

// Save overwrites the workbook with records.
func (s *Store) Save(ctx context.Context, records []invoice.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := []interface{}{
		invoice.ColumnIssueDate, invoice.ColumnFinalAmount, invoice.ColumnAuxDocument, invoice.ColumnClient,
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.IssueDate.Format(time.DateOnly), r.Amount.InexactFloat64(), r.AuxDocument, r.Client,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	return s.writeAtomic(f)
}

func (s *Store) writeAtomic(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
