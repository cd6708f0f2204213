package forecast

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/forecast-server/internal/series"
)

// Sheet and headers of the weekly forecast export.
const (
	WeeklySheet        = "Forecast Semanal"
	WeeklyColumnDate   = "Fecha"
	WeeklyColumnMean   = "Predicción"
	WeeklyExportName   = "forecast_sarima_semanal.xlsx"
	WeeklyExportFormat = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WeeklyRow is one week of summed daily forecasts.
type WeeklyRow struct {
	WeekEnding time.Time
	Mean       float64
	Lower      float64
	Upper      float64
}

// WeeklyTable sums daily predictions into weeks ending Sunday.
func WeeklyTable(preds []Prediction) []WeeklyRow {
	pick := func(f func(Prediction) float64) []series.Point {
		points := make([]series.Point, len(preds))
		for i, p := range preds {
			points[i] = series.Point{Date: p.Date, Value: f(p)}
		}
		return series.Weekly(points)
	}
	means := pick(func(p Prediction) float64 { return p.Mean })
	lowers := pick(func(p Prediction) float64 { return p.Lower })
	uppers := pick(func(p Prediction) float64 { return p.Upper })

	rows := make([]WeeklyRow, len(means))
	for i := range means {
		rows[i] = WeeklyRow{
			WeekEnding: means[i].Date,
			Mean:       means[i].Value,
			Lower:      lowers[i].Value,
			Upper:      uppers[i].Value,
		}
	}
	return rows
}

// WriteWeeklyXLSX writes the week and point forecast columns as a workbook.
func WriteWeeklyXLSX(w io.Writer, rows []WeeklyRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), WeeklySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(WeeklySheet, "A1", &[]interface{}{WeeklyColumnDate, WeeklyColumnMean}); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.WeekEnding.Format(time.DateOnly), row.Mean}
		if err := f.SetSheetRow(WeeklySheet, cell, &values); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
