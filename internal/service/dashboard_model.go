package service

import (
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/series"
)

// ViewOptions override Settings for one request.
type ViewOptions struct {
	TestMonths omit.Val[int]
}

// Session is one pass over the history: records, daily series and split.
type Session struct {
	Records []invoice.Record
	Daily   series.Daily
	Split   *series.Split
}

// HistorySummary describes the stored history.
type HistorySummary struct {
	Rows  int
	First time.Time
	Last  time.Time
}

// ForecastView is the test window forecast and its weekly evaluation.
// Diagnostics is nil when the residuals carry no variance.
type ForecastView struct {
	Session     *Session
	Predictions []forecast.Prediction
	Evaluation  forecast.Evaluation
	Diagnostics *forecast.Diagnostics
}

// WeeklyForecastView is the forecast up to a chosen date, summed by week.
type WeeklyForecastView struct {
	From time.Time
	To   time.Time
	Rows []forecast.WeeklyRow
}

// CustomerView is the client breakdown of the history.
type CustomerView struct {
	Summary invoice.CustomerSummary
	Top     []invoice.ClientTotal
	Client  string
	History []invoice.Record
}

// SeasonalityView holds weekday totals over the last month and year.
type SeasonalityView struct {
	LastDate  time.Time
	LastMonth []series.WeekdayTotal
	LastYear  []series.WeekdayTotal
}

// DateOutOfRangeError reports a weekly forecast date outside the horizon.
type DateOutOfRangeError struct {
	Date time.Time
	Min  time.Time
	Max  time.Time
}

func (e *DateOutOfRangeError) Error() string {
	return fmt.Sprintf("service: date %s outside forecast range %s..%s",
		e.Date.Format(time.DateOnly), e.Min.Format(time.DateOnly), e.Max.Format(time.DateOnly))
}
