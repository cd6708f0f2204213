package service

import (
	"context"
	"time"

	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/logging"
	"github.com/carson-networks/forecast-server/internal/series"
	"github.com/carson-networks/forecast-server/internal/storage"
)

// DashboardService builds the read-only views over the history.
type DashboardService struct {
	history  storage.HistoryStore
	settings Settings
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(history storage.HistoryStore, settings Settings) *DashboardService {
	if settings.Forecaster == nil {
		settings.Forecaster = forecast.SARIMA{Order: forecast.DefaultOrder()}
	}
	return &DashboardService{history: history, settings: settings}
}

func (s *DashboardService) load(ctx context.Context) ([]invoice.Record, error) {
	var records []invoice.Record
	err := logging.Timed(ctx, "loadHistoryMs", func() error {
		var err error
		records, err = s.history.Load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, invoice.ErrEmptyResult
	}
	return records, nil
}

// Summary reports the size and date range of the history.
func (s *DashboardService) Summary(ctx context.Context) (*HistorySummary, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := &HistorySummary{Rows: len(records), First: records[0].IssueDate, Last: records[0].IssueDate}
	for _, r := range records {
		if r.IssueDate.Before(summary.First) {
			summary.First = r.IssueDate
		}
		if r.IssueDate.After(summary.Last) {
			summary.Last = r.IssueDate
		}
	}
	return summary, nil
}

// Session loads the history, builds the daily series and splits it.
func (s *DashboardService) Session(ctx context.Context, opts ViewOptions) (*Session, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := series.Build(records, s.settings.Series)
	if err != nil {
		return nil, err
	}

	split, err := series.SplitByMonths(daily, opts.TestMonths.GetOr(s.settings.TestMonths))
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("records", len(records))
		logData.AddData("days", len(daily))
	}
	return &Session{Records: records, Daily: daily, Split: split}, nil
}

// Forecast fits the training days, forecasts the test window and checks the
// fit's residuals for leftover autocorrelation.
func (s *DashboardService) Forecast(ctx context.Context, opts ViewOptions) (*ForecastView, error) {
	session, err := s.Session(ctx, opts)
	if err != nil {
		return nil, err
	}

	model, err := s.fit(ctx, session.Split.Train)
	if err != nil {
		return nil, err
	}
	preds, err := model.Forecast(len(session.Split.Test))
	if err != nil {
		return nil, err
	}

	return &ForecastView{
		Session:     session,
		Predictions: preds,
		Evaluation:  forecast.Evaluate(session.Split.Test, preds),
		Diagnostics: forecast.ResidualDiagnostics(model.Residuals(), forecast.DiagnosticLags, s.fittedParams()),
	}, nil
}

// WeeklyForecast forecasts from the day after the training window through
// date and sums the result by week.
func (s *DashboardService) WeeklyForecast(ctx context.Context, date time.Time, opts ViewOptions) (*WeeklyForecastView, error) {
	session, err := s.Session(ctx, opts)
	if err != nil {
		return nil, err
	}

	_, lastTrain := session.Split.Train.Dates()
	from := lastTrain.AddDate(0, 0, 1)
	to := lastTrain.AddDate(0, 0, s.settings.ForecastDays)
	date = invoice.Day(date)
	if date.Before(from) || date.After(to) {
		return nil, &DateOutOfRangeError{Date: date, Min: from, Max: to}
	}

	steps := int(date.Sub(lastTrain).Hours() / 24)
	model, err := s.fit(ctx, session.Split.Train)
	if err != nil {
		return nil, err
	}
	preds, err := model.Forecast(steps)
	if err != nil {
		return nil, err
	}

	return &WeeklyForecastView{From: from, To: to, Rows: forecast.WeeklyTable(preds)}, nil
}

func (s *DashboardService) fit(ctx context.Context, train series.Daily) (forecast.Model, error) {
	var model forecast.Model
	err := logging.Timed(ctx, "fitMs", func() error {
		var err error
		model, err = s.settings.Forecaster.Fit(train)
		return err
	})
	return model, err
}

// fittedParams is the number of estimated coefficients, used as the
// Ljung-Box degrees of freedom correction.
func (s *DashboardService) fittedParams() int {
	if m, ok := s.settings.Forecaster.(forecast.SARIMA); ok {
		return m.Order.Params()
	}
	return 0
}

// Customers summarises clients. When client is empty the largest client is
// used for the history.
func (s *DashboardService) Customers(ctx context.Context, client string) (*CustomerView, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	view := &CustomerView{
		Summary: invoice.Summarize(records),
		Top:     invoice.TopClients(records, s.settings.TopClients),
		Client:  client,
	}
	if view.Client == "" && len(view.Top) > 0 {
		view.Client = view.Top[0].Client
	}
	view.History = invoice.ClientHistory(records, view.Client)
	return view, nil
}

// Seasonality sums the daily series by weekday over the last month and year.
func (s *DashboardService) Seasonality(ctx context.Context) (*SeasonalityView, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := series.Build(records, s.settings.Series)
	if err != nil {
		return nil, err
	}

	_, last := daily.Dates()
	return &SeasonalityView{
		LastDate:  last,
		LastMonth: series.WeekdayTotals(daily, series.MonthsBefore(last, 1)),
		LastYear:  series.WeekdayTotals(daily, series.MonthsBefore(last, 12)),
	}, nil
}
