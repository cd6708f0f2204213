package service

import (
	"github.com/carson-networks/forecast-server/internal/config"
	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/series"
	"github.com/carson-networks/forecast-server/internal/storage"
)

// Settings are the dashboard defaults.
type Settings struct {
	TestMonths   int
	ForecastDays int
	TopClients   int
	Series       series.Options
	Forecaster   forecast.Forecaster
}

// SettingsFromConfig maps the environment onto the dashboard defaults.
func SettingsFromConfig(env *config.Config) Settings {
	return Settings{
		TestMonths:   env.TestMonths,
		ForecastDays: env.ForecastDays,
		TopClients:   env.TopClients,
		Series: series.Options{
			Window:        env.ImputationWindow,
			ZeroAsMissing: env.ZeroAsMissing,
		},
		Forecaster: forecasterFromConfig(env),
	}
}

// forecasterFromConfig builds the configured SARIMA order. The seasonal
// naive forecaster is only used when asked for.
func forecasterFromConfig(env *config.Config) forecast.Forecaster {
	if env.Forecaster == config.ForecasterSeasonalNaive {
		return forecast.SeasonalNaive{Period: env.SeasonalPeriod}
	}
	return forecast.SARIMA{Order: forecast.Order{
		P:  env.SarimaOrder[0],
		D:  env.SarimaOrder[1],
		Q:  env.SarimaOrder[2],
		SP: env.SarimaSeasonalOrder[0],
		SD: env.SarimaSeasonalOrder[1],
		SQ: env.SarimaSeasonalOrder[2],
		M:  env.SeasonalPeriod,
	}}
}

// Service holds all business logic services.
type Service struct {
	Dashboard *DashboardService
}

// NewService creates a new Service reading from the given history.
func NewService(history storage.HistoryStore, settings Settings) *Service {
	return &Service{
		Dashboard: NewDashboardService(history, settings),
	}
}
