package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/forecast-server/internal/config"
	"github.com/carson-networks/forecast-server/internal/forecast"
)

func testConfig() *config.Config {
	return &config.Config{
		TestMonths:          1,
		ForecastDays:        30,
		SeasonalPeriod:      14,
		ImputationWindow:    7,
		TopClients:          10,
		Forecaster:          config.ForecasterSARIMA,
		SarimaOrder:         []int{3, 1, 2},
		SarimaSeasonalOrder: []int{1, 0, 0},
	}
}

func TestSettingsFromConfig_SARIMAByDefault(t *testing.T) {
	settings := SettingsFromConfig(testConfig())

	assert.Equal(t, forecast.SARIMA{Order: forecast.DefaultOrder()}, settings.Forecaster)
	assert.Equal(t, 7, settings.Series.Window)
}

func TestSettingsFromConfig_SeasonalNaiveWhenConfigured(t *testing.T) {
	env := testConfig()
	env.Forecaster = config.ForecasterSeasonalNaive
	env.SeasonalPeriod = 7

	settings := SettingsFromConfig(env)

	assert.Equal(t, forecast.SeasonalNaive{Period: 7}, settings.Forecaster)
}

func TestNewDashboardService_DefaultsToSARIMA(t *testing.T) {
	svc := NewDashboardService(&memoryStore{}, Settings{})

	assert.Equal(t, forecast.SARIMA{Order: forecast.DefaultOrder()}, svc.settings.Forecaster)
}
