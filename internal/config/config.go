package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Store backends.
const (
	StoreXLSX     = "xlsx"
	StorePostgres = "postgres"
)

// Forecasters.
const (
	ForecasterSARIMA        = "sarima"
	ForecasterSeasonalNaive = "seasonal_naive"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"9446"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"xlsx"`
	StorePath    string `envconfig:"STORE_PATH" default:"ventas_raw.xlsx"`

	PostgresAddress  string `envconfig:"POSTGRES_ADDRESS" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5433"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"postgres"`
	PostgresUsername string `envconfig:"POSTGRES_USERNAME" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"testpassword"`

	TestMonths       int  `envconfig:"TEST_MONTHS" default:"1"`
	ForecastDays     int  `envconfig:"FORECAST_DAYS" default:"30"`
	SeasonalPeriod   int  `envconfig:"SEASONAL_PERIOD" default:"14"`
	ImputationWindow int  `envconfig:"IMPUTATION_WINDOW" default:"7"`
	ZeroAsMissing    bool `envconfig:"ZERO_AS_MISSING" default:"true"`
	TopClients       int  `envconfig:"TOP_CLIENTS" default:"10"`

	Forecaster          string `envconfig:"FORECASTER" default:"sarima"`
	SarimaOrder         []int  `envconfig:"SARIMA_ORDER" default:"3,1,2"`
	SarimaSeasonalOrder []int  `envconfig:"SARIMA_SEASONAL_ORDER" default:"1,0,0"`

	OperatorQueueSize int `envconfig:"OPERATOR_QUEUE_SIZE" default:"16"`
}

// ProcessEnvironmentVariables reads the configuration. In all cases the
// defaults match the docker compose setup.
func ProcessEnvironmentVariables() (*Config, error) {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreXLSX:
		if c.StorePath == "" {
			return errors.New("config: STORE_PATH is required for the xlsx store")
		}
	case StorePostgres:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.TestMonths < 1 {
		return errors.New("config: TEST_MONTHS must be at least 1")
	}
	if c.ForecastDays < 1 {
		return errors.New("config: FORECAST_DAYS must be at least 1")
	}
	if c.SeasonalPeriod < 1 {
		return errors.New("config: SEASONAL_PERIOD must be at least 1")
	}
	if c.ImputationWindow < 1 {
		return errors.New("config: IMPUTATION_WINDOW must be at least 1")
	}

	switch c.Forecaster {
	case ForecasterSARIMA, ForecasterSeasonalNaive:
	default:
		return fmt.Errorf("config: unknown FORECASTER %q", c.Forecaster)
	}
	if err := validOrder("SARIMA_ORDER", c.SarimaOrder); err != nil {
		return err
	}
	return validOrder("SARIMA_SEASONAL_ORDER", c.SarimaSeasonalOrder)
}

func validOrder(name string, order []int) error {
	if len(order) != 3 {
		return fmt.Errorf("config: %s must be three comma separated values, got %v", name, order)
	}
	for _, v := range order {
		if v < 0 {
			return fmt.Errorf("config: %s values must not be negative, got %v", name, order)
		}
	}
	return nil
}

// PostgresURL is the connection string for lib/pq and golang-migrate.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword + "@" +
		c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
