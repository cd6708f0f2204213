package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/forecast-server/internal/handlers/v1/forecasting"
	"github.com/carson-networks/forecast-server/internal/handlers/v1/history"
	"github.com/carson-networks/forecast-server/internal/handlers/v1/insight"
	"github.com/carson-networks/forecast-server/internal/handlers/v1/status"
	"github.com/carson-networks/forecast-server/internal/logging"
	"github.com/carson-networks/forecast-server/internal/operator"
	"github.com/carson-networks/forecast-server/internal/service"
)

type Rest struct {
	Logger       *logrus.Logger
	Port         string
	StoreBackend string
	Operator     *operator.OperatorDelegator
	Service      *service.Service

	server *http.Server
}

// Handler builds the mux: /status as a plain handler and the v1 huma API.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.StoreBackend)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Forecast Server", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	dashboard := r.Service.Dashboard
	history.NewIngestBatchHandler(r.Operator).Register(api)
	history.NewSummaryHandler(dashboard).Register(api)
	forecasting.NewGetSeriesHandler(dashboard).Register(api)
	forecasting.NewGetForecastHandler(dashboard).Register(api)
	forecasting.NewWeeklyForecastHandler(dashboard).Register(api)
	insight.NewCustomersHandler(dashboard).Register(api)
	insight.NewSeasonalityHandler(dashboard).Register(api)

	return mux
}

// Serve blocks until the server stops.
func (r *Rest) Serve() {
	r.server = &http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(60) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := r.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (r *Rest) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
