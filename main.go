package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/forecast-server/api"
	"github.com/carson-networks/forecast-server/internal/config"
	"github.com/carson-networks/forecast-server/internal/logging"
	"github.com/carson-networks/forecast-server/internal/operator"
	"github.com/carson-networks/forecast-server/internal/service"
	"github.com/carson-networks/forecast-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logrus.WithField("storeBackend", envConfig.StoreBackend).Info("forecast-server starting")

	store, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer store.Close()

	delegator := operator.NewOperatorDelegator(store.History, envConfig.OperatorQueueSize)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(store.History, service.SettingsFromConfig(envConfig))

	httpRest := &api.Rest{
		Logger:       logger,
		Port:         envConfig.Port,
		StoreBackend: envConfig.StoreBackend,
		Operator:     delegator,
		Service:      svc,
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	served := make(chan struct{})
	go func() {
		defer wg.Done()
		defer close(served)
		httpRest.Serve()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-signals:
		logrus.WithField("signal", sig.String()).Info("forecast-server stopping")
	case <-served:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpRest.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("HttpServer.Shutdown")
	}
	wg.Wait()
}
