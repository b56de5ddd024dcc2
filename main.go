package main

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-engine/api"
	"github.com/carson-networks/budget-engine/internal/config"
	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/logging"
	"github.com/carson-networks/budget-engine/internal/rates"
	"github.com/carson-networks/budget-engine/internal/schedule"
	"github.com/carson-networks/budget-engine/internal/service"
	"github.com/carson-networks/budget-engine/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("budget-engine starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	ctx := context.Background()

	var rateSource rates.Source
	if envConfig.RatesURL != "" {
		rateSource = rates.NewHTTPSource(envConfig.RatesURL)
	} else {
		rateSource = rates.StaticSource(envConfig.FallbackRates)
	}

	serializer := engine.NewSerializer(64)
	serializer.Start()
	defer serializer.Stop()

	chain := engine.NewChain(ctx, dbStorage, rateSource, engine.ChainConfig{
		BaseCurrency:  envConfig.BaseCurrency,
		FallbackRates: envConfig.FallbackRates,
	}, logger)
	processor := engine.NewSerialized(chain, serializer)

	accessService := service.NewAccessService(dbStorage.Reader.Members)
	scheduler := schedule.NewEngine(processor, dbStorage, accessService, logger)
	svc := service.NewService(dbStorage, processor, scheduler)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go runScheduler(ctx, dbStorage, scheduler, envConfig.SchedulerIntervalMinutes, logger)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}

// runScheduler sweeps every user with recurring templates on a fixed
// interval. Catch-up is date-driven, so a missed tick only delays
// materialization until the next one.
func runScheduler(ctx context.Context, store *storage.Storage, scheduler *schedule.Engine, intervalMinutes int, logger *logrus.Logger) {
	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		users, err := store.ListUsersWithRecurring(ctx)
		if err != nil {
			logger.WithError(err).Error("Scheduler.listUsers")
		}
		for _, userID := range users {
			if err := scheduler.RunForUser(ctx, userID); err != nil {
				logger.WithError(err).WithField("userID", userID.String()).Error("Scheduler.runForUser")
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
