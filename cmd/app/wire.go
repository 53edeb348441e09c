//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/coldtrace/foodtrace/internal/bootstrap"
	"github.com/coldtrace/foodtrace/internal/domain/observation"
	"github.com/coldtrace/foodtrace/internal/infra/config"
	httpiface "github.com/coldtrace/foodtrace/internal/interface/http"
	"github.com/coldtrace/foodtrace/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChain,
		provideObservationConfig,
		provideHistoryCache,
		provideAuditor,
		observation.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
