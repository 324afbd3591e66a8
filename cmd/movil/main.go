package main

import (
	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/usecase"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-movil/internal/infrastructure/tokenstore"
	"github.com/jhoicas/inventario-movil/internal/interfaces/cli"
	"github.com/jhoicas/inventario-movil/pkg/config"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL()).
		Msg("iniciando cliente")

	tokens := tokenstore.New(cfg.Session.TokenPath)
	api := restapi.NewClient(cfg.API, tokens, log)

	bus := events.NewBus()
	tracker := events.NewTracker(bus)
	val := validation.New()

	searchUC := usecase.NewSearchUseCase(api, api, bus, log)
	authUC := usecase.NewAuthUseCase(api, tokens, bus, log)
	catalogUC := usecase.NewCatalogUseCase(api, bus, log)
	submitUC := usecase.NewSubmitUseCase(api, searchUC, val, bus, log)

	cli.Execute(&cli.Deps{
		Config:  cfg,
		Log:     log,
		Bus:     bus,
		Tracker: tracker,
		Val:     val,
		Auth:    authUC,
		Catalog: catalogUC,
		Search:  searchUC,
		Submit:  submitUC,
	})
}
